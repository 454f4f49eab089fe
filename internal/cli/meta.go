package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/depot/internal/bundle"
	"github.com/roach88/depot/internal/store"
)

// NewMetaCommand creates the meta command group.
func NewMetaCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "meta",
		Short: "Inspect or update bundle metadata",
	}

	cmd.AddCommand(newMetaShowCommand(rootOpts))
	cmd.AddCommand(newMetaSetCommand(rootOpts))

	return cmd
}

func newMetaShowCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "show <id>",
		Short:         "Show the metadata record of a bundle",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showMetadata(rootOpts, args[0], cmd)
		},
	}
}

func showMetadata(opts *RootOptions, id string, cmd *cobra.Command) error {
	s, err := openStore(opts)
	if err != nil {
		return err
	}
	defer s.Close()

	md, err := s.GetMetadata(context.Background(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return WrapExitError(ExitFailure, fmt.Sprintf("bundle %q not found", id), err)
		}
		return WrapExitError(ExitFailure, "get metadata", err)
	}

	f := newFormatter(opts, cmd)
	if f.JSON() {
		return f.Success(md)
	}
	writeMetadataText(f.Writer, md)
	return nil
}

// writeMetadataText renders one metadata record as aligned key/value lines.
func writeMetadataText(w io.Writer, md bundle.Metadata) {
	fmt.Fprintf(w, "%-12s %s\n", "ID:", md.ID)
	fmt.Fprintf(w, "%-12s %s\n", "Source:", md.Source)
	fmt.Fprintf(w, "%-12s %s\n", "Destination:", md.Destination)
	fmt.Fprintf(w, "%-12s %d\n", "Created:", md.CreationTime)
	fmt.Fprintf(w, "%-12s %d\n", "Size:", md.Size)
	fmt.Fprintf(w, "%-12s %d\n", "Constraints:", md.Constraints)
}

// MetaSetOptions holds flags for meta set.
type MetaSetOptions struct {
	*RootOptions
	Source      string
	Destination string
	Created     uint64
	Size        uint64
	Constraints int32
}

func newMetaSetCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &MetaSetOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "set <id>",
		Short: "Update metadata fields of a bundle",
		Long: `Update metadata fields of a bundle.

Only the fields whose flags are given change; the rest keep their stored
values. The payload is never touched.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return setMetadata(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Source, "source", "", "origin descriptor")
	cmd.Flags().StringVar(&opts.Destination, "dest", "", "target descriptor")
	cmd.Flags().Uint64Var(&opts.Created, "created", 0, "creation timestamp")
	cmd.Flags().Uint64Var(&opts.Size, "size", 0, "declared size")
	cmd.Flags().Int32Var(&opts.Constraints, "constraints", 0, "constraints bitmask")

	return cmd
}

func setMetadata(opts *MetaSetOptions, id string, cmd *cobra.Command) error {
	s, err := openStore(opts.RootOptions)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := context.Background()
	md, err := s.GetMetadata(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return WrapExitError(ExitFailure, fmt.Sprintf("bundle %q not found", id), err)
		}
		return WrapExitError(ExitFailure, "get metadata", err)
	}

	flags := cmd.Flags()
	if flags.Changed("source") {
		md.Source = opts.Source
	}
	if flags.Changed("dest") {
		md.Destination = opts.Destination
	}
	if flags.Changed("created") {
		md.CreationTime = opts.Created
	}
	if flags.Changed("size") {
		md.Size = opts.Size
	}
	if flags.Changed("constraints") {
		md.Constraints = bundle.Constraints(opts.Constraints)
	}

	if err := s.UpdateMetadata(ctx, md); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return WrapExitError(ExitFailure, fmt.Sprintf("bundle %q not found", id), err)
		}
		return WrapExitError(ExitFailure, "update metadata", err)
	}

	f := newFormatter(opts.RootOptions, cmd)
	if f.JSON() {
		return f.Success(md)
	}
	writeMetadataText(f.Writer, md)
	return nil
}
