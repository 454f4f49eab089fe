package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/depot/internal/store"
)

// NewRemoveCommand creates the rm command.
func NewRemoveCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Remove a bundle and its metadata",
		Long: `Remove a bundle and its metadata.

The metadata record goes with the payload; there is no way to remove one
without the other.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return removeBundle(rootOpts, args[0], cmd)
		},
	}
}

func removeBundle(opts *RootOptions, id string, cmd *cobra.Command) error {
	s, err := openStore(opts)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.RemoveBundle(context.Background(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return WrapExitError(ExitFailure, fmt.Sprintf("bundle %q not found", id), err)
		}
		return WrapExitError(ExitFailure, "remove bundle", err)
	}

	f := newFormatter(opts, cmd)
	if f.JSON() {
		return f.Success(map[string]any{"removed": id})
	}
	return f.Success(fmt.Sprintf("removed %s", id))
}
