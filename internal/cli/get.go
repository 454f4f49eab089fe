package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/depot/internal/store"
)

// GetOptions holds flags for the get command.
type GetOptions struct {
	*RootOptions
	Output string
}

// NewGetCommand creates the get command.
func NewGetCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GetOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Read a bundle payload",
		Long: `Read a bundle payload.

The payload bytes are written to stdout, or to --output when given.

Example:
  depot get firmware-1.2 --output fw.bin`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return getBundle(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "write the payload to this file instead of stdout")

	return cmd
}

func getBundle(opts *GetOptions, id string, cmd *cobra.Command) error {
	s, err := openStore(opts.RootOptions)
	if err != nil {
		return err
	}
	defer s.Close()

	data, err := s.GetBundle(context.Background(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return WrapExitError(ExitFailure, fmt.Sprintf("bundle %q not found", id), err)
		}
		return WrapExitError(ExitFailure, "get bundle", err)
	}

	if opts.Output != "" {
		if err := os.WriteFile(opts.Output, data, 0o644); err != nil {
			return WrapExitError(ExitCommandError, "write payload", err)
		}
		f := newFormatter(opts.RootOptions, cmd)
		f.VerboseLog("wrote %d bytes to %s", len(data), opts.Output)
		return nil
	}

	// Raw bytes, untouched by the formatter: get is the one command whose
	// stdout is the payload itself.
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
