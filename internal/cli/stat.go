package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// NewStatCommand creates the stat command.
func NewStatCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "stat",
		Short:         "Show store statistics",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return statStore(rootOpts, cmd)
		},
	}
}

func statStore(opts *RootOptions, cmd *cobra.Command) error {
	s, err := openStore(opts)
	if err != nil {
		return err
	}
	defer s.Close()

	count, err := s.CountBundles(context.Background())
	if err != nil {
		return WrapExitError(ExitFailure, "count bundles", err)
	}

	f := newFormatter(opts, cmd)
	if f.JSON() {
		return f.Success(map[string]any{"bundles": count, "path": s.Path()})
	}
	fmt.Fprintf(f.Writer, "%-12s %s\n", "Path:", s.Path())
	fmt.Fprintf(f.Writer, "%-12s %d\n", "Bundles:", count)
	return nil
}
