package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// ListOptions holds flags for the ls command.
type ListOptions struct {
	*RootOptions
	Long bool
}

// NewListCommand creates the ls command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ListOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "ls",
		Short: "List stored bundles",
		Long: `List stored bundles.

Prints one id per line, ordered by id. With --long, prints a table of the
full metadata records instead.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listBundles(opts, cmd)
		},
	}

	cmd.Flags().BoolVarP(&opts.Long, "long", "l", false, "show metadata for each bundle")

	return cmd
}

func listBundles(opts *ListOptions, cmd *cobra.Command) error {
	s, err := openStore(opts.RootOptions)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := context.Background()
	f := newFormatter(opts.RootOptions, cmd)

	if opts.Long {
		records, err := s.ListMetadata(ctx)
		if err != nil {
			return WrapExitError(ExitFailure, "list metadata", err)
		}
		if f.JSON() {
			return f.Success(records)
		}

		w := tabwriter.NewWriter(f.Writer, 0, 8, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tSOURCE\tDESTINATION\tCREATED\tSIZE\tCONSTRAINTS")
		for _, md := range records {
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\n",
				md.ID, md.Source, md.Destination, md.CreationTime, md.Size, md.Constraints)
		}
		return w.Flush()
	}

	ids, err := s.ListIDs(ctx)
	if err != nil {
		return WrapExitError(ExitFailure, "list ids", err)
	}
	if f.JSON() {
		return f.Success(ids)
	}
	for _, id := range ids {
		fmt.Fprintln(f.Writer, id)
	}
	return nil
}
