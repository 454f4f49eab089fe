package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/roach88/depot/internal/bundle"
	"github.com/roach88/depot/internal/store"
)

// PutOptions holds flags for the put command.
type PutOptions struct {
	*RootOptions
	File        string
	Source      string
	Destination string
	Created     uint64
	Size        uint64
	Constraints int32
}

// NewPutCommand creates the put command.
func NewPutCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PutOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "put [id]",
		Short: "Store a bundle with its metadata",
		Long: `Store a bundle with its metadata.

The payload is read from --file, or from stdin when no file is given.
When id is omitted a time-sortable UUIDv7 id is generated.

Example:
  depot put firmware-1.2 --file build/fw.bin --source buildbot --dest fleet`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			id := ""
			if len(args) == 1 {
				id = args[0]
			}
			return putBundle(opts, id, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.File, "file", "f", "", "read the payload from this file instead of stdin")
	cmd.Flags().StringVar(&opts.Source, "source", "", "origin descriptor")
	cmd.Flags().StringVar(&opts.Destination, "dest", "", "target descriptor")
	cmd.Flags().Uint64Var(&opts.Created, "created", 0, "creation timestamp (defaults to now)")
	cmd.Flags().Uint64Var(&opts.Size, "size", 0, "declared size (defaults to the payload length)")
	cmd.Flags().Int32Var(&opts.Constraints, "constraints", 0, "constraints bitmask")

	return cmd
}

func putBundle(opts *PutOptions, id string, cmd *cobra.Command) error {
	if id == "" {
		id = uuid.Must(uuid.NewV7()).String()
	}

	data, err := readPayload(opts.File, cmd.InOrStdin())
	if err != nil {
		return WrapExitError(ExitCommandError, "read payload", err)
	}

	created := opts.Created
	if !cmd.Flags().Changed("created") {
		created = uint64(time.Now().Unix())
	}
	size := opts.Size
	if !cmd.Flags().Changed("size") {
		size = uint64(len(data))
	}

	md := bundle.Metadata{
		ID:           id,
		Source:       opts.Source,
		Destination:  opts.Destination,
		CreationTime: created,
		Size:         size,
		Constraints:  bundle.Constraints(opts.Constraints),
	}

	s, err := openStore(opts.RootOptions)
	if err != nil {
		return err
	}
	defer s.Close()

	f := newFormatter(opts.RootOptions, cmd)
	f.VerboseLog("storing %d byte payload as %q", len(data), id)

	if err := s.StoreBundle(context.Background(), id, data, md); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return WrapExitError(ExitFailure, fmt.Sprintf("bundle %q already exists", id), err)
		}
		return WrapExitError(ExitFailure, "store bundle", err)
	}

	if f.JSON() {
		return f.Success(map[string]any{"id": id, "size": len(data)})
	}
	return f.Success(id)
}

// readPayload reads the bundle payload from path, or from fallback (stdin)
// when path is empty.
func readPayload(path string, fallback io.Reader) ([]byte, error) {
	if path == "" {
		return io.ReadAll(fallback)
	}
	return os.ReadFile(path)
}
