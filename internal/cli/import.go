package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/roach88/depot/internal/bundle"
)

// Manifest is the YAML batch-ingest format read by depot import.
type Manifest struct {
	Bundles []ManifestEntry `yaml:"bundles"`
}

// ManifestEntry describes one bundle to ingest. File paths are resolved
// relative to the manifest's directory.
type ManifestEntry struct {
	// ID is the bundle id. Optional; a UUIDv7 is generated when empty.
	ID string `yaml:"id,omitempty"`

	// File is the path of the payload file.
	File string `yaml:"file"`

	// Source and Destination are free-form provenance descriptors.
	Source      string `yaml:"source,omitempty"`
	Destination string `yaml:"destination,omitempty"`

	// CreationTime defaults to the import time when zero.
	CreationTime uint64 `yaml:"creation_time,omitempty"`

	// Constraints is the caller-owned bitmask.
	Constraints int32 `yaml:"constraints,omitempty"`
}

// NewImportCommand creates the import command.
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import <manifest.yaml>",
		Short: "Store bundles listed in a YAML manifest",
		Long: `Store bundles listed in a YAML manifest.

Each entry names a payload file and its metadata. Entries are stored
independently: a failing entry is reported and the rest continue. The
command exits non-zero when any entry failed.

Manifest format:

  bundles:
    - id: firmware-1.2
      file: payloads/fw.bin
      source: buildbot
      destination: fleet
      creation_time: 1700000000
      constraints: 0`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return importManifest(rootOpts, args[0], cmd)
		},
	}
}

func importManifest(opts *RootOptions, path string, cmd *cobra.Command) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "read manifest", err)
	}

	var manifest Manifest
	if err := yaml.Unmarshal(raw, &manifest); err != nil {
		return WrapExitError(ExitCommandError, "parse manifest", err)
	}

	s, err := openStore(opts)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := context.Background()
	f := newFormatter(opts, cmd)
	baseDir := filepath.Dir(path)

	var stored, failed int
	for i, entry := range manifest.Bundles {
		id, err := importEntry(ctx, s, baseDir, entry)
		if err != nil {
			failed++
			fmt.Fprintf(f.ErrWriter, "entry %d: %v\n", i, err)
			continue
		}
		stored++
		f.VerboseLog("stored %q from %s", id, entry.File)
	}

	if f.JSON() {
		if err := f.Success(map[string]any{"stored": stored, "failed": failed}); err != nil {
			return err
		}
	} else {
		fmt.Fprintf(f.Writer, "stored %d bundles, %d failed\n", stored, failed)
	}

	if failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d of %d entries failed", failed, len(manifest.Bundles)))
	}
	return nil
}

// importEntry stores one manifest entry and returns the id it landed under.
func importEntry(ctx context.Context, s bundleStorer, baseDir string, entry ManifestEntry) (string, error) {
	if entry.File == "" {
		return "", fmt.Errorf("missing payload file")
	}

	payloadPath := entry.File
	if !filepath.IsAbs(payloadPath) {
		payloadPath = filepath.Join(baseDir, payloadPath)
	}
	data, err := os.ReadFile(payloadPath)
	if err != nil {
		return "", fmt.Errorf("read payload: %w", err)
	}

	id := entry.ID
	if id == "" {
		id = uuid.Must(uuid.NewV7()).String()
	}
	created := entry.CreationTime
	if created == 0 {
		created = uint64(time.Now().Unix())
	}

	md := bundle.Metadata{
		ID:           id,
		Source:       entry.Source,
		Destination:  entry.Destination,
		CreationTime: created,
		Size:         uint64(len(data)),
		Constraints:  bundle.Constraints(entry.Constraints),
	}

	if err := s.StoreBundle(ctx, id, data, md); err != nil {
		return "", err
	}
	return id, nil
}

// bundleStorer is the slice of the store that importEntry needs.
type bundleStorer interface {
	StoreBundle(ctx context.Context, id string, data []byte, md bundle.Metadata) error
}
