package store

import (
	"path/filepath"
	"testing"

	"github.com/roach88/depot/internal/bundle"
)

// createTestStore creates a store backed by a throwaway file for testing.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// testMetadata creates a metadata record with plausible field values.
func testMetadata(id string) bundle.Metadata {
	return bundle.Metadata{
		ID:           id,
		Source:       "node-a",
		Destination:  "node-b",
		CreationTime: 1000,
		Size:         3,
		Constraints:  0,
	}
}
