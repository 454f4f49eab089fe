package store

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/roach88/depot/internal/bundle"
)

func TestStoreBundle_RoundTrip(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	payload := []byte{0x01, 0x02, 0x03}
	if err := s.StoreBundle(ctx, "b1", payload, testMetadata("b1")); err != nil {
		t.Fatalf("StoreBundle() failed: %v", err)
	}

	got, err := s.GetBundle(ctx, "b1")
	if err != nil {
		t.Fatalf("GetBundle() failed: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Errorf("GetBundle() = %v, want %v", got, payload)
	}
}

func TestStoreBundle_EmptyPayload(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	if err := s.StoreBundle(ctx, "empty", []byte{}, testMetadata("empty")); err != nil {
		t.Fatalf("StoreBundle() with empty payload failed: %v", err)
	}

	// Zero-length payload is a success case, not NotFound
	got, err := s.GetBundle(ctx, "empty")
	if err != nil {
		t.Fatalf("GetBundle() failed: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("GetBundle() = %v, want empty non-nil slice", got)
	}
}

func TestStoreBundle_NilPayload(t *testing.T) {
	s := createTestStore(t)

	err := s.StoreBundle(context.Background(), "b1", nil, testMetadata("b1"))
	if err == nil {
		t.Error("expected error for nil payload, got nil")
	}
}

func TestStoreBundle_DuplicateID(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	first := []byte("first")
	if err := s.StoreBundle(ctx, "b1", first, testMetadata("b1")); err != nil {
		t.Fatalf("first StoreBundle() failed: %v", err)
	}

	md2 := testMetadata("b1")
	md2.Source = "node-c"
	err := s.StoreBundle(ctx, "b1", []byte("second"), md2)
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("second StoreBundle() = %v, want ErrDuplicate", err)
	}

	// Rollback verified: the first payload and metadata are untouched
	got, err := s.GetBundle(ctx, "b1")
	if err != nil {
		t.Fatalf("GetBundle() after duplicate failed: %v", err)
	}
	if !bytes.Equal(got, first) {
		t.Errorf("payload after duplicate = %q, want %q", got, first)
	}

	md, err := s.GetMetadata(ctx, "b1")
	if err != nil {
		t.Fatalf("GetMetadata() after duplicate failed: %v", err)
	}
	if md.Source != "node-a" {
		t.Errorf("metadata source after duplicate = %q, want %q", md.Source, "node-a")
	}

	count, err := s.CountBundles(ctx)
	if err != nil {
		t.Fatalf("CountBundles() failed: %v", err)
	}
	if count != 1 {
		t.Errorf("CountBundles() = %d after duplicate, want 1", count)
	}
}

func TestStoreBundle_MetadataIDMismatch(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	err := s.StoreBundle(ctx, "b1", []byte{1}, testMetadata("b2"))
	if err == nil {
		t.Fatal("expected error for mismatched metadata id, got nil")
	}

	// Nothing persisted
	if has, _ := s.HasBundle(ctx, "b1"); has {
		t.Error("bundle was persisted despite mismatched metadata id")
	}
}

func TestStoreBundle_InvalidID(t *testing.T) {
	s := createTestStore(t)

	err := s.StoreBundle(context.Background(), "", []byte{1}, testMetadata(""))
	if !errors.Is(err, bundle.ErrInvalidID) {
		t.Errorf("StoreBundle(\"\") = %v, want ErrInvalidID", err)
	}
}

func TestUpdateMetadata_ExistingBundle(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	payload := []byte{0xAA, 0xBB}
	if err := s.StoreBundle(ctx, "b1", payload, testMetadata("b1")); err != nil {
		t.Fatalf("StoreBundle() failed: %v", err)
	}

	updated := bundle.Metadata{
		ID:           "b1",
		Source:       "node-x",
		Destination:  "node-y",
		CreationTime: 2000,
		Size:         99,
		Constraints:  7,
	}
	if err := s.UpdateMetadata(ctx, updated); err != nil {
		t.Fatalf("UpdateMetadata() failed: %v", err)
	}

	got, err := s.GetMetadata(ctx, "b1")
	if err != nil {
		t.Fatalf("GetMetadata() failed: %v", err)
	}
	if got != updated {
		t.Errorf("GetMetadata() = %+v, want %+v", got, updated)
	}

	// Payload untouched by metadata update
	data, err := s.GetBundle(ctx, "b1")
	if err != nil {
		t.Fatalf("GetBundle() failed: %v", err)
	}
	if !bytes.Equal(data, payload) {
		t.Errorf("payload changed by UpdateMetadata: %v", data)
	}
}

func TestUpdateMetadata_NotFound(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	err := s.UpdateMetadata(ctx, testMetadata("ghost"))
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("UpdateMetadata() = %v, want ErrNotFound", err)
	}

	// No row created by the failed update
	if has, _ := s.HasBundle(ctx, "ghost"); has {
		t.Error("UpdateMetadata on missing id created a bundle")
	}
	if _, err := s.GetMetadata(ctx, "ghost"); !errors.Is(err, ErrNotFound) {
		t.Error("UpdateMetadata on missing id created a metadata row")
	}
}

func TestRemoveBundle_Cascades(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	if err := s.StoreBundle(ctx, "b1", []byte{1, 2, 3}, testMetadata("b1")); err != nil {
		t.Fatalf("StoreBundle() failed: %v", err)
	}

	if err := s.RemoveBundle(ctx, "b1"); err != nil {
		t.Fatalf("RemoveBundle() failed: %v", err)
	}

	// One DELETE removes both the payload and, via the cascade, the metadata
	if _, err := s.GetBundle(ctx, "b1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetBundle() after remove = %v, want ErrNotFound", err)
	}
	if _, err := s.GetMetadata(ctx, "b1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetMetadata() after remove = %v, want ErrNotFound", err)
	}
}

func TestRemoveBundle_NotFound(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	if err := s.StoreBundle(ctx, "keep", []byte{1}, testMetadata("keep")); err != nil {
		t.Fatalf("StoreBundle() failed: %v", err)
	}

	err := s.RemoveBundle(ctx, "ghost")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("RemoveBundle() = %v, want ErrNotFound", err)
	}

	// Count unchanged by the failed remove
	count, err := s.CountBundles(ctx)
	if err != nil {
		t.Fatalf("CountBundles() failed: %v", err)
	}
	if count != 1 {
		t.Errorf("CountBundles() = %d, want 1", count)
	}
}
