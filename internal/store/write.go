package store

import (
	"context"
	"fmt"

	"github.com/roach88/depot/internal/bundle"
)

// StoreBundle inserts a payload and its metadata record under id in a
// single transaction. Either both rows land or neither does; on any failure
// the database is exactly as it was before the call.
//
// The payload may be zero-length but not nil. md.ID must equal id; the
// mismatch is rejected here rather than left for the foreign key to trip
// over mid-transaction.
//
// Returns ErrDuplicate when a bundle with this id already exists.
func (s *Store) StoreBundle(ctx context.Context, id string, data []byte, md bundle.Metadata) error {
	if err := bundle.ValidateID(id); err != nil {
		return fmt.Errorf("store bundle: %w", err)
	}
	if data == nil {
		return fmt.Errorf("store bundle %q: nil payload", id)
	}
	if md.ID != id {
		return fmt.Errorf("store bundle %q: metadata id %q does not match", id, md.ID)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("store bundle: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	_, err = tx.ExecContext(ctx, `
		INSERT INTO bundles (id, data) VALUES (?, ?)
	`, id, data)
	if err != nil {
		if isConstraintErr(err) {
			return fmt.Errorf("store bundle %q: %w", id, ErrDuplicate)
		}
		return fmt.Errorf("store bundle: insert payload: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO bundle_metadata
		(id, source, destination, creation_time, size, constraints)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		md.ID,
		md.Source,
		md.Destination,
		int64(md.CreationTime),
		int64(md.Size),
		int32(md.Constraints),
	)
	if err != nil {
		return fmt.Errorf("store bundle: insert metadata: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("store bundle: commit: %w", err)
	}

	return nil
}

// UpdateMetadata rewrites the five mutable metadata fields for the bundle
// matching md.ID. The payload is untouched.
//
// Existence is decided by the affected-row count after the UPDATE, not by a
// read-then-write pair. Returns ErrNotFound when no row matched.
func (s *Store) UpdateMetadata(ctx context.Context, md bundle.Metadata) error {
	if err := md.Validate(); err != nil {
		return fmt.Errorf("update metadata: %w", err)
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE bundle_metadata
		SET source = ?, destination = ?, creation_time = ?, size = ?, constraints = ?
		WHERE id = ?
	`,
		md.Source,
		md.Destination,
		int64(md.CreationTime),
		int64(md.Size),
		int32(md.Constraints),
		md.ID,
	)
	if err != nil {
		return fmt.Errorf("update metadata: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update metadata: rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("update metadata %q: %w", md.ID, ErrNotFound)
	}

	return nil
}

// RemoveBundle deletes the bundle and, through the foreign key cascade, its
// metadata record in the same engine-level operation. Only one DELETE is
// issued. Returns ErrNotFound when no bundle with that id existed.
func (s *Store) RemoveBundle(ctx context.Context, id string) error {
	if err := bundle.ValidateID(id); err != nil {
		return fmt.Errorf("remove bundle: %w", err)
	}

	result, err := s.db.ExecContext(ctx, `
		DELETE FROM bundles WHERE id = ?
	`, id)
	if err != nil {
		return fmt.Errorf("remove bundle: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("remove bundle: rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("remove bundle %q: %w", id, ErrNotFound)
	}

	return nil
}
