package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/depot/internal/bundle"
)

// GetBundle returns the payload stored under id. The returned slice is a
// fresh copy owned by the caller.
//
// A zero-length payload is a valid success result and is distinct from
// ErrNotFound, which means no bundle row exists at all.
func (s *Store) GetBundle(ctx context.Context, id string) ([]byte, error) {
	if err := bundle.ValidateID(id); err != nil {
		return nil, fmt.Errorf("get bundle: %w", err)
	}

	// Scanning into *[]byte copies out of the driver's row buffer, so the
	// result stays valid after the statement is done.
	var data []byte
	err := s.db.QueryRowContext(ctx, `
		SELECT data FROM bundles WHERE id = ?
	`, id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get bundle %q: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get bundle: %w", err)
	}

	if data == nil {
		data = []byte{}
	}
	return data, nil
}

// GetMetadata returns the metadata record stored under id.
func (s *Store) GetMetadata(ctx context.Context, id string) (bundle.Metadata, error) {
	if err := bundle.ValidateID(id); err != nil {
		return bundle.Metadata{}, fmt.Errorf("get metadata: %w", err)
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT id, source, destination, creation_time, size, constraints
		FROM bundle_metadata
		WHERE id = ?
	`, id)

	md, err := scanMetadata(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return bundle.Metadata{}, fmt.Errorf("get metadata %q: %w", id, ErrNotFound)
	}
	if err != nil {
		return bundle.Metadata{}, fmt.Errorf("get metadata: %w", err)
	}
	return md, nil
}

// HasBundle reports whether a bundle exists under id. Absence is encoded as
// false, never as an error.
func (s *Store) HasBundle(ctx context.Context, id string) (bool, error) {
	if err := bundle.ValidateID(id); err != nil {
		return false, fmt.Errorf("has bundle: %w", err)
	}

	var one int
	err := s.db.QueryRowContext(ctx, `
		SELECT 1 FROM bundles WHERE id = ? LIMIT 1
	`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("has bundle: %w", err)
	}
	return true, nil
}

// CountBundles returns the total number of stored bundles.
//
// Unlike an empty store, a failed count is an error; callers that want the
// lossy zero-on-failure behavior can discard the error themselves.
func (s *Store) CountBundles(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM bundles
	`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count bundles: %w", err)
	}
	return count, nil
}

// ListIDs returns every bundle id, ordered by id.
//
// Returns an empty slice (not nil) when the store is empty.
func (s *Store) ListIDs(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id FROM bundles ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("list ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan id: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ids: %w", err)
	}

	// Return empty slice instead of nil
	if ids == nil {
		ids = []string{}
	}

	return ids, nil
}

// ListMetadata returns the metadata record of every bundle, ordered by id.
//
// Returns an empty slice (not nil) when the store is empty.
func (s *Store) ListMetadata(ctx context.Context) ([]bundle.Metadata, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, source, destination, creation_time, size, constraints
		FROM bundle_metadata
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("list metadata: %w", err)
	}
	defer rows.Close()

	var records []bundle.Metadata
	for rows.Next() {
		md, err := scanMetadata(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan metadata: %w", err)
		}
		records = append(records, md)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate metadata: %w", err)
	}

	if records == nil {
		records = []bundle.Metadata{}
	}

	return records, nil
}

// scanMetadata reads one bundle_metadata row through any Scan-shaped
// function (sql.Row or sql.Rows).
func scanMetadata(scan func(dest ...any) error) (bundle.Metadata, error) {
	var (
		md           bundle.Metadata
		creationTime int64
		size         int64
		constraints  int32
	)
	if err := scan(&md.ID, &md.Source, &md.Destination, &creationTime, &size, &constraints); err != nil {
		return bundle.Metadata{}, err
	}
	md.CreationTime = uint64(creationTime)
	md.Size = uint64(size)
	md.Constraints = bundle.Constraints(constraints)
	return md, nil
}
