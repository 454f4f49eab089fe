package store

import (
	"errors"

	sqlite3 "github.com/mattn/go-sqlite3"
)

// Sentinel errors returned by store operations. Anything not matching one
// of these is an unexpected backend failure wrapped with context.
var (
	// ErrNotFound reports that no bundle exists under the requested id.
	// Returned only by operations that act on a specific id; the list
	// operations report absence as an empty result instead.
	ErrNotFound = errors.New("bundle not found")

	// ErrDuplicate reports that StoreBundle collided with an existing
	// bundle id. The write is rolled back in full; the stored bundle is
	// untouched.
	ErrDuplicate = errors.New("bundle id already exists")
)

// isConstraintErr reports whether err is a SQLite uniqueness violation.
// Other constraint classes (NOT NULL, foreign key) are deliberately not
// folded in; they indicate a store bug, not a duplicate id.
func isConstraintErr(err error) bool {
	var serr sqlite3.Error
	if !errors.As(err, &serr) {
		return false
	}
	if serr.Code != sqlite3.ErrConstraint {
		return false
	}
	return serr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey ||
		serr.ExtendedCode == sqlite3.ErrConstraintUnique
}
