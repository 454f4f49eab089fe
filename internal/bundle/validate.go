package bundle

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// ErrInvalidID is wrapped by every id validation failure.
var ErrInvalidID = errors.New("invalid bundle id")

// ValidateID checks that id is usable as a bundle primary key.
//
// An id must be non-empty, valid UTF-8, and in Unicode NFC form. Requiring
// NFC means each logical key has exactly one byte spelling, so lookups never
// miss a bundle because the caller composed the same string differently.
func ValidateID(id string) error {
	if id == "" {
		return fmt.Errorf("%w: empty", ErrInvalidID)
	}
	if !utf8.ValidString(id) {
		return fmt.Errorf("%w: not valid UTF-8", ErrInvalidID)
	}
	if !norm.NFC.IsNormalString(id) {
		return fmt.Errorf("%w: %q is not NFC-normalized", ErrInvalidID, id)
	}
	return nil
}

// Validate checks that the metadata record can be persisted.
func (m Metadata) Validate() error {
	return ValidateID(m.ID)
}
