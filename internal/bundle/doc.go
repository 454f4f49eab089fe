// Package bundle defines the domain types shared between the store and the
// CLI: the metadata record paired 1:1 with each stored payload, the
// constraints bitmask, and bundle id validation.
//
// A bundle is an opaque, immutable byte payload addressed by a
// caller-supplied string id. Its metadata record is mutable and lives under
// the same id. The store enforces the pairing; this package only describes
// the shapes and validates inputs before they reach the database.
package bundle
