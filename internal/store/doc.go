// Package store provides SQLite-backed durable storage for bundles.
//
// A bundle is an immutable BLOB payload keyed by a caller-supplied id. Each
// bundle owns exactly one mutable metadata record under the same id:
//
//   - bundles: id TEXT PRIMARY KEY, data BLOB
//   - bundle_metadata: descriptive fields, FOREIGN KEY(id) ON DELETE CASCADE
//
// StoreBundle is the only multi-statement operation and runs in a single
// transaction; a failure at any point rolls back so no partial bundle is
// ever observable. Removing a bundle cascades to its metadata at the engine
// level, so the pairing invariant (metadata exists iff payload exists)
// cannot be broken from outside a transaction.
//
// Everything returned to callers (payload bytes, metadata records, id
// lists) is a fresh copy owned by the caller; the store never hands out
// references into driver-owned buffers.
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - foreign_keys=ON: required. SQLite defaults this OFF, and without it
//     ON DELETE CASCADE silently stops holding
package store
