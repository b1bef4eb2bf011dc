// Package store wraps a single embedded transactional key-value database
// (go.etcd.io/bbolt) exposing four logical tables — users, vaults,
// access_keys, secrets — with begin-read / begin-write / commit semantics.
//
// The engine is single-writer, multi-reader: bbolt serializes write
// transactions and allows any number of concurrent read transactions to
// proceed against the last committed snapshot. Composite keys (vault,
// access_key_id) and (vault, secret_name) are modeled as nested buckets
// keyed by vault name, so that purging every child row of a vault is a
// single DeleteBucket call rather than an iterate-then-delete loop.
package store

import (
	"fmt"

	bolt "go.etcd.io/bbolt"
)

var (
	usersBucket      = []byte("users")
	vaultsBucket     = []byte("vaults")
	accessKeysBucket = []byte("access_keys")
	secretsBucket    = []byte("secrets")

	topLevelBuckets = [][]byte{usersBucket, vaultsBucket, accessKeysBucket, secretsBucket}
)

// Store is the KV engine adapter. It is safe for concurrent use by multiple
// goroutines.
type Store struct {
	db *bolt.DB
}

// Open opens (creating if absent) the bbolt file at path and ensures the
// four top-level buckets exist. The returned InitializeState reports
// whether this call created a brand-new database file, which the caller
// uses to decide whether to run the first-run bootstrap.
func Open(path string) (*Store, InitializeState, error) {
	state := InitializeStateExisted

	db, err := bolt.Open(path, 0600, nil)
	if err != nil {
		return nil, state, fmt.Errorf("failed to open database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range topLevelBuckets {
			existed := tx.Bucket(name) != nil
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", name, err)
			}
			if name == usersBucket && !existed {
				state = InitializeStateCreated
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, state, err
	}

	return &Store{db: db}, state, nil
}

// Close releases the underlying file handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// InitializeState reports whether Open created a fresh database.
type InitializeState int

const (
	InitializeStateExisted InitializeState = iota
	InitializeStateCreated
)
