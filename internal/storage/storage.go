// Package storage defines the Storage interface — a contract that any
// persistence backend must satisfy to hold the student roster.
//
// WHY A KEY-VALUE INTERFACE?
// ──────────────────────────
// The roster is small and is always read and written as a whole: every
// add, update, or delete rewrites the full list under one key. A key-value
// contract is all the record store needs, and it lets the same store run
// on SQLite, BadgerDB, or a plain map in tests:
//
//   - Switching backends = implement Get/Set/Close, change the driver
//     name in the config file. Zero changes in the record store.
//
//   - Writing tests = use the memory backend. No files on disk.
package storage

import "errors"

// DefaultKey is the key the roster is stored under when none is configured.
const DefaultKey = "records"

// ErrClosed is returned by backends used after Close.
var ErrClosed = errors.New("storage is closed")

// Storage is the persistence contract.
type Storage interface {
	// Get returns the value stored under key.
	// found is false (and err nil) when the key has never been written.
	Get(key string) (value []byte, found bool, err error)

	// Set replaces the value stored under key. When Set returns nil the
	// value is durable as far as the backend can promise.
	Set(key string, value []byte) error

	// Close releases the backend's resources.
	Close() error
}
