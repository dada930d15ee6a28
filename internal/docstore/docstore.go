// Package docstore provides a key-addressed store of JSON array
// documents. Each key maps to one document; carts and checkout logs use
// one key per user, the product catalog a single shared key.
package docstore

import (
	"context"
	"errors"
)

var (
	// ErrCorrupted reports that a document exists but does not parse as JSON.
	ErrCorrupted = errors.New("document corrupted")
	// ErrWriteFailed reports that persisting a document failed.
	ErrWriteFailed = errors.New("document write failed")
)

// Store is a key-value store of JSON array documents.
//
// Load and Save together form a read-modify-write cycle that is not
// atomic across calls: concurrent writers to the same key race and the
// last writer wins. Callers relying on stronger guarantees must
// serialize access themselves.
type Store interface {
	// Load reads the document at key into out, which must be a pointer
	// to a slice. A missing document leaves out untouched and returns
	// nil, so an empty slice passed in behaves as the empty document.
	// Content that does not parse returns ErrCorrupted.
	Load(ctx context.Context, key string, out any) error

	// Save serializes docs as pretty-printed JSON and overwrites the
	// document at key, creating it if absent. Failures wrap
	// ErrWriteFailed.
	Save(ctx context.Context, key string, docs any) error

	// Keys lists the keys of all existing documents.
	Keys(ctx context.Context) ([]string, error)
}
