package statestore

import "context"

// Store is the persistent key-value collaborator the ride store writes its
// document to. Values are opaque bytes; the caller owns the encoding.
type Store interface {
	// Get returns the value stored under key. ok is false when nothing is stored.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)

	// Set writes value under key using last-write-wins semantics.
	Set(ctx context.Context, key string, value []byte) error
}
