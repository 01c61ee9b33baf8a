// Package store holds the key-value backends stored cells mirror their value into.
//
// Every backend keeps serialized values as text under string keys. Memory lives as
// long as the process (the session storage of a browser), the others survive it
// (local storage). Remote backends (Redis, Postgres, Mongo) block on the network;
// wrap them in a WriteBehind to keep writes off the caller's goroutine.
package store

import "errors"

// ErrClosed is returned by operations on a closed store.
var ErrClosed = errors.New("store: closed")

// Store is a key-value backend. Implementations must be safe for concurrent use.
type Store interface {
	// Get returns the value under key, ok is false when the key is absent.
	Get(key string) (value string, ok bool, err error)

	// Set stores value under key, overwriting any previous value.
	Set(key, value string) error

	// Remove deletes key. Removing a missing key is not an error.
	Remove(key string) error
}
