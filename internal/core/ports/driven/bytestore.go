package driven

import "context"

// ByteStore is the backing library of deck files, addressed by string
// key. The core depends only on this contract, never on a concrete
// backend. Keys may contain slashes; implementations treat them as
// opaque apart from extension filtering in List.
type ByteStore interface {
	// Put stores data under key, overwriting any existing value.
	Put(ctx context.Context, key string, data []byte) error

	// List returns all keys whose lower-cased name ends with one of
	// the given extensions. With no extensions, every key is returned.
	List(ctx context.Context, extensions ...string) ([]string, error)

	// Get returns the bytes stored under key, or domain.ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Delete removes the value stored under key. Deleting a missing
	// key returns domain.ErrNotFound.
	Delete(ctx context.Context, key string) error
}
