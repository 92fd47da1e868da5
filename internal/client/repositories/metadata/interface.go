// Package metadata is the CLI's local key/value store. The auth service keeps
// the session marker (token cookie value and username) here.
package metadata

import (
	"context"
	"time"
)

// Entry is one stored key with the time it was last written.
type Entry struct {
	Key       string
	Value     []byte
	UpdatedAt time.Time
}

// Repository is a small key/value store. Get and Lookup return (nil, nil)
// for a missing key.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Lookup(ctx context.Context, key string) (*Entry, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}
