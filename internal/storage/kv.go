package storage

import (
	"context"
	"errors"
)

// ErrNotExist is returned by Get when no value is stored under the key.
var ErrNotExist = errors.New("storage: key does not exist")

// KV is the snapshot persistence surface. Values are opaque blobs
// (the datastore writes JSON) and every Set replaces the previous value.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
}
