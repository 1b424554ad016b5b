package storage

import (
	"context"
	"errors"
)

// Keys of the two persisted documents.
const (
	DataKey  = "armor.data.v1"
	StateKey = "armor.state.v2"
)

// ErrNotFound is returned by Get when nothing is stored under the key.
var ErrNotFound = errors.New("document not found")

// DocumentStore is a key-value store of raw JSON documents.
type DocumentStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, body []byte) error
	Delete(ctx context.Context, key string) error
}
