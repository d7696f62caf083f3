package repository

import "context"

// Storage is a string key/value store, the server-side stand-in for the
// browser's local storage. A missing key reports ok=false and no error.
type Storage interface {
	GetItem(ctx context.Context, key string) (value string, ok bool, err error)
	SetItem(ctx context.Context, key string, value string) error
}
