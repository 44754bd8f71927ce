// Package metadata persists small key/value settings in the local database:
// the bearer credential and the last login name.
package metadata

import "context"

// Repository is a string key/value store. Get returns common.ErrNotFound
// for absent keys.
type Repository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
	List(ctx context.Context) (map[string]string, error)
	Clear(ctx context.Context) error
}
