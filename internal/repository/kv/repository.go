package kv

import "context"

// Repository is durable key-value storage for the session. Get returns domain.ErrNotFound
// for absent keys; Delete ignores keys that do not exist.
type Repository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
	Ping(ctx context.Context) error
}
