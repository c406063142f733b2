// Package kv stores small named string values in the client's local state
// database.
package kv

import "context"

// Repository is a string key/value store. Get reports a missing key with
// ok == false and a nil error.
type Repository interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
