// Package kv provides the key/value repository backing local durable
// storage for the GymTracker client (session record, mock user registry,
// anamnesis markers).
package kv

import "context"

// Repository is a simple byte-value store keyed by string.
// Get returns (nil, nil) when the key is absent.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
