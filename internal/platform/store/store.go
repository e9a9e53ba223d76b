// Package store defines the key-value backend the entity layer persists
// through, along with the available driver implementations (memory, Redis,
// Postgres).
package store

import "context"

// Driver names accepted by the STORE_DRIVER configuration key.
const (
	DriverMemory   = "memory"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
)

// Backend is a durable key-value store addressed by string keys. Backends
// serialize individual key reads and writes but provide no multi-key
// transactions; any cross-key consistency is the caller's concern.
type Backend interface {
	// Get returns the value stored under key and whether the key was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Put stores value under key, overwriting any previous value.
	Put(ctx context.Context, key string, value []byte) error
	// Delete removes key, reporting whether a value was actually removed.
	Delete(ctx context.Context, key string) (bool, error)
	// Exists reports whether key currently holds a value.
	Exists(ctx context.Context, key string) (bool, error)
}
