package cacheengine

import "time"

const (
	defaultHost    = "127.0.0.1"
	defaultPort    = 11211
	defaultTimeout = 1000 * time.Millisecond
	defaultIdle    = 1000 * time.Millisecond

	// maxKeyLength is memcached's key length ceiling.
	maxKeyLength = 250
)

// coalesce returns def when v is the zero value of T - otherwise v.
func coalesce[T comparable](v, def T) T {
	var zero T
	if v == zero {
		return def
	}
	return v
}
