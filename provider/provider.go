// Package provider defines the transport abstraction used by cacheengine.
//
// A Provider is a handle onto a remote (or in-process) key-value server. It is
// opened by a Dialer, probed with Ping, and closed exactly once. Implementations
// must be byte-for-byte transparent: Get returns exactly the bytes given to Set.
//
// Errors returned by a Provider are surfaced to callers with their message
// intact, so implementations should return the transport's own errors rather
// than rewording them.
package provider

import (
	"context"
	"net"
	"strconv"
	"time"
)

// Provider is a minimal byte store with per-entry lifetimes.
// Must be safe for concurrent use.
type Provider interface {
	// Get returns (value, true, nil) on hit; (nil, false, nil) on miss.
	// If an IO/remote error happens, return (nil, false, err).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value for lifetime. lifetime is always a positive whole
	// number of seconds when called by cacheengine.
	Set(ctx context.Context, key string, value []byte, lifetime time.Duration) error

	// Del removes a key. Deleting an absent key is not an error.
	Del(ctx context.Context, key string) error

	// Ping is a side-effect free liveness probe.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close(ctx context.Context) error
}

// Server is a single backend address with a relative weight (>= 1).
type Server struct {
	Addr   string
	Weight int
}

// Config is what a Dialer receives: the resolved address plus tuning values.
type Config struct {
	Servers  []Server
	Timeout  time.Duration // per-operation network timeout
	Idle     time.Duration // idle connection lifetime, where the transport supports it
	PoolSize int           // max idle connections per server; 0 => transport default
}

// Dialer opens a Provider. Dialing must not be the liveness check: cacheengine
// calls Ping right after a successful dial.
type Dialer func(ctx context.Context, cfg Config) (Provider, error)

// Addrs flattens Servers into a plain address list, ignoring weights.
func (c Config) Addrs() []string {
	out := make([]string, 0, len(c.Servers))
	for _, s := range c.Servers {
		out = append(out, s.Addr)
	}
	return out
}

// JoinHostPort is net.JoinHostPort for an integer port.
func JoinHostPort(host string, port int) string {
	return net.JoinHostPort(host, strconv.Itoa(port))
}
