// Package memcached is the default cacheengine transport, backed by
// github.com/bradfitz/gomemcache.
package memcached

import (
	"context"
	"errors"
	"time"

	"github.com/bradfitz/gomemcache/memcache"

	pr "github.com/unkn0wn-root/cacheengine/provider"
)

var ErrNoServers = errors.New("memcached provider: no servers")

// Memcached wraps a gomemcache client. gomemcache has no context support;
// ctx is only checked before each call and Timeout bounds the network I/O.
type Memcached struct {
	c *memcache.Client
}

var _ pr.Provider = (*Memcached)(nil)

// Dial builds a client for cfg. Addresses are resolved here, so an unusable
// address fails at dial time; no connection is opened until the first call.
//
// Weights are honored by listing a server once per weight unit: gomemcache
// picks servers by key hash modulo the list length.
func Dial(_ context.Context, cfg pr.Config) (pr.Provider, error) {
	if len(cfg.Servers) == 0 {
		return nil, ErrNoServers
	}
	addrs := make([]string, 0, len(cfg.Servers))
	for _, s := range cfg.Servers {
		w := s.Weight
		if w < 1 {
			w = 1
		}
		for i := 0; i < w; i++ {
			addrs = append(addrs, s.Addr)
		}
	}

	var sl memcache.ServerList
	if err := sl.SetServers(addrs...); err != nil {
		return nil, err
	}
	c := memcache.NewFromSelector(&sl)
	if cfg.Timeout > 0 {
		c.Timeout = cfg.Timeout
	}
	if cfg.PoolSize > 0 {
		c.MaxIdleConns = cfg.PoolSize
	}
	return &Memcached{c: c}, nil
}

// New wraps an existing client.
func New(c *memcache.Client) *Memcached { return &Memcached{c: c} }

func (p *Memcached) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	it, err := p.c.Get(key)
	if errors.Is(err, memcache.ErrCacheMiss) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return it.Value, true, nil
}

func (p *Memcached) Set(ctx context.Context, key string, value []byte, lifetime time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return p.c.Set(&memcache.Item{
		Key:        key,
		Value:      value,
		Expiration: int32(lifetime / time.Second),
	})
}

func (p *Memcached) Del(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := p.c.Delete(key)
	if errors.Is(err, memcache.ErrCacheMiss) {
		return nil
	}
	return err
}

// Ping issues "version" to every server.
func (p *Memcached) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return p.c.Ping()
}

func (p *Memcached) Close(context.Context) error {
	return p.c.Close()
}
