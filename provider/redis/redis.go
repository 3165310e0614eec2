package redis

import (
	"context"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"

	pr "github.com/unkn0wn-root/cacheengine/provider"
)

var ErrNilClient = errors.New("redis provider: nil client")

// Redis lets a cacheengine talk to a Redis server instead of memcached.
type Redis struct {
	rdb         goredis.UniversalClient
	closeClient bool
}

var _ pr.Provider = (*Redis)(nil)

type Config struct {
	Client      goredis.UniversalClient
	CloseClient bool // set true only if this provider exclusively owns the client
}

func New(cfg Config) (*Redis, error) {
	if cfg.Client == nil {
		return nil, ErrNilClient
	}
	return &Redis{rdb: cfg.Client, closeClient: cfg.CloseClient}, nil
}

// Dial is a pr.Dialer. Weights are ignored; a single address yields a plain
// client, several yield a cluster client.
func Dial(_ context.Context, cfg pr.Config) (pr.Provider, error) {
	opts := &goredis.UniversalOptions{
		Addrs:           cfg.Addrs(),
		DialTimeout:     cfg.Timeout,
		ReadTimeout:     cfg.Timeout,
		WriteTimeout:    cfg.Timeout,
		ConnMaxIdleTime: cfg.Idle,
		PoolSize:        cfg.PoolSize,
		MaxRetries:      -1, // retries belong to the caller
	}
	return New(Config{Client: goredis.NewUniversalClient(opts), CloseClient: true})
}

func (p *Redis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := p.rdb.Get(ctx, key).Bytes()
	if err == goredis.Nil {
		return nil, false, nil // miss
	}
	if err != nil {
		return nil, false, err // transport/server error
	}
	return b, true, nil
}

func (p *Redis) Set(ctx context.Context, key string, value []byte, lifetime time.Duration) error {
	return p.rdb.Set(ctx, key, value, lifetime).Err()
}

// Del is idempotent: DEL on a missing key returns 0, not an error.
func (p *Redis) Del(ctx context.Context, key string) error {
	return p.rdb.Del(ctx, key).Err()
}

func (p *Redis) Ping(ctx context.Context) error {
	return p.rdb.Ping(ctx).Err()
}

// Close releases the underlying redis client only when this provider owns it.
// Safe to call multiple times; repeated calls become no-ops.
func (p *Redis) Close(context.Context) error {
	if p.closeClient {
		if err := p.rdb.Close(); err != nil && !errors.Is(err, goredis.ErrClosed) {
			return err
		}
	}
	return nil
}
