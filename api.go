package cacheengine

import (
	"context"
	"encoding/json"
	"time"

	"github.com/unkn0wn-root/cacheengine/codec"
	"github.com/unkn0wn-root/cacheengine/internal/wire"
	pr "github.com/unkn0wn-root/cacheengine/provider"
)

// Client is the capability set a cache orchestrator drives. Any engine that
// implements it can be swapped in; the orchestrator never sees engine state.
type Client interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	IsReady() bool
	ValidateNamespace(name string) error

	// Get returns (nil, nil) on a miss.
	Get(ctx context.Context, key Key) (*Envelope, error)
	Set(ctx context.Context, key Key, value any, ttl time.Duration) error
	Drop(ctx context.Context, key Key) error
}

// Key addresses one cached value. The partition comes from the engine.
type Key struct {
	Segment string
	ID      string
}

// Envelope is a cached value plus the time it was stored and the ttl it was
// stored with. Item holds plain decoded data (string, float64, bool, []any,
// map[string]any); use GetAs for typed access.
type Envelope = wire.Envelope

// Options configure an Engine. All fields are optional.
//
// Location and Host/Port are mutually exclusive. With neither set the engine
// targets 127.0.0.1:11211.
type Options struct {
	Location  Location      `env:"LOCATION" yaml:"location"`
	Host      string        `env:"HOST" yaml:"host"`
	Port      int           `env:"PORT" yaml:"port"`
	Partition string        `env:"PARTITION" yaml:"partition"`
	Timeout   time.Duration `env:"TIMEOUT" yaml:"timeout"` // 0 => 1s
	Idle      time.Duration `env:"IDLE" yaml:"idle"`       // 0 => 1s
	PoolSize  int           `env:"POOL_SIZE" yaml:"pool_size"`
	Format    string        `env:"CODEC" yaml:"codec"` // json (default), msgpack, cbor, protobuf

	Codec  codec.Codec      `yaml:"-"` // overrides Format when set
	Dial   pr.Dialer        `yaml:"-"` // nil => memcached
	Logger Logger           `yaml:"-"` // nil => NopLogger
	Hooks  Hooks            `yaml:"-"` // nil => NopHooks
	Now    func() time.Time `yaml:"-"` // nil => time.Now
}

// GetAs fetches key and converts the envelope item into V by way of JSON.
// ok is false on a miss.
func GetAs[V any](ctx context.Context, c Client, key Key) (v V, ok bool, err error) {
	env, err := c.Get(ctx, key)
	if err != nil || env == nil {
		return v, false, err
	}
	b, err := json.Marshal(env.Item)
	if err != nil {
		return v, false, err
	}
	if err := json.Unmarshal(b, &v); err != nil {
		return v, false, err
	}
	return v, true, nil
}
