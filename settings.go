package cacheengine

import (
	"time"

	"github.com/unkn0wn-root/cacheengine/codec"
	"github.com/unkn0wn-root/cacheengine/provider"
)

// Settings is the resolved, immutable form of Options.
type Settings struct {
	Location  Location
	Partition string
	Timeout   time.Duration
	Idle      time.Duration
	PoolSize  int
	Codec     string
}

// providerConfig is what the Dialer sees.
func (s Settings) providerConfig() provider.Config {
	return provider.Config{
		Servers:  s.Location.Servers(),
		Timeout:  s.Timeout,
		Idle:     s.Idle,
		PoolSize: s.PoolSize,
	}
}

// resolveSettings merges o over the defaults. It has no side effects; o is
// never modified and no shared state is touched.
func resolveSettings(o Options) (Settings, error) {
	if !o.Location.IsZero() && (o.Host != "" || o.Port != 0) {
		return Settings{}, &ConfigError{
			Field:  "location",
			Reason: "cannot specify both location and host/port",
		}
	}
	if o.Port < 0 || o.Port > 65535 {
		return Settings{}, &ConfigError{Field: "port", Reason: "out of range"}
	}
	if o.Timeout < 0 {
		return Settings{}, &ConfigError{Field: "timeout", Reason: "negative"}
	}
	if o.Idle < 0 {
		return Settings{}, &ConfigError{Field: "idle", Reason: "negative"}
	}
	if o.PoolSize < 0 {
		return Settings{}, &ConfigError{Field: "pool_size", Reason: "negative"}
	}

	loc := o.Location
	if loc.IsZero() {
		loc = Addr(provider.JoinHostPort(coalesce(o.Host, defaultHost), coalesce(o.Port, defaultPort)))
	}

	return Settings{
		Location:  loc,
		Partition: o.Partition,
		Timeout:   coalesce(o.Timeout, defaultTimeout),
		Idle:      coalesce(o.Idle, defaultIdle),
		PoolSize:  o.PoolSize,
		Codec:     coalesce(o.Format, "json"),
	}, nil
}

// resolveCodec picks the envelope codec. An explicit Options.Codec is used
// as-is; named codecs are capped at memcached's item size.
func resolveCodec(o Options, s Settings) (codec.Codec, error) {
	if o.Codec != nil {
		return o.Codec, nil
	}
	c, ok := codec.ByName(s.Codec)
	if !ok {
		return nil, &ConfigError{Field: "codec", Reason: "unknown codec " + s.Codec}
	}
	return codec.Limit{Inner: c, MaxEncode: codec.MaxItemSize}, nil
}
