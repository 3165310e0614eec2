package cacheengine

import (
	"context"
	"errors"
	"time"

	"github.com/unkn0wn-root/cacheengine/codec"
	"github.com/unkn0wn-root/cacheengine/internal/keys"
	"github.com/unkn0wn-root/cacheengine/internal/wire"
	"github.com/unkn0wn-root/cacheengine/provider/memcached"
)

// Engine is the memcached cache engine. Create with New; the zero value is
// not usable. Safe for concurrent use.
type Engine struct {
	settings Settings
	codec    codec.Codec
	now      func() time.Time
	log      Logger
	hooks    Hooks
	conn     *connManager
}

var _ Client = (*Engine)(nil)

// New resolves opts into Settings. It fails with a *ConfigError on
// conflicting or out-of-range options and performs no I/O.
func New(opts Options) (*Engine, error) {
	s, err := resolveSettings(opts)
	if err != nil {
		return nil, err
	}
	c, err := resolveCodec(opts, s)
	if err != nil {
		return nil, err
	}
	s.Codec = c.Name()

	e := &Engine{
		settings: s,
		codec:    c,
		now:      opts.Now,
		log:      coalesce[Logger](opts.Logger, NopLogger{}),
		hooks:    coalesce[Hooks](opts.Hooks, NopHooks{}),
	}
	if e.now == nil {
		e.now = time.Now
	}
	dial := opts.Dial
	if dial == nil {
		dial = memcached.Dial
	}
	e.conn = newConnManager(s, dial, e.log, e.hooks)
	return e, nil
}

// Settings returns the resolved settings.
func (e *Engine) Settings() Settings { return e.settings }

// State reports the lifecycle state.
func (e *Engine) State() State { return e.conn.currentState() }

// Start opens and probes the transport. Calling it while Ready is a no-op;
// concurrent calls share one attempt. Failures are *ConnectionError values
// wrapping the transport error.
func (e *Engine) Start(ctx context.Context) error { return e.conn.start(ctx) }

// Stop closes the transport. Stop without a connection is a no-op. After Stop
// the engine behaves as unconnected and may be started again.
func (e *Engine) Stop(ctx context.Context) error { return e.conn.stop(ctx) }

func (e *Engine) IsReady() bool {
	_, ok := e.conn.current()
	return ok
}

// Get returns the envelope stored at key, or (nil, nil) on a miss.
// Corrupt data is reported as ErrMalformedEnvelope / ErrInvalidEnvelope.
func (e *Engine) Get(ctx context.Context, key Key) (*Envelope, error) {
	h, ok := e.conn.current()
	if !ok {
		return nil, ErrNotReady
	}
	k, err := e.storageKey(key)
	if err != nil {
		return nil, err
	}

	raw, found, err := h.Get(ctx, k)
	if err != nil {
		e.hooks.StorageFailed("get", k, err)
		return nil, &StorageError{Op: "get", Key: k, Err: err}
	}
	if !found {
		return nil, nil
	}

	env, err := wire.Decode(e.codec, raw)
	if err != nil {
		reason := "invalid"
		if errors.Is(err, wire.ErrMalformed) {
			reason = "malformed"
		}
		e.hooks.EnvelopeRejected(k, reason)
		return nil, err
	}
	return env, nil
}

// Set stores value under key for ttl. ttl is kept in the envelope as given;
// the backend lifetime is max(1s, floor(ttl)) in whole seconds, so ttl <= 0
// still stores. Values that cannot be encoded fail with *SerializationError
// before anything is sent.
func (e *Engine) Set(ctx context.Context, key Key, value any, ttl time.Duration) error {
	h, ok := e.conn.current()
	if !ok {
		return ErrNotReady
	}
	k, err := e.storageKey(key)
	if err != nil {
		return err
	}

	raw, err := wire.Encode(e.codec, value, ttl, e.now())
	if err != nil {
		return &SerializationError{Err: err}
	}
	if err := h.Set(ctx, k, raw, wire.Lifetime(ttl)); err != nil {
		e.hooks.StorageFailed("set", k, err)
		return &StorageError{Op: "set", Key: k, Err: err}
	}
	return nil
}

// Drop deletes key. Dropping an absent key succeeds.
func (e *Engine) Drop(ctx context.Context, key Key) error {
	h, ok := e.conn.current()
	if !ok {
		return ErrNotReady
	}
	k, err := e.storageKey(key)
	if err != nil {
		return err
	}
	if err := h.Del(ctx, k); err != nil {
		e.hooks.StorageFailed("drop", k, err)
		return &StorageError{Op: "drop", Key: k, Err: err}
	}
	return nil
}

// storageKey fails fast on keys that could only produce garbage on the wire.
// Length is left to the backend.
func (e *Engine) storageKey(key Key) (string, error) {
	if key.Segment == "" {
		return "", &KeyError{Key: key, Reason: "empty segment"}
	}
	return keys.Encode(e.settings.Partition, key.Segment, key.ID), nil
}
