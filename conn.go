package cacheengine

import (
	"context"
	"strconv"
	"sync"

	"golang.org/x/sync/singleflight"

	pr "github.com/unkn0wn-root/cacheengine/provider"
)

// connManager owns the transport handle and the lifecycle state.
//
// Concurrent starts share one in-flight attempt, so at most one handle is ever
// published. stop bumps epoch; an attempt that finishes under an older epoch
// closes its handle instead of publishing it.
type connManager struct {
	cfg      pr.Config
	location string
	dial     pr.Dialer
	log      Logger
	hooks    Hooks

	flight singleflight.Group

	mu     sync.RWMutex
	handle pr.Provider
	state  State
	epoch  uint64
}

func newConnManager(s Settings, dial pr.Dialer, log Logger, hooks Hooks) *connManager {
	return &connManager{
		cfg:      s.providerConfig(),
		location: s.Location.String(),
		dial:     dial,
		log:      log,
		hooks:    hooks,
	}
}

// start is idempotent: with a live handle it returns nil without probing.
// Each caller stops waiting when its own ctx ends; the shared attempt keeps
// running for the others.
func (m *connManager) start(ctx context.Context) error {
	m.mu.RLock()
	live, epoch := m.handle != nil, m.epoch
	m.mu.RUnlock()
	if live {
		return nil
	}

	// Keyed by epoch: a start issued after stop must not join an attempt
	// that stop has already condemned.
	octx := context.WithoutCancel(ctx)
	ch := m.flight.DoChan(strconv.FormatUint(epoch, 10), func() (any, error) {
		return nil, m.open(octx, epoch)
	})
	select {
	case r := <-ch:
		return r.Err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (m *connManager) open(ctx context.Context, epoch uint64) error {
	m.mu.Lock()
	if m.epoch != epoch {
		m.mu.Unlock()
		return ErrStartAborted
	}
	if m.handle != nil {
		m.mu.Unlock()
		return nil
	}
	from := m.setState(StateConnecting)
	m.mu.Unlock()
	m.hooks.StateChanged(from, StateConnecting)

	p, err := m.dial(ctx, m.cfg)
	if err != nil {
		return m.fail(epoch, PhaseDial, err)
	}
	if err := p.Ping(ctx); err != nil {
		_ = p.Close(ctx)
		return m.fail(epoch, PhaseProbe, err)
	}

	m.mu.Lock()
	if m.epoch != epoch {
		m.mu.Unlock()
		_ = p.Close(ctx)
		return ErrStartAborted
	}
	if m.handle != nil {
		m.mu.Unlock()
		_ = p.Close(ctx)
		return nil
	}
	m.handle = p
	from = m.setState(StateReady)
	m.mu.Unlock()

	m.hooks.StateChanged(from, StateReady)
	m.log.Info("cacheengine connected", Fields{"location": m.location})
	return nil
}

func (m *connManager) fail(epoch uint64, phase string, err error) error {
	m.mu.Lock()
	stale := m.epoch != epoch
	var from State
	if !stale {
		from = m.setState(StateUnconnected)
	}
	m.mu.Unlock()

	if !stale {
		m.hooks.StateChanged(from, StateUnconnected)
	}
	m.hooks.StartFailed(phase, err)
	return &ConnectionError{Phase: phase, Location: m.location, Err: err}
}

// stop closes the handle if there is one. Without a handle or an in-flight
// start it is a no-op.
func (m *connManager) stop(ctx context.Context) error {
	m.mu.Lock()
	h := m.handle
	if h == nil && m.state != StateConnecting {
		m.mu.Unlock()
		return nil
	}
	m.epoch++
	m.handle = nil
	from := m.setState(StateStopped)
	m.mu.Unlock()

	m.hooks.StateChanged(from, StateStopped)
	m.log.Debug("cacheengine stopped", Fields{"location": m.location})
	if h == nil {
		return nil
	}
	return h.Close(ctx)
}

// current returns the handle when Ready.
func (m *connManager) current() (pr.Provider, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.handle, m.state == StateReady
}

func (m *connManager) currentState() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// setState must be called with mu held. It returns the previous state.
func (m *connManager) setState(s State) State {
	from := m.state
	m.state = s
	return from
}
