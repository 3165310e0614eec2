// Package asynchook moves hook delivery off the caller's goroutine.
//
// usage:
//
//	raw := sloghooks.New(slog.Default(), sloghooks.Options{RejectEvery: 10})
//	hooks := asynchook.New(raw, 1, 1000) // 1 worker; queue 1000 events
//	defer hooks.Close()
//
//	eng, _ := cacheengine.New(cacheengine.Options{Hooks: hooks})
//
// Events are dropped, not queued unboundedly, when the buffer is full.
package asynchook

import (
	"sync"
	"sync/atomic"

	"github.com/unkn0wn-root/cacheengine"
)

type Hooks struct {
	inner   cacheengine.Hooks
	q       chan func()
	wg      sync.WaitGroup
	once    sync.Once
	mu      sync.RWMutex // guards closed against sends on a closed channel
	closed  bool
	dropped atomic.Uint64
}

var _ cacheengine.Hooks = (*Hooks)(nil)

func New(inner cacheengine.Hooks, workers, qlen int) *Hooks {
	if workers <= 0 {
		workers = 1
	}
	if qlen <= 0 {
		qlen = 1024
	}

	h := &Hooks{inner: inner, q: make(chan func(), qlen)}
	h.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer h.wg.Done()
			for f := range h.q {
				f()
			}
		}()
	}
	return h
}

// Close drains queued events and stops the workers. Events fired after Close
// are dropped.
func (h *Hooks) Close() {
	h.once.Do(func() {
		h.mu.Lock()
		h.closed = true
		close(h.q)
		h.mu.Unlock()
		h.wg.Wait()
	})
}

// Dropped counts events discarded because the queue was full or closed.
func (h *Hooks) Dropped() uint64 { return h.dropped.Load() }

func (h *Hooks) try(f func()) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.closed {
		h.dropped.Add(1)
		return
	}
	select {
	case h.q <- f:
	default: // drop
		h.dropped.Add(1)
	}
}

func (h *Hooks) StateChanged(from, to cacheengine.State) {
	h.try(func() { h.inner.StateChanged(from, to) })
}
func (h *Hooks) StartFailed(phase string, err error) {
	h.try(func() { h.inner.StartFailed(phase, err) })
}
func (h *Hooks) EnvelopeRejected(k, reason string) {
	h.try(func() { h.inner.EnvelopeRejected(k, reason) })
}
func (h *Hooks) StorageFailed(op, k string, err error) {
	h.try(func() { h.inner.StorageFailed(op, k, err) })
}
