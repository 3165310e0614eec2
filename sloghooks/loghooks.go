package sloghooks

import (
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"sync/atomic"

	"github.com/unkn0wn-root/cacheengine"
)

type Options struct {
	// Sampling to avoid floods; 0/1 = log all.
	RejectEvery  uint64
	FailureEvery uint64
	// Optional key redactor. Defaults to SHA-256 prefix.
	Redact func(string) string
}

type Hooks struct {
	l    *slog.Logger
	opts Options

	rejectCtr  atomic.Uint64
	failureCtr atomic.Uint64
}

var _ cacheengine.Hooks = (*Hooks)(nil)

func New(l *slog.Logger, opts Options) *Hooks {
	return &Hooks{l: l, opts: opts}
}

func (h *Hooks) redact(k string) string {
	if h.opts.Redact != nil {
		return h.opts.Redact(k)
	}
	sum := sha256.Sum256([]byte(k))
	return hex.EncodeToString(sum[:8])
}

func sample(n uint64, ctr *atomic.Uint64) bool {
	if n == 0 || n == 1 {
		return true
	}
	return ctr.Add(1)%n == 0
}

func (h *Hooks) StateChanged(from, to cacheengine.State) {
	if h.l == nil {
		return
	}
	h.l.Info("cacheengine.state_changed",
		"from", from.String(),
		"to", to.String())
}

func (h *Hooks) StartFailed(phase string, err error) {
	if h.l == nil {
		return
	}
	h.l.Error("cacheengine.start_failed",
		"phase", phase,
		"err", err)
}

func (h *Hooks) EnvelopeRejected(storageKey, reason string) {
	if h.l == nil || !sample(h.opts.RejectEvery, &h.rejectCtr) {
		return
	}
	h.l.Warn("cacheengine.envelope_rejected",
		"key", h.redact(storageKey),
		"reason", reason)
}

func (h *Hooks) StorageFailed(op, storageKey string, err error) {
	if h.l == nil || !sample(h.opts.FailureEvery, &h.failureCtr) {
		return
	}
	h.l.Warn("cacheengine.storage_failed",
		"op", op,
		"key", h.redact(storageKey),
		"err", err)
}
