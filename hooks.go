package cacheengine

// Hooks are lightweight callbacks for high-signal events.
// Implementations MUST be cheap and non-blocking: they run inline on the
// calling goroutine. Wrap slow sinks with hooks/async.
type Hooks interface {
	// The engine moved between lifecycle states.
	StateChanged(from, to State)

	// Start failed. phase ∈ {PhaseDial, PhaseProbe}.
	StartFailed(phase string, err error)

	// Get found data at storageKey that is not a valid envelope.
	// reason ∈ {"malformed", "invalid"}
	EnvelopeRejected(storageKey, reason string)

	// The transport failed a call. op ∈ {"get", "set", "drop"}
	StorageFailed(op, storageKey string, err error)
}

// NopHooks is the default no-op
type NopHooks struct{}

func (NopHooks) StateChanged(State, State)           {}
func (NopHooks) StartFailed(string, error)           {}
func (NopHooks) EnvelopeRejected(string, string)     {}
func (NopHooks) StorageFailed(string, string, error) {}
