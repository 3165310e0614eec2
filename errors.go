package cacheengine

import (
	"errors"
	"fmt"

	"github.com/unkn0wn-root/cacheengine/internal/wire"
)

var (
	// ErrNotReady is returned by Get/Set/Drop unless the engine is Ready.
	ErrNotReady = errors.New("cacheengine: connection is not ready")

	ErrInvalidNamespace = errors.New("cacheengine: invalid namespace")
	ErrInvalidKey       = errors.New("cacheengine: invalid key")

	// Envelope errors describe corrupt or foreign data found at a key.
	// They are returned as-is and never masked as misses.
	ErrMalformedEnvelope = wire.ErrMalformed
	ErrInvalidEnvelope   = wire.ErrInvalid

	// ErrTTLRange is wrapped by a SerializationError when ttl > 2147483647ms.
	ErrTTLRange = wire.ErrTTLRange

	// ErrStartAborted is returned by a Start overtaken by Stop.
	ErrStartAborted = errors.New("cacheengine: stopped while starting")
)

// ConfigError rejects an Options value at construction.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("cacheengine: invalid config (%s): %s", e.Field, e.Reason)
}

type NamespaceError struct {
	Name   string
	Reason string
}

func (e *NamespaceError) Error() string {
	return fmt.Sprintf("cacheengine: invalid namespace %q: %s", e.Name, e.Reason)
}

func (e *NamespaceError) Is(target error) bool { return target == ErrInvalidNamespace }

type KeyError struct {
	Key    Key
	Reason string
}

func (e *KeyError) Error() string {
	return fmt.Sprintf("cacheengine: invalid key {segment:%q id:%q}: %s", e.Key.Segment, e.Key.ID, e.Reason)
}

func (e *KeyError) Is(target error) bool { return target == ErrInvalidKey }

// SerializationError means the value given to Set cannot be stored.
// Error() is the serializer's message, unchanged. Not retryable.
type SerializationError struct {
	Err error
}

func (e *SerializationError) Error() string { return e.Err.Error() }
func (e *SerializationError) Unwrap() error { return e.Err }

// StorageError is a transport failure during get, set or drop.
// The transport's message is kept verbatim at the end of Error().
type StorageError struct {
	Op  string // "get", "set", "drop"
	Key string // storage key
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("cacheengine: %s %q: %s", e.Op, e.Key, e.Err.Error())
}

func (e *StorageError) Unwrap() error { return e.Err }

const (
	PhaseDial  = "dial"  // opening the transport handle
	PhaseProbe = "probe" // liveness check on a freshly opened handle
)

// ConnectionError is a Start failure. Phase separates early (dial) failures
// from late (probe) ones; Err is the transport's own error.
type ConnectionError struct {
	Phase    string
	Location string
	Err      error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("cacheengine: %s %s: %s", e.Phase, e.Location, e.Err.Error())
}

func (e *ConnectionError) Unwrap() error { return e.Err }
