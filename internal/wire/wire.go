package wire

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"time"

	"github.com/unkn0wn-root/cacheengine/codec"
)

// MaxTTL is the longest lifetime an envelope may request. Bounding it at
// 2^31-1 ms also keeps the derived second count below memcached's 30 day
// cutoff, above which expirations are read as absolute unix times.
const MaxTTL = math.MaxInt32 * time.Millisecond

var (
	ErrMalformed = errors.New("cacheengine: bad envelope content")
	ErrInvalid   = errors.New("cacheengine: incorrect envelope structure")
	// ErrTTLRange keeps the wording callers already match on.
	ErrTTLRange = errors.New("Invalid ttl (greater than 2147483647)") //nolint:staticcheck
)

// Envelope is the stored form of a cached value.
//
// record: {"item": <value>, "stored": <ms since epoch>, "ttl": <ms>}
type Envelope struct {
	Item   any
	Stored int64 // ms since epoch, set at encode time
	TTL    int64 // ms, as requested by the caller
}

// StoredAt returns Stored as a time.Time.
func (e *Envelope) StoredAt() time.Time { return time.UnixMilli(e.Stored) }

// Lifetime returns TTL as a time.Duration.
func (e *Envelope) Lifetime() time.Duration { return time.Duration(e.TTL) * time.Millisecond }

// CycleError reports a value graph that refers back to itself.
type CycleError struct {
	Type reflect.Type
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("converting circular structure: value of type %s references itself", e.Type)
}

// Encode builds the envelope record for item and serializes it with c.
// Nothing is returned on failure, so callers never store partial data.
func Encode(c codec.Codec, item any, ttl time.Duration, now time.Time) ([]byte, error) {
	if ttl > MaxTTL {
		return nil, ErrTTLRange
	}
	if err := checkAcyclic(item); err != nil {
		return nil, err
	}
	return c.Marshal(map[string]any{
		"item":   item,
		"stored": now.UnixMilli(),
		"ttl":    ttl.Milliseconds(),
	})
}

// Lifetime converts a requested ttl into the whole-second lifetime handed to the
// backend: max(1, floor(ms/1000)). Sub-second and non-positive ttls store with
// the minimal lifetime instead of being skipped.
func Lifetime(ttl time.Duration) time.Duration {
	secs := ttl.Milliseconds() / 1000
	if secs < 1 {
		secs = 1
	}
	return time.Duration(secs) * time.Second
}

// Decode parses raw into an Envelope. Empty raw is a miss: (nil, nil).
//
// Unparseable bytes yield ErrMalformed. A record without a non-null item, or
// whose stored is absent, non-integral or not positive, yields ErrInvalid.
// ttl is echoed back and never compared against the clock.
func Decode(c codec.Codec, raw []byte) (*Envelope, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var v any
	if err := c.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, ErrInvalid
	}
	item, ok := m["item"]
	if !ok || item == nil {
		return nil, ErrInvalid
	}
	stored, ok := toInt64(m["stored"])
	if !ok || stored <= 0 {
		return nil, ErrInvalid
	}
	ttl, _ := toInt64(m["ttl"])
	return &Envelope{Item: item, Stored: stored, TTL: ttl}, nil
}

func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		if n > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	case uint:
		if uint64(n) > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	case float64:
		return floatToInt64(n)
	case float32:
		return floatToInt64(float64(n))
	case json.Number:
		i, err := n.Int64()
		return i, err == nil
	}
	return 0, false
}

func floatToInt64(f float64) (int64, bool) {
	if f != math.Trunc(f) || math.IsInf(f, 0) || f > math.MaxInt64 || f < math.MinInt64 {
		return 0, false
	}
	return int64(f), true
}
