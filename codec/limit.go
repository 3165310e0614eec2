package codec

import "fmt"

// MaxItemSize is memcached's default item size ceiling (1 MiB).
const MaxItemSize = 1 << 20

// Limit wraps another codec to enforce maximum payload sizes.
// If MaxEncode or MaxDecode is <= 0, that direction is not limited.
//
// Checking MaxEncode locally turns an oversized value into a serialization
// error instead of a server-side rejection after the bytes were sent.
type Limit struct {
	// Inner is the underlying codec being wrapped. It must be set.
	Inner     Codec
	MaxEncode int
	MaxDecode int
}

var _ Codec = Limit{}

func (c Limit) Marshal(v any) ([]byte, error) {
	b, err := c.Inner.Marshal(v)
	if err != nil {
		return nil, err
	}
	if c.MaxEncode > 0 && len(b) > c.MaxEncode {
		return nil, fmt.Errorf("payload too large: %d > %d", len(b), c.MaxEncode)
	}
	return b, nil
}

func (c Limit) Unmarshal(b []byte, v any) error {
	if c.MaxDecode > 0 && len(b) > c.MaxDecode {
		return fmt.Errorf("payload too large: %d > %d", len(b), c.MaxDecode)
	}
	return c.Inner.Unmarshal(b, v)
}

func (c Limit) Name() string { return c.Inner.Name() }
