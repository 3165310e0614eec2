package codec

import "github.com/vmihailenco/msgpack/v5"

// Msgpack serializes envelopes using vmihailenco/msgpack/v5.
// The zero value is ready to use.
//
// Nested maps decode as map[string]any as long as their keys were strings.
type Msgpack struct{}

var _ Codec = Msgpack{}

func (Msgpack) Marshal(v any) ([]byte, error) {
	return msgpack.Marshal(v)
}

func (Msgpack) Unmarshal(b []byte, v any) error {
	return msgpack.Unmarshal(b, v)
}

func (Msgpack) Name() string { return "msgpack" }
