// Package codec holds the serializers used to turn cache envelopes into the
// bytes stored on the backend.
//
// Every codec must round-trip a map[string]any whose values are plain data
// (strings, numbers, bools, nil, slices and string-keyed maps). Unmarshal into
// a *map[string]any must yield string-keyed maps at every level.
package codec

// Codec marshals envelope records to bytes and back.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(b []byte, v any) error
	// Name is a short stable identifier (e.g. "json"), used in logs and config.
	Name() string
}

// ByName returns the built-in codec registered under name.
// The empty string selects JSON.
func ByName(name string) (Codec, bool) {
	switch name {
	case "", "json":
		return JSON{}, true
	case "msgpack":
		return Msgpack{}, true
	case "cbor":
		c, err := NewCBOR(false)
		if err != nil {
			return nil, false
		}
		return c, true
	case "protobuf":
		return Protobuf{}, true
	}
	return nil, false
}
