package codec

import (
	"fmt"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// Protobuf stores envelopes as google.protobuf.Struct messages.
// The zero value is ready to use.
//
// Only structpb-compatible values can be marshaled: nil, bool, integers,
// floats, string, []byte, []any and map[string]any. Numbers come back as float64.
type Protobuf struct{}

var _ Codec = Protobuf{}

func (Protobuf) Marshal(v any) ([]byte, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("protobuf codec: unsupported record type %T", v)
	}
	s, err := structpb.NewStruct(m)
	if err != nil {
		return nil, err
	}
	return proto.Marshal(s)
}

// Unmarshal accepts *map[string]any or *any as target.
func (Protobuf) Unmarshal(b []byte, v any) error {
	var s structpb.Struct
	switch out := v.(type) {
	case *map[string]any:
		if err := proto.Unmarshal(b, &s); err != nil {
			return err
		}
		*out = s.AsMap()
	case *any:
		if err := proto.Unmarshal(b, &s); err != nil {
			return err
		}
		*out = s.AsMap()
	default:
		return fmt.Errorf("protobuf codec: unsupported target type %T", v)
	}
	return nil
}

func (Protobuf) Name() string { return "protobuf" }
