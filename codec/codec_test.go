package codec

import (
	"strings"
	"testing"
)

func allCodecs() []Codec {
	return []Codec{JSON{}, Msgpack{}, MustCBOR(false), MustCBOR(true), Protobuf{}}
}

func TestNestedMapsDecodeStringKeyed(t *testing.T) {
	in := map[string]any{
		"item":   map[string]any{"name": "ada", "tags": []any{"a", "b"}},
		"stored": int64(1700000000000),
	}
	for _, c := range allCodecs() {
		b, err := c.Marshal(in)
		if err != nil {
			t.Fatalf("%s: marshal: %v", c.Name(), err)
		}
		var out map[string]any
		if err := c.Unmarshal(b, &out); err != nil {
			t.Fatalf("%s: unmarshal: %v", c.Name(), err)
		}
		item, ok := out["item"].(map[string]any)
		if !ok {
			t.Fatalf("%s: item decoded as %T, want map[string]any", c.Name(), out["item"])
		}
		if item["name"] != "ada" {
			t.Fatalf("%s: name = %v", c.Name(), item["name"])
		}
	}
}

func TestByName(t *testing.T) {
	for _, name := range []string{"", "json", "msgpack", "cbor", "protobuf"} {
		c, ok := ByName(name)
		if !ok || c == nil {
			t.Fatalf("ByName(%q) not found", name)
		}
	}
	if _, ok := ByName("yaml"); ok {
		t.Fatalf("ByName(yaml) should not resolve")
	}
}

func TestProtobufRejectsUnsupportedValues(t *testing.T) {
	_, err := Protobuf{}.Marshal(map[string]any{"item": struct{ A int }{1}})
	if err == nil {
		t.Fatalf("expected error for struct item")
	}
	if _, err := (Protobuf{}).Marshal("not a record"); err == nil {
		t.Fatalf("expected error for non-map record")
	}
}

func TestLimitEncodeAndDecode(t *testing.T) {
	c := Limit{Inner: JSON{}, MaxEncode: 16, MaxDecode: 8}

	if _, err := c.Marshal(map[string]any{"item": strings.Repeat("x", 32)}); err == nil ||
		!strings.Contains(err.Error(), "payload too large") {
		t.Fatalf("expected encode limit error, got %v", err)
	}
	if _, err := c.Marshal(map[string]any{"a": 1}); err != nil {
		t.Fatalf("small payload rejected: %v", err)
	}

	var out map[string]any
	if err := c.Unmarshal([]byte(`{"item":"long value"}`), &out); err == nil {
		t.Fatalf("expected decode limit error")
	}
	if c.Name() != "json" {
		t.Fatalf("Name = %q", c.Name())
	}
}
