package keys

import "testing"

func TestEncodeLayout(t *testing.T) {
	cases := []struct {
		partition, segment, id string
		want                   string
	}{
		{"", "test", "x", "test:x"},
		{"app", "test", "x", "app:test:x"},
		{"", "users", "", "users:"},
		{"", "a b", "c/d", "a%20b:c%2Fd"},
		{"p:1", "s:2", "i:3", "p%3A1:s%3A2:i%3A3"},
		{"", "unreserved", "-_.!~*'()", "unreserved:-_.!~*'()"},
		{"", "pct", "100%", "pct:100%25"},
		{"", "utf8", "é", "utf8:%C3%A9"},
	}
	for _, tc := range cases {
		if got := Encode(tc.partition, tc.segment, tc.id); got != tc.want {
			t.Fatalf("Encode(%q,%q,%q) = %q, want %q", tc.partition, tc.segment, tc.id, got, tc.want)
		}
	}
}

func TestEncodeDeterministic(t *testing.T) {
	a := Encode("part", "seg", "id with spaces")
	b := Encode("part", "seg", "id with spaces")
	if a != b {
		t.Fatalf("non-deterministic: %q vs %q", a, b)
	}
}

func TestEncodeNoBoundaryCollisions(t *testing.T) {
	// Each pair would collide if ':' inside a component were left as-is.
	pairs := [][2][3]string{
		{{"", "a:b", "c"}, {"", "a", "b:c"}},
		{{"a", "b", "c"}, {"", "a:b", "c"}},
		{{"", "a", "b"}, {"", "a:b", ""}},
	}
	for _, p := range pairs {
		x := Encode(p[0][0], p[0][1], p[0][2])
		y := Encode(p[1][0], p[1][1], p[1][2])
		if x == y {
			t.Fatalf("collision: %v and %v both encode to %q", p[0], p[1], x)
		}
	}
}

func TestEscapeHasNoWhitespace(t *testing.T) {
	got := Escape("a\tb\nc d\x00")
	want := "a%09b%0Ac%20d%00"
	if got != want {
		t.Fatalf("Escape = %q, want %q", got, want)
	}
}
