package cacheengine

import "testing"

func TestLocationTextRoundTrip(t *testing.T) {
	for _, in := range []string{"a:1", "a:1,b:2", "a:1,b:2=3"} {
		var l Location
		if err := l.UnmarshalText([]byte(in)); err != nil {
			t.Fatalf("UnmarshalText(%q): %v", in, err)
		}
		b, _ := l.MarshalText()
		if string(b) != in {
			t.Fatalf("round trip %q => %q", in, b)
		}
	}
}

func TestLocationTextTolerance(t *testing.T) {
	var l Location
	if err := l.UnmarshalText([]byte(" a:1 , ,b:2 ")); err != nil {
		t.Fatal(err)
	}
	if l.String() != "a:1,b:2" {
		t.Fatalf("got %q", l)
	}
	if err := l.UnmarshalText([]byte("")); err != nil || !l.IsZero() {
		t.Fatalf("empty text should reset location, got %q %v", l, err)
	}
}

func TestLocationTextBadWeight(t *testing.T) {
	for _, in := range []string{"a:1=0", "a:1=x", "a:1=-2"} {
		var l Location
		if err := l.UnmarshalText([]byte(in)); err == nil {
			t.Fatalf("UnmarshalText(%q) should fail", in)
		}
	}
}

func TestWeightedIsSorted(t *testing.T) {
	l := Weighted(map[string]int{"c:1": 1, "a:1": 2, "b:1": 1})
	if l.String() != "a:1=2,b:1,c:1" {
		t.Fatalf("got %q", l)
	}
}

func TestZeroLocation(t *testing.T) {
	var l Location
	if !l.IsZero() || l.String() != "" || len(l.Servers()) != 0 {
		t.Fatalf("zero location: %q", l)
	}
}
