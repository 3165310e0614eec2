package cacheengine

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateNamespaceRejects(t *testing.T) {
	e, err := New(Options{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	cases := []struct {
		name   string
		reason string
	}{
		{"", "empty string"},
		{"a\x00b", "includes null character"},
		{"\x00test", "includes null character"},
		{" a", "includes spacing character(s)"},
		{"a\tb", "includes spacing character(s)"},
		{"a\nb", "includes spacing character(s)"},
		{"a b", "includes spacing character(s)"},
		{strings.Repeat("n", 251), "segment and partition name lengths exceed 250 characters"},
	}
	for _, tc := range cases {
		err := e.ValidateNamespace(tc.name)
		if !errors.Is(err, ErrInvalidNamespace) {
			t.Fatalf("ValidateNamespace(%q) = %v, want ErrInvalidNamespace", tc.name, err)
		}
		var ne *NamespaceError
		if !errors.As(err, &ne) || ne.Reason != tc.reason {
			t.Fatalf("ValidateNamespace(%q) reason = %v, want %q", tc.name, err, tc.reason)
		}
	}
}

func TestValidateNamespaceAccepts(t *testing.T) {
	e, _ := New(Options{})
	for _, name := range []string{"valid", "users:profile", strings.Repeat("n", 250), "ünïcode"} {
		if err := e.ValidateNamespace(name); err != nil {
			t.Fatalf("ValidateNamespace(%q) = %v", name, err)
		}
	}
}

func TestValidateNamespaceCountsPartition(t *testing.T) {
	e, _ := New(Options{Partition: strings.Repeat("p", 50)})
	if err := e.ValidateNamespace(strings.Repeat("n", 200)); err != nil {
		t.Fatalf("200+50 should pass: %v", err)
	}
	if err := e.ValidateNamespace(strings.Repeat("n", 201)); !errors.Is(err, ErrInvalidNamespace) {
		t.Fatalf("201+50 should fail, got %v", err)
	}
}
