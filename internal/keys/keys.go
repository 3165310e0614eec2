// Package keys derives flat memcached keys from (partition, segment, id) triples.
package keys

import "strings"

const upperhex = "0123456789ABCDEF"

// Encode returns "segment:id", or "partition:segment:id" when partition is set.
// Every component is escaped independently, so a ':' inside a component can
// never be mistaken for a boundary.
func Encode(partition, segment, id string) string {
	var b strings.Builder
	b.Grow(len(partition) + len(segment) + len(id) + 2)
	if partition != "" {
		escape(&b, partition)
		b.WriteByte(':')
	}
	escape(&b, segment)
	b.WriteByte(':')
	escape(&b, id)
	return b.String()
}

// Escape percent-encodes s the way encodeURIComponent does: every byte outside
// the unreserved set becomes %XX.
func Escape(s string) string {
	var b strings.Builder
	escape(&b, s)
	return b.String()
}

func escape(b *strings.Builder, s string) {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if unreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&15])
	}
}

func unreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	switch c {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')':
		return true
	}
	return false
}
