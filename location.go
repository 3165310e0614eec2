package cacheengine

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/unkn0wn-root/cacheengine/provider"
)

// Location is the server address handed to the transport. It comes in three
// shapes: a single "host:port", a list of them, or a map of "host:port" to
// weight. The zero value means "not set".
type Location struct {
	servers []provider.Server
}

// Addr builds a Location from one or more "host:port" addresses.
func Addr(addrs ...string) Location {
	l := Location{servers: make([]provider.Server, 0, len(addrs))}
	for _, a := range addrs {
		l.servers = append(l.servers, provider.Server{Addr: a, Weight: 1})
	}
	return l
}

// Weighted builds a Location from address weights. Servers are ordered by
// address, so the same map always yields the same key distribution.
func Weighted(w map[string]int) Location {
	addrs := make([]string, 0, len(w))
	for a := range w {
		addrs = append(addrs, a)
	}
	sort.Strings(addrs)
	l := Location{servers: make([]provider.Server, 0, len(addrs))}
	for _, a := range addrs {
		l.servers = append(l.servers, provider.Server{Addr: a, Weight: w[a]})
	}
	return l
}

func (l Location) IsZero() bool { return len(l.servers) == 0 }

// Servers returns a copy of the server list.
func (l Location) Servers() []provider.Server {
	return append([]provider.Server(nil), l.servers...)
}

// String renders "a:1,b:2=3"; weights of 1 are omitted.
func (l Location) String() string {
	parts := make([]string, 0, len(l.servers))
	for _, s := range l.servers {
		if s.Weight > 1 {
			parts = append(parts, s.Addr+"="+strconv.Itoa(s.Weight))
		} else {
			parts = append(parts, s.Addr)
		}
	}
	return strings.Join(parts, ",")
}

func (l Location) MarshalText() ([]byte, error) { return []byte(l.String()), nil }

// UnmarshalText parses the String form. Used for environment variables.
func (l *Location) UnmarshalText(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "" {
		*l = Location{}
		return nil
	}
	var out Location
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		addr, w := part, 1
		if i := strings.LastIndexByte(part, '='); i >= 0 {
			n, err := strconv.Atoi(part[i+1:])
			if err != nil || n < 1 {
				return fmt.Errorf("location %q: bad weight", part)
			}
			addr, w = part[:i], n
		}
		out.servers = append(out.servers, provider.Server{Addr: addr, Weight: w})
	}
	*l = out
	return nil
}

// UnmarshalYAML accepts a scalar, a sequence or a mapping of weights.
func (l *Location) UnmarshalYAML(n *yaml.Node) error {
	switch n.Kind {
	case yaml.ScalarNode:
		var s string
		if err := n.Decode(&s); err != nil {
			return err
		}
		return l.UnmarshalText([]byte(s))
	case yaml.SequenceNode:
		var addrs []string
		if err := n.Decode(&addrs); err != nil {
			return err
		}
		*l = Addr(addrs...)
		return nil
	case yaml.MappingNode:
		var w map[string]int
		if err := n.Decode(&w); err != nil {
			return err
		}
		for a, n := range w {
			if n < 1 {
				return fmt.Errorf("location %q: bad weight %d", a, n)
			}
		}
		*l = Weighted(w)
		return nil
	}
	return fmt.Errorf("location: unsupported yaml node kind %d", n.Kind)
}
