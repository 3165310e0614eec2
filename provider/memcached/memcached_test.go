package memcached

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pr "github.com/unkn0wn-root/cacheengine/provider"
)

type fakeEntry struct {
	v   []byte
	exp time.Time
}

// fakeServer speaks the subset of the memcached text protocol the client uses.
type fakeServer struct {
	ln net.Listener

	mu   sync.Mutex
	data map[string]fakeEntry
	exps map[string]int // last expiration seen per key
}

func startFakeServer(t *testing.T) *fakeServer {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	s := &fakeServer{ln: ln, data: map[string]fakeEntry{}, exps: map[string]int{}}
	go s.serve()
	t.Cleanup(func() { _ = ln.Close() })
	return s
}

func (s *fakeServer) addr() string { return s.ln.Addr().String() }

func (s *fakeServer) serve() {
	for {
		c, err := s.ln.Accept()
		if err != nil {
			return
		}
		go s.handle(c)
	}
}

func (s *fakeServer) handle(c net.Conn) {
	defer c.Close()
	rw := bufio.NewReadWriter(bufio.NewReader(c), bufio.NewWriter(c))
	for {
		line, err := rw.ReadString('\n')
		if err != nil {
			return
		}
		f := strings.Fields(strings.TrimSpace(line))
		if len(f) == 0 {
			continue
		}
		switch f[0] {
		case "version":
			fmt.Fprintf(rw, "VERSION 1.6.21\r\n")
		case "get", "gets":
			s.mu.Lock()
			for _, k := range f[1:] {
				e, ok := s.data[k]
				if !ok || (!e.exp.IsZero() && time.Now().After(e.exp)) {
					continue
				}
				fmt.Fprintf(rw, "VALUE %s 0 %d 1\r\n%s\r\n", k, len(e.v), e.v)
			}
			s.mu.Unlock()
			fmt.Fprintf(rw, "END\r\n")
		case "set":
			exp, _ := strconv.Atoi(f[3])
			n, _ := strconv.Atoi(f[4])
			buf := make([]byte, n+2)
			if _, err := io.ReadFull(rw, buf); err != nil {
				return
			}
			e := fakeEntry{v: buf[:n]}
			if exp > 0 {
				e.exp = time.Now().Add(time.Duration(exp) * time.Second)
			}
			s.mu.Lock()
			s.data[f[1]] = e
			s.exps[f[1]] = exp
			s.mu.Unlock()
			fmt.Fprintf(rw, "STORED\r\n")
		case "delete":
			s.mu.Lock()
			_, ok := s.data[f[1]]
			delete(s.data, f[1])
			s.mu.Unlock()
			if ok {
				fmt.Fprintf(rw, "DELETED\r\n")
			} else {
				fmt.Fprintf(rw, "NOT_FOUND\r\n")
			}
		default:
			fmt.Fprintf(rw, "ERROR\r\n")
		}
		if err := rw.Flush(); err != nil {
			return
		}
	}
}

func (s *fakeServer) expiration(key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.exps[key]
}

func dialFake(t *testing.T, s *fakeServer) pr.Provider {
	t.Helper()
	p, err := Dial(context.Background(), pr.Config{
		Servers: []pr.Server{{Addr: s.addr(), Weight: 1}},
		Timeout: time.Second,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Close(context.Background()) })
	return p
}

func TestMemcachedRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := startFakeServer(t)
	p := dialFake(t, s)

	require.NoError(t, p.Ping(ctx))

	v, ok, err := p.Get(ctx, "test:x")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, v)

	require.NoError(t, p.Set(ctx, "test:x", []byte(`{"item":"123"}`), 5*time.Second))
	assert.Equal(t, 5, s.expiration("test:x"))

	v, ok, err = p.Get(ctx, "test:x")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"item":"123"}`, string(v))

	require.NoError(t, p.Del(ctx, "test:x"))
	_, ok, err = p.Get(ctx, "test:x")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemcachedDeleteMissingIsNotAnError(t *testing.T) {
	s := startFakeServer(t)
	p := dialFake(t, s)
	assert.NoError(t, p.Del(context.Background(), "nope:nope"))
}

func TestMemcachedMalformedKeyPropagates(t *testing.T) {
	s := startFakeServer(t)
	p := dialFake(t, s)
	err := p.Set(context.Background(), strings.Repeat("k", 251), []byte("v"), time.Second)
	assert.Error(t, err)
}

func TestMemcachedPingConnectionRefused(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	p, err := Dial(context.Background(), pr.Config{
		Servers: []pr.Server{{Addr: addr}},
		Timeout: 200 * time.Millisecond,
	})
	require.NoError(t, err)
	defer p.Close(context.Background())

	err = p.Ping(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connect")
}

func TestMemcachedDialErrors(t *testing.T) {
	_, err := Dial(context.Background(), pr.Config{})
	assert.ErrorIs(t, err, ErrNoServers)

	_, err = Dial(context.Background(), pr.Config{Servers: []pr.Server{{Addr: "no-port-here"}}})
	assert.Error(t, err)
}

func TestMemcachedCanceledContext(t *testing.T) {
	s := startFakeServer(t)
	p := dialFake(t, s)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := p.Get(ctx, "k")
	assert.ErrorIs(t, err, context.Canceled)
}
