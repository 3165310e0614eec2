package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"

	pr "github.com/unkn0wn-root/cacheengine/provider"
)

func TestNewRequiresClient(t *testing.T) {
	if _, err := New(Config{}); !errors.Is(err, ErrNilClient) {
		t.Fatalf("err = %v, want ErrNilClient", err)
	}
}

func TestDialIsLazyAndCloseIsIdempotent(t *testing.T) {
	p, err := Dial(context.Background(), pr.Config{
		Servers: []pr.Server{{Addr: "127.0.0.1:1", Weight: 1}},
		Timeout: 50 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	if err := p.Ping(context.Background()); err == nil {
		t.Fatal("ping to a closed port should fail")
	}
	if err := p.Close(context.Background()); err != nil {
		t.Fatalf("first close: %v", err)
	}
	if err := p.Close(context.Background()); err != nil {
		t.Fatalf("second close: %v", err)
	}
}

func TestBorrowedClientIsNotClosed(t *testing.T) {
	c := goredis.NewClient(&goredis.Options{Addr: "127.0.0.1:1"})
	defer c.Close()
	p, _ := New(Config{Client: c})
	if err := p.Close(context.Background()); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("client was closed by the provider: %v", err)
	}
}
