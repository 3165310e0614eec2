package ristretto

import (
	"context"
	"testing"
	"time"

	pr "github.com/unkn0wn-root/cacheengine/provider"
)

func TestRistrettoSetGetDel(t *testing.T) {
	ctx := context.Background()
	p, err := Dialer(Config{NumCounters: 1000, MaxCost: 1 << 20, BufferItems: 64})(ctx, pr.Config{})
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer p.Close(ctx)

	if err := p.Ping(ctx); err != nil {
		t.Fatalf("Ping: %v", err)
	}
	if err := p.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	b, ok, err := p.Get(ctx, "k")
	if err != nil || !ok || string(b) != "v" {
		t.Fatalf("Get: %q ok=%v err=%v", b, ok, err)
	}
	if err := p.Del(ctx, "k"); err != nil {
		t.Fatalf("Del: %v", err)
	}
	if err := p.Del(ctx, "k"); err != nil {
		t.Fatalf("Del missing: %v", err)
	}
	if _, ok, _ := p.Get(ctx, "k"); ok {
		t.Fatalf("expected miss after Del")
	}
}

func TestRistrettoInvalidConfig(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Fatalf("expected error on zero config")
	}
}
