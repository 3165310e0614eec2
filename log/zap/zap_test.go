package zap

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/unkn0wn-root/cacheengine"
)

func TestZapAdapter(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := ZapLogger{L: zap.New(core)}
	l.Info("cacheengine connected", cacheengine.Fields{"location": "127.0.0.1:11211"})
	l.Debug("no fields", nil)

	entries := logs.All()
	if len(entries) != 2 || entries[0].Message != "cacheengine connected" {
		t.Fatalf("entries = %+v", entries)
	}
	if got := entries[0].ContextMap()["location"]; got != "127.0.0.1:11211" {
		t.Fatalf("location field = %v", got)
	}
}
