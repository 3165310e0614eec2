package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/unkn0wn-root/cacheengine"
	zl "github.com/unkn0wn-root/cacheengine/log/zerolog"
	pr "github.com/unkn0wn-root/cacheengine/provider"
	"github.com/unkn0wn-root/cacheengine/provider/memcached"
	"github.com/unkn0wn-root/cacheengine/provider/redis"
	"github.com/unkn0wn-root/cacheengine/provider/ristretto"
	"github.com/unkn0wn-root/cacheengine/sloghooks"
)

type globalFlags struct {
	configPath string
	envPrefix  string
	location   string
	partition  string
	codec      string
	timeout    time.Duration
	backend    string
	events     bool
	verbose    bool
}

func (g *globalFlags) register(cmd *cobra.Command) {
	f := cmd.PersistentFlags()
	f.StringVar(&g.configPath, "config", "", "YAML config file")
	f.StringVar(&g.envPrefix, "env-prefix", "CACHE_", "Environment variable prefix")
	f.StringVar(&g.location, "location", "", "Servers, host:port[=weight],...")
	f.StringVar(&g.partition, "partition", "", "Key partition")
	f.StringVar(&g.codec, "codec", "", "Envelope codec: json, msgpack, cbor, protobuf")
	f.DurationVar(&g.timeout, "timeout", 0, "Transport timeout")
	f.StringVar(&g.backend, "backend", "memcached", "Transport: memcached, redis, memory")
	f.BoolVar(&g.events, "events", false, "Log engine events (state changes, rejected envelopes, storage failures)")
	f.BoolVarP(&g.verbose, "verbose", "v", false, "Log lifecycle events")
}

// options layers the sources: YAML file, then environment, then flags.
func (g *globalFlags) options() (cacheengine.Options, error) {
	var o cacheengine.Options
	if g.configPath != "" {
		b, err := os.ReadFile(g.configPath)
		if err != nil {
			return o, fmt.Errorf("read config: %w", err)
		}
		if o, err = cacheengine.LoadYAML(b); err != nil {
			return o, fmt.Errorf("parse config: %w", err)
		}
	}

	env, err := cacheengine.LoadEnv(g.envPrefix)
	if err != nil {
		return o, fmt.Errorf("load env: %w", err)
	}
	merge(&o, env)

	if g.location != "" {
		var loc cacheengine.Location
		if err := loc.UnmarshalText([]byte(g.location)); err != nil {
			return o, err
		}
		o.Location, o.Host, o.Port = loc, "", 0
	}
	if g.partition != "" {
		o.Partition = g.partition
	}
	if g.codec != "" {
		o.Format = g.codec
	}
	if g.timeout > 0 {
		o.Timeout = g.timeout
	}

	dial, err := dialer(g.backend)
	if err != nil {
		return o, err
	}
	o.Dial = dial
	if g.events {
		o.Hooks = sloghooks.New(slog.New(slog.NewTextHandler(os.Stderr, nil)), sloghooks.Options{})
	}

	level := zerolog.WarnLevel
	if g.verbose {
		level = zerolog.DebugLevel
	}
	o.Logger = zl.Logger{L: zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()}
	return o, nil
}

func dialer(backend string) (pr.Dialer, error) {
	switch backend {
	case "", "memcached":
		return memcached.Dial, nil
	case "redis":
		return redis.Dial, nil
	case "memory":
		return ristretto.Dialer(ristretto.Config{NumCounters: 1e4, MaxCost: 64 << 20, BufferItems: 64}), nil
	}
	return nil, fmt.Errorf("unknown backend %q", backend)
}

// merge copies the fields set in src over dst.
func merge(dst *cacheengine.Options, src cacheengine.Options) {
	if !src.Location.IsZero() {
		dst.Location, dst.Host, dst.Port = src.Location, "", 0
	}
	if src.Host != "" {
		dst.Host = src.Host
	}
	if src.Port != 0 {
		dst.Port = src.Port
	}
	if src.Partition != "" {
		dst.Partition = src.Partition
	}
	if src.Timeout != 0 {
		dst.Timeout = src.Timeout
	}
	if src.Idle != 0 {
		dst.Idle = src.Idle
	}
	if src.PoolSize != 0 {
		dst.PoolSize = src.PoolSize
	}
	if src.Format != "" {
		dst.Format = src.Format
	}
}

// withEngine builds and starts an engine, runs fn, then stops it.
func withEngine(ctx context.Context, g *globalFlags, fn func(*cacheengine.Engine) error) error {
	o, err := g.options()
	if err != nil {
		return err
	}
	e, err := cacheengine.New(o)
	if err != nil {
		return err
	}
	if err := e.Start(ctx); err != nil {
		return err
	}
	defer e.Stop(context.WithoutCancel(ctx))
	return fn(e)
}
