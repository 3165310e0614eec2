// Package traced decorates a Provider with OpenTelemetry spans, one per
// transport call.
package traced

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	pr "github.com/unkn0wn-root/cacheengine/provider"
)

const instrumentation = "github.com/unkn0wn-root/cacheengine/provider/traced"

type Provider struct {
	inner  pr.Provider
	tracer trace.Tracer
	system string
}

var _ pr.Provider = (*Provider)(nil)

// Wrap decorates p. A nil tp uses the global TracerProvider.
// system names the backend in spans (e.g. "memcached").
func Wrap(p pr.Provider, tp trace.TracerProvider, system string) *Provider {
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	return &Provider{inner: p, tracer: tp.Tracer(instrumentation), system: system}
}

// Dialer wraps every provider opened by d.
func Dialer(d pr.Dialer, tp trace.TracerProvider, system string) pr.Dialer {
	return func(ctx context.Context, cfg pr.Config) (pr.Provider, error) {
		p, err := d(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return Wrap(p, tp, system), nil
	}
}

func (p *Provider) start(ctx context.Context, op, key string) (context.Context, trace.Span) {
	attrs := []attribute.KeyValue{attribute.String("db.system", p.system)}
	if key != "" {
		attrs = append(attrs, attribute.String("cache.key", key))
	}
	return p.tracer.Start(ctx, "cacheengine."+op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attrs...))
}

func end(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func (p *Provider) Get(ctx context.Context, key string) ([]byte, bool, error) {
	ctx, span := p.start(ctx, "get", key)
	b, ok, err := p.inner.Get(ctx, key)
	span.SetAttributes(attribute.Bool("cache.hit", ok))
	end(span, err)
	return b, ok, err
}

func (p *Provider) Set(ctx context.Context, key string, value []byte, lifetime time.Duration) error {
	ctx, span := p.start(ctx, "set", key)
	span.SetAttributes(
		attribute.Int("cache.value_bytes", len(value)),
		attribute.Int64("cache.lifetime_s", int64(lifetime/time.Second)),
	)
	err := p.inner.Set(ctx, key, value, lifetime)
	end(span, err)
	return err
}

func (p *Provider) Del(ctx context.Context, key string) error {
	ctx, span := p.start(ctx, "del", key)
	err := p.inner.Del(ctx, key)
	end(span, err)
	return err
}

func (p *Provider) Ping(ctx context.Context) error {
	ctx, span := p.start(ctx, "ping", "")
	err := p.inner.Ping(ctx)
	end(span, err)
	return err
}

func (p *Provider) Close(ctx context.Context) error {
	return p.inner.Close(ctx)
}
