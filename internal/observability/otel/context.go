package otel

import (
	"context"

	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Handle bundles the tracer a command uses with the shutdown hook that
// flushes its exporter.
type Handle struct {
	Tracer   trace.Tracer
	Shutdown func(context.Context) error
}

type handleKey struct{}

// WithHandle attaches h to the context for the duration of a command.
func WithHandle(ctx context.Context, h *Handle) context.Context {
	return context.WithValue(ctx, handleKey{}, h)
}

// From returns the handle attached to ctx. When tracing is disabled it
// returns a no-op handle, so callers can start spans unconditionally.
func From(ctx context.Context) *Handle {
	if h, ok := ctx.Value(handleKey{}).(*Handle); ok && h != nil {
		return h
	}
	return &Handle{
		Tracer:   noop.NewTracerProvider().Tracer("govproof"),
		Shutdown: func(context.Context) error { return nil },
	}
}
