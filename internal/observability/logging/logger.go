package logging

import (
	"context"
	"io"
	"os"
)

// Logger is the structured logger carried through command contexts. The
// component argument names the emitting subsystem ("parser", "solver",
// "verifier"); fields are alternating key/value pairs. Event records a
// lifecycle milestone with its own field map.
type Logger interface {
	Debug(component, msg string, fields ...any)
	Info(component, msg string, fields ...any)
	Warn(component, msg string, fields ...any)
	Error(component, msg string, fields ...any)
	Event(ctx context.Context, event string, fields map[string]any)
	Close() error
}

type loggerKey struct{}

// WithLogger stores the logger in the context.
func WithLogger(ctx context.Context, l Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// From returns the context logger, or a silent one when none was set, so
// library code never nil-checks.
func From(ctx context.Context) Logger {
	if l, ok := ctx.Value(loggerKey{}).(Logger); ok {
		return l
	}
	return &noopLogger{}
}

// NewLogger builds a logger from config. Format "jsonl" writes one JSON
// object per line; anything else silences output while still honoring Close
// on a file destination.
func NewLogger(cfg Config) (Logger, error) {
	w, closer, err := openOutput(cfg.Output)
	if err != nil {
		return nil, err
	}
	if cfg.Format != "jsonl" {
		return &noopLogger{closer: closer}, nil
	}
	return &jsonlLogger{
		writer:   w,
		closer:   closer,
		minLevel: levelPriority(cfg.Level),
	}, nil
}

func openOutput(output string) (io.Writer, io.Closer, error) {
	if output == "" || output == "stderr" {
		return os.Stderr, nil, nil
	}
	f, err := os.OpenFile(output, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, err
	}
	return f, f, nil
}

type noopLogger struct {
	closer io.Closer
}

func (n *noopLogger) Debug(component, msg string, fields ...any) {}
func (n *noopLogger) Info(component, msg string, fields ...any)  {}
func (n *noopLogger) Warn(component, msg string, fields ...any)  {}
func (n *noopLogger) Error(component, msg string, fields ...any) {}

func (n *noopLogger) Event(ctx context.Context, event string, fields map[string]any) {}

func (n *noopLogger) Close() error {
	if n.closer != nil {
		return n.closer.Close()
	}
	return nil
}
