// Package observability carries the per-invocation operation ID that ties
// log lines, receipts, and spans together.
package observability

import (
	"context"
	"crypto/rand"
	"encoding/hex"
)

type opIDKey struct{}

// WithOpID stamps ctx with a fresh operation ID. Called once per CLI
// invocation before any logging.
func WithOpID(ctx context.Context) context.Context {
	return context.WithValue(ctx, opIDKey{}, newOpID())
}

// OpID returns the operation ID for ctx, or "" when none was stamped.
func OpID(ctx context.Context) string {
	id, _ := ctx.Value(opIDKey{}).(string)
	return id
}

// newOpID builds a random UUIDv4.
func newOpID() string {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "00000000-0000-0000-0000-000000000000"
	}
	b[6] = (b[6] & 0x0f) | 0x40
	b[8] = (b[8] & 0x3f) | 0x80

	buf := make([]byte, 36)
	hex.Encode(buf, b[:4])
	buf[8] = '-'
	hex.Encode(buf[9:], b[4:6])
	buf[13] = '-'
	hex.Encode(buf[14:], b[6:8])
	buf[18] = '-'
	hex.Encode(buf[19:], b[8:10])
	buf[23] = '-'
	hex.Encode(buf[24:], b[10:])
	return string(buf)
}
