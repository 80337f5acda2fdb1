package receipt

import "context"

type writerKey struct{}

// WithWriter attaches the receipt writer to the context.
func WithWriter(ctx context.Context, w Writer) context.Context {
	return context.WithValue(ctx, writerKey{}, w)
}

// From returns the context's receipt writer. Nil means receipts are disabled
// for this run; Session.Finish treats that as a no-op.
func From(ctx context.Context) Writer {
	w, _ := ctx.Value(writerKey{}).(Writer)
	return w
}
