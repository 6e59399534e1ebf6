package pkglog

import "context"

type correlationIDKey struct{}

// CorrelationID returns the request correlation ID carried by ctx, if any.
func CorrelationID(ctx context.Context) (string, bool) {
	cid, ok := ctx.Value(correlationIDKey{}).(string)
	return cid, ok && cid != ""
}

// GetCorrelationID is CorrelationID without the presence flag; it returns ""
// when ctx carries none.
func GetCorrelationID(ctx context.Context) string {
	cid, _ := CorrelationID(ctx)
	return cid
}

// SetCorrelationID returns a copy of ctx carrying cid.
func SetCorrelationID(ctx context.Context, cid string) context.Context {
	return context.WithValue(ctx, correlationIDKey{}, cid)
}
