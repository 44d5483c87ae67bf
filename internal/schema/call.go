package schema

import "context"

// CallInfo carries per-invocation metadata through the context tree.
// It is set once per tool call and read by the SDK layer for request logging.
type CallInfo struct {
	ID   string
	Tool string
}

type callKey struct{}

// WithCall returns a child context that carries info.
func WithCall(ctx context.Context, info CallInfo) context.Context {
	return context.WithValue(ctx, callKey{}, info)
}

// CallFrom extracts the CallInfo from ctx.
// Returns a zero-value CallInfo if none was set.
func CallFrom(ctx context.Context) CallInfo {
	info, _ := ctx.Value(callKey{}).(CallInfo)
	return info
}
