package types

import "context"

type contextKey string

const (
	// OperationKey is the context key for the public operation name
	// (e.g. "getBasicInfo", "getFullInfo").
	OperationKey contextKey = "operation"
)

// WithOperation returns a new context carrying the operation name.
func WithOperation(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, OperationKey, name)
}

// OperationFromContext returns the operation name from the context.
func OperationFromContext(ctx context.Context) (string, bool) {
	name, ok := ctx.Value(OperationKey).(string)
	return name, ok
}
