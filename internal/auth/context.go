package auth

import "context"

type contextKey string

const operatorKey contextKey = "operator"

// DefaultOperator is stamped on closures performed outside an
// authenticated session (seeding, tooling).
const DefaultOperator = "admin"

// WithOperator sets the operator identity into context (called by middleware).
func WithOperator(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, operatorKey, email)
}

// OperatorFrom retrieves the operator email, falling back to DefaultOperator.
func OperatorFrom(ctx context.Context) string {
	if email, ok := ctx.Value(operatorKey).(string); ok && email != "" {
		return email
	}
	return DefaultOperator
}
