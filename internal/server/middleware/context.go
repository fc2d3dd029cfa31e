package middleware

import "context"

type contextKey string

const (
	ContextKeyUserID contextKey = "user_id"
	ContextKeyEmail  contextKey = "email"
)

// UserIDFromContext returns the authenticated account id. The account id is
// also the tenant key for the document store.
func UserIDFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(ContextKeyUserID).(string)
	return v, ok
}

func EmailFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(ContextKeyEmail).(string)
	return v, ok
}
