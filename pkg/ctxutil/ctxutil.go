package ctxutil

import "context"

type ctxKey string

const (
	userIDKey      ctxKey = "user_id"
	displayNameKey ctxKey = "display_name"
	requestIDKey   ctxKey = "request_id"
)

// WithUserID stores the authenticated subject in the context.
func WithUserID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, userIDKey, id)
}

// UserIDFromCtx extracts the authenticated subject from the context.
// Returns "" and false if the value is missing, empty, or of the wrong type.
func UserIDFromCtx(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}

// WithDisplayName stores the caller's display name in the context.
func WithDisplayName(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, displayNameKey, name)
}

// DisplayNameFromCtx returns the caller's display name, or "".
func DisplayNameFromCtx(ctx context.Context) string {
	name, _ := ctx.Value(displayNameKey).(string)
	return name
}

// WithRequestID stores the request ID in the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromCtx extracts the request ID from the context.
// Returns an empty string if absent.
func RequestIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
