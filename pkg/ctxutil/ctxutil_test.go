package ctxutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserIDFromCtx(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		ctx    context.Context
		wantID string
		wantOK bool
	}{
		{name: "stored", ctx: WithUserID(context.Background(), "alice"), wantID: "alice", wantOK: true},
		{name: "absent", ctx: context.Background()},
		{name: "empty subject", ctx: WithUserID(context.Background(), "")},
		{name: "foreign type", ctx: context.WithValue(context.Background(), userIDKey, 42)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			id, ok := UserIDFromCtx(tt.ctx)
			assert.Equal(t, tt.wantID, id)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestDisplayNameFromCtx(t *testing.T) {
	t.Parallel()
	assert.Empty(t, DisplayNameFromCtx(context.Background()))
	assert.Equal(t, "Alice", DisplayNameFromCtx(WithDisplayName(context.Background(), "Alice")))
}

func TestRequestIDFromCtx(t *testing.T) {
	t.Parallel()
	assert.Empty(t, RequestIDFromCtx(context.Background()))
	assert.Empty(t, RequestIDFromCtx(context.WithValue(context.Background(), requestIDKey, 7)))
	assert.Equal(t, "req-1", RequestIDFromCtx(WithRequestID(context.Background(), "req-1")))
}

func TestKeysDoNotCollide(t *testing.T) {
	t.Parallel()
	ctx := WithRequestID(WithUserID(context.Background(), "alice"), "req-1")
	ctx = WithDisplayName(ctx, "Alice")

	id, _ := UserIDFromCtx(ctx)
	assert.Equal(t, "alice", id)
	assert.Equal(t, "req-1", RequestIDFromCtx(ctx))
	assert.Equal(t, "Alice", DisplayNameFromCtx(ctx))
}
