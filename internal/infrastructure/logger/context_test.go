package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestWithContext(t *testing.T) {
	logger := zap.NewNop()
	ctx := WithContext(context.Background(), logger)

	assert.Equal(t, logger, FromContext(ctx))
}

func TestFromContext_NotFound(t *testing.T) {
	logger := FromContext(context.Background())

	// missing logger degrades to a no-op rather than nil
	assert.NotNil(t, logger)
}

func TestWithRequestID(t *testing.T) {
	ctx, enriched := WithRequestID(context.Background(), zap.NewNop(), "req-123")

	assert.NotNil(t, enriched)
	assert.Equal(t, "req-123", GetRequestID(ctx))
	assert.Equal(t, enriched, FromContext(ctx))
}

func TestWithUserID(t *testing.T) {
	ctx, _ := WithUserID(context.Background(), zap.NewNop(), "user-7")

	assert.Equal(t, "user-7", GetUserID(ctx))
}

func TestWithSiteID(t *testing.T) {
	ctx, _ := WithSiteID(context.Background(), zap.NewNop(), "site-14")

	assert.Equal(t, "site-14", GetSiteID(ctx))
}

func TestContextValues_NotFound(t *testing.T) {
	ctx := context.Background()

	assert.Empty(t, GetRequestID(ctx))
	assert.Empty(t, GetUserID(ctx))
	assert.Empty(t, GetSiteID(ctx))
}

func TestContextKeys_Distinct(t *testing.T) {
	ctx := context.Background()
	ctx, _ = WithRequestID(ctx, zap.NewNop(), "req-1")
	ctx, _ = WithUserID(ctx, zap.NewNop(), "user-1")
	ctx, _ = WithSiteID(ctx, zap.NewNop(), "site-1")

	assert.Equal(t, "req-1", GetRequestID(ctx))
	assert.Equal(t, "user-1", GetUserID(ctx))
	assert.Equal(t, "site-1", GetSiteID(ctx))
}
