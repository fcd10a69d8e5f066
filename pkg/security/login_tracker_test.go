package security_test

import (
	"context"
	"testing"

	"go-jobboard-backend/pkg/security"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// Redis is never initialized in these tests, so both limiters run in fail-open mode.

func TestLoginTrackerWithoutRedis(t *testing.T) {
	ctx := context.Background()
	tracker := security.NewLoginTracker(security.LoginTrackerConfig{MaxAttempts: 1},
		security.NewSecurityLogger(zap.NewNop(), "test", "test"))

	blocked, err := tracker.IsBlocked(ctx, "alice", "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, blocked)

	blocked, count, err := tracker.RecordFailedAttempt(ctx, "alice", "10.0.0.1", "curl", "req")
	require.NoError(t, err)
	assert.False(t, blocked)
	assert.Zero(t, count)

	assert.NoError(t, tracker.ClearAttempts(ctx, "alice", "10.0.0.1"))
}

func TestUploadLimiterWithoutRedis(t *testing.T) {
	limiter := security.NewUploadLimiter(0, 0)
	allowed, retry, err := limiter.AllowUpload(context.Background(), "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, allowed)
	assert.Zero(t, retry)
}
