package security_test

import (
	"context"
	"testing"

	"go-jobboard-backend/pkg/security"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestSecurityLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	sl := security.NewSecurityLogger(zap.New(core), "jobboard-test", "test")

	sl.LogLoginFailed(context.Background(), "alice", "10.0.0.1", "curl", "req-1", "invalid_credentials")
	sl.LogBlockCreated(context.Background(), "username", "alice", "10.0.0.1", "req-2", 15)

	entries := logs.All()
	require.Len(t, entries, 2)

	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	assert.Equal(t, "login_failed", entries[0].Message)
	fields := entries[0].ContextMap()
	assert.Equal(t, "a***", fields["subject_value"])
	assert.Equal(t, "req-1", fields["request_id"])

	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
	assert.Equal(t, "a***", entries[1].ContextMap()["subject_value"])
}

func TestMasking(t *testing.T) {
	assert.Equal(t, "j***@example.com", security.MaskEmail("jane@example.com"))
	assert.Equal(t, "***", security.MaskEmail("j@"))
	assert.Equal(t, "é***", security.MaskUsername("élodie"))
	assert.Equal(t, "(legacy)", security.MaskUsername(""))
	assert.Len(t, security.HashValue("x"), 16)
}
