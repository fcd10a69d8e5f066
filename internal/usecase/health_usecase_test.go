package usecase_test

import (
	"context"
	"errors"
	"testing"

	"go-jobboard-backend/internal/usecase"

	"github.com/stretchr/testify/assert"
)

func TestHealthCheck(t *testing.T) {
	ok := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("connection refused") }

	t.Run("All dependencies up", func(t *testing.T) {
		uc := usecase.NewHealthUsecase(map[string]usecase.HealthCheck{"database": ok, "redis": ok})
		result, healthy := uc.Check(context.Background())
		assert.True(t, healthy)
		assert.Equal(t, map[string]string{"status": "ok", "database": "ok", "redis": "ok"}, result)
	})

	t.Run("One dependency down degrades the service", func(t *testing.T) {
		uc := usecase.NewHealthUsecase(map[string]usecase.HealthCheck{"database": ok, "redis": down})
		result, healthy := uc.Check(context.Background())
		assert.False(t, healthy)
		assert.Equal(t, "degraded", result["status"])
		assert.Equal(t, "unavailable", result["redis"])
		assert.Equal(t, "ok", result["database"])
	})
}
