package domain_test

import (
	"testing"

	"go-jobboard-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseApplicationStatus(t *testing.T) {
	valid := []string{"new", "reviewing", "contacted", "interviewing", "offered", "hired", "rejected"}
	for _, s := range valid {
		st, err := domain.ParseApplicationStatus(s)
		require.NoError(t, err)
		assert.Equal(t, s, string(st))
	}
	assert.Len(t, domain.ApplicationStatuses, len(valid))

	t.Run("legacy and unknown values are rejected", func(t *testing.T) {
		for _, s := range []string{"reviewed", "REJECTED", "applied", "", "hired "} {
			_, err := domain.ParseApplicationStatus(s)
			assert.ErrorIs(t, err, domain.ErrInvalidApplicationStatus, s)
		}
	})
}
