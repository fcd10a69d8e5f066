package postgres

import (
	"errors"
	"fmt"
	"testing"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestTranslateError(t *testing.T) {
	t.Run("nil stays nil", func(t *testing.T) {
		assert.NoError(t, translateError(nil))
	})

	t.Run("No rows is not found", func(t *testing.T) {
		assert.ErrorIs(t, translateError(fmt.Errorf("scan: %w", pgx.ErrNoRows)), domain.ErrNotFound)
	})

	t.Run("Unique violations name the taken field", func(t *testing.T) {
		cases := map[string]string{
			"companies_slug_key":  "Company slug is already taken",
			"admins_username_key": "Username is already taken",
			"jobs_job_slug_key":   "Job slug is already taken",
			"some_other_key":      "Duplicate entry",
		}
		for constraint, msg := range cases {
			err := translateError(&pgconn.PgError{Code: "23505", ConstraintName: constraint})
			assert.True(t, apperror.Is(err, apperror.KindDuplicate), constraint)
			assert.Equal(t, msg, err.Error())
		}
	})

	t.Run("Other driver failures are unavailable", func(t *testing.T) {
		cause := &pgconn.PgError{Code: "42P01", Message: `relation "jobs" does not exist`}
		err := translateError(cause)
		assert.True(t, apperror.Is(err, apperror.KindUnavailable))
		assert.NotContains(t, err.Error(), "relation")
		assert.True(t, errors.Is(err, cause))
	})

	t.Run("Already translated errors pass through", func(t *testing.T) {
		forbidden := apperror.Forbidden("x")
		assert.Same(t, forbidden, translateError(forbidden))
	})
}
