package postgres

import (
	"errors"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL error codes
const (
	pgUniqueViolation = "23505"
)

// Unique constraint names from migrations/000001_init.up.sql
const (
	constraintCompanySlug   = "companies_slug_key"
	constraintAdminUsername = "admins_username_key"
	constraintJobSlug       = "jobs_job_slug_key"
)

var conflictMessages = map[string]string{
	constraintCompanySlug:   "Company slug is already taken",
	constraintAdminUsername: "Username is already taken",
	constraintJobSlug:       "Job slug is already taken",
}

// translateError maps driver errors onto the domain error set: no rows becomes
// domain.ErrNotFound, a unique violation becomes a Conflict, and every other failure
// becomes Unavailable with the cause kept for logging.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, domain.ErrNotFound) {
		return domain.ErrNotFound
	}
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return err
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		msg, ok := conflictMessages[pgErr.ConstraintName]
		if !ok {
			msg = "Duplicate entry"
		}
		conflict := apperror.Conflict(msg)
		conflict.Err = err
		return conflict
	}
	return apperror.Unavailable(err)
}
