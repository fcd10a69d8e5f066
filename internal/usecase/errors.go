package usecase

import (
	"errors"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/validation"
)

// repoError converts a repository error for the HTTP layer. Errors that are already
// AppErrors (Conflict, Unavailable) pass through unchanged.
func repoError(err error, what string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrNotFound) {
		return apperror.NotFound(what + " not found")
	}
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return apperror.Unavailable(err)
}

func validationError(err error) error {
	return apperror.Validation(validation.Message(err), err)
}

// optional maps a trimmed empty string to nil.
func optional(s *string) *string {
	if s == nil {
		return nil
	}
	return nonEmpty(*s)
}

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
