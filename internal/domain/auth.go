package domain

import (
	"context"

	"go-jobboard-backend/pkg/auth"
)

type AuthUsecase interface {
	// Authenticate resolves the caller behind a decoded Basic credential.
	Authenticate(ctx context.Context, creds auth.Credentials) (Identity, error)
}
