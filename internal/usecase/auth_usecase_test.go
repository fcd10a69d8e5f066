package usecase_test

import (
	"context"
	"errors"
	"testing"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/internal/usecase"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func mustHash(t *testing.T, password string) string {
	t.Helper()
	h, err := auth.HashPassword(password)
	require.NoError(t, err)
	return h
}

func TestAuthenticateDatabaseAdmin(t *testing.T) {
	ctx := context.Background()
	alice := &domain.Admin{ID: 3, Username: "alice", PasswordHash: mustHash(t, "secret1"), CompanyID: 9}

	t.Run("Correct password returns the stored admin's company", func(t *testing.T) {
		repo := new(MockAdminRepo)
		repo.On("GetByUsername", mock.Anything, "alice").Return(alice, nil)
		uc := usecase.NewAuthUsecase(repo, "")

		id, err := uc.Authenticate(ctx, auth.Credentials{Username: "alice", Password: "secret1"})
		require.NoError(t, err)
		assert.Equal(t, domain.ScopedAdmin{AdminID: 3, Username: "alice", CompanyID: 9}, id)
	})

	t.Run("Wrong password is InvalidCredentials", func(t *testing.T) {
		repo := new(MockAdminRepo)
		repo.On("GetByUsername", mock.Anything, "alice").Return(alice, nil)
		uc := usecase.NewAuthUsecase(repo, "")

		id, err := uc.Authenticate(ctx, auth.Credentials{Username: "alice", Password: "secret2"})
		assert.Nil(t, id)
		assert.True(t, apperror.Is(err, apperror.KindInvalidCredentials))
	})

	t.Run("Unknown username is InvalidCredentials", func(t *testing.T) {
		repo := new(MockAdminRepo)
		repo.On("GetByUsername", mock.Anything, "Alice").Return(nil, domain.ErrNotFound)
		uc := usecase.NewAuthUsecase(repo, "")

		_, err := uc.Authenticate(ctx, auth.Credentials{Username: "Alice", Password: "secret1"})
		assert.True(t, apperror.Is(err, apperror.KindInvalidCredentials))
		repo.AssertExpectations(t)
	})

	t.Run("Storage failure is Unavailable", func(t *testing.T) {
		repo := new(MockAdminRepo)
		repo.On("GetByUsername", mock.Anything, "alice").Return(nil, errors.New("dial tcp: timeout"))
		uc := usecase.NewAuthUsecase(repo, "")

		_, err := uc.Authenticate(ctx, auth.Credentials{Username: "alice", Password: "secret1"})
		assert.True(t, apperror.Is(err, apperror.KindUnavailable))
		assert.NotContains(t, err.Error(), "dial tcp")
	})
}

func TestAuthenticateLegacy(t *testing.T) {
	ctx := context.Background()
	legacyHash := mustHash(t, "shared-secret")

	t.Run("Matching secret yields the unscoped legacy identity", func(t *testing.T) {
		repo := new(MockAdminRepo)
		uc := usecase.NewAuthUsecase(repo, legacyHash)

		id, err := uc.Authenticate(ctx, auth.Credentials{Password: "shared-secret"})
		require.NoError(t, err)
		assert.Equal(t, domain.LegacyCaller{}, id)
		repo.AssertNotCalled(t, "GetByUsername", mock.Anything, mock.Anything)
	})

	t.Run("Wrong secret is InvalidCredentials", func(t *testing.T) {
		uc := usecase.NewAuthUsecase(new(MockAdminRepo), legacyHash)
		_, err := uc.Authenticate(ctx, auth.Credentials{Password: "nope"})
		assert.True(t, apperror.Is(err, apperror.KindInvalidCredentials))
	})

	t.Run("Missing legacy hash is a configuration error", func(t *testing.T) {
		uc := usecase.NewAuthUsecase(new(MockAdminRepo), "")
		_, err := uc.Authenticate(ctx, auth.Credentials{Password: "shared-secret"})
		assert.True(t, apperror.Is(err, apperror.KindConfiguration))
	})

	t.Run("Malformed legacy hash is a configuration error", func(t *testing.T) {
		uc := usecase.NewAuthUsecase(new(MockAdminRepo), "$2b$10$truncated")
		_, err := uc.Authenticate(ctx, auth.Credentials{Password: "shared-secret"})
		assert.True(t, apperror.Is(err, apperror.KindConfiguration))
	})
}
