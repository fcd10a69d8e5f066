package usecase

import (
	"context"
	"errors"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/auth"
	"go-jobboard-backend/pkg/logger"
)

type authUsecase struct {
	adminRepo  domain.AdminRepository
	legacyHash string
}

// NewAuthUsecase builds the authenticator. legacyHash is the bcrypt hash of the shared
// secret accepted from callers that send no username; it comes from validated config.
func NewAuthUsecase(adminRepo domain.AdminRepository, legacyHash string) domain.AuthUsecase {
	return &authUsecase{adminRepo: adminRepo, legacyHash: legacyHash}
}

func (u *authUsecase) Authenticate(ctx context.Context, creds auth.Credentials) (domain.Identity, error) {
	if creds.Legacy() {
		return u.authenticateLegacy(creds.Password)
	}

	admin, err := u.adminRepo.GetByUsername(ctx, creds.Username)
	if errors.Is(err, domain.ErrNotFound) {
		auth.BurnComparison(creds.Password)
		return nil, apperror.InvalidCredentials()
	}
	if err != nil {
		return nil, repoError(err, "Admin")
	}

	if err := auth.ComparePassword(creds.Password, admin.PasswordHash); err != nil {
		if !errors.Is(err, auth.ErrPasswordMismatch) {
			logger.Log.Error("stored admin password hash is unusable", "admin_id", admin.ID, "error", err)
		}
		return nil, apperror.InvalidCredentials()
	}

	return domain.ScopedAdmin{
		AdminID:   admin.ID,
		Username:  admin.Username,
		CompanyID: admin.CompanyID,
	}, nil
}

func (u *authUsecase) authenticateLegacy(password string) (domain.Identity, error) {
	if u.legacyHash == "" {
		return nil, apperror.Configuration("Legacy admin password is not configured")
	}
	if err := auth.ComparePassword(password, u.legacyHash); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return nil, apperror.InvalidCredentials()
		}
		cfgErr := apperror.Configuration("Legacy admin password is misconfigured")
		cfgErr.Err = err
		return nil, cfgErr
	}
	return domain.LegacyCaller{}, nil
}
