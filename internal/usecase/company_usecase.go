package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/auth"

	"github.com/go-playground/validator/v10"
)

// maxSlugSuffix bounds the numeric suffixes tried for a derived company slug.
const maxSlugSuffix = 20

type companyUsecase struct {
	adminRepo   domain.AdminRepository
	companyRepo domain.CompanyRepository
	guard       *Guard
	validate    *validator.Validate
}

func NewCompanyUsecase(adminRepo domain.AdminRepository, companyRepo domain.CompanyRepository, guard *Guard, validate *validator.Validate) domain.CompanyUsecase {
	return &companyUsecase{
		adminRepo:   adminRepo,
		companyRepo: companyRepo,
		guard:       guard,
		validate:    validate,
	}
}

// Register creates a company and its first admin in one transaction.
func (u *companyUsecase) Register(ctx context.Context, req domain.Registration) (*domain.RegistrationResult, error) {
	req.CompanyName = strings.TrimSpace(req.CompanyName)
	req.AdminUsername = strings.TrimSpace(req.AdminUsername)
	if err := u.validate.Struct(req); err != nil {
		return nil, validationError(err)
	}

	slug := req.CompanySlug
	if slug == "" {
		var err error
		if slug, err = u.availableSlug(ctx, req.CompanyName); err != nil {
			return nil, err
		}
	}

	hash, err := auth.HashPassword(req.AdminPassword)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	company := &domain.Company{
		Name:         req.CompanyName,
		Slug:         slug,
		LogoURL:      nonEmpty(req.LogoURL),
		PrimaryColor: nonEmpty(req.PrimaryColor),
	}
	admin := &domain.Admin{
		Username:     req.AdminUsername,
		PasswordHash: hash,
	}
	if err := u.adminRepo.CreateWithCompany(ctx, company, admin); err != nil {
		return nil, repoError(err, ResourceCompany)
	}

	return &domain.RegistrationResult{
		Company: company,
		Admin: &domain.ScopedAdmin{
			AdminID:   admin.ID,
			Username:  admin.Username,
			CompanyID: admin.CompanyID,
		},
	}, nil
}

// availableSlug derives a slug from the name, adding -1, -2, ... until one is free.
// The unique constraint still decides races between concurrent registrations.
func (u *companyUsecase) availableSlug(ctx context.Context, name string) (string, error) {
	base := domain.CompanySlugBase(name)
	for i := 0; i <= maxSlugSuffix; i++ {
		candidate := base
		if i > 0 {
			candidate = fmt.Sprintf("%s-%d", base, i)
		}
		_, err := u.companyRepo.GetBySlug(ctx, candidate)
		if errors.Is(err, domain.ErrNotFound) {
			return candidate, nil
		}
		if err != nil {
			return "", repoError(err, ResourceCompany)
		}
	}
	return "", apperror.Conflict(fmt.Sprintf("Unable to find an available slug for %q; choose one explicitly", base))
}

// GetSettings returns nil for the legacy caller, which manages no company.
func (u *companyUsecase) GetSettings(ctx context.Context, identity domain.Identity) (*domain.Company, error) {
	if _, err := u.guard.ListScope(identity); err != nil {
		return nil, err
	}
	companyID, ok := u.guard.SettingsCompany(identity)
	if !ok {
		return nil, nil
	}
	company, err := u.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return nil, repoError(err, ResourceCompany)
	}
	return company, nil
}

func (u *companyUsecase) UpdateSettings(ctx context.Context, identity domain.Identity, update domain.CompanySettingsUpdate) (*domain.Company, error) {
	if _, err := u.guard.ListScope(identity); err != nil {
		return nil, err
	}
	companyID, ok := u.guard.SettingsCompany(identity)
	if !ok {
		return nil, apperror.Forbidden("The legacy admin has no company settings")
	}
	if update.Empty() {
		return nil, apperror.BadRequest("No updatable fields supplied")
	}
	if err := u.checkSettings(&update); err != nil {
		return nil, err
	}

	company, err := u.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return nil, repoError(err, ResourceCompany)
	}
	if err := u.guard.Authorize(identity, domain.Resource{Kind: ResourceCompany, CompanyID: company.ID, Exists: true}); err != nil {
		return nil, err
	}

	update.Apply(company)
	if err := u.companyRepo.Update(ctx, company); err != nil {
		return nil, repoError(err, ResourceCompany)
	}
	return company, nil
}

// checkSettings validates the set fields. Empty strings are allowed for the optional
// branding fields and clear them.
func (u *companyUsecase) checkSettings(update *domain.CompanySettingsUpdate) error {
	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if name == "" {
			return apperror.BadRequest("Company name must not be empty")
		}
		if err := u.validate.Var(name, "max=200,no_emoji"); err != nil {
			return apperror.Validation("Company name must be at most 200 characters without emoji", err)
		}
		update.Name = &name
	}
	if update.LogoURL != nil && *update.LogoURL != "" {
		if err := u.validate.Var(*update.LogoURL, "url"); err != nil {
			return apperror.Validation("Logo URL must be a valid URL", err)
		}
	}
	if update.PrimaryColor != nil {
		if err := u.validate.Var(*update.PrimaryColor, "hex_color"); err != nil {
			return apperror.Validation("Primary color must be a color like #1E3A5F", err)
		}
	}
	return nil
}
