package usecase_test

import (
	"context"
	"testing"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/internal/usecase"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/auth"
	"go-jobboard-backend/pkg/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCompanyUsecase() (domain.CompanyUsecase, *MockAdminRepo, *MockCompanyRepo) {
	adminRepo := new(MockAdminRepo)
	companyRepo := new(MockCompanyRepo)
	return usecase.NewCompanyUsecase(adminRepo, companyRepo, usecase.NewGuard(), validation.New()), adminRepo, companyRepo
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("Derives a free slug and hashes the password", func(t *testing.T) {
		uc, adminRepo, companyRepo := newCompanyUsecase()
		companyRepo.On("GetBySlug", mock.Anything, "acme-corp").Return(&domain.Company{ID: 1}, nil)
		companyRepo.On("GetBySlug", mock.Anything, "acme-corp-1").Return(nil, domain.ErrNotFound)
		adminRepo.On("CreateWithCompany", mock.Anything, mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				c := args.Get(1).(*domain.Company)
				a := args.Get(2).(*domain.Admin)
				c.ID, a.ID, a.CompanyID = 2, 10, 2
			}).Return(nil)

		res, err := uc.Register(ctx, domain.Registration{
			CompanyName:   "Acme Corp",
			AdminUsername: "bob",
			AdminPassword: "secret1",
		})
		require.NoError(t, err)
		assert.Equal(t, "acme-corp-1", res.Company.Slug)
		assert.Equal(t, domain.ScopedAdmin{AdminID: 10, Username: "bob", CompanyID: 2}, *res.Admin)

		admin := adminRepo.Calls[0].Arguments.Get(2).(*domain.Admin)
		assert.NotEqual(t, "secret1", admin.PasswordHash)
		assert.NoError(t, auth.ComparePassword("secret1", admin.PasswordHash))
	})

	t.Run("Explicit slug is used as given", func(t *testing.T) {
		uc, adminRepo, companyRepo := newCompanyUsecase()
		adminRepo.On("CreateWithCompany", mock.Anything, mock.Anything, mock.Anything).Return(nil)

		res, err := uc.Register(ctx, domain.Registration{
			CompanyName: "Acme", CompanySlug: "acme", AdminUsername: "alice", AdminPassword: "secret1",
		})
		require.NoError(t, err)
		assert.Equal(t, "acme", res.Company.Slug)
		companyRepo.AssertNotCalled(t, "GetBySlug", mock.Anything, mock.Anything)
	})

	t.Run("Duplicate username surfaces as DuplicateEntry", func(t *testing.T) {
		uc, adminRepo, _ := newCompanyUsecase()
		adminRepo.On("CreateWithCompany", mock.Anything, mock.Anything, mock.Anything).
			Return(apperror.Conflict("Username is already taken"))

		_, err := uc.Register(ctx, domain.Registration{
			CompanyName: "Acme", CompanySlug: "acme", AdminUsername: "alice", AdminPassword: "secret1",
		})
		assert.True(t, apperror.Is(err, apperror.KindDuplicate))
	})

	t.Run("Invalid payloads are rejected before storage", func(t *testing.T) {
		uc, adminRepo, _ := newCompanyUsecase()
		for name, req := range map[string]domain.Registration{
			"missing name":   {AdminUsername: "alice", AdminPassword: "secret1"},
			"bad slug":       {CompanyName: "Acme", CompanySlug: "Acme Inc", AdminUsername: "alice", AdminPassword: "secret1"},
			"short password": {CompanyName: "Acme", AdminUsername: "alice", AdminPassword: "abc"},
			"bad color":      {CompanyName: "Acme", PrimaryColor: "blue", AdminUsername: "alice", AdminPassword: "secret1"},
		} {
			_, err := uc.Register(ctx, req)
			assert.True(t, apperror.Is(err, apperror.KindValidation), name)
		}
		adminRepo.AssertNotCalled(t, "CreateWithCompany", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestSettings(t *testing.T) {
	ctx := context.Background()

	t.Run("Legacy caller has no settings to read and none to patch", func(t *testing.T) {
		uc, _, _ := newCompanyUsecase()

		company, err := uc.GetSettings(ctx, domain.LegacyCaller{})
		require.NoError(t, err)
		assert.Nil(t, company)

		_, err = uc.UpdateSettings(ctx, domain.LegacyCaller{}, domain.CompanySettingsUpdate{Name: strPtr("X")})
		assert.True(t, apperror.Is(err, apperror.KindForbidden))
	})

	t.Run("Scoped admin patches its own branding", func(t *testing.T) {
		uc, _, companyRepo := newCompanyUsecase()
		companyRepo.On("GetByID", mock.Anything, int64(1)).Return(&domain.Company{ID: 1, Name: "Acme", Slug: "acme"}, nil)
		companyRepo.On("Update", mock.Anything, mock.AnythingOfType("*domain.Company")).Return(nil)

		company, err := uc.UpdateSettings(ctx, alice, domain.CompanySettingsUpdate{
			Name:         strPtr(" Acme Inc "),
			PrimaryColor: strPtr("#1E3A5F"),
			LogoURL:      strPtr(""),
		})
		require.NoError(t, err)
		assert.Equal(t, "Acme Inc", company.Name)
		assert.Equal(t, "acme", company.Slug)
		assert.Nil(t, company.LogoURL)
	})

	t.Run("Invalid branding is rejected", func(t *testing.T) {
		uc, _, companyRepo := newCompanyUsecase()
		_, err := uc.UpdateSettings(ctx, alice, domain.CompanySettingsUpdate{PrimaryColor: strPtr("red")})
		assert.True(t, apperror.Is(err, apperror.KindValidation))
		_, err = uc.UpdateSettings(ctx, alice, domain.CompanySettingsUpdate{})
		assert.True(t, apperror.Is(err, apperror.KindValidation))
		companyRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}
