package usecase

import (
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
)

// Resource kinds used in Guard error messages
const (
	ResourceJob         = "Job"
	ResourceApplication = "Application"
	ResourceCompany     = "Company"
)

// Guard is the only component that decides on company ownership. Every admin-scoped
// read and every mutation passes through it.
type Guard struct{}

func NewGuard() *Guard {
	return &Guard{}
}

// Authorize decides whether identity may act on res. Existence is checked before
// ownership so a missing record never reveals who would have owned it.
func (g *Guard) Authorize(identity domain.Identity, res domain.Resource) error {
	if !res.Exists {
		return apperror.NotFound(res.Kind + " not found")
	}

	switch id := identity.(type) {
	case domain.LegacyCaller:
		return nil
	case domain.ScopedAdmin:
		if id.CompanyID == res.CompanyID {
			return nil
		}
		return apperror.Forbidden("You do not have access to this " + lower(res.Kind))
	default:
		return apperror.Unauthenticated("Authentication required")
	}
}

// ListScope restricts list queries: a scoped admin sees its own company, the legacy
// caller sees every company.
func (g *Guard) ListScope(identity domain.Identity) (domain.CompanyScope, error) {
	switch id := identity.(type) {
	case domain.LegacyCaller:
		return domain.CompanyScope{All: true}, nil
	case domain.ScopedAdmin:
		return domain.CompanyScope{CompanyID: id.CompanyID}, nil
	default:
		return domain.CompanyScope{}, apperror.Unauthenticated("Authentication required")
	}
}

// CreateTarget picks the company a new job belongs to. The legacy caller has no
// company and must name one; the caller still has to check that it exists.
func (g *Guard) CreateTarget(identity domain.Identity, requested *int64) (int64, error) {
	switch id := identity.(type) {
	case domain.ScopedAdmin:
		if requested != nil && *requested != id.CompanyID {
			return 0, apperror.Forbidden("Jobs can only be created for your own company")
		}
		return id.CompanyID, nil
	case domain.LegacyCaller:
		if requested == nil || *requested <= 0 {
			return 0, apperror.BadRequest("company_id is required for the legacy admin")
		}
		return *requested, nil
	default:
		return 0, apperror.Unauthenticated("Authentication required")
	}
}

// SettingsCompany returns the company whose settings identity manages. The legacy
// caller has none.
func (g *Guard) SettingsCompany(identity domain.Identity) (int64, bool) {
	if id, ok := identity.(domain.ScopedAdmin); ok {
		return id.CompanyID, true
	}
	return 0, false
}

func lower(kind string) string {
	switch kind {
	case ResourceJob:
		return "job"
	case ResourceApplication:
		return "application"
	case ResourceCompany:
		return "company"
	}
	return "resource"
}
