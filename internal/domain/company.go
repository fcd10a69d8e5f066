package domain

import (
	"context"
	"regexp"
	"time"
)

var companySlugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

type Company struct {
	ID           int64     `json:"company_id"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	LogoURL      *string   `json:"logo_url"`
	PrimaryColor *string   `json:"primary_color"`
	CreatedAt    time.Time `json:"created_at"`
}

// CompanySettingsUpdate carries the branding fields an admin may change.
// A nil field is left untouched.
type CompanySettingsUpdate struct {
	Name         *string `json:"name"`
	LogoURL      *string `json:"logo_url"`
	PrimaryColor *string `json:"primary_color"`
}

// Empty reports whether the update changes nothing.
func (u CompanySettingsUpdate) Empty() bool {
	return u.Name == nil && u.LogoURL == nil && u.PrimaryColor == nil
}

// Apply copies the set fields onto c. Empty strings clear the optional branding fields.
func (u CompanySettingsUpdate) Apply(c *Company) {
	if u.Name != nil {
		c.Name = *u.Name
	}
	if u.LogoURL != nil {
		c.LogoURL = nilIfEmpty(*u.LogoURL)
	}
	if u.PrimaryColor != nil {
		c.PrimaryColor = nilIfEmpty(*u.PrimaryColor)
	}
}

// companySlugMaxBase leaves room for a "-NN" suffix within the 100 char column.
const companySlugMaxBase = 90

// CompanySlugBase derives a slug candidate from a company name.
func CompanySlugBase(name string) string {
	return slugify(name, "company", companySlugMaxBase)
}

// ValidCompanySlug reports whether s is usable as a public company route segment.
func ValidCompanySlug(s string) bool {
	return companySlugPattern.MatchString(s)
}

type CompanyRepository interface {
	GetByID(ctx context.Context, id int64) (*Company, error)
	GetBySlug(ctx context.Context, slug string) (*Company, error)
	Update(ctx context.Context, company *Company) error
}

// Registration is the payload of a one-time company signup.
type Registration struct {
	CompanyName   string `json:"company_name" binding:"required,max=200,no_emoji"`
	CompanySlug   string `json:"company_slug" binding:"omitempty,max=100,company_slug"`
	LogoURL       string `json:"logo_url" binding:"omitempty,url"`
	PrimaryColor  string `json:"primary_color" binding:"omitempty,hex_color"`
	AdminUsername string `json:"admin_username" binding:"required,min=3,max=64"`
	AdminPassword string `json:"admin_password" binding:"required,min=6,max=72"`
}

// RegistrationResult is returned after signup. It never includes the password hash.
type RegistrationResult struct {
	Company *Company     `json:"company"`
	Admin   *ScopedAdmin `json:"admin"`
}

type CompanyUsecase interface {
	Register(ctx context.Context, req Registration) (*RegistrationResult, error)
	GetSettings(ctx context.Context, identity Identity) (*Company, error)
	UpdateSettings(ctx context.Context, identity Identity, update CompanySettingsUpdate) (*Company, error)
}

func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
