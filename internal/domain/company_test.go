package domain_test

import (
	"strings"
	"testing"

	"go-jobboard-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidCompanySlug(t *testing.T) {
	for _, s := range []string{"acme", "acme-corp", "a1-b2-c3", "42"} {
		assert.True(t, domain.ValidCompanySlug(s), s)
	}
	for _, s := range []string{"", "Acme", "-acme", "acme-", "acme--corp", "acme corp", "acme_corp"} {
		assert.False(t, domain.ValidCompanySlug(s), s)
	}
}

func TestCompanySettingsUpdate(t *testing.T) {
	logo := "https://cdn.example.com/acme.png"
	company := &domain.Company{Name: "Acme", Slug: "acme", LogoURL: &logo}

	assert.True(t, domain.CompanySettingsUpdate{}.Empty())

	name := "Acme Inc"
	clear := ""
	color := "#112233"
	update := domain.CompanySettingsUpdate{Name: &name, LogoURL: &clear, PrimaryColor: &color}
	require.False(t, update.Empty())

	update.Apply(company)
	assert.Equal(t, "Acme Inc", company.Name)
	assert.Equal(t, "acme", company.Slug)
	assert.Nil(t, company.LogoURL)
	require.NotNil(t, company.PrimaryColor)
	assert.Equal(t, "#112233", *company.PrimaryColor)
}

func TestCompanySlugBase(t *testing.T) {
	assert.Equal(t, "acme-corp", domain.CompanySlugBase("  Acme Corp!  "))
	assert.Equal(t, "company", domain.CompanySlugBase("株式会社"))

	long := domain.CompanySlugBase(strings.Repeat("ab ", 100))
	assert.LessOrEqual(t, len(long), 90)
	assert.True(t, domain.ValidCompanySlug(long), long)
}
