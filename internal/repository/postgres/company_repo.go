package postgres

import (
	"context"

	"go-jobboard-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type companyRepo struct {
	db *pgxpool.Pool
}

func NewCompanyRepository(db *pgxpool.Pool) domain.CompanyRepository {
	return &companyRepo{db: db}
}

const companyColumns = `company_id, name, slug, logo_url, primary_color, created_at`

func (r *companyRepo) GetByID(ctx context.Context, id int64) (*domain.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE company_id = $1`
	var c domain.Company
	err := r.db.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.Name, &c.Slug, &c.LogoURL, &c.PrimaryColor, &c.CreatedAt,
	)
	if err != nil {
		return nil, translateError(err)
	}
	return &c, nil
}

func (r *companyRepo) GetBySlug(ctx context.Context, slug string) (*domain.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE slug = $1`
	var c domain.Company
	err := r.db.QueryRow(ctx, query, slug).Scan(
		&c.ID, &c.Name, &c.Slug, &c.LogoURL, &c.PrimaryColor, &c.CreatedAt,
	)
	if err != nil {
		return nil, translateError(err)
	}
	return &c, nil
}

// Update writes the branding fields. The slug is immutable and never written here.
func (r *companyRepo) Update(ctx context.Context, c *domain.Company) error {
	query := `UPDATE companies SET name = $2, logo_url = $3, primary_color = $4 WHERE company_id = $1`
	tag, err := r.db.Exec(ctx, query, c.ID, c.Name, c.LogoURL, c.PrimaryColor)
	if err != nil {
		return translateError(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
