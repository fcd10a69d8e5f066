package postgres

import (
	"context"

	"go-jobboard-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type adminRepo struct {
	db *pgxpool.Pool
}

func NewAdminRepository(db *pgxpool.Pool) domain.AdminRepository {
	return &adminRepo{db: db}
}

// GetByUsername is an exact, case-sensitive match.
func (r *adminRepo) GetByUsername(ctx context.Context, username string) (*domain.Admin, error) {
	query := `SELECT admin_id, username, password_hash, company_id, created_at FROM admins WHERE username = $1`
	var a domain.Admin
	err := r.db.QueryRow(ctx, query, username).Scan(
		&a.ID, &a.Username, &a.PasswordHash, &a.CompanyID, &a.CreatedAt,
	)
	if err != nil {
		return nil, translateError(err)
	}
	return &a, nil
}

func (r *adminRepo) CreateWithCompany(ctx context.Context, company *domain.Company, admin *domain.Admin) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return translateError(err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO companies (name, slug, logo_url, primary_color)
		VALUES ($1, $2, $3, $4)
		RETURNING company_id, created_at`,
		company.Name, company.Slug, company.LogoURL, company.PrimaryColor,
	).Scan(&company.ID, &company.CreatedAt)
	if err != nil {
		return translateError(err)
	}

	admin.CompanyID = company.ID
	err = tx.QueryRow(ctx, `
		INSERT INTO admins (username, password_hash, company_id)
		VALUES ($1, $2, $3)
		RETURNING admin_id, created_at`,
		admin.Username, admin.PasswordHash, admin.CompanyID,
	).Scan(&admin.ID, &admin.CreatedAt)
	if err != nil {
		return translateError(err)
	}

	return translateError(tx.Commit(ctx))
}
