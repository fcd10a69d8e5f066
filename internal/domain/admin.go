package domain

import (
	"context"
	"time"
)

// Admin is a company-scoped administrator. CompanyID is set at creation and has no
// update path.
type Admin struct {
	ID           int64     `json:"admin_id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CompanyID    int64     `json:"company_id"`
	CreatedAt    time.Time `json:"created_at"`
}

type AdminRepository interface {
	GetByUsername(ctx context.Context, username string) (*Admin, error)
	// CreateWithCompany inserts the company and its first admin in one transaction and
	// fills in their generated IDs.
	CreateWithCompany(ctx context.Context, company *Company, admin *Admin) error
}
