package postgres

import (
	"context"

	"go-jobboard-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type applicationRepo struct {
	db *pgxpool.Pool
}

// NewApplicationRepository creates a new application repository
func NewApplicationRepository(db *pgxpool.Pool) domain.ApplicationRepository {
	return &applicationRepo{db: db}
}

// Reads join the owning job so callers can authorize against its company
const applicationSelect = `
	SELECT
		a.application_id, a.job_id, a.full_name, a.email, a.phone, a.cover_letter,
		a.resume_path, a.status, a.applied_at,
		j.company_id, j.title, j.job_type, j.location
	FROM applications a
	JOIN jobs j ON j.job_id = a.job_id`

func scanApplication(row pgx.Row, app *domain.Application) error {
	var title string
	err := row.Scan(
		&app.ID, &app.JobID, &app.FullName, &app.Email, &app.Phone, &app.CoverLetter,
		&app.ResumePath, &app.Status, &app.AppliedAt,
		&app.CompanyID, &title, &app.JobType, &app.Location,
	)
	if err != nil {
		return err
	}
	app.JobTitle = &title
	return nil
}

// Create inserts a new application
func (r *applicationRepo) Create(ctx context.Context, app *domain.Application) error {
	query := `
		INSERT INTO applications (job_id, full_name, email, phone, cover_letter, resume_path, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING application_id, applied_at`

	err := r.db.QueryRow(ctx, query,
		app.JobID, app.FullName, app.Email, app.Phone, app.CoverLetter, app.ResumePath, app.Status,
	).Scan(&app.ID, &app.AppliedAt)
	return translateError(err)
}

// GetByID retrieves an application by ID with joined job data
func (r *applicationRepo) GetByID(ctx context.Context, id int64) (*domain.Application, error) {
	var app domain.Application
	if err := scanApplication(r.db.QueryRow(ctx, applicationSelect+` WHERE a.application_id = $1`, id), &app); err != nil {
		return nil, translateError(err)
	}
	return &app, nil
}

func (r *applicationRepo) FetchByScope(ctx context.Context, scope domain.CompanyScope) ([]domain.Application, error) {
	return r.fetch(ctx, applicationSelect+`
		WHERE $1 OR j.company_id = $2
		ORDER BY a.applied_at DESC, a.application_id DESC`, scope.All, scope.CompanyID)
}

func (r *applicationRepo) FetchByJobID(ctx context.Context, jobID int64) ([]domain.Application, error) {
	return r.fetch(ctx, applicationSelect+`
		WHERE a.job_id = $1
		ORDER BY a.applied_at DESC, a.application_id DESC`, jobID)
}

func (r *applicationRepo) fetch(ctx context.Context, query string, args ...any) ([]domain.Application, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	apps := []domain.Application{}
	for rows.Next() {
		var app domain.Application
		if err := scanApplication(rows, &app); err != nil {
			return nil, translateError(err)
		}
		apps = append(apps, app)
	}
	return apps, translateError(rows.Err())
}

// UpdateStatus is a single UPDATE; no other column changes.
func (r *applicationRepo) UpdateStatus(ctx context.Context, id int64, status domain.ApplicationStatus) error {
	tag, err := r.db.Exec(ctx, `UPDATE applications SET status = $2 WHERE application_id = $1`, id, status)
	if err != nil {
		return translateError(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
