package postgres

import (
	"context"

	"go-jobboard-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type jobRepo struct {
	db *pgxpool.Pool
}

func NewJobRepository(db *pgxpool.Pool) domain.JobRepository {
	return &jobRepo{db: db}
}

const jobColumns = `j.job_id, j.company_id, j.title, j.job_slug, j.description, j.requirements,
	j.department, j.location, j.job_type, j.salary_range, j.status, j.is_active, j.posted_date`

func scanJob(row pgx.Row, job *domain.Job, extra ...any) error {
	dest := []any{
		&job.ID, &job.CompanyID, &job.Title, &job.Slug, &job.Description, &job.Requirements,
		&job.Department, &job.Location, &job.JobType, &job.SalaryRange, &job.Status, &job.IsActive, &job.PostedAt,
	}
	return row.Scan(append(dest, extra...)...)
}

func (r *jobRepo) Create(ctx context.Context, job *domain.Job, slugFor func(id int64) string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return translateError(err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO jobs (company_id, title, description, requirements, department, location, job_type, salary_range, status, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING job_id, posted_date`,
		job.CompanyID, job.Title, job.Description, job.Requirements, job.Department,
		job.Location, job.JobType, job.SalaryRange, job.Status, job.IsActive,
	).Scan(&job.ID, &job.PostedAt)
	if err != nil {
		return translateError(err)
	}

	slug := slugFor(job.ID)
	if _, err := tx.Exec(ctx, `UPDATE jobs SET job_slug = $2 WHERE job_id = $1`, job.ID, slug); err != nil {
		return translateError(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return translateError(err)
	}
	job.Slug = slug
	return nil
}

func (r *jobRepo) GetByID(ctx context.Context, id int64) (*domain.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs j WHERE j.job_id = $1`
	var job domain.Job
	if err := scanJob(r.db.QueryRow(ctx, query, id), &job); err != nil {
		return nil, translateError(err)
	}
	return &job, nil
}

func (r *jobRepo) FetchByScope(ctx context.Context, scope domain.CompanyScope) ([]domain.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs j
		WHERE $1 OR j.company_id = $2
		ORDER BY j.posted_date DESC, j.job_id DESC`

	rows, err := r.db.Query(ctx, query, scope.All, scope.CompanyID)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	jobs := []domain.Job{}
	for rows.Next() {
		var job domain.Job
		if err := scanJob(rows, &job); err != nil {
			return nil, translateError(err)
		}
		jobs = append(jobs, job)
	}
	return jobs, translateError(rows.Err())
}

const publicJobQuery = `SELECT ` + jobColumns + `, c.name, c.slug, c.logo_url, c.primary_color
	FROM jobs j
	JOIN companies c ON c.company_id = j.company_id
	WHERE c.slug = $1 AND j.status = 'published' AND j.is_active`

func (r *jobRepo) FetchPublishedByCompanySlug(ctx context.Context, companySlug string) ([]domain.JobWithCompany, error) {
	rows, err := r.db.Query(ctx, publicJobQuery+` ORDER BY j.posted_date DESC, j.job_id DESC`, companySlug)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	jobs := []domain.JobWithCompany{}
	for rows.Next() {
		var jc domain.JobWithCompany
		if err := scanJob(rows, &jc.Job, &jc.CompanyName, &jc.CompanySlug, &jc.CompanyLogoURL, &jc.CompanyPrimaryColor); err != nil {
			return nil, translateError(err)
		}
		jobs = append(jobs, jc)
	}
	return jobs, translateError(rows.Err())
}

func (r *jobRepo) GetPublishedBySlugs(ctx context.Context, companySlug, jobSlug string) (*domain.JobWithCompany, error) {
	var jc domain.JobWithCompany
	row := r.db.QueryRow(ctx, publicJobQuery+` AND j.job_slug = $2`, companySlug, jobSlug)
	if err := scanJob(row, &jc.Job, &jc.CompanyName, &jc.CompanySlug, &jc.CompanyLogoURL, &jc.CompanyPrimaryColor); err != nil {
		return nil, translateError(err)
	}
	return &jc, nil
}

// Update writes every mutable column in one statement. company_id is never written.
func (r *jobRepo) Update(ctx context.Context, job *domain.Job) error {
	query := `
		UPDATE jobs SET
			title = $2, job_slug = $3, description = $4, requirements = $5,
			department = $6, location = $7, job_type = $8, salary_range = $9, status = $10, is_active = $11
		WHERE job_id = $1`
	tag, err := r.db.Exec(ctx, query,
		job.ID, job.Title, job.Slug, job.Description, job.Requirements,
		job.Department, job.Location, job.JobType, job.SalaryRange, job.Status, job.IsActive,
	)
	if err != nil {
		return translateError(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
