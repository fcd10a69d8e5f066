package usecase

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"

	"github.com/go-playground/validator/v10"
)

type jobUsecase struct {
	jobRepo     domain.JobRepository
	companyRepo domain.CompanyRepository
	guard       *Guard
	validate    *validator.Validate
}

func NewJobUsecase(jobRepo domain.JobRepository, companyRepo domain.CompanyRepository, guard *Guard, validate *validator.Validate) domain.JobUsecase {
	return &jobUsecase{
		jobRepo:     jobRepo,
		companyRepo: companyRepo,
		guard:       guard,
		validate:    validate,
	}
}

func (u *jobUsecase) CreateJob(ctx context.Context, identity domain.Identity, req domain.NewJob) (*domain.Job, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.Description = strings.TrimSpace(req.Description)
	if err := u.validate.Struct(req); err != nil {
		return nil, validationError(err)
	}

	status := domain.JobStatusDraft
	if req.Status != nil {
		st, err := domain.ParseJobStatus(*req.Status)
		if err != nil {
			return nil, invalidJobStatus(*req.Status)
		}
		status = st
	}

	companyID, err := u.guard.CreateTarget(identity, req.CompanyID)
	if err != nil {
		return nil, err
	}
	if _, err := u.companyRepo.GetByID(ctx, companyID); err != nil {
		return nil, repoError(err, ResourceCompany)
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	job := &domain.Job{
		CompanyID:    companyID,
		Title:        req.Title,
		Description:  req.Description,
		Requirements: optional(req.Requirements),
		Department:   optional(req.Department),
		Location:     optional(req.Location),
		JobType:      optional(req.JobType),
		SalaryRange:  optional(req.SalaryRange),
		Status:       status,
		IsActive:     isActive,
	}

	title := job.Title
	if err := u.jobRepo.Create(ctx, job, func(id int64) string { return domain.JobSlug(title, id) }); err != nil {
		return nil, repoError(err, ResourceJob)
	}
	return job, nil
}

func (u *jobUsecase) GetJob(ctx context.Context, identity domain.Identity, id int64) (*domain.Job, error) {
	return u.authorizedJob(ctx, identity, id)
}

func (u *jobUsecase) ListJobs(ctx context.Context, identity domain.Identity) ([]domain.Job, error) {
	scope, err := u.guard.ListScope(identity)
	if err != nil {
		return nil, err
	}
	jobs, err := u.jobRepo.FetchByScope(ctx, scope)
	if err != nil {
		return nil, repoError(err, ResourceJob)
	}
	return jobs, nil
}

// UpdateJob applies a partial update. The slug follows the title and is left alone
// when the title is not part of the patch or is unchanged.
func (u *jobUsecase) UpdateJob(ctx context.Context, identity domain.Identity, id int64, patch domain.JobPatch) (*domain.Job, error) {
	if patch.Empty() {
		return nil, apperror.BadRequest("No updatable fields supplied")
	}
	if err := u.validate.Struct(patch); err != nil {
		return nil, validationError(err)
	}

	job, err := u.authorizedJob(ctx, identity, id)
	if err != nil {
		return nil, err
	}

	if patch.Status != nil {
		st, err := domain.ParseJobStatus(*patch.Status)
		if err != nil {
			return nil, invalidJobStatus(*patch.Status)
		}
		job.Status = st
	}
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return nil, apperror.BadRequest("Title must not be empty")
		}
		if title != job.Title {
			job.Title = title
			job.Slug = domain.JobSlug(title, job.ID)
		}
	}
	if patch.Description != nil {
		description := strings.TrimSpace(*patch.Description)
		if description == "" {
			return nil, apperror.BadRequest("Description must not be empty")
		}
		job.Description = description
	}
	if patch.Requirements != nil {
		job.Requirements = optional(patch.Requirements)
	}
	if patch.Department != nil {
		job.Department = optional(patch.Department)
	}
	if patch.Location != nil {
		job.Location = optional(patch.Location)
	}
	if patch.JobType != nil {
		job.JobType = optional(patch.JobType)
	}
	if patch.SalaryRange != nil {
		job.SalaryRange = optional(patch.SalaryRange)
	}
	if patch.IsActive != nil {
		job.IsActive = *patch.IsActive
	}

	if err := u.jobRepo.Update(ctx, job); err != nil {
		return nil, repoError(err, ResourceJob)
	}
	return job, nil
}

func (u *jobUsecase) ListPublicJobs(ctx context.Context, companySlug string) ([]domain.JobWithCompany, error) {
	if _, err := u.companyRepo.GetBySlug(ctx, companySlug); err != nil {
		return nil, repoError(err, ResourceCompany)
	}
	jobs, err := u.jobRepo.FetchPublishedByCompanySlug(ctx, companySlug)
	if err != nil {
		return nil, repoError(err, ResourceJob)
	}
	return jobs, nil
}

func (u *jobUsecase) GetPublicJob(ctx context.Context, companySlug, jobSlug string) (*domain.JobWithCompany, error) {
	job, err := u.jobRepo.GetPublishedBySlugs(ctx, companySlug, jobSlug)
	if err != nil {
		return nil, repoError(err, ResourceJob)
	}
	return job, nil
}

// authorizedJob loads a job and runs it through the guard.
func (u *jobUsecase) authorizedJob(ctx context.Context, identity domain.Identity, id int64) (*domain.Job, error) {
	job, err := u.jobRepo.GetByID(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, u.guard.Authorize(identity, domain.Resource{Kind: ResourceJob})
	}
	if err != nil {
		return nil, repoError(err, ResourceJob)
	}
	if err := u.guard.Authorize(identity, domain.Resource{Kind: ResourceJob, CompanyID: job.CompanyID, Exists: true}); err != nil {
		return nil, err
	}
	return job, nil
}

func invalidJobStatus(s string) error {
	return apperror.InvalidStatus("Invalid job status " + strconv.Quote(s) + "; expected one of: " + joinStatuses(domain.JobStatuses))
}

func joinStatuses[S ~string](statuses []S) string {
	parts := make([]string, len(statuses))
	for i, s := range statuses {
		parts[i] = string(s)
	}
	return strings.Join(parts, ", ")
}
