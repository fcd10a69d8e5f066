package domain

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"
)

// Common domain errors
var ErrNotFound = errors.New("resource not found")

type JobStatus string

const (
	JobStatusDraft     JobStatus = "draft"
	JobStatusPublished JobStatus = "published"
	JobStatusPaused    JobStatus = "paused"
	JobStatusArchived  JobStatus = "archived"
)

// JobStatuses is the canonical job status set, in display order.
var JobStatuses = []JobStatus{JobStatusDraft, JobStatusPublished, JobStatusPaused, JobStatusArchived}

// ErrInvalidJobStatus is returned by ParseJobStatus for values outside JobStatuses.
var ErrInvalidJobStatus = errors.New("invalid job status")

// ParseJobStatus accepts only the exact, case-sensitive wire values.
func ParseJobStatus(s string) (JobStatus, error) {
	for _, st := range JobStatuses {
		if string(st) == s {
			return st, nil
		}
	}
	return "", ErrInvalidJobStatus
}

type Job struct {
	ID           int64     `json:"job_id"`
	CompanyID    int64     `json:"company_id"`
	Title        string    `json:"title"`
	Slug         string    `json:"job_slug"`
	Description  string    `json:"description"`
	Requirements *string   `json:"requirements"`
	Department   *string   `json:"department"`
	Location     *string   `json:"location"`
	JobType      *string   `json:"job_type"`
	SalaryRange  *string   `json:"salary_range"`
	Status       JobStatus `json:"status"`
	IsActive     bool      `json:"is_active"`
	PostedAt     time.Time `json:"posted_date"`
}

// PubliclyVisible reports whether the job may be served on the public careers pages.
func (j *Job) PubliclyVisible() bool {
	return j.Status == JobStatusPublished && j.IsActive
}

// jobSlugFallback is used when a title has no ASCII letters or digits.
const jobSlugFallback = "job"

// JobSlugBase lowercases the title and collapses every run of characters outside
// [a-z0-9] into a single dash, with no leading or trailing dash.
func JobSlugBase(title string) string {
	return slugify(title, jobSlugFallback, 0)
}

func slugify(s, fallback string, maxLen int) string {
	var b strings.Builder
	pendingDash := false
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if maxLen > 0 && b.Len()+2 > maxLen {
				break
			}
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
			continue
		}
		pendingDash = true
	}
	if b.Len() == 0 {
		return fallback
	}
	return b.String()
}

// JobSlug derives the public slug for a job. The ID suffix makes it unique even when
// titles collide.
func JobSlug(title string, id int64) string {
	return JobSlugBase(title) + "-" + strconv.FormatInt(id, 10)
}

// NewJob is the admin payload for creating a job. CompanyID is only honoured for the
// legacy caller, which has no company of its own.
type NewJob struct {
	Title        string  `json:"title" binding:"required,max=200"`
	Description  string  `json:"description" binding:"required"`
	Requirements *string `json:"requirements"`
	Department   *string `json:"department" binding:"omitempty,max=100"`
	Location     *string `json:"location" binding:"omitempty,max=200"`
	JobType      *string `json:"job_type" binding:"omitempty,max=50"`
	SalaryRange  *string `json:"salary_range" binding:"omitempty,max=100"`
	Status       *string `json:"status"`
	IsActive     *bool   `json:"is_active"`
	CompanyID    *int64  `json:"company_id"`
}

// JobPatch is a partial update; nil fields are left untouched. An empty string clears
// an optional text field.
type JobPatch struct {
	Title        *string `json:"title" binding:"omitempty,max=200"`
	Description  *string `json:"description"`
	Requirements *string `json:"requirements"`
	Department   *string `json:"department" binding:"omitempty,max=100"`
	Location     *string `json:"location" binding:"omitempty,max=200"`
	JobType      *string `json:"job_type" binding:"omitempty,max=50"`
	SalaryRange  *string `json:"salary_range" binding:"omitempty,max=100"`
	Status       *string `json:"status"`
	IsActive     *bool   `json:"is_active"`
}

// Empty reports whether the patch sets no field at all.
func (p JobPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Requirements == nil &&
		p.Department == nil && p.Location == nil && p.JobType == nil && p.SalaryRange == nil &&
		p.Status == nil && p.IsActive == nil
}

// JobWithCompany is the public view of a job with its company's branding.
type JobWithCompany struct {
	Job
	CompanyName         string  `json:"company_name"`
	CompanySlug         string  `json:"company_slug"`
	CompanyLogoURL      *string `json:"company_logo_url"`
	CompanyPrimaryColor *string `json:"company_primary_color"`
}

type JobRepository interface {
	// Create inserts the job and assigns job.Slug = slugFor(job.ID) inside one
	// transaction, so no committed row is ever without a slug.
	Create(ctx context.Context, job *Job, slugFor func(id int64) string) error
	GetByID(ctx context.Context, id int64) (*Job, error)
	FetchByScope(ctx context.Context, scope CompanyScope) ([]Job, error)
	FetchPublishedByCompanySlug(ctx context.Context, companySlug string) ([]JobWithCompany, error)
	GetPublishedBySlugs(ctx context.Context, companySlug, jobSlug string) (*JobWithCompany, error)
	Update(ctx context.Context, job *Job) error
}

type JobUsecase interface {
	CreateJob(ctx context.Context, identity Identity, req NewJob) (*Job, error)
	GetJob(ctx context.Context, identity Identity, id int64) (*Job, error)
	ListJobs(ctx context.Context, identity Identity) ([]Job, error)
	UpdateJob(ctx context.Context, identity Identity, id int64, patch JobPatch) (*Job, error)
	ListPublicJobs(ctx context.Context, companySlug string) ([]JobWithCompany, error)
	GetPublicJob(ctx context.Context, companySlug, jobSlug string) (*JobWithCompany, error)
}
