package domain

import (
	"context"
	"errors"
	"time"
)

type ApplicationStatus string

// Application status constants. The recruiting pipeline runs roughly
// new → reviewing → contacted → interviewing → offered → hired, with rejected
// reachable from anywhere; no order is enforced.
const (
	ApplicationStatusNew          ApplicationStatus = "new"
	ApplicationStatusReviewing    ApplicationStatus = "reviewing"
	ApplicationStatusContacted    ApplicationStatus = "contacted"
	ApplicationStatusInterviewing ApplicationStatus = "interviewing"
	ApplicationStatusOffered      ApplicationStatus = "offered"
	ApplicationStatusHired        ApplicationStatus = "hired"
	ApplicationStatusRejected     ApplicationStatus = "rejected"
)

// ApplicationStatuses is the canonical application status set.
// The older new/reviewed/rejected set is deprecated and "reviewed" is not accepted.
var ApplicationStatuses = []ApplicationStatus{
	ApplicationStatusNew,
	ApplicationStatusReviewing,
	ApplicationStatusContacted,
	ApplicationStatusInterviewing,
	ApplicationStatusOffered,
	ApplicationStatusHired,
	ApplicationStatusRejected,
}

var ErrInvalidApplicationStatus = errors.New("invalid application status")

// ParseApplicationStatus accepts only the exact, case-sensitive wire values.
func ParseApplicationStatus(s string) (ApplicationStatus, error) {
	for _, st := range ApplicationStatuses {
		if string(st) == s {
			return st, nil
		}
	}
	return "", ErrInvalidApplicationStatus
}

// Application is a candidate's submission against a job.
type Application struct {
	ID          int64             `json:"application_id"`
	JobID       int64             `json:"job_id"`
	FullName    string            `json:"full_name"`
	Email       string            `json:"email"`
	Phone       *string           `json:"phone"`
	CoverLetter *string           `json:"cover_letter,omitempty"`
	ResumePath  string            `json:"resume_path"`
	Status      ApplicationStatus `json:"status"`
	AppliedAt   time.Time         `json:"created_at"`

	// Joined from jobs on reads
	CompanyID int64   `json:"company_id,omitempty"`
	JobTitle  *string `json:"job_title,omitempty"`
	JobType   *string `json:"job_type,omitempty"`
	Location  *string `json:"location,omitempty"`
}

// ApplicationSubmission is the public form payload. ResumePath is filled in by the
// upload step, never by the client.
type ApplicationSubmission struct {
	JobID       int64  `form:"job_id" binding:"required,gt=0"`
	FullName    string `form:"full_name" binding:"required,max=200,valid_name"`
	Email       string `form:"email" binding:"required,email,max=254"`
	Phone       string `form:"phone" binding:"omitempty,valid_phone"`
	CoverLetter string `form:"cover_letter" binding:"omitempty,max=10000"`
	ResumePath  string `form:"-"`
}

type ApplicationRepository interface {
	Create(ctx context.Context, app *Application) error
	GetByID(ctx context.Context, id int64) (*Application, error)
	FetchByScope(ctx context.Context, scope CompanyScope) ([]Application, error)
	FetchByJobID(ctx context.Context, jobID int64) ([]Application, error)
	UpdateStatus(ctx context.Context, id int64, status ApplicationStatus) error
}

type ApplicationUsecase interface {
	// Public
	Submit(ctx context.Context, req ApplicationSubmission) (*Application, error)

	// Admin
	ListApplications(ctx context.Context, identity Identity, jobID *int64) ([]Application, error)
	GetApplication(ctx context.Context, identity Identity, id int64) (*Application, error)
	UpdateApplicationStatus(ctx context.Context, identity Identity, id int64, status string) (*Application, error)
	ExportApplications(ctx context.Context, identity Identity) ([]byte, error)
}
