package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"

	"github.com/go-playground/validator/v10"
	"github.com/xuri/excelize/v2"
)

type applicationUsecase struct {
	appRepo  domain.ApplicationRepository
	jobRepo  domain.JobRepository
	guard    *Guard
	validate *validator.Validate
}

// NewApplicationUsecase creates a new application usecase
func NewApplicationUsecase(appRepo domain.ApplicationRepository, jobRepo domain.JobRepository, guard *Guard, validate *validator.Validate) domain.ApplicationUsecase {
	return &applicationUsecase{
		appRepo:  appRepo,
		jobRepo:  jobRepo,
		guard:    guard,
		validate: validate,
	}
}

// Submit records a public application. The resume must already be stored.
func (u *applicationUsecase) Submit(ctx context.Context, req domain.ApplicationSubmission) (*domain.Application, error) {
	req.FullName = strings.TrimSpace(req.FullName)
	req.Email = strings.TrimSpace(req.Email)
	req.Phone = strings.TrimSpace(req.Phone)
	req.CoverLetter = strings.TrimSpace(req.CoverLetter)
	if err := u.validate.Struct(req); err != nil {
		return nil, validationError(err)
	}
	if req.ResumePath == "" {
		return nil, apperror.BadRequest("Resume is required")
	}

	job, err := u.jobRepo.GetByID(ctx, req.JobID)
	if err != nil {
		return nil, repoError(err, ResourceJob)
	}

	app := &domain.Application{
		JobID:       job.ID,
		FullName:    req.FullName,
		Email:       req.Email,
		Phone:       nonEmpty(req.Phone),
		CoverLetter: nonEmpty(req.CoverLetter),
		ResumePath:  req.ResumePath,
		Status:      domain.ApplicationStatusNew,
	}
	if err := u.appRepo.Create(ctx, app); err != nil {
		return nil, repoError(err, ResourceApplication)
	}

	app.CompanyID = job.CompanyID
	app.JobTitle = &job.Title
	app.JobType = job.JobType
	app.Location = job.Location
	return app, nil
}

// ListApplications lists applications visible to identity, optionally for one job.
// Filtering by job is guarded like any other read of that job.
func (u *applicationUsecase) ListApplications(ctx context.Context, identity domain.Identity, jobID *int64) ([]domain.Application, error) {
	scope, err := u.guard.ListScope(identity)
	if err != nil {
		return nil, err
	}

	if jobID == nil {
		apps, err := u.appRepo.FetchByScope(ctx, scope)
		if err != nil {
			return nil, repoError(err, ResourceApplication)
		}
		return apps, nil
	}

	job, err := u.jobRepo.GetByID(ctx, *jobID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, u.guard.Authorize(identity, domain.Resource{Kind: ResourceJob})
	}
	if err != nil {
		return nil, repoError(err, ResourceJob)
	}
	if err := u.guard.Authorize(identity, domain.Resource{Kind: ResourceJob, CompanyID: job.CompanyID, Exists: true}); err != nil {
		return nil, err
	}

	apps, err := u.appRepo.FetchByJobID(ctx, job.ID)
	if err != nil {
		return nil, repoError(err, ResourceApplication)
	}
	return apps, nil
}

func (u *applicationUsecase) GetApplication(ctx context.Context, identity domain.Identity, id int64) (*domain.Application, error) {
	return u.authorizedApplication(ctx, identity, id)
}

// UpdateApplicationStatus changes only the status, after the guard and the status
// check both pass. Nothing is written on failure.
func (u *applicationUsecase) UpdateApplicationStatus(ctx context.Context, identity domain.Identity, id int64, status string) (*domain.Application, error) {
	app, err := u.authorizedApplication(ctx, identity, id)
	if err != nil {
		return nil, err
	}

	st, err := domain.ParseApplicationStatus(status)
	if err != nil {
		return nil, apperror.InvalidStatus("Invalid application status " + strconv.Quote(status) +
			"; expected one of: " + joinStatuses(domain.ApplicationStatuses))
	}

	if err := u.appRepo.UpdateStatus(ctx, app.ID, st); err != nil {
		return nil, repoError(err, ResourceApplication)
	}
	app.Status = st
	return app, nil
}

func (u *applicationUsecase) authorizedApplication(ctx context.Context, identity domain.Identity, id int64) (*domain.Application, error) {
	app, err := u.appRepo.GetByID(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, u.guard.Authorize(identity, domain.Resource{Kind: ResourceApplication})
	}
	if err != nil {
		return nil, repoError(err, ResourceApplication)
	}
	if err := u.guard.Authorize(identity, domain.Resource{Kind: ResourceApplication, CompanyID: app.CompanyID, Exists: true}); err != nil {
		return nil, err
	}
	return app, nil
}

// exportColumns are the spreadsheet headers, in order
var exportColumns = []string{
	"APPLICATION ID", "JOB", "FULL NAME", "EMAIL", "PHONE", "STATUS", "APPLIED AT", "RESUME",
}

// ExportApplications renders every application visible to identity as an XLSX file.
func (u *applicationUsecase) ExportApplications(ctx context.Context, identity domain.Identity) ([]byte, error) {
	scope, err := u.guard.ListScope(identity)
	if err != nil {
		return nil, err
	}
	apps, err := u.appRepo.FetchByScope(ctx, scope)
	if err != nil {
		return nil, repoError(err, ResourceApplication)
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Applications"
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, apperror.Internal(err)
	}

	for i, name := range exportColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, name)
	}

	// Dark blue header with white text
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#1E3A5F"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	endCell, _ := excelize.CoordinatesToCellName(len(exportColumns), 1)
	f.SetCellStyle(sheetName, "A1", endCell, headerStyle)

	for rowIdx, app := range apps {
		row := []any{
			app.ID,
			deref(app.JobTitle),
			app.FullName,
			app.Email,
			deref(app.Phone),
			string(app.Status),
			app.AppliedAt.UTC().Format("2006-01-02 15:04"),
			app.ResumePath,
		}
		cell, _ := excelize.CoordinatesToCellName(1, rowIdx+2)
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return nil, apperror.Internal(fmt.Errorf("writing export row %d: %w", rowIdx, err))
		}
	}

	for i := range exportColumns {
		colName, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, colName, colName, 22)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, apperror.Internal(fmt.Errorf("failed to write Excel file: %w", err))
	}
	return buf.Bytes(), nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
