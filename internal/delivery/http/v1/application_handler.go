package v1

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path"
	"strconv"
	"time"

	"go-jobboard-backend/internal/delivery/http/middleware"
	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/logger"
	"go-jobboard-backend/pkg/security"
	"go-jobboard-backend/pkg/storage"

	"github.com/gin-gonic/gin"
)

// formOverhead is the room left for the text fields of the multipart form.
const formOverhead = 1 << 20

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// UploadGate limits resume uploads per client. *security.UploadLimiter satisfies it.
type UploadGate interface {
	AllowUpload(ctx context.Context, ip string) (bool, int, error)
}

type ApplicationHandler struct {
	appUC    domain.ApplicationUsecase
	store    storage.ResumeStore
	limiter  UploadGate
	maxBytes int64
	secLog   *security.SecurityLogger
}

type ApplicationHandlerConfig struct {
	Store          storage.ResumeStore
	Limiter        UploadGate
	UploadMaxBytes int64
	SecurityLogger *security.SecurityLogger
}

func NewApplicationHandler(public, protected *gin.RouterGroup, appUC domain.ApplicationUsecase, cfg ApplicationHandlerConfig) {
	handler := &ApplicationHandler{
		appUC:    appUC,
		store:    cfg.Store,
		limiter:  cfg.Limiter,
		maxBytes: cfg.UploadMaxBytes,
		secLog:   cfg.SecurityLogger,
	}

	public.POST("/applications", middleware.RateLimitMiddleware(middleware.SubmissionRateLimitConfig()), handler.Submit)

	apps := protected.Group("/applications")
	{
		apps.GET("", handler.List)
		apps.GET("/export", handler.Export)
		apps.GET("/:id", handler.GetDetails)
		apps.GET("/:id/resume", handler.DownloadResume)
		apps.PATCH("/:id", handler.UpdateStatus)
	}
}

type UpdateApplicationStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// Submit godoc
// @Summary      Apply to a job
// @Description  Public multipart submission. The resume must be a PDF or DOCX within the upload limit.
// @Tags         applications
// @Accept       multipart/form-data
// @Produce      json
// @Param        job_id        formData  int     true   "Job ID"
// @Param        full_name     formData  string  true   "Full name"
// @Param        email         formData  string  true   "Email"
// @Param        phone         formData  string  false  "Phone"
// @Param        cover_letter  formData  string  false  "Cover letter"
// @Param        resume        formData  file    true   "Resume (.pdf or .docx)"
// @Success      201  {object}  response.Response{data=domain.Application}
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      429  {object}  response.Response
// @Router       /applications [post]
func (h *ApplicationHandler) Submit(c *gin.Context) {
	ctx := c.Request.Context()
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBytes+formOverhead)

	var req domain.ApplicationSubmission
	if err := c.ShouldBind(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.Error(h.tooLarge())
			return
		}
		c.Error(bindError(err))
		return
	}

	fileHeader, err := c.FormFile("resume")
	if err != nil {
		c.Error(apperror.BadRequest("Resume file is required"))
		return
	}
	if fileHeader.Size > h.maxBytes {
		h.secLog.LogUploadRejected(ctx, c.ClientIP(), response.RequestID(c), fileHeader.Filename, "too_large")
		c.Error(h.tooLarge())
		return
	}

	if h.limiter != nil {
		allowed, retryAfter, err := h.limiter.AllowUpload(ctx, c.ClientIP())
		if err != nil {
			logger.Log.Warn("upload limiter unavailable", "error", err)
		}
		if !allowed {
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			c.Error(apperror.TooManyRequests("Too many uploads. Please try again later."))
			return
		}
	}

	data, err := readUpload(fileHeader, h.maxBytes)
	if err != nil {
		c.Error(apperror.BadRequest("Could not read resume file"))
		return
	}

	result := security.ValidateFile(fileHeader.Filename, data)
	if !result.Valid {
		h.secLog.LogUploadRejected(ctx, c.ClientIP(), response.RequestID(c), fileHeader.Filename, result.Error)
		c.Error(apperror.BadRequest(result.Error))
		return
	}

	ref, err := h.store.Save(ctx, fileHeader.Filename, result.ContentType, data)
	if err != nil {
		c.Error(apperror.Unavailable(fmt.Errorf("storing resume: %w", err)))
		return
	}
	req.ResumePath = ref

	app, err := h.appUC.Submit(ctx, req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Application submitted successfully", app)
}

func (h *ApplicationHandler) tooLarge() error {
	return apperror.New(http.StatusRequestEntityTooLarge, apperror.KindValidation,
		fmt.Sprintf("Resume must be at most %d MB", h.maxBytes>>20), nil)
}

func readUpload(fh *multipart.FileHeader, limit int64) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(io.LimitReader(f, limit+1))
}

// List godoc
// @Summary      List applications
// @Description  Applications to the caller's company's jobs, optionally for one job
// @Tags         admin-applications
// @Produce      json
// @Security     BasicAuth
// @Param        job_id  query     int  false  "Only this job"
// @Success      200     {object}  response.Response{data=[]domain.Application}
// @Failure      403     {object}  response.Response
// @Failure      404     {object}  response.Response
// @Router       /admin/applications [get]
func (h *ApplicationHandler) List(c *gin.Context) {
	identity, err := middleware.CurrentIdentity(c)
	if err != nil {
		c.Error(err)
		return
	}

	var jobID *int64
	if raw := c.Query("job_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			c.Error(apperror.BadRequest("Invalid job ID"))
			return
		}
		jobID = &id
	}

	apps, err := h.appUC.ListApplications(c.Request.Context(), identity, jobID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Applications retrieved successfully", apps)
}

// GetDetails godoc
// @Summary      Get an application
// @Tags         admin-applications
// @Produce      json
// @Security     BasicAuth
// @Param        id   path      int  true  "Application ID"
// @Success      200  {object}  response.Response{data=domain.Application}
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /admin/applications/{id} [get]
func (h *ApplicationHandler) GetDetails(c *gin.Context) {
	identity, err := middleware.CurrentIdentity(c)
	if err != nil {
		c.Error(err)
		return
	}
	id, err := pathID(c, "id", "application")
	if err != nil {
		c.Error(err)
		return
	}

	app, err := h.appUC.GetApplication(c.Request.Context(), identity, id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Application retrieved successfully", app)
}

// UpdateStatus godoc
// @Summary      Update application status
// @Description  Any of new, reviewing, contacted, interviewing, offered, hired, rejected
// @Tags         admin-applications
// @Accept       json
// @Produce      json
// @Security     BasicAuth
// @Param        id    path      int                             true  "Application ID"
// @Param        body  body      UpdateApplicationStatusRequest  true  "New status"
// @Success      200   {object}  response.Response{data=domain.Application}
// @Failure      400   {object}  response.Response
// @Failure      403   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Router       /admin/applications/{id} [patch]
func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	identity, err := middleware.CurrentIdentity(c)
	if err != nil {
		c.Error(err)
		return
	}
	id, err := pathID(c, "id", "application")
	if err != nil {
		c.Error(err)
		return
	}

	var req UpdateApplicationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}

	app, err := h.appUC.UpdateApplicationStatus(c.Request.Context(), identity, id, req.Status)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Application status updated", app)
}

// Export godoc
// @Summary      Export applications
// @Description  XLSX workbook of every application the caller may see
// @Tags         admin-applications
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security     BasicAuth
// @Success      200  {file}    file
// @Failure      401  {object}  response.Response
// @Router       /admin/applications/export [get]
func (h *ApplicationHandler) Export(c *gin.Context) {
	identity, err := middleware.CurrentIdentity(c)
	if err != nil {
		c.Error(err)
		return
	}

	data, err := h.appUC.ExportApplications(c.Request.Context(), identity)
	if err != nil {
		c.Error(err)
		return
	}

	h.secLog.LogDataExport(c.Request.Context(), subjectOf(identity), c.ClientIP(), response.RequestID(c), len(data))

	filename := "applications-" + time.Now().UTC().Format("20060102") + ".xlsx"
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, xlsxContentType, data)
}

// DownloadResume godoc
// @Summary      Download an applicant's resume
// @Tags         admin-applications
// @Produce      application/octet-stream
// @Security     BasicAuth
// @Param        id   path      int  true  "Application ID"
// @Success      200  {file}    file
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /admin/applications/{id}/resume [get]
func (h *ApplicationHandler) DownloadResume(c *gin.Context) {
	identity, err := middleware.CurrentIdentity(c)
	if err != nil {
		c.Error(err)
		return
	}
	id, err := pathID(c, "id", "application")
	if err != nil {
		c.Error(err)
		return
	}

	app, err := h.appUC.GetApplication(c.Request.Context(), identity, id)
	if err != nil {
		c.Error(err)
		return
	}

	rc, err := h.store.Open(c.Request.Context(), app.ResumePath)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) || errors.Is(err, storage.ErrInvalidReference) {
			c.Error(apperror.NotFound("Resume not found"))
			return
		}
		c.Error(apperror.Unavailable(fmt.Errorf("opening resume: %w", err)))
		return
	}
	defer rc.Close()

	c.DataFromReader(http.StatusOK, -1, security.ContentTypeFor(app.ResumePath), rc, map[string]string{
		"Content-Disposition": `attachment; filename="` + path.Base(app.ResumePath) + `"`,
	})
}

func subjectOf(identity domain.Identity) string {
	if admin, ok := identity.(domain.ScopedAdmin); ok {
		return security.MaskUsername(admin.Username)
	}
	return security.MaskUsername("")
}
