package v1

import (
	"net/http"

	"go-jobboard-backend/internal/delivery/http/middleware"
	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type JobHandler struct {
	jobUC domain.JobUsecase
}

func NewJobHandler(public, protected *gin.RouterGroup, jobUC domain.JobUsecase) {
	handler := &JobHandler{jobUC: jobUC}

	// PUBLIC routes - only published, active jobs are ever returned
	publicJobs := public.Group("/jobs/companies/:company_slug/jobs")
	{
		publicJobs.GET("", handler.PublicList)
		publicJobs.GET("/:job_slug", handler.PublicGetDetails)
	}

	adminJobs := protected.Group("/jobs")
	{
		adminJobs.GET("", handler.List)
		adminJobs.POST("", handler.Create)
		adminJobs.GET("/:id", handler.GetDetails)
		adminJobs.PATCH("/:id", handler.Update)
	}
}

// PublicList godoc
// @Summary      List a company's open jobs
// @Description  Published and active jobs of one company, newest first
// @Tags         jobs
// @Produce      json
// @Param        company_slug  path      string  true  "Company slug"
// @Success      200           {object}  response.Response{data=[]domain.JobWithCompany}
// @Failure      404           {object}  response.Response
// @Router       /jobs/companies/{company_slug}/jobs [get]
func (h *JobHandler) PublicList(c *gin.Context) {
	jobs, err := h.jobUC.ListPublicJobs(c.Request.Context(), c.Param("company_slug"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Jobs retrieved successfully", jobs)
}

// PublicGetDetails godoc
// @Summary      Get an open job
// @Tags         jobs
// @Produce      json
// @Param        company_slug  path      string  true  "Company slug"
// @Param        job_slug      path      string  true  "Job slug"
// @Success      200           {object}  response.Response{data=domain.JobWithCompany}
// @Failure      404           {object}  response.Response
// @Router       /jobs/companies/{company_slug}/jobs/{job_slug} [get]
func (h *JobHandler) PublicGetDetails(c *gin.Context) {
	job, err := h.jobUC.GetPublicJob(c.Request.Context(), c.Param("company_slug"), c.Param("job_slug"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job retrieved successfully", job)
}

// List godoc
// @Summary      List jobs
// @Description  All jobs of the caller's company in every status. The legacy admin sees every company.
// @Tags         admin-jobs
// @Produce      json
// @Security     BasicAuth
// @Success      200  {object}  response.Response{data=[]domain.Job}
// @Failure      401  {object}  response.Response
// @Router       /admin/jobs [get]
func (h *JobHandler) List(c *gin.Context) {
	identity, err := middleware.CurrentIdentity(c)
	if err != nil {
		c.Error(err)
		return
	}

	jobs, err := h.jobUC.ListJobs(c.Request.Context(), identity)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Jobs retrieved successfully", jobs)
}

// Create godoc
// @Summary      Create a job
// @Description  Status defaults to draft. company_id is only honoured for the legacy admin.
// @Tags         admin-jobs
// @Accept       json
// @Produce      json
// @Security     BasicAuth
// @Param        job  body      domain.NewJob  true  "Job JSON"
// @Success      201  {object}  response.Response{data=domain.Job}
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /admin/jobs [post]
func (h *JobHandler) Create(c *gin.Context) {
	identity, err := middleware.CurrentIdentity(c)
	if err != nil {
		c.Error(err)
		return
	}

	var req domain.NewJob
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}

	job, err := h.jobUC.CreateJob(c.Request.Context(), identity, req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Job created successfully", job)
}

// GetDetails godoc
// @Summary      Get a job
// @Tags         admin-jobs
// @Produce      json
// @Security     BasicAuth
// @Param        id   path      int  true  "Job ID"
// @Success      200  {object}  response.Response{data=domain.Job}
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /admin/jobs/{id} [get]
func (h *JobHandler) GetDetails(c *gin.Context) {
	identity, err := middleware.CurrentIdentity(c)
	if err != nil {
		c.Error(err)
		return
	}
	id, err := pathID(c, "id", "job")
	if err != nil {
		c.Error(err)
		return
	}

	job, err := h.jobUC.GetJob(c.Request.Context(), identity, id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job retrieved successfully", job)
}

// Update godoc
// @Summary      Update a job
// @Description  Partial update. Changing the title regenerates the slug.
// @Tags         admin-jobs
// @Accept       json
// @Produce      json
// @Security     BasicAuth
// @Param        id   path      int              true  "Job ID"
// @Param        job  body      domain.JobPatch  true  "Fields to change"
// @Success      200  {object}  response.Response{data=domain.Job}
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /admin/jobs/{id} [patch]
func (h *JobHandler) Update(c *gin.Context) {
	identity, err := middleware.CurrentIdentity(c)
	if err != nil {
		c.Error(err)
		return
	}
	id, err := pathID(c, "id", "job")
	if err != nil {
		c.Error(err)
		return
	}

	var req domain.JobPatch
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}

	job, err := h.jobUC.UpdateJob(c.Request.Context(), identity, id, req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job updated successfully", job)
}
