package v1

import (
	"net/http"

	"go-jobboard-backend/internal/delivery/http/middleware"
	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/security"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	companyUC domain.CompanyUsecase
	secLog    *security.SecurityLogger
}

// NewAdminHandler mounts company signup on public and branding settings on protected.
func NewAdminHandler(public, protected *gin.RouterGroup, companyUC domain.CompanyUsecase, secLog *security.SecurityLogger) {
	handler := &AdminHandler{companyUC: companyUC, secLog: secLog}

	public.POST("/admin/register", middleware.RateLimitMiddleware(middleware.RegisterRateLimitConfig()), handler.Register)

	protected.GET("/settings", handler.GetSettings)
	protected.PATCH("/settings", handler.UpdateSettings)
}

// Register godoc
// @Summary      Register a company
// @Description  Creates a company and its first admin in one step. The slug is derived from the name when omitted.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body      domain.Registration  true  "Company and admin"
// @Success      201   {object}  response.Response{data=domain.RegistrationResult}
// @Failure      400   {object}  response.Response
// @Failure      409   {object}  response.Response
// @Failure      429   {object}  response.Response
// @Router       /admin/register [post]
func (h *AdminHandler) Register(c *gin.Context) {
	var req domain.Registration
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}

	result, err := h.companyUC.Register(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	h.secLog.LogAdminRegistered(c.Request.Context(), result.Admin.Username, result.Company.ID, c.ClientIP(), response.RequestID(c))
	response.Success(c, http.StatusCreated, "Company registered", result)
}

// GetSettings godoc
// @Summary      Get company settings
// @Description  Returns the caller's company branding. The legacy admin has no company and gets null.
// @Tags         admin
// @Produce      json
// @Security     BasicAuth
// @Success      200  {object}  response.Response{data=domain.Company}
// @Failure      401  {object}  response.Response
// @Router       /admin/settings [get]
func (h *AdminHandler) GetSettings(c *gin.Context) {
	identity, err := middleware.CurrentIdentity(c)
	if err != nil {
		c.Error(err)
		return
	}

	company, err := h.companyUC.GetSettings(c.Request.Context(), identity)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Company settings", gin.H{"company": company})
}

// UpdateSettings godoc
// @Summary      Update company settings
// @Description  Partially updates name, logo_url and primary_color. An empty string clears logo_url or primary_color.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BasicAuth
// @Param        body  body      domain.CompanySettingsUpdate  true  "Fields to change"
// @Success      200   {object}  response.Response{data=domain.Company}
// @Failure      400   {object}  response.Response
// @Failure      403   {object}  response.Response
// @Router       /admin/settings [patch]
func (h *AdminHandler) UpdateSettings(c *gin.Context) {
	identity, err := middleware.CurrentIdentity(c)
	if err != nil {
		c.Error(err)
		return
	}

	var req domain.CompanySettingsUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}

	company, err := h.companyUC.UpdateSettings(c.Request.Context(), identity, req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Company settings updated", gin.H{"company": company})
}
