package v1

import (
	"net/http"
	"time"

	"go-jobboard-backend/config"
	"go-jobboard-backend/internal/delivery/http/middleware"
	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/security"
	"go-jobboard-backend/pkg/storage"
	"go-jobboard-backend/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	AuthUC         domain.AuthUsecase
	CompanyUC      domain.CompanyUsecase
	JobUC          domain.JobUsecase
	ApplicationUC  domain.ApplicationUsecase
	HealthUC       domain.HealthUsecase
	LoginGuard     middleware.LoginGuard
	UploadGate     UploadGate
	ResumeStore    storage.ResumeStore
	SecurityLogger *security.SecurityLogger
	Config         *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		validation.RegisterValidators(v)
	}
	if deps.SecurityLogger == nil {
		deps.SecurityLogger = security.DefaultLogger()
	}

	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config.CORSOrigin)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimitMiddleware(middleware.DefaultRateLimitConfig(
		deps.Config.RateLimitGlobalThreshold,
		time.Duration(deps.Config.RateLimitWindowSeconds)*time.Second,
	)))

	api := r.Group("/api")

	api.GET("/health", healthHandler(deps.HealthUC))
	api.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware(deps.AuthUC, deps.LoginGuard))
	{
		NewAdminHandler(api, admin, deps.CompanyUC, deps.SecurityLogger)
		NewJobHandler(api, admin, deps.JobUC)
		NewApplicationHandler(api, admin, deps.ApplicationUC, ApplicationHandlerConfig{
			Store:          deps.ResumeStore,
			Limiter:        deps.UploadGate,
			UploadMaxBytes: deps.Config.UploadMaxBytes,
			SecurityLogger: deps.SecurityLogger,
		})
	}

	return r
}

// healthHandler godoc
// @Summary      Health check
// @Tags         health
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      503  {object}  response.Response
// @Router       /health [get]
func healthHandler(healthUC domain.HealthUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		if healthUC == nil {
			response.Success(c, http.StatusOK, "System operational", gin.H{"status": "ok"})
			return
		}
		status, healthy := healthUC.Check(c.Request.Context())
		if !healthy {
			response.Error(c, http.StatusServiceUnavailable, "System degraded", status)
			return
		}
		response.Success(c, http.StatusOK, "System operational", status)
	}
}
