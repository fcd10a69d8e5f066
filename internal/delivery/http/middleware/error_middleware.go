package middleware

import (
	"errors"
	"net/http"

	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/logger"
	"go-jobboard-backend/pkg/security"
	"go-jobboard-backend/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		var appErr *apperror.AppError
		if !errors.As(err, &appErr) {
			appErr = apperror.Internal(err)
		}

		// SECURITY: causes are logged server-side only, never sent to the client.
		if appErr.Code >= http.StatusInternalServerError {
			logger.Log.Error("request failed",
				"kind", appErr.Kind,
				"path", c.FullPath(),
				"request_id", response.RequestID(c),
				"error", appErr.Err,
			)
		}

		if appErr.Kind == apperror.KindForbidden {
			security.DefaultLogger().LogUnauthorizedAccess(c.Request.Context(), c.ClientIP(), response.RequestID(c), c.FullPath())
		}

		if appErr.Code == http.StatusUnauthorized {
			c.Header("WWW-Authenticate", `Basic realm="admin", charset="UTF-8"`)
		}

		response.Error(c, appErr.Code, appErr.Message, response.ErrorBody{
			Code:    string(appErr.Kind),
			Details: details(appErr),
		})
	}
}

func details(appErr *apperror.AppError) []string {
	var verrs validator.ValidationErrors
	// Single-value checks carry no field name and are already described by the message
	if appErr.Kind == apperror.KindValidation && errors.As(appErr.Err, &verrs) && len(verrs) > 0 && verrs[0].Field() != "" {
		return validation.FormatValidationErrors(verrs)
	}
	return nil
}
