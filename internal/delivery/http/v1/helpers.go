package v1

import (
	"errors"
	"strconv"

	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// bindError converts a gin binding failure into a client error. Field failures carry
// readable messages; anything else is a malformed body.
func bindError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return apperror.Validation(validation.Message(verrs), verrs)
	}
	return apperror.Validation("Invalid request body", err)
}

// pathID parses a positive integer route parameter.
func pathID(c *gin.Context, name, label string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.BadRequest("Invalid " + label + " ID")
	}
	return id, nil
}
