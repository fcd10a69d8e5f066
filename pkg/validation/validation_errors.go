package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldLabels maps wire field names to user-facing labels
var FieldLabels = map[string]string{
	// Registration / settings
	"company_name":   "Company name",
	"company_slug":   "Company slug",
	"logo_url":       "Logo URL",
	"primary_color":  "Primary color",
	"admin_username": "Username",
	"admin_password": "Password",
	"name":           "Company name",

	// Jobs
	"title":        "Title",
	"description":  "Description",
	"requirements": "Requirements",
	"department":   "Department",
	"location":     "Location",
	"job_type":     "Job type",
	"salary_range": "Salary range",
	"status":       "Status",

	// Applications
	"job_id":       "Job",
	"full_name":    "Full name",
	"email":        "Email",
	"phone":        "Phone",
	"cover_letter": "Cover letter",
}

// FormatValidationErrors converts validator.ValidationErrors to user-friendly messages
func FormatValidationErrors(err error) []string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []string{err.Error()}
	}

	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		messages = append(messages, formatSingleError(e))
	}
	return messages
}

// Message joins FormatValidationErrors into one line.
func Message(err error) string {
	return strings.Join(FormatValidationErrors(err), "; ")
}

func formatSingleError(e validator.FieldError) string {
	label := getFieldLabel(e.Field())
	param := e.Param()

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", label)
	case "min":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s must be at least %s characters", label, param)
		}
		return fmt.Sprintf("%s must be at least %s", label, param)
	case "max":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s must be at most %s characters", label, param)
		}
		return fmt.Sprintf("%s must be at most %s", label, param)
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", label, param)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", label, strings.Join(strings.Fields(param), ", "))
	case "email":
		return fmt.Sprintf("%s must be a valid email address", label)
	case "url":
		return fmt.Sprintf("%s must be a valid URL", label)
	case "valid_name":
		return fmt.Sprintf("%s may only contain letters, spaces and . ' - /", label)
	case "valid_phone":
		return fmt.Sprintf("%s must be a phone number of 7-15 digits", label)
	case "no_emoji":
		return fmt.Sprintf("%s must not contain emoji or symbols", label)
	case "company_slug":
		return fmt.Sprintf("%s may only contain lowercase letters, digits and single dashes", label)
	case "hex_color":
		return fmt.Sprintf("%s must be a color like #1E3A5F", label)
	default:
		return fmt.Sprintf("%s is invalid (%s)", label, e.Tag())
	}
}

func getFieldLabel(field string) string {
	if label, ok := FieldLabels[field]; ok {
		return label
	}
	return field
}
