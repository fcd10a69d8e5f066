package validation_test

import (
	"testing"

	"go-jobboard-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string `json:"full_name" validate:"required,valid_name"`
	Phone string `json:"phone" validate:"omitempty,valid_phone"`
	Slug  string `json:"company_slug" validate:"omitempty,company_slug"`
	Color string `json:"primary_color" validate:"omitempty,hex_color"`
	Title string `json:"title" validate:"no_emoji"`
	Email string `form:"email" validate:"required,email"`
}

func newValidator() *validator.Validate {
	v := validator.New()
	validation.RegisterValidators(v)
	return v
}

func TestValidators(t *testing.T) {
	v := newValidator()

	ok := sample{
		Name:  "Jane O'Neil-Smith",
		Phone: "+1 (555) 123-4567",
		Slug:  "acme-corp",
		Color: "#1e3a5f",
		Title: "Backend Engineer",
		Email: "jane@example.com",
	}
	require.NoError(t, v.Struct(ok))

	cases := map[string]func(s *sample){
		"phone":         func(s *sample) { s.Phone = "12-34" },
		"company_slug":  func(s *sample) { s.Slug = "Acme Corp" },
		"primary_color": func(s *sample) { s.Color = "red" },
		"title":         func(s *sample) { s.Title = "Rockstar 🚀" },
		"full_name":     func(s *sample) { s.Name = "R2D2" },
		"email":         func(s *sample) { s.Email = "not-an-email" },
	}

	for field, mutate := range cases {
		t.Run(field, func(t *testing.T) {
			s := ok
			mutate(&s)
			err := v.Struct(s)
			require.Error(t, err)

			var verrs validator.ValidationErrors
			require.ErrorAs(t, err, &verrs)
			require.Len(t, verrs, 1)
			assert.Equal(t, field, verrs[0].Field())
		})
	}
}

func TestFormatValidationErrors(t *testing.T) {
	v := newValidator()
	err := v.Struct(sample{Email: "x"})
	require.Error(t, err)

	msgs := validation.FormatValidationErrors(err)
	assert.Contains(t, msgs, "Full name is required")
	assert.Contains(t, msgs, "Email must be a valid email address")
	assert.Contains(t, validation.Message(err), "; ")
}
