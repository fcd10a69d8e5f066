package validation

import (
	"reflect"
	"regexp"
	"strings"
	"unicode"

	"go-jobboard-backend/internal/domain"

	"github.com/go-playground/validator/v10"
)

// Regex patterns
var (
	// Letters, spaces and the punctuation found in real names: . ' - /
	nameRegex = regexp.MustCompile(`^[\p{L}\p{M} .'/-]+$`)

	// E164-like phone: optional +, digits 7-15 length, common separators stripped first
	phoneRegex = regexp.MustCompile(`^\+?[0-9]{7,15}$`)

	hexColorRegex = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)
)

// RegisterValidators registers custom validators to the validator instance and makes
// error field names follow the json/form tags clients actually send.
func RegisterValidators(v *validator.Validate) {
	v.RegisterTagNameFunc(wireFieldName)
	_ = v.RegisterValidation("valid_name", ValidName)
	_ = v.RegisterValidation("valid_phone", ValidPhone)
	_ = v.RegisterValidation("no_emoji", NoEmoji)
	_ = v.RegisterValidation("company_slug", CompanySlug)
	_ = v.RegisterValidation("hex_color", HexColor)
}

func wireFieldName(fld reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
		if name == "-" {
			continue
		}
		if name != "" {
			return name
		}
	}
	return fld.Name
}

// ValidName validates that a string contains only valid name characters
func ValidName(fl validator.FieldLevel) bool {
	val := strings.TrimSpace(fl.Field().String())
	if val == "" {
		return true // Optional, use required if needed
	}
	return nameRegex.MatchString(val)
}

// ValidPhone accepts 7-15 digits with an optional leading +, ignoring spaces, dashes,
// dots and parentheses.
func ValidPhone(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true
	}
	stripped := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '.', '(', ')':
			return -1
		}
		return r
	}, val)
	return phoneRegex.MatchString(stripped)
}

// NoEmoji validates that a string does not contain emoji characters
func NoEmoji(fl validator.FieldLevel) bool {
	for _, r := range fl.Field().String() {
		if r > 0x1F000 {
			return false
		}
		if unicode.In(r, unicode.So, unicode.Sk) {
			return false
		}
	}
	return true
}

// CompanySlug validates a public company route segment.
func CompanySlug(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true
	}
	return domain.ValidCompanySlug(val)
}

// HexColor validates a #RRGGBB brand color.
func HexColor(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true
	}
	return hexColorRegex.MatchString(val)
}

// New returns a validator that reads the same `binding` tags gin uses, with the custom
// validators registered. Usecases validate with it so rules hold outside HTTP too.
func New() *validator.Validate {
	v := validator.New()
	v.SetTagName("binding")
	RegisterValidators(v)
	return v
}
