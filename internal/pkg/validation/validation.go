package validation

import (
	"errors"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Shared validator instance; validator caches struct metadata so one is enough.
var validate = validator.New(validator.WithRequiredStructEnabled())

// isValidEmail matches the client-side rule: /^[^\s@]+@[^\s@]+\.[^\s@]+$/
var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func IsValidEmail(email string) bool {
	return emailRe.MatchString(email)
}

// NormalizeEmail trims and lower-cases an address for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Struct validates v using its `validate` tags.
func Struct(v interface{}) error {
	return validate.Struct(v)
}

// HasTag reports whether err is a validation failure on a rule named tag
// (e.g. "required"), on any field.
func HasTag(err error, tag string) bool {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return false
	}
	for _, fe := range verrs {
		if fe.Tag() == tag {
			return true
		}
	}
	return false
}
