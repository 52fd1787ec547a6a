package validator

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()

	// Use JSON tag names in error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// Validate validates a struct and returns the first human-readable
// field error, or "" when the struct is valid. The API envelope carries
// a single message, so only the first failure is reported.
func Validate(s interface{}) string {
	err := validate.Struct(s)
	if err == nil {
		return ""
	}

	for _, err := range err.(validator.ValidationErrors) {
		field := err.Field()
		switch err.Tag() {
		case "required":
			return "Field " + field + " is required"
		case "email":
			return "Field " + field + " is not a valid email address"
		case "min":
			return "Field " + field + " must be at least " + err.Param() + " characters"
		case "max":
			return "Field " + field + " must be at most " + err.Param() + " characters"
		case "gt":
			return "Field " + field + " must be greater than " + err.Param()
		default:
			return "Field " + field + " is invalid"
		}
	}
	return ""
}

// ValidateVar validates a single variable
func ValidateVar(field interface{}, tag string) error {
	return validate.Var(field, tag)
}
