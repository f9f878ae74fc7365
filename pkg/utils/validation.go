package utils

import (
	"errors"
	"fmt"
	"mime"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Field names in messages follow the JSON names clients send
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	_ = v.RegisterValidation("videomime", func(fl validator.FieldLevel) bool {
		return IsVideoMIMEType(fl.Field().String())
	})
	_ = v.RegisterValidation("objectname", func(fl validator.FieldLevel) bool {
		return IsObjectName(fl.Field().String())
	})
	return v
}

// ValidateStruct validates a struct based on its validation tags
func ValidateStruct(s interface{}) error {
	if err := validate.Struct(s); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// IsVideoMIMEType reports whether s parses as a video/* media type
func IsVideoMIMEType(s string) bool {
	mediaType, _, err := mime.ParseMediaType(s)
	if err != nil {
		return false
	}
	major, minor, ok := strings.Cut(mediaType, "/")
	return ok && major == "video" && minor != ""
}

// IsObjectName reports whether s is usable as the last segment of an object key
func IsObjectName(s string) bool {
	if s == "" || s == "." || s == ".." {
		return false
	}
	return !strings.ContainsAny(s, "/\\#")
}

// formatValidationError formats validation errors into readable messages
func formatValidationError(err error) error {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		var msgs []string
		for _, e := range validationErrors {
			msgs = append(msgs, formatFieldError(e))
		}
		return errors.New(strings.Join(msgs, "; "))
	}
	return err
}

// formatFieldError formats a single field validation error
func formatFieldError(e validator.FieldError) string {
	field := e.Field()

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, e.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, e.Param())
	case "email":
		return fmt.Sprintf("%s must be a valid email", field)
	case "e164":
		return fmt.Sprintf("%s must be an E.164 phone number", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, e.Param())
	case "videomime":
		return fmt.Sprintf("%s must be a video MIME type", field)
	case "objectname":
		return fmt.Sprintf("%s must be a plain file name", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
