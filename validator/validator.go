package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"oruma/models"

	"github.com/go-playground/validator/v10"
)

// Validator wraps the go-playground validator
type Validator struct {
	validate *validator.Validate
}

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Tag     string `json:"tag"`
	Value   string `json:"value,omitempty"`
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface
func (v ValidationErrors) Error() string {
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Message)
	}
	return strings.Join(messages, "; ")
}

const maxNativeIDLength = 255

// New creates a new validator instance
func New() *Validator {
	v := validator.New()

	// Report fields by their JSON names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	v.RegisterValidation("contactcategory", validateContactCategory)
	v.RegisterValidation("notecategory", validateNoteCategory)
	v.RegisterValidation("nativeid", validateNativeID)

	return &Validator{validate: v}
}

// Validate validates a struct and returns validation errors
func (v *Validator) Validate(i interface{}) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	var validationErrs ValidationErrors
	for _, fe := range fieldErrs {
		validationErrs = append(validationErrs, ValidationError{
			Field:   fe.Field(),
			Message: msgForTag(fe),
			Tag:     fe.Tag(),
			Value:   fmt.Sprintf("%v", fe.Value()),
		})
	}

	return validationErrs
}

// msgForTag returns a human-readable error message for a validation tag
func msgForTag(fe validator.FieldError) string {
	field := fe.Field()

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "contactcategory":
		return fmt.Sprintf("%s must be one of: %s", field, joinCategories(models.ContactCategories))
	case "notecategory":
		return fmt.Sprintf("%s must be one of: %s", field, joinCategories(models.NoteCategories))
	case "nativeid":
		return fmt.Sprintf("%s must be a non-blank identifier of at most %d characters", field, maxNativeIDLength)
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}

func joinCategories[T ~string](categories []T) string {
	names := make([]string, len(categories))
	for i, c := range categories {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}

// Custom validators

func validateContactCategory(fl validator.FieldLevel) bool {
	return models.ContactCategory(fl.Field().String()).Valid()
}

func validateNoteCategory(fl validator.FieldLevel) bool {
	return models.NoteCategory(fl.Field().String()).Valid()
}

// validateNativeID rejects blank ids and ids padded with whitespace
func validateNativeID(fl validator.FieldLevel) bool {
	id := fl.Field().String()
	if id == "" || len(id) > maxNativeIDLength {
		return false
	}
	return !unicode.IsSpace(rune(id[0])) && !unicode.IsSpace(rune(id[len(id)-1]))
}
