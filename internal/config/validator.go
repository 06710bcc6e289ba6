package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/JuliusKoenig/mikrotik-addresslist/internal/utils"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	// Report TOML field names instead of Go struct field names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("toml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// ValidationError represents a single validation error with context.
type ValidationError struct {
	ItemName  string // For scripts: the script name
	FieldPath string // Dot-notation field path (e.g. "general.file_encoding")
	Message   string // Human-readable error message
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

// Error implements the error interface.
func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "no validation errors"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("validation failed with %d error(s):\n", len(ve)))
	for i, err := range ve {
		if err.ItemName != "" {
			sb.WriteString(fmt.Sprintf("  %d. [%s] %s: %s\n", i+1, err.ItemName, err.FieldPath, err.Message))
		} else {
			sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.FieldPath, err.Message))
		}
	}
	return sb.String()
}

// Validate validates the entire configuration and returns all validation errors.
func (c *Config) Validate() error {
	var validationErrors ValidationErrors

	if c.General == nil {
		validationErrors = append(validationErrors, ValidationError{
			FieldPath: "general",
			Message:   "configuration must contain 'general' section",
		})
		return validationErrors
	}

	if err := validate.Struct(c.General); err != nil {
		validationErrors = append(validationErrors, convertValidatorErrors(err, "general", "")...)
	}

	for _, name := range c.ScriptNames() {
		validationErrors = append(validationErrors, c.validateScript(name, c.Scripts[name])...)
	}

	if len(validationErrors) > 0 {
		return validationErrors
	}

	return nil
}

func (c *Config) validateScript(name string, script *ScriptConfig) ValidationErrors {
	var validationErrors ValidationErrors

	if err := validate.Struct(script); err != nil {
		validationErrors = append(validationErrors, convertValidatorErrors(err, "script."+name, name)...)
	}

	// Exactly one source must be configured.
	isURL := script.URL != ""
	isFile := script.File != ""

	if !isURL && !isFile {
		validationErrors = append(validationErrors, ValidationError{
			ItemName:  name,
			FieldPath: "source",
			Message:   "must specify one of: url, file",
		})
	}

	if isURL && isFile {
		validationErrors = append(validationErrors, ValidationError{
			ItemName:  name,
			FieldPath: "source",
			Message:   "can only specify one of: url, file",
		})
	}

	if isFile {
		script.File = utils.GetAbsolutePath(script.File, c.GetConfigDir())
		if _, err := os.Stat(script.File); errors.Is(err, os.ErrNotExist) {
			validationErrors = append(validationErrors, ValidationError{
				ItemName:  name,
				FieldPath: "file",
				Message:   fmt.Sprintf("file does not exist: %s", script.File),
			})
		}
	}

	return validationErrors
}

// getValidationMessage returns a human-readable message for a validation error.
func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "field is required"
	case "gte":
		return fmt.Sprintf("must be >= %s", e.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", e.Param())
	case "url":
		return "must be a valid URL"
	default:
		return fmt.Sprintf("validation failed: %s", e.Tag())
	}
}

// convertValidatorErrors converts go-playground/validator errors to our ValidationError format.
func convertValidatorErrors(err error, fieldPrefix string, itemName string) ValidationErrors {
	var validationErrors ValidationErrors

	var validatorErrs validator.ValidationErrors
	if errors.As(err, &validatorErrs) {
		for _, e := range validatorErrs {
			fieldPath := fieldPrefix
			if e.Field() != "" {
				if fieldPrefix != "" {
					fieldPath = fieldPrefix + "." + e.Field()
				} else {
					fieldPath = e.Field()
				}
			}

			validationErrors = append(validationErrors, ValidationError{
				ItemName:  itemName,
				FieldPath: fieldPath,
				Message:   getValidationMessage(e),
			})
		}
	}

	return validationErrors
}
