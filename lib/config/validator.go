package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError represents a single validation error with context
type ValidationError struct {
	ItemName  string // For sources: the name of the item (e.g., "stevenblack")
	FieldPath string // Dot-notation field path (e.g., "general.output_path")
	Message   string // Human-readable error message
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface
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

var validate *validator.Validate

func init() {
	validate = validator.New()

	// Report field names from the "toml" tag so errors match the config file
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("toml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// getValidationMessage returns a human-readable message for a validation error
func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "field is required"
	case "gte":
		return fmt.Sprintf("must be >= %s", e.Param())
	case "lte":
		return fmt.Sprintf("must be <= %s", e.Param())
	case "url":
		return "must be a valid URL"
	case "hostname_port":
		return "must be in format 'host:port'"
	case "contains":
		return fmt.Sprintf("must contain the %q placeholder", e.Param())
	default:
		return fmt.Sprintf("validation failed: %s", e.Tag())
	}
}

func convertValidatorErrors(err error, pathPrefix, itemName string) ValidationErrors {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return ValidationErrors{{ItemName: itemName, FieldPath: pathPrefix, Message: err.Error()}}
	}

	var out ValidationErrors
	for _, e := range verrs {
		path := e.Field()
		if pathPrefix != "" {
			path = pathPrefix + "." + path
		}
		out = append(out, ValidationError{
			ItemName:  itemName,
			FieldPath: path,
			Message:   getValidationMessage(e),
		})
	}
	return out
}

// ValidateConfig validates the entire configuration and returns all
// validation errors
func (c *Config) ValidateConfig() error {
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

	// Sources are optional (the sources file or -source flags may provide
	// them), but each configured one must be a usable URL.
	seenURLs := make(map[string]bool)
	for i, src := range c.Sources {
		itemName := src.Name
		if itemName == "" {
			itemName = fmt.Sprintf("source[%d]", i)
		}

		if err := validate.Struct(src); err != nil {
			validationErrors = append(validationErrors, convertValidatorErrors(err, fmt.Sprintf("source.%d", i), itemName)...)
		}

		if seenURLs[src.URL] {
			validationErrors = append(validationErrors, ValidationError{
				ItemName:  itemName,
				FieldPath: "url",
				Message:   fmt.Sprintf("duplicate source url: %s", src.URL),
			})
		}
		seenURLs[src.URL] = true
	}

	if len(validationErrors) > 0 {
		return validationErrors
	}

	return nil
}
