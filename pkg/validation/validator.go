package validation

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/dd0wney/communitybench/pkg/sampling"
)

// validate is a singleton validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()
}

// RunRequest carries the user-supplied evaluation configuration that must be
// checked before any trial executes. Invalid explicit configuration is fatal;
// the run never silently substitutes defaults for it.
type RunRequest struct {
	SeedCount int    `json:"seedCount" validate:"required,min=1"`
	Strategy  string `json:"strategy" validate:"required,oneof=random maxdeg"`
	Workers   int    `json:"workers" validate:"min=0"`
	MaxCycles int    `json:"maxCycles" validate:"min=0"`
}

// ValidateRunRequest validates an evaluation run configuration.
// Failures wrap sampling.ErrInvalidConfiguration so callers can classify
// them with errors.Is.
func ValidateRunRequest(req *RunRequest) error {
	if req == nil {
		return fmt.Errorf("%w: run request cannot be nil", sampling.ErrInvalidConfiguration)
	}

	if err := validate.Struct(req); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// formatValidationError converts validator errors into readable messages
// carrying the configuration sentinel.
func formatValidationError(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("%w: %v", sampling.ErrInvalidConfiguration, err)
	}

	for _, fieldErr := range validationErrors {
		switch fieldErr.Tag() {
		case "required":
			return fmt.Errorf("%w: %s is required", sampling.ErrInvalidConfiguration, fieldErr.Field())
		case "min":
			return fmt.Errorf("%w: %s must be at least %s, got %v",
				sampling.ErrInvalidConfiguration, fieldErr.Field(), fieldErr.Param(), fieldErr.Value())
		case "oneof":
			return fmt.Errorf("%w: %s must be one of [%s], got %q",
				sampling.ErrInvalidConfiguration, fieldErr.Field(), fieldErr.Param(), fieldErr.Value())
		default:
			return fmt.Errorf("%w: %s failed %s validation",
				sampling.ErrInvalidConfiguration, fieldErr.Field(), fieldErr.Tag())
		}
	}
	return fmt.Errorf("%w: %v", sampling.ErrInvalidConfiguration, err)
}
