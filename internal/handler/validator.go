package handler

import (
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"

	"github.com/sumire/pixelboard/internal/domain"
)

var usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// AppValidator wraps go-playground/validator for echo. It registers a
// `username` rule for the display-name charset.
type AppValidator struct {
	validator *validator.Validate
}

// NewAppValidator creates a new AppValidator.
func NewAppValidator() *AppValidator {
	v := validator.New()
	_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernameRe.MatchString(fl.Field().String())
	})
	return &AppValidator{validator: v}
}

// Validate validates a struct using go-playground/validator tags.
func (v *AppValidator) Validate(i any) error {
	if err := v.validator.Struct(i); err != nil {
		validationErrors, ok := err.(validator.ValidationErrors)
		if ok && len(validationErrors) > 0 {
			fe := validationErrors[0]
			return &domain.ValidationError{
				Field:   fe.Field(),
				Message: fmt.Sprintf("failed on '%s' validation", fe.Tag()),
			}
		}
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return nil
}

// Username checks a display name against the allowed charset. The caller is
// responsible for truncating first.
func (v *AppValidator) Username(name string) error {
	if err := v.validator.Var(name, "username"); err != nil {
		return &domain.ValidationError{Field: "name", Message: "contains invalid characters"}
	}
	return nil
}
