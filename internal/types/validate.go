package types

import (
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Validator returns the shared validator with the domain-specific rules registered.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		_ = validate.RegisterValidation("application_status", func(fl validator.FieldLevel) bool {
			return ApplicationStatus(fl.Field().String()).Valid()
		})
		_ = validate.RegisterValidation("chat_role", func(fl validator.FieldLevel) bool {
			return Role(fl.Field().String()).Valid()
		})
		_ = validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
	})
	return validate
}

// FieldError is a single failed rule on an entity field.
type FieldError struct {
	Field string
	Rule  string
}

// InvalidEntityError lists every rule an entity failed.
type InvalidEntityError struct {
	Entity string
	Fields []FieldError
}

func (e *InvalidEntityError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s (%s)", f.Field, f.Rule))
	}
	return fmt.Sprintf("invalid %s: %s", e.Entity, strings.Join(parts, ", "))
}

func validateEntity(entity string, v any) error {
	err := Validator().Struct(v)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return fmt.Errorf("validate %s: %w", entity, err)
	}
	out := &InvalidEntityError{Entity: entity}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{Field: fe.Field(), Rule: fe.Tag()})
	}
	return out
}
