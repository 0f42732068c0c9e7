package screens

import (
	"errors"
	"fmt"

	"github.com/jonathan/jobpilot/internal/generation"
	"github.com/jonathan/jobpilot/internal/ingestion"
	"github.com/jonathan/jobpilot/internal/types"
)

// ErrNotFound is wrapped by lookups of missing records.
var ErrNotFound = errors.New("not found")

// ValidationError reports a missing or invalid input. The action never starts.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

func notFound(kind, id string) error {
	return fmt.Errorf("%s %q: %w", kind, id, ErrNotFound)
}

// UserMessage returns the text to show for err.
func UserMessage(err error) string {
	var (
		validationErr *ValidationError
		generationErr *generation.Error
		parseErr      *ingestion.FileParseError
		entityErr     *types.InvalidEntityError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &validationErr):
		return validationErr.Message
	case errors.As(err, &generationErr):
		return generationErr.Message
	case errors.As(err, &parseErr):
		return parseErr.Message
	case errors.As(err, &entityErr):
		return "Dados inválidos: " + entityErr.Error()
	case errors.Is(err, ErrBusy):
		return "Aguarde a conclusão da ação em andamento."
	case errors.Is(err, ErrNotFound):
		return "Item não encontrado."
	default:
		return "Ocorreu um erro desconhecido."
	}
}
