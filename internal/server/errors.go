package server

import (
	"errors"
	"net/http"

	"github.com/jonathan/jobpilot/internal/fetch"
	"github.com/jonathan/jobpilot/internal/generation"
	"github.com/jonathan/jobpilot/internal/ingestion"
	"github.com/jonathan/jobpilot/internal/screens"
	"github.com/jonathan/jobpilot/internal/types"
	"go.uber.org/zap"
)

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validationErr *screens.ValidationError
		entityErr     *types.InvalidEntityError
		generationErr *generation.Error
		parseErr      *ingestion.FileParseError
		fetchErr      *fetch.Error
		maxBytesErr   *http.MaxBytesError
	)
	switch {
	case errors.As(err, &validationErr), errors.As(err, &entityErr):
		return http.StatusBadRequest
	case errors.Is(err, screens.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, screens.ErrBusy):
		return http.StatusConflict
	case errors.As(err, &maxBytesErr):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &parseErr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &generationErr), errors.As(err, &fetchErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// errorResponse writes err with its status and user-facing message.
func (s *Server) errorResponse(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Warn("request failed", zap.Int("status", status), zap.Error(err))
	}
	s.jsonResponse(w, status, map[string]string{"error": errorMessage(err)})
}

func errorMessage(err error) string {
	var (
		fetchErr    *fetch.Error
		maxBytesErr *http.MaxBytesError
	)
	switch {
	case errors.As(err, &fetchErr):
		return "Não foi possível obter a vaga: " + fetchErr.Message
	case errors.As(err, &maxBytesErr):
		return "Arquivo muito grande."
	default:
		return screens.UserMessage(err)
	}
}
