package server

import (
	"errors"
	"io"
	"net/http"

	"github.com/jonathan/jobpilot/internal/screens"
)

// maxUploadBytes caps CV document uploads.
const maxUploadBytes = 10 << 20

// ---------------------------------------------------------------------
// CV Handlers
// ---------------------------------------------------------------------

func (s *Server) handleListCVs(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.app.CVs.List(r.Context()))
}

func (s *Server) handleCreateCV(w http.ResponseWriter, r *http.Request) {
	var req screens.CVInput
	if err := decodeJSON(r, &req); err != nil {
		s.errorResponse(w, err)
		return
	}

	saved, err := s.app.CVs.Add(r.Context(), req)
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, saved)
}

func (s *Server) handleGetCV(w http.ResponseWriter, r *http.Request) {
	cv, err := s.app.CVs.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, cv)
}

func (s *Server) handleDeleteCV(w http.ResponseWriter, r *http.Request) {
	if err := s.app.CVs.Delete(r.Context(), r.PathValue("id")); err != nil {
		s.errorResponse(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAnalyzeCV(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	analysis, err := s.app.CVs.Analyze(r.Context(), id)
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"cvId": id, "analysis": analysis})
}

func (s *Server) handleGetAnalysis(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	analysis, ok := s.app.CVs.Analysis(id)
	if !ok {
		s.jsonResponse(w, http.StatusNotFound, map[string]string{"error": "Nenhuma análise disponível para este currículo."})
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"cvId": id, "analysis": analysis})
}

// handleImportCV extracts text from an uploaded file sent as the "file" form field.
func (s *Server) handleImportCV(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		s.errorResponse(w, uploadError("file", err))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		s.errorResponse(w, uploadError("file", err))
		return
	}

	imported, err := s.app.CVs.Import(header.Filename, data)
	if err != nil {
		status := HTTPStatus(err)
		s.jsonResponse(w, status, map[string]any{"error": screens.UserMessage(err), "cv": imported})
		return
	}
	s.jsonResponse(w, http.StatusOK, imported)
}

// uploadError keeps size violations recognisable and reports anything else as
// a missing form file.
func uploadError(field string, err error) error {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		return maxBytesErr
	}
	return &screens.ValidationError{Field: field, Message: "Envie um arquivo no campo \"" + field + "\"."}
}
