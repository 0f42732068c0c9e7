package server

import (
	"net/http"

	"github.com/jonathan/jobpilot/internal/export"
	"github.com/jonathan/jobpilot/internal/screens"
	"go.uber.org/zap"
)

// ---------------------------------------------------------------------
// AI Tools Handlers
// ---------------------------------------------------------------------

type ToolRequest struct {
	CVID           string `json:"cvId"`
	JobDescription string `json:"jobDescription"`
}

type JobDescriptionRequest struct {
	URL string `json:"url"`
}

func (s *Server) handleRunTool(w http.ResponseWriter, r *http.Request) {
	var req ToolRequest
	if err := decodeJSON(r, &req); err != nil {
		s.errorResponse(w, err)
		return
	}

	rec, err := s.app.Tools.Run(r.Context(), screens.Tool(r.PathValue("tool")), req.CVID, req.JobDescription)
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"record":   rec,
		"fileName": export.GenerationFileName(rec.Type),
	})
}

// handleRunToolStream runs a tool and streams its state transitions via SSE.
func (s *Server) handleRunToolStream(w http.ResponseWriter, r *http.Request) {
	var req ToolRequest
	if err := decodeJSON(r, &req); err != nil {
		s.errorResponse(w, err)
		return
	}

	stream, err := newToolStream(w)
	if err != nil {
		s.jsonResponse(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	if err := stream.status(screens.Status{State: screens.StateSubmitting}); err != nil {
		s.logger.Warn("error writing SSE event", zap.Error(err))
		return
	}

	rec, runErr := s.app.Tools.Run(r.Context(), screens.Tool(r.PathValue("tool")), req.CVID, req.JobDescription)
	if runErr != nil {
		err = stream.fail(HTTPStatus(runErr), errorMessage(runErr))
	} else {
		err = stream.result(rec)
	}
	if err != nil {
		s.logger.Warn("error writing SSE event", zap.Error(err))
	}
}

func (s *Server) handleToolResult(w http.ResponseWriter, _ *http.Request) {
	rec, ok := s.app.Tools.Result()
	if !ok {
		s.jsonResponse(w, http.StatusNotFound, map[string]string{"error": "Nenhum resultado gerado ainda."})
		return
	}
	s.jsonResponse(w, http.StatusOK, rec)
}

func (s *Server) handleJobDescription(w http.ResponseWriter, r *http.Request) {
	var req JobDescriptionRequest
	if err := decodeJSON(r, &req); err != nil {
		s.errorResponse(w, err)
		return
	}

	text, err := s.app.Tools.JobDescriptionFromURL(r.Context(), req.URL)
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"jobDescription": text})
}
