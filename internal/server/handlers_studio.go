package server

import (
	"bytes"
	"io"
	"net/http"

	"github.com/jonathan/jobpilot/internal/screens"
	"github.com/jonathan/jobpilot/internal/theme"
	"github.com/jonathan/jobpilot/internal/types"
)

// ---------------------------------------------------------------------
// Advisor Chat, Layouts, Photo and Settings Handlers
// ---------------------------------------------------------------------

type ChatRequest struct {
	Text string `json:"text"`
}

type ApplyLayoutRequest struct {
	CVID string `json:"cvId"`
}

type SettingsRequest struct {
	Theme    *string `json:"theme,omitempty"`
	UserName *string `json:"userName,omitempty"`
}

type SettingsResponse struct {
	Theme    theme.Theme `json:"theme"`
	UserName string      `json:"userName"`
}

func (s *Server) handleChatMessages(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.app.Studio.Messages(r.Context()))
}

// handleSendChat answers with the reply. When the advisor fails the apology
// is still part of the conversation, so it is returned alongside the error.
func (s *Server) handleSendChat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := decodeJSON(r, &req); err != nil {
		s.errorResponse(w, err)
		return
	}

	reply, err := s.app.Studio.Send(r.Context(), req.Text)
	if err != nil {
		if reply.Text != "" {
			s.jsonResponse(w, HTTPStatus(err), map[string]any{"error": errorMessage(err), "reply": reply})
			return
		}
		s.errorResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]types.ChatMessage{"reply": reply})
}

func (s *Server) handleResetChat(w http.ResponseWriter, r *http.Request) {
	if err := s.app.Studio.Reset(r.Context()); err != nil {
		s.errorResponse(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSuggestLayouts(w http.ResponseWriter, r *http.Request) {
	layouts, err := s.app.Layouts.Suggest(r.Context())
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, layouts)
}

func (s *Server) handleListLayouts(w http.ResponseWriter, _ *http.Request) {
	layouts := s.app.Layouts.Suggestions()
	if layouts == nil {
		layouts = []types.CVLayout{}
	}
	s.jsonResponse(w, http.StatusOK, layouts)
}

func (s *Server) handleApplyLayout(w http.ResponseWriter, r *http.Request) {
	var req ApplyLayoutRequest
	if err := decodeJSON(r, &req); err != nil {
		s.errorResponse(w, err)
		return
	}

	out, err := s.app.Layouts.Apply(r.Context(), r.PathValue("id"), req.CVID)
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, out)
}

func (s *Server) handleCurrentLayout(w http.ResponseWriter, _ *http.Request) {
	out, ok := s.app.Layouts.Current()
	if !ok {
		s.jsonResponse(w, http.StatusNotFound, map[string]string{"error": "Nenhum currículo reestruturado ainda."})
		return
	}
	s.jsonResponse(w, http.StatusOK, out)
}

func (s *Server) handleLayoutPDF(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	name, err := s.app.Layouts.ExportPDF(r.Context(), &buf)
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	s.attachment(w, "application/pdf", name, buf.Bytes())
}

func (s *Server) handleLayoutText(w http.ResponseWriter, _ *http.Request) {
	var buf bytes.Buffer
	name, err := s.app.Layouts.ExportText(&buf)
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	s.attachment(w, "text/plain; charset=utf-8", name, buf.Bytes())
}

// handleSaveStyled stores the current restructured CV as a new CV.
func (s *Server) handleSaveStyled(w http.ResponseWriter, r *http.Request) {
	out, ok := s.app.Layouts.Current()
	if !ok {
		s.errorResponse(w, &screens.ValidationError{Field: "layout", Message: "Aplique um modelo a um currículo antes de salvar."})
		return
	}

	saved, err := s.app.CVs.SaveStyled(r.Context(), out.CVID, out.Layout.Name, out.Content)
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, saved)
}

// handleEnhancePhoto retouches the image sent as the "photo" form field and
// answers with the image bytes.
func (s *Server) handleEnhancePhoto(w http.ResponseWriter, r *http.Request) {
	limit := s.photoMaxBytes
	if limit <= 0 {
		limit = maxUploadBytes
	}
	// Leave room for the multipart envelope; the image itself is checked by the controller.
	r.Body = http.MaxBytesReader(w, r.Body, limit+1<<20)

	file, header, err := r.FormFile("photo")
	if err != nil {
		s.errorResponse(w, uploadError("photo", err))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		s.errorResponse(w, uploadError("photo", err))
		return
	}

	img, err := s.app.Photo.Enhance(r.Context(), header.Filename, data)
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	w.Header().Set("Content-Type", img.MIMEType)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(img.Data); err != nil {
		s.errorResponse(w, err)
	}
}

func (s *Server) settings(r *http.Request) SettingsResponse {
	return SettingsResponse{
		Theme:    s.app.Settings.Theme(r.Context()),
		UserName: s.app.Settings.UserName(r.Context()),
	}
}

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.settings(r))
}

func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req SettingsRequest
	if err := decodeJSON(r, &req); err != nil {
		s.errorResponse(w, err)
		return
	}

	if req.Theme != nil {
		if _, err := s.app.Settings.SetTheme(r.Context(), *req.Theme); err != nil {
			s.errorResponse(w, err)
			return
		}
	}
	if req.UserName != nil {
		if err := s.app.Settings.SetUserName(r.Context(), *req.UserName); err != nil {
			s.errorResponse(w, err)
			return
		}
	}
	s.jsonResponse(w, http.StatusOK, s.settings(r))
}
