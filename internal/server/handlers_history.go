package server

import (
	"bytes"
	"net/http"

	"github.com/jonathan/jobpilot/internal/types"
)

// ---------------------------------------------------------------------
// History Handlers
// ---------------------------------------------------------------------

func (s *Server) handleListHistory(w http.ResponseWriter, r *http.Request) {
	items := s.app.History.List(r.Context())
	if kind := r.URL.Query().Get("kind"); kind != "" {
		filtered := make([]types.HistoryItem, 0, len(items))
		for _, item := range items {
			if string(item.Kind) == kind {
				filtered = append(filtered, item)
			}
		}
		items = filtered
	}
	s.jsonResponse(w, http.StatusOK, items)
}

func (s *Server) handleGetHistoryItem(w http.ResponseWriter, r *http.Request) {
	item, err := s.app.History.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, item)
}

func (s *Server) handleHistoryText(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := s.app.History.ExportText(r.Context(), &buf); err != nil {
		s.errorResponse(w, err)
		return
	}
	s.attachment(w, "text/plain; charset=utf-8", "historico.txt", buf.Bytes())
}

func (s *Server) handleHistoryItemText(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := s.app.History.ExportItemText(r.Context(), r.PathValue("id"), &buf); err != nil {
		s.errorResponse(w, err)
		return
	}
	s.attachment(w, "text/plain; charset=utf-8", "historico_"+r.PathValue("id")+".txt", buf.Bytes())
}
