package server

import (
	"bytes"
	"net/http"

	"github.com/jonathan/jobpilot/internal/export"
	"github.com/jonathan/jobpilot/internal/screens"
	"github.com/jonathan/jobpilot/internal/types"
)

// ---------------------------------------------------------------------
// Application Tracker Handlers
// ---------------------------------------------------------------------

// DashboardResponse is the dashboard summary.
type DashboardResponse struct {
	Today             string              `json:"today"`
	Total             int                 `json:"total"`
	StatusCounts      []types.StatusCount `json:"statusCounts"`
	Reminders         []types.Reminder    `json:"reminders"`
	NotificationCount int                 `json:"notificationCount"`
}

func (s *Server) handleListApplications(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.app.Dashboard.Applications(r.Context()))
}

func (s *Server) handleCreateApplication(w http.ResponseWriter, r *http.Request) {
	var req screens.ApplicationInput
	if err := decodeJSON(r, &req); err != nil {
		s.errorResponse(w, err)
		return
	}

	app, err := s.app.Dashboard.Add(r.Context(), req)
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, app)
}

func (s *Server) handleUpdateApplication(w http.ResponseWriter, r *http.Request) {
	var req screens.ApplicationPatch
	if err := decodeJSON(r, &req); err != nil {
		s.errorResponse(w, err)
		return
	}

	app, err := s.app.Dashboard.Update(r.Context(), r.PathValue("id"), req)
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, app)
}

func (s *Server) handleDeleteApplication(w http.ResponseWriter, r *http.Request) {
	if err := s.app.Dashboard.Delete(r.Context(), r.PathValue("id")); err != nil {
		s.errorResponse(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDismissReminder(w http.ResponseWriter, r *http.Request) {
	app, err := s.app.Dashboard.DismissReminder(r.Context(), r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, app)
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	today := s.app.Dashboard.Today()
	apps := s.app.Dashboard.Applications(ctx)

	reminders := screens.BuildReminders(apps, today)
	due := 0
	for _, rem := range reminders {
		if rem.Overdue || rem.Today {
			due++
		}
	}
	if reminders == nil {
		reminders = []types.Reminder{}
	}

	s.jsonResponse(w, http.StatusOK, DashboardResponse{
		Today:             today,
		Total:             len(apps),
		StatusCounts:      screens.CountByStatus(apps),
		Reminders:         reminders,
		NotificationCount: due,
	})
}

func (s *Server) handleApplicationsCSV(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := s.app.Dashboard.ExportCSV(r.Context(), &buf); err != nil {
		s.errorResponse(w, err)
		return
	}
	s.attachment(w, "text/csv; charset=utf-8", export.ApplicationsFileName, buf.Bytes())
}
