package server

import (
	"bytes"
	"net/http"

	"github.com/jonathan/jobpilot/internal/generation"
	"github.com/jonathan/jobpilot/internal/screens"
	"github.com/jonathan/jobpilot/internal/types"
)

// ---------------------------------------------------------------------
// Lead Finder Handlers
// ---------------------------------------------------------------------

type LeadSearchRequest struct {
	JobTitle string `json:"jobTitle"`
	Location string `json:"location"`
	JobType  string `json:"jobType"`
	Source   string `json:"source"`
	Skills   string `json:"skills"`
}

// LeadView is a lead with its outreach action resolved.
type LeadView struct {
	types.Lead
	ContactKind types.ContactKind `json:"contactKind"`
	Link        string            `json:"link,omitempty"`
}

type EmailDraftRequest struct {
	Lead       types.Lead `json:"lead"`
	TemplateID string     `json:"templateId"`
	JobTitle   string     `json:"jobTitle"`
}

type TemplateRequest struct {
	Name string `json:"name"`
	Body string `json:"body"`
}

func (s *Server) leadViews(leads []types.Lead) []LeadView {
	policy := s.app.Leads.Policy()
	views := make([]LeadView, 0, len(leads))
	for _, l := range leads {
		v := LeadView{Lead: l, ContactKind: l.ContactKind(policy)}
		if v.ContactKind == types.ContactLink {
			v.Link = types.LinkURL(l.ContactInfo)
		}
		views = append(views, v)
	}
	return views
}

func parseLeadQuery(req LeadSearchRequest) (generation.LeadQuery, error) {
	jobType, err := generation.ParseJobType(req.JobType)
	if err != nil {
		return generation.LeadQuery{}, &screens.ValidationError{Field: "jobType", Message: "Modalidade desconhecida."}
	}
	source, err := generation.ParseLeadSource(req.Source)
	if err != nil {
		return generation.LeadQuery{}, &screens.ValidationError{Field: "source", Message: "Fonte de leads desconhecida."}
	}
	return generation.LeadQuery{
		JobTitle: req.JobTitle,
		Location: req.Location,
		JobType:  jobType,
		Source:   source,
		Skills:   req.Skills,
	}, nil
}

func (s *Server) handleSearchLeads(w http.ResponseWriter, r *http.Request) {
	var req LeadSearchRequest
	if err := decodeJSON(r, &req); err != nil {
		s.errorResponse(w, err)
		return
	}
	query, err := parseLeadQuery(req)
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	leads, err := s.app.Leads.Search(r.Context(), query)
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"leads": s.leadViews(leads)})
}

func (s *Server) handleLeadResults(w http.ResponseWriter, _ *http.Request) {
	res := s.app.Leads.Results()
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"query": res.Query,
		"leads": s.leadViews(res.Leads),
		"saved": res.Saved,
	})
}

func (s *Server) handleSaveLeads(w http.ResponseWriter, r *http.Request) {
	added, err := s.app.Leads.SaveToHistory(r.Context())
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	status := http.StatusCreated
	if !added {
		status = http.StatusOK
	}
	s.jsonResponse(w, status, map[string]bool{"saved": true, "added": added})
}

func (s *Server) handleLeadsCSV(w http.ResponseWriter, _ *http.Request) {
	var buf bytes.Buffer
	name, err := s.app.Leads.ExportCSV(&buf)
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	s.attachment(w, "text/csv; charset=utf-8", name, buf.Bytes())
}

func (s *Server) handleEmailDraft(w http.ResponseWriter, r *http.Request) {
	var req EmailDraftRequest
	if err := decodeJSON(r, &req); err != nil {
		s.errorResponse(w, err)
		return
	}

	link, err := s.app.Leads.EmailDraft(r.Context(), req.Lead, req.TemplateID, req.JobTitle)
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"mailto": link})
}

func (s *Server) handleListTemplates(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.app.Leads.Templates(r.Context()))
}

func (s *Server) handleCreateTemplate(w http.ResponseWriter, r *http.Request) {
	var req TemplateRequest
	if err := decodeJSON(r, &req); err != nil {
		s.errorResponse(w, err)
		return
	}

	tmpl, err := s.app.Leads.CreateTemplate(r.Context(), req.Name, req.Body)
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, tmpl)
}

func (s *Server) handleUpdateTemplate(w http.ResponseWriter, r *http.Request) {
	var req TemplateRequest
	if err := decodeJSON(r, &req); err != nil {
		s.errorResponse(w, err)
		return
	}

	tmpl, err := s.app.Leads.UpdateTemplate(r.Context(), r.PathValue("id"), req.Name, req.Body)
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, tmpl)
}

func (s *Server) handleDeleteTemplate(w http.ResponseWriter, r *http.Request) {
	if err := s.app.Leads.DeleteTemplate(r.Context(), r.PathValue("id")); err != nil {
		s.errorResponse(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
