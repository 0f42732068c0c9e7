package screens

import (
	"context"
	"errors"
	"io"
	"net/url"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/jonathan/jobpilot/internal/export"
	"github.com/jonathan/jobpilot/internal/generation"
	"github.com/jonathan/jobpilot/internal/store"
	"github.com/jonathan/jobpilot/internal/types"
)

// placeholderName stands in for the user's name until one is saved.
const placeholderName = "[Seu Nome]"

// LeadResults is the transient outcome of the last search.
type LeadResults struct {
	Query generation.LeadQuery `json:"query"`
	Leads []types.Lead         `json:"leads"`
	Saved bool                 `json:"saved"`
}

// LeadFinder searches for leads and drafts outreach emails.
type LeadFinder struct {
	env    Env
	policy types.EmailPolicy

	searching Action

	mu      sync.RWMutex
	results LeadResults
}

// NewLeadFinder creates the lead finder controller.
func NewLeadFinder(env Env, policy types.EmailPolicy) *LeadFinder {
	return &LeadFinder{env: env.withDefaults(), policy: policy}
}

// Policy returns the email policy used to classify contacts.
func (f *LeadFinder) Policy() types.EmailPolicy {
	return f.policy
}

// Search runs a lead search. Results replace the previous ones and are not
// saved until SaveToHistory is called.
func (f *LeadFinder) Search(ctx context.Context, query generation.LeadQuery) ([]types.Lead, error) {
	query.JobTitle = strings.TrimSpace(query.JobTitle)
	if query.JobTitle == "" {
		return nil, invalid("jobTitle", "Por favor, insira um cargo desejado.")
	}
	if query.JobType == "" {
		query.JobType = generation.JobTypeAny
	}
	if query.Source == "" {
		query.Source = generation.SourceCompanies
	}

	var leads []types.Lead
	err := f.searching.Run(func() error {
		f.mu.Lock()
		f.results = LeadResults{Query: query}
		f.mu.Unlock()

		var err error
		leads, err = f.env.Generator.FindLeads(ctx, query)
		if err != nil {
			return err
		}

		f.mu.Lock()
		f.results = LeadResults{Query: query, Leads: leads}
		f.mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return leads, nil
}

// Results returns the last search.
func (f *LeadFinder) Results() LeadResults {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.results
}

// Status reports the search action.
func (f *LeadFinder) Status() Status {
	return f.searching.Status()
}

// SaveToHistory stores the current results once. It reports whether a record
// was added; saving the same results again is a no-op.
func (f *LeadFinder) SaveToHistory(ctx context.Context) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.results.Query.JobTitle == "" || len(f.results.Leads) == 0 {
		return false, invalid("leads", "Nenhum resultado para salvar.")
	}
	if f.results.Saved {
		return false, nil
	}

	item := types.NewLeadSearchItem(types.LeadSearchRecord{
		ID:         f.env.nextID(),
		SearchTerm: f.results.Query.JobTitle,
		Location:   f.results.Query.Location,
		Leads:      append([]types.Lead(nil), f.results.Leads...),
		Timestamp:  f.env.timestamp(),
	})
	if err := prependHistory(ctx, f.env.Store, item); err != nil {
		return false, err
	}
	f.results.Saved = true
	return true, nil
}

// ExportCSV writes the current results as CSV and returns the file name.
func (f *LeadFinder) ExportCSV(w io.Writer) (string, error) {
	res := f.Results()
	if len(res.Leads) == 0 {
		return "", invalid("leads", "Nenhum resultado para exportar.")
	}
	if err := export.LeadsCSV(w, res.Leads); err != nil {
		return "", err
	}
	return export.LeadsFileName(res.Query.JobTitle), nil
}

// Templates returns the stored email templates, or the built-in one when
// none exist.
func (f *LeadFinder) Templates(ctx context.Context) []types.EmailTemplate {
	templates := store.Get(ctx, f.env.Store, store.KeyEmailTemplates, []types.EmailTemplate{})
	if len(templates) == 0 {
		return []types.EmailTemplate{types.DefaultEmailTemplate()}
	}
	return templates
}

// CreateTemplate stores a new template.
func (f *LeadFinder) CreateTemplate(ctx context.Context, name, body string) (types.EmailTemplate, error) {
	tmpl := types.EmailTemplate{ID: uuid.NewString(), Name: strings.TrimSpace(name), Body: body}
	if err := checkTemplate(tmpl); err != nil {
		return types.EmailTemplate{}, err
	}
	_, err := store.Update(ctx, f.env.Store, store.KeyEmailTemplates, []types.EmailTemplate{}, func(ts []types.EmailTemplate) ([]types.EmailTemplate, error) {
		return append(ts, tmpl), nil
	})
	if err != nil {
		return types.EmailTemplate{}, err
	}
	return tmpl, nil
}

// UpdateTemplate replaces the name and body of a template.
func (f *LeadFinder) UpdateTemplate(ctx context.Context, id, name, body string) (types.EmailTemplate, error) {
	tmpl := types.EmailTemplate{ID: id, Name: strings.TrimSpace(name), Body: body}
	if err := checkTemplate(tmpl); err != nil {
		return types.EmailTemplate{}, err
	}
	_, err := store.Update(ctx, f.env.Store, store.KeyEmailTemplates, []types.EmailTemplate{}, func(ts []types.EmailTemplate) ([]types.EmailTemplate, error) {
		for i := range ts {
			if ts[i].ID == id {
				ts[i] = tmpl
				return ts, nil
			}
		}
		return nil, notFound("email template", id)
	})
	if err != nil {
		return types.EmailTemplate{}, err
	}
	return tmpl, nil
}

// DeleteTemplate removes a template.
func (f *LeadFinder) DeleteTemplate(ctx context.Context, id string) error {
	_, err := store.Update(ctx, f.env.Store, store.KeyEmailTemplates, []types.EmailTemplate{}, func(ts []types.EmailTemplate) ([]types.EmailTemplate, error) {
		for i := range ts {
			if ts[i].ID == id {
				return append(ts[:i], ts[i+1:]...), nil
			}
		}
		return nil, notFound("email template", id)
	})
	return err
}

// templateMessages holds the form message for each EmailTemplate field rule.
var templateMessages = map[string]string{
	"Name": "Informe o nome do modelo.",
	"Body": "O corpo do modelo está vazio.",
}

func checkTemplate(t types.EmailTemplate) error {
	err := t.Validate()
	var entityErr *types.InvalidEntityError
	if errors.As(err, &entityErr) {
		field := entityErr.Fields[0].Field
		if msg, ok := templateMessages[field]; ok {
			return invalid(strings.ToLower(field), msg)
		}
	}
	return err
}

// EmailDraft builds a mailto link addressed to lead from a template. Only
// contacts the policy accepts as email can be drafted.
func (f *LeadFinder) EmailDraft(ctx context.Context, lead types.Lead, templateID, jobTitle string) (string, error) {
	if lead.ContactKind(f.policy) != types.ContactEmail {
		return "", invalid("contactInfo", "Este lead não possui um e-mail de contato.")
	}
	if strings.TrimSpace(jobTitle) == "" {
		jobTitle = f.Results().Query.JobTitle
	}

	templates := f.Templates(ctx)
	tmpl := templates[0]
	if templateID != "" {
		found := false
		for _, t := range templates {
			if t.ID == templateID {
				tmpl, found = t, true
				break
			}
		}
		if !found {
			return "", notFound("email template", templateID)
		}
	}

	userName := strings.TrimSpace(store.Get(ctx, f.env.Store, store.KeyUserName, ""))
	if userName == "" {
		userName = placeholderName
	}

	subject := "Candidatura para " + jobTitle + " - " + userName
	body := tmpl.Render(lead.CompanyName, jobTitle, userName)
	return "mailto:" + strings.TrimSpace(lead.ContactInfo) +
		"?subject=" + encodeComponent(subject) +
		"&body=" + encodeComponent(body), nil
}

// encodeComponent escapes s for a mailto query, with spaces as %20.
func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
