package screens

import (
	"context"
	"io"
	"sort"
	"strings"

	"github.com/jonathan/jobpilot/internal/export"
	"github.com/jonathan/jobpilot/internal/store"
	"github.com/jonathan/jobpilot/internal/types"
)

// ApplicationInput is the add-application form.
type ApplicationInput struct {
	JobTitle     string `json:"jobTitle"`
	CompanyName  string `json:"companyName"`
	DateApplied  string `json:"dateApplied"`
	JobURL       string `json:"jobUrl"`
	Status       string `json:"status"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	ReminderDate string `json:"reminderDate"`
	Notes        string `json:"notes"`
}

// ApplicationPatch changes selected fields of an application. Nil fields are kept.
type ApplicationPatch struct {
	Status       *string `json:"status,omitempty"`
	ReminderDate *string `json:"reminderDate,omitempty"`
	Notes        *string `json:"notes,omitempty"`
}

// Dashboard tracks job applications.
type Dashboard struct {
	env Env
}

// NewDashboard creates the dashboard controller.
func NewDashboard(env Env) *Dashboard {
	return &Dashboard{env: env.withDefaults()}
}

// Applications returns every tracked application in collection order.
func (d *Dashboard) Applications(ctx context.Context) []types.Application {
	return store.Get(ctx, d.env.Store, store.KeyApplications, []types.Application{})
}

// Add stores a new application. The date defaults to today and the status to
// applied.
func (d *Dashboard) Add(ctx context.Context, in ApplicationInput) (types.Application, error) {
	if strings.TrimSpace(in.JobTitle) == "" || strings.TrimSpace(in.CompanyName) == "" {
		return types.Application{}, invalid("application", "Informe o cargo e a empresa.")
	}

	status := types.StatusApplied
	if in.Status != "" {
		parsed, ok := types.ParseStatus(in.Status)
		if !ok {
			return types.Application{}, invalid("status", "Status desconhecido.")
		}
		status = parsed
	}
	date := strings.TrimSpace(in.DateApplied)
	if date == "" {
		date = types.FormatDate(d.env.Now())
	}

	app := types.Application{
		ID:           d.env.nextID(),
		JobTitle:     strings.TrimSpace(in.JobTitle),
		CompanyName:  strings.TrimSpace(in.CompanyName),
		DateApplied:  date,
		JobURL:       strings.TrimSpace(in.JobURL),
		Status:       status,
		Phone:        strings.TrimSpace(in.Phone),
		Email:        strings.TrimSpace(in.Email),
		ReminderDate: strings.TrimSpace(in.ReminderDate),
		Notes:        in.Notes,
	}
	if err := app.Validate(); err != nil {
		return types.Application{}, err
	}

	if _, err := store.Update(ctx, d.env.Store, store.KeyApplications, []types.Application{}, func(apps []types.Application) ([]types.Application, error) {
		return append(apps, app), nil
	}); err != nil {
		return types.Application{}, err
	}
	return app, nil
}

// Update applies patch to one application. A status change leaves any
// reminder in place.
func (d *Dashboard) Update(ctx context.Context, id string, patch ApplicationPatch) (types.Application, error) {
	var status types.ApplicationStatus
	if patch.Status != nil {
		parsed, ok := types.ParseStatus(*patch.Status)
		if !ok {
			return types.Application{}, invalid("status", "Status desconhecido.")
		}
		status = parsed
	}

	return d.modify(ctx, id, func(app *types.Application) error {
		if patch.Status != nil {
			app.Status = status
		}
		if patch.ReminderDate != nil {
			app.ReminderDate = strings.TrimSpace(*patch.ReminderDate)
		}
		if patch.Notes != nil {
			app.Notes = *patch.Notes
		}
		return app.Validate()
	})
}

// UpdateStatus moves an application to another status.
func (d *Dashboard) UpdateStatus(ctx context.Context, id, status string) (types.Application, error) {
	return d.Update(ctx, id, ApplicationPatch{Status: &status})
}

// SetReminder sets the reminder date and note of an application.
func (d *Dashboard) SetReminder(ctx context.Context, id, date, notes string) (types.Application, error) {
	return d.Update(ctx, id, ApplicationPatch{ReminderDate: &date, Notes: &notes})
}

// DismissReminder clears the reminder date and its note.
func (d *Dashboard) DismissReminder(ctx context.Context, id string) (types.Application, error) {
	return d.modify(ctx, id, func(app *types.Application) error {
		app.ReminderDate = ""
		app.Notes = ""
		return nil
	})
}

// Delete removes an application.
func (d *Dashboard) Delete(ctx context.Context, id string) error {
	found := false
	_, err := store.Update(ctx, d.env.Store, store.KeyApplications, []types.Application{}, func(apps []types.Application) ([]types.Application, error) {
		kept := apps[:0]
		for _, app := range apps {
			if app.ID == id {
				found = true
				continue
			}
			kept = append(kept, app)
		}
		return kept, nil
	})
	if err != nil {
		return err
	}
	if !found {
		return notFound("application", id)
	}
	return nil
}

func (d *Dashboard) modify(ctx context.Context, id string, fn func(*types.Application) error) (types.Application, error) {
	var updated types.Application
	_, err := store.Update(ctx, d.env.Store, store.KeyApplications, []types.Application{}, func(apps []types.Application) ([]types.Application, error) {
		for i := range apps {
			if apps[i].ID != id {
				continue
			}
			if err := fn(&apps[i]); err != nil {
				return nil, err
			}
			updated = apps[i]
			return apps, nil
		}
		return nil, notFound("application", id)
	})
	if err != nil {
		return types.Application{}, err
	}
	return updated, nil
}

// StatusCounts counts applications per status, for all six statuses in order.
func (d *Dashboard) StatusCounts(ctx context.Context) []types.StatusCount {
	return CountByStatus(d.Applications(ctx))
}

// CountByStatus counts apps per status, for all six statuses in order.
func CountByStatus(apps []types.Application) []types.StatusCount {
	counts := make(map[types.ApplicationStatus]int)
	for _, app := range apps {
		counts[app.Status]++
	}
	out := make([]types.StatusCount, 0, len(types.AllStatuses()))
	for _, s := range types.AllStatuses() {
		out = append(out, types.StatusCount{Status: s, Count: counts[s]})
	}
	return out
}

// Reminders lists applications with a reminder, soonest first, classified
// against today (YYYY-MM-DD) by string comparison.
func (d *Dashboard) Reminders(ctx context.Context, today string) []types.Reminder {
	return BuildReminders(d.Applications(ctx), today)
}

// BuildReminders derives the reminder list from apps.
func BuildReminders(apps []types.Application, today string) []types.Reminder {
	var out []types.Reminder
	for _, app := range apps {
		if app.ReminderDate == "" {
			continue
		}
		out = append(out, types.Reminder{
			Application: app,
			Overdue:     app.ReminderDate < today,
			Today:       app.ReminderDate == today,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Application.ReminderDate < out[j].Application.ReminderDate
	})
	return out
}

// NotificationCount is the number of reminders due today or earlier.
func (d *Dashboard) NotificationCount(ctx context.Context, today string) int {
	n := 0
	for _, r := range d.Reminders(ctx, today) {
		if r.Overdue || r.Today {
			n++
		}
	}
	return n
}

// Today returns the current calendar date.
func (d *Dashboard) Today() string {
	return types.FormatDate(d.env.Now())
}

// ExportCSV writes every application as CSV.
func (d *Dashboard) ExportCSV(ctx context.Context, w io.Writer) error {
	return export.ApplicationsCSV(w, d.Applications(ctx))
}
