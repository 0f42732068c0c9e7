package types

import "strings"

// ApplicationStatus is the pipeline stage of a job application. Values are the
// strings persisted by earlier versions of the tool and must not change.
type ApplicationStatus string

const (
	StatusApplied      ApplicationStatus = "Candidatou-se"
	StatusViewed       ApplicationStatus = "Visualizado"
	StatusInterviewing ApplicationStatus = "Em Entrevista"
	StatusOffer        ApplicationStatus = "Oferta Recebida"
	StatusRejected     ApplicationStatus = "Rejeitado"
	StatusGhosted      ApplicationStatus = "Ignorado (Ghosting)"
)

var statusAliases = map[string]ApplicationStatus{
	"applied":      StatusApplied,
	"viewed":       StatusViewed,
	"interviewing": StatusInterviewing,
	"offer":        StatusOffer,
	"rejected":     StatusRejected,
	"ghosted":      StatusGhosted,
}

// AllStatuses returns every status in display order.
func AllStatuses() []ApplicationStatus {
	return []ApplicationStatus{
		StatusApplied,
		StatusViewed,
		StatusInterviewing,
		StatusOffer,
		StatusRejected,
		StatusGhosted,
	}
}

// Valid reports whether s is one of the six known statuses.
func (s ApplicationStatus) Valid() bool {
	for _, known := range AllStatuses() {
		if s == known {
			return true
		}
	}
	return false
}

// ParseStatus accepts either the stored value or its English alias.
func ParseStatus(raw string) (ApplicationStatus, bool) {
	trimmed := strings.TrimSpace(raw)
	if s := ApplicationStatus(trimmed); s.Valid() {
		return s, true
	}
	if s, ok := statusAliases[strings.ToLower(trimmed)]; ok {
		return s, true
	}
	for _, known := range AllStatuses() {
		if strings.EqualFold(string(known), trimmed) {
			return known, true
		}
	}
	return "", false
}

// Application is a tracked job application.
type Application struct {
	ID           string            `json:"id"`
	JobTitle     string            `json:"jobTitle" validate:"required"`
	CompanyName  string            `json:"companyName" validate:"required"`
	DateApplied  string            `json:"dateApplied" validate:"required,datetime=2006-01-02"`
	JobURL       string            `json:"jobUrl,omitempty"`
	Status       ApplicationStatus `json:"status" validate:"required,application_status"`
	Phone        string            `json:"phone,omitempty"`
	Email        string            `json:"email,omitempty"`
	ReminderDate string            `json:"reminderDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Notes        string            `json:"notes,omitempty"`
}

// Validate checks the application's field rules.
func (a *Application) Validate() error {
	return validateEntity("application", a)
}

// Reminder is an application with a pending reminder, classified against a day.
type Reminder struct {
	Application Application `json:"application"`
	Overdue     bool        `json:"overdue"`
	Today       bool        `json:"today"`
}

// StatusCount is the number of applications in one status.
type StatusCount struct {
	Status ApplicationStatus `json:"status"`
	Count  int               `json:"count"`
}
