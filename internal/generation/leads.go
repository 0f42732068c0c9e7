package generation

import (
	"fmt"
	"strings"

	"github.com/jonathan/jobpilot/internal/prompts"
)

// JobType is the work arrangement filter of a lead search.
type JobType string

const (
	JobTypeAny    JobType = "Todos"
	JobTypeOnSite JobType = "Presencial"
	JobTypeRemote JobType = "Home Office"
	JobTypeHybrid JobType = "Híbrido"
)

// JobTypes returns every job type in display order.
func JobTypes() []JobType {
	return []JobType{JobTypeAny, JobTypeOnSite, JobTypeRemote, JobTypeHybrid}
}

// LeadSource selects which kind of leads to look for.
type LeadSource string

const (
	SourceCompanies LeadSource = "companies"
	SourceSocial    LeadSource = "social"
)

// ParseLeadSource accepts the English names and the Portuguese labels.
func ParseLeadSource(raw string) (LeadSource, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "companies", "empresas":
		return SourceCompanies, nil
	case "social", "sociais":
		return SourceSocial, nil
	default:
		return "", fmt.Errorf("unknown lead source %q", raw)
	}
}

// ParseJobType matches a job type label case-insensitively. Empty means any.
func ParseJobType(raw string) (JobType, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return JobTypeAny, nil
	}
	aliases := map[string]JobType{"any": JobTypeAny, "onsite": JobTypeOnSite, "remote": JobTypeRemote, "hybrid": JobTypeHybrid}
	if jt, ok := aliases[strings.ToLower(raw)]; ok {
		return jt, nil
	}
	for _, jt := range JobTypes() {
		if strings.EqualFold(string(jt), raw) {
			return jt, nil
		}
	}
	return "", fmt.Errorf("unknown job type %q", raw)
}

// LeadQuery describes a lead search.
type LeadQuery struct {
	JobTitle string     `json:"jobTitle"`
	Location string     `json:"location"`
	JobType  JobType    `json:"jobType"`
	Source   LeadSource `json:"source"`
	Skills   string     `json:"skills"`
}

func (q LeadQuery) promptKey() prompts.Key {
	if q.Source == SourceSocial {
		return prompts.FindLeadsSocial
	}
	return prompts.FindLeadsCompanies
}

func (q LeadQuery) promptData() map[string]string {
	data := map[string]string{
		"JobTitle":       strings.TrimSpace(q.JobTitle),
		"LocationClause": "",
		"JobTypeClause":  "",
		"SkillsClause":   "",
	}
	if loc := strings.TrimSpace(q.Location); loc != "" {
		data["LocationClause"] = " em " + loc
	}
	if q.JobType != "" && q.JobType != JobTypeAny {
		data["JobTypeClause"] = ", na modalidade " + string(q.JobType)
	}
	if skills := strings.TrimSpace(q.Skills); skills != "" {
		data["SkillsClause"] = ", com habilidades em " + skills
	}
	return data
}
