package types

import (
	"encoding/json"
	"fmt"
)

// HistoryKind discriminates the variants stored in the shared history collection.
type HistoryKind string

const (
	HistoryKindGeneration HistoryKind = "generation"
	HistoryKindLeadSearch HistoryKind = "lead_search"
)

// GenerationType labels the tool that produced a generation record.
type GenerationType string

const (
	GenerationCVOptimization GenerationType = "Otimização de Currículo"
	GenerationCoverLetter    GenerationType = "Carta de Apresentação"
)

// LeadSearchLabel is the type label of lead search records.
const LeadSearchLabel = "Busca de Leads"

// GenerationRecord is an immutable record of a CV optimization or cover letter.
type GenerationRecord struct {
	ID                  string         `json:"id"`
	Type                GenerationType `json:"type"`
	InputCV             string         `json:"inputCv"`
	InputJobDescription string         `json:"inputJobDescription"`
	Output              string         `json:"output"`
	Timestamp           string         `json:"timestamp"`
}

// LeadSearchRecord is an immutable record of a saved lead search.
type LeadSearchRecord struct {
	ID         string `json:"id"`
	Type       string `json:"type"`
	SearchTerm string `json:"searchTerm"`
	Location   string `json:"location"`
	Leads      []Lead `json:"leads"`
	Timestamp  string `json:"timestamp"`
}

// HistoryItem is a tagged variant: exactly one of Generation or LeadSearch is set,
// matching Kind.
type HistoryItem struct {
	Kind       HistoryKind
	Generation *GenerationRecord
	LeadSearch *LeadSearchRecord
}

// NewGenerationItem wraps a generation record.
func NewGenerationItem(rec GenerationRecord) HistoryItem {
	return HistoryItem{Kind: HistoryKindGeneration, Generation: &rec}
}

// NewLeadSearchItem wraps a lead search record, filling in its type label.
func NewLeadSearchItem(rec LeadSearchRecord) HistoryItem {
	rec.Type = LeadSearchLabel
	if rec.Leads == nil {
		rec.Leads = []Lead{}
	}
	return HistoryItem{Kind: HistoryKindLeadSearch, LeadSearch: &rec}
}

// ID returns the record id.
func (h HistoryItem) ID() string {
	switch h.Kind {
	case HistoryKindGeneration:
		return h.Generation.ID
	case HistoryKindLeadSearch:
		return h.LeadSearch.ID
	}
	return ""
}

// Timestamp returns the record timestamp.
func (h HistoryItem) Timestamp() string {
	switch h.Kind {
	case HistoryKindGeneration:
		return h.Generation.Timestamp
	case HistoryKindLeadSearch:
		return h.LeadSearch.Timestamp
	}
	return ""
}

// Label returns the human-readable record type.
func (h HistoryItem) Label() string {
	switch h.Kind {
	case HistoryKindGeneration:
		return string(h.Generation.Type)
	case HistoryKindLeadSearch:
		return LeadSearchLabel
	}
	return ""
}

// MarshalJSON writes the active record flattened, with a "kind" field.
func (h HistoryItem) MarshalJSON() ([]byte, error) {
	switch h.Kind {
	case HistoryKindGeneration:
		if h.Generation == nil {
			return nil, fmt.Errorf("history item %q has no generation record", h.Kind)
		}
		return json.Marshal(struct {
			Kind HistoryKind `json:"kind"`
			*GenerationRecord
		}{h.Kind, h.Generation})
	case HistoryKindLeadSearch:
		if h.LeadSearch == nil {
			return nil, fmt.Errorf("history item %q has no lead search record", h.Kind)
		}
		return json.Marshal(struct {
			Kind HistoryKind `json:"kind"`
			*LeadSearchRecord
		}{h.Kind, h.LeadSearch})
	default:
		return nil, fmt.Errorf("unknown history kind %q", h.Kind)
	}
}

// UnmarshalJSON reads either variant. Records written before the "kind" field
// existed are told apart by the presence of "leads".
func (h *HistoryItem) UnmarshalJSON(data []byte) error {
	var head struct {
		Kind  HistoryKind     `json:"kind"`
		Leads json.RawMessage `json:"leads"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return err
	}

	kind := head.Kind
	if kind == "" {
		kind = HistoryKindGeneration
		if head.Leads != nil {
			kind = HistoryKindLeadSearch
		}
	}

	switch kind {
	case HistoryKindGeneration:
		var rec GenerationRecord
		if err := json.Unmarshal(data, &rec); err != nil {
			return err
		}
		*h = HistoryItem{Kind: kind, Generation: &rec}
	case HistoryKindLeadSearch:
		var rec LeadSearchRecord
		if err := json.Unmarshal(data, &rec); err != nil {
			return err
		}
		*h = HistoryItem{Kind: kind, LeadSearch: &rec}
	default:
		return fmt.Errorf("unknown history kind %q", kind)
	}
	return nil
}

// HistoryLog is the stored history list. Entries that fail to decode are
// kept verbatim in Skipped and written back after Items, so one bad entry
// neither hides the others nor is lost on the next write.
type HistoryLog struct {
	Items   []HistoryItem
	Skipped []json.RawMessage
}

func (l HistoryLog) MarshalJSON() ([]byte, error) {
	out := make([]json.RawMessage, 0, len(l.Items)+len(l.Skipped))
	for _, item := range l.Items {
		raw, err := json.Marshal(item)
		if err != nil {
			return nil, err
		}
		out = append(out, raw)
	}
	return json.Marshal(append(out, l.Skipped...))
}

func (l *HistoryLog) UnmarshalJSON(data []byte) error {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return err
	}
	*l = HistoryLog{Items: make([]HistoryItem, 0, len(raws))}
	for _, raw := range raws {
		var item HistoryItem
		if err := json.Unmarshal(raw, &item); err != nil {
			l.Skipped = append(l.Skipped, raw)
			continue
		}
		l.Items = append(l.Items, item)
	}
	return nil
}
