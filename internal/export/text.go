package export

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/jonathan/jobpilot/internal/types"
)

const rule = "========================================"

var whitespace = regexp.MustCompile(`\s+`)

func underscore(s string) string {
	return whitespace.ReplaceAllString(strings.TrimSpace(s), "_")
}

// Text writes generated content exactly as produced.
func Text(w io.Writer, content string) error {
	if _, err := io.WriteString(w, content); err != nil {
		return fmt.Errorf("failed to write text: %w", err)
	}
	return nil
}

// GenerationFileName is the download name of a generated document.
func GenerationFileName(kind types.GenerationType) string {
	switch kind {
	case types.GenerationCoverLetter:
		return "carta_de_apresentacao.txt"
	default:
		return "curriculo_otimizado.txt"
	}
}

// ItemText writes one history record as a readable report.
func ItemText(w io.Writer, item types.HistoryItem) error {
	var sb strings.Builder
	writeItem(&sb, item)
	return Text(w, sb.String())
}

// HistoryText writes every history record, newest first as stored.
func HistoryText(w io.Writer, items []types.HistoryItem) error {
	var sb strings.Builder
	sb.WriteString("HISTÓRICO\n")
	sb.WriteString(fmt.Sprintf("%d itens\n\n", len(items)))
	for i, item := range items {
		if i > 0 {
			sb.WriteString("\n")
		}
		writeItem(&sb, item)
	}
	return Text(w, sb.String())
}

func writeItem(sb *strings.Builder, item types.HistoryItem) {
	sb.WriteString(rule + "\n")
	sb.WriteString(fmt.Sprintf("%s | %s\n", item.Label(), item.Timestamp()))
	sb.WriteString(rule + "\n")

	switch item.Kind {
	case types.HistoryKindGeneration:
		g := item.Generation
		sb.WriteString("\n--- Currículo ---\n")
		sb.WriteString(strings.TrimRight(g.InputCV, "\n") + "\n")
		sb.WriteString("\n--- Descrição da Vaga ---\n")
		sb.WriteString(strings.TrimRight(g.InputJobDescription, "\n") + "\n")
		sb.WriteString("\n--- Resultado ---\n")
		sb.WriteString(strings.TrimRight(g.Output, "\n") + "\n")
	case types.HistoryKindLeadSearch:
		l := item.LeadSearch
		sb.WriteString(fmt.Sprintf("Cargo: %s\n", l.SearchTerm))
		if l.Location != "" {
			sb.WriteString(fmt.Sprintf("Localização: %s\n", l.Location))
		}
		sb.WriteString(fmt.Sprintf("Leads: %d\n", len(l.Leads)))
		for i, lead := range l.Leads {
			sb.WriteString(fmt.Sprintf("\n%d. %s\n   Contato: %s\n", i+1, lead.CompanyName, lead.ContactInfo))
			if lead.Notes != "" {
				sb.WriteString(fmt.Sprintf("   Notas: %s\n", lead.Notes))
			}
		}
	}
}
