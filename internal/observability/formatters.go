package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/jobpilot/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 72
	// barWidth is the length of the longest bar in the status chart
	barWidth = 30
)

// Printer renders collections for the terminal
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to the terminal; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title, boxWidth-4))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(truncate(line, boxWidth-4), boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintCVs lists stored CVs.
func (p *Printer) PrintCVs(cvs []types.CV) {
	if len(cvs) == 0 {
		p.printBox("CURRÍCULOS", "Nenhum currículo salvo.")
		return
	}

	var sb strings.Builder
	for i, cv := range cvs {
		sb.WriteString(fmt.Sprintf("%s  %s\n", cv.ID, cv.Name))
		details := fmt.Sprintf("    %d caracteres", utf8.RuneCountInString(cv.Content))
		if cv.YearsOfExperience != nil {
			details += fmt.Sprintf(", %d anos de experiência", *cv.YearsOfExperience)
		}
		if len(cv.PortfolioLinks) > 0 {
			details += fmt.Sprintf(", %d links", len(cv.PortfolioLinks))
		}
		sb.WriteString(details)
		if i < len(cvs)-1 {
			sb.WriteString("\n")
		}
	}
	p.printBox(fmt.Sprintf("CURRÍCULOS (%d)", len(cvs)), sb.String())
}

// PrintStatusChart draws one horizontal bar per application status.
func (p *Printer) PrintStatusChart(counts []types.StatusCount) {
	maxCount, labelWidth := 0, 0
	for _, c := range counts {
		maxCount = max(maxCount, c.Count)
		labelWidth = max(labelWidth, utf8.RuneCountInString(string(c.Status)))
	}

	var sb strings.Builder
	for i, c := range counts {
		bar := 0
		if maxCount > 0 {
			bar = c.Count * barWidth / maxCount
		}
		if c.Count > 0 && bar == 0 {
			bar = 1
		}
		sb.WriteString(fmt.Sprintf("%s %s %d", pad(string(c.Status), labelWidth), strings.Repeat("█", bar), c.Count))
		if i < len(counts)-1 {
			sb.WriteString("\n")
		}
	}
	p.printBox("CANDIDATURAS POR STATUS", sb.String())
}

// PrintApplications lists tracked applications.
func (p *Printer) PrintApplications(apps []types.Application) {
	if len(apps) == 0 {
		p.printBox("CANDIDATURAS", "Nenhuma candidatura registrada.")
		return
	}

	var sb strings.Builder
	for i, app := range apps {
		sb.WriteString(fmt.Sprintf("%s  %s @ %s\n", app.DateApplied, app.JobTitle, app.CompanyName))
		sb.WriteString(fmt.Sprintf("    %s  [%s]", app.Status, app.ID))
		if app.ReminderDate != "" {
			sb.WriteString(fmt.Sprintf("  lembrete: %s", app.ReminderDate))
		}
		if i < len(apps)-1 {
			sb.WriteString("\n")
		}
	}
	p.printBox(fmt.Sprintf("CANDIDATURAS (%d)", len(apps)), sb.String())
}

// PrintReminders lists pending reminders with their overdue/today flags.
func (p *Printer) PrintReminders(reminders []types.Reminder) {
	if len(reminders) == 0 {
		return
	}

	var sb strings.Builder
	for i, r := range reminders {
		flag := "   "
		switch {
		case r.Overdue:
			flag = "(!)"
		case r.Today:
			flag = "(*)"
		}
		sb.WriteString(fmt.Sprintf("%s %s  %s @ %s", flag, r.Application.ReminderDate, r.Application.JobTitle, r.Application.CompanyName))
		if r.Application.Notes != "" {
			sb.WriteString("\n      " + r.Application.Notes)
		}
		if i < len(reminders)-1 {
			sb.WriteString("\n")
		}
	}
	p.printBox("LEMBRETES", sb.String())
}

// PrintLeads lists lead search results with the action each contact allows.
func (p *Printer) PrintLeads(leads []types.Lead, policy types.EmailPolicy) {
	if len(leads) == 0 {
		p.printBox("LEADS", "Nenhum lead encontrado.")
		return
	}

	var sb strings.Builder
	for i, lead := range leads {
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, lead.CompanyName))
		sb.WriteString(fmt.Sprintf("    %s [%s]", lead.ContactInfo, lead.ContactKind(policy)))
		if lead.Notes != "" {
			sb.WriteString("\n    " + lead.Notes)
		}
		if i < len(leads)-1 {
			sb.WriteString("\n")
		}
	}
	p.printBox(fmt.Sprintf("LEADS (%d)", len(leads)), sb.String())
}

// PrintLayouts lists suggested layouts.
func (p *Printer) PrintLayouts(layouts []types.CVLayout) {
	var sb strings.Builder
	for i, layout := range layouts {
		sb.WriteString(fmt.Sprintf("%s  [%s]\n", layout.Name, layout.ID))
		if layout.Description != "" {
			sb.WriteString("    " + layout.Description + "\n")
		}
		for _, feature := range layout.KeyFeatures {
			sb.WriteString("    • " + feature + "\n")
		}
		if i < len(layouts)-1 {
			sb.WriteString("\n")
		}
	}
	p.printBox("MODELOS DE CURRÍCULO", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintHistory lists history items newest-first as stored.
func (p *Printer) PrintHistory(items []types.HistoryItem) {
	if len(items) == 0 {
		p.printBox("HISTÓRICO", "Nenhum item no histórico.")
		return
	}

	var sb strings.Builder
	for i, item := range items {
		sb.WriteString(fmt.Sprintf("%s  %s", item.Timestamp(), item.Label()))
		switch item.Kind {
		case types.HistoryKindGeneration:
			sb.WriteString(fmt.Sprintf("  (%d caracteres)", utf8.RuneCountInString(item.Generation.Output)))
		case types.HistoryKindLeadSearch:
			sb.WriteString(fmt.Sprintf("  %q, %d leads", item.LeadSearch.SearchTerm, len(item.LeadSearch.Leads)))
		}
		sb.WriteString("\n    id: " + item.ID())
		if i < len(items)-1 {
			sb.WriteString("\n")
		}
	}
	p.printBox(fmt.Sprintf("HISTÓRICO (%d)", len(items)), sb.String())
}

// PrintTemplates lists email templates.
func (p *Printer) PrintTemplates(templates []types.EmailTemplate) {
	var sb strings.Builder
	for i, tmpl := range templates {
		firstLine, _, _ := strings.Cut(strings.TrimSpace(tmpl.Body), "\n")
		sb.WriteString(fmt.Sprintf("%s  [%s]\n    %s", tmpl.Name, tmpl.ID, firstLine))
		if i < len(templates)-1 {
			sb.WriteString("\n")
		}
	}
	p.printBox("MODELOS DE E-MAIL", sb.String())
}

// PrintChat prints a conversation with reply sources.
//
//nolint:errcheck // writing to the terminal; errors are not recoverable
func (p *Printer) PrintChat(messages []types.ChatMessage) {
	for _, msg := range messages {
		speaker := "Você"
		if msg.Role == types.RoleModel {
			speaker = "Assistente"
		}
		fmt.Fprintf(p.out, "%s:\n%s\n", speaker, msg.Text)
		for i, src := range msg.Sources {
			fmt.Fprintf(p.out, "  [%d] %s - %s\n", i+1, src.Title, src.URI)
		}
		fmt.Fprintln(p.out)
	}
}

// PrintText prints generated content under a heading, without wrapping it.
//
//nolint:errcheck // writing to the terminal; errors are not recoverable
func (p *Printer) PrintText(title, body string) {
	fmt.Fprintf(p.out, "── %s %s\n%s\n", title, strings.Repeat("─", max(0, boxWidth-utf8.RuneCountInString(title)-4)), strings.TrimRight(body, "\n"))
}

func truncate(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	runes := []rune(s)
	return string(runes[:width-3]) + "..."
}

func pad(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}
