// Package export writes collections as spreadsheet-friendly CSV and readable text.
package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/jonathan/jobpilot/internal/types"
)

// utf8BOM makes spreadsheet programs detect the encoding.
const utf8BOM = "\ufeff"

// ApplicationHeaders is the header row of the applications CSV.
var ApplicationHeaders = []string{
	"ID", "Cargo", "Empresa", "Data da Candidatura", "URL da Vaga",
	"Status", "Telefone", "E-mail", "Data do Lembrete", "Anotações",
}

// LeadHeaders is the header row of the leads CSV.
var LeadHeaders = []string{"Fonte", "Informação de Contato", "Notas"}

func writeCSV(w io.Writer, header []string, rows [][]string) error {
	if _, err := io.WriteString(w, utf8BOM); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write CSV rows: %w", err)
	}
	return nil
}

// ApplicationsCSV writes every application, one row each, in collection order.
func ApplicationsCSV(w io.Writer, apps []types.Application) error {
	rows := make([][]string, 0, len(apps))
	for _, a := range apps {
		rows = append(rows, []string{
			a.ID, a.JobTitle, a.CompanyName, a.DateApplied, a.JobURL,
			string(a.Status), a.Phone, a.Email, a.ReminderDate, a.Notes,
		})
	}
	return writeCSV(w, ApplicationHeaders, rows)
}

// LeadsCSV writes lead search results.
func LeadsCSV(w io.Writer, leads []types.Lead) error {
	rows := make([][]string, 0, len(leads))
	for _, l := range leads {
		rows = append(rows, []string{l.CompanyName, l.ContactInfo, l.Notes})
	}
	return writeCSV(w, LeadHeaders, rows)
}

// LeadsFileName is the download name of a lead search CSV.
func LeadsFileName(jobTitle string) string {
	return "leads_" + underscore(jobTitle) + ".csv"
}

// ApplicationsFileName is the download name of the applications CSV.
const ApplicationsFileName = "candidaturas.csv"
