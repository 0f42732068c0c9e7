package screens

import (
	"context"
	"io"
	"strings"
	"sync"

	"github.com/jonathan/jobpilot/internal/export"
	"github.com/jonathan/jobpilot/internal/rendering"
	"github.com/jonathan/jobpilot/internal/store"
	"github.com/jonathan/jobpilot/internal/theme"
	"github.com/jonathan/jobpilot/internal/types"
	"go.uber.org/zap"
)

// PDFPrinter turns an HTML page into PDF bytes.
type PDFPrinter func(ctx context.Context, html string) ([]byte, error)

// ChromePDFPrinter prints through a headless browser.
func ChromePDFPrinter(logger *zap.Logger) PDFPrinter {
	return func(ctx context.Context, html string) ([]byte, error) {
		return rendering.PrintPDF(ctx, html, rendering.DefaultPDFTimeout, logger)
	}
}

// Restructured is a CV rewritten to follow a layout.
type Restructured struct {
	Layout  types.CVLayout `json:"layout"`
	CVID    string         `json:"cvId"`
	Content string         `json:"content"`
}

// Layouts suggests résumé layouts and applies them to stored CVs.
type Layouts struct {
	env   Env
	print PDFPrinter

	suggesting Action
	applying   Action

	mu           sync.RWMutex
	suggestions  []types.CVLayout
	restructured *Restructured
}

// NewLayouts creates the layouts controller. A nil printer uses headless Chrome.
func NewLayouts(env Env, printer PDFPrinter) *Layouts {
	env = env.withDefaults()
	if printer == nil {
		printer = ChromePDFPrinter(env.Logger)
	}
	return &Layouts{env: env, print: printer}
}

// Suggest replaces the current suggestions with fresh ones.
func (l *Layouts) Suggest(ctx context.Context) ([]types.CVLayout, error) {
	var layouts []types.CVLayout
	err := l.suggesting.Run(func() error {
		l.mu.Lock()
		l.suggestions = nil
		l.restructured = nil
		l.mu.Unlock()

		var err error
		layouts, err = suggestLayouts(ctx, l.env)
		if err != nil {
			return err
		}
		l.offer(layouts)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return layouts, nil
}

// offer replaces the current suggestions and drops the last restructured CV.
func (l *Layouts) offer(layouts []types.CVLayout) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.suggestions = append([]types.CVLayout(nil), layouts...)
	l.restructured = nil
}

// Suggestions returns the current suggestions.
func (l *Layouts) Suggestions() []types.CVLayout {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]types.CVLayout(nil), l.suggestions...)
}

// Apply restructures a stored CV with one of the current suggestions.
func (l *Layouts) Apply(ctx context.Context, layoutID, cvID string) (*Restructured, error) {
	if strings.TrimSpace(cvID) == "" {
		return nil, invalid("cv", "Selecione um currículo para aplicar o layout.")
	}

	var layout types.CVLayout
	found := false
	for _, s := range l.Suggestions() {
		if s.ID == layoutID {
			layout, found = s, true
			break
		}
	}
	if !found {
		return nil, invalid("layout", "Modelo não encontrado. Gere novas sugestões.")
	}

	cv, ok := types.FindCV(store.Get(ctx, l.env.Store, store.KeyCVs, []types.CV{}), cvID)
	if !ok {
		return nil, invalid("cv", "Currículo não encontrado.")
	}

	var out *Restructured
	err := l.applying.Run(func() error {
		content, err := l.env.Generator.ApplyCVLayout(ctx, cv.Content, layout)
		if err != nil {
			return err
		}
		out = &Restructured{Layout: layout, CVID: cv.ID, Content: content}
		l.mu.Lock()
		l.restructured = out
		l.mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Current returns the last restructured CV.
func (l *Layouts) Current() (*Restructured, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.restructured, l.restructured != nil
}

// Status reports the suggest and apply actions.
func (l *Layouts) Status() map[string]Status {
	return map[string]Status{
		"suggest": l.suggesting.Status(),
		"apply":   l.applying.Status(),
	}
}

func (l *Layouts) current() (*Restructured, error) {
	r, ok := l.Current()
	if !ok {
		return nil, invalid("layout", "Aplique um modelo a um currículo antes de exportar.")
	}
	return r, nil
}

// ExportPDF writes the restructured CV as PDF and returns the file name.
func (l *Layouts) ExportPDF(ctx context.Context, w io.Writer) (string, error) {
	r, err := l.current()
	if err != nil {
		return "", err
	}

	// Printed documents always use the light palette.
	html, err := rendering.RenderHTML(r.Layout.Name, r.Content, theme.PaletteFor(theme.Light))
	if err != nil {
		return "", err
	}
	pdf, err := l.print(ctx, html)
	if err != nil {
		return "", err
	}
	if _, err := w.Write(pdf); err != nil {
		return "", err
	}
	return rendering.FileName(r.Layout.Name, "pdf"), nil
}

// ExportText writes the restructured CV as plain text and returns the file name.
func (l *Layouts) ExportText(w io.Writer) (string, error) {
	r, err := l.current()
	if err != nil {
		return "", err
	}
	if err := export.Text(w, rendering.PlainText(r.Content)); err != nil {
		return "", err
	}
	return rendering.FileName(r.Layout.Name, "txt"), nil
}
