package screens

import (
	"context"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/jonathan/jobpilot/internal/ingestion"
	"github.com/jonathan/jobpilot/internal/store"
	"github.com/jonathan/jobpilot/internal/types"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// portfolioHeader separates the résumé text from appended portfolio links.
const portfolioHeader = "--- Portfólio ---"

// CVInput is the add-CV form.
type CVInput struct {
	Name              string   `json:"name"`
	Content           string   `json:"content"`
	YearsOfExperience *int     `json:"yearsOfExperience,omitempty"`
	PortfolioLinks    []string `json:"portfolioLinks,omitempty"`
}

// SavedCV is the outcome of saving a CV. The save itself always succeeded;
// analysis and layout suggestions are best-effort and report their own errors.
type SavedCV struct {
	CV          types.CV         `json:"cv"`
	Analysis    string           `json:"analysis,omitempty"`
	AnalysisErr string           `json:"analysisError,omitempty"`
	Layouts     []types.CVLayout `json:"layouts,omitempty"`
	LayoutsErr  string           `json:"layoutsError,omitempty"`
}

// ImportedCV is text extracted from an uploaded file, ready to fill the form.
type ImportedCV struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

// CVManager stores CVs and keeps their latest analysis in memory.
type CVManager struct {
	env Env

	adding    Action
	analyzing Action

	// layouts receives the suggestions made after Add so they can be applied.
	layouts *Layouts

	mu       sync.RWMutex
	analyses map[string]string
}

// NewCVManager creates the CV manager.
func NewCVManager(env Env) *CVManager {
	return &CVManager{env: env.withDefaults(), analyses: make(map[string]string)}
}

// List returns the stored CVs in collection order.
func (m *CVManager) List(ctx context.Context) []types.CV {
	return store.Get(ctx, m.env.Store, store.KeyCVs, []types.CV{})
}

// Get returns one CV.
func (m *CVManager) Get(ctx context.Context, id string) (types.CV, error) {
	cv, ok := types.FindCV(m.List(ctx), id)
	if !ok {
		return types.CV{}, notFound("cv", id)
	}
	return cv, nil
}

func cleanLinks(links []string) []string {
	var out []string
	for _, l := range links {
		for _, line := range strings.Split(l, "\n") {
			if line = strings.TrimSpace(line); line != "" {
				out = append(out, line)
			}
		}
	}
	return out
}

// Add saves a new CV, then analyzes it and fetches layout suggestions
// concurrently. A failed analysis does not undo the save.
func (m *CVManager) Add(ctx context.Context, in CVInput) (*SavedCV, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, invalid("name", "Informe o nome do currículo.")
	}
	if strings.TrimSpace(in.Content) == "" {
		return nil, invalid("content", "O conteúdo do currículo está vazio.")
	}
	if in.YearsOfExperience != nil && *in.YearsOfExperience < 0 {
		return nil, invalid("yearsOfExperience", "Anos de experiência não pode ser negativo.")
	}

	links := cleanLinks(in.PortfolioLinks)
	content := in.Content
	if len(links) > 0 {
		content += "\n\n" + portfolioHeader + "\n" + strings.Join(links, "\n")
	}
	cv := types.CV{
		ID:                m.env.nextID(),
		Name:              strings.TrimSpace(in.Name),
		Content:           content,
		YearsOfExperience: in.YearsOfExperience,
		PortfolioLinks:    links,
	}

	var saved *SavedCV
	err := m.adding.Run(func() error {
		if err := cv.Validate(); err != nil {
			return err
		}
		if _, err := store.Update(ctx, m.env.Store, store.KeyCVs, []types.CV{}, func(cvs []types.CV) ([]types.CV, error) {
			return append(cvs, cv), nil
		}); err != nil {
			return err
		}
		m.env.Logger.Info("cv saved", zap.String("id", cv.ID), zap.String("name", cv.Name))

		saved = m.followUp(ctx, cv, true)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

// followUp runs the best-effort analysis and, when asked, layout suggestions.
func (m *CVManager) followUp(ctx context.Context, cv types.CV, withLayouts bool) *SavedCV {
	out := &SavedCV{CV: cv}

	var g errgroup.Group
	g.Go(func() error {
		analysis, err := m.analyze(ctx, cv)
		if err != nil {
			out.AnalysisErr = UserMessage(err)
			return nil
		}
		out.Analysis = analysis
		return nil
	})
	if withLayouts {
		g.Go(func() error {
			layouts, err := suggestLayouts(ctx, m.env)
			if err != nil {
				m.env.Logger.Warn("layout suggestions failed", zap.String("cv", cv.ID), zap.Error(err))
				out.LayoutsErr = UserMessage(err)
				return nil
			}
			out.Layouts = layouts
			if m.layouts != nil {
				m.layouts.offer(layouts)
			}
			return nil
		})
	}
	_ = g.Wait()
	return out
}

func (m *CVManager) analyze(ctx context.Context, cv types.CV) (string, error) {
	var analysis string
	err := m.analyzing.Run(func() error {
		var err error
		analysis, err = m.env.Generator.AnalyzeCV(ctx, cv.Content)
		return err
	})
	if err != nil {
		m.env.Logger.Warn("cv analysis failed", zap.String("cv", cv.ID), zap.Error(err))
		return "", err
	}

	m.mu.Lock()
	m.analyses[cv.ID] = analysis
	m.mu.Unlock()
	return analysis, nil
}

// Analyze re-runs the analysis of a stored CV, replacing the cached one.
func (m *CVManager) Analyze(ctx context.Context, id string) (string, error) {
	if strings.TrimSpace(id) == "" {
		return "", invalid("cv", "Selecione um currículo.")
	}
	cv, err := m.Get(ctx, id)
	if err != nil {
		return "", err
	}
	return m.analyze(ctx, cv)
}

// Analysis returns the cached analysis of a CV.
func (m *CVManager) Analysis(id string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.analyses[id]
	return a, ok
}

// ShareLayouts makes suggestions produced by Add available to l.Apply.
func (m *CVManager) ShareLayouts(l *Layouts) {
	m.layouts = l
}

// Status reports the add and analyze actions.
func (m *CVManager) Status() map[string]Status {
	return map[string]Status{
		"add":     m.adding.Status(),
		"analyze": m.analyzing.Status(),
	}
}

// Delete removes a CV and its cached analysis. History is not touched.
func (m *CVManager) Delete(ctx context.Context, id string) error {
	found := false
	if _, err := store.Update(ctx, m.env.Store, store.KeyCVs, []types.CV{}, func(cvs []types.CV) ([]types.CV, error) {
		kept := cvs[:0]
		for _, cv := range cvs {
			if cv.ID == id {
				found = true
				continue
			}
			kept = append(kept, cv)
		}
		return kept, nil
	}); err != nil {
		return err
	}
	if !found {
		return notFound("cv", id)
	}

	m.mu.Lock()
	delete(m.analyses, id)
	m.mu.Unlock()
	return nil
}

// Import extracts the text of an uploaded PDF, DOCX or text file. On failure
// the content is left empty so the user can paste the text instead.
func (m *CVManager) Import(filename string, data []byte) (ImportedCV, error) {
	name := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	text, prov, err := ingestion.ParseDocument(filename, data, m.env.Now())
	if err != nil {
		return ImportedCV{Name: name}, err
	}
	m.env.Logger.Debug("cv imported", zap.String("file", filename), zap.Int("chars", prov.Chars), zap.String("fingerprint", prov.Fingerprint()))
	return ImportedCV{Name: name, Content: text}, nil
}

// SaveStyled stores a restructured copy of a CV as a new, first CV named
// "<name> (<layout>)" and analyzes it.
func (m *CVManager) SaveStyled(ctx context.Context, baseID, layoutName, content string) (*SavedCV, error) {
	if strings.TrimSpace(content) == "" {
		return nil, invalid("content", "O conteúdo do currículo está vazio.")
	}
	base, err := m.Get(ctx, baseID)
	if err != nil {
		return nil, err
	}

	cv := types.CV{
		ID:                m.env.nextID(),
		Name:              base.Name + " (" + strings.TrimSpace(layoutName) + ")",
		Content:           content,
		YearsOfExperience: base.YearsOfExperience,
		PortfolioLinks:    base.PortfolioLinks,
	}
	if _, err := store.Update(ctx, m.env.Store, store.KeyCVs, []types.CV{}, func(cvs []types.CV) ([]types.CV, error) {
		return append([]types.CV{cv}, cvs...), nil
	}); err != nil {
		return nil, err
	}
	return m.followUp(ctx, cv, false), nil
}

// suggestLayouts asks for layout archetypes and gives each a fresh id.
func suggestLayouts(ctx context.Context, env Env) ([]types.CVLayout, error) {
	layouts, err := env.Generator.GenerateCVLayoutSuggestions(ctx)
	if err != nil {
		return nil, err
	}
	for i := range layouts {
		layouts[i].ID = uuid.NewString()
	}
	return layouts, nil
}
