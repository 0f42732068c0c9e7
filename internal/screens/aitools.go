package screens

import (
	"context"
	"strings"
	"sync"

	"github.com/jonathan/jobpilot/internal/fetch"
	"github.com/jonathan/jobpilot/internal/ingestion"
	"github.com/jonathan/jobpilot/internal/store"
	"github.com/jonathan/jobpilot/internal/types"
	"go.uber.org/zap"
)

// Tool selects what the AI tools screen generates.
type Tool string

const (
	ToolOptimize    Tool = "optimize"
	ToolCoverLetter Tool = "cover-letter"
)

// GenerationType is the history label of the tool.
func (t Tool) GenerationType() (types.GenerationType, bool) {
	switch t {
	case ToolOptimize:
		return types.GenerationCVOptimization, true
	case ToolCoverLetter:
		return types.GenerationCoverLetter, true
	default:
		return "", false
	}
}

// AITools optimizes CVs and writes cover letters for a job description.
type AITools struct {
	env      Env
	fetchOpt ingestion.URLOptions

	running  Action
	fetching Action

	mu     sync.RWMutex
	result *types.GenerationRecord
}

// NewAITools creates the AI tools controller. urlOpts configures job
// description fetching from posting URLs.
func NewAITools(env Env, urlOpts ingestion.URLOptions) *AITools {
	env = env.withDefaults()
	if urlOpts.Logger == nil {
		urlOpts.Logger = env.Logger
	}
	if urlOpts.Now == nil {
		urlOpts.Now = env.Now
	}
	return &AITools{env: env, fetchOpt: urlOpts}
}

// Run generates with tool for the selected CV. On success the record is
// added to history; on failure history is unchanged.
func (a *AITools) Run(ctx context.Context, tool Tool, cvID, jobDescription string) (*types.GenerationRecord, error) {
	kind, ok := tool.GenerationType()
	if !ok {
		return nil, invalid("tool", "Ferramenta desconhecida.")
	}
	if strings.TrimSpace(cvID) == "" || strings.TrimSpace(jobDescription) == "" {
		return nil, invalid("input", "Por favor, selecione um currículo e forneça a descrição da vaga.")
	}
	cv, ok := types.FindCV(store.Get(ctx, a.env.Store, store.KeyCVs, []types.CV{}), cvID)
	if !ok {
		return nil, invalid("cv", "Currículo selecionado não encontrado.")
	}

	var rec *types.GenerationRecord
	err := a.running.Run(func() error {
		a.setResult(nil)

		var (
			output string
			err    error
		)
		switch tool {
		case ToolOptimize:
			output, err = a.env.Generator.OptimizeCV(ctx, cv.Content, jobDescription)
		case ToolCoverLetter:
			output, err = a.env.Generator.GenerateCoverLetter(ctx, cv.Content, jobDescription)
		}
		if err != nil {
			return err
		}

		rec = &types.GenerationRecord{
			ID:                  a.env.nextID(),
			Type:                kind,
			InputCV:             cv.Content,
			InputJobDescription: jobDescription,
			Output:              output,
			Timestamp:           a.env.timestamp(),
		}
		if err := prependHistory(ctx, a.env.Store, types.NewGenerationItem(*rec)); err != nil {
			return err
		}
		a.setResult(rec)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (a *AITools) setResult(rec *types.GenerationRecord) {
	a.mu.Lock()
	a.result = rec
	a.mu.Unlock()
}

// Result returns the last successful generation, if any.
func (a *AITools) Result() (*types.GenerationRecord, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.result, a.result != nil
}

// Status reports the generate action.
func (a *AITools) Status() Status {
	return a.running.Status()
}

// JobDescriptionFromURL fetches a job posting and returns its description text.
func (a *AITools) JobDescriptionFromURL(ctx context.Context, url string) (string, error) {
	if err := fetch.ValidateURL(url); err != nil {
		return "", invalid("url", "Informe uma URL de vaga válida (http ou https).")
	}

	var text string
	err := a.fetching.Run(func() error {
		var (
			prov *ingestion.Provenance
			err  error
		)
		text, prov, err = ingestion.IngestFromURL(ctx, url, a.fetchOpt)
		if err != nil {
			return err
		}
		a.env.Logger.Info("job description fetched", zap.Stringer("source", prov))
		return nil
	})
	return text, err
}
