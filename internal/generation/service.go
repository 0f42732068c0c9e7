// Package generation turns domain requests into calls to the generative model
// and maps every failure onto a single user-facing Error.
package generation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jonathan/jobpilot/internal/llm"
	"github.com/jonathan/jobpilot/internal/observability"
	"github.com/jonathan/jobpilot/internal/prompts"
	"github.com/jonathan/jobpilot/internal/rendering"
	"github.com/jonathan/jobpilot/internal/research"
	"github.com/jonathan/jobpilot/internal/schemas"
	"github.com/jonathan/jobpilot/internal/types"
	"go.uber.org/zap"
)

const (
	// layoutSuggestionCount is how many archetypes are requested.
	layoutSuggestionCount = 5
	// groundingResults is how many search hits ground a chat reply.
	groundingResults = 5
)

var errEmptyResponse = errors.New("empty response")

// Generator is the set of generation operations the screens depend on.
type Generator interface {
	OptimizeCV(ctx context.Context, cvText, jobDescription string) (string, error)
	GenerateCoverLetter(ctx context.Context, cvText, jobDescription string) (string, error)
	AnalyzeCV(ctx context.Context, cvText string) (string, error)
	Chat(ctx context.Context, history []types.ChatMessage) (*ChatReply, error)
	FindLeads(ctx context.Context, query LeadQuery) ([]types.Lead, error)
	GenerateCVLayoutSuggestions(ctx context.Context) ([]types.CVLayout, error)
	ApplyCVLayout(ctx context.Context, cvText string, layout types.CVLayout) (string, error)
	EnhancePhoto(ctx context.Context, data []byte, mimeType string) (*llm.Image, error)
}

// ChatReply is the advisor's answer and the web sources that grounded it.
type ChatReply struct {
	Text    string         `json:"text"`
	Sources []types.Source `json:"sources,omitempty"`
}

// Service implements Generator on top of an llm.Client.
type Service struct {
	client   llm.Client
	searcher research.Searcher
	logger   *zap.Logger

	leadsSchema   *llm.Schema
	layoutsSchema *llm.Schema
	leads         *schemas.Validator
	layouts       *schemas.Validator
}

// Option configures a Service.
type Option func(*Service)

// WithSearcher enables web-search grounding for Chat.
func WithSearcher(searcher research.Searcher) Option {
	return func(s *Service) { s.searcher = searcher }
}

// WithLogger sets the service logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// NewService creates a Service and compiles its response schemas.
func NewService(client llm.Client, opts ...Option) (*Service, error) {
	if client == nil {
		return nil, fmt.Errorf("llm client is required")
	}

	s := &Service{
		client:        client,
		logger:        zap.NewNop(),
		leadsSchema:   LeadsSchema(),
		layoutsSchema: LayoutsSchema(),
	}
	for _, opt := range opts {
		opt(s)
	}

	var err error
	if s.leads, err = compile("leads", s.leadsSchema); err != nil {
		return nil, err
	}
	if s.layouts, err = compile("layouts", s.layoutsSchema); err != nil {
		return nil, err
	}
	return s, nil
}

// LeadsSchema is the response shape of a lead search.
func LeadsSchema() *llm.Schema {
	return llm.ArrayOf(llm.Object(map[string]*llm.Schema{
		"companyName": llm.String("Nome da empresa, página, grupo ou hashtag"),
		"contactInfo": llm.String("E-mail corporativo público, URL ou hashtag"),
		"notes":       llm.String("Por que o lead é relevante"),
	}, "companyName", "contactInfo", "notes"), "Lista de leads")
}

// LayoutsSchema is the response shape of layout suggestions.
func LayoutsSchema() *llm.Schema {
	return llm.ArrayOf(llm.Object(map[string]*llm.Schema{
		"name":           llm.String("Nome curto do modelo"),
		"description":    llm.String("Quando usar o modelo"),
		"keyFeatures":    llm.ArrayOf(llm.String("Característica"), "Características da estrutura"),
		"previewContent": llm.String("Exemplo do topo do currículo"),
	}, "name", "description", "keyFeatures", "previewContent"), "Modelos de currículo")
}

func compile(name string, schema *llm.Schema) (*schemas.Validator, error) {
	doc, err := schema.JSONSchema()
	if err != nil {
		return nil, fmt.Errorf("failed to build %s schema: %w", name, err)
	}
	return schemas.Compile(name, doc)
}

// finish records metrics and logs for one operation, and wraps err as *Error.
func (s *Service) finish(op string, tier llm.ModelTier, started time.Time, err error) error {
	observability.ObserveGeneration(op, started, err)
	fields := []zap.Field{
		zap.String("operation", op),
		zap.String("model", s.client.GetModel(tier)),
		zap.Duration("duration", time.Since(started)),
	}
	if err != nil {
		s.logger.Warn("generation failed", append(fields, zap.Error(err))...)
		return newError(op, err)
	}
	s.logger.Info("generation completed", fields...)
	return nil
}

func (s *Service) generateText(ctx context.Context, op string, key prompts.Key, data map[string]string) (string, error) {
	started := time.Now()
	tier := llm.TierStandard

	text, err := func() (string, error) {
		prompt, err := prompts.Render(key, data)
		if err != nil {
			return "", err
		}
		text, err := s.client.GenerateContent(ctx, prompt, tier)
		if err != nil {
			return "", err
		}
		text = strings.TrimSpace(text)
		if text == "" {
			return "", errEmptyResponse
		}
		return text, nil
	}()

	if err := s.finish(op, tier, started, err); err != nil {
		return "", err
	}
	return text, nil
}

// OptimizeCV rewrites cvText for jobDescription and returns the résumé text only.
func (s *Service) OptimizeCV(ctx context.Context, cvText, jobDescription string) (string, error) {
	return s.generateText(ctx, OpOptimizeCV, prompts.OptimizeCV, map[string]string{
		"CV":             cvText,
		"JobDescription": jobDescription,
	})
}

// GenerateCoverLetter writes a cover letter for jobDescription based on cvText.
func (s *Service) GenerateCoverLetter(ctx context.Context, cvText, jobDescription string) (string, error) {
	return s.generateText(ctx, OpCoverLetter, prompts.CoverLetter, map[string]string{
		"CV":             cvText,
		"JobDescription": jobDescription,
	})
}

// AnalyzeCV returns a Markdown critique of cvText.
func (s *Service) AnalyzeCV(ctx context.Context, cvText string) (string, error) {
	return s.generateText(ctx, OpAnalyzeCV, prompts.AnalyzeCV, map[string]string{"CV": cvText})
}

// ApplyCVLayout restructures cvText to follow layout, wrapping headings in
// rendering.HeadingMarker.
func (s *Service) ApplyCVLayout(ctx context.Context, cvText string, layout types.CVLayout) (string, error) {
	features := make([]string, 0, len(layout.KeyFeatures))
	for _, f := range layout.KeyFeatures {
		features = append(features, "- "+f)
	}
	return s.generateText(ctx, OpApplyLayout, prompts.ApplyLayout, map[string]string{
		"LayoutName":        layout.Name,
		"LayoutDescription": layout.Description,
		"KeyFeatures":       strings.Join(features, "\n"),
		"Marker":            rendering.HeadingMarker,
		"CV":                cvText,
	})
}

// generateJSON requests a schema-constrained response, validates it and
// decodes it into out.
func (s *Service) generateJSON(ctx context.Context, prompt string, schema *llm.Schema, validator *schemas.Validator, out any) error {
	raw, err := s.client.GenerateJSON(ctx, prompt, schema, llm.TierStandard)
	if err != nil {
		return err
	}
	if strings.TrimSpace(raw) == "" {
		return errEmptyResponse
	}
	if err := validator.Validate(raw); err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", validator.Name(), err)
	}
	return nil
}

// FindLeads searches for companies or social sources hiring for the query.
func (s *Service) FindLeads(ctx context.Context, query LeadQuery) ([]types.Lead, error) {
	started := time.Now()

	leads, err := func() ([]types.Lead, error) {
		if strings.TrimSpace(query.JobTitle) == "" {
			return nil, fmt.Errorf("job title is required")
		}
		prompt, err := prompts.Render(query.promptKey(), query.promptData())
		if err != nil {
			return nil, err
		}
		leads := []types.Lead{}
		if err := s.generateJSON(ctx, prompt, s.leadsSchema, s.leads, &leads); err != nil {
			return nil, err
		}
		return leads, nil
	}()

	if err := s.finish(OpFindLeads, llm.TierStandard, started, err); err != nil {
		return nil, err
	}
	return leads, nil
}

// GenerateCVLayoutSuggestions returns distinct layout archetypes without ids.
func (s *Service) GenerateCVLayoutSuggestions(ctx context.Context) ([]types.CVLayout, error) {
	started := time.Now()

	layouts, err := func() ([]types.CVLayout, error) {
		prompt, err := prompts.Render(prompts.LayoutSuggestions, map[string]string{
			"Count": strconv.Itoa(layoutSuggestionCount),
		})
		if err != nil {
			return nil, err
		}
		var layouts []types.CVLayout
		if err := s.generateJSON(ctx, prompt, s.layoutsSchema, s.layouts, &layouts); err != nil {
			return nil, err
		}
		if len(layouts) == 0 {
			return nil, errEmptyResponse
		}
		return layouts, nil
	}()

	if err := s.finish(OpLayoutSuggestion, llm.TierStandard, started, err); err != nil {
		return nil, err
	}
	return layouts, nil
}

// Chat answers the latest user message as a senior HR advisor. Leading model
// turns (the welcome message) are not sent.
func (s *Service) Chat(ctx context.Context, history []types.ChatMessage) (*ChatReply, error) {
	started := time.Now()
	tier := llm.TierAdvanced

	reply, err := func() (*ChatReply, error) {
		msgs := make([]llm.Message, 0, len(history))
		for _, m := range history {
			if len(msgs) == 0 && m.Role != types.RoleUser {
				continue
			}
			msgs = append(msgs, llm.Message{Role: llm.Role(m.Role), Text: m.Text})
		}
		if len(msgs) == 0 {
			return nil, fmt.Errorf("chat history has no user message")
		}
		last := msgs[len(msgs)-1]
		if last.Role != llm.RoleUser {
			return nil, fmt.Errorf("last chat message must come from the user")
		}

		system, err := prompts.Get(prompts.ChatSystem)
		if err != nil {
			return nil, err
		}

		var sources []types.Source
		if results := s.ground(ctx, last.Text); len(results) > 0 {
			grounding, err := prompts.Render(prompts.ChatGrounding, map[string]string{
				"Results": research.FormatResults(results),
			})
			if err != nil {
				return nil, err
			}
			system += "\n\n" + grounding
			for _, r := range results {
				sources = append(sources, types.Source{URI: r.Link, Title: r.Title})
			}
		}

		resp, err := s.client.Chat(ctx, llm.ChatRequest{System: system, History: msgs, Tier: tier})
		if err != nil {
			return nil, err
		}
		text := strings.TrimSpace(resp.Text)
		if text == "" {
			return nil, errEmptyResponse
		}
		return &ChatReply{Text: text, Sources: mergeCitations(sources, resp.Citations)}, nil
	}()

	if err := s.finish(OpChat, tier, started, err); err != nil {
		return nil, err
	}
	return reply, nil
}

// ground runs the optional web search. Search failures only drop grounding.
func (s *Service) ground(ctx context.Context, question string) []research.Result {
	if s.searcher == nil {
		return nil
	}
	query := research.Query(question)
	if query == "" {
		return nil
	}
	results, err := s.searcher.Search(ctx, query, groundingResults)
	if err != nil {
		s.logger.Warn("chat grounding search failed", zap.Error(err))
		return nil
	}
	return results
}

func mergeCitations(sources []types.Source, citations []string) []types.Source {
	seen := make(map[string]bool, len(sources))
	for _, src := range sources {
		seen[src.URI] = true
	}
	for _, uri := range citations {
		if seen[uri] {
			continue
		}
		seen[uri] = true
		sources = append(sources, types.Source{URI: uri, Title: uri})
	}
	return sources
}

// EnhancePhoto returns a professionally retouched version of the image.
func (s *Service) EnhancePhoto(ctx context.Context, data []byte, mimeType string) (*llm.Image, error) {
	started := time.Now()
	tier := llm.TierImage

	img, err := func() (*llm.Image, error) {
		instruction, err := prompts.Get(prompts.EnhancePhoto)
		if err != nil {
			return nil, err
		}
		return s.client.EditImage(ctx, instruction, llm.Image{MIMEType: mimeType, Data: data}, tier)
	}()

	if err := s.finish(OpEnhancePhoto, tier, started, err); err != nil {
		return nil, err
	}
	return img, nil
}
