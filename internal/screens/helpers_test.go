package screens

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jonathan/jobpilot/internal/generation"
	"github.com/jonathan/jobpilot/internal/llm"
	"github.com/jonathan/jobpilot/internal/store"
	"github.com/jonathan/jobpilot/internal/types"
	"go.uber.org/zap/zaptest"
)

var fixedNow = time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC)

type fakeGenerator struct {
	mu sync.Mutex

	text        string
	textErr     error
	analysis    string
	analysisErr error
	reply       *generation.ChatReply
	chatErr     error
	leads       []types.Lead
	leadsErr    error
	layouts     []types.CVLayout
	layoutsErr  error
	image       *llm.Image
	imageErr    error

	// block, when set, makes FindLeads wait until it is closed.
	block   chan struct{}
	started chan struct{}

	calls       []string
	chatHistory []types.ChatMessage
	leadQuery   generation.LeadQuery
	appliedCV   string
	appliedTo   types.CVLayout
}

func (f *fakeGenerator) record(call string) {
	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.mu.Unlock()
}

func (f *fakeGenerator) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeGenerator) OptimizeCV(_ context.Context, _, _ string) (string, error) {
	f.record(generation.OpOptimizeCV)
	return f.text, f.textErr
}

func (f *fakeGenerator) GenerateCoverLetter(_ context.Context, _, _ string) (string, error) {
	f.record(generation.OpCoverLetter)
	return f.text, f.textErr
}

func (f *fakeGenerator) AnalyzeCV(_ context.Context, _ string) (string, error) {
	f.record(generation.OpAnalyzeCV)
	return f.analysis, f.analysisErr
}

func (f *fakeGenerator) Chat(_ context.Context, history []types.ChatMessage) (*generation.ChatReply, error) {
	f.record(generation.OpChat)
	f.mu.Lock()
	f.chatHistory = append([]types.ChatMessage(nil), history...)
	f.mu.Unlock()
	if f.chatErr != nil {
		return nil, f.chatErr
	}
	return f.reply, nil
}

func (f *fakeGenerator) FindLeads(_ context.Context, query generation.LeadQuery) ([]types.Lead, error) {
	f.record(generation.OpFindLeads)
	f.mu.Lock()
	f.leadQuery = query
	f.mu.Unlock()
	if f.started != nil {
		close(f.started)
	}
	if f.block != nil {
		<-f.block
	}
	if f.leadsErr != nil {
		return nil, f.leadsErr
	}
	return append([]types.Lead(nil), f.leads...), nil
}

func (f *fakeGenerator) GenerateCVLayoutSuggestions(_ context.Context) ([]types.CVLayout, error) {
	f.record(generation.OpLayoutSuggestion)
	if f.layoutsErr != nil {
		return nil, f.layoutsErr
	}
	return append([]types.CVLayout(nil), f.layouts...), nil
}

func (f *fakeGenerator) ApplyCVLayout(_ context.Context, cvText string, layout types.CVLayout) (string, error) {
	f.record(generation.OpApplyLayout)
	f.mu.Lock()
	f.appliedCV, f.appliedTo = cvText, layout
	f.mu.Unlock()
	return f.text, f.textErr
}

func (f *fakeGenerator) EnhancePhoto(_ context.Context, _ []byte, _ string) (*llm.Image, error) {
	f.record(generation.OpEnhancePhoto)
	return f.image, f.imageErr
}

func genErr(op string) error {
	return &generation.Error{Op: op, Message: "Falha simulada."}
}

func newTestEnv(t *testing.T, gen *fakeGenerator) Env {
	t.Helper()
	return Env{
		Store:     store.New(store.NewMemoryBackend(), zaptest.NewLogger(t)),
		Generator: gen,
		Logger:    zaptest.NewLogger(t),
		Now:       func() time.Time { return fixedNow },
		IDs:       &types.IDGenerator{},
	}
}

func seedCVs(t *testing.T, env Env, cvs ...types.CV) {
	t.Helper()
	if err := store.Set(context.Background(), env.Store, store.KeyCVs, cvs); err != nil {
		t.Fatal(err)
	}
}

func historyLen(t *testing.T, env Env) int {
	t.Helper()
	return len(loadHistory(context.Background(), env.Store))
}
