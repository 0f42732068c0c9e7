package screens

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jonathan/jobpilot/internal/generation"
	"github.com/jonathan/jobpilot/internal/ingestion"
	"github.com/jonathan/jobpilot/internal/store"
	"github.com/jonathan/jobpilot/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestAITools_Run_PrependsHistory(t *testing.T) {
	gen := &fakeGenerator{text: "CV otimizado"}
	env := newTestEnv(t, gen)
	seedCVs(t, env, types.CV{ID: "cv-1", Name: "A", Content: "meu cv"})
	tools := NewAITools(env, ingestion.URLOptions{})
	ctx := context.Background()

	first, err := tools.Run(ctx, ToolOptimize, "cv-1", "vaga de Go")
	require.NoError(t, err)
	assert.Equal(t, types.GenerationCVOptimization, first.Type)
	assert.Equal(t, "meu cv", first.InputCV)
	assert.Equal(t, "vaga de Go", first.InputJobDescription)
	assert.Equal(t, "CV otimizado", first.Output)
	assert.Equal(t, "2024-06-01T09:30:00Z", first.Timestamp)

	gen.text = "Carta"
	second, err := tools.Run(ctx, ToolCoverLetter, "cv-1", "vaga de Go")
	require.NoError(t, err)
	assert.Equal(t, types.GenerationCoverLetter, second.Type)

	history := NewHistory(env).List(ctx)
	require.Len(t, history, 2)
	assert.Equal(t, second.ID, history[0].ID(), "newest first")
	assert.Equal(t, first.ID, history[1].ID())

	result, ok := tools.Result()
	require.True(t, ok)
	assert.Equal(t, second, result)
	assert.Equal(t, StateSuccess, tools.Status().State)
}

func TestAITools_Run_FailureLeavesHistory(t *testing.T) {
	gen := &fakeGenerator{text: "ok"}
	env := newTestEnv(t, gen)
	seedCVs(t, env, types.CV{ID: "cv-1", Name: "A", Content: "meu cv"})
	tools := NewAITools(env, ingestion.URLOptions{})
	ctx := context.Background()

	_, err := tools.Run(ctx, ToolOptimize, "cv-1", "vaga")
	require.NoError(t, err)

	gen.textErr = &generation.Error{Op: generation.OpCoverLetter, Message: "Falha ao gerar a carta de apresentação."}
	_, err = tools.Run(ctx, ToolCoverLetter, "cv-1", "vaga")
	require.Error(t, err)

	assert.Equal(t, 1, historyLen(t, env))
	_, ok := tools.Result()
	assert.False(t, ok, "a failed run clears the previous result")

	status := tools.Status()
	assert.Equal(t, StateError, status.State)
	assert.Equal(t, "Falha ao gerar a carta de apresentação.", status.Error)
}

// historyLockedBackend refuses writes to the generation history.
type historyLockedBackend struct {
	*store.MemoryBackend
}

func (b historyLockedBackend) Save(ctx context.Context, key string, value []byte) error {
	if key == store.KeyGenerationHistory {
		return errors.New("disk full")
	}
	return b.MemoryBackend.Save(ctx, key, value)
}

func TestAITools_Run_HistoryWriteFailureKeepsNoResult(t *testing.T) {
	gen := &fakeGenerator{text: "CV otimizado"}
	env := newTestEnv(t, gen)
	env.Store = store.New(historyLockedBackend{store.NewMemoryBackend()}, zaptest.NewLogger(t))
	seedCVs(t, env, types.CV{ID: "cv-1", Name: "A", Content: "meu cv"})
	tools := NewAITools(env, ingestion.URLOptions{})
	ctx := context.Background()

	rec, err := tools.Run(ctx, ToolOptimize, "cv-1", "vaga de Go")
	require.ErrorContains(t, err, "disk full")
	assert.Nil(t, rec)

	_, ok := tools.Result()
	assert.False(t, ok)
	assert.Equal(t, StateError, tools.Status().State)
	assert.Empty(t, NewHistory(env).List(ctx))
}

func TestAITools_Run_Validation(t *testing.T) {
	gen := &fakeGenerator{}
	env := newTestEnv(t, gen)
	seedCVs(t, env, types.CV{ID: "cv-1", Name: "A", Content: "meu cv"})
	tools := NewAITools(env, ingestion.URLOptions{})

	tests := []struct {
		name    string
		tool    Tool
		cvID    string
		jd      string
		message string
	}{
		{"no cv", ToolOptimize, "", "vaga", "Por favor, selecione um currículo e forneça a descrição da vaga."},
		{"blank description", ToolOptimize, "cv-1", "  ", "Por favor, selecione um currículo e forneça a descrição da vaga."},
		{"unknown cv", ToolOptimize, "cv-9", "vaga", "Currículo selecionado não encontrado."},
		{"unknown tool", Tool("translate"), "cv-1", "vaga", "Ferramenta desconhecida."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tools.Run(context.Background(), tt.tool, tt.cvID, tt.jd)
			require.Error(t, err)
			assert.Equal(t, tt.message, UserMessage(err))
		})
	}
	assert.Empty(t, gen.Calls())
	assert.Equal(t, 0, historyLen(t, env))
}

func TestAITools_JobDescriptionFromURL_RejectsBadURL(t *testing.T) {
	tools := NewAITools(newTestEnv(t, &fakeGenerator{}), ingestion.URLOptions{})

	_, err := tools.JobDescriptionFromURL(context.Background(), "ftp://example.com/job")
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "url", vErr.Field)
}

func TestAITools_JobDescriptionFromURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(`<html><head><title>Vaga</title></head><body>
<nav>menu</nav>
<main><h1>Engenheiro Go</h1><p>Buscamos uma pessoa engenheira de software com experiência em Go, Kubernetes e PostgreSQL para atuar no time de plataforma.</p></main>
</body></html>`))
	}))
	defer srv.Close()

	tools := NewAITools(newTestEnv(t, &fakeGenerator{}), ingestion.URLOptions{})
	text, err := tools.JobDescriptionFromURL(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Contains(t, text, "experiência em Go")
}
