package screens

import (
	"bytes"
	"context"
	"testing"

	"github.com/jonathan/jobpilot/internal/generation"
	"github.com/jonathan/jobpilot/internal/ingestion"
	"github.com/jonathan/jobpilot/internal/store"
	"github.com/jonathan/jobpilot/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistory_MixedRecords(t *testing.T) {
	gen := &fakeGenerator{text: "Carta pronta", leads: threeLeads()}
	env := newTestEnv(t, gen)
	seedCVs(t, env, types.CV{ID: "cv-1", Name: "A", Content: "cv"})
	ctx := context.Background()

	rec, err := NewAITools(env, ingestion.URLOptions{}).Run(ctx, ToolCoverLetter, "cv-1", "vaga")
	require.NoError(t, err)

	finder := NewLeadFinder(env, types.DefaultEmailPolicy())
	_, err = finder.Search(ctx, generation.LeadQuery{JobTitle: "Dev"})
	require.NoError(t, err)
	_, err = finder.SaveToHistory(ctx)
	require.NoError(t, err)

	h := NewHistory(env)
	items := h.List(ctx)
	require.Len(t, items, 2)
	assert.Equal(t, types.HistoryKindLeadSearch, items[0].Kind)
	assert.Equal(t, types.HistoryKindGeneration, items[1].Kind)

	got, err := h.Get(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "Carta pronta", got.Generation.Output)

	_, err = h.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	var all bytes.Buffer
	require.NoError(t, h.ExportText(ctx, &all))
	assert.Contains(t, all.String(), "Carta pronta")
	assert.Contains(t, all.String(), "Acme")

	var one bytes.Buffer
	require.NoError(t, h.ExportItemText(ctx, rec.ID, &one))
	assert.Contains(t, one.String(), "Carta pronta")
	assert.NotContains(t, one.String(), "Acme")
}

func TestHistory_UnreadableEntrySurvivesNewRecords(t *testing.T) {
	gen := &fakeGenerator{text: "CV otimizado"}
	env := newTestEnv(t, gen)
	backend := store.NewMemoryBackend()
	env.Store = store.New(backend, nil)
	seedCVs(t, env, types.CV{ID: "cv-1", Name: "A", Content: "cv"})
	ctx := context.Background()
	require.NoError(t, backend.Save(ctx, store.KeyGenerationHistory, []byte(
		`[{"kind":"photo","id":"p1"},{"kind":"generation","id":"g1","type":"Carta de Apresentação","output":"antiga","timestamp":"t1"}]`)))

	h := NewHistory(env)
	items := h.List(ctx)
	require.Len(t, items, 1)
	assert.Equal(t, "g1", items[0].ID())

	rec, err := NewAITools(env, ingestion.URLOptions{}).Run(ctx, ToolOptimize, "cv-1", "vaga")
	require.NoError(t, err)

	items = h.List(ctx)
	require.Len(t, items, 2)
	assert.Equal(t, rec.ID, items[0].ID())
	assert.Equal(t, "g1", items[1].ID())

	raw, ok, err := backend.Load(ctx, store.KeyGenerationHistory)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Contains(t, string(raw), `"p1"`)
}

func TestNewApp(t *testing.T) {
	app := NewApp(Env{Store: newTestEnv(t, &fakeGenerator{}).Store, Generator: &fakeGenerator{}}, Options{})

	assert.NotNil(t, app.CVs)
	assert.NotNil(t, app.Tools)
	assert.NotNil(t, app.Dashboard)
	assert.NotNil(t, app.Leads)
	assert.NotNil(t, app.Studio)
	assert.NotNil(t, app.Layouts)
	assert.NotNil(t, app.Photo)
	assert.NotNil(t, app.History)
	assert.NotNil(t, app.Settings)
	assert.Equal(t, StateIdle, app.Leads.Status().State)
}
