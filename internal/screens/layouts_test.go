package screens

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/jonathan/jobpilot/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPrinter struct {
	html string
	err  error
}

func (p *recordingPrinter) print(_ context.Context, html string) ([]byte, error) {
	p.html = html
	if p.err != nil {
		return nil, p.err
	}
	return []byte("%PDF-1.4 fake"), nil
}

func TestLayouts_SuggestApplyExport(t *testing.T) {
	gen := &fakeGenerator{
		layouts: []types.CVLayout{{Name: "Executivo Moderno"}, {Name: "Técnico"}},
		text:    "**EXPERIÊNCIA**\n- Liderou migração\n\nTexto livre",
	}
	env := newTestEnv(t, gen)
	seedCVs(t, env, types.CV{ID: "cv-1", Name: "A", Content: "original"})
	printer := &recordingPrinter{}
	l := NewLayouts(env, printer.print)
	ctx := context.Background()

	_, err := l.ExportPDF(ctx, &bytes.Buffer{})
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr, "nothing to export before apply")

	layouts, err := l.Suggest(ctx)
	require.NoError(t, err)
	require.Len(t, layouts, 2)
	assert.NotEmpty(t, layouts[0].ID)
	assert.Equal(t, layouts, l.Suggestions())

	r, err := l.Apply(ctx, layouts[0].ID, "cv-1")
	require.NoError(t, err)
	assert.Equal(t, "cv-1", r.CVID)
	assert.Equal(t, "Executivo Moderno", r.Layout.Name)
	assert.Equal(t, "original", gen.appliedCV)

	var pdf bytes.Buffer
	name, err := l.ExportPDF(ctx, &pdf)
	require.NoError(t, err)
	assert.Equal(t, "Executivo_Moderno_reestruturado.pdf", name)
	assert.Equal(t, "%PDF-1.4 fake", pdf.String())
	assert.Contains(t, printer.html, "EXPERIÊNCIA")
	assert.Contains(t, printer.html, "Liderou migração")

	var txt bytes.Buffer
	name, err = l.ExportText(&txt)
	require.NoError(t, err)
	assert.Equal(t, "Executivo_Moderno_reestruturado.txt", name)
	assert.Contains(t, txt.String(), "EXPERIÊNCIA")
	assert.NotContains(t, txt.String(), "**")
}

func TestLayouts_Apply_Validation(t *testing.T) {
	gen := &fakeGenerator{layouts: []types.CVLayout{{Name: "Clássico"}}}
	env := newTestEnv(t, gen)
	seedCVs(t, env, types.CV{ID: "cv-1", Name: "A", Content: "original"})
	l := NewLayouts(env, (&recordingPrinter{}).print)
	ctx := context.Background()

	layouts, err := l.Suggest(ctx)
	require.NoError(t, err)

	_, err = l.Apply(ctx, layouts[0].ID, "")
	assert.Equal(t, "Selecione um currículo para aplicar o layout.", UserMessage(err))

	_, err = l.Apply(ctx, layouts[0].ID, "cv-9")
	assert.Equal(t, "Currículo não encontrado.", UserMessage(err))

	_, err = l.Apply(ctx, "unknown-layout", "cv-1")
	var vErr *ValidationError
	assert.ErrorAs(t, err, &vErr)

	_, ok := l.Current()
	assert.False(t, ok)
}

func TestLayouts_ExportPDF_PrinterFailure(t *testing.T) {
	gen := &fakeGenerator{layouts: []types.CVLayout{{Name: "Clássico"}}, text: "conteúdo"}
	env := newTestEnv(t, gen)
	seedCVs(t, env, types.CV{ID: "cv-1", Name: "A", Content: "original"})
	printer := &recordingPrinter{err: errors.New("chrome not found")}
	l := NewLayouts(env, printer.print)
	ctx := context.Background()

	layouts, err := l.Suggest(ctx)
	require.NoError(t, err)
	_, err = l.Apply(ctx, layouts[0].ID, "cv-1")
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = l.ExportPDF(ctx, &buf)
	require.Error(t, err)
	assert.Zero(t, buf.Len())
}

func TestLayouts_Suggest_ResetsPrevious(t *testing.T) {
	gen := &fakeGenerator{layouts: []types.CVLayout{{Name: "Clássico"}}, text: "conteúdo"}
	env := newTestEnv(t, gen)
	seedCVs(t, env, types.CV{ID: "cv-1", Name: "A", Content: "original"})
	l := NewLayouts(env, (&recordingPrinter{}).print)
	ctx := context.Background()

	layouts, err := l.Suggest(ctx)
	require.NoError(t, err)
	_, err = l.Apply(ctx, layouts[0].ID, "cv-1")
	require.NoError(t, err)

	gen.layoutsErr = genErr("layout_suggestions")
	_, err = l.Suggest(ctx)
	require.Error(t, err)

	assert.Empty(t, l.Suggestions())
	_, ok := l.Current()
	assert.False(t, ok)
	assert.Equal(t, StateError, l.Status()["suggest"].State)
}
