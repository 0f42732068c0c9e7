package screens

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"testing"

	"github.com/jonathan/jobpilot/internal/generation"
	"github.com/jonathan/jobpilot/internal/ingestion"
	"github.com/jonathan/jobpilot/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 4))))
	return buf.Bytes()
}

func TestPhoto_Enhance(t *testing.T) {
	gen := &fakeGenerator{image: &llm.Image{MIMEType: "image/png", Data: []byte("retocada")}}
	p := NewPhoto(newTestEnv(t, gen), 0)

	out, err := p.Enhance(context.Background(), "eu.png", pngBytes(t))
	require.NoError(t, err)
	assert.Equal(t, "image/png", out.MIMEType)
	assert.Equal(t, []byte("retocada"), out.Data)
	assert.Equal(t, StateSuccess, p.Status().State)
}

func TestPhoto_Enhance_RejectsBeforeCalling(t *testing.T) {
	tests := []struct {
		name     string
		maxBytes int64
		data     func(t *testing.T) []byte
	}{
		{"too large", 16, pngBytes},
		{"not an image", 0, func(*testing.T) []byte { return []byte("%PDF-1.4 not a photo") }},
		{"empty", 0, func(*testing.T) []byte { return nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &fakeGenerator{}
			p := NewPhoto(newTestEnv(t, gen), tt.maxBytes)

			_, err := p.Enhance(context.Background(), "eu.png", tt.data(t))
			var parseErr *ingestion.FileParseError
			require.ErrorAs(t, err, &parseErr)
			assert.Empty(t, gen.Calls())
		})
	}
}

func TestPhoto_Enhance_GenerationFailure(t *testing.T) {
	gen := &fakeGenerator{imageErr: genErr(generation.OpEnhancePhoto)}
	p := NewPhoto(newTestEnv(t, gen), 0)

	_, err := p.Enhance(context.Background(), "eu.png", pngBytes(t))
	require.Error(t, err)
	assert.Equal(t, "Falha simulada.", p.Status().Error)
}
