package llm

import (
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanJSONBlock(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "json code block",
			input:    "```json\n{\"key\": \"value\"}\n```",
			expected: `{"key": "value"}`,
		},
		{
			name:     "generic code block",
			input:    "```\n[1, 2]\n```",
			expected: `[1, 2]`,
		},
		{
			name:     "code block with language",
			input:    "```javascript\n{\"key\": \"value\"}\n```",
			expected: `{"key": "value"}`,
		},
		{
			name:     "plain JSON",
			input:    `  {"key": "value"} `,
			expected: `{"key": "value"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanJSONBlock(tt.input))
		})
	}
}

func response(parts ...genai.Part) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: &genai.Content{Role: "model", Parts: parts}}},
	}
}

func TestExtractTextFromResponse(t *testing.T) {
	text, err := extractTextFromResponse(response(genai.Text("Hello, "), genai.Text("world")))
	require.NoError(t, err)
	assert.Equal(t, "Hello, world", text)

	_, err = extractTextFromResponse(&genai.GenerateContentResponse{})
	assert.Error(t, err)

	_, err = extractTextFromResponse(response(genai.Blob{MIMEType: "image/png", Data: []byte{1}}))
	assert.Error(t, err)
}

func TestExtractImageFromResponse(t *testing.T) {
	img, err := extractImageFromResponse(response(
		genai.Text("here is your photo"),
		genai.Blob{MIMEType: "image/png", Data: []byte{1, 2, 3}},
	))
	require.NoError(t, err)
	assert.Equal(t, "image/png", img.MIMEType)
	assert.Equal(t, []byte{1, 2, 3}, img.Data)

	_, err = extractImageFromResponse(response(genai.Text("sorry, no image")))
	assert.ErrorIs(t, err, ErrNoImage)
}

func TestExtractCitations(t *testing.T) {
	a, b := "https://a.example", "https://b.example"
	resp := response(genai.Text("x"))
	resp.Candidates[0].CitationMetadata = &genai.CitationMetadata{
		CitationSources: []*genai.CitationSource{{URI: &a}, {URI: &b}, {URI: &a}, {}},
	}

	assert.Equal(t, []string{a, b}, extractCitations(resp))
	assert.Nil(t, extractCitations(response(genai.Text("x"))))
}
