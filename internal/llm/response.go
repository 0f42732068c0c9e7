package llm

import (
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
)

// extractTextFromResponse joins the text parts of the first candidate.
func extractTextFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	candidate, err := firstCandidate(resp)
	if err != nil {
		return "", err
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}

	if len(parts) == 0 {
		return "", fmt.Errorf("no text parts in response")
	}

	return strings.Join(parts, ""), nil
}

// extractImageFromResponse returns the first inline image part of the first candidate.
func extractImageFromResponse(resp *genai.GenerateContentResponse) (*Image, error) {
	candidate, err := firstCandidate(resp)
	if err != nil {
		return nil, err
	}

	for _, part := range candidate.Content.Parts {
		if blob, ok := part.(genai.Blob); ok && strings.HasPrefix(blob.MIMEType, "image/") && len(blob.Data) > 0 {
			return &Image{MIMEType: blob.MIMEType, Data: blob.Data}, nil
		}
	}
	return nil, ErrNoImage
}

// extractCitations returns the distinct citation URIs of the first candidate.
func extractCitations(resp *genai.GenerateContentResponse) []string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].CitationMetadata == nil {
		return nil
	}

	seen := make(map[string]bool)
	var uris []string
	for _, src := range resp.Candidates[0].CitationMetadata.CitationSources {
		if src == nil || src.URI == nil || *src.URI == "" || seen[*src.URI] {
			continue
		}
		seen[*src.URI] = true
		uris = append(uris, *src.URI)
	}
	return uris
}

func firstCandidate(resp *genai.GenerateContentResponse) (*genai.Candidate, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil, fmt.Errorf("no candidates in response")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return nil, fmt.Errorf("no content in response")
	}
	return candidate, nil
}

// CleanJSONBlock removes markdown code fences the model sometimes wraps
// around JSON even when a JSON response type was requested.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}

	text = strings.TrimPrefix(text, "```")
	// Drop a language tag such as "json" on the opening fence line.
	if idx := strings.Index(text, "\n"); idx >= 0 {
		tag := text[:idx]
		if len(tag) < 20 && !strings.ContainsAny(tag, " {[") {
			text = text[idx+1:]
		}
	}
	if idx := strings.LastIndex(text, "```"); idx >= 0 {
		text = text[:idx]
	}
	return strings.TrimSpace(text)
}
