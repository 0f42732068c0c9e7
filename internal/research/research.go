// Package research runs web searches whose results ground the advisor chat.
package research

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"google.golang.org/api/customsearch/v1"
	"google.golang.org/api/option"
)

// maxQueryRunes bounds the query built from a chat message.
const maxQueryRunes = 256

// Result is one web search hit.
type Result struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}

// Searcher looks up web pages for a query.
type Searcher interface {
	Search(ctx context.Context, query string, limit int) ([]Result, error)
}

// GoogleSearcher searches through the Google Custom Search API
type GoogleSearcher struct {
	svc *customsearch.Service
	cx  string
}

// NewGoogleSearcher creates a searcher bound to a programmable search engine id
func NewGoogleSearcher(ctx context.Context, apiKey, cx string, opts ...option.ClientOption) (*GoogleSearcher, error) {
	if apiKey == "" || cx == "" {
		return nil, fmt.Errorf("search API key and engine id are required")
	}

	opts = append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	svc, err := customsearch.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create customsearch service: %w", err)
	}
	return &GoogleSearcher{
		svc: svc,
		cx:  cx,
	}, nil
}

// Search returns up to limit results with duplicate links removed
func (s *GoogleSearcher) Search(ctx context.Context, query string, limit int) ([]Result, error) {
	query = Query(query)
	if query == "" {
		return nil, nil
	}
	// The API serves at most 10 results per request.
	if limit <= 0 || limit > 10 {
		limit = 10
	}

	resp, err := s.svc.Cse.List().Cx(s.cx).Q(query).Num(int64(limit)).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	seen := make(map[string]bool)
	results := make([]Result, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item == nil || item.Link == "" || seen[item.Link] {
			continue
		}
		seen[item.Link] = true
		results = append(results, Result{
			Title:   strings.TrimSpace(item.Title),
			Link:    item.Link,
			Snippet: strings.TrimSpace(item.Snippet),
		})
	}
	return results, nil
}

// Query turns free text into a single-line search query of bounded length
func Query(text string) string {
	query := strings.Join(strings.Fields(text), " ")
	if utf8.RuneCountInString(query) <= maxQueryRunes {
		return query
	}
	runes := []rune(query)[:maxQueryRunes]
	if idx := strings.LastIndex(string(runes), " "); idx > 0 {
		return string(runes)[:idx]
	}
	return string(runes)
}

// FormatResults renders results as a numbered list for inclusion in a prompt
func FormatResults(results []Result) string {
	var sb strings.Builder
	for i, r := range results {
		sb.WriteString(fmt.Sprintf("[%d] %s\n%s\n", i+1, r.Title, r.Link))
		if r.Snippet != "" {
			sb.WriteString(r.Snippet)
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}
	return strings.TrimSpace(sb.String())
}
