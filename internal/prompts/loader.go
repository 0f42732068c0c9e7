// Package prompts holds the Portuguese instructions sent to Gemini. They live
// in generation.json, embedded at build time and parsed on first use.
package prompts

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"regexp"
	"slices"
	"strings"
	"sync"
)

// Key names one prompt in the catalogue.
type Key string

const (
	OptimizeCV         Key = "optimize-cv"
	CoverLetter        Key = "cover-letter"
	AnalyzeCV          Key = "analyze-cv"
	ChatSystem         Key = "chat-system"
	ChatGrounding      Key = "chat-grounding"
	FindLeadsCompanies Key = "find-leads-companies"
	FindLeadsSocial    Key = "find-leads-social"
	LayoutSuggestions  Key = "layout-suggestions"
	ApplyLayout        Key = "apply-layout"
	EnhancePhoto       Key = "enhance-photo"
)

// Keys lists every prompt the generation service depends on.
var Keys = []Key{
	OptimizeCV, CoverLetter, AnalyzeCV, ChatSystem, ChatGrounding,
	FindLeadsCompanies, FindLeadsSocial, LayoutSuggestions, ApplyLayout, EnhancePhoto,
}

//go:embed generation.json
var catalogueJSON []byte

var placeholderRe = regexp.MustCompile(`\{\{\.(\w+)\}\}`)

var catalogue = sync.OnceValues(func() (map[Key]string, error) {
	return parseCatalogue(catalogueJSON)
})

func parseCatalogue(raw []byte) (map[Key]string, error) {
	var entries map[Key]string
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse prompt catalogue: %w", err)
	}
	for _, k := range Keys {
		if strings.TrimSpace(entries[k]) == "" {
			return nil, fmt.Errorf("prompt catalogue is missing %q", k)
		}
	}
	return entries, nil
}

// Get returns the raw prompt for key.
func Get(key Key) (string, error) {
	entries, err := catalogue()
	if err != nil {
		return "", err
	}
	prompt, ok := entries[key]
	if !ok {
		return "", fmt.Errorf("unknown prompt %q", key)
	}
	return prompt, nil
}

// Placeholders returns the sorted, de-duplicated field names key expects.
func Placeholders(key Key) ([]string, error) {
	prompt, err := Get(key)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, m := range placeholderRe.FindAllStringSubmatch(prompt, -1) {
		names = append(names, m[1])
	}
	slices.Sort(names)
	return slices.Compact(names), nil
}

// Render fills every {{.Field}} of key from data. A field missing from data is
// an error; an empty value is allowed.
func Render(key Key, data map[string]string) (string, error) {
	prompt, err := Get(key)
	if err != nil {
		return "", err
	}
	var missing []string
	out := placeholderRe.ReplaceAllStringFunc(prompt, func(match string) string {
		name := placeholderRe.FindStringSubmatch(match)[1]
		value, ok := data[name]
		if !ok {
			missing = append(missing, name)
			return match
		}
		return value
	})
	if len(missing) > 0 {
		slices.Sort(missing)
		return "", fmt.Errorf("prompt %q needs %s", key, strings.Join(slices.Compact(missing), ", "))
	}
	return out, nil
}
