package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogueHasEveryKey(t *testing.T) {
	for _, key := range Keys {
		prompt, err := Get(key)
		require.NoError(t, err, key)
		assert.NotEmpty(t, prompt, key)
	}
}

func TestGet_UnknownKey(t *testing.T) {
	_, err := Get("salary-negotiation")
	assert.ErrorContains(t, err, "unknown prompt")
}

func TestPlaceholders(t *testing.T) {
	tests := []struct {
		key  Key
		want []string
	}{
		{OptimizeCV, []string{"CV", "JobDescription"}},
		{AnalyzeCV, []string{"CV"}},
		{ChatSystem, nil},
		{FindLeadsSocial, []string{"JobTitle", "JobTypeClause", "LocationClause", "SkillsClause"}},
		{ApplyLayout, []string{"CV", "KeyFeatures", "LayoutDescription", "LayoutName", "Marker"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			got, err := Placeholders(tt.key)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRender_ApplyLayout(t *testing.T) {
	out, err := Render(ApplyLayout, map[string]string{
		"LayoutName":        "Funcional",
		"LayoutDescription": "Foco em habilidades",
		"KeyFeatures":       "- Habilidades primeiro",
		"Marker":            "**",
		"CV":                "Ana Souza",
	})
	require.NoError(t, err)
	assert.Contains(t, out, "Funcional")
	assert.Contains(t, out, "**Experiência Profissional**")
	assert.NotContains(t, out, "{{.")
}

func TestRender_EmptyValuesAllowed(t *testing.T) {
	out, err := Render(FindLeadsCompanies, map[string]string{
		"JobTitle":       "Dev Go",
		"LocationClause": "",
		"JobTypeClause":  "",
		"SkillsClause":   "",
	})
	require.NoError(t, err)
	assert.Contains(t, out, "Dev Go")
	assert.NotContains(t, out, "{{.")
}

func TestRender_MissingField(t *testing.T) {
	_, err := Render(CoverLetter, map[string]string{"CV": "Ana"})
	assert.ErrorContains(t, err, `prompt "cover-letter" needs JobDescription`)
}

func TestRender_ValuesAreNotReexpanded(t *testing.T) {
	out, err := Render(OptimizeCV, map[string]string{
		"CV":             "{{.JobDescription}}",
		"JobDescription": "vaga",
	})
	require.NoError(t, err)
	assert.Contains(t, out, "{{.JobDescription}}")
}

func TestParseCatalogue(t *testing.T) {
	_, err := parseCatalogue([]byte(`{"optimize-cv": "x"}`))
	assert.ErrorContains(t, err, "missing")

	_, err = parseCatalogue([]byte(`[`))
	assert.ErrorContains(t, err, "failed to parse prompt catalogue")
}
