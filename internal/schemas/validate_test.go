package schemas

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const layoutsDoc = `{
	"type": "array",
	"minItems": 1,
	"items": {
		"type": "object",
		"properties": {
			"name": {"type": "string"},
			"description": {"type": "string"},
			"keyFeatures": {"type": "array", "items": {"type": "string"}}
		},
		"required": ["name", "description", "keyFeatures"]
	}
}`

func compileLayouts(t *testing.T) *Validator {
	t.Helper()
	v, err := Compile("layouts", layoutsDoc)
	require.NoError(t, err)
	return v
}

func TestValidate_Accepts(t *testing.T) {
	v := compileLayouts(t)
	assert.Equal(t, "layouts", v.Name())
	assert.NoError(t, v.Validate(`[{"name":"Cronológico","description":"Clássico","keyFeatures":["Datas à esquerda"]}]`))
}

func TestValidate_Violations(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		wantPath string
	}{
		{"missing field", `[{"name":"Funcional","description":"x"}]`, "$[0].keyFeatures"},
		{"wrong element type", `[{"name":"Funcional","description":"x","keyFeatures":[1]}]`, "$[0].keyFeatures[0]"},
		{"object at root", `{"name":"Funcional"}`, "$"},
		{"empty list", `[]`, "$"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := compileLayouts(t).Validate(tt.raw)

			var respErr *ResponseError
			require.ErrorAs(t, err, &respErr)
			assert.False(t, respErr.Malformed)
			assert.Equal(t, "layouts", respErr.Schema)
			require.NotEmpty(t, respErr.Violations)
			assert.Equal(t, tt.wantPath, respErr.Violations[0].Path)
			assert.Contains(t, err.Error(), "layouts response does not match schema: "+tt.wantPath)
		})
	}
}

func TestValidate_Malformed(t *testing.T) {
	err := compileLayouts(t).Validate(`Claro! Aqui estão os layouts: [`)

	var respErr *ResponseError
	require.ErrorAs(t, err, &respErr)
	assert.True(t, respErr.Malformed)
	assert.Contains(t, err.Error(), "layouts response is not valid JSON")
}

func TestCompile_BadDocument(t *testing.T) {
	_, err := Compile("broken", `{"type": `)

	var compileErr *CompileError
	require.ErrorAs(t, err, &compileErr)
	assert.Equal(t, "broken", compileErr.Name)
	assert.NotNil(t, errors.Unwrap(err))
}

func TestJSONPath(t *testing.T) {
	assert.Equal(t, "$", jsonPath("(root)"))
	assert.Equal(t, "$", jsonPath(""))
	assert.Equal(t, "$[2].contactInfo", jsonPath("(root).2.contactInfo"))
	assert.Equal(t, "$.items[0]", jsonPath("(root).items.0"))
}
