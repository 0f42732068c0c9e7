package rendering

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/jonathan/jobpilot/internal/theme"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderHTML(t *testing.T) {
	palette := theme.PaletteFor(theme.Light)

	html, err := RenderHTML("Funcional", "Ana <Dev>\n**Habilidades**\n- Go\n- SQL\n\nOutro", palette)

	require.NoError(t, err)
	assert.Contains(t, html, "<title>Funcional</title>")
	assert.Contains(t, html, "<p>Ana &lt;Dev&gt;</p>")
	assert.Contains(t, html, "<h2>Habilidades</h2>")
	assert.Contains(t, html, "<li>Go</li>")
	assert.Contains(t, html, "<li>SQL</li>")
	assert.Equal(t, 1, strings.Count(html, "<ul>"))
	assert.Contains(t, html, `class="spacer"`)
	assert.Contains(t, html, palette.Primary)
}

func TestRenderHTML_Empty(t *testing.T) {
	_, err := RenderHTML("x", "  \n", theme.PaletteFor(theme.Dark))

	var renderErr *RenderError
	require.True(t, errors.As(err, &renderErr))
	assert.Equal(t, StageHTML, renderErr.Stage)
	assert.Equal(t, "html export: nothing to render", err.Error())
}

func TestPrintPDF(t *testing.T) {
	if os.Getenv("JOBPILOT_TEST_CHROME") == "" {
		t.Skip("JOBPILOT_TEST_CHROME not set")
	}

	html, err := RenderHTML("Teste", "**Resumo**\nTexto", theme.PaletteFor(theme.Light))
	require.NoError(t, err)

	pdf, err := PrintPDF(context.Background(), html, 0, nil)

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(pdf), "%PDF"))
}
