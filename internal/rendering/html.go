package rendering

import (
	"bytes"
	"embed"
	"html/template"

	"github.com/jonathan/jobpilot/internal/theme"
)

//go:embed templates/cv.html.tmpl
var templateFS embed.FS

var cvTemplate = template.Must(template.ParseFS(templateFS, "templates/cv.html.tmpl"))

// section groups consecutive bullets into one list for the template.
type section struct {
	Kind  string
	Text  string
	Items []string
}

type htmlData struct {
	Title    string
	Palette  theme.Palette
	Sections []section
}

func sections(blocks []Block) []section {
	var out []section
	for _, b := range blocks {
		if b.Kind == BlockBullet {
			if n := len(out); n > 0 && out[n-1].Kind == "list" {
				out[n-1].Items = append(out[n-1].Items, b.Text)
				continue
			}
			out = append(out, section{Kind: "list", Items: []string{b.Text}})
			continue
		}
		out = append(out, section{Kind: string(b.Kind), Text: b.Text})
	}
	return out
}

// RenderHTML renders restructured text as a standalone, printable HTML page.
func RenderHTML(title, text string, palette theme.Palette) (string, error) {
	blocks := Parse(text)
	if len(blocks) == 0 {
		return "", &RenderError{Stage: StageHTML, Message: "nothing to render"}
	}

	var buf bytes.Buffer
	if err := cvTemplate.Execute(&buf, htmlData{Title: title, Palette: palette, Sections: sections(blocks)}); err != nil {
		return "", &RenderError{Stage: StageHTML, Message: "failed to execute template", Cause: err}
	}
	return buf.String(), nil
}
