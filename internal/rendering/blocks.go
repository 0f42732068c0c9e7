package rendering

import (
	"regexp"
	"strings"
)

// HeadingMarker wraps section headings in restructured résumé text, e.g.
// "**Experiência Profissional**".
const HeadingMarker = "**"

// BlockKind classifies a line of restructured text.
type BlockKind string

const (
	BlockHeading   BlockKind = "heading"
	BlockBullet    BlockKind = "bullet"
	BlockParagraph BlockKind = "paragraph"
	BlockBlank     BlockKind = "blank"
)

// Block is one line of restructured text.
type Block struct {
	Kind BlockKind
	Text string
}

var (
	bulletPrefix = regexp.MustCompile(`^\s*(?:[-*•●▪]|\d+[.)])\s+`)
	inlineMarker = regexp.MustCompile(regexp.QuoteMeta(HeadingMarker) + `(.+?)` + regexp.QuoteMeta(HeadingMarker))
)

// Parse splits text into blocks. A line whose whole content is wrapped in
// HeadingMarker is a heading; consecutive blank lines collapse to one.
func Parse(text string) []Block {
	text = strings.ReplaceAll(text, "\r\n", "\n")

	var blocks []Block
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			if n := len(blocks); n > 0 && blocks[n-1].Kind != BlockBlank {
				blocks = append(blocks, Block{Kind: BlockBlank})
			}
		case isHeading(trimmed):
			inner := strings.TrimSuffix(strings.TrimPrefix(trimmed, HeadingMarker), HeadingMarker)
			blocks = append(blocks, Block{Kind: BlockHeading, Text: strings.TrimSpace(inner)})
		case bulletPrefix.MatchString(line) && !strings.HasPrefix(trimmed, HeadingMarker):
			blocks = append(blocks, Block{Kind: BlockBullet, Text: StripMarkers(bulletPrefix.ReplaceAllString(line, ""))})
		default:
			blocks = append(blocks, Block{Kind: BlockParagraph, Text: StripMarkers(trimmed)})
		}
	}

	if n := len(blocks); n > 0 && blocks[n-1].Kind == BlockBlank {
		blocks = blocks[:n-1]
	}
	return blocks
}

func isHeading(line string) bool {
	if len(line) <= 2*len(HeadingMarker) {
		return false
	}
	if !strings.HasPrefix(line, HeadingMarker) || !strings.HasSuffix(line, HeadingMarker) {
		return false
	}
	inner := line[len(HeadingMarker) : len(line)-len(HeadingMarker)]
	return strings.TrimSpace(inner) != "" && !strings.Contains(inner, HeadingMarker)
}

// StripMarkers removes heading markers, leaving the wrapped text.
func StripMarkers(text string) string {
	return inlineMarker.ReplaceAllString(text, "$1")
}

// PlainText renders restructured text without markers, for text exports.
func PlainText(text string) string {
	var sb strings.Builder
	for i, b := range Parse(text) {
		if i > 0 {
			sb.WriteString("\n")
		}
		switch b.Kind {
		case BlockHeading:
			sb.WriteString(strings.ToUpper(b.Text))
		case BlockBullet:
			sb.WriteString("- " + b.Text)
		case BlockParagraph:
			sb.WriteString(b.Text)
		case BlockBlank:
		}
	}
	return sb.String()
}

var nonFileChars = regexp.MustCompile(`\s+`)

// FileName builds the download name of a restructured CV, e.g.
// "Cronológico_Moderno_reestruturado.pdf".
func FileName(layoutName, ext string) string {
	base := nonFileChars.ReplaceAllString(strings.TrimSpace(layoutName), "_")
	if base == "" {
		base = "curriculo"
	}
	return base + "_reestruturado." + strings.TrimPrefix(ext, ".")
}
