// Package ingestion turns uploaded documents, photos and job posting URLs into
// the plain text and image payloads the rest of the tool works with.
package ingestion

import (
	"regexp"
	"strings"
)

var (
	innerSpace     = regexp.MustCompile(`[ \t]+`)
	excessiveBlank = regexp.MustCompile(`\n{3,}`)
	bulletGlyphs   = strings.NewReplacer("• ", "- ", "· ", "- ", "▪ ", "- ", "◦ ", "- ", "● ", "- ")
)

// CleanText cleans and normalizes extracted text while preserving structure
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	// Extractors emit CRLF, form feeds between PDF pages and non-breaking spaces.
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	content = strings.ReplaceAll(content, "\f", "\n\n")
	content = strings.ReplaceAll(content, "\u00a0", " ")

	lines := strings.Split(content, "\n")
	cleanedLines := make([]string, 0, len(lines))
	for _, line := range lines {
		cleanedLines = append(cleanedLines, cleanLine(line))
	}

	result := strings.Join(cleanedLines, "\n")
	result = excessiveBlank.ReplaceAllString(result, "\n\n")
	return strings.TrimSpace(result)
}

// cleanLine trims a single line, keeping leading indentation and list markers
func cleanLine(line string) string {
	line = strings.TrimRight(line, " \t")
	trimmed := strings.TrimLeft(line, " \t")
	if trimmed == "" {
		return ""
	}

	indent := len(line) - len(trimmed)
	trimmed = bulletGlyphs.Replace(trimmed)
	if strings.HasPrefix(trimmed, "#") {
		return trimmed
	}

	trimmed = innerSpace.ReplaceAllString(trimmed, " ")
	if indent > 0 {
		return strings.Repeat(" ", indent) + trimmed
	}
	return trimmed
}
