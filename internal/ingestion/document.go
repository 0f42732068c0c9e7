package ingestion

import (
	"bytes"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"code.sajari.com/docconv"
)

const (
	mimePDF  = "application/pdf"
	mimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	mimeText = "text/plain"
)

// documentTypes maps accepted CV upload extensions to their MIME type.
var documentTypes = map[string]string{
	".pdf":  mimePDF,
	".docx": mimeDOCX,
	".txt":  mimeText,
	".md":   mimeText,
}

// SupportedDocument reports whether filename has an accepted CV upload extension.
func SupportedDocument(filename string) bool {
	_, ok := documentTypes[strings.ToLower(filepath.Ext(filename))]
	return ok
}

// ParseDocument extracts the plain text of an uploaded CV. PDF and DOCX go
// through docconv; plain text files are read as-is. Every failure, including
// an empty extraction, is a *FileParseError.
func ParseDocument(filename string, data []byte, now time.Time) (string, *Provenance, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	mimeType, ok := documentTypes[ext]
	if !ok {
		return "", nil, &FileParseError{
			Filename: filename,
			Message:  "tipo de arquivo não suportado; envie .pdf ou .docx",
		}
	}
	if len(data) == 0 {
		return "", nil, &FileParseError{Filename: filename, Message: "arquivo vazio"}
	}

	var raw string
	if mimeType == mimeText {
		if !utf8.Valid(data) {
			return "", nil, &FileParseError{Filename: filename, Message: "o arquivo de texto não está em UTF-8"}
		}
		raw = string(data)
	} else {
		res, err := docconv.Convert(bytes.NewReader(data), mimeType, true)
		if err != nil {
			return "", nil, &FileParseError{
				Filename: filename,
				Message:  "erro ao ler o arquivo; tente novamente ou cole o texto manualmente",
				Cause:    err,
			}
		}
		raw = res.Body
	}

	text := CleanText(raw)
	if text == "" {
		return "", nil, &FileParseError{
			Filename: filename,
			Message:  "nenhum texto encontrado no arquivo; cole o texto manualmente",
		}
	}
	return text, newProvenance(text, filename, mimeType, now), nil
}
