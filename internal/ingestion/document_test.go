package ingestion

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDocument_PlainText(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	text, prov, err := ParseDocument("cv.txt", []byte("Ana Souza\r\n\r\n\r\n\r\n• Go   developer"), now)
	require.NoError(t, err)

	assert.Equal(t, "Ana Souza\n\n- Go developer", text)
	assert.Equal(t, "cv.txt", prov.Source)
	assert.Equal(t, "text/plain", prov.MIMEType)
	assert.Equal(t, len([]rune(text)), prov.Chars)
	assert.Equal(t, now, prov.IngestedAt)
}

func TestParseDocument_UnsupportedExtension(t *testing.T) {
	_, _, err := ParseDocument("cv.odt", []byte("data"), time.Now())
	require.Error(t, err)

	var parseErr *FileParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, "cv.odt", parseErr.Filename)
	assert.Contains(t, parseErr.Message, ".pdf ou .docx")
}

func TestParseDocument_EmptyFile(t *testing.T) {
	_, _, err := ParseDocument("cv.pdf", nil, time.Now())
	var parseErr *FileParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "arquivo vazio", parseErr.Message)
}

func TestParseDocument_CorruptDOCX(t *testing.T) {
	_, _, err := ParseDocument("cv.DOCX", []byte("definitely not a zip archive"), time.Now())
	var parseErr *FileParseError
	require.ErrorAs(t, err, &parseErr)
	assert.NotNil(t, parseErr.Unwrap())
}

func TestParseDocument_WhitespaceOnly(t *testing.T) {
	_, _, err := ParseDocument("cv.md", []byte("   \n\n  "), time.Now())
	var parseErr *FileParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Contains(t, parseErr.Message, "nenhum texto")
}

func TestParseDocument_InvalidUTF8(t *testing.T) {
	_, _, err := ParseDocument("cv.txt", []byte{0xff, 0xfe, 0xfd}, time.Now())
	var parseErr *FileParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestSupportedDocument(t *testing.T) {
	assert.True(t, SupportedDocument("CV.PDF"))
	assert.True(t, SupportedDocument("cv.docx"))
	assert.False(t, SupportedDocument("photo.jpg"))
	assert.False(t, SupportedDocument("noext"))
}
