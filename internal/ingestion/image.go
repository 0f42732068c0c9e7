package ingestion

import (
	"fmt"

	"github.com/gabriel-vasile/mimetype"
)

// DefaultMaxImageBytes is the photo upload cap.
const DefaultMaxImageBytes = 4 << 20

var acceptedImageTypes = []string{"image/jpeg", "image/png", "image/webp"}

// Image is an uploaded photo ready to be sent inline.
type Image struct {
	Filename string
	MIMEType string
	Data     []byte
}

// LoadImage checks an uploaded photo against the size cap and sniffs its MIME
// type from the content rather than trusting the filename.
func LoadImage(filename string, data []byte, maxBytes int64) (*Image, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxImageBytes
	}
	if len(data) == 0 {
		return nil, &FileParseError{Filename: filename, Message: "arquivo vazio"}
	}
	if int64(len(data)) > maxBytes {
		return nil, &FileParseError{
			Filename: filename,
			Message:  fmt.Sprintf("a imagem excede o limite de %s", formatBytes(maxBytes)),
		}
	}

	detected := mimetype.Detect(data)
	for _, accepted := range acceptedImageTypes {
		if detected.Is(accepted) {
			return &Image{Filename: filename, MIMEType: accepted, Data: data}, nil
		}
	}
	return nil, &FileParseError{
		Filename: filename,
		Message:  "formato de imagem não suportado; envie JPEG, PNG ou WebP",
	}
}

func formatBytes(n int64) string {
	const mb = 1 << 20
	if n%mb == 0 {
		return fmt.Sprintf("%d MB", n/mb)
	}
	return fmt.Sprintf("%d bytes", n)
}
