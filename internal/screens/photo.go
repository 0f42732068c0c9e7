package screens

import (
	"context"

	"github.com/jonathan/jobpilot/internal/ingestion"
	"github.com/jonathan/jobpilot/internal/llm"
)

// Photo retouches profile photos.
type Photo struct {
	env      Env
	maxBytes int64

	enhancing Action
}

// NewPhoto creates the photo controller. maxBytes caps uploads; zero uses
// ingestion.DefaultMaxImageBytes.
func NewPhoto(env Env, maxBytes int64) *Photo {
	if maxBytes <= 0 {
		maxBytes = ingestion.DefaultMaxImageBytes
	}
	return &Photo{env: env.withDefaults(), maxBytes: maxBytes}
}

// Enhance checks the upload and returns the retouched image.
func (p *Photo) Enhance(ctx context.Context, filename string, data []byte) (*llm.Image, error) {
	img, err := ingestion.LoadImage(filename, data, p.maxBytes)
	if err != nil {
		return nil, err
	}

	var out *llm.Image
	err = p.enhancing.Run(func() error {
		var err error
		out, err = p.env.Generator.EnhancePhoto(ctx, img.Data, img.MIMEType)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Status reports the enhance action.
func (p *Photo) Status() Status {
	return p.enhancing.Status()
}
