package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// Provenance records where a CV text or job description came from.
type Provenance struct {
	Source     string    `json:"source"`
	MIMEType   string    `json:"mimeType,omitempty"`
	Platform   string    `json:"platform,omitempty"`
	Title      string    `json:"title,omitempty"`
	IngestedAt time.Time `json:"ingestedAt"`
	Checksum   string    `json:"checksum"`
	Chars      int       `json:"chars"`
}

func newProvenance(text, source, mimeType string, at time.Time) *Provenance {
	sum := sha256.Sum256([]byte(text))
	return &Provenance{
		Source:     source,
		MIMEType:   mimeType,
		IngestedAt: at.UTC(),
		Checksum:   hex.EncodeToString(sum[:]),
		Chars:      len([]rune(text)),
	}
}

// Fingerprint is the first 12 hex digits of the checksum, enough to tell two
// imports of the same posting apart in logs.
func (p *Provenance) Fingerprint() string {
	if len(p.Checksum) < 12 {
		return p.Checksum
	}
	return p.Checksum[:12]
}

// String renders a one-line provenance note such as "Dev Go - Acme (https://...)".
func (p *Provenance) String() string {
	if p == nil {
		return ""
	}
	if p.Title != "" {
		return fmt.Sprintf("%s (%s)", p.Title, p.Source)
	}
	return p.Source
}
