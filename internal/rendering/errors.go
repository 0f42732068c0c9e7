// Package rendering turns restructured résumé text into styled HTML and PDF.
package rendering

import "fmt"

// Stage names the step of an export that failed.
type Stage string

const (
	StageHTML Stage = "html"
	StagePDF  Stage = "pdf"
)

// RenderError is returned when a restructured CV cannot be exported.
type RenderError struct {
	Stage   Stage
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	msg := fmt.Sprintf("%s export: %s", e.Stage, e.Message)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}
