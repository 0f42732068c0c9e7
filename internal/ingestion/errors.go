package ingestion

import "fmt"

// FileParseError reports an upload that could not be turned into usable content.
// Message is safe to show to the user.
type FileParseError struct {
	Filename string
	Message  string
	Cause    error
}

func (e *FileParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Filename, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Filename, e.Message)
}

func (e *FileParseError) Unwrap() error {
	return e.Cause
}
