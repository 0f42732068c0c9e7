package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/jobpilot/internal/screens"
	"github.com/jonathan/jobpilot/internal/types"
)

var errStreamingUnsupported = errors.New("streaming not supported")

// toolStream reports the progress of one tool run as Server-Sent Events:
// a "status" event when the run starts, then either "result" or "error".
type toolStream struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

func newToolStream(w http.ResponseWriter) (*toolStream, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, errStreamingUnsupported
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	return &toolStream{w: w, flusher: flusher}, nil
}

func (t *toolStream) send(event string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(t.w, "event: %s\ndata: %s\n\n", event, payload); err != nil {
		return err
	}
	t.flusher.Flush()
	return nil
}

func (t *toolStream) status(st screens.Status) error {
	return t.send("status", st)
}

func (t *toolStream) result(rec *types.GenerationRecord) error {
	return t.send("result", rec)
}

func (t *toolStream) fail(status int, message string) error {
	return t.send("error", map[string]any{"status": status, "error": message})
}
