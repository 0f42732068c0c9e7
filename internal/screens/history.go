package screens

import (
	"context"
	"io"

	"github.com/jonathan/jobpilot/internal/export"
	"github.com/jonathan/jobpilot/internal/store"
	"github.com/jonathan/jobpilot/internal/types"
)

func loadHistory(ctx context.Context, s *store.Store) []types.HistoryItem {
	return store.Get(ctx, s, store.KeyGenerationHistory, types.HistoryLog{}).Items
}

// prependHistory stores item as the newest history record.
func prependHistory(ctx context.Context, s *store.Store, item types.HistoryItem) error {
	_, err := store.Update(ctx, s, store.KeyGenerationHistory, types.HistoryLog{}, func(hist types.HistoryLog) (types.HistoryLog, error) {
		hist.Items = append([]types.HistoryItem{item}, hist.Items...)
		return hist, nil
	})
	return err
}

// History lists and exports past generations and saved lead searches.
type History struct {
	env Env
}

// NewHistory creates the history controller.
func NewHistory(env Env) *History {
	return &History{env: env.withDefaults()}
}

// List returns every record, newest first.
func (h *History) List(ctx context.Context) []types.HistoryItem {
	return loadHistory(ctx, h.env.Store)
}

// Get returns one record.
func (h *History) Get(ctx context.Context, id string) (types.HistoryItem, error) {
	for _, item := range h.List(ctx) {
		if item.ID() == id {
			return item, nil
		}
	}
	return types.HistoryItem{}, notFound("history item", id)
}

// ExportText writes the full history as a text report.
func (h *History) ExportText(ctx context.Context, w io.Writer) error {
	return export.HistoryText(w, h.List(ctx))
}

// ExportItemText writes one record as a text report.
func (h *History) ExportItemText(ctx context.Context, id string, w io.Writer) error {
	item, err := h.Get(ctx, id)
	if err != nil {
		return err
	}
	return export.ItemText(w, item)
}
