package types

import (
	"sync"
	"time"
)

// idLayout keeps ids fixed-width so they sort in creation order.
const idLayout = "2006-01-02T15:04:05.000000000Z"

// IDGenerator hands out time-derived ids that never repeat within a process,
// even when the clock returns the same instant twice.
type IDGenerator struct {
	mu   sync.Mutex
	last time.Time
}

// Next returns the id for now, nudged forward past the previous id when needed.
func (g *IDGenerator) Next(now time.Time) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	now = now.UTC()
	if !now.After(g.last) {
		now = g.last.Add(time.Nanosecond)
	}
	g.last = now
	return now.Format(idLayout)
}

// FormatTimestamp renders a timestamp the way history records store it.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// FormatDate renders a calendar date (YYYY-MM-DD).
func FormatDate(t time.Time) string {
	return t.Format(time.DateOnly)
}
