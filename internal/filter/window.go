package filter

import (
	"time"

	"github.com/vburojevic/logreport/internal/domain"
)

// Window keeps records strictly inside (From, To). A nil bound is open.
type Window struct {
	From *time.Time
	To   *time.Time
}

// NewWindow creates a time window filter
func NewWindow(from, to *time.Time) *Window {
	return &Window{From: from, To: to}
}

// Match returns true if the record timestamp lies inside the window.
// Both bounds are exclusive.
func (w *Window) Match(record *domain.LogRecord) bool {
	if w.From != nil && !record.Timestamp.After(*w.From) {
		return false
	}
	if w.To != nil && !record.Timestamp.Before(*w.To) {
		return false
	}
	return true
}

// Unbounded reports whether neither bound is set
func (w *Window) Unbounded() bool {
	return w.From == nil && w.To == nil
}

// Between returns the records whose timestamp lies strictly between from and
// to, preserving order.
func Between(records []domain.LogRecord, from, to *time.Time) []domain.LogRecord {
	return Apply(records, NewWindow(from, to))
}
