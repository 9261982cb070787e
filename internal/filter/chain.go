package filter

import (
	"github.com/vburojevic/logreport/internal/domain"
)

// Filter determines if a log record should be included
type Filter interface {
	// Match returns true if the record passes the filter
	Match(record *domain.LogRecord) bool
}

// Chain combines multiple filters (all must pass)
type Chain struct {
	filters []Filter
}

// NewChain creates a filter chain from multiple filters. Nil filters are
// dropped.
func NewChain(filters ...Filter) *Chain {
	c := &Chain{}
	for _, f := range filters {
		c.Add(f)
	}
	return c
}

// Match returns true only if all filters pass
func (c *Chain) Match(record *domain.LogRecord) bool {
	for _, f := range c.filters {
		if !f.Match(record) {
			return false
		}
	}
	return true
}

// Add appends a filter to the chain
func (c *Chain) Add(f Filter) {
	if f == nil {
		return
	}
	c.filters = append(c.filters, f)
}

// Len returns the number of filters in the chain
func (c *Chain) Len() int {
	return len(c.filters)
}

// Apply returns the records that pass f, in input order. The result is a
// new slice; a nil filter keeps every record.
func Apply(records []domain.LogRecord, f Filter) []domain.LogRecord {
	out := make([]domain.LogRecord, 0, len(records))
	for i := range records {
		if f == nil || f.Match(&records[i]) {
			out = append(out, records[i])
		}
	}
	return out
}
