package filter

import (
	"regexp"

	"github.com/vburojevic/logreport/internal/domain"
)

// RequestFilter filters records by request pattern
type RequestFilter struct {
	pattern *regexp.Regexp
}

// NewRequestFilter creates a request filter from a pattern string
func NewRequestFilter(pattern string) (*RequestFilter, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	return &RequestFilter{pattern: re}, nil
}

// NewRequestFilterFromRegexp creates a request filter from a compiled regexp
func NewRequestFilterFromRegexp(re *regexp.Regexp) *RequestFilter {
	return &RequestFilter{pattern: re}
}

// Match returns true if the record request matches the pattern
func (f *RequestFilter) Match(record *domain.LogRecord) bool {
	if f.pattern == nil {
		return true
	}
	return f.pattern.MatchString(record.Request)
}
