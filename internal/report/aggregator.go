package report

import (
	"cmp"
	"slices"
	"time"

	"github.com/vburojevic/logreport/internal/domain"
)

// DefaultTopN is the number of resources and response codes kept in a report.
const DefaultTopN = 3

// Aggregator builds LogReports from filtered records
type Aggregator struct {
	topN   int
	source string
}

// Option configures an Aggregator
type Option func(*Aggregator)

// WithTopN sets how many resources and response codes are kept.
// Values below 1 are ignored.
func WithTopN(n int) Option {
	return func(a *Aggregator) {
		if n > 0 {
			a.topN = n
		}
	}
}

// WithSource sets the source label copied into every report.
func WithSource(source string) Option {
	return func(a *Aggregator) {
		a.source = source
	}
}

// NewAggregator creates a new aggregator
func NewAggregator(opts ...Option) *Aggregator {
	a := &Aggregator{topN: DefaultTopN}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// TopN returns the configured top-N size
func (a *Aggregator) TopN() int {
	return a.topN
}

// Aggregate computes a report over records. The records are expected to be
// filtered already; from and to are only recorded on the report.
func (a *Aggregator) Aggregate(records []domain.LogRecord, from, to *time.Time) *domain.LogReport {
	report := &domain.LogReport{
		Source:                    a.source,
		FromDate:                  from,
		ToDate:                    to,
		TotalRequests:             len(records),
		MostRequestedResources:    []domain.ResourceCount{},
		MostFrequentResponseCodes: []domain.ResponseCode{},
		ResponseCodeCounts:        map[int]int{},
	}

	if len(records) == 0 {
		return report
	}

	var totalSize int64
	resourceCounts := make(map[string]int)
	for i := range records {
		r := &records[i]
		totalSize += r.ResponseSize
		resourceCounts[r.Resource()]++
		report.ResponseCodeCounts[r.StatusCode]++
	}

	avg := float64(totalSize) / float64(len(records))
	report.AverageResponseSize = &avg

	for _, e := range topN(resourceCounts, a.topN) {
		report.MostRequestedResources = append(report.MostRequestedResources, domain.ResourceCount{
			Resource: e.key,
			Count:    e.count,
		})
	}

	for _, e := range topN(report.ResponseCodeCounts, a.topN) {
		report.MostFrequentResponseCodes = append(report.MostFrequentResponseCodes, domain.ResponseCode{
			Code:  e.key,
			Name:  domain.StatusName(e.key),
			Count: report.ResponseCodeCount(e.key),
		})
	}

	return report
}

type entry[K cmp.Ordered] struct {
	key   K
	count int
}

// topN returns the n highest counts, ties broken by ascending key
func topN[K cmp.Ordered](counts map[K]int, n int) []entry[K] {
	entries := make([]entry[K], 0, len(counts))
	for k, c := range counts {
		entries = append(entries, entry[K]{k, c})
	}

	slices.SortFunc(entries, func(a, b entry[K]) int {
		if a.count != b.count {
			return cmp.Compare(b.count, a.count)
		}
		return cmp.Compare(a.key, b.key)
	})

	if len(entries) > n {
		entries = entries[:n]
	}
	return entries
}
