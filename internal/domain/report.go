package domain

import "time"

// LogReport holds aggregated statistics for a filtered set of records
type LogReport struct {
	Source string `json:"source"`

	// Requested window, nil when unbounded
	FromDate *time.Time `json:"fromDate,omitempty"`
	ToDate   *time.Time `json:"toDate,omitempty"`

	TotalRequests int `json:"totalRequests"`
	// Nil when TotalRequests is zero
	AverageResponseSize *float64 `json:"averageResponseSize,omitempty"`

	MostRequestedResources    []ResourceCount `json:"mostRequestedResources"`
	MostFrequentResponseCodes []ResponseCode  `json:"mostFrequentResponseCodes"`

	// Count per status code over every record, not only the top entries
	ResponseCodeCounts map[int]int `json:"-"`

	// Malformed lines dropped before aggregation
	SkippedLines int `json:"skippedLines,omitempty"`
}

// ResourceCount is a resource path with its request count
type ResourceCount struct {
	Resource string `json:"resource"`
	Count    int    `json:"count"`
}

// ResponseCode is a top status code with its display name and count
type ResponseCode struct {
	Code  int    `json:"code"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// ResponseCodeCount returns the number of records whose status code shares
// the display name of code. Distinct codes that map to the same name (every
// "Unknown" code, for example) are summed. Returns 0 if code was never seen.
func (r *LogReport) ResponseCodeCount(code int) int {
	if _, ok := r.ResponseCodeCounts[code]; !ok {
		return 0
	}
	name := StatusName(code)
	total := 0
	for c, n := range r.ResponseCodeCounts {
		if StatusName(c) == name {
			total += n
		}
	}
	return total
}
