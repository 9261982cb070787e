package domain

import (
	"strings"
	"time"
)

// LogRecord represents one parsed access-log line
type LogRecord struct {
	RemoteAddress string    `json:"remoteAddress"`
	RemoteUser    string    `json:"remoteUser"`
	Timestamp     time.Time `json:"timestamp"`
	Request       string    `json:"request"`
	StatusCode    int       `json:"statusCode"`
	ResponseSize  int64     `json:"responseSize"`
	Referer       string    `json:"referer,omitempty"`
	UserAgent     string    `json:"userAgent,omitempty"`
}

// Resource returns the requested path: the second space-separated token of
// the request, or "" when the request has a single token.
func (r *LogRecord) Resource() string {
	parts := strings.Split(r.Request, " ")
	if len(parts) > 1 {
		return parts[1]
	}
	return ""
}
