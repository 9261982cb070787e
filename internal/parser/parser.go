package parser

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/vburojevic/logreport/internal/domain"
)

// MinFields is the smallest token count a line can have and still parse.
const MinFields = 8

// Token positions within a line. Position 2 is not used.
const (
	fieldRemoteAddress = 0
	fieldRemoteUser    = 1
	fieldDate          = 3
	fieldTime          = 4
	fieldRequest       = 5
	fieldStatus        = 6
	fieldSize          = 7
	fieldReferer       = 8
	fieldUserAgent     = 9
)

var (
	ErrTooFewFields = errors.New("too few fields")
	ErrNegativeSize = errors.New("negative response size")
	ErrBadTimestamp = errors.New("unrecognized timestamp")
)

// timestampLayouts are tried in order. Layouts without an offset are
// interpreted in the parser's location.
var timestampLayouts = []string{
	"02.01.2006 15:04:05Z07:00",
	"02.01.2006 15:04:05-0700",
	"02.01.2006 15:04:05",
	"02.01.2006 15:04",
}

// ParseError describes a line that could not be turned into a record.
// Source and LineNumber are zero when the parser is used on a bare string.
type ParseError struct {
	Source     string
	LineNumber int
	Field      string
	Line       string
	Err        error
}

func (e *ParseError) Error() string {
	var b strings.Builder
	if e.Source != "" {
		b.WriteString(e.Source)
		if e.LineNumber > 0 {
			b.WriteString(":" + strconv.Itoa(e.LineNumber))
		}
		b.WriteString(": ")
	}
	b.WriteString("invalid log line")
	if e.Field != "" {
		b.WriteString(" (" + e.Field + ")")
	}
	b.WriteString(": ")
	b.WriteString(e.Err.Error())
	return b.String()
}

func (e *ParseError) Unwrap() error { return e.Err }

// Parser converts raw access-log lines into records
type Parser struct {
	loc *time.Location
}

// Option configures a Parser
type Option func(*Parser)

// WithLocation sets the location used for timestamps that carry no offset.
func WithLocation(loc *time.Location) Option {
	return func(p *Parser) {
		if loc != nil {
			p.loc = loc
		}
	}
}

// NewParser creates a new log parser
func NewParser(opts ...Option) *Parser {
	p := &Parser{loc: time.UTC}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Tokenize splits a line on single spaces. There is no quote handling: a
// space inside a bracketed timestamp or quoted request shifts every later
// field. The resulting schema is
//
//	0 remote address   1 remote user   2 (unused)
//	3 date             4 time          5 request
//	6 status code      7 response size
//	8 referer          9 user agent    (optional)
func Tokenize(line string) []string {
	return strings.Split(line, " ")
}

// Parse converts one raw line to a LogRecord
func (p *Parser) Parse(line string) (domain.LogRecord, error) {
	parts := Tokenize(line)
	if len(parts) < MinFields {
		return domain.LogRecord{}, &ParseError{
			Line: line,
			Err:  fmt.Errorf("%w: got %d, want at least %d", ErrTooFewFields, len(parts), MinFields),
		}
	}

	ts, err := p.parseTimestamp(parts[fieldDate] + " " + parts[fieldTime])
	if err != nil {
		return domain.LogRecord{}, &ParseError{Field: "timestamp", Line: line, Err: err}
	}

	status, err := strconv.Atoi(parts[fieldStatus])
	if err != nil {
		return domain.LogRecord{}, &ParseError{Field: "status", Line: line, Err: err}
	}

	size, err := strconv.ParseInt(parts[fieldSize], 10, 64)
	if err != nil {
		return domain.LogRecord{}, &ParseError{Field: "size", Line: line, Err: err}
	}
	if size < 0 {
		return domain.LogRecord{}, &ParseError{Field: "size", Line: line, Err: ErrNegativeSize}
	}

	record := domain.LogRecord{
		RemoteAddress: parts[fieldRemoteAddress],
		RemoteUser:    parts[fieldRemoteUser],
		Timestamp:     ts,
		Request:       parts[fieldRequest],
		StatusCode:    status,
		ResponseSize:  size,
	}
	if len(parts) > fieldReferer {
		record.Referer = parts[fieldReferer]
	}
	if len(parts) > fieldUserAgent {
		record.UserAgent = parts[fieldUserAgent]
	}
	return record, nil
}

// parseTimestamp handles the day-first access-log timestamp
func (p *Parser) parseTimestamp(s string) (time.Time, error) {
	// Format: "[24.01.2024 13:45:07+01:00]", brackets optional
	s = strings.TrimSuffix(strings.TrimPrefix(s, "["), "]")

	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, p.loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrBadTimestamp, s)
}
