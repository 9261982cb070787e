// Package pipeline runs a report request end to end: read the source, parse
// each line, keep the records inside the window and aggregate them.
package pipeline

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"

	"github.com/vburojevic/logreport/internal/domain"
	"github.com/vburojevic/logreport/internal/filter"
	"github.com/vburojevic/logreport/internal/parser"
	"github.com/vburojevic/logreport/internal/report"
	"github.com/vburojevic/logreport/internal/source"
)

// LineReader yields the raw lines behind a source specifier
type LineReader interface {
	Read(ctx context.Context, src string) ([]source.Batch, error)
}

// LineParser turns one raw line into a record
type LineParser interface {
	Parse(line string) (domain.LogRecord, error)
}

// Request describes one report
type Request struct {
	Source string
	From   *time.Time
	To     *time.Time
	// Match is an optional extra filter applied after the window
	Match filter.Filter
}

// Pipeline wires a reader, parser and aggregator together
type Pipeline struct {
	reader     LineReader
	parser     LineParser
	aggregator *report.Aggregator
	strict     bool
	logger     *zap.Logger
	clock      clock.Clock
}

// Option configures a Pipeline
type Option func(*Pipeline)

// WithStrict makes Run fail on the first malformed line instead of skipping it
func WithStrict(strict bool) Option {
	return func(p *Pipeline) {
		p.strict = strict
	}
}

// WithLogger sets the diagnostic logger
func WithLogger(l *zap.Logger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithClock sets the clock used to time runs
func WithClock(c clock.Clock) Option {
	return func(p *Pipeline) {
		if c != nil {
			p.clock = c
		}
	}
}

// New creates a Pipeline
func New(reader LineReader, lp LineParser, aggregator *report.Aggregator, opts ...Option) *Pipeline {
	p := &Pipeline{
		reader:     reader,
		parser:     lp,
		aggregator: aggregator,
		logger:     zap.NewNop(),
		clock:      clock.New(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run builds the report for req. Source errors abort the run. Malformed
// lines are counted in the report's SkippedLines, or returned as a
// *parser.ParseError in strict mode.
func (p *Pipeline) Run(ctx context.Context, req Request) (*domain.LogReport, error) {
	start := p.clock.Now()

	batches, err := p.reader.Read(ctx, req.Source)
	if err != nil {
		return nil, err
	}

	var records []domain.LogRecord
	skipped := 0
	for _, batch := range batches {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for i, line := range batch.Lines {
			if strings.TrimSpace(line) == "" {
				continue
			}
			record, err := p.parser.Parse(line)
			if err == nil {
				records = append(records, record)
				continue
			}

			perr := asParseError(err, line)
			perr.Source = batch.Source
			perr.LineNumber = i + 1
			if p.strict {
				return nil, perr
			}
			skipped++
			p.logger.Debug("skipping malformed line",
				zap.String("source", perr.Source),
				zap.Int("line", perr.LineNumber),
				zap.Error(perr.Err))
		}
	}

	window := filter.NewWindow(req.From, req.To)
	var match filter.Filter = window
	if req.Match != nil {
		match = filter.NewChain(window, req.Match)
	}
	kept := filter.Apply(records, match)

	rep := p.aggregator.Aggregate(kept, req.From, req.To)
	if rep.Source == "" {
		rep.Source = req.Source
	}
	rep.SkippedLines = skipped

	if skipped > 0 {
		p.logger.Warn("skipped malformed lines", zap.Int("count", skipped))
	}
	p.logger.Debug("report built",
		zap.Int("batches", len(batches)),
		zap.Int("parsed", len(records)),
		zap.Int("matched", len(kept)),
		zap.Duration("elapsed", p.clock.Since(start)))
	return rep, nil
}

func asParseError(err error, line string) *parser.ParseError {
	var perr *parser.ParseError
	if errors.As(err, &perr) {
		return perr
	}
	return &parser.ParseError{Line: line, Err: err}
}
