package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/vburojevic/logreport/internal/filter"
	"github.com/vburojevic/logreport/internal/output"
	"github.com/vburojevic/logreport/internal/parser"
	"github.com/vburojevic/logreport/internal/pipeline"
	"github.com/vburojevic/logreport/internal/report"
	"github.com/vburojevic/logreport/internal/source"
)

// ReportCmd reads access-log lines and renders a summary report
type ReportCmd struct {
	Source string `arg:"" help:"Log file, glob pattern (** allowed) or http(s) URL"`
	From   string `arg:"" optional:"" help:"Exclusive lower bound, RFC 3339 (empty or - for none)"`
	To     string `arg:"" optional:"" help:"Exclusive upper bound, RFC 3339 (empty or - for none)"`
	Format string `arg:"" optional:"" help:"Output format: markdown, adoc, text or json (default from config)"`

	Top     int           `help:"Entries kept in each top-N table (default from config)"`
	Strict  bool          `help:"Fail on the first malformed line instead of skipping it"`
	Match   string        `placeholder:"REGEX" help:"Only count requests matching this regular expression"`
	Workers int           `help:"Files read concurrently (default: one per CPU)"`
	Timeout time.Duration `help:"HTTP timeout for URL sources (default from config)"`
}

// reportSettings are the effective values after merging flags over config
type reportSettings struct {
	format  output.Format
	from    *time.Time
	to      *time.Time
	match   filter.Filter
	top     int
	strict  bool
	workers int
	timeout time.Duration
	loc     *time.Location
}

// Run executes the report command
func (c *ReportCmd) Run(globals *Globals) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return c.run(ctx, globals)
}

func (c *ReportCmd) run(ctx context.Context, globals *Globals) error {
	jsonOutput := c.wantsJSON(globals)

	s, err := c.resolve(globals)
	if err != nil {
		return outputErrorCommon(globals, jsonOutput, err)
	}
	globals.Debug("report settings",
		zap.String("source", c.Source),
		zap.String("format", string(s.format)),
		zap.Int("top", s.top),
		zap.Bool("strict", s.strict),
		zap.Int("workers", s.workers),
		zap.Duration("timeout", s.timeout),
		zap.String("timezone", s.loc.String()))

	renderer, err := output.NewRenderer(s.format)
	if err != nil {
		return outputErrorCommon(globals, jsonOutput, err)
	}

	reader := source.NewReader(
		source.WithHTTPClient(&http.Client{Timeout: s.timeout}),
		source.WithWorkers(s.workers),
		source.WithLogger(globals.Logger),
	)
	p := pipeline.New(reader,
		parser.NewParser(parser.WithLocation(s.loc)),
		report.NewAggregator(report.WithTopN(s.top)),
		pipeline.WithStrict(s.strict),
		pipeline.WithLogger(globals.Logger),
	)

	rep, err := p.Run(ctx, pipeline.Request{
		Source: c.Source,
		From:   s.from,
		To:     s.to,
		Match:  s.match,
	})
	if err != nil {
		return outputErrorCommon(globals, jsonOutput, err)
	}

	if err := renderer.Render(globals.Stdout, rep); err != nil {
		return outputErrorCommon(globals, jsonOutput, &CLIError{
			Code:    CodeRender,
			Message: fmt.Sprintf("render %s: %v", s.format, err),
			Err:     err,
		})
	}
	return nil
}

// wantsJSON decides the error channel before the arguments are validated
func (c *ReportCmd) wantsJSON(globals *Globals) bool {
	name := c.Format
	if name == "" {
		name = globals.Config.Format
	}
	f, err := output.ParseFormat(name)
	return err == nil && f == output.FormatJSON
}

// resolve validates arguments and merges flags over config values
func (c *ReportCmd) resolve(globals *Globals) (*reportSettings, error) {
	cfg := globals.Config
	s := &reportSettings{
		top:     cfg.Top,
		strict:  cfg.Strict || c.Strict,
		workers: cfg.Workers,
		timeout: cfg.HTTPTimeout,
	}

	if c.Source == "" {
		return nil, &ArgumentError{Name: "source", Value: c.Source, Err: errors.New("must not be empty")}
	}

	formatName := c.Format
	if formatName == "" {
		formatName = cfg.Format
	}
	format, err := output.ParseFormat(formatName)
	if err != nil {
		return nil, &ArgumentError{Name: "format", Value: formatName, Err: err}
	}
	s.format = format

	if s.from, err = parseBound("from", c.From); err != nil {
		return nil, err
	}
	if s.to, err = parseBound("to", c.To); err != nil {
		return nil, err
	}

	if globals.FlagProvided("top") {
		s.top = c.Top
	}
	if s.top < 1 {
		return nil, &ArgumentError{Name: "top", Value: fmt.Sprint(s.top), Err: errors.New("must be at least 1")}
	}
	if globals.FlagProvided("workers") {
		s.workers = c.Workers
	}
	if s.workers < 0 {
		return nil, &ArgumentError{Name: "workers", Value: fmt.Sprint(s.workers), Err: errors.New("must not be negative")}
	}
	if globals.FlagProvided("timeout") {
		s.timeout = c.Timeout
	}
	if s.timeout < 0 {
		return nil, &ArgumentError{Name: "timeout", Value: s.timeout.String(), Err: errors.New("must not be negative")}
	}

	if c.Match != "" {
		rf, err := filter.NewRequestFilter(c.Match)
		if err != nil {
			return nil, &ArgumentError{Name: "match", Value: c.Match, Err: err}
		}
		s.match = rf
	}

	if s.loc, err = cfg.Location(); err != nil {
		return nil, &ArgumentError{Name: "timezone", Value: cfg.Timezone, Err: err}
	}
	return s, nil
}

// parseBound reads an optional RFC 3339 window bound. Empty and "-" mean no
// bound.
func parseBound(name, value string) (*time.Time, error) {
	if value == "" || value == "-" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, &ArgumentError{Name: name, Value: value, Err: errors.New("want an RFC 3339 date-time with offset")}
	}
	return &t, nil
}
