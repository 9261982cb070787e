package pipeline

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/vburojevic/logreport/internal/domain"
	"github.com/vburojevic/logreport/internal/filter"
	"github.com/vburojevic/logreport/internal/parser"
	"github.com/vburojevic/logreport/internal/report"
	"github.com/vburojevic/logreport/internal/source"
)

// fakeReader returns fixed batches and optionally advances a mock clock
type fakeReader struct {
	batches []source.Batch
	err     error
	clock   *clock.Mock
	src     string
}

func (f *fakeReader) Read(ctx context.Context, src string) ([]source.Batch, error) {
	f.src = src
	if f.clock != nil {
		f.clock.Add(1500 * time.Millisecond)
	}
	return f.batches, f.err
}

var sampleLines = []string{
	"10.0.0.1 - - 01.01.2023 10:00:00Z GET/index.html 200 512",
	"10.0.0.2 - - 01.01.2023 11:00:00Z GET/index.html 200 256",
	"10.0.0.3 - - 01.01.2023 12:00:00Z GET/missing 404 0",
}

func newPipeline(r LineReader, opts ...Option) *Pipeline {
	return New(r, parser.NewParser(), report.NewAggregator(), opts...)
}

func ts(s string) *time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return &t
}

func TestRunEndToEnd(t *testing.T) {
	reader := &fakeReader{batches: []source.Batch{{Source: "access.log", Lines: sampleLines}}}

	rep, err := newPipeline(reader).Run(context.Background(), Request{Source: "access.log"})
	require.NoError(t, err)

	assert.Equal(t, "access.log", reader.src)
	assert.Equal(t, "access.log", rep.Source)
	assert.Equal(t, 3, rep.TotalRequests)
	require.NotNil(t, rep.AverageResponseSize)
	assert.Equal(t, 256.0, *rep.AverageResponseSize)
	assert.Equal(t, []domain.ResponseCode{
		{Code: 200, Name: "OK", Count: 2},
		{Code: 404, Name: "Not Found", Count: 1},
	}, rep.MostFrequentResponseCodes)
	assert.Zero(t, rep.SkippedLines)
}

func TestRunAppliesWindow(t *testing.T) {
	reader := &fakeReader{batches: []source.Batch{{Source: "access.log", Lines: sampleLines}}}
	from := ts("2023-01-01T10:00:00Z")
	to := ts("2023-01-01T12:00:00Z")

	rep, err := newPipeline(reader).Run(context.Background(), Request{Source: "access.log", From: from, To: to})
	require.NoError(t, err)

	// both bounds are exclusive
	assert.Equal(t, 1, rep.TotalRequests)
	assert.Equal(t, from, rep.FromDate)
	assert.Equal(t, to, rep.ToDate)
}

func TestRunAppliesMatchFilter(t *testing.T) {
	reader := &fakeReader{batches: []source.Batch{{Source: "access.log", Lines: sampleLines}}}

	rep, err := newPipeline(reader).Run(context.Background(), Request{
		Source: "access.log",
		Match:  filter.NewRequestFilterFromRegexp(regexp.MustCompile(`missing`)),
	})
	require.NoError(t, err)

	assert.Equal(t, 1, rep.TotalRequests)
	assert.Equal(t, 404, rep.MostFrequentResponseCodes[0].Code)
}

func TestRunSkipsMalformedLines(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	lines := append([]string{"garbage", "", "   "}, sampleLines...)
	reader := &fakeReader{batches: []source.Batch{{Source: "a.log", Lines: lines}}}

	rep, err := newPipeline(reader, WithLogger(zap.New(core))).Run(context.Background(), Request{Source: "*.log"})
	require.NoError(t, err)

	assert.Equal(t, 3, rep.TotalRequests)
	assert.Equal(t, 1, rep.SkippedLines)

	skipped := logs.FilterMessage("skipping malformed line").All()
	require.Len(t, skipped, 1)
	assert.Equal(t, "a.log", skipped[0].ContextMap()["source"])
	assert.Equal(t, int64(1), skipped[0].ContextMap()["line"])
	assert.Equal(t, 1, logs.FilterMessage("skipped malformed lines").FilterField(zap.Int("count", 1)).Len())
}

func TestRunStrictFailsWithPosition(t *testing.T) {
	lines := []string{sampleLines[0], "", "10.0.0.9 - - 01.01.2023 10:00:00Z GET/x abc 10"}
	reader := &fakeReader{batches: []source.Batch{
		{Source: "a.log", Lines: sampleLines},
		{Source: "b.log", Lines: lines},
	}}

	_, err := newPipeline(reader, WithStrict(true)).Run(context.Background(), Request{Source: "*.log"})
	require.Error(t, err)

	var perr *parser.ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "b.log", perr.Source)
	assert.Equal(t, 3, perr.LineNumber)
	assert.Equal(t, "status", perr.Field)
	assert.Contains(t, err.Error(), "b.log:3: invalid log line (status)")
}

func TestRunWrapsPlainParserErrors(t *testing.T) {
	reader := &fakeReader{batches: []source.Batch{{Source: "a.log", Lines: []string{"x"}}}}
	boom := errors.New("boom")

	_, err := New(reader, failingParser{err: boom}, report.NewAggregator(), WithStrict(true)).
		Run(context.Background(), Request{Source: "a.log"})

	var perr *parser.ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, 1, perr.LineNumber)
	assert.ErrorIs(t, err, boom)
}

type failingParser struct{ err error }

func (f failingParser) Parse(string) (domain.LogRecord, error) {
	return domain.LogRecord{}, f.err
}

func TestRunSourceError(t *testing.T) {
	srcErr := &source.SourceError{Source: "*.log", Err: source.ErrNoMatches}
	reader := &fakeReader{err: srcErr}

	_, err := newPipeline(reader).Run(context.Background(), Request{Source: "*.log"})
	assert.ErrorIs(t, err, source.ErrNoMatches)
}

func TestRunCanceled(t *testing.T) {
	reader := &fakeReader{batches: []source.Batch{{Source: "a.log", Lines: sampleLines}}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newPipeline(reader).Run(ctx, Request{Source: "a.log"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunLogsElapsed(t *testing.T) {
	mock := clock.NewMock()
	core, logs := observer.New(zapcore.DebugLevel)
	reader := &fakeReader{batches: []source.Batch{{Source: "a.log", Lines: sampleLines}}, clock: mock}

	_, err := newPipeline(reader, WithClock(mock), WithLogger(zap.New(core))).
		Run(context.Background(), Request{Source: "a.log"})
	require.NoError(t, err)

	built := logs.FilterMessage("report built").All()
	require.Len(t, built, 1)
	fields := built[0].ContextMap()
	assert.Equal(t, 1500*time.Millisecond, fields["elapsed"])
	assert.Equal(t, int64(3), fields["parsed"])
	assert.Equal(t, int64(3), fields["matched"])
}

func TestRunKeepsAggregatorSource(t *testing.T) {
	reader := &fakeReader{batches: []source.Batch{{Source: "a.log", Lines: sampleLines}}}
	p := New(reader, parser.NewParser(), report.NewAggregator(report.WithSource("custom")))

	rep, err := p.Run(context.Background(), Request{Source: "a.log"})
	require.NoError(t, err)
	assert.Equal(t, "custom", rep.Source)
}
