package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/vburojevic/logreport/internal/domain"
)

// Format selects a report renderer
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatAsciiDoc Format = "adoc"
	FormatText     Format = "text"
	FormatJSON     Format = "json"
)

// dateLayout is used for the window bounds in every human-readable format
const dateLayout = "02.01.2006"

// ParseFormat converts a format name to a Format. The empty string selects
// Markdown.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "markdown", "md":
		return FormatMarkdown, nil
	case "adoc", "asciidoc":
		return FormatAsciiDoc, nil
	case "text", "txt":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unknown format %q (want markdown, adoc, text or json)", s)
	}
}

// Renderer writes a report in one output format
type Renderer interface {
	Render(w io.Writer, report *domain.LogReport) error
}

// NewRenderer returns the renderer for f
func NewRenderer(f Format) (Renderer, error) {
	switch f {
	case FormatMarkdown:
		return &MarkdownRenderer{}, nil
	case FormatAsciiDoc:
		return &AsciiDocRenderer{}, nil
	case FormatText:
		return &TextRenderer{}, nil
	case FormatJSON:
		return &JSONRenderer{}, nil
	default:
		return nil, fmt.Errorf("unknown format %q", f)
	}
}

// RenderString renders report in format f and returns the text
func RenderString(report *domain.LogReport, f Format) (string, error) {
	r, err := NewRenderer(f)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	if err := r.Render(&b, report); err != nil {
		return "", err
	}
	return b.String(), nil
}

// section is one titled table shared by the tabular renderers
type section struct {
	title  string
	header []string
	rows   [][]string
}

// sections lays out a report as the three report tables
func sections(report *domain.LogReport) []section {
	general := section{
		title:  "General info",
		header: []string{"Metric", "Value"},
		rows: [][]string{
			{"Files", "`" + sourceLabel(report) + "`"},
			{"Start date", formatDate(report.FromDate)},
			{"End date", formatDate(report.ToDate)},
			{"Total requests", strconv.Itoa(report.TotalRequests)},
		},
	}
	if report.AverageResponseSize != nil {
		general.rows = append(general.rows, []string{"Average response size", formatBytes(*report.AverageResponseSize)})
	}
	if report.SkippedLines > 0 {
		general.rows = append(general.rows, []string{"Malformed lines", strconv.Itoa(report.SkippedLines)})
	}

	resources := section{
		title:  "Requested resources",
		header: []string{"Resource", "Count"},
	}
	for _, rc := range report.MostRequestedResources {
		resources.rows = append(resources.rows, []string{rc.Resource, strconv.Itoa(rc.Count)})
	}

	codes := section{
		title:  "Response codes",
		header: []string{"Code", "Name", "Count"},
	}
	for _, c := range report.MostFrequentResponseCodes {
		codes.rows = append(codes.rows, []string{strconv.Itoa(c.Code), c.Name, strconv.Itoa(c.Count)})
	}

	return []section{general, resources, codes}
}

func sourceLabel(report *domain.LogReport) string {
	if report.Source == "" {
		return "access.log"
	}
	return report.Source
}

func formatDate(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format(dateLayout)
}

// formatBytes prints the average size without rounding, e.g. "256b"
func formatBytes(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "b"
}
