package output

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"github.com/vburojevic/logreport/internal/domain"
)

func sampleReport() *domain.LogReport {
	from := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	avg := 256.0
	return &domain.LogReport{
		Source:              "logs/access.log",
		FromDate:            &from,
		TotalRequests:       3,
		AverageResponseSize: &avg,
		MostRequestedResources: []domain.ResourceCount{
			{Resource: "/index.html", Count: 2},
			{Resource: "/about", Count: 1},
		},
		MostFrequentResponseCodes: []domain.ResponseCode{
			{Code: 200, Name: "OK", Count: 2},
			{Code: 404, Name: "Not Found", Count: 1},
		},
		ResponseCodeCounts: map[int]int{200: 2, 404: 1},
	}
}

func emptyReport() *domain.LogReport {
	return &domain.LogReport{
		MostRequestedResources:    []domain.ResourceCount{},
		MostFrequentResponseCodes: []domain.ResponseCode{},
		ResponseCodeCounts:        map[int]int{},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"", FormatMarkdown},
		{"markdown", FormatMarkdown},
		{"md", FormatMarkdown},
		{"ADOC", FormatAsciiDoc},
		{"asciidoc", FormatAsciiDoc},
		{"text", FormatText},
		{" json ", FormatJSON},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseFormat("html")
	assert.ErrorContains(t, err, `unknown format "html"`)
}

func TestNewRenderer(t *testing.T) {
	for _, f := range []Format{FormatMarkdown, FormatAsciiDoc, FormatText, FormatJSON} {
		r, err := NewRenderer(f)
		require.NoError(t, err)
		assert.NotNil(t, r)
	}

	_, err := NewRenderer(Format("yaml"))
	assert.Error(t, err)
}

func TestSections(t *testing.T) {
	s := sections(sampleReport())
	require.Len(t, s, 3)

	assert.Equal(t, "General info", s[0].title)
	assert.Equal(t, [][]string{
		{"Files", "`logs/access.log`"},
		{"Start date", "01.01.2023"},
		{"End date", "-"},
		{"Total requests", "3"},
		{"Average response size", "256b"},
	}, s[0].rows)

	assert.Equal(t, [][]string{{"/index.html", "2"}, {"/about", "1"}}, s[1].rows)
	assert.Equal(t, [][]string{{"200", "OK", "2"}, {"404", "Not Found", "1"}}, s[2].rows)
}

func TestSectionsEmptyReport(t *testing.T) {
	s := sections(emptyReport())

	assert.Equal(t, [][]string{
		{"Files", "`access.log`"},
		{"Start date", "-"},
		{"End date", "-"},
		{"Total requests", "0"},
	}, s[0].rows)
	assert.Empty(t, s[1].rows)
	assert.Empty(t, s[2].rows)
}

func TestSectionsSkippedLines(t *testing.T) {
	r := sampleReport()
	r.SkippedLines = 4

	rows := sections(r)[0].rows
	assert.Equal(t, []string{"Malformed lines", "4"}, rows[len(rows)-1])
}

func TestFormatBytes(t *testing.T) {
	assert.Equal(t, "256b", formatBytes(256))
	assert.Equal(t, "150.5b", formatBytes(150.5))
	assert.Equal(t, "0b", formatBytes(0))
}

func TestMarkdownRenderer(t *testing.T) {
	out, err := RenderString(sampleReport(), FormatMarkdown)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "#### General info\n\n"))
	assert.Contains(t, out, "#### Requested resources")
	assert.Contains(t, out, "#### Response codes")
	assert.Less(t, strings.Index(out, "General info"), strings.Index(out, "Requested resources"))
	assert.Less(t, strings.Index(out, "Requested resources"), strings.Index(out, "Response codes"))

	// headers keep their case
	assert.Contains(t, out, "Metric")
	assert.NotContains(t, out, "METRIC")

	for _, cell := range []string{"`logs/access.log`", "01.01.2023", "256b", "/index.html", "Not Found"} {
		assert.Contains(t, out, cell)
	}
	assert.Contains(t, out, ":")
}

func TestAsciiDocRenderer(t *testing.T) {
	out, err := RenderString(sampleReport(), FormatAsciiDoc)
	require.NoError(t, err)

	assert.Equal(t, 3, strings.Count(out, "[cols="))
	assert.Equal(t, 6, strings.Count(out, "|===\n"))
	assert.Contains(t, out, "==== General info\n\n[cols=\"^1,>1\",options=\"header\"]\n|===\n")
	assert.Contains(t, out, "[cols=\"^1,^2,>1\",options=\"header\"]")

	lines := strings.Split(out, "\n")
	assert.Contains(t, lines, "| Metric                | Value")
	assert.Contains(t, lines, "| Average response size | 256b")
	assert.Contains(t, lines, "| 404  | Not Found | 1")
}

func TestAsciiDocEscapesPipes(t *testing.T) {
	r := sampleReport()
	r.MostRequestedResources = []domain.ResourceCount{{Resource: "/a|b", Count: 1}}

	out, err := RenderString(r, FormatAsciiDoc)
	require.NoError(t, err)
	assert.Contains(t, out, `| /a\|b`)
}

func TestTextRenderer(t *testing.T) {
	out, err := RenderString(sampleReport(), FormatText)
	require.NoError(t, err)

	for _, want := range []string{"General info", "Requested resources", "Response codes", "/index.html", "256b", "Status:", StatusClientErrors} {
		assert.Contains(t, out, want)
	}
}

func TestJSONRenderer(t *testing.T) {
	out, err := RenderString(sampleReport(), FormatJSON)
	require.NoError(t, err)
	require.True(t, gjson.Valid(out))

	assert.Equal(t, "report", gjson.Get(out, "type").String())
	assert.Equal(t, int64(SchemaVersion), gjson.Get(out, "schemaVersion").Int())
	assert.Equal(t, StatusClientErrors, gjson.Get(out, "status").String())
	assert.Equal(t, "logs/access.log", gjson.Get(out, "source").String())
	assert.Equal(t, int64(3), gjson.Get(out, "totalRequests").Int())
	assert.Equal(t, 256.0, gjson.Get(out, "averageResponseSize").Float())
	assert.Equal(t, "/index.html", gjson.Get(out, "mostRequestedResources.0.resource").String())
	assert.Equal(t, "Not Found", gjson.Get(out, "mostFrequentResponseCodes.1.name").String())
	assert.True(t, gjson.Get(out, "fromDate").Exists())
	assert.False(t, gjson.Get(out, "toDate").Exists())
	assert.False(t, gjson.Get(out, "ResponseCodeCounts").Exists())
}

func TestJSONRendererEmptyReport(t *testing.T) {
	out, err := RenderString(emptyReport(), FormatJSON)
	require.NoError(t, err)

	assert.Equal(t, StatusNoData, gjson.Get(out, "status").String())
	assert.True(t, gjson.Get(out, "mostRequestedResources").IsArray())
	assert.False(t, gjson.Get(out, "averageResponseSize").Exists())
}

func TestJSONWriterWriteError(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONWriter(&buf).WriteError("SOURCE_READ_FAILED", "open x: no such file", ""))

	out := buf.String()
	assert.Equal(t, "error", gjson.Get(out, "type").String())
	assert.Equal(t, "SOURCE_READ_FAILED", gjson.Get(out, "code").String())
	assert.False(t, gjson.Get(out, "hint").Exists())
}

func TestReportStatus(t *testing.T) {
	r := sampleReport()
	assert.Equal(t, StatusClientErrors, ReportStatus(r))

	r.ResponseCodeCounts = map[int]int{200: 3}
	assert.Equal(t, StatusOK, ReportStatus(r))

	r.ResponseCodeCounts = map[int]int{200: 1, 404: 1, 503: 1}
	assert.Equal(t, StatusServerErrors, ReportStatus(r))

	assert.Equal(t, StatusNoData, ReportStatus(emptyReport()))
}

func TestRenderIsRepeatable(t *testing.T) {
	for _, f := range []Format{FormatMarkdown, FormatAsciiDoc, FormatText, FormatJSON} {
		t.Run(string(f), func(t *testing.T) {
			report := sampleReport()
			first, err := RenderString(report, f)
			require.NoError(t, err)
			second, err := RenderString(report, f)
			require.NoError(t, err)

			assert.Equal(t, first, second)
			assert.Equal(t, sampleReport(), report)
		})
	}
}
