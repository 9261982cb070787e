package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/vburojevic/logreport/internal/domain"
)

// AsciiDoc column specs per section, mirroring the Markdown alignment
var asciidocCols = []string{
	`^1,>1`,
	`^1,>1`,
	`^1,^2,>1`,
}

// AsciiDocRenderer writes a report as three AsciiDoc tables. Cells are
// padded so columns line up in the source text.
type AsciiDocRenderer struct{}

// Render writes the report to w
func (a *AsciiDocRenderer) Render(w io.Writer, report *domain.LogReport) error {
	var b strings.Builder
	for i, s := range sections(report) {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "==== %s\n\n", s.title)
		fmt.Fprintf(&b, "[cols=\"%s\",options=\"header\"]\n", asciidocCols[i])
		b.WriteString("|===\n")

		widths := columnWidths(s)
		writeAsciiDocRow(&b, s.header, widths)
		for _, row := range s.rows {
			writeAsciiDocRow(&b, row, widths)
		}
		b.WriteString("|===\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writeAsciiDocRow(b *strings.Builder, cells []string, widths []int) {
	for i, c := range cells {
		if i > 0 {
			b.WriteString(" ")
		}
		b.WriteString("| ")
		c = escapeAsciiDoc(c)
		if i < len(cells)-1 {
			c = runewidth.FillRight(c, widths[i])
		}
		b.WriteString(c)
	}
	b.WriteString("\n")
}

// columnWidths returns the display width of the widest cell per column
func columnWidths(s section) []int {
	widths := make([]int, len(s.header))
	measure := func(row []string) {
		for i, c := range row {
			if n := runewidth.StringWidth(escapeAsciiDoc(c)); i < len(widths) && n > widths[i] {
				widths[i] = n
			}
		}
	}
	measure(s.header)
	for _, row := range s.rows {
		measure(row)
	}
	return widths
}

func escapeAsciiDoc(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
