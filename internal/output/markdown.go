package output

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/vburojevic/logreport/internal/domain"
)

// Column alignment per section, in section order
var markdownAlignment = []tw.Alignment{
	{tw.AlignCenter, tw.AlignRight},
	{tw.AlignCenter, tw.AlignRight},
	{tw.AlignCenter, tw.AlignCenter, tw.AlignRight},
}

// MarkdownRenderer writes a report as three Markdown tables
type MarkdownRenderer struct{}

// Render writes the report to w
func (m *MarkdownRenderer) Render(w io.Writer, report *domain.LogReport) error {
	for i, s := range sections(report) {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "#### %s\n\n", s.title); err != nil {
			return err
		}

		table := tablewriter.NewTable(w,
			tablewriter.WithRenderer(renderer.NewMarkdown()),
			tablewriter.WithHeaderAutoFormat(tw.Off),
			tablewriter.WithAlignment(markdownAlignment[i]),
		)
		table.Header(s.header)
		for _, row := range s.rows {
			if err := table.Append(row); err != nil {
				return fmt.Errorf("%s table: %w", s.title, err)
			}
		}
		if err := table.Render(); err != nil {
			return fmt.Errorf("%s table: %w", s.title, err)
		}
	}
	return nil
}
