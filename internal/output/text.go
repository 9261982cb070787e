package output

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/vburojevic/logreport/internal/domain"
)

// TextRenderer writes a report for a terminal: styled headings and boxed
// tables.
type TextRenderer struct{}

// Render writes the report to w
func (t *TextRenderer) Render(w io.Writer, report *domain.LogReport) error {
	for i, s := range sections(report) {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w, Styles.Header.Render(s.title)); err != nil {
			return err
		}

		table := tablewriter.NewTable(w)
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

	_, err := fmt.Fprintf(w, "\n%s %s\n", Styles.Label.Render("Status:"), StatusText(report))
	return err
}
