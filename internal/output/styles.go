package output

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/vburojevic/logreport/internal/domain"
)

// Styles holds all lipgloss styles for text output
var Styles = struct {
	Header  lipgloss.Style
	Label   lipgloss.Style
	Value   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Danger  lipgloss.Style
}{
	Header:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")).BorderStyle(lipgloss.NormalBorder()).BorderBottom(true).BorderForeground(lipgloss.Color("239")),
	Label:   lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
	Value:   lipgloss.NewStyle().Bold(true),
	Success: lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true),  // Green
	Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true), // Orange
	Danger:  lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true), // Red
}

// Status values derived from the response codes of a report
const (
	StatusNoData       = "NO DATA"
	StatusOK           = "OK"
	StatusClientErrors = "CLIENT ERRORS"
	StatusServerErrors = "SERVER ERRORS"
)

// ReportStatus classifies a report by the worst status code class it contains
func ReportStatus(report *domain.LogReport) string {
	if report.TotalRequests == 0 {
		return StatusNoData
	}
	status := StatusOK
	for code := range report.ResponseCodeCounts {
		switch {
		case code >= 500:
			return StatusServerErrors
		case code >= 400:
			status = StatusClientErrors
		}
	}
	return status
}

// StatusStyle returns a style based on status
func StatusStyle(status string) lipgloss.Style {
	switch status {
	case StatusServerErrors:
		return Styles.Danger
	case StatusClientErrors:
		return Styles.Warning
	case StatusOK:
		return Styles.Success
	default:
		return Styles.Label
	}
}

// StatusText returns styled status text
func StatusText(report *domain.LogReport) string {
	status := ReportStatus(report)
	return StatusStyle(status).Render(status)
}
