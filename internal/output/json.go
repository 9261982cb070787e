package output

import (
	"encoding/json"
	"io"

	"github.com/vburojevic/logreport/internal/domain"
)

// JSONWriter writes reports and errors as JSON objects, one per line
type JSONWriter struct {
	encoder *json.Encoder
}

// NewJSONWriter creates a new JSON writer
func NewJSONWriter(w io.Writer) *JSONWriter {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false) // keep paths and agents unescaped
	return &JSONWriter{encoder: enc}
}

// ReportOutput wraps a report with its envelope
type ReportOutput struct {
	Type          string `json:"type"` // Always "report"
	SchemaVersion int    `json:"schemaVersion"`
	Status        string `json:"status"`
	*domain.LogReport
}

// ErrorOutput represents a structured error
type ErrorOutput struct {
	Type          string `json:"type"` // Always "error"
	SchemaVersion int    `json:"schemaVersion"`
	Code          string `json:"code"`
	Message       string `json:"message"`
	Hint          string `json:"hint,omitempty"`
}

// WriteReport writes a report object
func (w *JSONWriter) WriteReport(report *domain.LogReport) error {
	return w.encoder.Encode(&ReportOutput{
		Type:          "report",
		SchemaVersion: SchemaVersion,
		Status:        ReportStatus(report),
		LogReport:     report,
	})
}

// WriteError writes an error object
func (w *JSONWriter) WriteError(code, message, hint string) error {
	return w.encoder.Encode(&ErrorOutput{
		Type:          "error",
		SchemaVersion: SchemaVersion,
		Code:          code,
		Message:       message,
		Hint:          hint,
	})
}

// JSONRenderer writes a report as a single JSON object
type JSONRenderer struct{}

// Render writes the report to w
func (j *JSONRenderer) Render(w io.Writer, report *domain.LogReport) error {
	return NewJSONWriter(w).WriteReport(report)
}
