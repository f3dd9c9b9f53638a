package report

import (
	"encoding/json"
	"io"

	"github.com/zjy-dev/covmodel/internal/coverage"
)

// JSONReporter writes the model as indented JSON.
type JSONReporter struct{}

// NewJSONReporter creates a new JSONReporter.
func NewJSONReporter() *JSONReporter {
	return &JSONReporter{}
}

func (r *JSONReporter) Format() string { return "json" }

func (r *JSONReporter) Write(w io.Writer, m *coverage.Model) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(m)
}
