package report

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/zjy-dev/covmodel/internal/coverage"
)

// YAMLReporter writes the model as YAML.
type YAMLReporter struct{}

// NewYAMLReporter creates a new YAMLReporter.
func NewYAMLReporter() *YAMLReporter {
	return &YAMLReporter{}
}

func (r *YAMLReporter) Format() string { return "yaml" }

func (r *YAMLReporter) Write(w io.Writer, m *coverage.Model) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(m); err != nil {
		return err
	}
	return enc.Close()
}
