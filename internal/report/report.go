package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/zjy-dev/covmodel/internal/coverage"
)

// Reporter encodes an assembled coverage model for a renderer to consume.
type Reporter interface {
	// Write encodes m to w.
	Write(w io.Writer, m *coverage.Model) error
	// Format names the encoding, e.g. "json".
	Format() string
}

// New returns the Reporter for format ("json" or "yaml").
func New(format string) (Reporter, error) {
	switch format {
	case "json":
		return NewJSONReporter(), nil
	case "yaml", "yml":
		return NewYAMLReporter(), nil
	default:
		return nil, fmt.Errorf("unsupported report format %q", format)
	}
}

// Save writes m to path, creating the parent directory if needed.
func Save(r Reporter, path string, m *coverage.Model) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create report directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	if err := r.Write(f, m); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s report: %w", r.Format(), err)
	}
	return f.Close()
}
