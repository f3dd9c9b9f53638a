package app

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zjy-dev/covmodel/internal/config"
	"github.com/zjy-dev/covmodel/internal/coverage"
	"github.com/zjy-dev/covmodel/internal/logger"
	"github.com/zjy-dev/covmodel/internal/report"
	"github.com/zjy-dev/covmodel/internal/vcover"
)

// reportFiles names previously captured report texts. Empty names are read
// as empty blocks.
type reportFiles struct {
	summary    string
	designUnit string
	zeros      string
	functional string
}

func (f reportFiles) any() bool {
	return f.summary != "" || f.designUnit != "" || f.zeros != "" || f.functional != ""
}

func (f reportFiles) read() (coverage.Reports, error) {
	var r coverage.Reports
	for _, item := range []struct {
		path string
		dst  *string
	}{
		{f.summary, &r.Summary},
		{f.designUnit, &r.DesignUnit},
		{f.zeros, &r.Zeros},
		{f.functional, &r.Functional},
	} {
		if item.path == "" {
			continue
		}
		data, err := os.ReadFile(item.path)
		if err != nil {
			return coverage.Reports{}, fmt.Errorf("failed to read report: %w", err)
		}
		*item.dst = string(data)
	}
	return r, nil
}

func (f *reportFiles) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.summary, "summary", "", "File with 'vcover report -summary' output")
	cmd.Flags().StringVar(&f.designUnit, "du-summary", "", "File with 'vcover report -summary -du=<unit>' output")
	cmd.Flags().StringVar(&f.zeros, "zeros", "", "File with 'vcover report -zeros -details -du=<unit>' output")
	cmd.Flags().StringVar(&f.functional, "functional", "", "File with 'vcover report -cvg -details' output")
}

// collectReports locates the database, unless db is given, and captures
// the four report blocks from vcover.
func (g *globalOptions) collectReports(ctx context.Context, cfg *config.Config, db string) (coverage.Reports, error) {
	if db == "" {
		var err error
		db, err = vcover.LocateDatabase(cfg.Coverage.Dir, cfg.Coverage.Databases)
		if err != nil {
			return coverage.Reports{}, err
		}
	}
	logger.Info("Reading coverage data from: %s", db)

	tool := vcover.New(g.executor, cfg.Vcover)
	reports, err := tool.Collect(ctx, db)
	if err != nil {
		return coverage.Reports{}, fmt.Errorf("failed to collect coverage reports: %w", err)
	}
	return reports, nil
}

func assemble(r coverage.Reports) *coverage.Model {
	m := coverage.Assemble(r)
	logDiagnostics(&m)
	return &m
}

func logDiagnostics(m *coverage.Model) {
	logSummaryDiagnostics(coverage.Diagnostics{
		Overwrites: m.Overall.Diagnostics.Overwrites + m.DUT.Diagnostics.Overwrites,
		Rejected:   m.Overall.Diagnostics.Rejected + m.DUT.Diagnostics.Rejected,
	})
	if n := m.Diagnostics.DuplicateCovergroups; n > 0 {
		logger.Debug("%d repeated covergroup definitions skipped", n)
	}
	if n := m.Diagnostics.DroppedUncovered; n > 0 {
		logger.Warn("%d zero-hit lines had no file header and were dropped", n)
	}
	logger.Info("Model: total %.2f%%, DUT %.2f%%, %d uncovered items, %d covergroups",
		m.Overall.TotalPct, m.DUT.TotalPct, m.Uncovered.Count(), len(m.Functional))
}

func logSummaryDiagnostics(d coverage.Diagnostics) {
	if d.Overwrites > 0 {
		logger.Warn("%d metric rows were repeated; the last row of each metric was kept", d.Overwrites)
	}
	if d.Rejected > 0 {
		logger.Warn("%d metric rows had impossible counts and were skipped", d.Rejected)
	}
}

// writeModel encodes m to out.Path, or to the command's stdout when no path
// is configured.
func writeModel(cmd *cobra.Command, out config.OutputConfig, m *coverage.Model) error {
	r, err := report.New(out.Format)
	if err != nil {
		return err
	}
	if out.Path == "" {
		return r.Write(cmd.OutOrStdout(), m)
	}
	if err := report.Save(r, out.Path, m); err != nil {
		return err
	}
	logger.Info("Model written to %s", out.Path)
	return nil
}

// outputFlags are shared by the commands that emit a model.
type outputFlags struct {
	format string
	path   string
}

func (o *outputFlags) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.format, "format", "json", "Output format: json, yaml or yml")
	cmd.Flags().StringVarP(&o.path, "output", "o", "", "Write the model to this file instead of stdout")
}

// apply overrides cfg with the flags the user set explicitly.
func (o *outputFlags) apply(cmd *cobra.Command, cfg *config.OutputConfig) {
	if cmd.Flags().Changed("format") {
		cfg.Format = o.format
	}
	if cmd.Flags().Changed("output") {
		cfg.Path = o.path
	}
}
