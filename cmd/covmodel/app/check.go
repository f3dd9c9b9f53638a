package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/zjy-dev/covmodel/internal/config"
	"github.com/zjy-dev/covmodel/internal/coverage"
	"github.com/zjy-dev/covmodel/internal/vcover"
)

// TargetError is returned by "check" when a metric misses its target.
type TargetError struct {
	Failed []coverage.Metric
}

func (e *TargetError) Error() string {
	names := make([]string, len(e.Failed))
	for i, m := range e.Failed {
		names[i] = string(m)
	}
	return fmt.Sprintf("coverage targets missed: %s", strings.Join(names, ", "))
}

// NewCheckCommand creates the "check" subcommand.
func NewCheckCommand(g *globalOptions) *cobra.Command {
	var (
		db         string
		designUnit string
		duSummary  string
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check design-unit coverage against the fixed targets.",
		Long: `Check design-unit coverage against the fixed targets:

  statements  >= 95%
  branches    >= 90%
  expressions >= 90%
  conditions  >= 80%

The design-unit summary is taken from --du-summary when given, otherwise
from "vcover report -summary -du=<unit>" on the coverage database. The
command fails when any target is missed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := g.cfg
			if cmd.Flags().Changed("design-unit") {
				cfg.Vcover.DesignUnit = designUnit
			}

			text, err := g.designUnitText(cmd.Context(), cfg, db, duSummary)
			if err != nil {
				return err
			}
			dut := coverage.ParseDesignUnitSummary(text)
			logSummaryDiagnostics(dut.Diagnostics)

			result := coverage.EvaluateTargets(dut)
			printTargets(cmd.OutOrStdout(), cfg.Vcover.DesignUnit, dut, result)
			if !result.Passed {
				var failed []coverage.Metric
				for _, r := range result.Results {
					if r.Status == coverage.StatusFail {
						failed = append(failed, r.Metric)
					}
				}
				return &TargetError{Failed: failed}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&db, "db", "", "Coverage database (default: first configured database found)")
	cmd.Flags().StringVar(&designUnit, "design-unit", "cpm", "Design unit to check")
	cmd.Flags().StringVar(&duSummary, "du-summary", "", "File with 'vcover report -summary -du=<unit>' output")

	return cmd
}

func (g *globalOptions) designUnitText(ctx context.Context, cfg *config.Config, db, file string) (string, error) {
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("failed to read report: %w", err)
		}
		return string(data), nil
	}

	if db == "" {
		var err error
		db, err = vcover.LocateDatabase(cfg.Coverage.Dir, cfg.Coverage.Databases)
		if err != nil {
			return "", err
		}
	}
	if cfg.Vcover.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(cfg.Vcover.Timeout)*time.Second)
		defer cancel()
	}
	tool := vcover.New(g.executor, cfg.Vcover)
	return tool.Report(ctx, db, tool.DesignUnitArgs()...)
}

func printTargets(w io.Writer, unit string, dut coverage.Summary, result coverage.TargetReport) {
	fmt.Fprintf(w, "Coverage targets for design unit %s\n", unit)
	for _, r := range result.Results {
		fmt.Fprintf(w, "  %-12s %7.2f%%  >= %3.0f%%  %-4s  [%s]\n", r.Metric, r.Pct, r.Required, r.Status, r.Badge)
	}
	fmt.Fprintf(w, "  %-12s %7.2f%%            [%s]\n", "total", dut.TotalPct, coverage.ClassifyBadge(dut.TotalPct))
}
