package app

import (
	"github.com/spf13/cobra"
)

// NewBuildCommand creates the "build" subcommand.
func NewBuildCommand(g *globalOptions) *cobra.Command {
	var (
		db          string
		coverageDir string
		designUnit  string
		timeout     int
		out         outputFlags
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Run vcover on a coverage database and emit the coverage model.",
		Long: `Run vcover on a coverage database and emit the coverage model.

The database is the first of coverage.databases (default: merged.ucdb, then
CpmMainTest.ucdb) found in coverage.dir, unless --db names one explicitly.
Four reports are captured:

  vcover report -summary <db>
  vcover report -summary -du=<unit> <db>
  vcover report -zeros -details -du=<unit> <db>
  vcover report -cvg -details <db>

Examples:
  # Build the model from coverage/merged.ucdb and print it as JSON
  covmodel build

  # Scope the design-unit reports to "fifo" and write YAML to a file
  covmodel build --design-unit fifo --format yaml -o coverage/model.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := g.cfg
			if cmd.Flags().Changed("coverage-dir") {
				cfg.Coverage.Dir = coverageDir
			}
			if cmd.Flags().Changed("design-unit") {
				cfg.Vcover.DesignUnit = designUnit
			}
			if cmd.Flags().Changed("timeout") {
				cfg.Vcover.Timeout = timeout
			}
			out.apply(cmd, &cfg.Output)

			reports, err := g.collectReports(cmd.Context(), cfg, db)
			if err != nil {
				return err
			}
			return writeModel(cmd, cfg.Output, assemble(reports))
		},
	}

	cmd.Flags().StringVar(&db, "db", "", "Coverage database (default: first configured database found)")
	cmd.Flags().StringVar(&coverageDir, "coverage-dir", "coverage", "Directory searched for the coverage database")
	cmd.Flags().StringVar(&designUnit, "design-unit", "cpm", "Design unit for the scoped reports")
	cmd.Flags().IntVar(&timeout, "timeout", 120, "Timeout in seconds for all vcover invocations")
	out.addFlags(cmd)

	return cmd
}
