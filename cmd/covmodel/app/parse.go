package app

import (
	"github.com/spf13/cobra"

	"github.com/zjy-dev/covmodel/internal/logger"
)

// NewParseCommand creates the "parse" subcommand.
func NewParseCommand(g *globalOptions) *cobra.Command {
	var (
		files reportFiles
		out   outputFlags
	)

	cmd := &cobra.Command{
		Use:   "parse",
		Short: "Build the coverage model from previously captured vcover output.",
		Long: `Build the coverage model from previously captured vcover output.

Each flag names a file holding the text of one vcover report. A report that
is not given is treated as empty, so its part of the model keeps its
defaults.

Examples:
  covmodel parse --summary summary.txt --du-summary du.txt \
      --zeros zeros.txt --functional cvg.txt --format yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := g.cfg
			out.apply(cmd, &cfg.Output)

			if !files.any() {
				logger.Warn("no report files given, the model will be empty")
			}
			reports, err := files.read()
			if err != nil {
				return err
			}
			return writeModel(cmd, cfg.Output, assemble(reports))
		},
	}

	files.addFlags(cmd)
	out.addFlags(cmd)

	return cmd
}
