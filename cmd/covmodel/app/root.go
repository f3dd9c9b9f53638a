package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjy-dev/covmodel/internal/config"
	"github.com/zjy-dev/covmodel/internal/exec"
	"github.com/zjy-dev/covmodel/internal/logger"
)

// globalOptions carries the persistent flags and the pieces every
// subcommand shares.
type globalOptions struct {
	configFile string
	logLevel   string
	logDir     string

	cfg      *config.Config
	executor exec.Executor
}

// NewCovmodelCommand creates the root command for the covmodel tool.
func NewCovmodelCommand() *cobra.Command {
	return newRootCommand(&globalOptions{executor: exec.NewCommandExecutor()})
}

func newRootCommand(g *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "covmodel",
		Short: "Build a structured coverage model from vcover reports.",
		Long: `covmodel turns the text reports of the vcover UCDB analysis tool into a
normalized coverage model: per-metric code coverage for the whole design and
for one design unit, the list of uncovered items, and the covergroup /
coverpoint / bin hierarchy of functional coverage.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return g.setup(cmd)
		},
	}

	cmd.PersistentFlags().StringVar(&g.configFile, "config", "", "Config file (default: configs/config.yaml)")
	cmd.PersistentFlags().StringVar(&g.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	cmd.PersistentFlags().StringVar(&g.logDir, "log-dir", "", "Also write logs to a file in this directory")

	cmd.AddCommand(NewBuildCommand(g))
	cmd.AddCommand(NewParseCommand(g))
	cmd.AddCommand(NewCheckCommand(g))

	return cmd
}

// setup loads the configuration and initializes the logger. Logs go to
// stderr so stdout stays reserved for the encoded model.
func (g *globalOptions) setup(cmd *cobra.Command) error {
	cfg, err := config.LoadConfigFile(g.configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if g.logLevel != "" {
		cfg.Log.Level = g.logLevel
	}
	if g.logDir != "" {
		cfg.Log.Dir = g.logDir
	}
	g.cfg = cfg

	logger.Init(cfg.Log.Level)
	logger.SetLevel(cfg.Log.Level)
	logger.SetOutput(cmd.ErrOrStderr())
	if cfg.Log.Dir != "" {
		if err := logger.InitWithFile(cfg.Log.Level, cfg.Log.Dir); err != nil {
			return err
		}
	}
	return nil
}
