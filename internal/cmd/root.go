// Package cmd wires the cobra command tree: recolor, power-sum, serve and
// version. Configuration is resolved once per invocation in the root
// command's PersistentPreRunE.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/ironsheep/parallel-recolor/internal/config"
	"github.com/ironsheep/parallel-recolor/internal/logging"
	"github.com/ironsheep/parallel-recolor/internal/taskrunner"
)

// BuildInfo carries the values injected through ldflags.
type BuildInfo struct {
	Version   string
	BuildTime string
	GitCommit string
}

// app holds the state shared by every subcommand of one root command.
type app struct {
	info    BuildInfo
	v       *viper.Viper
	cfgFile string
	cfg     *config.Config
	logger  *zap.Logger
}

// NewRootCommand builds a fresh command tree.
func NewRootCommand(info BuildInfo) *cobra.Command {
	a := &app{
		info:   info,
		v:      config.New(),
		logger: zap.NewNop(),
	}

	root := &cobra.Command{
		Use:   "parallel-recolor",
		Short: "Partition work across goroutines, run it, and aggregate the results",
		Long: `parallel-recolor runs two workloads on a small partition/execute/aggregate
runner: tinting the near-grey pixels of an image in horizontal strips, and
summing two arbitrary-precision powers computed concurrently.

It can also serve both workloads as MCP tools over stdin/stdout.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = a.logger.Sync()
		},
	}

	// Global flags
	root.PersistentFlags().StringVarP(&a.cfgFile, "config", "c", "", "config file (default is $HOME/.config/parallel-recolor/config.yaml)")
	root.PersistentFlags().String("log-level", config.Default().Logging.Level, "log level: debug, info, warn or error")
	root.PersistentFlags().Int("limit", 0, "maximum concurrently running work units, 0 for no limit")
	_ = a.v.BindPFlag("logging.level", root.PersistentFlags().Lookup("log-level"))
	_ = a.v.BindPFlag("runner.limit", root.PersistentFlags().Lookup("limit"))

	root.AddCommand(
		a.newRecolorCommand(),
		a.newPowerSumCommand(),
		a.newServeCommand(),
		a.newVersionCommand(),
	)
	return root
}

// Execute runs the command tree against os.Args.
func Execute(info BuildInfo) error {
	return NewRootCommand(info).Execute()
}

// setup reads configuration and builds the logger before any subcommand runs.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if err := config.ReadFile(a.v, a.cfgFile); err != nil {
		return err
	}

	cfg, err := config.Load(a.v)
	if err != nil {
		return err
	}
	a.cfg = cfg

	logger, err := logging.New(cfg.Logging.Level)
	if err != nil {
		return err
	}
	a.logger = logger.With(zap.String("command", cmd.Name()))
	a.logger.Debug("configuration loaded",
		zap.String("config_file", a.v.ConfigFileUsed()),
		zap.Int("workers", cfg.Recolor.Workers),
		zap.String("remainder_policy", cfg.Recolor.RemainderPolicy),
		zap.String("strategy", cfg.PowerSum.Strategy),
		zap.Int("limit", cfg.Runner.Limit))
	return nil
}

func (a *app) runner() *taskrunner.Runner {
	return taskrunner.New(
		taskrunner.WithLimit(a.cfg.Runner.Limit),
		taskrunner.WithLogger(a.logger),
	)
}
