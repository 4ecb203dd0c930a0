package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ironsheep/parallel-recolor/internal/server"
)

func (a *app) newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the recolor and power-sum tools over MCP on stdin/stdout",
		Long: `Start an MCP (Model Context Protocol) server speaking JSON-RPC 2.0 over
stdin/stdout. Logs go to stderr so they never mix with protocol output.

Recolor and power-sum defaults come from the same configuration as the
recolor and power-sum commands.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a.logger.Info("starting MCP server",
				zap.String("version", a.info.Version),
				zap.String("commit", a.info.GitCommit))

			srv := server.New(
				server.WithLogger(a.logger),
				server.WithRunner(a.runner()),
				server.WithRemainderPolicy(a.cfg.RemainderPolicy()),
				server.WithStrategy(a.cfg.Strategy()),
				server.WithDefaultWorkers(a.cfg.Recolor.Workers),
				server.WithJPEGQuality(a.cfg.Recolor.JPEGQuality),
				server.WithVersion(a.info.Version),
				server.WithIO(cmd.InOrStdin(), cmd.OutOrStdout()),
			)
			return srv.Run()
		},
	}
}
