package commands

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/lintfang/internal/config"
	"github.com/Sumatoshi-tech/lintfang/internal/mcp"
	"github.com/Sumatoshi-tech/lintfang/internal/observability"
)

// NewMCPCommand creates the MCP server command.
func NewMCPCommand() *cobra.Command {
	var (
		configPath      string
		debug           bool
		diagnosticsAddr string
	)

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for AI agent integration",
		Long: `Start a Model Context Protocol (MCP) server on stdio transport.

The MCP server exposes lintfang capabilities as tools AI agents can
discover and invoke:
  - lintfang_lint: verify source code and list problems
  - lintfang_fix: verify and apply safe autofixes
  - lintfang_rules: list registered rules`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cobraCmd *cobra.Command, _ []string) error {
			level := slog.LevelInfo
			if debug {
				level = slog.LevelDebug
			}

			logger := observability.NewLogger(level, true)

			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				return err
			}

			var metrics *observability.LintMetrics

			if diagnosticsAddr != "" {
				diag, diagErr := observability.NewDiagnosticsServer(diagnosticsAddr)
				if diagErr != nil {
					return diagErr
				}

				defer func() {
					closeErr := diag.Close()
					if closeErr != nil {
						logger.Warn("diagnostics shutdown failed", "error", closeErr)
					}
				}()

				metrics, err = observability.NewLintMetrics(diag.Meter())
				if err != nil {
					return err
				}

				logger.Info("diagnostics listening", "addr", diag.Addr())
			}

			srv := mcp.NewServer(mcp.ServerDeps{
				Engine:  newEngine(logger),
				Config:  cfg.ToLinterConfig(),
				Logger:  logger,
				Metrics: metrics,
			})

			return srv.Run(cobraCmd.Context())
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Config file path (default: .lintfang.yaml in CWD or $HOME)")
	cmd.Flags().BoolVar(&debug, "debug", false, "Enable debug logging to stderr")
	cmd.Flags().StringVar(&diagnosticsAddr, "diagnostics-addr", "", "Serve /healthz, /readyz, /metrics on this address (empty disables)")

	return cmd
}
