// Package main provides the entry point for the lintfang CLI tool.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/lintfang/cmd/lintfang/commands"
	"github.com/Sumatoshi-tech/lintfang/pkg/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "lintfang",
		Short: "Lintfang - pluggable source verification engine",
		Long: `Lintfang verifies source files against configurable rules.

Commands:
  lint      Verify files and optionally apply autofixes
  rules     List registered rules
  mcp       Start MCP server for AI agent integration`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(commands.NewLintCommand())
	rootCmd.AddCommand(commands.NewRulesCommand())
	rootCmd.AddCommand(commands.NewMCPCommand())
	rootCmd.AddCommand(versionCmd())

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintf(os.Stdout, "lintfang %s (commit: %s, built: %s)\n", version.Version, version.Commit, version.Date)
		},
	}
}
