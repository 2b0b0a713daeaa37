package commands

import (
	"encoding/json"
	"log/slog"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/lintfang/internal/config"
	"github.com/Sumatoshi-tech/lintfang/internal/observability"
)

// NewRulesCommand creates the rules listing command.
func NewRulesCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List registered rules",
		RunE: func(_ *cobra.Command, _ []string) error {
			engine := newEngine(observability.NewLogger(slog.LevelWarn, false))
			entries := engine.GetRules()

			if format == config.FormatJSON {
				rows := make([]map[string]any, 0, len(entries))
				for _, entry := range entries {
					rows = append(rows, map[string]any{
						"id":          entry.ID,
						"description": entry.Rule.Meta.Docs.Description,
						"category":    entry.Rule.Meta.Docs.Category,
						"fixable":     entry.Rule.Meta.Fixable,
						"deprecated":  entry.Rule.Meta.Deprecated,
					})
				}

				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")

				return enc.Encode(rows)
			}

			tbl := table.NewWriter()
			tbl.SetOutputMirror(os.Stdout)
			tbl.SetStyle(table.StyleLight)
			tbl.AppendHeader(table.Row{"Rule", "Category", "Fixable", "Description"})

			for _, entry := range entries {
				tbl.AppendRow(table.Row{
					entry.ID,
					entry.Rule.Meta.Docs.Category,
					entry.Rule.Meta.Fixable,
					entry.Rule.Meta.Docs.Description,
				})
			}

			tbl.Render()

			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", config.FormatTable, "Output format: table or json")

	return cmd
}
