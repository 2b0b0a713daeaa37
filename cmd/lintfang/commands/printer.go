package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/Sumatoshi-tech/lintfang/internal/config"
	"github.com/Sumatoshi-tech/lintfang/pkg/linter"
)

// runSummary aggregates the whole run for the closing line.
type runSummary struct {
	files    int
	errors   int
	warnings int
	scanned  string
	elapsed  time.Duration
}

// printer renders per-file problem lists in one of the output formats.
type printer struct {
	format  string
	noColor bool
}

func newPrinter(format string, noColor bool) *printer {
	if noColor {
		color.NoColor = true //nolint:reassign // intentional override of library global
	}

	return &printer{format: format, noColor: noColor}
}

// PrintFile renders one file's problems to stdout.
func (p *printer) PrintFile(filename string, problems []linter.Problem) {
	if len(problems) == 0 {
		return
	}

	switch p.format {
	case config.FormatJSON:
		p.printJSON(filename, problems)
	case config.FormatTable:
		p.printTable(filename, problems)
	default:
		p.printText(filename, problems)
	}
}

// PrintSummary renders the closing run summary to stdout.
func (p *printer) PrintSummary(summary runSummary) {
	if p.format == config.FormatJSON {
		return
	}

	total := summary.errors + summary.warnings
	if total == 0 {
		color.New(color.FgGreen).Fprintf(os.Stdout, "clean: %d file(s), %s scanned in %s\n",
			summary.files, summary.scanned, summary.elapsed.Round(time.Millisecond))

		return
	}

	style := color.New(color.FgYellow)
	if summary.errors > 0 {
		style = color.New(color.FgRed)
	}

	style.Fprintf(os.Stdout, "%d problem(s) (%d error(s), %d warning(s)) in %d file(s), %s scanned in %s\n",
		total, summary.errors, summary.warnings, summary.files, summary.scanned, summary.elapsed.Round(time.Millisecond))
}

func (p *printer) printText(filename string, problems []linter.Problem) {
	fmt.Fprintf(os.Stdout, "%s\n", filename)

	for _, problem := range problems {
		style := color.New(color.FgYellow)

		severity := "warn"
		if problem.Severity == linter.SeverityError {
			severity = "error"
			style = color.New(color.FgRed)
		}

		style.Fprintf(os.Stdout, "  %d:%d  %s  %s", problem.Line, problem.Column, severity, problem.Message)

		if problem.RuleID != "" {
			fmt.Fprintf(os.Stdout, "  [%s]", problem.RuleID)
		}

		fmt.Fprintln(os.Stdout)
	}

	fmt.Fprintln(os.Stdout)
}

func (p *printer) printTable(filename string, problems []linter.Problem) {
	tbl := table.NewWriter()
	tbl.SetOutputMirror(os.Stdout)
	tbl.SetTitle(filename)
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Options.SeparateRows = false

	tbl.AppendHeader(table.Row{"Line", "Col", "Severity", "Rule", "Message"})

	for _, problem := range problems {
		severity := "warn"
		if problem.Severity == linter.SeverityError {
			severity = "error"
		}

		tbl.AppendRow(table.Row{problem.Line, problem.Column, severity, problem.RuleID, problem.Message})
	}

	tbl.Render()
}

func (p *printer) printJSON(filename string, problems []linter.Problem) {
	payload := map[string]any{
		"filePath": filename,
		"messages": problems,
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")

	_ = enc.Encode(payload) //nolint:errcheck // stdout encode failure has no recovery
}

// printDiff renders a fix preview without touching the file.
func printDiff(filename, before, after string, noColor bool) {
	fmt.Fprintf(os.Stdout, "--- %s\n+++ %s (fixed)\n", filename, filename)

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffCleanupSemantic(dmp.DiffMain(before, after, true))

	for _, diff := range diffs {
		switch diff.Type {
		case diffmatchpatch.DiffInsert:
			if noColor {
				fmt.Fprintf(os.Stdout, "{+%s+}", diff.Text)
			} else {
				color.New(color.FgGreen).Fprint(os.Stdout, diff.Text)
			}
		case diffmatchpatch.DiffDelete:
			if noColor {
				fmt.Fprintf(os.Stdout, "[-%s-]", diff.Text)
			} else {
				color.New(color.FgRed).Fprint(os.Stdout, diff.Text)
			}
		case diffmatchpatch.DiffEqual:
			fmt.Fprint(os.Stdout, diff.Text)
		}
	}

	fmt.Fprintln(os.Stdout)
}
