package commands

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/lintfang/internal/cache"
	"github.com/Sumatoshi-tech/lintfang/internal/config"
	"github.com/Sumatoshi-tech/lintfang/internal/observability"
	"github.com/Sumatoshi-tech/lintfang/pkg/linter"
)

// ErrProblemsFound signals a clean run that reported at least one error.
var ErrProblemsFound = errors.New("problems found")

// filePermissions is the mode fixed files are rewritten with.
const filePermissions = 0o600

// LintCommand holds the flags for the lint command.
type LintCommand struct {
	configPath   string
	format       string
	ruleValues   []string
	fix          bool
	showDiff     bool
	noColor      bool
	noInline     bool
	reportUnused string
	verbose      bool
}

// NewLintCommand creates and configures the lint command.
func NewLintCommand() *cobra.Command {
	cmd := &LintCommand{}

	cobraCmd := &cobra.Command{
		Use:   "lint [files...]",
		Short: "Verify files against the configured rules",
		Long: `Verify one or more files against the configured rules.

With --fix, safe autofixes are applied and files are rewritten in place.
Exit status is non-zero when any error-severity problem remains.`,
		Args: cobra.MinimumNArgs(1),
		RunE: cmd.Run,
	}

	cobraCmd.Flags().StringVarP(&cmd.configPath, "config", "c", "", "Config file path (default: .lintfang.yaml in CWD or $HOME)")
	cobraCmd.Flags().StringVarP(&cmd.format, "format", "f", "", "Output format: text, table, or json")
	cobraCmd.Flags().StringArrayVar(&cmd.ruleValues, "rule", nil, `Rule override, e.g. 'max-lines: [warn, {max: 100}]' (repeatable)`)
	cobraCmd.Flags().BoolVar(&cmd.fix, "fix", false, "Apply safe autofixes and rewrite files")
	cobraCmd.Flags().BoolVar(&cmd.showDiff, "diff", false, "With --fix, print a diff preview instead of rewriting")
	cobraCmd.Flags().BoolVar(&cmd.noColor, "no-color", false, "Disable colored output")
	cobraCmd.Flags().BoolVar(&cmd.noInline, "no-inline-config", false, "Ignore inline directive comments")
	cobraCmd.Flags().StringVar(&cmd.reportUnused, "report-unused-disable-directives", "", "Report suppressions that match nothing: off, warn, or error")
	cobraCmd.Flags().BoolVarP(&cmd.verbose, "verbose", "v", false, "Enable debug logging")

	return cobraCmd
}

// Run executes the lint command.
func (c *LintCommand) Run(_ *cobra.Command, args []string) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	logger := c.newLogger()
	engine := newEngine(logger)

	err = config.ValidateRules(cfg.Rules, engine.GetRules())
	if err != nil {
		return err
	}

	lintCfg := cfg.ToLinterConfig()
	sources := cache.New(cache.DefaultMaxSize)
	printer := newPrinter(cfg.Format, c.noColor)

	var totalErrors, totalWarnings int

	var totalBytes uint64

	started := time.Now()

	for _, filename := range args {
		result, runErr := c.lintFile(engine, lintCfg, sources, filename)
		if runErr != nil {
			return runErr
		}

		printer.PrintFile(filename, result.problems)

		errCount, warnCount := countBySeverity(result.problems)
		totalErrors += errCount
		totalWarnings += warnCount
		totalBytes += uint64(result.size)

		logger.Debug("file verified",
			"file", filename,
			"problems", len(result.problems),
			"fixed", result.fixed,
		)
	}

	printer.PrintSummary(runSummary{
		files:    len(args),
		errors:   totalErrors,
		warnings: totalWarnings,
		scanned:  humanize.Bytes(totalBytes),
		elapsed:  time.Since(started),
	})

	if totalErrors > 0 {
		return fmt.Errorf("%w: %d error(s)", ErrProblemsFound, totalErrors)
	}

	return nil
}

// fileResult is the outcome of linting one file.
type fileResult struct {
	problems []linter.Problem
	fixed    bool
	size     int
}

func (c *LintCommand) lintFile(engine *linter.Linter, cfg linter.Config, sources *cache.SourceCache, filename string) (fileResult, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return fileResult{}, fmt.Errorf("read %s: %w", filename, err)
	}

	text := string(content)
	opts := c.verifyOptions(filename)

	if c.fix {
		return c.fixFile(engine, cfg, filename, text, opts)
	}

	key := cache.KeyFor(text, cfg)

	if src := sources.Get(key); src != nil {
		problems, verifyErr := engine.VerifyCode(src, cfg, opts)
		if verifyErr != nil {
			return fileResult{}, fmt.Errorf("verify %s: %w", filename, verifyErr)
		}

		return fileResult{problems: problems, size: len(content)}, nil
	}

	problems, err := engine.Verify(text, cfg, opts)
	if err != nil {
		return fileResult{}, fmt.Errorf("verify %s: %w", filename, err)
	}

	sources.Put(key, engine.GetSourceCode())

	return fileResult{problems: problems, size: len(content)}, nil
}

func (c *LintCommand) fixFile(engine *linter.Linter, cfg linter.Config, filename, text string, opts linter.VerifyOptions) (fileResult, error) {
	result, err := engine.VerifyAndFix(text, cfg, linter.FixOptions{VerifyOptions: opts})
	if err != nil {
		return fileResult{}, fmt.Errorf("fix %s: %w", filename, err)
	}

	if result.Fixed {
		if c.showDiff {
			printDiff(filename, text, result.Output, c.noColor)
		} else {
			writeErr := os.WriteFile(filename, []byte(result.Output), filePermissions)
			if writeErr != nil {
				return fileResult{}, fmt.Errorf("write %s: %w", filename, writeErr)
			}
		}
	}

	return fileResult{problems: result.Messages, fixed: result.Fixed, size: len(text)}, nil
}

func (c *LintCommand) verifyOptions(filename string) linter.VerifyOptions {
	opts := linter.VerifyOptions{Filename: filename}

	if c.noInline {
		allow := false
		opts.AllowInlineConfig = &allow
	}

	if c.reportUnused != "" {
		opts.ReportUnusedDisableDirectives = c.reportUnused
	}

	return opts
}

func (c *LintCommand) loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(c.configPath)
	if err != nil {
		return nil, err
	}

	if c.format != "" {
		cfg.Format = c.format
	}

	if cfg.Rules == nil {
		cfg.Rules = map[string]any{}
	}

	for _, value := range c.ruleValues {
		err = config.ParseRuleOverride(value, cfg.Rules)
		if err != nil {
			return nil, err
		}
	}

	validateErr := cfg.Validate()
	if validateErr != nil {
		return nil, validateErr
	}

	return cfg, nil
}

func (c *LintCommand) newLogger() *slog.Logger {
	level := slog.LevelWarn
	if c.verbose {
		level = slog.LevelDebug
	}

	return observability.NewLogger(level, false)
}

func countBySeverity(problems []linter.Problem) (errorCount, warnCount int) {
	for _, p := range problems {
		switch p.Severity {
		case linter.SeverityError:
			errorCount++
		case linter.SeverityWarn:
			warnCount++
		}
	}

	return errorCount, warnCount
}
