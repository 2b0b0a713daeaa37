// Package config loads lint run configuration from file, environment
// variables, and defaults, and validates rule options against the schemas
// rules declare.
package config

import (
	"errors"
	"fmt"

	"github.com/Sumatoshi-tech/lintfang/pkg/linter"
)

// Output format names accepted by the CLI.
const (
	FormatText  = "text"
	FormatTable = "table"
	FormatJSON  = "json"
)

// Defaults applied before any file or environment override.
const (
	DefaultFormat       = FormatText
	DefaultParser       = linter.DefaultParserName
	DefaultReportUnused = "off"
)

var (
	errUnknownFormat       = errors.New("unknown output format")
	errUnknownReportPolicy = errors.New("unknown unused-directive policy")
)

// Config is the top-level configuration struct for lintfang.
// Field tags use mapstructure for viper unmarshalling.
type Config struct {
	Rules         map[string]any  `mapstructure:"rules"`
	Env           map[string]bool `mapstructure:"env"`
	Globals       map[string]any  `mapstructure:"globals"`
	Settings      map[string]any  `mapstructure:"settings"`
	Parser        string          `mapstructure:"parser"`
	ParserOptions map[string]any  `mapstructure:"parser_options"`

	Fix          bool   `mapstructure:"fix"`
	Format       string `mapstructure:"format"`
	ReportUnused string `mapstructure:"report_unused_disable_directives"`
}

// Validate checks the presentation and policy knobs. Rule severities are
// not checked here: unknown encodings degrade to "off" at verification
// time, the same way inline severities do.
func (c *Config) Validate() error {
	switch c.Format {
	case FormatText, FormatTable, FormatJSON:
	default:
		return fmt.Errorf("%w: %q", errUnknownFormat, c.Format)
	}

	switch c.ReportUnused {
	case "off", "warn", "error":
	default:
		return fmt.Errorf("%w: %q", errUnknownReportPolicy, c.ReportUnused)
	}

	return nil
}

// ToLinterConfig converts the loaded file configuration into the engine's
// verification config.
func (c *Config) ToLinterConfig() linter.Config {
	return linter.Config{
		Rules:         c.Rules,
		Env:           c.Env,
		Globals:       c.Globals,
		Settings:      c.Settings,
		Parser:        c.Parser,
		ParserOptions: c.ParserOptions,
	}
}
