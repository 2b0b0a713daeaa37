package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/lintfang/internal/config"
	"github.com/Sumatoshi-tech/lintfang/pkg/linter"
)

const sampleConfigYAML = `rules:
  max-lines: [error, {max: 100}]
  no-tab-indent: warn
env:
  shell: true
globals:
  document: readonly
parser: default
format: json
report_unused_disable_directives: warn
fix: true
`

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), ".lintfang.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Parallel()

	cfg, err := config.LoadConfig("")
	require.NoError(t, err)

	assert.Empty(t, cfg.Rules)
	assert.Equal(t, config.DefaultParser, cfg.Parser)
	assert.Equal(t, config.DefaultFormat, cfg.Format)
	assert.Equal(t, config.DefaultReportUnused, cfg.ReportUnused)
	assert.False(t, cfg.Fix)
}

func TestLoadConfig_FromFile(t *testing.T) {
	t.Parallel()

	path := writeConfigFile(t, sampleConfigYAML)

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.Rules["no-tab-indent"])
	assert.Equal(t, map[string]bool{"shell": true}, cfg.Env)
	assert.Equal(t, "readonly", cfg.Globals["document"])
	assert.Equal(t, config.FormatJSON, cfg.Format)
	assert.Equal(t, "warn", cfg.ReportUnused)
	assert.True(t, cfg.Fix)
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	t.Parallel()

	_, err := config.LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestLoadConfig_InvalidFormat(t *testing.T) {
	t.Parallel()

	path := writeConfigFile(t, "format: xml\n")

	_, err := config.LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
}

func TestLoadConfig_InvalidReportPolicy(t *testing.T) {
	t.Parallel()

	path := writeConfigFile(t, "report_unused_disable_directives: always\n")

	_, err := config.LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown unused-directive policy")
}

func TestLoadConfig_EnvironmentOverride(t *testing.T) {
	t.Setenv("LINTFANG_FORMAT", "table")

	cfg, err := config.LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, config.FormatTable, cfg.Format)
}

func TestParseRuleOverride(t *testing.T) {
	t.Parallel()

	rules := map[string]any{"existing": "warn"}

	require.NoError(t, config.ParseRuleOverride("max-lines: error", rules))
	require.NoError(t, config.ParseRuleOverride("no-tab-indent: [warn, {strict: true}]", rules))
	require.NoError(t, config.ParseRuleOverride("existing: off", rules))

	assert.Equal(t, "error", rules["max-lines"])
	assert.Equal(t, "off", rules["existing"])

	tab, ok := rules["no-tab-indent"].([]any)
	require.True(t, ok)
	require.Len(t, tab, 2)
	assert.Equal(t, "warn", tab[0])
}

func TestParseRuleOverride_Invalid(t *testing.T) {
	t.Parallel()

	err := config.ParseRuleOverride("a: b: c: d", map[string]any{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse rule override")
}

func TestToLinterConfig(t *testing.T) {
	t.Parallel()

	cfg := config.Config{
		Rules:         map[string]any{"max-lines": "error"},
		Env:           map[string]bool{"ci": true},
		Globals:       map[string]any{"window": true},
		Settings:      map[string]any{"strict": true},
		Parser:        "default",
		ParserOptions: map[string]any{"language": "go"},
	}

	engineCfg := cfg.ToLinterConfig()
	assert.Equal(t, linter.Config{
		Rules:         cfg.Rules,
		Env:           cfg.Env,
		Globals:       cfg.Globals,
		Settings:      cfg.Settings,
		Parser:        "default",
		ParserOptions: cfg.ParserOptions,
	}, engineCfg)
}
