package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// configName is the config file name without extension.
const configName = ".lintfang"

// configType is the config file format.
const configType = "yaml"

// envPrefix is the environment variable prefix for lintfang settings.
const envPrefix = "LINTFANG"

// envKeySeparator is the nested key separator in environment variable names.
const envKeySeparator = "_"

// LoadConfig loads configuration from file, env vars, and defaults.
// If configPath is non-empty, it is used as the explicit config file path.
// Otherwise, the config file is searched in CWD and $HOME.
// Missing config file is not an error; defaults are used.
func LoadConfig(configPath string) (*Config, error) {
	viperCfg := viper.New()

	applyDefaults(viperCfg)

	viperCfg.SetConfigType(configType)
	viperCfg.SetEnvPrefix(envPrefix)
	viperCfg.SetEnvKeyReplacer(strings.NewReplacer(".", envKeySeparator))
	viperCfg.AutomaticEnv()

	if configPath != "" {
		viperCfg.SetConfigFile(configPath)
	} else {
		viperCfg.SetConfigName(configName)
		viperCfg.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viperCfg.AddConfigPath(home)
		}
	}

	readErr := viperCfg.ReadInConfig()
	if readErr != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(readErr, &notFound) {
			return nil, fmt.Errorf("read config: %w", readErr)
		}
	}

	var cfg Config

	unmarshalErr := viperCfg.Unmarshal(&cfg)
	if unmarshalErr != nil {
		return nil, fmt.Errorf("unmarshal config: %w", unmarshalErr)
	}

	validateErr := cfg.Validate()
	if validateErr != nil {
		return nil, fmt.Errorf("validate config: %w", validateErr)
	}

	return &cfg, nil
}

func applyDefaults(viperCfg *viper.Viper) {
	viperCfg.SetDefault("rules", map[string]any{})
	viperCfg.SetDefault("env", map[string]any{})
	viperCfg.SetDefault("globals", map[string]any{})
	viperCfg.SetDefault("settings", map[string]any{})
	viperCfg.SetDefault("parser", DefaultParser)
	viperCfg.SetDefault("parser_options", map[string]any{})
	viperCfg.SetDefault("fix", false)
	viperCfg.SetDefault("format", DefaultFormat)
	viperCfg.SetDefault("report_unused_disable_directives", DefaultReportUnused)
}

// ParseRuleOverride parses one "--rule" flag value of the form
// "id: severity" or "id: [severity, options...]" and merges it into rules.
func ParseRuleOverride(value string, rules map[string]any) error {
	parsed := map[string]any{}

	err := yaml.Unmarshal([]byte(value), &parsed)
	if err != nil {
		return fmt.Errorf("parse rule override %q: %w", value, err)
	}

	for id, ruleConfig := range parsed {
		rules[id] = ruleConfig
	}

	return nil
}
