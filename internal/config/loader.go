package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"strings"

	"github.com/spf13/viper"
)

// Load reads configuration from the specified file path.
// It supports YAML files and performs environment variable substitution.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return LoadFromViper(v)
}

// LoadOrDefault behaves like Load but returns DefaultConfig when the file
// does not exist. The CLI runs without a config file for ad-hoc searches.
func LoadOrDefault(configPath string) (*Config, error) {
	if configPath == "" {
		return DefaultConfig(), nil
	}
	if _, err := os.Stat(configPath); errors.Is(err, fs.ErrNotExist) {
		return DefaultConfig(), nil
	}
	return Load(configPath)
}

// LoadFromViper creates a Config from an existing Viper instance.
// Useful for testing or when Viper is configured externally.
func LoadFromViper(v *viper.Viper) (*Config, error) {
	cfg := DefaultConfig()

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	substituteEnvVars(cfg)

	return cfg, nil
}

// envVarPattern matches ${VAR_NAME} or $VAR_NAME patterns
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}|\$([A-Za-z_][A-Za-z0-9_]*)`)

// substituteEnvVars replaces ${VAR_NAME} patterns with environment variable values.
func substituteEnvVars(cfg *Config) {
	cfg.History.Host = expandEnvVar(cfg.History.Host)
	cfg.History.User = expandEnvVar(cfg.History.User)
	cfg.History.Password = expandEnvVar(cfg.History.Password)
	cfg.History.Database = expandEnvVar(cfg.History.Database)

	cfg.Metrics.Textfile = expandEnvVar(cfg.Metrics.Textfile)
	cfg.Logging.Output = expandEnvVar(cfg.Logging.Output)
}

// expandEnvVar expands environment variables in the format ${VAR} or $VAR.
func expandEnvVar(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		var varName string
		if strings.HasPrefix(match, "${") {
			varName = match[2 : len(match)-1]
		} else {
			varName = match[1:]
		}

		if value, exists := os.LookupEnv(varName); exists {
			return value
		}
		// Return original if env var not found
		return match
	})
}

// CLIOverrides contains flag values that override config file settings.
// Zero values leave the configured value untouched.
type CLIOverrides struct {
	LogLevel        string
	LogFormat       string
	Family          string
	MaxKeyLength    string
	Period          string
	CheckAllPeriods bool
	Transpose       bool
	Workers         int
	TopK            int
	Profile         string
}

// ApplyOverrides applies CLI flag overrides to the configuration.
// Only non-zero/non-empty values are applied.
func (c *Config) ApplyOverrides(o CLIOverrides) {
	if o.LogLevel != "" {
		c.Logging.Level = o.LogLevel
	}
	if o.LogFormat != "" {
		c.Logging.Format = o.LogFormat
	}
	if o.Family != "" {
		c.Search.Family = o.Family
	}
	if o.MaxKeyLength != "" {
		c.Search.MaxKeyLength = o.MaxKeyLength
	}
	if o.Period != "" {
		c.Search.Period = o.Period
	}
	if o.CheckAllPeriods {
		c.Search.CheckAllPeriods = true
	}
	if o.Transpose {
		c.Search.Transpose = true
	}
	if o.Workers > 0 {
		c.Search.Workers = o.Workers
	}
	if o.TopK > 0 {
		c.Search.TopK = o.TopK
	}
	if o.Profile != "" {
		c.Scoring.Profile = o.Profile
	}
}
