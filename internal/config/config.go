// Package config provides configuration structures and loading for gocipher.
package config

// Config represents the complete application configuration.
type Config struct {
	Search         SearchConfig         `yaml:"search" mapstructure:"search"`
	Polyalphabetic PolyalphabeticConfig `yaml:"polyalphabetic" mapstructure:"polyalphabetic"`
	Scoring        ScoringConfig        `yaml:"scoring" mapstructure:"scoring"`
	Period         PeriodConfig         `yaml:"period" mapstructure:"period"`
	History        HistoryConfig        `yaml:"history" mapstructure:"history"`
	Metrics        MetricsConfig        `yaml:"metrics" mapstructure:"metrics"`
	Logging        LoggingConfig        `yaml:"logging" mapstructure:"logging"`
}

// SearchConfig holds the raw search request as a user typed it.
//
// MaxKeyLength and Period are kept as text: a value that does not parse as a
// positive integer falls back to the search package default instead of
// failing the load.
type SearchConfig struct {
	Family          string `yaml:"family" mapstructure:"family"` // columnar, periodic, vigenere, beaufort
	MaxKeyLength    string `yaml:"max_key_length" mapstructure:"max_key_length"`
	Period          string `yaml:"period" mapstructure:"period"`
	CheckAllPeriods bool   `yaml:"check_all_periods" mapstructure:"check_all_periods"`
	Transpose       bool   `yaml:"transpose" mapstructure:"transpose"`
	Workers         int    `yaml:"workers" mapstructure:"workers"` // 0 = one per CPU
	TopK            int    `yaml:"top_k" mapstructure:"top_k"`     // 0 = family default
	MaxKeys         uint64 `yaml:"max_keys" mapstructure:"max_keys"`
}

// PolyalphabeticConfig controls frequency-derived key candidates.
type PolyalphabeticConfig struct {
	VigenereTopN int `yaml:"vigenere_top_n" mapstructure:"vigenere_top_n"`
	BeaufortTopN int `yaml:"beaufort_top_n" mapstructure:"beaufort_top_n"`
}

// ScoringConfig selects the scorer profile.
type ScoringConfig struct {
	Profile       string  `yaml:"profile" mapstructure:"profile"` // plain or spaced
	SpaceBonus    float64 `yaml:"space_bonus" mapstructure:"space_bonus"`
	SymbolPenalty float64 `yaml:"symbol_penalty" mapstructure:"symbol_penalty"`
}

// PeriodConfig holds Index-of-Coincidence estimator settings.
type PeriodConfig struct {
	MaxPeriod int `yaml:"max_period" mapstructure:"max_period"`
}

// HistoryConfig represents the MySQL database that records completed searches.
type HistoryConfig struct {
	Enabled  bool   `yaml:"enabled" mapstructure:"enabled"`
	Host     string `yaml:"host" mapstructure:"host"`
	Port     int    `yaml:"port" mapstructure:"port"`
	User     string `yaml:"user" mapstructure:"user"`
	Password string `yaml:"password" mapstructure:"password"`
	Database string `yaml:"database" mapstructure:"database"`
	Table    string `yaml:"table" mapstructure:"table"`
	TLS      string `yaml:"tls" mapstructure:"tls"` // disable, preferred, required
}

// MetricsConfig controls the Prometheus text exposition written after a search.
type MetricsConfig struct {
	Textfile string `yaml:"textfile" mapstructure:"textfile"`
}

// LoggingConfig represents logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`   // debug, info, warn, error
	Format string `yaml:"format" mapstructure:"format"` // json or text
	Output string `yaml:"output" mapstructure:"output"` // stdout, stderr, or file path
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		Search: SearchConfig{
			Family:       "columnar",
			MaxKeyLength: "7",
			Period:       "3",
			MaxKeys:      50_000_000,
		},
		Polyalphabetic: PolyalphabeticConfig{
			VigenereTopN: 3,
			BeaufortTopN: 2,
		},
		Scoring: ScoringConfig{
			Profile:       "plain",
			SpaceBonus:    2.0,
			SymbolPenalty: 3.0,
		},
		Period: PeriodConfig{
			MaxPeriod: 20,
		},
		History: HistoryConfig{
			Enabled:  false,
			Host:     "localhost",
			Port:     3306,
			Database: "gocipher",
			Table:    "search_history",
			TLS:      "preferred",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
	}
}
