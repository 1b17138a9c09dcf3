package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
)

func TestLoad(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "test.yaml")

	configContent := `
search:
  family: periodic
  max_key_length: "6"
  period: "4"
  check_all_periods: true
  transpose: true
  workers: 2
  top_k: 4

polyalphabetic:
  vigenere_top_n: 4
  beaufort_top_n: 3

scoring:
  profile: spaced
  space_bonus: 1.5

period:
  max_period: 12

history:
  enabled: true
  host: db-host
  user: cipher
  password: secret

logging:
  level: debug
  format: json
  output: stdout
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Search.Family != "periodic" {
		t.Errorf("expected family 'periodic', got %s", cfg.Search.Family)
	}
	if cfg.Search.MaxKeyLength != "6" {
		t.Errorf("expected max_key_length '6', got %q", cfg.Search.MaxKeyLength)
	}
	if cfg.Search.Period != "4" {
		t.Errorf("expected period '4', got %q", cfg.Search.Period)
	}
	if !cfg.Search.CheckAllPeriods || !cfg.Search.Transpose {
		t.Errorf("expected check_all_periods and transpose to be set")
	}
	if cfg.Search.Workers != 2 || cfg.Search.TopK != 4 {
		t.Errorf("expected workers 2 and top_k 4, got %d and %d", cfg.Search.Workers, cfg.Search.TopK)
	}
	if cfg.Polyalphabetic.VigenereTopN != 4 || cfg.Polyalphabetic.BeaufortTopN != 3 {
		t.Errorf("unexpected polyalphabetic config: %+v", cfg.Polyalphabetic)
	}
	if cfg.Scoring.Profile != "spaced" || cfg.Scoring.SpaceBonus != 1.5 {
		t.Errorf("unexpected scoring config: %+v", cfg.Scoring)
	}
	// Unset values keep their defaults
	if cfg.Scoring.SymbolPenalty != 3.0 {
		t.Errorf("expected default symbol_penalty 3.0, got %v", cfg.Scoring.SymbolPenalty)
	}
	if cfg.Period.MaxPeriod != 12 {
		t.Errorf("expected max_period 12, got %d", cfg.Period.MaxPeriod)
	}
	if !cfg.History.Enabled || cfg.History.Host != "db-host" {
		t.Errorf("unexpected history config: %+v", cfg.History)
	}
	if cfg.History.Port != 3306 {
		t.Errorf("expected default history port 3306, got %d", cfg.History.Port)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Errorf("unexpected logging config: %+v", cfg.Logging)
	}
}

func TestLoadNumericKeyLength(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "numeric.yaml")

	// Unquoted YAML numbers still decode into the text fields.
	configContent := `
search:
  max_key_length: 5
  period: 2
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Search.MaxKeyLength != "5" {
		t.Errorf("expected max_key_length '5', got %q", cfg.Search.MaxKeyLength)
	}
	if cfg.Search.Period != "2" {
		t.Errorf("expected period '2', got %q", cfg.Search.Period)
	}
}

func TestLoadWithEnvVars(t *testing.T) {
	t.Setenv("TEST_HISTORY_HOST", "env-host")
	t.Setenv("TEST_HISTORY_PASSWORD", "env-secret")

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "test.yaml")

	configContent := `
history:
  host: ${TEST_HISTORY_HOST}
  user: cipher
  password: $TEST_HISTORY_PASSWORD
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.History.Host != "env-host" {
		t.Errorf("expected history host 'env-host', got %s", cfg.History.Host)
	}
	if cfg.History.Password != "env-secret" {
		t.Errorf("expected history password 'env-secret', got %s", cfg.History.Password)
	}
}

func TestExpandEnvVar(t *testing.T) {
	t.Setenv("TEST_VAR", "test_value")

	tests := []struct {
		input    string
		expected string
	}{
		{"${TEST_VAR}", "test_value"},
		{"$TEST_VAR", "test_value"},
		{"prefix_${TEST_VAR}_suffix", "prefix_test_value_suffix"},
		{"no_vars", "no_vars"},
		{"${NONEXISTENT_VAR}", "${NONEXISTENT_VAR}"},
	}

	for _, tt := range tests {
		result := expandEnvVar(tt.input)
		if result != tt.expected {
			t.Errorf("expandEnvVar(%q) = %q, expected %q", tt.input, result, tt.expected)
		}
	}
}

func TestLoadNonExistentFile(t *testing.T) {
	_, err := Load("/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("expected error when loading non-existent file")
	}
}

func TestLoadOrDefault(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("expected defaults for a missing file, got error: %v", err)
	}
	if cfg.Search.Family != "columnar" {
		t.Errorf("expected default family, got %s", cfg.Search.Family)
	}

	cfg, err = LoadOrDefault("")
	if err != nil || cfg == nil {
		t.Fatalf("expected defaults for an empty path, got %v", err)
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(bad, []byte("search: [unclosed"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	if _, err := LoadOrDefault(bad); err == nil {
		t.Error("expected error for malformed existing file")
	}
}

func TestLoadFromViper(t *testing.T) {
	v := viper.New()
	v.Set("search.family", "vigenere")
	v.Set("search.period", "abc")

	cfg, err := LoadFromViper(v)
	if err != nil {
		t.Fatalf("LoadFromViper failed: %v", err)
	}
	if cfg.Search.Family != "vigenere" {
		t.Errorf("expected family 'vigenere', got %s", cfg.Search.Family)
	}
	// Non-numeric text is preserved; the search package resolves it.
	if !strings.EqualFold(cfg.Search.Period, "abc") {
		t.Errorf("expected raw period 'abc', got %q", cfg.Search.Period)
	}
}

func TestApplyOverrides(t *testing.T) {
	cfg := DefaultConfig()

	cfg.ApplyOverrides(CLIOverrides{
		LogLevel:        "debug",
		LogFormat:       "json",
		Family:          "beaufort",
		MaxKeyLength:    "9",
		Period:          "6",
		CheckAllPeriods: true,
		Transpose:       true,
		Workers:         3,
		TopK:            7,
		Profile:         "spaced",
	})

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("expected log format 'json', got %s", cfg.Logging.Format)
	}
	if cfg.Search.Family != "beaufort" {
		t.Errorf("expected family 'beaufort', got %s", cfg.Search.Family)
	}
	if cfg.Search.MaxKeyLength != "9" || cfg.Search.Period != "6" {
		t.Errorf("unexpected key length/period: %q/%q", cfg.Search.MaxKeyLength, cfg.Search.Period)
	}
	if !cfg.Search.CheckAllPeriods || !cfg.Search.Transpose {
		t.Error("expected boolean overrides to be applied")
	}
	if cfg.Search.Workers != 3 || cfg.Search.TopK != 7 {
		t.Errorf("unexpected workers/top_k: %d/%d", cfg.Search.Workers, cfg.Search.TopK)
	}
	if cfg.Scoring.Profile != "spaced" {
		t.Errorf("expected profile 'spaced', got %s", cfg.Scoring.Profile)
	}
}

func TestApplyOverridesZeroValues(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Search.Workers = 4

	cfg.ApplyOverrides(CLIOverrides{})

	if cfg.Search.Family != "columnar" {
		t.Errorf("expected family unchanged, got %s", cfg.Search.Family)
	}
	if cfg.Search.MaxKeyLength != "7" {
		t.Errorf("expected max_key_length unchanged, got %q", cfg.Search.MaxKeyLength)
	}
	if cfg.Search.Workers != 4 {
		t.Errorf("expected workers unchanged, got %d", cfg.Search.Workers)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level unchanged, got %s", cfg.Logging.Level)
	}
}
