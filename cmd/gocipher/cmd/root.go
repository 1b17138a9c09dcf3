package cmd

import (
	"fmt"
	"os"

	"github.com/gookit/color"
	"github.com/spf13/cobra"

	"github.com/dbsmedya/gocipher/internal/cipher"
	"github.com/dbsmedya/gocipher/internal/config"
	"github.com/dbsmedya/gocipher/internal/logger"
)

// Version information (set via ldflags at build time)
var (
	Version = "0.0.1-dev"
	Commit  = "unknown"
)

// CLI flags that override config file values
var (
	cfgFile         string
	logLevel        string
	logFormat       string
	family          string
	maxKeyLength    string
	period          string
	checkAllPeriods bool
	transpose       bool
	workers         int
	topK            int
	profile         string
	noColor         bool
)

var rootCmd = &cobra.Command{
	Use:   "gocipher",
	Short: "Classical cipher cryptanalysis engine",
	Long: `A CLI for breaking classical ciphers by key search and scoring.

Features:
  - Columnar and periodic transposition search over every permutation
  - Vigenère and Beaufort key recovery from letter frequencies
  - English-likeness scoring with n-gram and word tables
  - Index of Coincidence period estimation
  - Optional MySQL search history and Prometheus metrics export`,
	Version: Version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if noColor {
			color.Enable = false
		}
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Config file flag
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "gocipher.yaml",
		"Path to configuration file (defaults apply when it does not exist)")

	// Logging overrides
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"Override log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "",
		"Override log format (json, text)")

	// Search overrides
	rootCmd.PersistentFlags().StringVarP(&family, "family", "f", "",
		"Override cipher family (columnar, periodic, vigenere, beaufort)")
	rootCmd.PersistentFlags().StringVar(&maxKeyLength, "max-key-length", "",
		"Override maximum key length")
	rootCmd.PersistentFlags().StringVarP(&period, "period", "p", "",
		"Override period (periodic, vigenere, beaufort)")
	rootCmd.PersistentFlags().BoolVar(&checkAllPeriods, "all-periods", false,
		"Try every period from --period up to --max-key-length")
	rootCmd.PersistentFlags().BoolVar(&transpose, "transpose", false,
		"Use the transpose layout for columnar output")
	rootCmd.PersistentFlags().IntVar(&workers, "workers", 0,
		"Override worker count (0 = one per CPU)")
	rootCmd.PersistentFlags().IntVar(&topK, "top", 0,
		"Override number of candidates kept")
	rootCmd.PersistentFlags().StringVar(&profile, "profile", "",
		"Override scoring profile (plain, spaced)")

	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false,
		"Disable coloured output")
}

// GetConfigFile returns the config file path
func GetConfigFile() string {
	return cfgFile
}

// GetCLIOverrides returns the CLI flag override values
func GetCLIOverrides() config.CLIOverrides {
	return config.CLIOverrides{
		LogLevel:        logLevel,
		LogFormat:       logFormat,
		Family:          family,
		MaxKeyLength:    maxKeyLength,
		Period:          period,
		CheckAllPeriods: checkAllPeriods,
		Transpose:       transpose,
		Workers:         workers,
		TopK:            topK,
		Profile:         profile,
	}
}

// loadConfig loads the config file, applies flag overrides, validates the
// result and builds the logger.
func loadConfig() (*config.Config, *logger.Logger, error) {
	cfg, err := config.LoadOrDefault(GetConfigFile())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	overrides := GetCLIOverrides()
	if overrides.Family != "" {
		if _, err := cipher.ParseFamily(overrides.Family); err != nil {
			return nil, nil, err
		}
	}
	cfg.ApplyOverrides(overrides)

	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}

	log, err := logger.New(&cfg.Logging)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return cfg, log, nil
}
