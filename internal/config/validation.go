package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}

// Validate checks the configuration for structural errors.
//
// Free-text search numbers (max_key_length, period) are not validated here;
// they fall back to defaults when the search configuration is resolved.
func (c *Config) Validate() error {
	var errors ValidationErrors

	errors = append(errors, c.validateSearch()...)
	errors = append(errors, c.validatePolyalphabetic()...)
	errors = append(errors, c.validateScoring()...)

	if c.Period.MaxPeriod < 0 {
		errors = append(errors, ValidationError{
			Field:   "period.max_period",
			Message: "max_period cannot be negative",
		})
	}

	if c.History.Enabled {
		errors = append(errors, c.validateHistory()...)
	}

	errors = append(errors, c.validateLogging()...)

	if len(errors) > 0 {
		return errors
	}
	return nil
}

func (c *Config) validateSearch() ValidationErrors {
	var errors ValidationErrors

	if c.Search.Workers < 0 {
		errors = append(errors, ValidationError{
			Field:   "search.workers",
			Message: "workers cannot be negative",
		})
	}

	if c.Search.TopK < 0 {
		errors = append(errors, ValidationError{
			Field:   "search.top_k",
			Message: "top_k cannot be negative",
		})
	}

	return errors
}

func (c *Config) validatePolyalphabetic() ValidationErrors {
	var errors ValidationErrors

	if c.Polyalphabetic.VigenereTopN < 1 || c.Polyalphabetic.VigenereTopN > 26 {
		errors = append(errors, ValidationError{
			Field:   "polyalphabetic.vigenere_top_n",
			Message: "vigenere_top_n must be between 1 and 26",
		})
	}

	if c.Polyalphabetic.BeaufortTopN < 1 || c.Polyalphabetic.BeaufortTopN > 26 {
		errors = append(errors, ValidationError{
			Field:   "polyalphabetic.beaufort_top_n",
			Message: "beaufort_top_n must be between 1 and 26",
		})
	}

	return errors
}

func (c *Config) validateScoring() ValidationErrors {
	var errors ValidationErrors

	validProfiles := map[string]bool{"plain": true, "spaced": true, "": true}
	if !validProfiles[c.Scoring.Profile] {
		errors = append(errors, ValidationError{
			Field:   "scoring.profile",
			Message: "profile must be 'plain' or 'spaced'",
		})
	}

	if c.Scoring.SpaceBonus < 0 {
		errors = append(errors, ValidationError{
			Field:   "scoring.space_bonus",
			Message: "space_bonus cannot be negative",
		})
	}

	if c.Scoring.SymbolPenalty < 0 {
		errors = append(errors, ValidationError{
			Field:   "scoring.symbol_penalty",
			Message: "symbol_penalty cannot be negative",
		})
	}

	return errors
}

func (c *Config) validateHistory() ValidationErrors {
	var errors ValidationErrors

	if c.History.Host == "" {
		errors = append(errors, ValidationError{
			Field:   "history.host",
			Message: "host is required when history is enabled",
		})
	}

	if c.History.Port <= 0 || c.History.Port > 65535 {
		errors = append(errors, ValidationError{
			Field:   "history.port",
			Message: "port must be between 1 and 65535",
		})
	}

	if c.History.User == "" {
		errors = append(errors, ValidationError{
			Field:   "history.user",
			Message: "user is required when history is enabled",
		})
	}

	if c.History.Database == "" {
		errors = append(errors, ValidationError{
			Field:   "history.database",
			Message: "database name is required",
		})
	}

	if c.History.Table == "" {
		errors = append(errors, ValidationError{
			Field:   "history.table",
			Message: "table name is required",
		})
	}

	validTLS := map[string]bool{"disable": true, "preferred": true, "required": true, "": true}
	if !validTLS[c.History.TLS] {
		errors = append(errors, ValidationError{
			Field:   "history.tls",
			Message: "tls must be 'disable', 'preferred', or 'required'",
		})
	}

	return errors
}

func (c *Config) validateLogging() ValidationErrors {
	var errors ValidationErrors

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true, "": true}
	if !validLevels[c.Logging.Level] {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Message: "level must be 'debug', 'info', 'warn', or 'error'",
		})
	}

	validFormats := map[string]bool{"json": true, "text": true, "": true}
	if !validFormats[c.Logging.Format] {
		errors = append(errors, ValidationError{
			Field:   "logging.format",
			Message: "format must be 'json' or 'text'",
		})
	}

	return errors
}
