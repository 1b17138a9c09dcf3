// Package scorer rates how much a string resembles English plaintext.
package scorer

import (
	"fmt"
	"strings"
	"unicode"
)

// Profile names accepted by ParseProfile.
const (
	ProfilePlain  = "plain"
	ProfileSpaced = "spaced"
)

// Options tune the spacing terms of the score. Zero values disable them.
type Options struct {
	SpaceBonus    float64 // added per ' '
	SymbolPenalty float64 // subtracted per rune that is neither a letter nor whitespace
}

// Scorer is immutable after New and safe for concurrent use.
type Scorer struct {
	opts   Options
	tables []*Table
}

// New creates a Scorer over the built-in English tables.
func New(opts Options) *Scorer {
	return &Scorer{opts: opts, tables: defaultTables()}
}

// Default returns the plain profile: tables only, no spacing terms.
func Default() *Scorer {
	return New(Options{})
}

// ParseProfile builds a Scorer for a profile name. "spaced" applies the
// given bonus and penalty; "plain" or "" ignores them.
func ParseProfile(profile string, spaceBonus, symbolPenalty float64) (*Scorer, error) {
	switch strings.ToLower(profile) {
	case ProfilePlain, "":
		return Default(), nil
	case ProfileSpaced:
		return New(Options{SpaceBonus: spaceBonus, SymbolPenalty: symbolPenalty}), nil
	default:
		return nil, fmt.Errorf("unknown scoring profile %q", profile)
	}
}

// Options returns the spacing options in effect.
func (s *Scorer) Options() Options {
	return s.opts
}

// Tables returns the scorer's tables in evaluation order. Callers must not
// modify them.
func (s *Scorer) Tables() []*Table {
	return s.tables
}

// Score returns the English-likeness of text; higher is better.
// It is a pure function of text.
func (s *Scorer) Score(text string) float64 {
	lower := strings.ToLower(text)
	var score float64

	for _, table := range s.tables {
		switch table.Kind {
		case KindNGram:
			score += scoreNGrams(lower, table)
		case KindWord:
			for el := table.Weights.Front(); el != nil; el = el.Next() {
				score += float64(strings.Count(lower, el.Key)) * el.Value
			}
		}
	}

	for _, r := range lower {
		if r >= 'a' && r <= 'z' {
			score += letterFrequency[r-'a'] * letterWeight
		}
	}

	if s.opts.SpaceBonus != 0 || s.opts.SymbolPenalty != 0 {
		for _, r := range lower {
			switch {
			case r == ' ':
				score += s.opts.SpaceBonus
			case !unicode.IsLetter(r) && !unicode.IsSpace(r):
				score -= s.opts.SymbolPenalty
			}
		}
	}

	return score
}

func scoreNGrams(lower string, table *Table) float64 {
	var score float64
	for i := 0; i+table.Size <= len(lower); i++ {
		if w, ok := table.Weights.Get(lower[i : i+table.Size]); ok {
			score += w
		}
	}
	return score
}
