package search

import (
	"runtime"
	"strconv"
	"strings"

	"github.com/dbsmedya/gocipher/internal/cipher"
	"github.com/dbsmedya/gocipher/internal/config"
	"github.com/dbsmedya/gocipher/internal/keyspace"
	"github.com/dbsmedya/gocipher/internal/logger"
	"github.com/dbsmedya/gocipher/internal/scorer"
)

// Defaults substituted for missing or malformed settings.
const (
	DefaultMaxKeyLength       = 7
	DefaultPeriod             = 3
	DefaultTranspositionTopK  = 3
	DefaultPolyalphabeticTopK = 5
)

// Configuration is the immutable description of one search.
type Configuration struct {
	Family          cipher.Family
	MaxKeyLength    int
	Period          int
	CheckAllPeriods bool
	Layout          cipher.Layout
	Workers         int
	VigenereTopN    int
	BeaufortTopN    int
	TopK            int // 0 selects the family default
	Scorer          *scorer.Scorer
}

// DefaultConfiguration returns a columnar search with every default applied.
func DefaultConfiguration() Configuration {
	return Configuration{
		Family:       cipher.Columnar,
		MaxKeyLength: DefaultMaxKeyLength,
		Period:       DefaultPeriod,
		Layout:       cipher.LayoutRows,
		Workers:      runtime.NumCPU(),
		VigenereTopN: keyspace.DefaultVigenereTopN,
		BeaufortTopN: keyspace.DefaultBeaufortTopN,
		Scorer:       scorer.Default(),
	}
}

// NewConfiguration builds a Configuration from loaded settings.
//
// It never fails: an unknown family falls back to columnar, text fields that
// are not positive integers fall back to their defaults, and an unknown
// scoring profile falls back to plain. Every fallback is logged as a warning.
func NewConfiguration(cfg *config.Config, log *logger.Logger) Configuration {
	if log == nil {
		log = logger.Nop()
	}
	c := DefaultConfiguration()
	if cfg == nil {
		return c
	}

	if cfg.Search.Family != "" {
		family, err := cipher.ParseFamily(cfg.Search.Family)
		if err != nil {
			log.Warnw("Unknown cipher family, using columnar", "family", cfg.Search.Family)
		}
		c.Family = family
	}

	c.MaxKeyLength = positiveOrDefault(log, "max_key_length", cfg.Search.MaxKeyLength, DefaultMaxKeyLength)
	c.Period = positiveOrDefault(log, "period", cfg.Search.Period, DefaultPeriod)
	c.CheckAllPeriods = cfg.Search.CheckAllPeriods
	if cfg.Search.Transpose {
		c.Layout = cipher.LayoutTranspose
	}
	if cfg.Search.Workers > 0 {
		c.Workers = cfg.Search.Workers
	}
	if cfg.Search.TopK > 0 {
		c.TopK = cfg.Search.TopK
	}
	if cfg.Polyalphabetic.VigenereTopN > 0 {
		c.VigenereTopN = cfg.Polyalphabetic.VigenereTopN
	}
	if cfg.Polyalphabetic.BeaufortTopN > 0 {
		c.BeaufortTopN = cfg.Polyalphabetic.BeaufortTopN
	}

	sc, err := scorer.ParseProfile(cfg.Scoring.Profile, cfg.Scoring.SpaceBonus, cfg.Scoring.SymbolPenalty)
	if err != nil {
		log.Warnw("Unknown scoring profile, using plain", "profile", cfg.Scoring.Profile)
		sc = scorer.Default()
	}
	c.Scorer = sc

	return c
}

func positiveOrDefault(log *logger.Logger, field, raw string, def int) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		log.Warnw("Invalid numeric setting, using default",
			"field", field,
			"value", raw,
			"default", def,
		)
		return def
	}
	return n
}

// EffectiveTopK returns TopK or the family default when unset.
func (c Configuration) EffectiveTopK() int {
	if c.TopK > 0 {
		return c.TopK
	}
	if c.Family.IsPolyalphabetic() {
		return DefaultPolyalphabeticTopK
	}
	return DefaultTranspositionTopK
}

// TopN returns how many frequent letters per column the family tries.
func (c Configuration) TopN() int {
	switch c.Family {
	case cipher.Vigenere:
		if c.VigenereTopN > 0 {
			return c.VigenereTopN
		}
		return keyspace.DefaultVigenereTopN
	case cipher.Beaufort:
		if c.BeaufortTopN > 0 {
			return c.BeaufortTopN
		}
		return keyspace.DefaultBeaufortTopN
	default:
		return 0
	}
}

// OuterValues returns the values the search fans out over: key lengths
// 1..MaxKeyLength for columnar, otherwise the period alone or, with
// CheckAllPeriods, every period from Period to MaxKeyLength.
func (c Configuration) OuterValues() []int {
	if c.Family == cipher.Columnar {
		values := make([]int, 0, c.MaxKeyLength)
		for l := 1; l <= c.MaxKeyLength; l++ {
			values = append(values, l)
		}
		return values
	}

	if c.Period <= 0 {
		return nil
	}
	if !c.CheckAllPeriods || c.MaxKeyLength <= c.Period {
		return []int{c.Period}
	}
	values := make([]int, 0, c.MaxKeyLength-c.Period+1)
	for p := c.Period; p <= c.MaxKeyLength; p++ {
		values = append(values, p)
	}
	return values
}

func (c Configuration) workers() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.NumCPU()
}
