package search

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dbsmedya/gocipher/internal/cipher"
	"github.com/dbsmedya/gocipher/internal/config"
	"github.com/dbsmedya/gocipher/internal/scorer"
)

func TestDefaultConfiguration(t *testing.T) {
	c := DefaultConfiguration()
	assert.Equal(t, cipher.Columnar, c.Family)
	assert.Equal(t, DefaultMaxKeyLength, c.MaxKeyLength)
	assert.Equal(t, DefaultPeriod, c.Period)
	assert.Equal(t, cipher.LayoutRows, c.Layout)
	assert.Equal(t, runtime.NumCPU(), c.Workers)
	assert.NotNil(t, c.Scorer)
}

func TestNewConfigurationFromDefaults(t *testing.T) {
	c := NewConfiguration(config.DefaultConfig(), nil)
	assert.Equal(t, cipher.Columnar, c.Family)
	assert.Equal(t, 7, c.MaxKeyLength)
	assert.Equal(t, 3, c.Period)
	assert.Equal(t, 3, c.VigenereTopN)
	assert.Equal(t, 2, c.BeaufortTopN)
	assert.Equal(t, scorer.Options{}, c.Scorer.Options())

	assert.Equal(t, DefaultConfiguration().MaxKeyLength, NewConfiguration(nil, nil).MaxKeyLength)
}

func TestNewConfigurationOverrides(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Search.Family = "Beaufort"
	cfg.Search.MaxKeyLength = " 9 "
	cfg.Search.Period = "4"
	cfg.Search.CheckAllPeriods = true
	cfg.Search.Transpose = true
	cfg.Search.Workers = 2
	cfg.Search.TopK = 8
	cfg.Polyalphabetic.BeaufortTopN = 4
	cfg.Scoring.Profile = "spaced"

	c := NewConfiguration(cfg, nil)
	assert.Equal(t, cipher.Beaufort, c.Family)
	assert.Equal(t, 9, c.MaxKeyLength)
	assert.Equal(t, 4, c.Period)
	assert.True(t, c.CheckAllPeriods)
	assert.Equal(t, cipher.LayoutTranspose, c.Layout)
	assert.Equal(t, 2, c.Workers)
	assert.Equal(t, 8, c.EffectiveTopK())
	assert.Equal(t, 4, c.TopN())
	assert.Equal(t, scorer.Options{SpaceBonus: 2, SymbolPenalty: 3}, c.Scorer.Options())
}

func TestNewConfigurationFallsBack(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Search.Family = "enigma"
	cfg.Search.MaxKeyLength = "seven"
	cfg.Search.Period = "-2"
	cfg.Scoring.Profile = "fancy"

	c := NewConfiguration(cfg, nil)
	assert.Equal(t, cipher.Columnar, c.Family)
	assert.Equal(t, DefaultMaxKeyLength, c.MaxKeyLength)
	assert.Equal(t, DefaultPeriod, c.Period)
	assert.Equal(t, scorer.Options{}, c.Scorer.Options())

	cfg.Search.MaxKeyLength = "0"
	cfg.Search.Period = ""
	c = NewConfiguration(cfg, nil)
	assert.Equal(t, DefaultMaxKeyLength, c.MaxKeyLength)
	assert.Equal(t, DefaultPeriod, c.Period)
}

func TestEffectiveTopK(t *testing.T) {
	c := DefaultConfiguration()
	for _, f := range []cipher.Family{cipher.Columnar, cipher.Periodic} {
		c.Family = f
		assert.Equal(t, 3, c.EffectiveTopK(), f.String())
	}
	for _, f := range []cipher.Family{cipher.Vigenere, cipher.Beaufort} {
		c.Family = f
		assert.Equal(t, 5, c.EffectiveTopK(), f.String())
	}
	c.TopK = 1
	assert.Equal(t, 1, c.EffectiveTopK())
}

func TestTopN(t *testing.T) {
	c := DefaultConfiguration()
	c.Family = cipher.Vigenere
	assert.Equal(t, 3, c.TopN())
	c.Family = cipher.Beaufort
	assert.Equal(t, 2, c.TopN())
	c.BeaufortTopN = 0
	assert.Equal(t, 2, c.TopN())
	c.Family = cipher.Columnar
	assert.Zero(t, c.TopN())
}

func TestOuterValues(t *testing.T) {
	tests := []struct {
		name     string
		family   cipher.Family
		maxLen   int
		period   int
		checkAll bool
		want     []int
	}{
		{"columnar lengths", cipher.Columnar, 4, 2, false, []int{1, 2, 3, 4}},
		{"columnar ignores check all", cipher.Columnar, 2, 5, true, []int{1, 2}},
		{"periodic single", cipher.Periodic, 7, 3, false, []int{3}},
		{"periodic all", cipher.Periodic, 6, 3, true, []int{3, 4, 5, 6}},
		{"periodic start above max", cipher.Periodic, 2, 4, true, []int{4}},
		{"vigenere single", cipher.Vigenere, 7, 5, false, []int{5}},
		{"beaufort all", cipher.Beaufort, 4, 2, true, []int{2, 3, 4}},
		{"zero period", cipher.Vigenere, 4, 0, false, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultConfiguration()
			c.Family = tt.family
			c.MaxKeyLength = tt.maxLen
			c.Period = tt.period
			c.CheckAllPeriods = tt.checkAll
			assert.Equal(t, tt.want, c.OuterValues())
		})
	}
}

func TestWorkersDefault(t *testing.T) {
	c := DefaultConfiguration()
	c.Workers = 0
	assert.Equal(t, runtime.NumCPU(), c.workers())
	c.Workers = 3
	assert.Equal(t, 3, c.workers())
}
