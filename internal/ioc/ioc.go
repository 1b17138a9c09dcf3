// Package ioc estimates the key period of a polyalphabetic ciphertext with the
// index of coincidence.
package ioc

import (
	"math"
	"sort"

	"github.com/elliotchance/orderedmap/v2"

	"github.com/dbsmedya/gocipher/internal/cipher"
)

const (
	// EnglishIC is the expected index of coincidence of English text.
	EnglishIC = 0.066
	// DefaultMaxPeriod is used when Estimate gets a non-positive bound.
	DefaultMaxPeriod = 20
)

// Entry is the analysis of one candidate period.
type Entry struct {
	Period   int
	ColumnIC []float64
	Average  float64
	Distance float64 // |Average - EnglishIC|
}

// PeriodReport holds one Entry per period 1..MaxPeriod.
type PeriodReport struct {
	MaxPeriod int
	Letters   int // letters analysed after normalisation
	entries   *orderedmap.OrderedMap[int, *Entry]
}

// Estimate computes the IC report for periods 1..maxPeriod.
//
// The text is case-folded and everything but ASCII letters is dropped before
// grouping. Columns with fewer than two letters contribute 0 to their period's
// average but still count in its denominator.
func Estimate(text string, maxPeriod int) *PeriodReport {
	if maxPeriod <= 0 {
		maxPeriod = DefaultMaxPeriod
	}

	letters := normalize(text)
	report := &PeriodReport{
		MaxPeriod: maxPeriod,
		Letters:   len(letters),
		entries:   orderedmap.NewOrderedMap[int, *Entry](),
	}

	for p := 1; p <= maxPeriod; p++ {
		groups := cipher.Groups(letters, p)
		entry := &Entry{Period: p, ColumnIC: make([]float64, p)}

		var total float64
		for j, group := range groups {
			entry.ColumnIC[j] = IndexOfCoincidence(group)
			total += entry.ColumnIC[j]
		}
		entry.Average = total / float64(p)
		entry.Distance = math.Abs(entry.Average - EnglishIC)

		report.entries.Set(p, entry)
	}

	return report
}

// IndexOfCoincidence returns Σ f(f-1) / (N(N-1)) over the letter counts of
// group, or 0 when the group has fewer than two letters.
func IndexOfCoincidence(group []rune) float64 {
	var counts [26]int
	n := 0
	for _, r := range group {
		if idx, ok := cipher.LetterIndex(r); ok {
			counts[idx]++
			n++
		}
	}
	if n < 2 {
		return 0
	}

	var sum int
	for _, f := range counts {
		sum += f * (f - 1)
	}
	return float64(sum) / float64(n*(n-1))
}

func normalize(text string) []rune {
	out := make([]rune, 0, len(text))
	for _, r := range text {
		if idx, ok := cipher.LetterIndex(r); ok {
			out = append(out, rune('a'+idx))
		}
	}
	return out
}

// Entry returns the analysis for period p.
func (r *PeriodReport) Entry(p int) (*Entry, bool) {
	return r.entries.Get(p)
}

// Entries returns all entries in period order.
func (r *PeriodReport) Entries() []*Entry {
	out := make([]*Entry, 0, r.entries.Len())
	for el := r.entries.Front(); el != nil; el = el.Next() {
		out = append(out, el.Value)
	}
	return out
}

// Ranked returns entries by ascending distance from English, the smaller
// period first on ties.
func (r *PeriodReport) Ranked() []*Entry {
	out := r.Entries()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Distance < out[j].Distance
	})
	return out
}

// Best returns the top-ranked entry.
func (r *PeriodReport) Best() (*Entry, bool) {
	ranked := r.Ranked()
	if len(ranked) == 0 {
		return nil, false
	}
	return ranked[0], true
}
