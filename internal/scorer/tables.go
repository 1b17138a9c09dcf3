package scorer

import (
	"github.com/elliotchance/orderedmap/v2"
)

// Hand-ranked English statistics, most frequent first.
var (
	trigramRank = []string{
		"the", "and", "ing", "ent", "ion", "her", "for", "tha", "nth", "int",
		"ere", "tio", "ter", "est", "ers", "ati", "hat", "ate", "all", "eth",
		"his", "ver", "ith", "oft", "sth", "ted", "res", "men", "hes", "ons",
	}

	bigramRank = []string{
		"th", "he", "in", "er", "an", "re", "nd", "on", "en", "at",
		"ou", "ed", "ha", "to", "or", "it", "is", "hi", "es", "ng",
		"st", "ar", "te", "se", "me", "ve", "of", "le", "nt", "ea",
	}

	commonWords = []string{
		"the", "and", "that", "have", "for", "not", "with", "you", "this", "but",
		"his", "from", "they", "she", "which", "will", "would", "there", "their", "what",
		"about", "when", "make", "like", "time", "just", "know", "people", "into", "year",
		"good", "some", "could", "them", "other", "than", "then", "now", "only", "come",
		"its", "over", "think", "also", "back", "after", "use", "two", "how", "our",
		"work", "first", "well", "way", "even", "new", "want", "because", "any", "these",
		"give", "day", "most", "dog", "ate", "eat",
	}

	// Percent of letters in typical English text.
	letterFrequency = [26]float64{
		8.2, 1.5, 2.8, 4.3, 12.7, 2.2, 2.0, 6.1, 7.0, 0.15, 0.8, 4.0, 2.4,
		6.7, 7.5, 1.9, 0.1, 6.0, 6.3, 9.1, 2.8, 1.0, 2.4, 0.15, 2.0, 0.07,
	}
)

const (
	trigramTopWeight = 4.0
	bigramTopWeight  = 2.0
	letterWeight     = 0.1
)

// TableKind says how a table's entries are matched against text.
type TableKind int

const (
	// KindNGram entries share one length and are matched at every offset.
	KindNGram TableKind = iota
	// KindWord entries are counted as non-overlapping substrings.
	KindWord
)

// Table is a named, rank-ordered set of weighted patterns.
type Table struct {
	Name    string
	Kind    TableKind
	Size    int // pattern length for KindNGram
	Weights *orderedmap.OrderedMap[string, float64]
}

// rankedTable weights entries linearly by rank: the first gets top, the last
// gets top/len.
func rankedTable(name string, entries []string, top float64) *Table {
	weights := orderedmap.NewOrderedMap[string, float64]()
	n := float64(len(entries))
	for i, e := range entries {
		weights.Set(e, top*(n-float64(i))/n)
	}
	return &Table{Name: name, Kind: KindNGram, Size: len(entries[0]), Weights: weights}
}

// wordTable weights each word by its length.
func wordTable(name string, words []string) *Table {
	weights := orderedmap.NewOrderedMap[string, float64]()
	for _, w := range words {
		weights.Set(w, float64(len(w)))
	}
	return &Table{Name: name, Kind: KindWord, Weights: weights}
}

func defaultTables() []*Table {
	return []*Table{
		rankedTable("trigrams", trigramRank, trigramTopWeight),
		rankedTable("bigrams", bigramRank, bigramTopWeight),
		wordTable("words", commonWords),
	}
}

// LetterFrequency returns the English frequency (percent) of an alphabet
// index, or 0 outside [0,26).
func LetterFrequency(idx int) float64 {
	if idx < 0 || idx >= len(letterFrequency) {
		return 0
	}
	return letterFrequency[idx]
}
