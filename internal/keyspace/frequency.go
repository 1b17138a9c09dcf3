package keyspace

import (
	"fmt"
	"sort"

	"github.com/dbsmedya/gocipher/internal/cipher"
)

const (
	// DefaultVigenereTopN is how many frequent letters per column are tried
	// for Vigenère.
	DefaultVigenereTopN = 3
	// DefaultBeaufortTopN is the same for Beaufort.
	DefaultBeaufortTopN = 2

	alphabetSize = 26
	// Alphabet index of 'e', the most frequent English letter.
	englishTop = 4
)

// Histogram counts case-folded ASCII letters in runes.
func Histogram(runes []rune) [alphabetSize]int {
	var counts [alphabetSize]int
	for _, r := range runes {
		if idx, ok := cipher.LetterIndex(r); ok {
			counts[idx]++
		}
	}
	return counts
}

// RankLetters returns alphabet indices of letters that occur at least once,
// most frequent first. Equal counts keep alphabetical order.
func RankLetters(counts [alphabetSize]int) []int {
	ranked := make([]int, 0, alphabetSize)
	for l, c := range counts {
		if c > 0 {
			ranked = append(ranked, l)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return counts[ranked[i]] > counts[ranked[j]]
	})
	return ranked
}

// ShiftFor returns the key shift that decrypts letter to 'e' under family.
func ShiftFor(family cipher.Family, letter int) int {
	if family == cipher.Beaufort {
		// e = k - c  =>  k = c + 4
		return (letter + englishTop) % alphabetSize
	}
	// e = c - k  =>  k = c - 4 = c + 22
	return (letter + alphabetSize - englishTop) % alphabetSize
}

// Shifts derives per-position shift candidates for a polyalphabetic family.
//
// The text is split into period residue classes by rune index (non-letters
// included, matching how decryption indexes the key). Each class contributes
// the shifts that map its topN most frequent letters onto 'e'. A class
// without letters contributes the single shift 0.
func Shifts(text []rune, period, topN int, family cipher.Family) ([][]int, error) {
	if !family.IsPolyalphabetic() {
		return nil, fmt.Errorf("family %s does not use shift keys", family)
	}
	if period <= 0 {
		return nil, fmt.Errorf("period must be positive, got %d", period)
	}
	if topN <= 0 {
		return nil, fmt.Errorf("top letters per column must be positive, got %d", topN)
	}

	groups := cipher.Groups(text, period)
	lists := make([][]int, period)

	for pos, group := range groups {
		ranked := RankLetters(Histogram(group))
		if len(ranked) > topN {
			ranked = ranked[:topN]
		}
		if len(ranked) == 0 {
			lists[pos] = []int{0}
			continue
		}

		shifts := make([]int, len(ranked))
		for i, letter := range ranked {
			shifts[i] = ShiftFor(family, letter)
		}
		lists[pos] = shifts
	}

	return lists, nil
}

// Product calls yield with every key of the Cartesian product of lists, the
// first position varying slowest. Keys are fresh slices.
// An empty lists or any empty inner list yields nothing.
func Product(lists [][]int, yield func(cipher.Key) bool) {
	if len(lists) == 0 {
		return
	}
	for _, l := range lists {
		if len(l) == 0 {
			return
		}
	}

	idx := make([]int, len(lists))
	for {
		key := make(cipher.Key, len(lists))
		for i, l := range lists {
			key[i] = l[idx[i]]
		}
		if !yield(key) {
			return
		}

		// Odometer step, last position fastest
		pos := len(lists) - 1
		for pos >= 0 {
			idx[pos]++
			if idx[pos] < len(lists[pos]) {
				break
			}
			idx[pos] = 0
			pos--
		}
		if pos < 0 {
			return
		}
	}
}

// ProductSize is the number of keys Product will yield, saturating at
// math.MaxUint64.
func ProductSize(lists [][]int) uint64 {
	if len(lists) == 0 {
		return 0
	}
	size := uint64(1)
	for _, l := range lists {
		size = saturatingMul(size, uint64(len(l)))
	}
	return size
}
