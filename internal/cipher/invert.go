package cipher

import "fmt"

// Invert decrypts text with key under the given family. layout only affects
// the columnar family.
func Invert(family Family, text string, key Key, layout Layout) (string, error) {
	out, err := InvertRunes(family, []rune(text), key, layout)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// InvertRunes is Invert over a rune slice. Callers that try many keys against
// the same text convert once and call this.
func InvertRunes(family Family, src []rune, key Key, layout Layout) ([]rune, error) {
	switch family {
	case Columnar:
		return InvertColumnarRunes(src, key, layout)
	case Periodic:
		return InvertPeriodicRunes(src, key)
	case Vigenere:
		return InvertVigenereRunes(src, key)
	case Beaufort:
		return InvertBeaufortRunes(src, key)
	default:
		return nil, fmt.Errorf("unsupported cipher family %s", family)
	}
}

// Groups splits src into period residue classes: group j holds every rune
// whose index i satisfies i mod period == j, in order.
// A non-positive period yields nil.
func Groups(src []rune, period int) [][]rune {
	if period <= 0 {
		return nil
	}
	groups := make([][]rune, period)
	for j := range groups {
		groups[j] = make([]rune, 0, len(src)/period+1)
	}
	for i, r := range src {
		groups[i%period] = append(groups[i%period], r)
	}
	return groups
}
