package cipher

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrInvalidKey is returned for empty keys, non-permutations and out of
	// range shifts.
	ErrInvalidKey = errors.New("invalid key")
	// ErrKeyTooLong is returned when a transposition key is longer than the text.
	ErrKeyTooLong = errors.New("key longer than text")
)

// Key is a permutation of 0..L-1 for transposition families or a vector of
// shifts in [0,26) for polyalphabetic families. Keys are not mutated after
// they are produced.
type Key []int

// String renders the key as "[2 0 1]".
func (k Key) String() string {
	parts := make([]string, len(k))
	for i, v := range k {
		parts[i] = strconv.Itoa(v)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// Letters renders a shift vector as lowercase letters (0 -> 'a').
// Values outside [0,26) render as '?'.
func (k Key) Letters() string {
	var b strings.Builder
	b.Grow(len(k))
	for _, v := range k {
		if v < 0 || v >= alphabetSize {
			b.WriteByte('?')
			continue
		}
		b.WriteByte(byte('a' + v))
	}
	return b.String()
}

// Clone returns an independent copy of k.
func (k Key) Clone() Key {
	out := make(Key, len(k))
	copy(out, k)
	return out
}

// Inverse returns inv such that inv[k[i]] = i. k must be a permutation.
func (k Key) Inverse() Key {
	inv := make(Key, len(k))
	for i, v := range k {
		inv[v] = i
	}
	return inv
}

// ValidatePermutation checks that k uses every value of 0..len(k)-1 exactly once.
func (k Key) ValidatePermutation() error {
	if len(k) == 0 {
		return fmt.Errorf("%w: empty permutation", ErrInvalidKey)
	}
	seen := make([]bool, len(k))
	for _, v := range k {
		if v < 0 || v >= len(k) || seen[v] {
			return fmt.Errorf("%w: %s is not a permutation", ErrInvalidKey, k)
		}
		seen[v] = true
	}
	return nil
}

// ValidateShifts checks that k is a non-empty vector of shifts in [0,26).
func (k Key) ValidateShifts() error {
	if len(k) == 0 {
		return fmt.Errorf("%w: empty shift vector", ErrInvalidKey)
	}
	for _, v := range k {
		if v < 0 || v >= alphabetSize {
			return fmt.Errorf("%w: shift %d out of range", ErrInvalidKey, v)
		}
	}
	return nil
}

// ParseKey parses "2,0,1", "2 0 1" or "[2 0 1]" into a Key.
func ParseKey(s string) (Key, error) {
	s = strings.Trim(strings.TrimSpace(s), "[]")
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: no values", ErrInvalidKey)
	}
	key := make(Key, len(fields))
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a number", ErrInvalidKey, f)
		}
		key[i] = v
	}
	return key, nil
}

// KeyFromLetters converts a keyword such as "lemon" into a shift vector.
func KeyFromLetters(word string) (Key, error) {
	key := make(Key, 0, len(word))
	for _, r := range word {
		switch {
		case r >= 'a' && r <= 'z':
			key = append(key, int(r-'a'))
		case r >= 'A' && r <= 'Z':
			key = append(key, int(r-'A'))
		default:
			return nil, fmt.Errorf("%w: %q is not a letter", ErrInvalidKey, r)
		}
	}
	if len(key) == 0 {
		return nil, fmt.Errorf("%w: empty keyword", ErrInvalidKey)
	}
	return key, nil
}
