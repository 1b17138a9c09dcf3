package cipher

const alphabetSize = 26

// InvertVigenere decrypts with plain = (cipher - shift) mod 26.
//
// The shift for the character at rune index i is shifts[i mod len(shifts)].
// Non-letters are copied through but still consume an index.
func InvertVigenere(text string, shifts Key) (string, error) {
	out, err := InvertVigenereRunes([]rune(text), shifts)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// InvertVigenereRunes is InvertVigenere over a rune slice.
func InvertVigenereRunes(src []rune, shifts Key) ([]rune, error) {
	if err := shifts.ValidateShifts(); err != nil {
		return nil, err
	}
	return substitute(src, shifts, func(c, k int) int { return c - k }), nil
}

// InvertBeaufort decrypts with plain = (shift - cipher) mod 26. The Beaufort
// cipher is its own inverse, so the same call also encrypts.
func InvertBeaufort(text string, shifts Key) (string, error) {
	out, err := InvertBeaufortRunes([]rune(text), shifts)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// InvertBeaufortRunes is InvertBeaufort over a rune slice.
func InvertBeaufortRunes(src []rune, shifts Key) ([]rune, error) {
	if err := shifts.ValidateShifts(); err != nil {
		return nil, err
	}
	return substitute(src, shifts, func(c, k int) int { return k - c }), nil
}

// substitute applies f to every ASCII letter, keeping its case.
func substitute(src []rune, shifts Key, f func(c, k int) int) []rune {
	out := make([]rune, len(src))
	period := len(shifts)

	for i, r := range src {
		base, ok := letterBase(r)
		if !ok {
			out[i] = r
			continue
		}
		v := f(int(r-base), shifts[i%period]) % alphabetSize
		if v < 0 {
			v += alphabetSize
		}
		out[i] = base + rune(v)
	}

	return out
}

func letterBase(r rune) (rune, bool) {
	switch {
	case r >= 'a' && r <= 'z':
		return 'a', true
	case r >= 'A' && r <= 'Z':
		return 'A', true
	default:
		return 0, false
	}
}

// LetterIndex returns the alphabet index of an ASCII letter, case-folded.
func LetterIndex(r rune) (int, bool) {
	base, ok := letterBase(r)
	if !ok {
		return 0, false
	}
	return int(r - base), true
}
