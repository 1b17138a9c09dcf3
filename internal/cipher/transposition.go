package cipher

import "fmt"

// InvertColumnar undoes a columnar transposition.
//
// The ciphertext is read as one column block after another, in the order the
// key assigns, with the first n mod L columns one row longer than the rest.
// LayoutRows scatters each block back into grid rows; LayoutTranspose lays the
// blocks out contiguously, shifted by the extra rows of the columns before it.
func InvertColumnar(text string, key Key, layout Layout) (string, error) {
	out, err := InvertColumnarRunes([]rune(text), key, layout)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// InvertColumnarRunes is InvertColumnar over a rune slice. src is not modified.
func InvertColumnarRunes(src []rune, key Key, layout Layout) ([]rune, error) {
	if err := key.ValidatePermutation(); err != nil {
		return nil, err
	}
	n, width := len(src), len(key)
	if width > n {
		return nil, fmt.Errorf("%w: %d > %d", ErrKeyTooLong, width, n)
	}

	rows, extra := n/width, n%width
	inv := key.Inverse()
	out := make([]rune, n)

	cursor := 0
	for idx := 0; idx < width; idx++ {
		col := inv[idx]
		length := rows
		if col < extra {
			length++
		}

		for row := 0; row < length; row++ {
			var pos int
			if layout == LayoutTranspose {
				adj := extra
				if col < extra {
					adj = col
				}
				pos = col*rows + row + adj
			} else {
				pos = row*width + col
			}
			out[pos] = src[cursor]
			cursor++
		}
	}

	return out, nil
}

// InvertPeriodic undoes a periodic (block) transposition: inside every
// complete block of len(key) characters, the character at position i moves to
// position key[i].
//
// A trailing block shorter than the period is copied through unchanged. That
// is not a cipher-exact inverse for the tail.
func InvertPeriodic(text string, key Key) (string, error) {
	out, err := InvertPeriodicRunes([]rune(text), key)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// InvertPeriodicRunes is InvertPeriodic over a rune slice. src is not modified.
func InvertPeriodicRunes(src []rune, key Key) ([]rune, error) {
	if err := key.ValidatePermutation(); err != nil {
		return nil, err
	}
	period := len(key)
	if period > len(src) {
		return nil, fmt.Errorf("%w: %d > %d", ErrKeyTooLong, period, len(src))
	}

	out := make([]rune, len(src))
	full := len(src) - len(src)%period

	for start := 0; start < full; start += period {
		for i, dst := range key {
			out[start+dst] = src[start+i]
		}
	}
	copy(out[full:], src[full:])

	return out, nil
}
