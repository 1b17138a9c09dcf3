package cipher

// Forward transforms used only to build ciphertext for round-trip tests.

func encryptColumnar(plain string, key Key, layout Layout) string {
	src := []rune(plain)
	n, width := len(src), len(key)
	rows, extra := n/width, n%width
	inv := key.Inverse()

	out := make([]rune, 0, n)
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
			out = append(out, src[pos])
		}
	}
	return string(out)
}

func encryptPeriodic(plain string, key Key) string {
	src := []rune(plain)
	period := len(key)
	out := make([]rune, len(src))
	full := len(src) - len(src)%period
	for start := 0; start < full; start += period {
		for i, from := range key {
			out[start+i] = src[start+from]
		}
	}
	copy(out[full:], src[full:])
	return string(out)
}

func encryptVigenere(plain string, shifts Key) string {
	return string(substitute([]rune(plain), shifts, func(c, k int) int { return c + k }))
}
