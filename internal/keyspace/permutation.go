// Package keyspace enumerates or derives candidate keys for each cipher family.
package keyspace

import (
	"math"
	"math/bits"

	"github.com/dbsmedya/gocipher/internal/cipher"
)

// Permutations calls yield with every permutation of 0..n-1 in lexicographic
// order, n! keys in total. Each key is a fresh slice the callee may retain.
// Enumeration stops early when yield returns false. n <= 0 yields nothing.
func Permutations(n int, yield func(cipher.Key) bool) {
	if n <= 0 {
		return
	}

	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}

	for {
		key := make(cipher.Key, n)
		copy(key, perm)
		if !yield(key) {
			return
		}
		if !nextPermutation(perm) {
			return
		}
	}
}

// nextPermutation rearranges p into its lexicographic successor and reports
// whether one existed.
func nextPermutation(p []int) bool {
	i := len(p) - 2
	for i >= 0 && p[i] >= p[i+1] {
		i--
	}
	if i < 0 {
		return false
	}

	j := len(p) - 1
	for p[j] <= p[i] {
		j--
	}
	p[i], p[j] = p[j], p[i]

	for l, r := i+1, len(p)-1; l < r; l, r = l+1, r-1 {
		p[l], p[r] = p[r], p[l]
	}
	return true
}

// Factorial returns n!, saturating at math.MaxUint64. Negative n yields 0.
func Factorial(n int) uint64 {
	if n < 0 {
		return 0
	}
	result := uint64(1)
	for i := 2; i <= n; i++ {
		hi, lo := bits.Mul64(result, uint64(i))
		if hi != 0 {
			return math.MaxUint64
		}
		result = lo
	}
	return result
}

// TranspositionCount sums the factorials of lengths: the number of keys a
// transposition search over those key lengths will try.
func TranspositionCount(lengths []int) uint64 {
	counts := make([]uint64, len(lengths))
	for i, l := range lengths {
		counts[i] = Factorial(l)
	}
	return Sum(counts...)
}

// Sum adds key counts, saturating at math.MaxUint64.
func Sum(counts ...uint64) uint64 {
	var total uint64
	for _, c := range counts {
		total = saturatingAdd(total, c)
	}
	return total
}

func saturatingAdd(a, b uint64) uint64 {
	sum, carry := bits.Add64(a, b, 0)
	if carry != 0 {
		return math.MaxUint64
	}
	return sum
}

func saturatingMul(a, b uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	if hi != 0 {
		return math.MaxUint64
	}
	return lo
}
