package topk

import (
	"math/rand"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbsmedya/gocipher/internal/cipher"
)

func scores(items []Item) []float64 {
	out := make([]float64, len(items))
	for i, it := range items {
		out[i] = it.Score
	}
	return out
}

func TestNewClampsCapacity(t *testing.T) {
	assert.Equal(t, 1, New(0).Cap())
	assert.Equal(t, 1, New(-3).Cap())
	assert.Equal(t, 5, New(5).Cap())
}

func TestInsertKeepsBest(t *testing.T) {
	c := New(3)
	for i, s := range []float64{5, 1, 9, 3, 7, 2} {
		c.Insert(Item{Key: cipher.Key{i}, Score: s})
	}

	assert.Equal(t, 3, c.Len())
	assert.Equal(t, []float64{9, 7, 5}, scores(c.Ranked()))

	low, ok := c.Min()
	require.True(t, ok)
	assert.Equal(t, 5.0, low)
}

func TestInsertBelowCapacity(t *testing.T) {
	c := New(5)
	c.Insert(Item{Text: "a", Score: 1})
	c.Insert(Item{Text: "b", Score: 2})

	ranked := c.Ranked()
	require.Len(t, ranked, 2)
	assert.Equal(t, "b", ranked[0].Text)
	assert.Equal(t, "a", ranked[1].Text)
}

func TestEmptyCollector(t *testing.T) {
	c := New(3)
	assert.Empty(t, c.Ranked())
	_, ok := c.Min()
	assert.False(t, ok)
}

func TestRankedReturnsCopy(t *testing.T) {
	c := New(2)
	c.Insert(Item{Text: "keep", Score: 4})

	ranked := c.Ranked()
	ranked[0].Text = "changed"
	assert.Equal(t, "keep", c.Ranked()[0].Text)
}

func TestInvariantAgainstSortedReference(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for _, k := range []int{1, 3, 5, 10} {
		for _, n := range []int{0, 1, k - 1, k, k + 1, 100} {
			c := New(k)
			all := make([]float64, n)
			for i := range all {
				all[i] = rng.Float64() * 100
				c.Insert(Item{Score: all[i]})
			}

			sort.Sort(sort.Reverse(sort.Float64Slice(all)))
			want := len(all)
			if want > k {
				want = k
			}
			assert.Equal(t, all[:want], scores(c.Ranked()), "k=%d n=%d", k, n)
		}
	}
}

func TestConcurrentInsert(t *testing.T) {
	const (
		workers   = 8
		perWorker = 500
		k         = 5
	)
	c := New(k)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				c.Insert(Item{Score: float64(w*perWorker + i)})
			}
		}(w)
	}
	wg.Wait()

	top := float64(workers*perWorker - 1)
	assert.Equal(t, []float64{top, top - 1, top - 2, top - 3, top - 4}, scores(c.Ranked()))
}
