// Package topk keeps the K highest-scoring candidates seen so far.
package topk

import (
	"container/heap"
	"sort"
	"sync"

	"github.com/dbsmedya/gocipher/internal/cipher"
)

// Item is one scored decryption.
type Item struct {
	Key   cipher.Key
	Text  string
	Score float64
}

// itemHeap is a min-heap on Score, so the weakest survivor sits at the root.
type itemHeap []Item

func (h itemHeap) Len() int           { return len(h) }
func (h itemHeap) Less(i, j int) bool { return h[i].Score < h[j].Score }
func (h itemHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *itemHeap) Push(x interface{}) {
	*h = append(*h, x.(Item))
}

func (h *itemHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = Item{}
	*h = old[:n-1]
	return item
}

// Collector is a bounded collection of the best items. All methods are safe
// for concurrent use.
type Collector struct {
	mu    sync.Mutex
	k     int
	items itemHeap
}

// New creates a Collector retaining at most k items. k < 1 is treated as 1.
func New(k int) *Collector {
	if k < 1 {
		k = 1
	}
	c := &Collector{k: k, items: make(itemHeap, 0, k+1)}
	heap.Init(&c.items)
	return c
}

// Insert adds item. When the collector then holds more than k items the
// lowest-scoring one is dropped, which may be item itself.
func (c *Collector) Insert(item Item) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.items) == c.k && item.Score <= c.items[0].Score {
		return
	}
	heap.Push(&c.items, item)
	if len(c.items) > c.k {
		heap.Pop(&c.items)
	}
}

// Ranked returns a copy of the retained items, best first. Order among equal
// scores is unspecified.
func (c *Collector) Ranked() []Item {
	c.mu.Lock()
	out := make([]Item, len(c.items))
	copy(out, c.items)
	c.mu.Unlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}

// Min returns the lowest retained score and false when empty.
func (c *Collector) Min() (float64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.items) == 0 {
		return 0, false
	}
	return c.items[0].Score, true
}

// Len returns the number of retained items.
func (c *Collector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Cap returns k.
func (c *Collector) Cap() int {
	return c.k
}
