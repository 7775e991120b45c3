// Package memo caches analysis outcomes keyed by the exact sequence.
//
// Classification is a pure function of its input, so an outcome computed
// once can be served again for the same sequence without re-running the
// detectors.
package memo

import (
	"context"
	"encoding/binary"
	"math"
	"sync"
	"sync/atomic"

	"github.com/okian/echochamber/internal/domain/sequence"
)

// Outcome is a cached classification result: exactly one of Analysis or Err
// is meaningful.
type Outcome struct {
	Analysis sequence.Analysis
	Err      error
}

// Cache stores outcomes by sequence.
type Cache interface {
	// Get returns the cached outcome for seq.
	Get(ctx context.Context, seq []float64) (Outcome, bool)

	// Put stores the outcome for seq, evicting the oldest entry when full.
	Put(ctx context.Context, seq []float64, o Outcome)

	Size() int64
}

// node is a FIFO list cell.
type node struct {
	key  string
	next *node
}

func (n *node) reset() {
	n.key = ""
	n.next = nil
}

// inMemoryCache implements Cache with a map and a FIFO list for eviction.
// maxSize <= 0 disables caching entirely.
type inMemoryCache struct {
	mu       sync.Mutex
	entries  map[string]Outcome
	head     *node // oldest
	tail     *node // newest
	maxSize  int
	size     atomic.Int64
	nodePool sync.Pool
}

// NewInMemoryCache creates a new cache with configuration options.
func NewInMemoryCache(opts ...Option) Cache {
	c := &inMemoryCache{
		maxSize: 10_000,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.entries = make(map[string]Outcome)
	c.nodePool = sync.Pool{
		New: func() interface{} {
			return &node{}
		},
	}
	return c
}

// Key encodes seq by the bit pattern of each element, so 0 and -0 or
// distinct NaN payloads never collide.
func Key(seq []float64) string {
	buf := make([]byte, 8*len(seq))
	for i, v := range seq {
		binary.LittleEndian.PutUint64(buf[i*8:], math.Float64bits(v))
	}
	return string(buf)
}

func (c *inMemoryCache) Get(_ context.Context, seq []float64) (Outcome, bool) {
	if c.maxSize <= 0 {
		return Outcome{}, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	o, ok := c.entries[Key(seq)]
	return o, ok
}

func (c *inMemoryCache) Put(_ context.Context, seq []float64, o Outcome) {
	if c.maxSize <= 0 {
		return
	}
	key := Key(seq)

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; exists {
		c.entries[key] = o
		return
	}
	if len(c.entries) >= c.maxSize {
		c.evictOldest()
	}

	n := c.nodePool.Get().(*node)
	n.key = key
	if c.tail == nil {
		c.head = n
	} else {
		c.tail.next = n
	}
	c.tail = n
	c.entries[key] = o
	c.size.Add(1)
}

// evictOldest removes the head of the list. Must be called with c.mu held.
func (c *inMemoryCache) evictOldest() {
	n := c.head
	if n == nil {
		return
	}
	c.head = n.next
	if c.head == nil {
		c.tail = nil
	}
	delete(c.entries, n.key)
	n.reset()
	c.nodePool.Put(n)
	c.size.Add(-1)
}

func (c *inMemoryCache) Size() int64 {
	return c.size.Load()
}
