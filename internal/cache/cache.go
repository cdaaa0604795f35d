// Package cache implements the bounded, process-wide LRU result cache
// (C5): a content-addressed memo of per-agent outputs keyed by a
// stable hash of (file_path, code, diff, agent_name).
//
// Grounded on the teacher's internal/diff/diff.go, which memoizes diff
// computations in a sync.Map keyed by an FNV-1a hash of its inputs;
// here the memo is generalized to a bounded LRU (the spec requires
// eviction, the teacher's diff cache does not) using container/list +
// a mutex, following the teacher's own precedent of hand-rolling this
// kind of small, self-contained data structure rather than reaching
// for a library — no LRU library appears anywhere in the retrieved
// corpus.
package cache

import (
	"container/list"
	"hash/fnv"
	"sync"

	"github.com/codenerd-labs/revcrew/internal/issue"
)

// DefaultCapacity is the default LRU capacity.
const DefaultCapacity = 128

// Key identifies one cached agent run.
type Key struct {
	FilePath  string
	Code      string
	Diff      string
	AgentName string
}

// Hash returns a stable FNV-1a hash of the key's fields, mirroring the
// teacher's hash() helper in internal/diff/diff.go.
func (k Key) Hash() uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(k.FilePath))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(k.Code))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(k.Diff))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(k.AgentName))
	return h.Sum64()
}

// Entry is the cached value for one agent run: the agent's produced
// issues plus minimal telemetry.
type Entry struct {
	Issues         []issue.Issue
	ElapsedSeconds float64
}

// LRU is a bounded, concurrency-safe least-recently-used cache.
// Concurrent lookups with the same key do not coalesce (a duplicate
// compute is acceptable); writes are serialized by mu so
// insert+evict is atomic and lookup-updates-recency cannot lose an
// update.
type LRU struct {
	mu       sync.Mutex
	capacity int
	items    map[uint64]*list.Element
	order    *list.List // front = most recently used
}

type entryNode struct {
	key   uint64
	value Entry
}

// New creates an LRU with the given capacity; capacity <= 0 falls
// back to DefaultCapacity.
func New(capacity int) *LRU {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &LRU{
		capacity: capacity,
		items:    make(map[uint64]*list.Element),
		order:    list.New(),
	}
}

// Get returns the cached entry for key, if present, bumping its
// recency.
func (c *LRU) Get(key Key) (Entry, bool) {
	h := key.Hash()
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[h]
	if !ok {
		return Entry{}, false
	}
	c.order.MoveToFront(el)
	return el.Value.(*entryNode).value, true
}

// Put inserts or updates the entry for key, evicting the
// least-recently-used entry if capacity is exceeded. Cache semantics
// on failure are resolved by the scheduler: Put is only called for
// agent runs that did not error or time out, so failed runs are never
// memoized.
func (c *LRU) Put(key Key, value Entry) {
	h := key.Hash()
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[h]; ok {
		el.Value.(*entryNode).value = value
		c.order.MoveToFront(el)
		return
	}

	el := c.order.PushFront(&entryNode{key: h, value: value})
	c.items[h] = el

	if c.order.Len() > c.capacity {
		oldest := c.order.Back()
		if oldest != nil {
			c.order.Remove(oldest)
			delete(c.items, oldest.Value.(*entryNode).key)
		}
	}
}

// Clear empties the cache.
func (c *LRU) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[uint64]*list.Element)
	c.order = list.New()
}

// Len returns the current number of cached entries.
func (c *LRU) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}
