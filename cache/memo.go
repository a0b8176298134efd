package cache

// Stats counts lookups served from (Hits) or missing in (Misses) a Memo.
type Stats struct {
	Hits   int
	Misses int
}

// Add returns the element-wise sum of two Stats.
func (s Stats) Add(o Stats) Stats {
	return Stats{Hits: s.Hits + o.Hits, Misses: s.Misses + o.Misses}
}

// Memo maps keys to lazily computed values.
type Memo[K comparable, V any] struct {
	entries map[K]V
	stats   Stats
}

// New returns an empty Memo sized for about hint entries.
func New[K comparable, V any](hint int) *Memo[K, V] {
	if hint < 0 {
		hint = 0
	}
	return &Memo[K, V]{entries: make(map[K]V, hint)}
}

// Get returns the value stored under k and records a hit or a miss.
func (c *Memo[K, V]) Get(k K) (V, bool) {
	v, ok := c.entries[k]
	if ok {
		c.stats.Hits++
	} else {
		c.stats.Misses++
	}
	return v, ok
}

// Put stores v under k, replacing any previous value.
func (c *Memo[K, V]) Put(k K, v V) { c.entries[k] = v }

// GetOrCompute returns the cached value for k, calling compute and storing
// its result on a miss. If compute fails nothing is stored.
func (c *Memo[K, V]) GetOrCompute(k K, compute func() (V, error)) (V, error) {
	if v, ok := c.Get(k); ok {
		return v, nil
	}
	v, err := compute()
	if err != nil {
		return v, err
	}
	c.entries[k] = v
	return v, nil
}

// Len returns the number of stored entries.
func (c *Memo[K, V]) Len() int { return len(c.entries) }

// Stats returns the hit/miss counters.
func (c *Memo[K, V]) Stats() Stats { return c.stats }

// Reset drops every entry and zeroes the counters.
func (c *Memo[K, V]) Reset() {
	clear(c.entries)
	c.stats = Stats{}
}
