package model

import "sync"

// Currencies accumulates account-wide currency counts discovered while
// processing stores. One accumulator is created per load cycle and passed
// explicitly to every store conversion; it is never shared across cycles.
type Currencies struct {
	mu     sync.Mutex
	counts map[uint32]int64
}

// NewCurrencies creates an empty accumulator.
func NewCurrencies() *Currencies {
	return &Currencies{counts: make(map[uint32]int64)}
}

// Add records quantity of the given currency. Safe for concurrent use by the
// per-store conversions of one cycle.
func (c *Currencies) Add(hash uint32, quantity int64) {
	c.mu.Lock()
	c.counts[hash] += quantity
	c.mu.Unlock()
}

// Snapshot returns a copy of the accumulated counts.
func (c *Currencies) Snapshot() map[uint32]int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make(map[uint32]int64, len(c.counts))
	for hash, count := range c.counts {
		out[hash] = count
	}
	return out
}
