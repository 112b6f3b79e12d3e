package combos

import (
	"sync"

	"github.com/ougirez/turnero/internal/domain"
)

// Pair keys the combination cache.
type Pair struct {
	ProviderID int64 `json:"id_efector"`
	ServiceID  int64 `json:"id_servicio"`
}

// Cache memoizes association rows per (provider, service) pair. An entry
// exists only after a successful fetch; an empty entry ("fetched, found
// nothing") is a valid state distinct from absence. Entry slices are
// replaced wholesale, never mutated in place, so readers can hold a
// returned slice without locking.
type Cache struct {
	mu      sync.RWMutex
	entries map[Pair][]domain.Association
}

func NewCache() *Cache {
	return &Cache{entries: make(map[Pair][]domain.Association)}
}

func (c *Cache) Get(p Pair) ([]domain.Association, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	rows, ok := c.entries[p]
	return rows, ok
}

func (c *Cache) Put(p Pair, rows []domain.Association) {
	entry := make([]domain.Association, len(rows))
	copy(entry, rows)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[p] = entry
}

// UpdateRow replaces one association within its pair's entry, producing a
// new slice. A row whose pair was never fetched is ignored.
func (c *Cache) UpdateRow(row domain.Association) bool {
	p := Pair{ProviderID: row.ProviderID, ServiceID: row.ServiceID}

	c.mu.Lock()
	defer c.mu.Unlock()

	rows, ok := c.entries[p]
	if !ok {
		return false
	}

	next := make([]domain.Association, len(rows))
	copy(next, rows)
	replaced := false
	for i := range next {
		if next[i].ID == row.ID {
			next[i] = row
			replaced = true
		}
	}
	if replaced {
		c.entries[p] = next
	}
	return replaced
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
