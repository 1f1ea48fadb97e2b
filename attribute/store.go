package attribute

import (
	"net/netip"
	"sync"

	"github.com/gaissmai/bart"
)

// Entry is one (prefix, metadata) pair discovered so far. Entries are immutable once
// added.
type Entry struct {
	Prefix      netip.Prefix
	Description string
	Tenant      string
}

// Store is the append-only collection of known prefixes. Multiple entries may share a
// prefix (NetBox can hold the same network under different tenants) so the routing
// table maps each prefix to its entry slice. Entries are never removed or mutated.
type Store struct {
	mu    sync.RWMutex
	table bart.Table[[]Entry]
	size  int
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{}
}

// Add inserts an entry under its masked prefix. An entry identical to one already
// present is ignored, which makes Add idempotent.
func (t *Store) Add(e Entry) {
	e.Prefix = e.Prefix.Masked()

	t.mu.Lock()
	defer t.mu.Unlock()

	existing, _ := t.table.Get(e.Prefix)
	for _, have := range existing {
		if have == e {
			return
		}
	}
	t.table.Insert(e.Prefix, append(existing, e))
	t.size++
}

// Lookup returns the entries of the most specific stored prefix containing addr, or
// false if no stored prefix contains it. Longest-prefix selection is the routing
// table's job; tie-breaking between entries sharing that prefix is the caller's.
func (t *Store) Lookup(addr netip.Addr) ([]Entry, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return t.table.Lookup(addr)
}

// Len returns the number of entries added so far.
func (t *Store) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return t.size
}
