package attribute

import (
	"context"
	"fmt"
	"net/netip"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/flowlens/flowlens/log"
	"github.com/flowlens/flowlens/netbox"
)

// Attribution is the resolved network context for one address. The zero value is the
// valid "no attribution found" outcome and is cached like any other result.
type Attribution struct {
	Prefix      string
	Description string
}

// ValidationError reports an input which is neither a sentinel placeholder nor a
// parseable IP address. It is non-fatal: the resolver caches the miss and carries on.
type ValidationError struct {
	Addr string
}

func (e *ValidationError) Error() string {
	return "not a valid IP address: '" + e.Addr + "'"
}

// Registry is the containment-query contract consumed by the resolver. Implemented by
// netbox.Client and by counting stubs in tests.
type Registry interface {
	ContainingPrefixes(ctx context.Context, addr string) ([]netbox.Prefix, error)
}

// Resolver performs longest-prefix attribution with per-run caching. Safe for
// concurrent use; at most one registry query is ever in flight per distinct address.
type Resolver struct {
	registry Registry
	store    *Store
	flight   singleflight.Group

	mu    sync.Mutex
	cache map[string]Attribution // Keyed by trimmed address, negative entries included
	stats Stats
}

// Stats counts resolver activity for the end-of-run report.
type Stats struct {
	CacheHits          int
	StoreHits          int
	RegistryQueries    int
	RegistryErrors     int
	NoAttribution      int
	ValidationFailures int
}

func (t *Stats) String() string {
	return fmt.Sprintf("cache=%d store=%d registry=%d/%d none=%d invalid=%d",
		t.CacheHits, t.StoreHits, t.RegistryQueries, t.RegistryErrors,
		t.NoAttribution, t.ValidationFailures)
}

// NewResolver creates a resolver with empty caches which lives for one run.
func NewResolver(registry Registry) *Resolver {
	return &Resolver{
		registry: registry,
		store:    NewStore(),
		cache:    make(map[string]Attribution),
	}
}

// Sentinel placeholders which various exporters emit in place of an address. They
// resolve to the zero Attribution without being cached or counted as invalid.
func isSentinel(addr string) bool {
	switch strings.ToLower(addr) {
	case "", "nan", "none", "0.0.0.0":
		return true
	}

	return false
}

// Resolve returns the most specific known prefix containing addr and its descriptive
// metadata. tenant is a hint used to break ties between candidates of equal mask
// length. The only error ever returned is *ValidationError; registry failures are
// logged, counted and cached as "no attribution" so one broken lookup never aborts a
// batch.
func (t *Resolver) Resolve(ctx context.Context, addr, tenant string) (Attribution, error) {
	addr = strings.TrimSpace(addr)
	if isSentinel(addr) {
		return Attribution{}, nil
	}

	if a, ok := t.cached(addr); ok {
		return a, nil
	}

	ip, err := netip.ParseAddr(addr)
	if err != nil {
		t.mu.Lock()
		t.cache[addr] = Attribution{}
		t.stats.ValidationFailures++
		t.mu.Unlock()
		return Attribution{}, &ValidationError{Addr: addr}
	}

	if entries, ok := t.store.Lookup(ip); ok {
		a := pickStored(entries, tenant)
		t.mu.Lock()
		t.cache[addr] = a
		t.stats.StoreHits++
		t.mu.Unlock()
		return a, nil
	}

	// Registry fallback under singleflight so concurrent resolution of the same
	// address issues a single query. Suppressed callers share the winner's result.
	v, _, _ := t.flight.Do(addr, func() (interface{}, error) {
		if a, ok := t.cached(addr); ok { // Winner may have landed already
			return a, nil
		}
		return t.queryRegistry(ctx, addr, tenant), nil
	})

	return v.(Attribution), nil
}

// Stats returns a copy of the activity counters.
func (t *Resolver) Stats() Stats {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.stats
}

// Store exposes the prefix store, mostly so the caller can report its size.
func (t *Resolver) Store() *Store {
	return t.store
}

func (t *Resolver) cached(addr string) (Attribution, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	a, ok := t.cache[addr]
	if ok {
		t.stats.CacheHits++
	}

	return a, ok
}

// queryRegistry asks NetBox for all networks containing addr and selects the winner:
// candidates whose tenant equals the hint (case-insensitive) beat all others, longer
// masks beat shorter ones and an equal-mask tie goes to the lexicographically
// smallest prefix. That last rule replaces the registry-return-order tie-break of
// older tooling, which was never a documented NetBox guarantee.
func (t *Resolver) queryRegistry(ctx context.Context, addr, tenant string) Attribution {
	t.mu.Lock()
	t.stats.RegistryQueries++
	t.mu.Unlock()

	cands, err := t.registry.ContainingPrefixes(ctx, addr)
	if err != nil {
		log.Minorf("attribute: registry lookup failed for %s: %s", addr, err.Error())
		t.mu.Lock()
		t.cache[addr] = Attribution{}
		t.stats.RegistryErrors++
		t.mu.Unlock()
		return Attribution{}
	}

	var tenantMatch, others []netbox.Prefix
	for _, c := range cands {
		if len(c.Tenant) > 0 && strings.EqualFold(c.Tenant, tenant) {
			tenantMatch = append(tenantMatch, c)
		} else {
			others = append(others, c)
		}
	}

	pool := tenantMatch
	if len(pool) == 0 {
		pool = others
	}

	winner, ok := longest(pool)
	if !ok {
		t.mu.Lock()
		t.cache[addr] = Attribution{}
		t.stats.NoAttribution++
		t.mu.Unlock()
		return Attribution{}
	}

	desc := describe(winner.candidate)
	t.store.Add(Entry{Prefix: winner.network, Description: desc, Tenant: winner.candidate.Tenant})

	a := Attribution{Prefix: winner.candidate.Prefix, Description: desc}
	t.mu.Lock()
	t.cache[addr] = a
	t.mu.Unlock()

	return a
}

type scored struct {
	candidate netbox.Prefix
	network   netip.Prefix
}

// longest selects the candidate with the greatest mask length. Ties go to the
// lexicographically smallest prefix string, then the smallest assembled description,
// so repeat runs always pick the same winner regardless of registry return order.
// Candidates whose prefix does not parse are skipped.
func longest(cands []netbox.Prefix) (scored, bool) {
	var best scored
	var have bool
	for _, c := range cands {
		pfx, err := netip.ParsePrefix(c.Prefix)
		if err != nil {
			log.Debugf("attribute: skipping malformed registry prefix '%s'", c.Prefix)
			continue
		}
		s := scored{candidate: c, network: pfx.Masked()}
		switch {
		case !have:
			best, have = s, true
		case pfx.Bits() > best.network.Bits():
			best = s
		case pfx.Bits() == best.network.Bits():
			if c.Prefix < best.candidate.Prefix ||
				(c.Prefix == best.candidate.Prefix && describe(c) < describe(best.candidate)) {
				best = s
			}
		}
	}

	return best, have
}

// pickStored breaks ties between entries sharing the winning stored prefix: a tenant
// match wins, otherwise the lexicographically smallest description, purely so repeat
// runs give identical answers.
func pickStored(entries []Entry, tenant string) Attribution {
	ordered := sorted(entries)
	pick := ordered[0]
	for _, e := range ordered {
		if len(e.Tenant) > 0 && strings.EqualFold(e.Tenant, tenant) {
			pick = e
			break
		}
	}

	return Attribution{Prefix: pick.Prefix.String(), Description: pick.Description}
}

func sorted(entries []Entry) []Entry {
	out := append([]Entry{}, entries...)
	sort.Slice(out, func(i, j int) bool { return out[i].Description < out[j].Description })

	return out
}

// describe assembles the human-readable metadata the way network operators expect to
// read it: the VLAN name when the prefix has one, otherwise free text plus role, with
// the owning tenant always appended.
func describe(c netbox.Prefix) string {
	if len(c.VLANName) > 0 {
		return c.VLANName + "-" + c.Tenant
	}

	return c.Description + " " + c.Role + " " + c.Tenant
}
