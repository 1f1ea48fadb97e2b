package rdns

import (
	"net/netip"

	"github.com/gaissmai/bart"
)

// Outcome literals written into reports. An empty outcome means "no name".
const (
	Private    = "private"     // Not globally routable, never queried
	NotResolve = "not resolve" // Query failed - distinct from a confirmed empty answer
)

// specialScope holds the IANA special-purpose ranges which are not meaningfully
// reverse-resolvable on the public DNS. netip's IsGlobalUnicast catches most of them
// but not, e.g., shared CGNAT space or the documentation and benchmarking nets.
var specialScope bart.Table[struct{}]

func init() {
	for _, s := range []string{
		"0.0.0.0/8",
		"10.0.0.0/8",
		"100.64.0.0/10",
		"127.0.0.0/8",
		"169.254.0.0/16",
		"172.16.0.0/12",
		"192.0.0.0/24",
		"192.0.2.0/24",
		"192.88.99.0/24",
		"192.168.0.0/16",
		"198.18.0.0/15",
		"198.51.100.0/24",
		"203.0.113.0/24",
		"224.0.0.0/4",
		"240.0.0.0/4",
		"::/128",
		"::1/128",
		"::ffff:0:0/96",
		"100::/64",
		"2001:db8::/32",
		"fc00::/7",
		"fe80::/10",
		"ff00::/8",
	} {
		specialScope.Insert(netip.MustParsePrefix(s), struct{}{})
	}
}

// isSpecialScope reports whether addr should be answered as Private without a lookup.
func isSpecialScope(addr netip.Addr) bool {
	if !addr.IsGlobalUnicast() {
		return true
	}
	_, ok := specialScope.Lookup(addr.Unmap())

	return ok
}
