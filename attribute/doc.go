/*
Package attribute maps IP addresses to the most specific known network prefix and its
registry metadata. Lookups go through three layers, cheapest first: an exact-address
cache, a growing in-process prefix table and finally the NetBox registry. Both the
cache and the table live for one run and only ever grow, so within a run an address is
validated at most once and queried against the registry at most once - including the
"registry knows nothing about this address" outcome.
*/
package attribute
