/*
Package rdns turns destination IP addresses into hostnames. An address is first
classified: anything private, loopback, link-local or otherwise not globally routable
is answered locally as "private" without touching the network. Globally routable
addresses get a PTR query against the configured nameservers with a short per-call
timeout. Every outcome is memoized for the life of the run so a batch full of repeat
addresses costs one query each, and ResolveAll fans a batch out across a bounded
worker pool.

The outcome vocabulary is deliberate: an empty string means the DNS confirmed there is
no name, while "not resolve" means the question could not be asked (timeout, transport
failure). A retry policy can tell those apart; within one run neither is retried.
*/
package rdns
