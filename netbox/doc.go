/*
Package netbox is a minimal read-only client for the NetBox IPAM REST API. Only the
one query flowlens needs is implemented: "all prefixes containing this address". The
client follows pagination, retries transient failures with exponential backoff and
honors the caller's context throughout.
*/
package netbox
