/*
Package enrich runs the two resolvers over a batch of traffic records: source
addresses gain their attributed prefix and description, destination addresses their
reverse-DNS outcome. Each distinct address is resolved exactly once and the result
broadcast to every record carrying it. Input order and count are always preserved.
*/
package enrich

import (
	"context"
	"errors"

	"github.com/flowlens/flowlens/attribute"
	"github.com/flowlens/flowlens/log"
	"github.com/flowlens/flowlens/rdns"
	"github.com/flowlens/flowlens/record"
)

// Pipeline owns the per-run resolver state. Build one per input batch with New and
// discard it afterwards; nothing is persisted between runs.
type Pipeline struct {
	prefixes    *attribute.Resolver
	hosts       *rdns.Resolver
	concurrency int
}

// New assembles a pipeline. concurrency bounds the reverse-DNS worker pool; zero
// selects the rdns default.
func New(prefixes *attribute.Resolver, hosts *rdns.Resolver, concurrency int) *Pipeline {
	return &Pipeline{prefixes: prefixes, hosts: hosts, concurrency: concurrency}
}

// Enrich returns a new slice with the enrichment fields filled in. Records with
// unresolvable addresses keep empty enrichment fields rather than producing errors;
// the one failure class worth surfacing per address - a malformed source - is logged
// and counted by the resolver.
func (t *Pipeline) Enrich(ctx context.Context, recs []record.Traffic, tenant string,
	resolveDst bool) []record.Traffic {

	out := make([]record.Traffic, len(recs))
	copy(out, recs)

	// Source attribution: sequential over distinct addresses. Registry queries are
	// cheap next to DNS and the store warms up as we go.
	srcSeen := make(map[string]attribute.Attribution, len(out))
	for _, rec := range out {
		if _, ok := srcSeen[rec.SrcAddr]; ok {
			continue
		}
		a, err := t.prefixes.Resolve(ctx, rec.SrcAddr, tenant)
		var vErr *attribute.ValidationError
		if errors.As(err, &vErr) {
			log.Minorf("enrich: %s", vErr.Error())
		}
		srcSeen[rec.SrcAddr] = a
	}
	for ix := range out {
		a := srcSeen[out[ix].SrcAddr]
		out[ix].SrcPrefix = a.Prefix
		out[ix].SrcDescription = a.Description
	}

	if !resolveDst {
		return out
	}

	dstAddrs := make([]string, 0, len(out))
	for _, rec := range out {
		if len(rec.DstAddr) > 0 {
			dstAddrs = append(dstAddrs, rec.DstAddr)
		}
	}
	hostOf := t.hosts.ResolveAll(ctx, dstAddrs, t.concurrency)
	for ix := range out {
		out[ix].DstHost = hostOf[out[ix].DstAddr]
	}

	return out
}
