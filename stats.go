package main

import (
	"time"

	"github.com/flowlens/flowlens/attribute"
	"github.com/flowlens/flowlens/log"
	"github.com/flowlens/flowlens/rdns"
)

// statsReport summarizes resolver activity at the end of a run. Only emitted at
// Major and above.
func (t *flowlens) statsReport(prefixes *attribute.Resolver, hosts *rdns.Resolver) {
	if !log.IfMajor() {
		return
	}

	ps := prefixes.Stats()
	log.Majorf("Attribution: %s prefixes=%d", ps.String(), prefixes.Store().Len())

	hs := hosts.Stats()
	if hs != (rdns.Stats{}) {
		log.Majorf("Reverse DNS: %s", hs.String())
	}

	log.Majorf("Elapsed: %s", time.Since(t.startTime).Round(time.Millisecond))
}
