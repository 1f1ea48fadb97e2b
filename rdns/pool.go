package rdns

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/flowlens/flowlens/log"
)

// DefaultConcurrency is the worker-pool bound used when the caller passes zero.
// Reverse lookups are latency-bound so a wide pool pays off; the original field
// tooling ran 120-400 workers comfortably.
const DefaultConcurrency = 120

// ResolveAll classifies every distinct address in addrs under at most concurrency
// concurrent lookups and blocks until all of them are done. The returned map holds
// exactly one entry per distinct input address. A panicking worker is logged and its
// address mapped to ""; the rest of the batch is unaffected.
func (t *Resolver) ResolveAll(ctx context.Context, addrs []string, concurrency int) map[string]string {
	if concurrency < 1 {
		concurrency = DefaultConcurrency
	}

	seen := make(map[string]bool, len(addrs))
	distinct := make([]string, 0, len(addrs))
	for _, addr := range addrs {
		if !seen[addr] {
			seen[addr] = true
			distinct = append(distinct, addr)
		}
	}

	results := make(map[string]string, len(distinct))
	var mu sync.Mutex

	g := new(errgroup.Group)
	g.SetLimit(concurrency)
	for _, addr := range distinct {
		addr := addr
		g.Go(func() error {
			outcome := ""
			func() {
				defer func() {
					if p := recover(); p != nil {
						log.Minorf("rdns: worker panic for %s: %v", addr, p)
					}
				}()
				outcome = t.Classify(ctx, addr)
			}()

			mu.Lock()
			results[addr] = outcome
			mu.Unlock()

			return nil
		})
	}
	g.Wait() // Workers never return errors; Wait is purely a barrier

	return results
}
