package rdns

import (
	"context"
	"fmt"
	"net"
	"net/netip"
	"strings"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/miekg/dns"
	"golang.org/x/sync/singleflight"

	"github.com/flowlens/flowlens/log"
)

const (
	defaultQueryTimeout = 1600 * time.Millisecond
	defaultCacheSize    = 16384
)

// The public resolvers asked when the caller configures none.
var defaultNameservers = []string{"1.1.1.1", "1.0.0.1"}

// Exchanger performs one DNS exchange with one server. It exists so tests can count
// and script queries without a network.
type Exchanger interface {
	Exchange(ctx context.Context, q *dns.Msg, server string) (*dns.Msg, time.Duration, error)
}

// netExchanger is the real thing - a thin shim over the miekg client with the
// per-call timeout applied.
type netExchanger struct {
	timeout time.Duration
}

func (t *netExchanger) Exchange(ctx context.Context, q *dns.Msg, server string) (*dns.Msg, time.Duration, error) {
	client := &dns.Client{Timeout: t.timeout}

	return client.ExchangeContext(ctx, q, server)
}

// Config carries the optional settings for NewResolver. The zero value gives the
// defaults: Cloudflare's resolvers, a 1.6s per-query timeout and a 16k entry cache.
type Config struct {
	Nameservers []string      // host or host:port
	Timeout     time.Duration // Per exchange, not per batch
	CacheSize   int
	Exchanger   Exchanger // Tests only; nil means the real network
}

// Stats counts resolver activity for the end-of-run report.
type Stats struct {
	Lookups  int // PTR questions actually sent (memo misses on public addresses)
	Answered int
	NoAnswer int
	Failed   int
	Privates int
	Invalid  int
	MemoHits int
}

func (t *Stats) String() string {
	return fmt.Sprintf("ptr=%d good=%d empty=%d fail=%d private=%d invalid=%d memo=%d",
		t.Lookups, t.Answered, t.NoAnswer, t.Failed, t.Privates, t.Invalid, t.MemoHits)
}

// Resolver classifies and reverse-resolves addresses with per-run memoization. Safe
// for concurrent use; at most one PTR question is in flight per distinct address.
type Resolver struct {
	exchanger Exchanger
	servers   []string
	memo      *lru.Cache[string, string]
	flight    singleflight.Group

	mu    sync.Mutex
	stats Stats
}

// NewResolver creates a fully formed resolver which is ready to use.
func NewResolver(cfg Config) (*Resolver, error) {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultQueryTimeout
	}
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = defaultCacheSize
	}
	if len(cfg.Nameservers) == 0 {
		cfg.Nameservers = defaultNameservers
	}
	if cfg.Exchanger == nil {
		cfg.Exchanger = &netExchanger{timeout: cfg.Timeout}
	}

	servers := make([]string, 0, len(cfg.Nameservers))
	for _, s := range cfg.Nameservers {
		if _, _, err := net.SplitHostPort(s); err != nil { // Coerce a port on if absent
			s = net.JoinHostPort(s, "53")
		}
		servers = append(servers, s)
	}

	memo, err := lru.New[string, string](cfg.CacheSize)
	if err != nil {
		return nil, err
	}

	return &Resolver{exchanger: cfg.Exchanger, servers: servers, memo: memo}, nil
}

// Classify returns the reverse-resolution outcome for addr: the hostname, Private,
// NotResolve or "" when the address is invalid or the DNS has no name for it.
// Identical inputs within a run never repeat the network query.
func (t *Resolver) Classify(ctx context.Context, addr string) string {
	addr = strings.TrimSpace(addr)

	ip, err := netip.ParseAddr(addr)
	if err != nil {
		t.count(func(s *Stats) { s.Invalid++ })
		return ""
	}

	if isSpecialScope(ip) {
		t.count(func(s *Stats) { s.Privates++ })
		return Private
	}

	if outcome, ok := t.memo.Get(addr); ok {
		t.count(func(s *Stats) { s.MemoHits++ })
		return outcome
	}

	v, _, _ := t.flight.Do(addr, func() (interface{}, error) {
		if outcome, ok := t.memo.Get(addr); ok { // A racing caller got here first
			return outcome, nil
		}
		outcome := t.lookup(ctx, ip)
		t.memo.Add(addr, outcome)
		return outcome, nil
	})

	return v.(string)
}

// Stats returns a copy of the activity counters.
func (t *Resolver) Stats() Stats {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.stats
}

func (t *Resolver) count(f func(*Stats)) {
	t.mu.Lock()
	f(&t.stats)
	t.mu.Unlock()
}

// lookup asks each configured nameserver in turn until one produces a usable
// response. An authoritative "no such name" is a final answer and stops the walk; a
// transport failure or SERVFAIL moves on to the next server.
func (t *Resolver) lookup(ctx context.Context, ip netip.Addr) string {
	t.count(func(s *Stats) { s.Lookups++ })

	qName, err := dns.ReverseAddr(ip.String())
	if err != nil {
		t.count(func(s *Stats) { s.Invalid++ })
		return ""
	}

	query := new(dns.Msg)
	query.SetQuestion(qName, dns.TypePTR)

	for _, server := range t.servers {
		r, _, err := t.exchanger.Exchange(ctx, query, server)
		if err != nil {
			if log.IfDebug() {
				log.Debugf("rdns: %s @%s: %s", ip, server, err.Error())
			}
			continue
		}

		switch r.MsgHdr.Rcode {
		case dns.RcodeSuccess:
			for _, rr := range r.Answer {
				if ptr, ok := rr.(*dns.PTR); ok {
					t.count(func(s *Stats) { s.Answered++ })
					return strings.TrimSuffix(ptr.Ptr, ".")
				}
			}
			t.count(func(s *Stats) { s.NoAnswer++ })
			return "" // NOERROR with no PTR: confirmed nameless

		case dns.RcodeNameError:
			t.count(func(s *Stats) { s.NoAnswer++ })
			return ""
		}

		// SERVFAIL, REFUSED and friends: not an answer, try the next server
		if log.IfDebug() {
			log.Debugf("rdns: %s @%s: rcode %s", ip, server,
				dns.RcodeToString[r.MsgHdr.Rcode])
		}
	}

	t.count(func(s *Stats) { s.Failed++ })

	return NotResolve
}
