package rdns

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/miekg/dns"
)

// stubExchanger scripts PTR responses per query name and counts every exchange so
// tests can prove when the network was - and was not - consulted.
type stubExchanger struct {
	mu       sync.Mutex
	calls    map[string]int // Keyed by qName
	byServer map[string]int
	hosts    map[string]string // qName -> PTR target (canonical, trailing dot)
	fail     map[string]bool   // Transport error
	servfail map[string]bool
}

func newStubExchanger() *stubExchanger {
	return &stubExchanger{
		calls:    make(map[string]int),
		byServer: make(map[string]int),
		hosts:    make(map[string]string),
		fail:     make(map[string]bool),
		servfail: make(map[string]bool),
	}
}

func (t *stubExchanger) total() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := 0
	for _, c := range t.calls {
		n += c
	}

	return n
}

func (t *stubExchanger) Exchange(ctx context.Context, q *dns.Msg, server string) (*dns.Msg, time.Duration, error) {
	qName := q.Question[0].Name
	t.mu.Lock()
	t.calls[qName]++
	t.byServer[server]++
	fail := t.fail[server+qName] || t.fail[qName]
	servfail := t.servfail[qName]
	target, found := t.hosts[qName]
	t.mu.Unlock()

	if fail {
		return nil, 0, errors.New("i/o timeout")
	}

	r := new(dns.Msg)
	r.SetReply(q)
	switch {
	case servfail:
		r.MsgHdr.Rcode = dns.RcodeServerFailure
	case found:
		r.Answer = append(r.Answer, &dns.PTR{
			Hdr: dns.RR_Header{Name: qName, Rrtype: dns.TypePTR,
				Class: dns.ClassINET, Ttl: 3600},
			Ptr: target,
		})
	default:
		r.MsgHdr.Rcode = dns.RcodeNameError
	}

	return r, 0, nil
}

func newTestResolver(t *testing.T, ex Exchanger) *Resolver {
	t.Helper()
	r, err := NewResolver(Config{Exchanger: ex, Nameservers: []string{"ns1", "ns2"}})
	if err != nil {
		t.Fatal("NewResolver failed", err)
	}

	return r
}

func TestPrivateShortCircuit(t *testing.T) {
	ex := newStubExchanger()
	r := newTestResolver(t, ex)

	testCases := []string{
		"10.0.0.5", "192.168.1.1", "172.31.255.1", "127.0.0.1",
		"169.254.10.10", "100.64.0.1", "198.18.0.5", "224.0.0.9",
		"fe80::1", "fd00::5", "::1",
	}
	for ix, addr := range testCases {
		if got := r.Classify(context.Background(), addr); got != Private {
			t.Error(ix, "Expected private for", addr, "got", got)
		}
	}

	if ex.total() != 0 {
		t.Error("Private addresses must never cause a DNS call, got", ex.total())
	}
	if got := r.Stats(); got.Privates != len(testCases) {
		t.Error("Unexpected stats", got.String())
	}
}

func TestInvalidAddress(t *testing.T) {
	ex := newStubExchanger()
	r := newTestResolver(t, ex)

	for ix, addr := range []string{"", "8.8.8", "not-an-ip", "10.0.0.999"} {
		if got := r.Classify(context.Background(), addr); got != "" {
			t.Error(ix, "Expected empty outcome for", addr, "got", got)
		}
	}
	if ex.total() != 0 {
		t.Error("Invalid addresses must never cause a DNS call")
	}
}

func TestResolveAndMemoize(t *testing.T) {
	ex := newStubExchanger()
	ex.hosts["8.8.8.8.in-addr.arpa."] = "dns.google."
	r := newTestResolver(t, ex)

	got := r.Classify(context.Background(), "8.8.8.8")
	if got != "dns.google" {
		t.Error("Expected trailing dot stripped from dns.google., got", got)
	}

	// Second call must be served from the memo
	if got = r.Classify(context.Background(), " 8.8.8.8 "); got != "dns.google" {
		t.Error("Memoized result mismatch", got)
	}
	if ex.total() != 1 {
		t.Error("Expected exactly one exchange, got", ex.total())
	}
	if got := r.Stats(); got.MemoHits != 1 || got.Answered != 1 {
		t.Error("Unexpected stats", got.String())
	}
}

func TestNXDomainIsEmptyNotFailure(t *testing.T) {
	ex := newStubExchanger()
	r := newTestResolver(t, ex)

	if got := r.Classify(context.Background(), "203.0.114.7"); got != "" {
		t.Error("NXDOMAIN should be the empty outcome, got", got)
	}
	if ex.total() != 1 {
		t.Error("NXDOMAIN from the first server is final, got", ex.total(), "exchanges")
	}

	// Cached as a terminal outcome
	r.Classify(context.Background(), "203.0.114.7")
	if ex.total() != 1 {
		t.Error("Empty answers must be memoized too")
	}
}

func TestTransportFailureIsNotResolve(t *testing.T) {
	ex := newStubExchanger()
	ex.fail["7.0.113.11.in-addr.arpa."] = true // Both servers fail
	r := newTestResolver(t, ex)

	if got := r.Classify(context.Background(), "11.113.0.7"); got != NotResolve {
		t.Error("Expected", NotResolve, "got", got)
	}

	// Terminal for the run: no retry on a second sighting
	r.Classify(context.Background(), "11.113.0.7")
	if ex.calls["7.0.113.11.in-addr.arpa."] != 2 { // Once per nameserver
		t.Error("Expected one attempt per server and no retry, got",
			ex.calls["7.0.113.11.in-addr.arpa."])
	}
	if got := r.Stats(); got.Failed != 1 || got.MemoHits != 1 {
		t.Error("Unexpected stats", got.String())
	}
}

func TestNameserverFailover(t *testing.T) {
	ex := newStubExchanger()
	ex.fail["ns1:534.3.2.1.in-addr.arpa."] = true
	ex.hosts["4.3.2.1.in-addr.arpa."] = "host.example.net."
	r := newTestResolver(t, ex)

	if got := r.Classify(context.Background(), "1.2.3.4"); got != "host.example.net" {
		t.Error("Second server should have answered, got", got)
	}
	if ex.byServer["ns1:53"] != 1 || ex.byServer["ns2:53"] != 1 {
		t.Error("Expected failover ns1 then ns2, got", ex.byServer)
	}
}

func TestServfailMovesOn(t *testing.T) {
	ex := newStubExchanger()
	ex.servfail["9.0.113.11.in-addr.arpa."] = true
	r := newTestResolver(t, ex)

	if got := r.Classify(context.Background(), "11.113.0.9"); got != NotResolve {
		t.Error("All-SERVFAIL should end as", NotResolve, "got", got)
	}
	if ex.calls["9.0.113.11.in-addr.arpa."] != 2 {
		t.Error("Expected both servers tried on SERVFAIL, got",
			ex.calls["9.0.113.11.in-addr.arpa."])
	}
}
