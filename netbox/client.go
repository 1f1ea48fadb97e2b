package netbox

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/flowlens/flowlens/log"
)

const (
	defaultQueryLimit     = 100
	defaultRequestTimeout = 10 * time.Second
	maxRetries            = 3
)

// Client queries a single NetBox instance. Safe for concurrent use as it holds no
// mutable state beyond the embedded http.Client.
type Client struct {
	baseURL string
	token   string
	limit   int
	httpc   *http.Client
}

// NewClient creates a ready-to-use client. baseURL is the NetBox root, e.g.
// "https://netbox.example.com" - with or without a trailing slash. token is the API
// token placed in the Authorization header of every request.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		limit:   defaultQueryLimit,
		httpc:   &http.Client{Timeout: defaultRequestTimeout},
	}
}

// ContainingPrefixes returns every prefix whose network contains addr, following
// pagination until NetBox reports no further pages. The tenant hint is *not* passed
// to NetBox: the resolver needs the non-matching candidates too, for its fallback
// selection, so filtering is entirely client-side.
//
// Transient failures (transport errors, 5xx) are retried with exponential backoff; a
// 4xx response is permanent and returned immediately.
func (t *Client) ContainingPrefixes(ctx context.Context, addr string) ([]Prefix, error) {
	next := fmt.Sprintf("%s/api/ipam/prefixes/?contains=%s&limit=%d",
		t.baseURL, url.QueryEscape(addr), t.limit)

	var found []Prefix
	for len(next) > 0 {
		pg, err := t.getPage(ctx, next)
		if err != nil {
			return nil, err
		}

		for _, pj := range pg.Results {
			found = append(found, Prefix{
				Prefix:      pj.Prefix,
				VLANName:    pj.VLAN.display(),
				Description: pj.Description,
				Role:        pj.Role.display(),
				Tenant:      pj.Tenant.display(),
			})
		}

		next = ""
		if pg.Next != nil {
			next = *pg.Next
		}
	}

	if log.IfDebug() {
		log.Debugf("netbox: %s contained by %d prefix(es)", addr, len(found))
	}

	return found, nil
}

func (t *Client) getPage(ctx context.Context, pageURL string) (*pageJSON, error) {
	var pg pageJSON

	op := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Accept", "application/json")
		if len(t.token) > 0 {
			req.Header.Set("Authorization", "Token "+t.token)
		}

		resp, err := t.httpc.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 500 {
			io.Copy(io.Discard, resp.Body)
			return fmt.Errorf("netbox returned %s", resp.Status)
		}
		if resp.StatusCode != http.StatusOK {
			io.Copy(io.Discard, resp.Body)
			return backoff.Permanent(fmt.Errorf("netbox returned %s", resp.Status))
		}

		pg = pageJSON{}
		if err := json.NewDecoder(resp.Body).Decode(&pg); err != nil {
			return fmt.Errorf("decoding netbox response: %w", err)
		}

		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 200 * time.Millisecond
	bo.MaxElapsedTime = 30 * time.Second

	err := backoff.Retry(op,
		backoff.WithContext(backoff.WithMaxRetries(bo, maxRetries), ctx))
	if err != nil {
		return nil, err
	}

	return &pg, nil
}
