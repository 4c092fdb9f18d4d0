package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ppiankov/factly/internal/model"
)

// maxResponseBytes caps how much of an upstream response body is read
const maxResponseBytes = 4 << 20

// ErrUnavailable signals that a client cannot run because its credential or
// configuration is missing. Callers treat this as a skip, not a failure.
var ErrUnavailable = errors.New("source unavailable: missing credential or configuration")

// Client is a single upstream evidence provider
type Client interface {
	// Name returns the stable identifier used for caching and rate limiting
	Name() string

	// Type returns the evidence category this client produces
	Type() model.SourceType

	// Search queries the upstream for evidence about a claim. Implementations
	// return at most maxResults items with credibility and relevance in [0,1].
	Search(ctx context.Context, claim, language string, maxResults int) ([]model.EvidenceItem, error)
}

// trustedDomains maps news domains to editorially assessed credibility.
// Unlisted domains get the neutral default.
var trustedDomains = map[string]float64{
	"reuters.com":        0.95,
	"apnews.com":         0.95,
	"ap.org":             0.95,
	"bbc.com":            0.92,
	"bbc.co.uk":          0.92,
	"npr.org":            0.90,
	"nytimes.com":        0.88,
	"washingtonpost.com": 0.88,
	"theguardian.com":    0.87,
	"cnn.com":            0.85,
	"politifact.com":     0.95,
	"snopes.com":         0.93,
	"factcheck.org":      0.94,
}

const defaultCredibility = 0.5

// DomainCredibility returns the trust score for a news domain
func DomainCredibility(domain string) float64 {
	if score, ok := trustedDomains[domain]; ok {
		return score
	}
	return defaultCredibility
}

// newHTTPClient builds a client with separate connect and total timeouts
func newHTTPClient(connectTimeout, totalTimeout time.Duration) *http.Client {
	if connectTimeout <= 0 {
		connectTimeout = 5 * time.Second
	}
	if totalTimeout <= 0 {
		totalTimeout = 30 * time.Second
	}
	return &http.Client{
		Timeout: totalTimeout,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout: connectTimeout,
			}).DialContext,
			TLSHandshakeTimeout: connectTimeout,
			MaxIdleConnsPerHost: 4,
		},
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= 3 {
				return fmt.Errorf("stopped after 3 redirects")
			}
			return nil
		},
	}
}

// extractDomain returns the registrable host of a URL without the www prefix
func extractDomain(rawURL string) string {
	if rawURL == "" {
		return ""
	}
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(strings.ToLower(parsed.Hostname()), "www.")
}

// parseTimestamp parses the RFC 3339 timestamps the upstream APIs emit.
// Returns nil when the value is absent or malformed.
func parseTimestamp(value string) *time.Time {
	if value == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil
	}
	return &t
}

// capResults bounds a requested result count by a client's configured
// maximum. A zero configured maximum means unbounded.
func capResults(requested, configured int) int {
	if configured > 0 && requested > configured {
		return configured
	}
	return requested
}

// clamp01 bounds a score to [0,1]
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// decodeJSON reads a bounded response body into out
func decodeJSON(resp *http.Response, out any) error {
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status: %d %s", resp.StatusCode, resp.Status)
	}
	dec := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes))
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
