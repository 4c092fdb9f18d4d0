package source

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ppiankov/factly/internal/model"
)

const testUserAgent = "factly-test/1.0"

func testSourceConfig(baseURL string) model.SourceConfig {
	return model.SourceConfig{
		Enabled:        true,
		APIKey:         "test-key",
		BaseURL:        baseURL,
		Timeout:        5 * time.Second,
		ConnectTimeout: 2 * time.Second,
		MaxResults:     10,
	}
}

func TestFactCheckClient_MissingKey(t *testing.T) {
	cfg := testSourceConfig("http://example.com")
	cfg.APIKey = ""
	if _, err := NewFactCheckClient(cfg, testUserAgent); !errors.Is(err, ErrUnavailable) {
		t.Errorf("expected ErrUnavailable, got %v", err)
	}
}

func TestFactCheckClient_Search(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("key") != "test-key" {
			t.Errorf("missing api key parameter")
		}
		if r.URL.Query().Get("query") == "" {
			t.Errorf("missing query parameter")
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"claims": [{
				"text": "Unemployment fell to 3.5%",
				"languageCode": "en",
				"claimReview": [{
					"publisher": {"name": "PolitiFact", "site": "politifact.com"},
					"url": "https://www.politifact.com/factchecks/2023/example/",
					"title": "Checking the unemployment number",
					"reviewDate": "2023-04-01T12:00:00Z",
					"textualRating": "True"
				}]
			}]
		}`))
	}))
	defer server.Close()

	client, err := NewFactCheckClient(testSourceConfig(server.URL), testUserAgent)
	if err != nil {
		t.Fatalf("NewFactCheckClient failed: %v", err)
	}

	items, err := client.Search(context.Background(), "unemployment fell", "en", 10)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}

	item := items[0]
	if item.SourceType != model.SourceTypeFactCheck {
		t.Errorf("expected fact_check type, got %s", item.SourceType)
	}
	if item.Verdict != "True" {
		t.Errorf("expected verdict True, got %q", item.Verdict)
	}
	// politifact.com is in the trusted table, so it outranks the named-publisher floor
	if item.Credibility != 0.95 {
		t.Errorf("expected credibility 0.95, got %f", item.Credibility)
	}
	if item.Relevance != 0.9 {
		t.Errorf("expected relevance 0.9, got %f", item.Relevance)
	}
	if item.PublishedAt == nil {
		t.Errorf("expected parsed review date")
	}
}

func TestFactCheckClient_UnnamedPublisher(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"claims": [{
				"text": "some claim",
				"claimReview": [{"url": "https://obscure-checker.example/review", "textualRating": "False"}]
			}]
		}`))
	}))
	defer server.Close()

	client, err := NewFactCheckClient(testSourceConfig(server.URL), testUserAgent)
	if err != nil {
		t.Fatalf("NewFactCheckClient failed: %v", err)
	}

	items, err := client.Search(context.Background(), "some claim", "en", 10)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if items[0].Credibility != 0.5 {
		t.Errorf("expected credibility 0.5 for unnamed publisher, got %f", items[0].Credibility)
	}
}

func TestFactCheckClient_RespectsMaxResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"claims": [{
				"text": "claim",
				"claimReview": [
					{"publisher": {"name": "A"}, "textualRating": "True"},
					{"publisher": {"name": "B"}, "textualRating": "False"},
					{"publisher": {"name": "C"}, "textualRating": "Mixed"}
				]
			}]
		}`))
	}))
	defer server.Close()

	client, err := NewFactCheckClient(testSourceConfig(server.URL), testUserAgent)
	if err != nil {
		t.Fatalf("NewFactCheckClient failed: %v", err)
	}

	items, err := client.Search(context.Background(), "claim", "en", 2)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(items) != 2 {
		t.Errorf("expected 2 items, got %d", len(items))
	}
}

func TestFactCheckClient_ConfiguredMaxResultsCapsRequest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("pageSize") != "2" {
			t.Errorf("expected pageSize capped to 2, got %q", r.URL.Query().Get("pageSize"))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"claims": [{
				"text": "claim",
				"claimReview": [
					{"publisher": {"name": "A"}, "textualRating": "True"},
					{"publisher": {"name": "B"}, "textualRating": "False"},
					{"publisher": {"name": "C"}, "textualRating": "Mixed"}
				]
			}]
		}`))
	}))
	defer server.Close()

	cfg := testSourceConfig(server.URL)
	cfg.MaxResults = 2
	client, err := NewFactCheckClient(cfg, testUserAgent)
	if err != nil {
		t.Fatalf("NewFactCheckClient failed: %v", err)
	}

	items, err := client.Search(context.Background(), "claim", "en", 10)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(items) != 2 {
		t.Errorf("expected configured cap of 2 items, got %d", len(items))
	}
}

func TestCapResults(t *testing.T) {
	cases := []struct {
		requested, configured, want int
	}{
		{10, 5, 5},
		{3, 5, 3},
		{10, 0, 10},
		{0, 5, 0},
	}
	for _, tc := range cases {
		if got := capResults(tc.requested, tc.configured); got != tc.want {
			t.Errorf("capResults(%d, %d) = %d, want %d", tc.requested, tc.configured, got, tc.want)
		}
	}
}

func TestFactCheckClient_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client, err := NewFactCheckClient(testSourceConfig(server.URL), testUserAgent)
	if err != nil {
		t.Fatalf("NewFactCheckClient failed: %v", err)
	}

	if _, err := client.Search(context.Background(), "claim", "en", 10); err == nil {
		t.Errorf("expected error for 429 response")
	}
}

func TestNewsAPIClient_Search(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Api-Key") != "test-key" {
			t.Errorf("missing X-Api-Key header")
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"status": "ok",
			"articles": [
				{
					"source": {"name": "Reuters"},
					"title": "Jobs report released",
					"description": "The latest figures",
					"url": "https://www.reuters.com/business/jobs-report",
					"publishedAt": "2023-04-01T08:00:00Z"
				},
				{
					"source": {"name": "Random Blog"},
					"title": "My take on jobs",
					"url": "https://randomblog.example/jobs"
				}
			]
		}`))
	}))
	defer server.Close()

	client, err := NewNewsAPIClient(testSourceConfig(server.URL), testUserAgent)
	if err != nil {
		t.Fatalf("NewNewsAPIClient failed: %v", err)
	}

	items, err := client.Search(context.Background(), "jobs report", "en", 10)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}

	if items[0].Credibility != 0.95 {
		t.Errorf("expected reuters credibility 0.95, got %f", items[0].Credibility)
	}
	if items[1].Credibility != 0.5 {
		t.Errorf("expected default credibility 0.5, got %f", items[1].Credibility)
	}
	if items[0].Verdict != "" {
		t.Errorf("news items carry no verdict, got %q", items[0].Verdict)
	}
}

func TestNewsAPIClient_BadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status": "error", "articles": []}`))
	}))
	defer server.Close()

	client, err := NewNewsAPIClient(testSourceConfig(server.URL), testUserAgent)
	if err != nil {
		t.Fatalf("NewNewsAPIClient failed: %v", err)
	}

	if _, err := client.Search(context.Background(), "claim", "en", 10); err == nil {
		t.Errorf("expected error for upstream error status")
	}
}

func TestNewsLdrClient_Search(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("missing bearer token")
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"articles": [{
				"title": "Coverage analysis",
				"url": "https://news.example/coverage",
				"description": "Broad coverage of the claim",
				"publishedAt": "2023-04-02T10:00:00Z",
				"relevance_score": 0.8,
				"sentiment": "neutral",
				"source": {"name": "Example News"}
			}]
		}`))
	}))
	defer server.Close()

	client, err := NewNewsLdrClient(testSourceConfig(server.URL), testUserAgent)
	if err != nil {
		t.Fatalf("NewNewsLdrClient failed: %v", err)
	}

	items, err := client.Search(context.Background(), "the claim", "en", 10)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if items[0].Credibility != 0.7 {
		t.Errorf("expected credibility 0.7, got %f", items[0].Credibility)
	}
	if items[0].Relevance != 0.8 {
		t.Errorf("expected relevance 0.8, got %f", items[0].Relevance)
	}
}

func TestNewsLdrClient_RequestsConfiguredEndpoint(t *testing.T) {
	// BaseURL carries the full endpoint path, like the default config's
	// https://api.newsldr.com/v1/news/search; the client must not append
	// its own path segments.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/news/search" {
			t.Errorf("expected path /v1/news/search, got %q", r.URL.Path)
		}
		if r.URL.Query().Get("q") == "" {
			t.Errorf("missing q parameter")
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"articles": []}`))
	}))
	defer server.Close()

	client, err := NewNewsLdrClient(testSourceConfig(server.URL+"/v1/news/search"), testUserAgent)
	if err != nil {
		t.Fatalf("NewNewsLdrClient failed: %v", err)
	}

	if _, err := client.Search(context.Background(), "the claim", "en", 10); err != nil {
		t.Fatalf("Search failed: %v", err)
	}
}

func TestOfficialClient_KeywordRouting(t *testing.T) {
	client, err := NewOfficialClient(model.SourceConfig{Enabled: true})
	if err != nil {
		t.Fatalf("NewOfficialClient failed: %v", err)
	}

	items, err := client.Search(context.Background(), "The unemployment rate fell to 3.5 percent", "en", 10)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(items) == 0 {
		t.Fatalf("expected registry match for unemployment claim")
	}

	found := false
	for _, item := range items {
		if item.Source == "Bureau of Labor Statistics" {
			found = true
			if item.SourceType != model.SourceTypeOfficial {
				t.Errorf("expected official type, got %s", item.SourceType)
			}
			if item.Credibility < 0.9 || item.Credibility > 1 {
				t.Errorf("credibility out of expected range: %f", item.Credibility)
			}
		}
	}
	if !found {
		t.Errorf("expected Bureau of Labor Statistics in results: %+v", items)
	}
}

func TestOfficialClient_NoMatch(t *testing.T) {
	client, err := NewOfficialClient(model.SourceConfig{Enabled: true})
	if err != nil {
		t.Fatalf("NewOfficialClient failed: %v", err)
	}

	items, err := client.Search(context.Background(), "my neighbor painted his fence", "en", 10)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("expected no matches, got %d", len(items))
	}
}

func TestExtractDomain(t *testing.T) {
	cases := map[string]string{
		"https://www.reuters.com/article/x": "reuters.com",
		"http://bbc.co.uk/news":             "bbc.co.uk",
		"":                                  "",
		"not a url":                         "",
	}
	for input, want := range cases {
		if got := extractDomain(input); got != want {
			t.Errorf("extractDomain(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestDomainCredibility(t *testing.T) {
	if got := DomainCredibility("reuters.com"); got != 0.95 {
		t.Errorf("expected 0.95 for reuters.com, got %f", got)
	}
	if got := DomainCredibility("unknown.example"); got != 0.5 {
		t.Errorf("expected default 0.5, got %f", got)
	}
}
