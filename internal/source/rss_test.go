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

const testFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Example Wire</title>
    <link>https://news.example/</link>
    <item>
      <title>Unemployment rate falls to lowest level in decades</title>
      <link>https://news.example/unemployment-falls</link>
      <description>Official figures show unemployment declining sharply.</description>
      <pubDate>Mon, 03 Apr 2023 09:00:00 GMT</pubDate>
    </item>
    <item>
      <title>Local bakery wins award</title>
      <link>https://news.example/bakery</link>
      <description>A celebration of pastry.</description>
    </item>
  </channel>
</rss>`

func testRSSConfig(feeds ...string) model.RSSConfig {
	return model.RSSConfig{
		Enabled:    true,
		Feeds:      feeds,
		Timeout:    5 * time.Second,
		MaxResults: 10,
	}
}

func TestRSSClient_NoFeeds(t *testing.T) {
	if _, err := NewRSSClient(model.RSSConfig{Enabled: true}, testUserAgent); !errors.Is(err, ErrUnavailable) {
		t.Errorf("expected ErrUnavailable, got %v", err)
	}
}

func TestRSSClient_MatchesClaimTerms(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(testFeed))
	}))
	defer server.Close()

	client, err := NewRSSClient(testRSSConfig(server.URL), testUserAgent)
	if err != nil {
		t.Fatalf("NewRSSClient failed: %v", err)
	}

	items, err := client.Search(context.Background(), "unemployment rate falls", "en", 10)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 matching item, got %d", len(items))
	}

	item := items[0]
	if item.Source != "Example Wire" {
		t.Errorf("expected feed title as source, got %q", item.Source)
	}
	if item.SourceType != model.SourceTypeNews {
		t.Errorf("expected news type, got %s", item.SourceType)
	}
	if item.PublishedAt == nil {
		t.Errorf("expected parsed publish date")
	}
	if item.Relevance <= 0 || item.Relevance > 1 {
		t.Errorf("relevance out of range: %f", item.Relevance)
	}
}

func TestRSSClient_AllFeedsFailing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusGone)
	}))
	defer server.Close()

	client, err := NewRSSClient(testRSSConfig(server.URL), testUserAgent)
	if err != nil {
		t.Fatalf("NewRSSClient failed: %v", err)
	}

	if _, err := client.Search(context.Background(), "unemployment rate", "en", 10); err == nil {
		t.Errorf("expected error when every feed fails")
	}
}

func TestClaimTerms(t *testing.T) {
	terms := claimTerms("The unemployment rate fell, according to officials.")
	want := map[string]bool{"unemployment": true, "rate": false, "fell": false, "officials": true}
	for _, term := range terms {
		if _, known := want[term]; known {
			want[term] = true
		}
	}
	if !want["unemployment"] || !want["officials"] {
		t.Errorf("expected long terms retained, got %v", terms)
	}
	for _, term := range terms {
		if term == "the" || term == "according" {
			t.Errorf("stopword or short word leaked into terms: %v", terms)
		}
	}
}
