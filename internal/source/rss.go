package source

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/mmcdole/gofeed"

	"github.com/ppiankov/factly/internal/model"
)

// RSSClient scans configured RSS/Atom feeds for items mentioning the claim.
// It needs no credential, so it stays available when every API key is unset.
type RSSClient struct {
	feeds      []string
	parser     *gofeed.Parser
	userAgent  string
	maxResults int
}

// NewRSSClient creates an RSS client over the configured feed URLs, or
// ErrUnavailable when no feeds are configured.
func NewRSSClient(cfg model.RSSConfig, userAgent string) (*RSSClient, error) {
	if !cfg.Enabled || len(cfg.Feeds) == 0 {
		return nil, fmt.Errorf("rss: %w", ErrUnavailable)
	}

	parser := gofeed.NewParser()
	parser.UserAgent = userAgent
	parser.Client = newHTTPClient(0, cfg.Timeout)

	return &RSSClient{
		feeds:      cfg.Feeds,
		parser:     parser,
		userAgent:  userAgent,
		maxResults: cfg.MaxResults,
	}, nil
}

// Name returns the client identifier
func (c *RSSClient) Name() string { return "rss" }

// Type returns the evidence category
func (c *RSSClient) Type() model.SourceType { return model.SourceTypeNews }

// Search parses each feed and keyword-matches claim terms against item
// titles and descriptions. A feed that fails to parse is skipped; the error
// surfaces only when every feed fails.
func (c *RSSClient) Search(ctx context.Context, claim, language string, maxResults int) ([]model.EvidenceItem, error) {
	maxResults = capResults(maxResults, c.maxResults)

	terms := claimTerms(claim)
	if len(terms) == 0 {
		return nil, nil
	}

	var items []model.EvidenceItem
	var failures []string

	for _, feedURL := range c.feeds {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		feed, err := c.parser.ParseURLWithContext(feedURL, ctx)
		if err != nil {
			failures = append(failures, fmt.Sprintf("%s: %v", feedURL, err))
			continue
		}

		feedName := feed.Title
		if feedName == "" {
			feedName = extractDomain(feedURL)
		}

		for _, entry := range feed.Items {
			score := matchScore(entry.Title+" "+entry.Description, terms)
			if score <= 0 {
				continue
			}

			domain := extractDomain(entry.Link)
			if domain == "" {
				domain = extractDomain(feedURL)
			}

			items = append(items, model.EvidenceItem{
				Source:      feedName,
				SourceType:  model.SourceTypeNews,
				Title:       entry.Title,
				Content:     entry.Description,
				URL:         entry.Link,
				PublishedAt: entry.PublishedParsed,
				Credibility: DomainCredibility(domain),
				Relevance:   score,
				Metadata: map[string]string{
					"feed":   feedURL,
					"domain": domain,
				},
			})
		}
	}

	if len(items) == 0 && len(failures) == len(c.feeds) && len(failures) > 0 {
		return nil, fmt.Errorf("rss search: all feeds failed: %s", strings.Join(failures, "; "))
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Relevance > items[j].Relevance
	})
	if len(items) > maxResults {
		items = items[:maxResults]
	}

	return items, nil
}

// claimTerms extracts the meaningful lowercase words of a claim
func claimTerms(claim string) []string {
	var terms []string
	for _, word := range strings.Fields(strings.ToLower(claim)) {
		word = strings.Trim(word, ".,;:!?\"'()[]")
		if len(word) < 4 || rssStopwords[word] {
			continue
		}
		terms = append(terms, word)
	}
	return terms
}

// matchScore returns the fraction of claim terms present in the text
func matchScore(text string, terms []string) float64 {
	textLower := strings.ToLower(text)
	matched := 0
	for _, term := range terms {
		if strings.Contains(textLower, term) {
			matched++
		}
	}
	if matched == 0 {
		return 0
	}
	return clamp01(float64(matched) / float64(len(terms)))
}

var rssStopwords = map[string]bool{
	"that": true, "this": true, "with": true, "from": true, "have": true,
	"been": true, "were": true, "will": true, "would": true, "could": true,
	"should": true, "their": true, "there": true, "which": true, "about": true,
	"according": true, "said": true, "says": true, "more": true, "than": true,
}
