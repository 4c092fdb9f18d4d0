package source

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/ppiankov/factly/internal/model"
)

// NewsLdrClient queries the NewsLdr news-intelligence API as a secondary
// coverage source
type NewsLdrClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	userAgent  string
	maxResults int
}

// NewNewsLdrClient creates a NewsLdr client, or ErrUnavailable when the API
// key is unset.
func NewNewsLdrClient(cfg model.SourceConfig, userAgent string) (*NewsLdrClient, error) {
	if !cfg.Enabled || cfg.APIKey == "" {
		return nil, fmt.Errorf("newsldr: %w", ErrUnavailable)
	}
	return &NewsLdrClient{
		apiKey:     cfg.APIKey,
		baseURL:    cfg.BaseURL,
		httpClient: newHTTPClient(cfg.ConnectTimeout, cfg.Timeout),
		userAgent:  userAgent,
		maxResults: cfg.MaxResults,
	}, nil
}

// Name returns the client identifier
func (c *NewsLdrClient) Name() string { return "newsldr" }

// Type returns the evidence category
func (c *NewsLdrClient) Type() model.SourceType { return model.SourceTypeNews }

type newsLdrResponse struct {
	Articles []struct {
		Title       string  `json:"title"`
		URL         string  `json:"url"`
		Description string  `json:"description"`
		PublishedAt string  `json:"publishedAt"`
		Relevance   float64 `json:"relevance_score"`
		Sentiment   string  `json:"sentiment"`
		Source      struct {
			Name string `json:"name"`
		} `json:"source"`
	} `json:"articles"`
}

// Search finds related news coverage. The key travels in the Authorization
// header, never in the URL.
func (c *NewsLdrClient) Search(ctx context.Context, claim, language string, maxResults int) ([]model.EvidenceItem, error) {
	maxResults = capResults(maxResults, c.maxResults)

	params := url.Values{}
	params.Set("q", claim)
	params.Set("limit", strconv.Itoa(maxResults))

	// BaseURL is the full endpoint, as in the other API clients
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("newsldr search: %w", err)
	}
	defer resp.Body.Close()

	var body newsLdrResponse
	if err := decodeJSON(resp, &body); err != nil {
		return nil, fmt.Errorf("newsldr search: %w", err)
	}

	var items []model.EvidenceItem
	for _, article := range body.Articles {
		if len(items) >= maxResults {
			break
		}

		relevance := article.Relevance
		if relevance <= 0 {
			relevance = 0.5
		}

		sourceName := article.Source.Name
		if sourceName == "" {
			sourceName = "NewsLdr"
		}

		items = append(items, model.EvidenceItem{
			Source:      sourceName,
			SourceType:  model.SourceTypeNews,
			Title:       article.Title,
			Content:     article.Description,
			URL:         article.URL,
			PublishedAt: parseTimestamp(article.PublishedAt),
			Credibility: 0.7,
			Relevance:   clamp01(relevance),
			Metadata: map[string]string{
				"sentiment": article.Sentiment,
			},
		})
	}

	return items, nil
}
