package source

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/ppiankov/factly/internal/model"
)

// NewsAPIClient queries the NewsAPI /v2/everything endpoint for recent
// coverage of a claim
type NewsAPIClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	userAgent  string
	maxResults int
}

// NewNewsAPIClient creates a NewsAPI client, or ErrUnavailable when the API
// key is unset.
func NewNewsAPIClient(cfg model.SourceConfig, userAgent string) (*NewsAPIClient, error) {
	if !cfg.Enabled || cfg.APIKey == "" {
		return nil, fmt.Errorf("newsapi: %w", ErrUnavailable)
	}
	return &NewsAPIClient{
		apiKey:     cfg.APIKey,
		baseURL:    cfg.BaseURL,
		httpClient: newHTTPClient(cfg.ConnectTimeout, cfg.Timeout),
		userAgent:  userAgent,
		maxResults: cfg.MaxResults,
	}, nil
}

// Name returns the client identifier
func (c *NewsAPIClient) Name() string { return "newsapi" }

// Type returns the evidence category
func (c *NewsAPIClient) Type() model.SourceType { return model.SourceTypeNews }

type newsAPIResponse struct {
	Status   string `json:"status"`
	Articles []struct {
		Source struct {
			Name string `json:"name"`
		} `json:"source"`
		Author      string `json:"author"`
		Title       string `json:"title"`
		Description string `json:"description"`
		URL         string `json:"url"`
		PublishedAt string `json:"publishedAt"`
	} `json:"articles"`
}

// Search finds news articles discussing the claim, sorted by relevancy
// upstream. The API only covers English reliably, so other languages fall
// back to en.
func (c *NewsAPIClient) Search(ctx context.Context, claim, language string, maxResults int) ([]model.EvidenceItem, error) {
	if language != "en" {
		language = "en"
	}
	maxResults = capResults(maxResults, c.maxResults)

	params := url.Values{}
	params.Set("q", claim)
	params.Set("language", language)
	params.Set("sortBy", "relevancy")
	params.Set("pageSize", strconv.Itoa(maxResults))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Api-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("news search: %w", err)
	}
	defer resp.Body.Close()

	var body newsAPIResponse
	if err := decodeJSON(resp, &body); err != nil {
		return nil, fmt.Errorf("news search: %w", err)
	}
	if body.Status != "" && body.Status != "ok" {
		return nil, fmt.Errorf("news search: upstream status %q", body.Status)
	}

	var items []model.EvidenceItem
	for _, article := range body.Articles {
		if len(items) >= maxResults {
			break
		}

		sourceName := article.Source.Name
		if sourceName == "" {
			sourceName = "Unknown"
		}
		domain := extractDomain(article.URL)

		items = append(items, model.EvidenceItem{
			Source:      sourceName,
			SourceType:  model.SourceTypeNews,
			Title:       article.Title,
			Content:     article.Description,
			URL:         article.URL,
			PublishedAt: parseTimestamp(article.PublishedAt),
			Credibility: DomainCredibility(domain),
			Relevance:   0.5,
			Metadata: map[string]string{
				"author": article.Author,
				"domain": domain,
			},
		})
	}

	return items, nil
}
