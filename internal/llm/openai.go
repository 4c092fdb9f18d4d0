package llm

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
)

const narratorSystemPrompt = "You are a careful assistant that narrates claim verification reports with strict adherence to evidence constraints."

var urlPattern = regexp.MustCompile(`https?://[^\s\)]+`)

// OpenAIProvider implements the Provider interface for OpenAI models
type OpenAIProvider struct {
	client *openai.Client
	config Config
}

// NewOpenAIProvider creates a new OpenAI provider
func NewOpenAIProvider(config Config) (*OpenAIProvider, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}

	return &OpenAIProvider{
		client: openai.NewClientWithConfig(clientConfig),
		config: config,
	}, nil
}

// Name returns the provider name
func (p *OpenAIProvider) Name() string {
	return "openai"
}

// IsAvailable checks if the provider is properly configured
func (p *OpenAIProvider) IsAvailable(ctx context.Context) bool {
	_, err := p.client.ListModels(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "OpenAI API check failed: %v\n", err)
		return false
	}
	return true
}

// Summarize generates a narrative using OpenAI's Chat Completions API
func (p *OpenAIProvider) Summarize(ctx context.Context, req SummarizeRequest) (*SummarizeResponse, error) {
	prompt := req.Prompt
	if prompt == "" {
		prompt = BuildPrompt(req.Result, req.EvidenceURLs)
	}
	model := p.resolveModel(req.Model)

	ctxWithTimeout, cancel := context.WithTimeout(ctx, p.timeout())
	defer cancel()

	resp, err := p.client.CreateChatCompletion(ctxWithTimeout, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: narratorSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens:   p.resolveMaxTokens(req.MaxTokens),
		Temperature: 0.3,
	})
	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from OpenAI")
	}

	summary := strings.TrimSpace(resp.Choices[0].Message.Content)
	citedURLs := extractURLs(summary)

	// CRITICAL: in strict evidence mode the narrative may only cite URLs
	// the verification actually fetched
	if p.config.StrictEvidence {
		if leaked := firstDisallowed(citedURLs, req.EvidenceURLs); leaked != "" {
			return nil, fmt.Errorf("CITATION LEAK: LLM cited disallowed URL: %s", leaked)
		}
	}

	return &SummarizeResponse{
		Summary:    summary,
		CitedURLs:  citedURLs,
		Model:      model,
		TokensUsed: resp.Usage.TotalTokens,
	}, nil
}

func (p *OpenAIProvider) resolveModel(requested string) string {
	switch {
	case requested != "":
		return requested
	case p.config.Model != "":
		return p.config.Model
	default:
		return openai.GPT4oMini
	}
}

func (p *OpenAIProvider) resolveMaxTokens(requested int) int {
	switch {
	case requested > 0:
		return requested
	case p.config.MaxTokens > 0:
		return p.config.MaxTokens
	default:
		return 800
	}
}

func (p *OpenAIProvider) timeout() time.Duration {
	if p.config.Timeout > 0 {
		return time.Duration(p.config.Timeout) * time.Second
	}
	return 30 * time.Second
}

// firstDisallowed returns the first cited URL missing from the allowlist
func firstDisallowed(cited, allowed []string) string {
	allowlist := make(map[string]bool, len(allowed))
	for _, u := range allowed {
		allowlist[u] = true
	}
	for _, u := range cited {
		if !allowlist[u] {
			return u
		}
	}
	return ""
}

// extractURLs extracts all unique URLs from text
func extractURLs(text string) []string {
	matches := urlPattern.FindAllString(text, -1)

	seen := make(map[string]bool)
	var unique []string
	for _, url := range matches {
		url = strings.TrimRight(url, ".,;:!?")
		if !seen[url] {
			seen[url] = true
			unique = append(unique, url)
		}
	}

	return unique
}
