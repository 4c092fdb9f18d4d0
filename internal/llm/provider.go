package llm

import (
	"context"
	"fmt"

	"github.com/ppiankov/factly/internal/model"
)

// Provider defines the interface for LLM providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// Summarize generates a narrative for the verification result with
	// strict evidence mode
	Summarize(ctx context.Context, req SummarizeRequest) (*SummarizeResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// SummarizeRequest contains the input for LLM narration
type SummarizeRequest struct {
	// Result is the finished verification to narrate
	Result *model.VerificationResult

	// EvidenceURLs is the STRICT allowlist of URLs the LLM can cite.
	// This prevents hallucination - the LLM cannot reference any URL not
	// in this list.
	EvidenceURLs []string

	// Prompt is an optional custom prompt (if empty, use default)
	Prompt string

	// Model is the specific model to use (provider-specific)
	Model string

	// MaxTokens limits the response length
	MaxTokens int
}

// SummarizeResponse contains the LLM's narrative output
type SummarizeResponse struct {
	// Summary is the generated narrative text
	Summary string

	// CitedURLs are the URLs the LLM actually cited (for verification)
	CitedURLs []string

	// Model is the model that generated the response
	Model string

	// TokensUsed tracks token consumption
	TokensUsed int
}

// Config holds LLM provider configuration
type Config struct {
	// Provider name: "openai", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for the provider
	APIKey string

	// BaseURL for custom endpoints
	BaseURL string

	// Timeout for API requests
	Timeout int // seconds

	// StrictEvidence enforces the URL allowlist (should always be true)
	StrictEvidence bool

	// MaxTokens for response generation
	MaxTokens int
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:       "", // Disabled by default
		Model:          "",
		Timeout:        30,
		StrictEvidence: true, // CRITICAL: Always enforce
		MaxTokens:      800,
	}
}

// BuildPrompt constructs the default narration prompt with strict evidence mode
func BuildPrompt(result *model.VerificationResult, evidenceURLs []string) string {
	claim := result.OriginalText
	if result.PrimaryClaim != nil {
		claim = result.PrimaryClaim.Text
	}

	scoreValue := 50
	consensus := "unknown"
	strength := "unknown"
	if result.Score != nil {
		scoreValue = result.Score.Score
	}
	if result.Analysis != nil {
		consensus = string(result.Analysis.ConsensusLevel)
		strength = string(result.Analysis.EvidenceStrength)
	}

	itemCount := 0
	sourceCount := 0
	if result.Evidence != nil {
		itemCount = len(result.Evidence.Items)
		sourceCount = len(result.Evidence.SourcesUsed)
	}

	prompt := fmt.Sprintf(`You are narrating a claim verification report. The report measures how well a claim is supported by independent evidence - it never asserts absolute truth.

CRITICAL RULES:
1. You MUST ONLY cite URLs from this allowed list:
%s

2. DO NOT infer, speculate, or cite external sources beyond this list.
3. If evidence is insufficient or missing, state that explicitly.
4. Describe the EVIDENCE, not your own judgment. Use phrases like:
   - "The claim is rated X by N fact-checkers..."
   - "Evidence is lacking for..."
   - "Coverage dates from..."
5. Never add facts that are not in the report below.

Report:
- Claim: %s
- Credibility Score: %d/100 (%s)
- Sources Consulted: %d, Evidence Items: %d
- Consensus: %s, Evidence Strength: %s

Key Findings:
`, joinURLs(evidenceURLs), claim, scoreValue, result.Classification, sourceCount, itemCount, consensus, strength)

	if result.Analysis != nil {
		for i, finding := range result.Analysis.KeyFindings {
			if i >= 3 {
				break
			}
			prompt += fmt.Sprintf("- %s\n", finding)
		}
	}

	prompt += "\nProvide a 3-4 sentence narrative focusing on what the evidence shows."

	return prompt
}

func joinURLs(urls []string) string {
	if len(urls) == 0 {
		return "(No evidence URLs available)"
	}
	result := ""
	for i, url := range urls {
		if i >= 20 { // Limit to first 20 to avoid token bloat
			result += fmt.Sprintf("\n... and %d more URLs", len(urls)-20)
			break
		}
		result += fmt.Sprintf("\n- %s", url)
	}
	return result
}
