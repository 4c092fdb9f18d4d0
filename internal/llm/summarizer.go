package llm

import (
	"context"
	"fmt"

	"github.com/ppiankov/factly/internal/model"
)

// Summarizer adapts a Provider to the pipeline's narrator hook. It gathers
// the evidence URL allowlist from the verification result so the provider
// can never cite a source the pipeline did not see.
type Summarizer struct {
	provider Provider
	model    string
}

// NewSummarizer creates a summarizer backed by the given provider
func NewSummarizer(provider Provider, model string) *Summarizer {
	return &Summarizer{provider: provider, model: model}
}

// Narrate writes a prose narrative for a finished verification
func (s *Summarizer) Narrate(ctx context.Context, result *model.VerificationResult) (string, error) {
	if s.provider == nil {
		return "", fmt.Errorf("no LLM provider configured")
	}

	resp, err := s.provider.Summarize(ctx, SummarizeRequest{
		Result:       result,
		EvidenceURLs: EvidenceURLs(result),
		Model:        s.model,
	})
	if err != nil {
		return "", err
	}
	return resp.Summary, nil
}

// EvidenceURLs collects the citation allowlist for a verification result:
// every evidence item URL plus every directly probed source URL
func EvidenceURLs(result *model.VerificationResult) []string {
	seen := make(map[string]bool)
	var urls []string
	add := func(url string) {
		if url != "" && !seen[url] {
			seen[url] = true
			urls = append(urls, url)
		}
	}

	if result.Evidence != nil {
		for _, item := range result.Evidence.Items {
			add(item.URL)
		}
	}
	if result.DirectReport != nil {
		for _, probe := range result.DirectReport.Probes {
			add(probe.URL)
		}
	}
	return urls
}
