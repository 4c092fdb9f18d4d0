package model

import "time"

// SourceType classifies where a piece of evidence came from
type SourceType string

const (
	SourceTypeFactCheck SourceType = "fact_check" // Professional fact-check review
	SourceTypeNews      SourceType = "news"       // News coverage
	SourceTypeAcademic  SourceType = "academic"   // Academic/research material
	SourceTypeOfficial  SourceType = "official"   // Government or institutional record
)

// EvidenceItem is one piece of information about a claim from one external
// source. Items are immutable once produced by a source client.
type EvidenceItem struct {
	Source      string            `json:"source"`                 // Publisher or upstream name
	SourceType  SourceType        `json:"source_type"`            // fact_check, news, academic, official
	Title       string            `json:"title"`
	Content     string            `json:"content"`
	URL         string            `json:"url,omitempty"`
	PublishedAt *time.Time        `json:"published_at,omitempty"`
	Credibility float64           `json:"credibility"`            // 0.0 to 1.0
	Relevance   float64           `json:"relevance"`              // 0.0 to 1.0
	Verdict     string            `json:"verdict,omitempty"`      // Raw upstream verdict, if any
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// Freshness summarizes how recent a collection's evidence is
type Freshness string

const (
	FreshnessFresh    Freshness = "fresh"    // Median age within 48 hours
	FreshnessModerate Freshness = "moderate" // Median age within two weeks
	FreshnessStale    Freshness = "stale"    // Older than two weeks
	FreshnessUnknown  Freshness = "unknown"  // No publication dates available
)

// EvidenceCollection is the result of one aggregation run. It is never
// mutated after construction; re-running a search produces a new instance.
type EvidenceCollection struct {
	Claim        string         `json:"claim"`
	Items        []EvidenceItem `json:"items"`
	Diversity    float64        `json:"diversity"`     // 0.0 to 1.0
	Agreement    float64        `json:"agreement"`     // 0.0 to 1.0
	CoverageGaps []string       `json:"coverage_gaps"`
	FetchedAt    time.Time      `json:"fetched_at"`
	Freshness    Freshness      `json:"freshness"`
	SourcesUsed  []string       `json:"sources_used"`
	Errors       []string       `json:"errors,omitempty"` // "source: message" pairs
}

// ItemsOfType returns the items matching the given source type
func (c *EvidenceCollection) ItemsOfType(t SourceType) []EvidenceItem {
	var out []EvidenceItem
	for _, item := range c.Items {
		if item.SourceType == t {
			out = append(out, item)
		}
	}
	return out
}
