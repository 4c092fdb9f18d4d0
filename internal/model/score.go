package model

import "time"

// ComponentScore is one weighted component of the Factly Score with its
// transparent justification
type ComponentScore struct {
	Name          string   `json:"name"`
	Score         float64  `json:"score"`  // Raw component score, 0.0 to 1.0
	Weight        float64  `json:"weight"` // Fixed weight, components sum to 1.0
	WeightedScore float64  `json:"weighted_score"`
	Justification string   `json:"justification"`
	Evidence      []string `json:"evidence"`
}

// ScoreResult is the complete Factly Score with classification and breakdown
type ScoreResult struct {
	Score           int              `json:"score"`            // 0-100
	Classification  string           `json:"classification"`   // Likely Fake, Uncertain, Likely Authentic
	ConfidenceLevel string           `json:"confidence_level"` // Low, Medium, High
	Components      []ComponentScore `json:"components"`
	Justifications  []string         `json:"justifications"`
	EvidenceSummary EvidenceSummary  `json:"evidence_summary"`
	ProducedAt      time.Time        `json:"produced_at"`
}

// EvidenceSummary describes the evidence behind a score
type EvidenceSummary struct {
	ClaimReviewCount    int                `json:"claim_review_count"`
	RelatedNewsCount    int                `json:"related_news_count"`
	VerdictDistribution map[string]int     `json:"verdict_distribution,omitempty"`
	ComponentBreakdown  map[string]float64 `json:"component_breakdown"`
	SourcesUsed         []string           `json:"sources_used,omitempty"`
	TopFactCheckSources []string           `json:"top_fact_check_sources,omitempty"`
}
