package model

// ConsensusLevel summarizes how much sources agree on a claim's verdict
type ConsensusLevel string

const (
	ConsensusStrongAgreement    ConsensusLevel = "strong_agreement"
	ConsensusModerateAgreement  ConsensusLevel = "moderate_agreement"
	ConsensusMixed              ConsensusLevel = "mixed"
	ConsensusModerateDisagree   ConsensusLevel = "moderate_disagreement"
	ConsensusStrongDisagreement ConsensusLevel = "strong_disagreement"
	ConsensusInsufficientData   ConsensusLevel = "insufficient_data"
)

// EvidenceStrength summarizes how trustworthy and sufficient the evidence is
type EvidenceStrength string

const (
	StrengthStrong       EvidenceStrength = "strong"       // Multiple high-credibility sources agree
	StrengthModerate     EvidenceStrength = "moderate"     // Some agreement among credible sources
	StrengthWeak         EvidenceStrength = "weak"         // Limited or low-credibility sources
	StrengthConflicting  EvidenceStrength = "conflicting"  // Sources disagree
	StrengthInsufficient EvidenceStrength = "insufficient" // Not enough evidence
)

// SourceAnalysis is one source's normalized position on a claim
type SourceAnalysis struct {
	Source       string     `json:"source"`
	SourceType   SourceType `json:"source_type"`
	Credibility  float64    `json:"credibility"`
	Verdict      string     `json:"verdict,omitempty"`
	VerdictScore float64    `json:"verdict_score"` // 0.0 to 1.0
	Relevance    float64    `json:"relevance"`
	Supports     []string   `json:"supports,omitempty"`    // Sources agreeing within threshold
	Contradicts  []string   `json:"contradicts,omitempty"` // Sources disagreeing
}

// Contradiction records a pairwise verdict conflict between two sources
type Contradiction struct {
	SourceA    string  `json:"source_a"`
	VerdictA   string  `json:"verdict_a"`
	SourceB    string  `json:"source_b"`
	VerdictB   string  `json:"verdict_b"`
	Difference float64 `json:"difference"` // Absolute verdict-score delta
}

// CrossSourceAnalysis is the complete consensus analysis for one claim
type CrossSourceAnalysis struct {
	Claim              string           `json:"claim"`
	ConsensusLevel     ConsensusLevel   `json:"consensus_level"`
	EvidenceStrength   EvidenceStrength `json:"evidence_strength"`
	SourceAnalyses     []SourceAnalysis `json:"source_analyses"`
	AgreementScore     float64          `json:"agreement_score"`  // 0.0 to 1.0
	ConfidenceScore    float64          `json:"confidence_score"` // 0.0 to 1.0
	KeyFindings        []string         `json:"key_findings"`
	Contradictions     []Contradiction  `json:"contradictions,omitempty"`
	RecommendedVerdict string           `json:"recommended_verdict"`
	UncertaintyFactors []string         `json:"uncertainty_factors"`
}
