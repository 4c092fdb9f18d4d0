package model

import "time"

// StepStatus is the lifecycle state of one verification step
type StepStatus string

const (
	StepPending    StepStatus = "pending"
	StepInProgress StepStatus = "in_progress"
	StepCompleted  StepStatus = "completed"
	StepFailed     StepStatus = "failed"
)

// VerificationStep is one immutable entry in the verification trace. Steps
// are appended by the orchestrator and never modified afterwards.
type VerificationStep struct {
	Number      int            `json:"number"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Status      StepStatus     `json:"status"`
	Result      map[string]any `json:"result,omitempty"`
	StartedAt   time.Time      `json:"started_at"`
	Duration    time.Duration  `json:"duration"`
}

// VerificationTrace is the ordered audit log for one orchestration run
type VerificationTrace struct {
	OriginalText    string             `json:"original_text"`
	ExtractedClaims []ExtractedClaim   `json:"extracted_claims"`
	Steps           []VerificationStep `json:"steps"`
	SourcesUsed     []string           `json:"sources_consulted,omitempty"`
	ProcessingTime  time.Duration      `json:"processing_time"`
	Timestamp       time.Time          `json:"timestamp"`
}

// Summary is the human-readable narrative assembled after scoring
type Summary struct {
	Headline             string   `json:"headline"`
	OverallAssessment    string   `json:"overall_assessment"`
	Methodology          string   `json:"methodology"`
	KeyFindings          []string `json:"key_findings"`
	VerifiedDataPoints   []string `json:"verified_data_points,omitempty"`
	UnverifiedDataPoints []string `json:"unverified_data_points,omitempty"`
	Discrepancies        []string `json:"discrepancies,omitempty"`
	ConfidenceStatement  string   `json:"confidence_statement"`
	Recommendations      []string `json:"recommendations"`
	Limitations          []string `json:"limitations"`
	Narrative            string   `json:"narrative,omitempty"` // Optional LLM text, never affects the score
}

// VerificationResult is the envelope returned to the caller of a full
// verification run. All fields are JSON-serializable.
type VerificationResult struct {
	OriginalText    string                    `json:"original_text"`
	PrimaryClaim    *ExtractedClaim           `json:"primary_claim,omitempty"`
	ExtractedClaims []ExtractedClaim          `json:"extracted_claims"`
	Evidence        *EvidenceCollection       `json:"evidence,omitempty"`
	Analysis        *CrossSourceAnalysis      `json:"analysis,omitempty"`
	DirectReport    *DirectVerificationReport `json:"direct_report,omitempty"`
	Score           *ScoreResult              `json:"score,omitempty"`
	Classification  string                    `json:"classification"`   // Five-band presentation label
	ConfidenceLevel string                    `json:"confidence_level"` // Five-band presentation label
	Summary         *Summary                  `json:"summary,omitempty"`
	Trace           VerificationTrace         `json:"trace"`
	Timestamp       time.Time                 `json:"timestamp"`
	Error           string                    `json:"error,omitempty"`
}
