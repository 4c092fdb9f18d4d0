package model

// ClaimType categorizes the nature of an extracted claim
type ClaimType string

const (
	ClaimTypeFactual    ClaimType = "factual"    // Objective facts (dates, statistics, events)
	ClaimTypeQuotation  ClaimType = "quotation"  // Direct quotes from people
	ClaimTypePrediction ClaimType = "prediction" // Future predictions
	ClaimTypeComparison ClaimType = "comparison" // Comparisons between entities
	ClaimTypeCausal     ClaimType = "causal"     // Cause-and-effect statements
)

// ExtractedClaim is a candidate verifiable statement pulled out of input text
type ExtractedClaim struct {
	Text          string    `json:"text"`
	Type          ClaimType `json:"type"`
	Confidence    float64   `json:"confidence"`    // Factual-ness, 0.0 to 1.0
	Context       string    `json:"context"`       // Surrounding sentences
	Entities      []string  `json:"entities"`      // Named entities mentioned
	Keywords      []string  `json:"keywords"`      // Key terms for searching
	Sentence      int       `json:"sentence"`      // Sentence index in the input (0-based)
	Verifiability float64   `json:"verifiability"` // How checkable the claim is, 0.0 to 1.0
}
