package model

import "time"

// DataPointType classifies a verifiable fragment of a claim
type DataPointType string

const (
	DataPointStatistic DataPointType = "statistic"
	DataPointDate      DataPointType = "date"
	DataPointEntity    DataPointType = "entity"
	DataPointQuotation DataPointType = "quotation"
)

// DataPoint is one individually verifiable fragment of a claim
type DataPoint struct {
	Type    DataPointType `json:"type"`
	Value   string        `json:"value"`
	Context string        `json:"context,omitempty"`
}

// SourceProbe is the result of probing one authoritative source for a claim
type SourceProbe struct {
	Source      string     `json:"source"`
	URL         string     `json:"url,omitempty"`
	SourceType  SourceType `json:"source_type"`
	Method      string     `json:"method"` // database_lookup, official_record, cross_reference, ...
	Verified    bool       `json:"verified"`
	Score       float64    `json:"score"` // 0.0 to 1.0
	Credibility float64    `json:"credibility"`
	Evidence    []string   `json:"evidence,omitempty"`
	Confirmed   []string   `json:"confirmed_data_points,omitempty"`
	Error       string     `json:"error,omitempty"`
	ProbedAt    time.Time  `json:"probed_at"`
}

// DirectVerificationReport is the outcome of the targeted corroboration pass
// against the curated table of authoritative domains
type DirectVerificationReport struct {
	Claim            string        `json:"claim"`
	DataPoints       []DataPoint   `json:"data_points"`
	Probes           []SourceProbe `json:"probes"`
	OverallScore     float64       `json:"overall_score"` // Credibility-weighted, 0.0 to 1.0
	VerifiedPoints   []string      `json:"verified_data_points"`
	UnverifiedPoints []string      `json:"unverified_data_points"`
	Discrepancies    []string      `json:"discrepancies,omitempty"`
	SourcesConsulted int           `json:"sources_consulted"`
	PrimarySources   int           `json:"primary_sources"`
	SecondarySources int           `json:"secondary_sources"`
	VerificationTime time.Time     `json:"verification_time"`
}
