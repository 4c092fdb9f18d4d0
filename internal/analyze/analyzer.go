package analyze

import (
	"fmt"
	"math"
	"sort"

	"github.com/ppiankov/factly/internal/model"
)

const (
	minSourcesForConsensus = 2
	highCredThreshold      = 0.8
	supportThreshold       = 0.3
	contradictionThreshold = 0.4
)

// Analyzer measures consensus, strength, and confidence across an evidence
// collection
type Analyzer struct{}

// NewAnalyzer creates a cross-source analyzer
func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// Analyze folds an evidence collection into a consensus analysis. An empty
// collection yields the insufficient-data result rather than an error.
func (a *Analyzer) Analyze(collection *model.EvidenceCollection) *model.CrossSourceAnalysis {
	if collection == nil || len(collection.Items) == 0 {
		claim := ""
		if collection != nil {
			claim = collection.Claim
		}
		return insufficientAnalysis(claim)
	}

	analyses := analyzeSources(collection.Items)
	agreement := weightedAgreement(analyses)
	consensus := consensusLevel(agreement, len(analyses))
	strength := evidenceStrength(analyses, consensus)
	confidence := confidenceScore(analyses, agreement, collection.Diversity)

	return &model.CrossSourceAnalysis{
		Claim:              collection.Claim,
		ConsensusLevel:     consensus,
		EvidenceStrength:   strength,
		SourceAnalyses:     analyses,
		AgreementScore:     agreement,
		ConfidenceScore:    confidence,
		KeyFindings:        keyFindings(analyses, consensus),
		Contradictions:     contradictions(analyses),
		RecommendedVerdict: recommendedVerdict(analyses, consensus),
		UncertaintyFactors: uncertaintyFactors(analyses, collection),
	}
}

// analyzeSources normalizes every item's position and cross-references
// support and contradiction between sources
func analyzeSources(items []model.EvidenceItem) []model.SourceAnalysis {
	analyses := make([]model.SourceAnalysis, 0, len(items))
	for _, item := range items {
		analyses = append(analyses, model.SourceAnalysis{
			Source:       item.Source,
			SourceType:   item.SourceType,
			Credibility:  item.Credibility,
			Verdict:      item.Verdict,
			VerdictScore: model.VerdictScore(item.Verdict),
			Relevance:    item.Relevance,
		})
	}

	for i := range analyses {
		for j := range analyses {
			if i == j {
				continue
			}
			if verdictsAgree(analyses[i].VerdictScore, analyses[j].VerdictScore, supportThreshold) {
				analyses[i].Supports = append(analyses[i].Supports, analyses[j].Source)
			} else {
				analyses[i].Contradicts = append(analyses[i].Contradicts, analyses[j].Source)
			}
		}
	}

	return analyses
}

func verdictsAgree(a, b, threshold float64) bool {
	return math.Abs(a-b) <= threshold
}

// weightedAgreement converts the credibility-and-relevance-weighted variance
// of verdict scores into an agreement score. Only sources carrying an
// explicit verdict are measured; fewer than two of them score neutral.
func weightedAgreement(analyses []model.SourceAnalysis) float64 {
	type weighted struct {
		score  float64
		weight float64
	}

	var scores []weighted
	for _, sa := range analyses {
		if !model.HasVerdict(sa.Verdict) {
			continue
		}
		scores = append(scores, weighted{score: sa.VerdictScore, weight: sa.Credibility * sa.Relevance})
	}
	if len(scores) < 2 {
		return 0.5
	}

	totalWeight := 0.0
	for _, s := range scores {
		totalWeight += s.weight
	}
	if totalWeight == 0 {
		return 0.5
	}

	mean := 0.0
	for _, s := range scores {
		mean += s.score * s.weight
	}
	mean /= totalWeight

	variance := 0.0
	for _, s := range scores {
		variance += s.weight * (s.score - mean) * (s.score - mean)
	}
	variance /= totalWeight

	agreement := 1.0 - math.Min(1.0, variance*4)
	return math.Max(0.0, math.Min(1.0, agreement))
}

// consensusLevel maps agreement to a five-way consensus band
func consensusLevel(agreement float64, numSources int) model.ConsensusLevel {
	if numSources < minSourcesForConsensus {
		return model.ConsensusInsufficientData
	}
	switch {
	case agreement >= 0.8:
		return model.ConsensusStrongAgreement
	case agreement >= 0.6:
		return model.ConsensusModerateAgreement
	case agreement >= 0.4:
		return model.ConsensusMixed
	case agreement >= 0.2:
		return model.ConsensusModerateDisagree
	default:
		return model.ConsensusStrongDisagreement
	}
}

// evidenceStrength rates the overall evidence. A mixed consensus still
// counts as moderate when at least one high-credibility source weighed in;
// mixed without one is weak.
func evidenceStrength(analyses []model.SourceAnalysis, consensus model.ConsensusLevel) model.EvidenceStrength {
	if len(analyses) < 2 {
		return model.StrengthInsufficient
	}

	highCred := 0
	for _, sa := range analyses {
		if sa.Credibility >= highCredThreshold {
			highCred++
		}
	}

	if consensus == model.ConsensusModerateDisagree || consensus == model.ConsensusStrongDisagreement {
		return model.StrengthConflicting
	}

	switch {
	case highCred >= 2 && consensus == model.ConsensusStrongAgreement:
		return model.StrengthStrong
	case highCred >= 1 && (consensus == model.ConsensusStrongAgreement ||
		consensus == model.ConsensusModerateAgreement ||
		consensus == model.ConsensusMixed):
		return model.StrengthModerate
	case consensus == model.ConsensusMixed:
		return model.StrengthWeak
	default:
		return model.StrengthInsufficient
	}
}

// confidenceScore blends source count, mean credibility, agreement, and
// diversity
func confidenceScore(analyses []model.SourceAnalysis, agreement, diversity float64) float64 {
	if len(analyses) == 0 {
		return 0
	}

	sourceFactor := math.Min(1.0, float64(len(analyses))/5)

	avgCred := 0.0
	for _, sa := range analyses {
		avgCred += sa.Credibility
	}
	avgCred /= float64(len(analyses))

	confidence := sourceFactor*0.2 + avgCred*0.35 + agreement*0.30 + diversity*0.15
	return math.Max(0.0, math.Min(1.0, confidence))
}

// keyFindings produces human-readable highlights of the analysis
func keyFindings(analyses []model.SourceAnalysis, consensus model.ConsensusLevel) []string {
	var findings []string

	counts := make(map[string]int)
	for _, sa := range analyses {
		if sa.Verdict != "" {
			counts[sa.Verdict]++
		}
	}
	if len(counts) > 0 {
		top, topCount := "", 0
		names := make([]string, 0, len(counts))
		for name := range counts {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			if counts[name] > topCount {
				top, topCount = name, counts[name]
			}
		}
		findings = append(findings, fmt.Sprintf("Most common verdict: %q (%d of %d sources)", top, topCount, len(analyses)))
	}

	highCred := 0
	for _, sa := range analyses {
		if sa.Credibility >= highCredThreshold {
			highCred++
		}
	}
	if highCred > 0 {
		findings = append(findings, fmt.Sprintf("%d high-credibility source(s) consulted", highCred))
	}

	switch consensus {
	case model.ConsensusStrongAgreement:
		findings = append(findings, "Strong consensus among sources")
	case model.ConsensusMixed:
		findings = append(findings, "Mixed results from sources")
	case model.ConsensusModerateDisagree, model.ConsensusStrongDisagreement:
		findings = append(findings, "Sources disagree on this claim")
	}

	return findings
}

// contradictions reports source pairs whose verdicts differ beyond the
// contradiction threshold
func contradictions(analyses []model.SourceAnalysis) []model.Contradiction {
	var out []model.Contradiction
	for i := range analyses {
		for j := i + 1; j < len(analyses); j++ {
			if !verdictsAgree(analyses[i].VerdictScore, analyses[j].VerdictScore, contradictionThreshold) {
				out = append(out, model.Contradiction{
					SourceA:    analyses[i].Source,
					VerdictA:   analyses[i].Verdict,
					SourceB:    analyses[j].Source,
					VerdictB:   analyses[j].Verdict,
					Difference: math.Abs(analyses[i].VerdictScore - analyses[j].VerdictScore),
				})
			}
		}
	}
	return out
}

// recommendedVerdict maps the weighted mean verdict score into a label
func recommendedVerdict(analyses []model.SourceAnalysis, consensus model.ConsensusLevel) string {
	if len(analyses) == 0 {
		return "Unverified"
	}
	if consensus == model.ConsensusInsufficientData {
		return "Unverified - Insufficient Data"
	}

	weightedSum, totalWeight := 0.0, 0.0
	for _, sa := range analyses {
		w := sa.Credibility * sa.Relevance
		weightedSum += sa.VerdictScore * w
		totalWeight += w
	}
	if totalWeight == 0 {
		return "Unverified"
	}

	avg := weightedSum / totalWeight
	switch {
	case avg >= 0.9:
		return "True"
	case avg >= 0.7:
		return "Mostly True"
	case avg >= 0.5:
		return "Mixed / Unverified"
	case avg >= 0.3:
		return "Mostly False"
	default:
		return "False"
	}
}

// uncertaintyFactors lists what weakens the analysis
func uncertaintyFactors(analyses []model.SourceAnalysis, collection *model.EvidenceCollection) []string {
	var factors []string

	if len(analyses) < 3 {
		factors = append(factors, fmt.Sprintf("Limited number of sources (%d)", len(analyses)))
	}

	lowCred := 0
	for _, sa := range analyses {
		if sa.Credibility < 0.6 {
			lowCred++
		}
	}
	if lowCred > 0 {
		factors = append(factors, fmt.Sprintf("%d source(s) with lower credibility ratings", lowCred))
	}

	gaps := collection.CoverageGaps
	if len(gaps) > 2 {
		gaps = gaps[:2]
	}
	factors = append(factors, gaps...)

	if collection.Agreement < 0.5 {
		factors = append(factors, "Conflicting information from sources")
	}

	if len(factors) == 0 {
		return []string{"No significant uncertainty factors identified"}
	}
	return factors
}

func insufficientAnalysis(claim string) *model.CrossSourceAnalysis {
	return &model.CrossSourceAnalysis{
		Claim:              claim,
		ConsensusLevel:     model.ConsensusInsufficientData,
		EvidenceStrength:   model.StrengthInsufficient,
		SourceAnalyses:     []model.SourceAnalysis{},
		AgreementScore:     0,
		ConfidenceScore:    0,
		KeyFindings:        []string{"No evidence found for this claim"},
		RecommendedVerdict: "Unverified - No Evidence",
		UncertaintyFactors: []string{"No sources available to verify this claim"},
	}
}
