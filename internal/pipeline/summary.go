package pipeline

import (
	"fmt"
	"strings"

	"github.com/ppiankov/factly/internal/model"
)

// buildSummary assembles the human-readable narrative from whatever the
// pipeline produced. Every section degrades gracefully when a stage was
// skipped or failed.
func buildSummary(result *model.VerificationResult) *model.Summary {
	scoreValue := 50
	if result.Score != nil {
		scoreValue = result.Score.Score
	}

	summary := &model.Summary{
		Headline:            headline(scoreValue, result.Analysis),
		OverallAssessment:   overallAssessment(scoreValue, result.Analysis, result.DirectReport),
		Methodology:         methodology(result.DirectReport),
		ConfidenceStatement: confidenceStatement(scoreValue, result.DirectReport),
		Recommendations:     recommendations(scoreValue, result.Analysis, result.DirectReport),
		Limitations:         limitations(result.Analysis, result.DirectReport),
	}

	if result.Analysis != nil {
		summary.KeyFindings = append(summary.KeyFindings, result.Analysis.KeyFindings...)
	}
	if report := result.DirectReport; report != nil {
		for _, dp := range firstStrings(report.VerifiedPoints, 3) {
			summary.KeyFindings = append(summary.KeyFindings, "Verified: "+dp)
		}
		summary.VerifiedDataPoints = report.VerifiedPoints
		summary.UnverifiedDataPoints = report.UnverifiedPoints
		summary.Discrepancies = append(summary.Discrepancies, firstStrings(report.Discrepancies, 3)...)
	}
	if result.Analysis != nil {
		for _, c := range result.Analysis.Contradictions {
			summary.Discrepancies = append(summary.Discrepancies,
				fmt.Sprintf("Contradiction: %s says %q while %s says %q", c.SourceA, c.VerdictA, c.SourceB, c.VerdictB))
			if len(summary.Discrepancies) >= 5 {
				break
			}
		}
	}

	return summary
}

func headline(score int, analysis *model.CrossSourceAnalysis) string {
	verdict := "Unverified"
	if analysis != nil && analysis.RecommendedVerdict != "" {
		verdict = analysis.RecommendedVerdict
	}
	switch {
	case score >= 80:
		return "Verified Authentic - " + verdict
	case score >= 60:
		return "Likely True - " + verdict
	case score >= 40:
		return "Uncertain - " + verdict
	case score >= 20:
		return "Likely False - " + verdict
	default:
		return "Disproven - " + verdict
	}
}

func overallAssessment(score int, analysis *model.CrossSourceAnalysis, report *model.DirectVerificationReport) string {
	var parts []string

	switch {
	case score >= 80:
		parts = append(parts, "This information has been VERIFIED through direct examination of authoritative sources.")
	case score >= 60:
		parts = append(parts, "This information is LIKELY ACCURATE based on credible source verification.")
	case score >= 40:
		parts = append(parts, "This information has MIXED EVIDENCE from verification attempts.")
	case score >= 20:
		parts = append(parts, "This information is LIKELY INACCURATE based on verification findings.")
	default:
		parts = append(parts, "This information has been DISPROVEN through verification.")
	}

	if report != nil && report.SourcesConsulted > 0 {
		parts = append(parts, fmt.Sprintf("Verification consulted %d authoritative sources, including %d primary source(s).",
			report.SourcesConsulted, report.PrimarySources))
	}

	if analysis != nil {
		switch analysis.ConsensusLevel {
		case model.ConsensusStrongAgreement:
			parts = append(parts, "All credible sources strongly agree on this information.")
		case model.ConsensusStrongDisagreement:
			parts = append(parts, "Credible sources significantly disagree on this information.")
		case model.ConsensusMixed:
			parts = append(parts, "Sources present varying perspectives on this information.")
		}
	}

	return strings.Join(parts, " ")
}

func methodology(report *model.DirectVerificationReport) string {
	parts := []string{
		"VERIFICATION METHODOLOGY:",
		"1. Direct Source Verification: Claims were verified against authoritative sources",
		"   including government databases, academic research, and official records.",
	}
	if report != nil && report.SourcesConsulted > 0 {
		parts = append(parts, fmt.Sprintf("2. %d source(s) were directly consulted for verification.", report.SourcesConsulted))
		if report.PrimarySources > 0 {
			parts = append(parts, fmt.Sprintf("3. %d primary source(s) were examined directly.", report.PrimarySources))
		}
	}
	parts = append(parts,
		"4. Cross-reference validation was performed across all sources.",
		"5. Consensus analysis determined agreement levels between sources.",
	)
	return strings.Join(parts, "\n")
}

func confidenceStatement(score int, report *model.DirectVerificationReport) string {
	var level, factors string
	switch {
	case score >= 80:
		level = "HIGH"
		factors = "Strong verification from multiple authoritative sources"
	case score >= 60:
		level = "MEDIUM-HIGH"
		factors = "Good verification with some limitations"
	case score >= 40:
		level = "MEDIUM"
		factors = "Moderate evidence with some conflicts or gaps"
	case score >= 20:
		level = "MEDIUM-LOW"
		factors = "Weak verification with significant uncertainties"
	default:
		level = "LOW"
		factors = "Insufficient or contradictory evidence"
	}

	statement := fmt.Sprintf("CONFIDENCE: %s (%d%%) - %s.", level, score, factors)
	if report != nil && report.SourcesConsulted > 0 {
		statement += fmt.Sprintf(" Source verification score: %d%%.", int(report.OverallScore*100))
	}
	return statement
}

func recommendations(score int, analysis *model.CrossSourceAnalysis, report *model.DirectVerificationReport) []string {
	var recs []string
	switch {
	case score >= 80:
		recs = append(recs,
			"This information is well-verified and can be considered reliable.",
			"Safe to share with confidence in its accuracy.")
	case score >= 60:
		recs = append(recs,
			"This information appears accurate based on available evidence.",
			"Consider verifying with official sources if critical.")
	case score >= 40:
		recs = append(recs,
			"Exercise caution with this information.",
			"Seek additional verification from authoritative sources.",
			"Do not rely on this information for important decisions.")
	case score >= 20:
		recs = append(recs,
			"This information is likely inaccurate.",
			"Do not share without additional verification.",
			"Look for alternative sources or official statements.")
	default:
		recs = append(recs,
			"This information has been disproven.",
			"Do not share - it may spread misinformation.")
	}

	if report != nil && len(report.UnverifiedPoints) > 0 {
		recs = append(recs, fmt.Sprintf("Note: %d data point(s) could not be verified.", len(report.UnverifiedPoints)))
	}
	if analysis != nil && len(analysis.Contradictions) > 0 {
		recs = append(recs, fmt.Sprintf("Warning: %d contradiction(s) found between sources.", len(analysis.Contradictions)))
	}
	return recs
}

func limitations(analysis *model.CrossSourceAnalysis, report *model.DirectVerificationReport) []string {
	var limits []string

	if analysis != nil {
		switch analysis.EvidenceStrength {
		case model.StrengthWeak, model.StrengthInsufficient, model.StrengthConflicting:
			limits = append(limits, "Limited evidence was available for comprehensive verification.")
		}
	}
	if report != nil {
		if report.SourcesConsulted > 0 && report.PrimarySources == 0 {
			limits = append(limits, "No primary (authoritative) sources could be consulted.")
		}
		if len(report.Discrepancies) > 0 {
			limits = append(limits, fmt.Sprintf("Found %d discrepancy(ies) between sources.", len(report.Discrepancies)))
		}
	}
	if analysis != nil {
		limits = append(limits, firstStrings(analysis.UncertaintyFactors, 3)...)
	}
	if len(limits) == 0 {
		limits = append(limits, "No significant limitations identified in the verification process.")
	}
	return limits
}

func firstStrings(items []string, n int) []string {
	if len(items) <= n {
		return items
	}
	return items[:n]
}
