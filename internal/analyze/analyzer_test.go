package analyze

import (
	"testing"
	"time"

	"github.com/ppiankov/factly/internal/model"
)

func collection(items ...model.EvidenceItem) *model.EvidenceCollection {
	sources := make(map[string]bool)
	types := make(map[model.SourceType]bool)
	for _, item := range items {
		sources[item.Source] = true
		types[item.SourceType] = true
	}
	diversity := 0.0
	if len(items) > 0 {
		sp := float64(len(sources)) / float64(len(items)) * 0.5
		if sp > 0.5 {
			sp = 0.5
		}
		tp := float64(len(types)) / 4 * 0.5
		if tp > 0.5 {
			tp = 0.5
		}
		diversity = sp + tp
	}
	return &model.EvidenceCollection{
		Claim:     "test claim",
		Items:     items,
		Diversity: diversity,
		FetchedAt: time.Now().UTC(),
	}
}

func factCheck(src, verdict string, cred float64) model.EvidenceItem {
	return model.EvidenceItem{
		Source:      src,
		SourceType:  model.SourceTypeFactCheck,
		Credibility: cred,
		Relevance:   0.9,
		Verdict:     verdict,
	}
}

func news(src string, cred float64) model.EvidenceItem {
	return model.EvidenceItem{
		Source:      src,
		SourceType:  model.SourceTypeNews,
		Credibility: cred,
		Relevance:   0.5,
	}
}

func TestAnalyze_EmptyCollection(t *testing.T) {
	a := NewAnalyzer()

	analysis := a.Analyze(collection())
	if analysis.ConsensusLevel != model.ConsensusInsufficientData {
		t.Errorf("expected insufficient_data, got %s", analysis.ConsensusLevel)
	}
	if analysis.EvidenceStrength != model.StrengthInsufficient {
		t.Errorf("expected insufficient strength, got %s", analysis.EvidenceStrength)
	}
	if analysis.ConfidenceScore != 0 {
		t.Errorf("expected zero confidence, got %f", analysis.ConfidenceScore)
	}
	if analysis.RecommendedVerdict != "Unverified - No Evidence" {
		t.Errorf("unexpected verdict: %q", analysis.RecommendedVerdict)
	}
}

func TestAnalyze_NilCollection(t *testing.T) {
	a := NewAnalyzer()
	analysis := a.Analyze(nil)
	if analysis.ConsensusLevel != model.ConsensusInsufficientData {
		t.Errorf("expected insufficient_data for nil collection")
	}
}

func TestAnalyze_UnanimousHighCredSources(t *testing.T) {
	a := NewAnalyzer()

	analysis := a.Analyze(collection(
		factCheck("PolitiFact", "True", 0.95),
		factCheck("Snopes", "True", 0.93),
		factCheck("FactCheck.org", "True", 0.94),
	))

	if analysis.AgreementScore != 1.0 {
		t.Errorf("unanimous verdicts should score 1.0, got %f", analysis.AgreementScore)
	}
	if analysis.ConsensusLevel != model.ConsensusStrongAgreement {
		t.Errorf("expected strong_agreement, got %s", analysis.ConsensusLevel)
	}
	if analysis.EvidenceStrength != model.StrengthStrong {
		t.Errorf("expected strong evidence, got %s", analysis.EvidenceStrength)
	}
	if analysis.RecommendedVerdict != "True" {
		t.Errorf("expected True verdict, got %q", analysis.RecommendedVerdict)
	}
	if len(analysis.Contradictions) != 0 {
		t.Errorf("unexpected contradictions: %v", analysis.Contradictions)
	}
}

func TestAnalyze_ConflictingHighCredSources(t *testing.T) {
	a := NewAnalyzer()

	analysis := a.Analyze(collection(
		factCheck("PolitiFact", "True", 0.95),
		factCheck("Snopes", "False", 0.95),
	))

	if analysis.ConsensusLevel != model.ConsensusStrongDisagreement {
		t.Errorf("expected strong_disagreement, got %s", analysis.ConsensusLevel)
	}
	if analysis.EvidenceStrength != model.StrengthConflicting {
		t.Errorf("expected conflicting evidence, got %s", analysis.EvidenceStrength)
	}
	if len(analysis.Contradictions) != 1 {
		t.Fatalf("expected 1 contradiction, got %d", len(analysis.Contradictions))
	}
	c := analysis.Contradictions[0]
	if c.Difference != 1.0 {
		t.Errorf("expected max verdict difference, got %f", c.Difference)
	}
}

func TestAnalyze_SingleVerdictWithNews(t *testing.T) {
	// One fact-check plus verdict-less news: agreement is neutral, and the
	// high-credibility reviewer keeps the evidence at moderate strength.
	a := NewAnalyzer()

	analysis := a.Analyze(collection(
		factCheck("PolitiFact", "True", 0.9),
		news("Reuters", 0.95),
		news("AP News", 0.95),
	))

	if analysis.AgreementScore != 0.5 {
		t.Errorf("single verdict should yield neutral agreement, got %f", analysis.AgreementScore)
	}
	if analysis.ConsensusLevel != model.ConsensusMixed {
		t.Errorf("expected mixed consensus, got %s", analysis.ConsensusLevel)
	}
	if analysis.EvidenceStrength != model.StrengthModerate {
		t.Errorf("expected moderate strength with a high-cred reviewer, got %s", analysis.EvidenceStrength)
	}
}

func TestAnalyze_AgreementDropsWithDissent(t *testing.T) {
	a := NewAnalyzer()

	unanimous := a.Analyze(collection(
		factCheck("PolitiFact", "True", 0.9),
		factCheck("Snopes", "True", 0.93),
	))
	withDissent := a.Analyze(collection(
		factCheck("PolitiFact", "True", 0.9),
		factCheck("Snopes", "True", 0.93),
		factCheck("FactCheck.org", "False", 0.94),
	))

	if withDissent.AgreementScore >= unanimous.AgreementScore {
		t.Errorf("dissenting verdict must lower agreement: %f >= %f",
			withDissent.AgreementScore, unanimous.AgreementScore)
	}
}

func TestAnalyze_SingleSourceInsufficient(t *testing.T) {
	a := NewAnalyzer()

	analysis := a.Analyze(collection(factCheck("PolitiFact", "True", 0.95)))
	if analysis.ConsensusLevel != model.ConsensusInsufficientData {
		t.Errorf("single source cannot form consensus, got %s", analysis.ConsensusLevel)
	}
	if analysis.EvidenceStrength != model.StrengthInsufficient {
		t.Errorf("single source is insufficient strength, got %s", analysis.EvidenceStrength)
	}
	if analysis.RecommendedVerdict != "Unverified - Insufficient Data" {
		t.Errorf("unexpected verdict: %q", analysis.RecommendedVerdict)
	}
}

func TestAnalyze_SupportAndContradictionLinks(t *testing.T) {
	a := NewAnalyzer()

	analysis := a.Analyze(collection(
		factCheck("PolitiFact", "True", 0.95),
		factCheck("Snopes", "Mostly True", 0.93),
		factCheck("FactCheck.org", "False", 0.94),
	))

	var politifact *model.SourceAnalysis
	for i := range analysis.SourceAnalyses {
		if analysis.SourceAnalyses[i].Source == "PolitiFact" {
			politifact = &analysis.SourceAnalyses[i]
		}
	}
	if politifact == nil {
		t.Fatalf("PolitiFact analysis missing")
	}

	// True (1.0) vs Mostly True (0.85) agree; vs False (0.0) contradict
	if len(politifact.Supports) != 1 || politifact.Supports[0] != "Snopes" {
		t.Errorf("expected Snopes support, got %v", politifact.Supports)
	}
	if len(politifact.Contradicts) != 1 || politifact.Contradicts[0] != "FactCheck.org" {
		t.Errorf("expected FactCheck.org contradiction, got %v", politifact.Contradicts)
	}
}

func TestAnalyze_ConfidenceGrowsWithEvidence(t *testing.T) {
	a := NewAnalyzer()

	small := a.Analyze(collection(
		factCheck("PolitiFact", "True", 0.9),
		factCheck("Snopes", "True", 0.93),
	))
	large := a.Analyze(collection(
		factCheck("PolitiFact", "True", 0.9),
		factCheck("Snopes", "True", 0.93),
		factCheck("FactCheck.org", "True", 0.94),
		news("Reuters", 0.95),
		news("AP News", 0.95),
	))

	if large.ConfidenceScore <= small.ConfidenceScore {
		t.Errorf("more agreeing evidence should raise confidence: %f <= %f",
			large.ConfidenceScore, small.ConfidenceScore)
	}
}

func TestAnalyze_UncertaintyFactors(t *testing.T) {
	a := NewAnalyzer()

	analysis := a.Analyze(collection(
		factCheck("SmallBlog", "True", 0.4),
		factCheck("OtherBlog", "False", 0.4),
	))

	if len(analysis.UncertaintyFactors) == 0 {
		t.Fatalf("expected uncertainty factors for low-cred conflicting evidence")
	}

	hasLowCred := false
	for _, f := range analysis.UncertaintyFactors {
		if f == "2 source(s) with lower credibility ratings" {
			hasLowCred = true
		}
	}
	if !hasLowCred {
		t.Errorf("expected low-credibility factor, got %v", analysis.UncertaintyFactors)
	}
}
