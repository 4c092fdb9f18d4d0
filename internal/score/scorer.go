package score

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/ppiankov/factly/internal/model"
)

// Component weights, sum to 1.0
const (
	weightFactCheckConsensus = 0.45
	weightSourceCredibility  = 0.25
	weightEvidenceQuality    = 0.20
	weightContentAnalysis    = 0.10
)

// Classification thresholds on the 0-100 scale
const (
	likelyFakeBelow     = 36
	likelyAuthenticFrom = 66
)

// directReportWeight blends the direct verification score into the base score
const directReportWeight = 0.3

var consensusAdjustments = map[model.ConsensusLevel]int{
	model.ConsensusStrongAgreement:    5,
	model.ConsensusModerateAgreement:  0,
	model.ConsensusMixed:              -5,
	model.ConsensusModerateDisagree:   -10,
	model.ConsensusStrongDisagreement: -15,
	model.ConsensusInsufficientData:   -10,
}

var strengthAdjustments = map[model.EvidenceStrength]int{
	model.StrengthStrong:       5,
	model.StrengthModerate:     0,
	model.StrengthWeak:         -5,
	model.StrengthConflicting:  -10,
	model.StrengthInsufficient: -15,
}

var (
	biasPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(conspiracy|hoax|fake news|propaganda)\b`),
		regexp.MustCompile(`(?i)\b(mainstream media|liberal media|conservative media)\b`),
		regexp.MustCompile(`(?i)\b(deep state|illuminati|new world order)\b`),
		regexp.MustCompile(`(?i)\b(they don't want you to know|wake up sheeple)\b`),
		regexp.MustCompile(`(?i)\b(crisis actor|false flag|inside job)\b`),
	}
	citationPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)according to [A-Z][a-z]+`),
		regexp.MustCompile(`(?i)said [A-Z][a-z]+`),
		regexp.MustCompile(`(?i)reported by [A-Z][a-z]+`),
		regexp.MustCompile(`\b(?:Reuters|AP|BBC|CNN|NBC|CBS|ABC|Fox|NYT|Washington Post)\b`),
	}
	datePattern      = regexp.MustCompile(`\b(?:January|February|March|April|May|June|July|August|September|October|November|December)\b \d{1,2},? \d{4}`)
	statisticPattern = regexp.MustCompile(`\d+(?:\.\d+)?%|\d+ percent`)
)

var sensationalPhrases = []string{
	"shocking", "outrageous", "unbelievable", "scandalous",
	"devastating", "catastrophic", "terrifying", "mind-blowing",
	"you won't believe", "this changes everything", "what happens next",
	"doctors hate this", "secret they don't want you to know",
}

// Input carries everything the fusion engine folds into one score. Evidence,
// Analysis and Direct may each be nil; the engine degrades toward neutral.
type Input struct {
	Evidence *model.EvidenceCollection
	Analysis *model.CrossSourceAnalysis
	Direct   *model.DirectVerificationReport
	Content  string
}

// Scorer fuses evidence, consensus analysis, and content heuristics into the
// 0-100 credibility score with a per-component breakdown
type Scorer struct{}

// NewScorer creates a new scorer
func NewScorer() *Scorer {
	return &Scorer{}
}

// Score computes the weighted credibility score
func (s *Scorer) Score(in Input) *model.ScoreResult {
	var components []model.ComponentScore

	// 1. Fact-Check Consensus (45%)
	components = append(components, s.factCheckConsensus(in.Evidence))

	// 2. Source Credibility (25%)
	components = append(components, s.sourceCredibility(in.Evidence, in.Direct))

	// 3. Evidence Quality (20%)
	components = append(components, s.evidenceQuality(in.Evidence))

	// 4. Content Analysis (10%)
	components = append(components, s.contentAnalysis(in.Content))

	totalWeighted := 0.0
	for _, comp := range components {
		totalWeighted += comp.WeightedScore
	}
	score := int(math.Round(totalWeighted * 100))

	// Blend in the direct verification score when sources were actually probed
	if in.Direct != nil && in.Direct.SourcesConsulted > 0 {
		blended := float64(score)*(1-directReportWeight) + in.Direct.OverallScore*100*directReportWeight
		score = int(math.Round(blended))
	}

	// Consensus adjustments apply only when the analysis saw real sources.
	// An analysis that is empty because nothing was found must not drag a
	// neutral score into the fake band.
	if in.Analysis != nil && len(in.Analysis.SourceAnalyses) > 0 {
		score = adjustWithAnalysis(score, in.Analysis)
	}
	score = clampScore(score)

	reviews, news := evidenceCounts(in.Evidence)
	result := &model.ScoreResult{
		Score:           score,
		Classification:  classify(score),
		ConfidenceLevel: s.confidenceLevel(components, reviews, in.Direct),
		Components:      components,
		Justifications:  s.justifications(components, score, in.Evidence),
		EvidenceSummary: s.evidenceSummary(in.Evidence, components),
		ProducedAt:      time.Now().UTC(),
	}

	// Without any evidence the score rests on content heuristics alone
	if reviews == 0 && news == 0 && (in.Direct == nil || in.Direct.SourcesConsulted == 0) {
		result.ConfidenceLevel = "Low"
	}

	return result
}

// factCheckConsensus computes the credibility-and-relevance-weighted mean of
// fact-check verdict scores, ramped up as review count approaches five
func (s *Scorer) factCheckConsensus(evidence *model.EvidenceCollection) model.ComponentScore {
	reviews := factCheckItems(evidence)

	var score float64
	var justification string
	var evidenceLines []string

	if len(reviews) == 0 {
		score = 0.5
		justification = "No fact-check reviews found - insufficient data for verification"
		evidenceLines = []string{"No claim reviews available from fact-checking sources"}
	} else {
		totalWeighted := 0.0
		totalWeight := 0.0
		var details []string
		for _, item := range reviews {
			weight := item.Credibility * item.Relevance
			totalWeighted += model.VerdictScore(item.Verdict) * weight
			totalWeight += weight
			details = append(details, fmt.Sprintf("%s: %s", item.Source, item.Verdict))
		}
		if totalWeight > 0 {
			score = totalWeighted / totalWeight
		} else {
			score = 0.5
		}

		// More reviews, more confidence in the consensus
		countFactor := math.Min(1.0, float64(len(reviews))/5.0)
		score *= 0.7 + 0.3*countFactor

		justification = fmt.Sprintf("Fact-check consensus from %d sources", len(reviews))
		evidenceLines = []string{
			fmt.Sprintf("Analyzed %d fact-check reviews", len(reviews)),
			fmt.Sprintf("Weighted verdict score: %.2f", score),
			"Sources: " + strings.Join(firstN(details, 5), ", "),
		}
	}

	return component("Fact-Check Consensus", score, weightFactCheckConsensus, justification, evidenceLines)
}

// sourceCredibility averages direct-probe credibility with relevance-weighted
// credibility across up to five related news items
func (s *Scorer) sourceCredibility(evidence *model.EvidenceCollection, direct *model.DirectVerificationReport) model.ComponentScore {
	news := newsItems(evidence)

	var scores []float64
	var analyzed []string

	if direct != nil && len(direct.Probes) > 0 {
		total := 0.0
		for _, p := range direct.Probes {
			total += p.Credibility
		}
		scores = append(scores, total/float64(len(direct.Probes)))
		analyzed = append(analyzed, "direct verification probes")
	}

	if len(news) > 0 {
		limit := len(news)
		if limit > 5 {
			limit = 5
		}
		weighted := 0.0
		relevance := 0.0
		for _, item := range news[:limit] {
			weighted += item.Credibility * item.Relevance
			relevance += item.Relevance
			analyzed = append(analyzed, item.Source)
		}
		if relevance > 0 {
			scores = append(scores, weighted/relevance)
		}
	}

	var score float64
	var justification string
	var evidenceLines []string
	if len(scores) == 0 {
		score = 0.5
		justification = "No source credibility data available"
		evidenceLines = []string{"Source reliability assessment not available"}
	} else {
		total := 0.0
		for _, v := range scores {
			total += v
		}
		score = total / float64(len(scores))
		justification = fmt.Sprintf("Source credibility from %d sources", len(analyzed))
		evidenceLines = []string{
			fmt.Sprintf("Analyzed %d sources", len(analyzed)),
			fmt.Sprintf("Average credibility: %.2f", score),
			"Sources: " + strings.Join(firstN(analyzed, 5), ", "),
		}
	}

	return component("Source Credibility", score, weightSourceCredibility, justification, evidenceLines)
}

// evidenceQuality rewards evidence quantity with diminishing returns
func (s *Scorer) evidenceQuality(evidence *model.EvidenceCollection) model.ComponentScore {
	reviews, news := evidenceCounts(evidence)

	reviewScore := math.Min(1.0, float64(reviews)/3.0)
	newsScore := math.Min(1.0, float64(news)/5.0)
	score := reviewScore*0.7 + newsScore*0.3

	var justification string
	if reviews == 0 && news == 0 {
		score = 0.3
		justification = "Limited evidence available"
	} else {
		justification = fmt.Sprintf("Evidence quality: %d reviews, %d related articles", reviews, news)
	}

	evidenceLines := []string{
		fmt.Sprintf("Fact-check reviews: %d", reviews),
		fmt.Sprintf("Related news articles: %d", news),
		fmt.Sprintf("Evidence coverage score: %.2f", score),
	}

	return component("Evidence Quality", score, weightEvidenceQuality, justification, evidenceLines)
}

// contentAnalysis scores the claim text itself: bias phrasing and
// sensationalism lower it, named citations and dated statistics raise it
func (s *Scorer) contentAnalysis(text string) model.ComponentScore {
	bias := countBiasIndicators(text)
	sensationalism := countSensationalism(text)
	citations := citationQuality(text)

	biasScore := 1.0 - math.Min(1.0, float64(bias)/5.0)
	sensationalismScore := 1.0 - math.Min(1.0, float64(sensationalism)/5.0)
	score := biasScore*0.4 + sensationalismScore*0.4 + citations*0.2

	justification := fmt.Sprintf("Content analysis: bias=%d, sensationalism=%d", bias, sensationalism)
	evidenceLines := []string{
		fmt.Sprintf("Bias indicators: %d", bias),
		fmt.Sprintf("Sensationalism markers: %d", sensationalism),
		fmt.Sprintf("Citation quality: %.2f", citations),
	}

	return component("Content Analysis", score, weightContentAnalysis, justification, evidenceLines)
}

func countBiasIndicators(text string) int {
	count := 0
	for _, pattern := range biasPatterns {
		count += len(pattern.FindAllString(text, -1))
	}
	return count
}

func countSensationalism(text string) int {
	lower := strings.ToLower(text)
	count := 0
	for _, phrase := range sensationalPhrases {
		if strings.Contains(lower, phrase) {
			count++
		}
	}
	if strings.Count(text, "!") > 2 {
		count++
	}
	capsWords := 0
	for _, word := range strings.Fields(text) {
		if len(word) > 2 && word == strings.ToUpper(word) && word != strings.ToLower(word) {
			capsWords++
		}
	}
	if capsWords > 2 {
		count++
	}
	return count
}

func citationQuality(text string) float64 {
	score := 0.5
	for _, pattern := range citationPatterns {
		if pattern.MatchString(text) {
			score += 0.1
		}
	}
	if datePattern.MatchString(text) {
		score += 0.1
	}
	if statisticPattern.MatchString(text) {
		score += 0.1
	}
	return math.Min(1.0, score)
}

// adjustWithAnalysis applies the fixed consensus and strength bonuses plus a
// confidence term centered on 0.5
func adjustWithAnalysis(score int, analysis *model.CrossSourceAnalysis) int {
	adjusted := score
	adjusted += consensusAdjustments[analysis.ConsensusLevel]
	adjusted += strengthAdjustments[analysis.EvidenceStrength]
	adjusted += int(math.Round((analysis.ConfidenceScore - 0.5) * 20))
	return clampScore(adjusted)
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func classify(score int) string {
	switch {
	case score < likelyFakeBelow:
		return "Likely Fake"
	case score < likelyAuthenticFrom:
		return "Uncertain"
	default:
		return "Likely Authentic"
	}
}

// confidenceLevel derives Low/Medium/High from how much the four component
// scores disagree, with a small bonus for richer evidence
func (s *Scorer) confidenceLevel(components []model.ComponentScore, reviewCount int, direct *model.DirectVerificationReport) string {
	mean := 0.0
	for _, comp := range components {
		mean += comp.Score
	}
	mean /= float64(len(components))

	variance := 0.0
	for _, comp := range components {
		diff := comp.Score - mean
		variance += diff * diff
	}
	variance /= float64(len(components))

	bonus := 0.0
	if reviewCount >= 3 {
		bonus += 0.1
	}
	if direct != nil && len(direct.Probes) > 0 {
		bonus += 0.05
	}
	adjusted := math.Max(0, variance-bonus)

	switch {
	case adjusted < 0.08:
		return "High"
	case adjusted < 0.20:
		return "Medium"
	default:
		return "Low"
	}
}

func (s *Scorer) justifications(components []model.ComponentScore, score int, evidence *model.EvidenceCollection) []string {
	justifications := []string{
		fmt.Sprintf("Credibility score of %d/100 indicates %s credibility.", score, strings.ToLower(classify(score))),
	}

	reviews := factCheckItems(evidence)
	if len(reviews) > 0 {
		trueCount, falseCount := 0, 0
		for _, item := range reviews {
			switch vs := model.VerdictScore(item.Verdict); {
			case vs >= 0.7:
				trueCount++
			case vs <= 0.3:
				falseCount++
			}
		}
		switch {
		case trueCount > falseCount:
			justifications = append(justifications,
				fmt.Sprintf("Majority of fact-checkers (%d/%d) rate this as credible.", trueCount, len(reviews)))
		case falseCount > trueCount:
			justifications = append(justifications,
				fmt.Sprintf("Majority of fact-checkers (%d/%d) question this claim's accuracy.", falseCount, len(reviews)))
		default:
			justifications = append(justifications, "Fact-checkers have mixed opinions on this claim.")
		}
	}

	for _, comp := range components {
		if comp.WeightedScore > 0.15 {
			justifications = append(justifications, fmt.Sprintf("%s: %s", comp.Name, comp.Justification))
		}
	}

	reviewCount, newsCount := evidenceCounts(evidence)
	if reviewCount == 0 && newsCount == 0 {
		justifications = append(justifications,
			"Limited evidence available - verification based primarily on content analysis.")
	}

	return justifications
}

func (s *Scorer) evidenceSummary(evidence *model.EvidenceCollection, components []model.ComponentScore) model.EvidenceSummary {
	reviews := factCheckItems(evidence)
	reviewCount, newsCount := evidenceCounts(evidence)

	verdicts := make(map[string]int)
	var topSources []string
	for _, item := range reviews {
		verdict := strings.ToLower(strings.TrimSpace(item.Verdict))
		if verdict == "" {
			verdict = "unknown"
		}
		verdicts[verdict]++
		if len(topSources) < 5 {
			topSources = append(topSources, item.Source)
		}
	}

	breakdown := make(map[string]float64, len(components))
	for _, comp := range components {
		breakdown[comp.Name] = math.Round(comp.WeightedScore*100) / 100
	}

	summary := model.EvidenceSummary{
		ClaimReviewCount:    reviewCount,
		RelatedNewsCount:    newsCount,
		VerdictDistribution: verdicts,
		ComponentBreakdown:  breakdown,
		TopFactCheckSources: topSources,
	}
	if evidence != nil {
		summary.SourcesUsed = evidence.SourcesUsed
	}
	return summary
}

func component(name string, score, weight float64, justification string, evidence []string) model.ComponentScore {
	return model.ComponentScore{
		Name:          name,
		Score:         score,
		Weight:        weight,
		WeightedScore: score * weight,
		Justification: justification,
		Evidence:      evidence,
	}
}

func factCheckItems(evidence *model.EvidenceCollection) []model.EvidenceItem {
	if evidence == nil {
		return nil
	}
	var out []model.EvidenceItem
	for _, item := range evidence.ItemsOfType(model.SourceTypeFactCheck) {
		if model.HasVerdict(item.Verdict) {
			out = append(out, item)
		}
	}
	return out
}

func newsItems(evidence *model.EvidenceCollection) []model.EvidenceItem {
	if evidence == nil {
		return nil
	}
	return evidence.ItemsOfType(model.SourceTypeNews)
}

func evidenceCounts(evidence *model.EvidenceCollection) (reviews, news int) {
	return len(factCheckItems(evidence)), len(newsItems(evidence))
}

func firstN(items []string, n int) []string {
	if len(items) <= n {
		return items
	}
	return items[:n]
}
