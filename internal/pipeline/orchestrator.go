package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ppiankov/factly/internal/analyze"
	"github.com/ppiankov/factly/internal/directverify"
	"github.com/ppiankov/factly/internal/evidence"
	"github.com/ppiankov/factly/internal/extract"
	"github.com/ppiankov/factly/internal/model"
	"github.com/ppiankov/factly/internal/score"
)

const minInputLength = 10

// Narrator writes an optional prose narrative for a finished verification.
// Its output decorates the summary and never affects the score.
type Narrator interface {
	Narrate(ctx context.Context, result *model.VerificationResult) (string, error)
}

// Options tune a verification run
type Options struct {
	Language      string
	Direct        bool // Run the direct-source verification pass
	ForceRefresh  bool // Bypass the evidence cache
	MaxPerSource  int
	MinConfidence float64 // Claim extraction floor
}

// Orchestrator drives the fixed verification step machine. It is the only
// component that calls more than one stage in sequence.
type Orchestrator struct {
	extractor  *extract.Extractor
	aggregator *evidence.Aggregator
	analyzer   *analyze.Analyzer
	scorer     *score.Scorer
	direct     *directverify.Verifier
	narrator   Narrator
	opts       Options
}

// NewOrchestrator wires the verification stages together. direct may be nil
// when the direct-source pass is disabled.
func NewOrchestrator(extractor *extract.Extractor, aggregator *evidence.Aggregator, direct *directverify.Verifier, opts Options) *Orchestrator {
	if opts.Language == "" {
		opts.Language = "en"
	}
	if opts.MaxPerSource <= 0 {
		opts.MaxPerSource = 10
	}
	if opts.MinConfidence <= 0 {
		opts.MinConfidence = 0.4
	}
	return &Orchestrator{
		extractor:  extractor,
		aggregator: aggregator,
		analyzer:   analyze.NewAnalyzer(),
		scorer:     score.NewScorer(),
		direct:     direct,
		opts:       opts,
	}
}

// SetNarrator attaches an optional narrative writer
func (o *Orchestrator) SetNarrator(n Narrator) {
	o.narrator = n
}

// Verify runs the full verification pipeline for one piece of text. Once the
// input passes preprocessing, Verify always returns a complete result: a
// failed step degrades to neutral output and the pipeline continues.
func (o *Orchestrator) Verify(ctx context.Context, text string) (*model.VerificationResult, error) {
	started := time.Now()
	result := &model.VerificationResult{
		OriginalText: text,
		Timestamp:    started.UTC(),
		Trace: model.VerificationTrace{
			OriginalText: text,
			Timestamp:    started.UTC(),
		},
	}

	// Step 1: Preprocess. The only fatal step: without a claim there is
	// nothing to verify, and it fails before any network call.
	claimText, err := o.stepPreprocess(result)
	if err != nil {
		result.Error = err.Error()
		result.Classification = "Uncertain"
		result.ConfidenceLevel = "Low"
		result.Trace.ProcessingTime = time.Since(started)
		return result, err
	}

	// Step 2: Direct Verification (optional)
	if o.direct != nil && o.opts.Direct {
		o.stepDirectVerification(ctx, result, claimText)
	}

	// Step 3: Evidence Search
	o.stepEvidenceSearch(ctx, result, claimText)

	// Step 4: Cross-Source Analysis
	o.stepAnalysis(result, claimText)

	// Step 5: Score Fusion
	o.stepScoreFusion(result, text)

	// Step 6: Summary
	o.stepSummary(ctx, result)

	if result.Evidence != nil {
		result.Trace.SourcesUsed = result.Evidence.SourcesUsed
	}
	result.Trace.ExtractedClaims = result.ExtractedClaims
	result.Trace.ProcessingTime = time.Since(started)
	return result, nil
}

func (o *Orchestrator) stepPreprocess(result *model.VerificationResult) (string, error) {
	step := o.beginStep(1, "Preprocess", "Cleaning input text and extracting verifiable claims")

	trimmed := strings.TrimSpace(result.OriginalText)
	if len(trimmed) < minInputLength {
		err := fmt.Errorf("input too short to verify (%d characters)", len(trimmed))
		o.failStep(result, step, err)
		return "", err
	}

	claims := o.extractor.Extract(trimmed, o.opts.MinConfidence)
	primary := o.extractor.Primary(trimmed)

	result.ExtractedClaims = claims
	result.PrimaryClaim = primary

	claimText := trimmed
	if primary != nil {
		claimText = primary.Text
	}

	o.completeStep(result, step, map[string]any{
		"claims_extracted": len(claims),
		"primary_claim":    claimText,
	})
	return claimText, nil
}

func (o *Orchestrator) stepDirectVerification(ctx context.Context, result *model.VerificationResult, claimText string) {
	step := o.beginStep(2, "Direct Verification", "Probing authoritative sources for the claim's data points")

	report := o.direct.Verify(ctx, claimText)
	result.DirectReport = report

	o.completeStep(result, step, map[string]any{
		"sources_consulted": report.SourcesConsulted,
		"primary_sources":   report.PrimarySources,
		"secondary_sources": report.SecondarySources,
		"overall_score":     report.OverallScore,
		"data_points":       len(report.DataPoints),
	})
}

func (o *Orchestrator) stepEvidenceSearch(ctx context.Context, result *model.VerificationResult, claimText string) {
	step := o.beginStep(3, "Evidence Search", "Gathering evidence from fact-check, news, and official sources")

	// Upstream APIs choke on long queries; the generated query caps the
	// claim at a searchable length.
	query := claimText
	if qs := extract.SearchQueries(result.PrimaryClaim, 1); len(qs) > 0 {
		query = qs[0]
	}

	collection, err := o.aggregator.Search(ctx, query, o.opts.Language, o.opts.MaxPerSource, o.opts.ForceRefresh)
	if err != nil {
		o.failStep(result, step, err)
		return
	}
	result.Evidence = collection

	o.completeStep(result, step, map[string]any{
		"items_found":   len(collection.Items),
		"sources_used":  collection.SourcesUsed,
		"source_errors": collection.Errors,
		"freshness":     string(collection.Freshness),
	})
}

func (o *Orchestrator) stepAnalysis(result *model.VerificationResult, claimText string) {
	step := o.beginStep(4, "Cross-Source Analysis", "Analyzing consensus and conflicts between sources")

	analysis := o.analyzer.Analyze(result.Evidence)
	analysis.Claim = claimText
	result.Analysis = analysis

	o.completeStep(result, step, map[string]any{
		"consensus_level":     string(analysis.ConsensusLevel),
		"evidence_strength":   string(analysis.EvidenceStrength),
		"agreement_score":     analysis.AgreementScore,
		"recommended_verdict": analysis.RecommendedVerdict,
		"contradictions":      len(analysis.Contradictions),
	})
}

func (o *Orchestrator) stepScoreFusion(result *model.VerificationResult, text string) {
	step := o.beginStep(5, "Score Fusion", "Fusing evidence, consensus, and content signals into one score")

	scored := o.scorer.Score(score.Input{
		Evidence: result.Evidence,
		Analysis: result.Analysis,
		Direct:   result.DirectReport,
		Content:  text,
	})
	result.Score = scored
	result.Classification = presentationClassification(scored.Score)
	result.ConfidenceLevel = presentationConfidence(scored.Score)

	o.completeStep(result, step, map[string]any{
		"score":            scored.Score,
		"classification":   result.Classification,
		"confidence_level": result.ConfidenceLevel,
	})
}

func (o *Orchestrator) stepSummary(ctx context.Context, result *model.VerificationResult) {
	step := o.beginStep(6, "Summary", "Creating the human-readable verification summary")

	summary := buildSummary(result)
	result.Summary = summary

	stepResult := map[string]any{"headline": summary.Headline}
	if o.narrator != nil {
		narrative, err := o.narrator.Narrate(ctx, result)
		if err != nil {
			stepResult["narrative_error"] = err.Error()
		} else {
			summary.Narrative = narrative
		}
	}

	o.completeStep(result, step, stepResult)
}

func (o *Orchestrator) beginStep(number int, name, description string) model.VerificationStep {
	return model.VerificationStep{
		Number:      number,
		Name:        name,
		Description: description,
		Status:      model.StepInProgress,
		StartedAt:   time.Now().UTC(),
	}
}

func (o *Orchestrator) completeStep(result *model.VerificationResult, step model.VerificationStep, stepResult map[string]any) {
	step.Status = model.StepCompleted
	step.Result = stepResult
	step.Duration = time.Since(step.StartedAt)
	result.Trace.Steps = append(result.Trace.Steps, step)
}

func (o *Orchestrator) failStep(result *model.VerificationResult, step model.VerificationStep, err error) {
	step.Status = model.StepFailed
	step.Result = map[string]any{"error": err.Error()}
	step.Duration = time.Since(step.StartedAt)
	result.Trace.Steps = append(result.Trace.Steps, step)
}

// presentationClassification subdivides the score into five bands for display
func presentationClassification(score int) string {
	switch {
	case score >= 80:
		return "Likely Authentic"
	case score >= 60:
		return "Probably True"
	case score >= 40:
		return "Uncertain"
	case score >= 20:
		return "Probably False"
	default:
		return "Likely Fake"
	}
}

func presentationConfidence(score int) string {
	switch {
	case score >= 80:
		return "High"
	case score >= 60:
		return "Medium-High"
	case score >= 40:
		return "Medium"
	case score >= 20:
		return "Medium-Low"
	default:
		return "Low"
	}
}
