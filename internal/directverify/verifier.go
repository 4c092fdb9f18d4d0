package directverify

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/ppiankov/factly/internal/model"
	"github.com/ppiankov/factly/internal/worker"
)

// Probe methods
const (
	MethodDatabaseLookup = "database_lookup"
	MethodOfficialRecord = "official_record"
	MethodCrossReference = "cross_reference"
	MethodPrimarySource  = "primary_source"
)

// officialDomains maps authoritative hosts referenced inside a claim to
// their source type and credibility
var officialDomains = map[string]struct {
	stype model.SourceType
	cred  float64
}{
	"census.gov":     {model.SourceTypeOfficial, 0.95},
	"bls.gov":        {model.SourceTypeOfficial, 0.95},
	"cdc.gov":        {model.SourceTypeOfficial, 0.95},
	"who.int":        {model.SourceTypeOfficial, 0.95},
	"nih.gov":        {model.SourceTypeOfficial, 0.95},
	"noaa.gov":       {model.SourceTypeOfficial, 0.95},
	"worldbank.org":  {model.SourceTypeOfficial, 0.90},
	"unstats.un.org": {model.SourceTypeOfficial, 0.90},
	"doi.org":        {model.SourceTypeAcademic, 0.85},
	"jstor.org":      {model.SourceTypeAcademic, 0.85},
	"nature.com":     {model.SourceTypeAcademic, 0.90},
	"science.org":    {model.SourceTypeAcademic, 0.90},
	"nber.org":       {model.SourceTypeAcademic, 0.90},
}

// factCheckOrgs recognizes fact-check publishers linked inside a claim
var factCheckOrgs = map[string]float64{
	"politifact.com": 0.95,
	"snopes.com":     0.93,
	"factcheck.org":  0.94,
	"apnews.com":     0.95,
	"reuters.com":    0.95,
}

// keywordRoutes sends claim topics to the institutions that publish the
// primary data
var keywordRoutes = []struct {
	name     string
	url      string
	method   string
	keywords []string
}{
	{"US Census Bureau", "https://www.census.gov/", MethodDatabaseLookup, []string{"population", "census", "demographic"}},
	{"Bureau of Labor Statistics", "https://www.bls.gov/", MethodOfficialRecord, []string{"employment", "unemployment", "jobs", "labor"}},
	{"CDC", "https://www.cdc.gov/", MethodOfficialRecord, []string{"health", "disease", "cdc", "pandemic", "vaccine"}},
	{"NOAA", "https://www.noaa.gov/", MethodOfficialRecord, []string{"climate", "temperature", "carbon", "emissions"}},
	{"Google Scholar", "https://scholar.google.com/", MethodPrimarySource, []string{"study", "research", "found that", "according to study"}},
}

var (
	statisticPattern = regexp.MustCompile(`(?i)\b\d{1,3}(?:,\d{3})*(?:\.\d+)?(?:\s*(?:million|billion|trillion|percent))?\b|\d+(?:\.\d+)?\s*%`)
	isoDatePattern   = regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}\b`)
	slashDatePattern = regexp.MustCompile(`\b\d{1,2}/\d{1,2}/\d{2,4}\b`)
	monthDatePattern = regexp.MustCompile(`(?i)\b(?:January|February|March|April|May|June|July|August|September|October|November|December)\s+\d{1,2}(?:,?\s+\d{4})?\b`)
	entityPattern    = regexp.MustCompile(`\b[A-Z][a-z]+(?:\s+[A-Z][a-z]+)*\b`)
	quotePattern     = regexp.MustCompile(`"([^"]+)"`)
	claimURLPattern  = regexp.MustCompile(`https?://\S+`)
)

// Verifier corroborates a claim directly against authoritative endpoints
type Verifier struct {
	httpClient *http.Client
	robots     *robotsChecker
	governor   *worker.Governor
	userAgent  string
	maxSources int
	useRobots  bool
}

// NewVerifier creates a direct verifier
func NewVerifier(cfg model.DirectVerifyConfig, governor *worker.Governor, userAgent string) *Verifier {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	maxSources := cfg.MaxSources
	if maxSources <= 0 {
		maxSources = 6
	}
	return &Verifier{
		httpClient: &http.Client{Timeout: timeout},
		robots:     newRobotsChecker(userAgent, timeout),
		governor:   governor,
		userAgent:  userAgent,
		maxSources: maxSources,
		useRobots:  cfg.RespectRobots,
	}
}

// Verify extracts the claim's verifiable data points, routes them to
// authoritative sources, and probes each source's reachability. Probe
// failures are recorded, never fatal.
func (v *Verifier) Verify(ctx context.Context, claim string) *model.DirectVerificationReport {
	dataPoints := ExtractDataPoints(claim)
	candidates := v.routeSources(claim)
	if len(candidates) > v.maxSources {
		candidates = candidates[:v.maxSources]
	}

	probes := make([]model.SourceProbe, 0, len(candidates))
	for _, cand := range candidates {
		if ctx.Err() != nil {
			break
		}
		probes = append(probes, v.probe(ctx, cand))
	}

	return buildReport(claim, dataPoints, probes)
}

// ExtractDataPoints pulls the individually checkable fragments out of a
// claim: statistics, dates, named entities, and quoted strings, each with
// surrounding context.
func ExtractDataPoints(claim string) []model.DataPoint {
	var points []model.DataPoint
	seen := make(map[string]bool)

	add := func(t model.DataPointType, value, context string) {
		key := string(t) + ":" + strings.ToLower(value)
		if value == "" || seen[key] {
			return
		}
		seen[key] = true
		points = append(points, model.DataPoint{Type: t, Value: value, Context: context})
	}

	for _, m := range statisticPattern.FindAllString(claim, -1) {
		if strings.TrimSpace(m) == "" {
			continue
		}
		add(model.DataPointStatistic, m, surrounding(claim, m))
	}

	for _, pattern := range []*regexp.Regexp{isoDatePattern, slashDatePattern, monthDatePattern} {
		for _, m := range pattern.FindAllString(claim, -1) {
			add(model.DataPointDate, m, surrounding(claim, m))
		}
	}

	for _, m := range entityPattern.FindAllString(claim, -1) {
		if len(m) > 3 {
			add(model.DataPointEntity, m, surrounding(claim, m))
		}
	}

	for _, m := range quotePattern.FindAllStringSubmatch(claim, -1) {
		add(model.DataPointQuotation, m[1], "Direct quotation requiring source verification")
	}

	return points
}

// surrounding returns up to 30 characters of context on each side of a match
func surrounding(text, match string) string {
	idx := strings.Index(text, match)
	if idx == -1 {
		idx = strings.Index(strings.ToLower(text), strings.ToLower(match))
	}
	if idx == -1 {
		return ""
	}
	start := idx - 30
	if start < 0 {
		start = 0
	}
	end := idx + len(match) + 30
	if end > len(text) {
		end = len(text)
	}
	return text[start:end]
}

type candidate struct {
	name        string
	url         string
	stype       model.SourceType
	method      string
	credibility float64
}

// routeSources picks the authoritative endpoints worth probing for a claim:
// URLs the claim itself cites, then keyword-routed institutions
func (v *Verifier) routeSources(claim string) []candidate {
	var candidates []candidate
	claimLower := strings.ToLower(claim)

	for _, raw := range claimURLPattern.FindAllString(claim, -1) {
		parsed, err := url.Parse(strings.TrimRight(raw, ".,;)"))
		if err != nil {
			continue
		}
		domain := strings.TrimPrefix(strings.ToLower(parsed.Hostname()), "www.")

		if cred, ok := factCheckOrgs[domain]; ok {
			candidates = append(candidates, candidate{
				name:        domain,
				url:         parsed.String(),
				stype:       model.SourceTypeFactCheck,
				method:      MethodCrossReference,
				credibility: cred,
			})
			continue
		}
		if info, ok := officialDomains[domain]; ok {
			candidates = append(candidates, candidate{
				name:        domain,
				url:         parsed.String(),
				stype:       info.stype,
				method:      MethodOfficialRecord,
				credibility: info.cred,
			})
		}
	}

	for _, route := range keywordRoutes {
		for _, kw := range route.keywords {
			if strings.Contains(claimLower, kw) {
				stype := model.SourceTypeOfficial
				cred := 0.95
				if route.method == MethodPrimarySource {
					stype = model.SourceTypeAcademic
					cred = 0.80
				}
				candidates = append(candidates, candidate{
					name:        route.name,
					url:         route.url,
					stype:       stype,
					method:      route.method,
					credibility: cred,
				})
				break
			}
		}
	}

	return candidates
}

// probe checks one source's reachability. Reachable scores 0.7, an error
// status 0.3, a network failure 0.4; robots.txt denial skips the request
// entirely at a neutral 0.5.
func (v *Verifier) probe(ctx context.Context, cand candidate) model.SourceProbe {
	probe := model.SourceProbe{
		Source:      cand.name,
		URL:         cand.url,
		SourceType:  cand.stype,
		Method:      cand.method,
		Credibility: cand.credibility,
		ProbedAt:    time.Now().UTC(),
	}

	if err := v.governor.Acquire(ctx, "directverify"); err != nil {
		probe.Score = 0.4
		probe.Error = fmt.Sprintf("rate governor: %v", err)
		return probe
	}

	if v.useRobots && !v.robots.allowed(ctx, cand.url) {
		probe.Score = 0.5
		probe.Error = "robots.txt disallows probing"
		return probe
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, cand.url, nil)
	if err != nil {
		probe.Score = 0.4
		probe.Error = err.Error()
		return probe
	}
	req.Header.Set("User-Agent", v.userAgent)

	resp, err := v.httpClient.Do(req)
	if err != nil {
		probe.Score = 0.4
		probe.Error = err.Error()
		return probe
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		probe.Score = 0.7
		probe.Verified = true
		probe.Evidence = append(probe.Evidence, fmt.Sprintf("Official source accessible: %s", cand.url))
	} else {
		probe.Score = 0.3
		probe.Error = fmt.Sprintf("unexpected status: %d", resp.StatusCode)
	}

	return probe
}

// buildReport folds probes into the credibility-weighted report
func buildReport(claim string, dataPoints []model.DataPoint, probes []model.SourceProbe) *model.DirectVerificationReport {
	overall := 0.0
	totalWeight := 0.0
	for _, p := range probes {
		overall += p.Score * p.Credibility
		totalWeight += p.Credibility
	}
	if totalWeight > 0 {
		overall /= totalWeight
	}

	primary, secondary := 0, 0
	confirmed := make(map[string]bool)
	var discrepancies []string
	for _, p := range probes {
		switch p.SourceType {
		case model.SourceTypeOfficial, model.SourceTypeAcademic:
			primary++
		default:
			secondary++
		}
		for _, value := range p.Confirmed {
			confirmed[strings.ToLower(value)] = true
		}
		if p.Error != "" && p.Score <= 0.3 {
			discrepancies = append(discrepancies, fmt.Sprintf("%s: %s", p.Source, p.Error))
		}
	}

	// Reachability alone does not confirm a specific fragment, so points
	// stay unverified unless a probe attributed them explicitly.
	var verified, unverified []string
	for _, dp := range dataPoints {
		if confirmed[strings.ToLower(dp.Value)] {
			verified = append(verified, dp.Value)
		} else {
			unverified = append(unverified, dp.Value)
		}
	}

	return &model.DirectVerificationReport{
		Claim:            claim,
		DataPoints:       dataPoints,
		Probes:           probes,
		OverallScore:     overall,
		VerifiedPoints:   verified,
		UnverifiedPoints: unverified,
		Discrepancies:    discrepancies,
		SourcesConsulted: len(probes),
		PrimarySources:   primary,
		SecondarySources: secondary,
		VerificationTime: time.Now().UTC(),
	}
}
