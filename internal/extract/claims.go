package extract

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/ppiankov/factly/internal/model"
)

// DefaultPrimaryMinConfidence is the lowered floor Primary uses so short
// inputs still yield a claim
const DefaultPrimaryMinConfidence = 0.3

// Extractor finds verifiable claims in free text
type Extractor struct {
	pre          *Preprocessor
	primaryFloor float64
	factual      []*regexp.Regexp
	nonFactual   []*regexp.Regexp
	verifiable   []string
	prediction   []string
	comparison   []string
	causal       []string
	digitsRegex  *regexp.Regexp
}

// NewExtractor creates a claim extractor with the default pattern set
func NewExtractor(cfg model.ExtractConfig) *Extractor {
	primaryFloor := cfg.PrimaryMinConfidence
	if primaryFloor <= 0 {
		primaryFloor = DefaultPrimaryMinConfidence
	}
	return &Extractor{
		pre:          NewPreprocessor(cfg.MaxTextBytes),
		primaryFloor: primaryFloor,
		factual: []*regexp.Regexp{
			regexp.MustCompile(`\b\d{1,3}(?:,\d{3})+(?:\.\d+)?\b`),
			regexp.MustCompile(`(?i)\b\d+(?:\.\d+)?\s*(?:percent|million|billion|thousand)\b|\d+(?:\.\d+)?\s*%`),
			regexp.MustCompile(`(?i)\b(?:January|February|March|April|May|June|July|August|September|October|November|December)\s+\d{1,2}(?:,\s+\d{4})?\b`),
			regexp.MustCompile(`\b\d{4}\b`),
			regexp.MustCompile(`(?i)\b(?:according to|reported by|stated that|claimed that|announced)\b`),
		},
		nonFactual: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b(?:I think|I believe|in my opinion|personally|I feel)\b`),
			regexp.MustCompile(`(?i)\b(?:should|must|need to|ought to)\b.*\b(?:do|act|change)\b`),
			regexp.MustCompile(`(?i)\b(?:beautiful|ugly|good|bad|best|worst|amazing|terrible)\b.*\b(?:is|are|was|were)\b`),
			regexp.MustCompile(`\?\s*$`),
		},
		verifiable: []string{
			"announced", "reported", "confirmed", "denied", "stated", "claimed",
			"according to", "data shows", "statistics", "study", "research",
			"survey", "poll", "found", "discovered", "revealed", "documented",
		},
		prediction:  []string{"will", "going to", "predicted", "forecast", "expected to"},
		comparison:  []string{"than", "compared to", "more than", "less than", "equal to", "versus", "vs"},
		causal:      []string{"because", "caused by", "led to", "resulted in", "due to", "as a result"},
		digitsRegex: regexp.MustCompile(`\d`),
	}
}

// Extract returns the claims in text whose confidence reaches minConfidence,
// sorted by verifiability descending
func (e *Extractor) Extract(text string, minConfidence float64) []model.ExtractedClaim {
	if len(strings.TrimSpace(text)) < 10 {
		return nil
	}

	cleaned := e.pre.Clean(text, false)
	sentences := SplitSentences(cleaned)

	var claims []model.ExtractedClaim
	for i, sentence := range sentences {
		if len(strings.Fields(sentence)) < 3 {
			continue
		}

		claim := e.analyze(sentence, i, sentences)
		if claim.Confidence >= minConfidence {
			claims = append(claims, claim)
		}
	}

	sort.SliceStable(claims, func(i, j int) bool {
		return claims[i].Verifiability > claims[j].Verifiability
	})

	return claims
}

// Primary returns the single most verifiable claim, with a lowered
// confidence floor so short inputs still yield a claim. Nil when the text
// produces nothing usable.
func (e *Extractor) Primary(text string) *model.ExtractedClaim {
	claims := e.Extract(text, e.primaryFloor)
	if len(claims) == 0 {
		return nil
	}
	best := claims[0]
	for _, c := range claims[1:] {
		if c.Verifiability > best.Verifiability {
			best = c
		}
	}
	return &best
}

func (e *Extractor) analyze(sentence string, index int, all []string) model.ExtractedClaim {
	claimType := e.classify(sentence)
	confidence := e.factualScore(sentence) - e.nonFactualScore(sentence)
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}

	entities := extractEntities(sentence)
	keywords := extractKeywords(sentence)

	return model.ExtractedClaim{
		Text:          sentence,
		Type:          claimType,
		Confidence:    confidence,
		Context:       sentenceContext(index, all),
		Entities:      entities,
		Keywords:      keywords,
		Sentence:      index,
		Verifiability: e.verifiability(sentence, claimType, entities),
	}
}

// classify types a sentence; precedence quotation > prediction > comparison >
// causal > factual
func (e *Extractor) classify(sentence string) model.ClaimType {
	if strings.ContainsAny(sentence, "\"“”") {
		return model.ClaimTypeQuotation
	}

	lower := strings.ToLower(sentence)
	for _, word := range e.prediction {
		if strings.Contains(lower, word) {
			return model.ClaimTypePrediction
		}
	}
	for _, word := range e.comparison {
		if strings.Contains(lower, word) {
			return model.ClaimTypeComparison
		}
	}
	for _, word := range e.causal {
		if strings.Contains(lower, word) {
			return model.ClaimTypeCausal
		}
	}
	return model.ClaimTypeFactual
}

func (e *Extractor) factualScore(sentence string) float64 {
	score := 0.0
	for _, pattern := range e.factual {
		score += float64(len(pattern.FindAllString(sentence, -1))) * 0.2
	}
	if score > 1 {
		return 1
	}
	return score
}

func (e *Extractor) nonFactualScore(sentence string) float64 {
	score := 0.0
	for _, pattern := range e.nonFactual {
		if pattern.MatchString(sentence) {
			score += 0.3
		}
	}
	if score > 1 {
		return 1
	}
	return score
}

// verifiability estimates how checkable a claim is
func (e *Extractor) verifiability(sentence string, claimType model.ClaimType, entities []string) float64 {
	score := 0.5

	switch claimType {
	case model.ClaimTypeFactual:
		score += 0.2
	case model.ClaimTypeQuotation:
		score += 0.15
	case model.ClaimTypePrediction:
		score -= 0.1
	}

	entityBonus := float64(len(entities)) * 0.05
	if entityBonus > 0.2 {
		entityBonus = 0.2
	}
	score += entityBonus

	lower := strings.ToLower(sentence)
	for _, keyword := range e.verifiable {
		if strings.Contains(lower, keyword) {
			score += 0.1
			break
		}
	}

	if e.digitsRegex.MatchString(sentence) {
		score += 0.1
	}

	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

// sentenceContext joins a sentence with its neighbors
func sentenceContext(index int, sentences []string) string {
	start := index - 1
	if start < 0 {
		start = 0
	}
	end := index + 2
	if end > len(sentences) {
		end = len(sentences)
	}
	return strings.Join(sentences[start:end], " ")
}

// extractEntities finds runs of capitalized words
func extractEntities(sentence string) []string {
	var entities []string
	var current []string
	seen := make(map[string]bool)

	flush := func() {
		if len(current) >= 1 {
			entity := strings.Join(current, " ")
			if len(entity) > 2 && !seen[entity] {
				seen[entity] = true
				entities = append(entities, entity)
			}
		}
		current = nil
	}

	for _, word := range strings.Fields(sentence) {
		clean := strings.TrimFunc(word, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		if clean != "" && len(clean) > 1 && unicode.IsUpper([]rune(clean)[0]) {
			current = append(current, clean)
		} else {
			flush()
		}
	}
	flush()

	return entities
}

// extractKeywords keeps searchable terms: non-stopwords over 3 characters,
// or anything carrying a digit. At most 10.
func extractKeywords(sentence string) []string {
	var keywords []string
	for _, token := range Words(sentence) {
		hasDigit := strings.ContainsAny(token, "0123456789")
		if (!IsStopword(token) && len(token) > 3) || hasDigit {
			keywords = append(keywords, token)
			if len(keywords) == 10 {
				break
			}
		}
	}
	return keywords
}
