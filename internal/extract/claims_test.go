package extract

import (
	"strings"
	"testing"

	"github.com/ppiankov/factly/internal/model"
)

func TestExtract_FactualClaim(t *testing.T) {
	e := NewExtractor(model.ExtractConfig{})

	text := "The unemployment rate fell to 3.5 percent in September 2023, according to the Bureau of Labor Statistics."
	claims := e.Extract(text, 0.4)
	if len(claims) == 0 {
		t.Fatalf("expected a claim from statistical sentence")
	}

	claim := claims[0]
	if claim.Type != model.ClaimTypeFactual {
		t.Errorf("expected factual type, got %s", claim.Type)
	}
	if claim.Confidence < 0.4 {
		t.Errorf("expected confidence >= 0.4, got %f", claim.Confidence)
	}
	if claim.Verifiability <= 0.5 {
		t.Errorf("statistical attributed claim should be verifiable, got %f", claim.Verifiability)
	}
}

func TestExtract_FiltersOpinion(t *testing.T) {
	e := NewExtractor(model.ExtractConfig{})

	claims := e.Extract("I think pineapple pizza is amazing and everyone is wrong about it.", 0.4)
	if len(claims) != 0 {
		t.Errorf("opinion should not pass the confidence floor, got %d claims", len(claims))
	}
}

func TestExtract_SkipsShortSentences(t *testing.T) {
	e := NewExtractor(model.ExtractConfig{})

	claims := e.Extract("Yes. No. The population of France reached 68 million in 2023.", 0.2)
	for _, c := range claims {
		if len(strings.Fields(c.Text)) < 3 {
			t.Errorf("short sentence leaked through: %q", c.Text)
		}
	}
}

func TestClassify_Precedence(t *testing.T) {
	e := NewExtractor(model.ExtractConfig{})

	cases := []struct {
		sentence string
		want     model.ClaimType
	}{
		{`The senator said "we will cut taxes" during the rally.`, model.ClaimTypeQuotation},
		{"Analysts predicted the economy will grow next year.", model.ClaimTypePrediction},
		{"This year's harvest was larger than last year's.", model.ClaimTypeComparison},
		{"The outage was caused by a failed transformer.", model.ClaimTypeCausal},
		{"The company employs 5,000 people.", model.ClaimTypeFactual},
	}
	for _, tc := range cases {
		if got := e.classify(tc.sentence); got != tc.want {
			t.Errorf("classify(%q) = %s, want %s", tc.sentence, got, tc.want)
		}
	}
}

func TestExtract_SortedByVerifiability(t *testing.T) {
	e := NewExtractor(model.ExtractConfig{})

	text := "The GDP grew 2.1 percent in 2023, according to official statistics. " +
		"Some people have opinions about numbers and data in general terms."
	claims := e.Extract(text, 0.0)
	for i := 1; i < len(claims); i++ {
		if claims[i].Verifiability > claims[i-1].Verifiability {
			t.Errorf("claims not sorted by verifiability: %f after %f",
				claims[i].Verifiability, claims[i-1].Verifiability)
		}
	}
}

func TestPrimary(t *testing.T) {
	e := NewExtractor(model.ExtractConfig{})

	claim := e.Primary("The unemployment rate fell to 3.5 percent in September, according to official data.")
	if claim == nil {
		t.Fatalf("expected a primary claim")
	}
	if claim.Type != model.ClaimTypeFactual {
		t.Errorf("expected factual primary claim, got %s", claim.Type)
	}

	if got := e.Primary(""); got != nil {
		t.Errorf("empty input should yield no primary claim")
	}
	if got := e.Primary("short"); got != nil {
		t.Errorf("too-short input should yield no primary claim")
	}
}

func TestPrimary_ConfiguredFloor(t *testing.T) {
	text := "The unemployment rate fell to 3.5 percent in September, according to official data."

	// The default floor keeps the claim
	if got := NewExtractor(model.ExtractConfig{}).Primary(text); got == nil {
		t.Fatalf("expected a primary claim at the default floor")
	}

	// A stricter configured floor drops it
	strict := NewExtractor(model.ExtractConfig{PrimaryMinConfidence: 0.95})
	if got := strict.Primary(text); got != nil {
		t.Errorf("expected no primary claim above floor 0.95, got %+v", got)
	}
}

func TestExtractEntities(t *testing.T) {
	entities := extractEntities("The Bureau of Labor Statistics and President Smith reported the figures.")

	found := map[string]bool{}
	for _, e := range entities {
		found[e] = true
	}
	if !found["President Smith"] {
		t.Errorf("expected capitalized run 'President Smith', got %v", entities)
	}
	if found["figures"] {
		t.Errorf("lowercase word extracted as entity: %v", entities)
	}
}

func TestExtractKeywords(t *testing.T) {
	keywords := extractKeywords("The unemployment rate fell to 3.5 percent in 2023.")

	hasNumber := false
	for _, k := range keywords {
		if strings.ContainsAny(k, "0123456789") {
			hasNumber = true
		}
		if IsStopword(k) && !strings.ContainsAny(k, "0123456789") {
			t.Errorf("stopword kept as keyword: %q", k)
		}
	}
	if !hasNumber {
		t.Errorf("numeric tokens should always be kept, got %v", keywords)
	}
	if len(keywords) > 10 {
		t.Errorf("keywords not capped at 10: %d", len(keywords))
	}
}

func TestSearchQueries(t *testing.T) {
	claim := &model.ExtractedClaim{
		Text:     "The unemployment rate fell to 3.5 percent in September 2023, according to the Bureau of Labor Statistics.",
		Entities: []string{"Bureau of Labor Statistics", "September"},
		Keywords: []string{"unemployment", "rate", "percent"},
	}

	queries := SearchQueries(claim, 3)
	if len(queries) == 0 || len(queries) > 3 {
		t.Fatalf("expected 1-3 queries, got %d", len(queries))
	}
	if queries[0] != claim.Text {
		t.Errorf("first query should be the claim text")
	}
	for _, q := range queries {
		if len(q) > 160 {
			t.Errorf("query too long: %d chars", len(q))
		}
	}

	if got := SearchQueries(nil, 3); got != nil {
		t.Errorf("nil claim should yield no queries")
	}
}

func TestSearchQueries_TruncatesLongClaims(t *testing.T) {
	claim := &model.ExtractedClaim{Text: strings.Repeat("a", 400)}
	queries := SearchQueries(claim, 3)
	if len(queries) == 0 {
		t.Fatalf("expected a query")
	}
	if len(queries[0]) != 150 {
		t.Errorf("expected claim query truncated to 150 chars, got %d", len(queries[0]))
	}
}
