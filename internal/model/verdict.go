package model

import "strings"

// Verdict is the canonical verdict vocabulary. Upstream rating strings are
// normalized onto it once, here, so the aggregator, the cross-source analyzer,
// and the score fusion engine can never drift apart.
type Verdict string

const (
	VerdictTrue        Verdict = "true"
	VerdictMostlyTrue  Verdict = "mostly_true"
	VerdictHalfTrue    Verdict = "half_true"
	VerdictMixed       Verdict = "mixed"
	VerdictMostlyFalse Verdict = "mostly_false"
	VerdictFalse       Verdict = "false"
	VerdictMisleading  Verdict = "misleading"
	VerdictUnverified  Verdict = "unverified"
	VerdictSatire      Verdict = "satire"
)

var verdictScores = map[Verdict]float64{
	VerdictTrue:        1.0,
	VerdictMostlyTrue:  0.85,
	VerdictHalfTrue:    0.6,
	VerdictMixed:       0.5,
	VerdictMostlyFalse: 0.3,
	VerdictFalse:       0.0,
	VerdictMisleading:  0.4,
	VerdictUnverified:  0.5,
	VerdictSatire:      0.2,
}

var verdictAliases = map[string]Verdict{
	"true":           VerdictTrue,
	"correct":        VerdictTrue,
	"accurate":       VerdictTrue,
	"verified":       VerdictTrue,
	"mostly true":    VerdictMostlyTrue,
	"half true":      VerdictHalfTrue,
	"partly true":    VerdictHalfTrue,
	"partially true": VerdictHalfTrue,
	"partly false":   VerdictHalfTrue,
	"mixed":          VerdictMixed,
	"mixture":        VerdictMixed,
	"mostly false":   VerdictMostlyFalse,
	"false":          VerdictFalse,
	"incorrect":      VerdictFalse,
	"inaccurate":     VerdictFalse,
	"pants on fire":  VerdictFalse,
	"misleading":     VerdictMisleading,
	"unverified":     VerdictUnverified,
	"unproven":       VerdictUnverified,
	"satire":         VerdictSatire,
}

// NormalizeVerdict maps a raw upstream rating string onto the canonical
// vocabulary. Unknown or empty ratings normalize to unverified.
func NormalizeVerdict(raw string) Verdict {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return VerdictUnverified
	}
	if v, ok := verdictAliases[s]; ok {
		return v
	}
	// Fact-checkers decorate ratings ("Rated False", "False headline").
	// Scan aliases longest-first so "mostly false" wins over "false".
	best := VerdictUnverified
	bestLen := 0
	for alias, v := range verdictAliases {
		if len(alias) > bestLen && strings.Contains(s, alias) {
			best = v
			bestLen = len(alias)
		}
	}
	return best
}

// Score returns the [0,1] credibility score for a canonical verdict
func (v Verdict) Score() float64 {
	if s, ok := verdictScores[v]; ok {
		return s
	}
	return verdictScores[VerdictUnverified]
}

// VerdictScore normalizes a raw rating string and returns its score
func VerdictScore(raw string) float64 {
	return NormalizeVerdict(raw).Score()
}

// HasVerdict reports whether a raw rating string carries any signal at all
func HasVerdict(raw string) bool {
	return strings.TrimSpace(raw) != ""
}
