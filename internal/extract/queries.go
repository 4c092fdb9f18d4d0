package extract

import (
	"regexp"
	"strings"

	"github.com/ppiankov/factly/internal/model"
)

var numberPattern = regexp.MustCompile(`\b\d+(?:,\d{3})*(?:\.\d+)?(?:\s*(?:percent|%|million|billion))?\b`)

// SearchQueries builds up to maxQueries search strings for fact-checking a
// claim: the claim text itself, an entity+keyword combination, and an
// entity+number pairing when the claim carries figures.
func SearchQueries(claim *model.ExtractedClaim, maxQueries int) []string {
	if claim == nil || maxQueries <= 0 {
		return nil
	}

	var queries []string

	primary := claim.Text
	if len(primary) > 150 {
		primary = primary[:150]
	}
	queries = append(queries, primary)

	if len(claim.Entities) > 0 && len(claim.Keywords) > 0 {
		entityTerms := strings.Join(firstN(claim.Entities, 2), " ")
		keywordTerms := strings.Join(firstN(claim.Keywords, 3), " ")
		secondary := entityTerms + " " + keywordTerms
		if len(secondary) > 20 {
			queries = append(queries, secondary)
		}
	}

	if len(queries) < maxQueries {
		numbers := numberPattern.FindAllString(claim.Text, -1)
		if len(numbers) > 0 && len(claim.Entities) > 0 {
			queries = append(queries, claim.Entities[0]+" "+numbers[0])
		}
	}

	if len(queries) > maxQueries {
		queries = queries[:maxQueries]
	}
	return queries
}

func firstN(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}
