package evidence

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/ppiankov/factly/internal/cache"
	"github.com/ppiankov/factly/internal/model"
	"github.com/ppiankov/factly/internal/source"
	"github.com/ppiankov/factly/internal/worker"
)

// Aggregator fans a claim out to every available source client and folds the
// results into a single scored collection
type Aggregator struct {
	clients     []source.Client
	store       cache.Store
	governor    *worker.Governor
	semaphore   chan struct{}
	callTimeout time.Duration
}

// NewAggregator creates an aggregator over the given clients. maxConcurrent
// bounds simultaneous upstream calls; callTimeout bounds each call.
func NewAggregator(clients []source.Client, store cache.Store, governor *worker.Governor, maxConcurrent int, callTimeout time.Duration) *Aggregator {
	if maxConcurrent <= 0 {
		maxConcurrent = 5
	}
	if callTimeout <= 0 {
		callTimeout = 30 * time.Second
	}
	return &Aggregator{
		clients:     clients,
		store:       store,
		governor:    governor,
		semaphore:   make(chan struct{}, maxConcurrent),
		callTimeout: callTimeout,
	}
}

// Clients returns the configured source clients
func (a *Aggregator) Clients() []source.Client {
	return a.clients
}

type sourceResult struct {
	name  string
	items []model.EvidenceItem
	err   error
}

// Search gathers evidence for a claim across all clients. Individual source
// failures degrade the collection instead of aborting it. With forceRefresh
// the collection and per-source caches are bypassed and rewritten.
func (a *Aggregator) Search(ctx context.Context, claim, language string, maxPerSource int, forceRefresh bool) (*model.EvidenceCollection, error) {
	if claim == "" {
		return nil, fmt.Errorf("search evidence: empty claim")
	}
	if maxPerSource <= 0 {
		maxPerSource = 10
	}

	collKey := cache.Key(model.CacheCategoryCollection, map[string]string{
		"claim":    claim,
		"language": language,
	})
	if !forceRefresh {
		var cached model.EvidenceCollection
		if cache.GetJSON(a.store, model.CacheCategoryCollection, collKey, &cached) {
			return &cached, nil
		}
	}

	results := make(chan sourceResult, len(a.clients))
	var wg sync.WaitGroup

	for _, client := range a.clients {
		wg.Add(1)
		go func(c source.Client) {
			defer wg.Done()

			select {
			case a.semaphore <- struct{}{}:
				defer func() { <-a.semaphore }()
			case <-ctx.Done():
				results <- sourceResult{name: c.Name(), err: ctx.Err()}
				return
			}

			items, err := a.searchOne(ctx, c, claim, language, maxPerSource, forceRefresh)
			results <- sourceResult{name: c.Name(), items: items, err: err}
		}(client)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	var allItems []model.EvidenceItem
	var errs []string
	var sourcesUsed []string

	for res := range results {
		if res.err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", res.name, res.err))
			continue
		}
		sourcesUsed = append(sourcesUsed, res.name)
		allItems = append(allItems, res.items...)
	}
	sort.Strings(sourcesUsed)
	sort.Strings(errs)

	// Stable order by combined credibility and relevance
	sort.SliceStable(allItems, func(i, j int) bool {
		si := allItems[i].Credibility*0.6 + allItems[i].Relevance*0.4
		sj := allItems[j].Credibility*0.6 + allItems[j].Relevance*0.4
		return si > sj
	})

	collection := &model.EvidenceCollection{
		Claim:        claim,
		Items:        allItems,
		Diversity:    diversityScore(allItems),
		Agreement:    agreementScore(allItems),
		CoverageGaps: coverageGaps(allItems, errs),
		FetchedAt:    time.Now().UTC(),
		Freshness:    freshness(allItems, time.Now().UTC()),
		SourcesUsed:  sourcesUsed,
		Errors:       errs,
	}

	cache.SetJSON(a.store, model.CacheCategoryCollection, collKey, collection)
	return collection, nil
}

// searchOne runs a single governed, cached, timeout-bounded client call
func (a *Aggregator) searchOne(ctx context.Context, c source.Client, claim, language string, maxResults int, forceRefresh bool) ([]model.EvidenceItem, error) {
	category := categoryFor(c.Type())
	key := cache.Key(category, map[string]string{
		"source":   c.Name(),
		"claim":    claim,
		"language": language,
		"max":      fmt.Sprintf("%d", maxResults),
	})

	if !forceRefresh {
		var cached []model.EvidenceItem
		if cache.GetJSON(a.store, category, key, &cached) {
			return cached, nil
		}
	}

	if err := a.governor.Acquire(ctx, c.Name()); err != nil {
		return nil, fmt.Errorf("rate governor: %w", err)
	}

	callCtx, cancel := context.WithTimeout(ctx, a.callTimeout)
	defer cancel()

	items, err := c.Search(callCtx, claim, language, maxResults)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []model.EvidenceItem{}
	}

	cache.SetJSON(a.store, category, key, items)
	return items, nil
}

// categoryFor maps a source type to its cache category
func categoryFor(t model.SourceType) string {
	switch t {
	case model.SourceTypeFactCheck:
		return model.CacheCategoryFactCheck
	case model.SourceTypeNews:
		return model.CacheCategoryNews
	case model.SourceTypeOfficial:
		return model.CacheCategoryOfficial
	case model.SourceTypeAcademic:
		return model.CacheCategoryAcademic
	default:
		return model.CacheCategoryRealtime
	}
}

// diversityScore rewards many distinct sources and source types. Source
// breadth and type breadth each contribute up to 0.5.
func diversityScore(items []model.EvidenceItem) float64 {
	if len(items) == 0 {
		return 0
	}

	sources := make(map[string]bool)
	types := make(map[model.SourceType]bool)
	for _, item := range items {
		sources[item.Source] = true
		types[item.SourceType] = true
	}

	sourcePart := float64(len(sources)) / float64(len(items)) * 0.5
	if sourcePart > 0.5 {
		sourcePart = 0.5
	}
	typePart := float64(len(types)) / 4.0 * 0.5
	if typePart > 0.5 {
		typePart = 0.5
	}
	return sourcePart + typePart
}

// agreementScore turns verdict variance into agreement. Fewer than two
// verdict-bearing items cannot measure agreement and score neutral.
func agreementScore(items []model.EvidenceItem) float64 {
	if len(items) == 0 {
		return 0
	}

	var verdicts []float64
	for _, item := range items {
		if model.HasVerdict(item.Verdict) {
			verdicts = append(verdicts, model.VerdictScore(item.Verdict))
		}
	}
	if len(verdicts) < 2 {
		return 0.5
	}

	mean := 0.0
	for _, v := range verdicts {
		mean += v
	}
	mean /= float64(len(verdicts))

	variance := 0.0
	for _, v := range verdicts {
		variance += (v - mean) * (v - mean)
	}
	variance /= float64(len(verdicts))

	agreement := 1.0 - variance*4
	if agreement < 0 {
		return 0
	}
	if agreement > 1 {
		return 1
	}
	return agreement
}

// coverageGaps names the evidence categories the search failed to fill
func coverageGaps(items []model.EvidenceItem, errs []string) []string {
	var gaps []string

	types := make(map[model.SourceType]bool)
	for _, item := range items {
		types[item.SourceType] = true
	}

	if !types[model.SourceTypeFactCheck] {
		gaps = append(gaps, "No professional fact-checks found")
	}
	if !types[model.SourceTypeNews] {
		gaps = append(gaps, "No news coverage found")
	}
	if len(items) < 3 {
		gaps = append(gaps, "Limited number of sources")
	}
	if len(errs) > 0 {
		gaps = append(gaps, "Some sources could not be queried")
	}

	return gaps
}

// freshness buckets the collection by the median age of dated items
func freshness(items []model.EvidenceItem, now time.Time) model.Freshness {
	var ages []time.Duration
	for _, item := range items {
		if item.PublishedAt != nil {
			ages = append(ages, now.Sub(*item.PublishedAt))
		}
	}
	if len(ages) == 0 {
		return model.FreshnessUnknown
	}

	sort.Slice(ages, func(i, j int) bool { return ages[i] < ages[j] })
	median := ages[len(ages)/2]
	if len(ages)%2 == 0 {
		median = (ages[len(ages)/2-1] + ages[len(ages)/2]) / 2
	}

	switch {
	case median <= 48*time.Hour:
		return model.FreshnessFresh
	case median <= 14*24*time.Hour:
		return model.FreshnessModerate
	default:
		return model.FreshnessStale
	}
}
