package categorization

import (
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/FACorreiaa/statement-converter/internal/domain/journal"
)

// SearchHit is a journal entry whose payee contains the query as a fuzzy subsequence
type SearchHit struct {
	Entry    journal.Entry
	Distance int     // Levenshtein distance between query and payee
	Ratio    float64 // Similarity ratio used by compaction and category matching
}

// Search looks up journal payees matching a query, ignoring case and diacritics.
// Hits are ordered by distance, closest first. A limit <= 0 returns every hit.
func (m *Matcher) Search(entries []journal.Entry, query string, limit int) []SearchHit {
	payees := make([]string, len(entries))
	for i, e := range entries {
		payees[i] = e.Payee
	}

	ranks := fuzzy.RankFindNormalizedFold(query, payees)
	sort.Stable(ranks)

	if limit > 0 && limit < len(ranks) {
		ranks = ranks[:limit]
	}

	hits := make([]SearchHit, 0, len(ranks))
	for _, r := range ranks {
		entry := entries[r.OriginalIndex]
		hits = append(hits, SearchHit{
			Entry:    entry,
			Distance: r.Distance,
			Ratio:    m.scorer.Score(query, entry.Payee),
		})
	}
	return hits
}
