package categorization

import (
	"slices"

	"github.com/FACorreiaa/statement-converter/internal/domain/journal"
	"github.com/FACorreiaa/statement-converter/internal/domain/transaction"
)

// DefaultThreshold is the similarity a payee pair must exceed to be treated as the same payee
const DefaultThreshold = 0.8

// Cluster is a set of entry indices judged to be the same real-world payee.
// Indices are in input order.
type Cluster struct {
	Indices []int
}

// Matcher compares payees with a scorer against a fixed threshold
type Matcher struct {
	scorer    Scorer
	threshold float64
}

// NewMatcher creates a matcher. Pairs match when their score is strictly greater than threshold.
func NewMatcher(scorer Scorer, threshold float64) *Matcher {
	return &Matcher{scorer: scorer, threshold: threshold}
}

// Threshold returns the configured similarity threshold
func (m *Matcher) Threshold() float64 {
	return m.threshold
}

// Clusters partitions the journal by payee similarity.
// Entries are visited in order; an entry not yet claimed by an earlier cluster is compared with
// every entry of the journal, claimed ones included, and all entries above the threshold form
// its cluster. Clusters can therefore overlap. They are returned in discovery order.
func (m *Matcher) Clusters(entries []journal.Entry) []Cluster {
	processed := make(map[int]bool, len(entries))
	clusters := make([]Cluster, 0)

	for i, entry := range entries {
		if processed[i] {
			continue
		}

		var indices []int
		for j, other := range entries {
			if m.scorer.Score(entry.Payee, other.Payee) > m.threshold {
				indices = append(indices, j)
			}
		}

		if len(indices) == 0 {
			continue
		}

		for _, j := range indices {
			processed[j] = true
		}
		clusters = append(clusters, Cluster{Indices: indices})
	}

	return clusters
}

// Representative returns the most recent entry of the cluster; the first one wins on equal dates
func (c Cluster) Representative(entries []journal.Entry) journal.Entry {
	best := c.Indices[0]
	for _, j := range c.Indices[1:] {
		if entries[j].Date.After(entries[best].Date) {
			best = j
		}
	}
	return entries[best]
}

// Compact keeps one entry per similarity cluster, the most recent one
func (m *Matcher) Compact(entries []journal.Entry) []journal.Entry {
	clusters := m.Clusters(entries)

	compacted := make([]journal.Entry, 0, len(clusters))
	for _, c := range clusters {
		compacted = append(compacted, c.Representative(entries))
	}
	return compacted
}

// MatchCategories copies journal categories onto records with a similar payee.
// Every journal entry is scanned in order and each one above the threshold overwrites the
// category, so the last matching entry wins. Records without a match keep their category.
// The input slice is not modified; the number of records that matched is returned too.
func (m *Matcher) MatchCategories(records []transaction.Record, entries []journal.Entry) ([]transaction.Record, int) {
	out := slices.Clone(records)
	matched := 0

	for i := range out {
		hit := false
		for _, entry := range entries {
			if m.scorer.Score(out[i].Payee, entry.Payee) > m.threshold {
				out[i].Category = transaction.StrPtr(entry.Category)
				hit = true
			}
		}
		if hit {
			matched++
		}
	}

	return out, matched
}
