package categorization

import (
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/statement-converter/internal/domain/journal"
	"github.com/FACorreiaa/statement-converter/internal/domain/transaction"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newTestMatcher() *Matcher {
	return NewMatcher(SequenceScorer{}, DefaultThreshold)
}

func TestMatcher_Compact(t *testing.T) {
	m := newTestMatcher()

	entries := []journal.Entry{
		{Payee: "Acme Corp", Date: date(2023, 1, 1), Category: "Food"},
		{Payee: "Acme Corp.", Date: date(2023, 3, 1), Category: "Groceries"},
		{Payee: "Other Co", Date: date(2023, 2, 1), Category: "Misc"},
	}

	got := m.Compact(entries)
	require.Len(t, got, 2)
	assert.Equal(t, entries[1], got[0], "most recent of the Acme cluster")
	assert.Equal(t, entries[2], got[1])
}

func TestMatcher_Compact_TieKeepsFirst(t *testing.T) {
	m := newTestMatcher()

	entries := []journal.Entry{
		{Payee: "Spotify", Date: date(2023, 3, 1), Category: "Music"},
		{Payee: "Spotify", Date: date(2023, 3, 1), Category: "Subscriptions"},
	}

	got := m.Compact(entries)
	require.Len(t, got, 1)
	assert.Equal(t, "Music", got[0].Category)
}

func TestMatcher_Compact_Empty(t *testing.T) {
	m := newTestMatcher()
	assert.Empty(t, m.Compact(nil))
}

func TestMatcher_Clusters_Overlap(t *testing.T) {
	m := newTestMatcher()

	// a~b and b~c are above the threshold, a~c is not
	entries := []journal.Entry{
		{Payee: "abcdefgh", Date: date(2023, 1, 1)},
		{Payee: "abcdefghij", Date: date(2023, 1, 2)},
		{Payee: "abcdefghijklm", Date: date(2023, 1, 3)},
	}

	clusters := m.Clusters(entries)
	require.Len(t, clusters, 2)
	assert.Equal(t, []int{0, 1}, clusters[0].Indices)
	assert.Equal(t, []int{1, 2}, clusters[1].Indices)

	compacted := m.Compact(entries)
	require.Len(t, compacted, 2)
	assert.Equal(t, "abcdefghij", compacted[0].Payee)
	assert.Equal(t, "abcdefghijklm", compacted[1].Payee)
}

func TestMatcher_Clusters_ThresholdIsStrict(t *testing.T) {
	// a score equal to the threshold does not match, not even an entry with itself
	m := NewMatcher(SequenceScorer{}, 1.0)
	entries := []journal.Entry{{Payee: "Acme"}}
	assert.Empty(t, m.Clusters(entries))
}

func TestMatcher_MatchCategories(t *testing.T) {
	m := newTestMatcher()

	entries := []journal.Entry{
		{Payee: "Netflix", Date: date(2023, 1, 1), Category: "Entertainment"},
		{Payee: "Netflix.", Date: date(2023, 2, 1), Category: "Subscriptions"},
		{Payee: "Rent Co", Date: date(2023, 2, 1), Category: ""},
	}

	records := []transaction.Record{
		{Payee: "Netflix", Category: transaction.StrPtr("Media")},
		{Payee: "Spotify", Category: transaction.StrPtr("Music")},
		{Payee: "Rent Co", Category: transaction.StrPtr("Housing")},
		{Payee: "Bakery"},
	}

	got, matched := m.MatchCategories(records, entries)
	require.Len(t, got, 4)
	assert.Equal(t, 2, matched)

	require.NotNil(t, got[0].Category)
	assert.Equal(t, "Subscriptions", *got[0].Category, "last matching entry wins")

	require.NotNil(t, got[1].Category)
	assert.Equal(t, "Music", *got[1].Category, "unmatched records keep their category")

	assert.Nil(t, got[2].Category, "empty journal category is copied as missing")
	assert.Nil(t, got[3].Category)

	require.NotNil(t, records[0].Category)
	assert.Equal(t, "Media", *records[0].Category, "input is not modified")
}

func TestMatcher_MatchCategories_EmptyJournal(t *testing.T) {
	m := newTestMatcher()
	records := []transaction.Record{{Payee: "Netflix", Category: transaction.StrPtr("Media")}}

	got, matched := m.MatchCategories(records, nil)
	assert.Equal(t, 0, matched)
	assert.Equal(t, records, got)
}

func fakeEntries(n int) []journal.Entry {
	faker := gofakeit.New(42)
	entries := make([]journal.Entry, n)
	for i := range entries {
		entries[i] = journal.Entry{
			Payee:    faker.Company(),
			Date:     faker.DateRange(date(2020, 1, 1), date(2024, 1, 1)),
			Category: faker.RandomString([]string{"Food", "Transport", "Shopping", "Utilities"}),
		}
	}
	return entries
}

func BenchmarkMatcher_Compact(b *testing.B) {
	entries := fakeEntries(300)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m := NewMatcher(NewCachedScorer(SequenceScorer{}), DefaultThreshold)
		m.Compact(entries)
	}
}

func BenchmarkMatcher_MatchCategories(b *testing.B) {
	entries := fakeEntries(300)
	records := make([]transaction.Record, 200)
	for i := range records {
		records[i] = transaction.Record{Payee: entries[(i*7)%len(entries)].Payee}
	}

	m := NewMatcher(NewCachedScorer(SequenceScorer{}), DefaultThreshold)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m.MatchCategories(records, entries)
	}
}
