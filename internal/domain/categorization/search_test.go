package categorization

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/statement-converter/internal/domain/journal"
)

func TestMatcher_Search(t *testing.T) {
	m := newTestMatcher()

	entries := []journal.Entry{
		{Payee: "Spotify AB", Category: "Music"},
		{Payee: "Netflix", Category: "Entertainment"},
		{Payee: "Spotify", Category: "Music"},
	}

	hits := m.Search(entries, "spot", 0)
	require.Len(t, hits, 2)
	assert.Equal(t, "Spotify", hits[0].Entry.Payee, "closest first")
	assert.Equal(t, "Spotify AB", hits[1].Entry.Payee)
	assert.LessOrEqual(t, hits[0].Distance, hits[1].Distance)
	assert.Greater(t, hits[0].Ratio, 0.0)

	limited := m.Search(entries, "spot", 1)
	require.Len(t, limited, 1)
	assert.Equal(t, "Spotify", limited[0].Entry.Payee)

	assert.Empty(t, m.Search(entries, "zzz", 0))
}

func TestMatcher_Search_Diacritics(t *testing.T) {
	m := newTestMatcher()
	entries := []journal.Entry{{Payee: "Café Central", Category: "Food"}}

	hits := m.Search(entries, "cafe", 0)
	require.Len(t, hits, 1)
	assert.Equal(t, "Food", hits[0].Entry.Category)
}
