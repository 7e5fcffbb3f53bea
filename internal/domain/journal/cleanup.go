package journal

import "slices"

type entryKey struct {
	payee    string
	date     int64
	category string
}

func keyOf(e Entry) entryKey {
	return entryKey{payee: e.Payee, date: e.Date.Unix(), category: e.Category}
}

// Cleanup drops empty and duplicate rows and keeps only the most recent row per payee.
// The result is ordered by date, newest first; rows with equal dates keep their input order.
func Cleanup(entries []Entry) []Entry {
	seen := make(map[entryKey]bool, len(entries))
	filtered := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.IsEmpty() {
			continue
		}
		k := keyOf(e)
		if seen[k] {
			continue
		}
		seen[k] = true
		filtered = append(filtered, e)
	}

	slices.SortStableFunc(filtered, func(a, b Entry) int {
		return b.Date.Compare(a.Date)
	})

	payees := make(map[string]bool, len(filtered))
	cleaned := make([]Entry, 0, len(filtered))
	for _, e := range filtered {
		if payees[e.Payee] {
			continue
		}
		payees[e.Payee] = true
		cleaned = append(cleaned, e)
	}
	return cleaned
}
