package parser

import (
	"strings"

	"github.com/cloudflare/ahocorasick"
)

// marker detects whether any cell of a batch mentions one of its patterns.
// Optional extractions are switched on per batch, not per row.
type marker struct {
	matcher *ahocorasick.Matcher
	fold    bool
}

func newMarker(fold bool, patterns ...string) *marker {
	bytePatterns := make([][]byte, len(patterns))
	for i, p := range patterns {
		if fold {
			p = strings.ToLower(p)
		}
		bytePatterns[i] = []byte(p)
	}
	return &marker{matcher: ahocorasick.NewMatcher(bytePatterns), fold: fold}
}

// in reports whether a single text mentions the marker
func (m *marker) in(text string) bool {
	if text == "" {
		return false
	}
	if m.fold {
		text = strings.ToLower(text)
	}
	return len(m.matcher.MatchThreadSafe([]byte(text))) > 0
}

// anyIn reports whether at least one text of the batch mentions the marker
func (m *marker) anyIn(texts []string) bool {
	for _, t := range texts {
		if m.in(t) {
			return true
		}
	}
	return false
}
