// Package categorization clusters near-duplicate payees and propagates categories from the
// journal onto new transactions using an approximate string similarity ratio.
package categorization

import (
	"github.com/patrickmn/go-cache"
	"github.com/pmezard/go-difflib/difflib"
)

// Scorer computes a similarity ratio in [0, 1] between two payee strings
type Scorer interface {
	Score(a, b string) float64
}

// SequenceScorer scores strings with the matching-blocks ratio: twice the number of characters
// in the longest common matching blocks divided by the total length of both strings.
// Case and whitespace are compared as-is; callers normalise if they need to.
type SequenceScorer struct{}

// Score returns 1.0 for identical strings and 0.0 for strings with no common characters
func (SequenceScorer) Score(a, b string) float64 {
	return difflib.NewMatcher(splitChars(a), splitChars(b)).Ratio()
}

// splitChars turns a string into one element per character
func splitChars(s string) []string {
	runes := []rune(s)
	chars := make([]string, len(runes))
	for i, r := range runes {
		chars[i] = string(r)
	}
	return chars
}

// CachedScorer memoises the scores of another scorer.
// Statement batches repeat the same payees many times, so most pairs are seen more than once.
type CachedScorer struct {
	next  Scorer
	cache *cache.Cache
}

// NewCachedScorer wraps a scorer with an unbounded in-memory cache
func NewCachedScorer(next Scorer) *CachedScorer {
	return &CachedScorer{
		next:  next,
		cache: cache.New(cache.NoExpiration, 0),
	}
}

// Score returns the cached score for the ordered pair, computing it on first use
func (s *CachedScorer) Score(a, b string) float64 {
	key := a + "\x00" + b
	if v, ok := s.cache.Get(key); ok {
		return v.(float64)
	}

	score := s.next.Score(a, b)
	s.cache.SetDefault(key, score)
	return score
}

// Size returns the number of cached pairs
func (s *CachedScorer) Size() int {
	return s.cache.ItemCount()
}
