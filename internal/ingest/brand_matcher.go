package ingest

import (
	"strings"

	"github.com/nitinsingh33/SolysAI/internal/models"
)

// BrandMatch is one registry brand found in a comment, with the keywords that
// matched it.
type BrandMatch struct {
	BrandID  string
	Keywords []string
}

// BrandMatcher detects registered brand mentions in comment text. The registry
// is read-only and shared; matching is a case-insensitive substring test of
// every keyword.
type BrandMatcher struct {
	registry models.BrandRegistry
}

func NewBrandMatcher(registry models.BrandRegistry) *BrandMatcher {
	return &BrandMatcher{registry: registry}
}

// Match returns every brand with at least one matching keyword, in registry
// order. An empty result means the comment is discarded by the pipeline.
func (m *BrandMatcher) Match(text string) []BrandMatch {
	lower := strings.ToLower(text)

	var matches []BrandMatch
	for _, brand := range m.registry {
		var found []string
		for _, keyword := range brand.Keywords {
			if strings.Contains(lower, strings.ToLower(keyword)) {
				found = append(found, keyword)
			}
		}
		if len(found) > 0 {
			matches = append(matches, BrandMatch{BrandID: brand.ID, Keywords: found})
		}
	}
	return matches
}

// Primary selects the brand a multi-brand comment is tagged with: the match
// holding the longest matched keyword wins, ties broken by registry order.
// A longer keyword is a more specific mention, which makes the tag independent
// of how the registry happens to be ordered.
func Primary(matches []BrandMatch) (BrandMatch, bool) {
	if len(matches) == 0 {
		return BrandMatch{}, false
	}

	best := matches[0]
	bestLen := longestKeyword(best.Keywords)
	for _, m := range matches[1:] {
		if l := longestKeyword(m.Keywords); l > bestLen {
			best, bestLen = m, l
		}
	}
	return best, true
}

func longestKeyword(keywords []string) int {
	max := 0
	for _, k := range keywords {
		if len(k) > max {
			max = len(k)
		}
	}
	return max
}
