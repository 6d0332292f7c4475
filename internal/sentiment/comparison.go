package sentiment

import (
	"regexp"
	"sort"
	"strings"

	"github.com/nitinsingh33/SolysAI/internal/models"
)

var comparisonPatterns = []*regexp.Regexp{
	regexp.MustCompile(`better than`),
	regexp.MustCompile(`worse than`),
	regexp.MustCompile(`compared to`),
	regexp.MustCompile(`vs\s+`),
	regexp.MustCompile(`versus`),
	regexp.MustCompile(`rather than`),
	regexp.MustCompile(`instead of`),
}

// Comparison is the result of cross-brand comparison detection.
type Comparison struct {
	HasComparison   bool
	MentionedBrands []string
}

// ComparisonDetector spots comments that weigh one brand against another,
// either by comparison phrasing or by mentioning two or more registry brands.
type ComparisonDetector struct {
	registry models.BrandRegistry
}

func NewComparisonDetector(registry models.BrandRegistry) *ComparisonDetector {
	return &ComparisonDetector{registry: registry}
}

// Detect lists every registry brand whose keyword appears in the text,
// regardless of the phrase check. The brand list is sorted so repeated calls
// return identical results.
func (d *ComparisonDetector) Detect(text string) Comparison {
	lower := strings.ToLower(text)

	hasPhrase := false
	for _, pattern := range comparisonPatterns {
		if pattern.MatchString(lower) {
			hasPhrase = true
			break
		}
	}

	var mentioned []string
	for _, brand := range d.registry {
		for _, keyword := range brand.Keywords {
			if strings.Contains(lower, strings.ToLower(keyword)) {
				mentioned = append(mentioned, brand.ID)
				break
			}
		}
	}
	sort.Strings(mentioned)

	return Comparison{
		HasComparison:   hasPhrase || len(mentioned) >= 2,
		MentionedBrands: mentioned,
	}
}
