package sentiment

import (
	"strings"

	"github.com/nitinsingh33/SolysAI/internal/models"
)

// AspectExtractor detects which of the fixed EV aspect categories a comment
// talks about. Detection only; it never assigns aspect sentiment.
type AspectExtractor struct {
	lexicon models.AspectLexicon
}

func NewAspectExtractor(lexicon models.AspectLexicon) *AspectExtractor {
	return &AspectExtractor{lexicon: lexicon}
}

// Find returns aspect -> matched keywords for every aspect with at least one
// lexicon keyword present in the text.
func (e *AspectExtractor) Find(text string) map[string][]string {
	lower := strings.ToLower(text)

	found := make(map[string][]string)
	for aspect, keywords := range e.lexicon {
		for _, keyword := range keywords {
			if strings.Contains(lower, keyword) {
				found[aspect] = append(found[aspect], keyword)
			}
		}
	}
	return found
}
