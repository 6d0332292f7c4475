package sentiment

import (
	"regexp"
	"strings"
)

var sarcasmPatterns = []*regexp.Regexp{
	regexp.MustCompile(`oh\s+great`),
	regexp.MustCompile(`just\s+perfect`),
	regexp.MustCompile(`wonderful`),
	regexp.MustCompile(`fantastic.*problem`),
	regexp.MustCompile(`love.*when.*fail`),
	regexp.MustCompile(`amazing.*not.*work`),
}

var sarcasmPositiveWords = []string{"great", "amazing", "perfect", "wonderful", "fantastic", "love"}

// SarcasmDetector cross-checks provider output with a phrase-pattern set and a
// contradiction heuristic: positive wording paired with a clearly negative
// computed score.
type SarcasmDetector struct{}

func NewSarcasmDetector() *SarcasmDetector {
	return &SarcasmDetector{}
}

func (d *SarcasmDetector) Detect(text string, sentimentScore float64) bool {
	lower := strings.ToLower(text)

	for _, pattern := range sarcasmPatterns {
		if pattern.MatchString(lower) {
			return true
		}
	}

	if sentimentScore < -0.3 {
		for _, word := range sarcasmPositiveWords {
			if strings.Contains(lower, word) {
				return true
			}
		}
	}
	return false
}
