package ingest

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const minCommentLength = 10

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	// Runs of directional-arrow glyphs and runs of decorative emoji are a
	// common spam signature in scraped comments.
	arrowRunRe = regexp.MustCompile(`[👆☝⬆↗↖⬇➡⬅\x{FE0F}]{2,}`)
	emojiRunRe = regexp.MustCompile(`[🔥💯🚀⚡]{3,}`)
)

// Normalizer cleans raw comment text before brand matching.
type Normalizer struct{}

func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// Clean collapses consecutive whitespace to a single space, strips spam glyph
// runs, and trims the result.
func (n *Normalizer) Clean(raw string) string {
	text := arrowRunRe.ReplaceAllString(raw, "")
	text = emojiRunRe.ReplaceAllString(text, "")
	text = whitespaceRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// Acceptable rejects text shorter than the minimum content length after
// cleaning. Rejected comments are dropped, not surfaced as errors.
func (n *Normalizer) Acceptable(text string) bool {
	return utf8.RuneCountInString(text) >= minCommentLength
}
