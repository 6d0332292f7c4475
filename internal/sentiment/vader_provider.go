package sentiment

import (
	"context"
	"regexp"
	"strings"

	"github.com/jonreiter/govader"
	"github.com/russross/blackfriday/v2"

	"github.com/nitinsingh33/SolysAI/internal/models"
)

var (
	markdownLinkRe = regexp.MustCompile(`\[(.*?)\]\(https?:\/\/[^\s\)]+\)`)
	bareURLRe      = regexp.MustCompile(`https?://\S+|www\.\S+`)
)

// VaderProvider is a local lexicon analyzer (VADER). Like the rule-based
// fallback it never fails, but it produces a graded score instead of the
// fixed ±0.6, so it works as a cheap offline analysis method.
type VaderProvider struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

func NewVaderProvider() *VaderProvider {
	return &VaderProvider{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

func (p *VaderProvider) Method() models.AnalysisMethod {
	return models.MethodVader
}

func (p *VaderProvider) Analyze(_ context.Context, text, _ string) (*models.ProviderResult, error) {
	plain := toPlainText(text)
	scores := p.analyzer.PolarityScores(plain)

	label := models.LabelNeutral
	switch {
	case scores.Compound >= 0.20:
		label = models.LabelPositive
	case scores.Compound <= -0.20:
		label = models.LabelNegative
	}

	result := &models.ProviderResult{
		SentimentLabel: label,
		SentimentScore: scores.Compound,
		// Share of sentiment-bearing tokens doubles as a confidence proxy.
		ConfidenceScore: 1 - scores.Neutral,
		BrandSentiment:  scores.Compound,
		Aspects:         map[string]models.AspectScore{},
		Themes:          []string{"general"},
	}
	result.Normalize(nil)
	return result, nil
}

// toPlainText renders any Markdown to HTML-free text and strips links so URLs
// do not skew the lexicon scoring.
func toPlainText(input string) string {
	rendered := blackfriday.Run([]byte(input), blackfriday.WithNoExtensions())
	plain := strings.Join(strings.Fields(string(rendered)), " ")
	plain = markdownLinkRe.ReplaceAllString(plain, "$1")
	return bareURLRe.ReplaceAllString(plain, "")
}
