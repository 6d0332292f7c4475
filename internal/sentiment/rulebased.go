package sentiment

import (
	"context"
	"log/slog"
	"strings"

	"github.com/nitinsingh33/SolysAI/internal/models"
)

var (
	fallbackPositiveWords = []string{"good", "great", "excellent", "amazing", "love", "best", "awesome", "fantastic", "perfect"}
	fallbackNegativeWords = []string{"bad", "terrible", "awful", "hate", "worst", "horrible", "useless", "problem", "issue"}
)

// RuleBased is the deterministic keyword-count analyzer at the end of the
// fallback chain. It never fails.
type RuleBased struct{}

func NewRuleBased() *RuleBased {
	return &RuleBased{}
}

func (r *RuleBased) Method() models.AnalysisMethod {
	return models.MethodRuleBased
}

func (r *RuleBased) Analyze(_ context.Context, text, brand string) (*models.ProviderResult, error) {
	slog.Debug("[RuleBased] analyzing comment", slog.String("brand", brand))

	lower := strings.ToLower(text)

	var positive, negative []string
	for _, word := range fallbackPositiveWords {
		if strings.Contains(lower, word) {
			positive = append(positive, word)
		}
	}
	for _, word := range fallbackNegativeWords {
		if strings.Contains(lower, word) {
			negative = append(negative, word)
		}
	}

	label := models.LabelNeutral
	score := 0.0
	switch {
	case len(positive) > len(negative):
		label, score = models.LabelPositive, 0.6
	case len(negative) > len(positive):
		label, score = models.LabelNegative, -0.6
	}

	return &models.ProviderResult{
		SentimentLabel:   label,
		SentimentScore:   score,
		ConfidenceScore:  0.5,
		BrandSentiment:   score,
		Emotions:         map[string]float64{"neutral": 1.0},
		DominantEmotion:  "neutral",
		Aspects:          map[string]models.AspectScore{},
		KeywordsPositive: positive,
		KeywordsNegative: negative,
		Themes:           []string{"general"},
		SarcasmDetected:  false,
	}, nil
}
