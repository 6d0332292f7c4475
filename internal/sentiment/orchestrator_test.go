package sentiment

import (
	"context"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nitinsingh33/SolysAI/internal/models"
)

// stubProvider returns a canned result, or a ProviderError for texts listed in
// failFor. It records how many calls it served.
type stubProvider struct {
	method  models.AnalysisMethod
	result  models.ProviderResult
	failFor map[string]bool
	calls   atomic.Int64
}

func (s *stubProvider) Method() models.AnalysisMethod { return s.method }

func (s *stubProvider) Analyze(_ context.Context, text, _ string) (*models.ProviderResult, error) {
	s.calls.Add(1)
	if s.failFor[text] {
		return nil, newProviderError(s.method, "simulated outage")
	}

	// Deep copy: the orchestrator mutates result maps in place, and batch items
	// are analyzed concurrently.
	out := s.result
	out.Emotions = make(map[string]float64, len(s.result.Emotions))
	for k, v := range s.result.Emotions {
		out.Emotions[k] = v
	}
	out.Aspects = make(map[string]models.AspectScore, len(s.result.Aspects))
	for k, v := range s.result.Aspects {
		out.Aspects[k] = v
	}
	return &out, nil
}

func neutralResult() models.ProviderResult {
	return models.ProviderResult{
		SentimentLabel:  models.LabelNeutral,
		SentimentScore:  0.1,
		ConfidenceScore: 0.9,
		Emotions:        map[string]float64{"trust": 0.5},
		DominantEmotion: "trust",
		Aspects:         map[string]models.AspectScore{},
	}
}

func makeComments(n int) []models.Comment {
	comments := make([]models.Comment, n)
	for i := range comments {
		comments[i] = models.Comment{
			ID:      "comment-" + strconv.Itoa(i),
			Text:    "ride quality is fine",
			BrandID: "ola_electric",
		}
	}
	return comments
}

func newTestAnalyzer(providers ...Provider) *Analyzer {
	a := NewAnalyzer(models.DefaultBrandRegistry(), models.DefaultAspectLexicon(), providers...)
	a.sleep = func(time.Duration) {}
	return a
}

func TestAnalyzer_BatchPartitioning(t *testing.T) {
	provider := &stubProvider{method: models.MethodOpenAI, result: neutralResult()}
	analyzer := newTestAnalyzer(provider)
	analyzer.BatchSize = 50

	var delays int
	analyzer.sleep = func(d time.Duration) {
		delays++
		assert.Equal(t, analyzer.BatchDelay, d)
	}

	results := analyzer.AnalyzeBatch(context.Background(), makeComments(120), models.MethodOpenAI)

	assert.Len(t, results, 120)
	assert.EqualValues(t, 120, provider.calls.Load())
	// 120 comments at batch size 50 -> groups of 50/50/20, delays only between groups.
	assert.Equal(t, 2, delays)
}

func TestAnalyzer_NoDelayForSingleBatch(t *testing.T) {
	provider := &stubProvider{method: models.MethodOpenAI, result: neutralResult()}
	analyzer := newTestAnalyzer(provider)

	var delays int
	analyzer.sleep = func(time.Duration) { delays++ }

	results := analyzer.AnalyzeBatch(context.Background(), makeComments(10), models.MethodOpenAI)
	assert.Len(t, results, 10)
	assert.Zero(t, delays)
}

func TestAnalyzer_FallbackOnProviderFailure(t *testing.T) {
	comments := []models.Comment{
		{ID: "c0", Text: "I love the amazing range", BrandID: "ola_electric"},
		{ID: "c1", Text: "decent commuter option overall", BrandID: "ola_electric"},
		{ID: "c2", Text: "ride quality is fine", BrandID: "ola_electric"},
		{ID: "c3", Text: "waiting period was long", BrandID: "ola_electric"},
		{ID: "c4", Text: "delivery took a while", BrandID: "ola_electric"},
	}
	provider := &stubProvider{
		method:  models.MethodOpenAI,
		result:  neutralResult(),
		failFor: map[string]bool{"I love the amazing range": true},
	}
	analyzer := newTestAnalyzer(provider)

	results := analyzer.AnalyzeBatch(context.Background(), comments, models.MethodOpenAI)
	require.Len(t, results, 5)

	byID := make(map[string]models.SentimentAnalysis, len(results))
	for _, r := range results {
		byID[r.CommentID] = r
	}

	fallback := byID["c0"]
	assert.Equal(t, models.MethodRuleBased, fallback.AnalysisMethod)
	assert.Equal(t, models.LabelPositive, fallback.SentimentLabel)
	assert.Equal(t, 0.6, fallback.SentimentScore)

	for _, id := range []string{"c1", "c2", "c3", "c4"} {
		assert.Equal(t, models.MethodOpenAI, byID[id].AnalysisMethod, "comment %s", id)
	}
}

func TestAnalyzer_UnregisteredMethodFallsBack(t *testing.T) {
	analyzer := newTestAnalyzer() // empty dispatch table

	results := analyzer.AnalyzeBatch(context.Background(), makeComments(3), models.MethodGemini)
	require.Len(t, results, 3)
	for _, r := range results {
		assert.Equal(t, models.MethodRuleBased, r.AnalysisMethod)
	}
}

func TestAnalyzer_AspectMerge(t *testing.T) {
	provided := neutralResult()
	provided.SentimentScore = 0.8
	provided.Aspects = map[string]models.AspectScore{
		"battery": {Sentiment: -0.4, Confidence: 0.9},
	}
	provider := &stubProvider{method: models.MethodOpenAI, result: provided}
	analyzer := newTestAnalyzer(provider)

	// Mentions battery (provider-scored) and price (lexicon-detected only).
	comments := []models.Comment{{
		ID:      "c0",
		Text:    "battery is weak for the price",
		BrandID: "ola_electric",
	}}

	results := analyzer.AnalyzeBatch(context.Background(), comments, models.MethodOpenAI)
	require.Len(t, results, 1)
	aspects := results[0].Aspects

	// Provider judgment wins for aspects it scored.
	assert.Equal(t, models.AspectScore{Sentiment: -0.4, Confidence: 0.9}, aspects["battery"])
	// Lexicon-detected aspects inherit the comment-level score at low confidence.
	assert.Equal(t, models.AspectScore{Sentiment: 0.8, Confidence: 0.3}, aspects["price"])
}

func TestAnalyzer_EnrichmentFlags(t *testing.T) {
	negative := neutralResult()
	negative.SentimentLabel = models.LabelNegative
	negative.SentimentScore = -0.7
	provider := &stubProvider{method: models.MethodOpenAI, result: negative}
	analyzer := newTestAnalyzer(provider)

	comments := []models.Comment{{
		ID:      "c0",
		Text:    "the ather 450x is better than the ola s1, love how that one just works",
		BrandID: "ather_energy",
	}}

	results := analyzer.AnalyzeBatch(context.Background(), comments, models.MethodOpenAI)
	require.Len(t, results, 1)

	got := results[0]
	assert.True(t, got.ComparisonMentioned)
	assert.Equal(t, []string{"ather_energy", "ola_electric"}, got.ComparedBrands)
	// Positive wording against a strongly negative score trips the
	// contradiction heuristic.
	assert.True(t, got.SarcasmDetected)
}

func TestAnalyzer_MisbehavingProviderClamped(t *testing.T) {
	wild := models.ProviderResult{
		SentimentLabel:  models.LabelPositive,
		SentimentScore:  14.0,
		ConfidenceScore: -3.0,
		BrandSentiment:  -22.0,
		Emotions:        map[string]float64{"joy": 0.4, "vibes": 1.0},
		DominantEmotion: "vibes",
		Aspects: map[string]models.AspectScore{
			"battery": {Sentiment: 5.0, Confidence: 9.0},
			"bogus":   {Sentiment: 0.1, Confidence: 0.1},
		},
	}
	provider := &stubProvider{method: models.MethodOpenAI, result: wild}
	analyzer := newTestAnalyzer(provider)

	results := analyzer.AnalyzeBatch(context.Background(), makeComments(1), models.MethodOpenAI)
	require.Len(t, results, 1)

	got := results[0]
	assert.Equal(t, 1.0, got.SentimentScore)
	assert.Equal(t, 0.0, got.ConfidenceScore)
	assert.Equal(t, -1.0, got.BrandSentiment)
	assert.Equal(t, map[string]float64{"joy": 0.4}, got.Emotions)
	assert.Empty(t, got.DominantEmotion)
	assert.Equal(t, models.AspectScore{Sentiment: 1.0, Confidence: 1.0}, got.Aspects["battery"])
	assert.NotContains(t, got.Aspects, "bogus")
}
