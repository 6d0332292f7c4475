package sentiment

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/nitinsingh33/SolysAI/internal/models"
	"github.com/nitinsingh33/SolysAI/internal/utils"
)

const (
	defaultBatchSize  = 50
	defaultBatchDelay = 1 * time.Second

	// Confidence recorded for aspects the lexicon detected but the provider
	// did not score; the aspect inherits the comment-level sentiment.
	detectedAspectConfidence = 0.3
)

// Analyzer dispatches comments through the provider chain and merges heuristic
// enrichment into the provider output. Providers are selected from an explicit
// dispatch table keyed by analysis method; any provider failure falls back to
// the rule-based analyzer, which never fails.
type Analyzer struct {
	providers   map[models.AnalysisMethod]Provider
	fallback    *RuleBased
	registry    models.BrandRegistry
	lexicon     models.AspectLexicon
	aspects     *AspectExtractor
	comparisons *ComparisonDetector
	sarcasm     *SarcasmDetector

	BatchSize  int
	BatchDelay time.Duration

	sleep func(time.Duration)
}

func NewAnalyzer(registry models.BrandRegistry, lexicon models.AspectLexicon, providers ...Provider) *Analyzer {
	table := make(map[models.AnalysisMethod]Provider, len(providers))
	for _, p := range providers {
		table[p.Method()] = p
	}

	return &Analyzer{
		providers:   table,
		fallback:    NewRuleBased(),
		registry:    registry,
		lexicon:     lexicon,
		aspects:     NewAspectExtractor(lexicon),
		comparisons: NewComparisonDetector(registry),
		sarcasm:     NewSarcasmDetector(),

		BatchSize:  defaultBatchSize,
		BatchDelay: defaultBatchDelay,

		sleep: time.Sleep,
	}
}

type itemOutcome struct {
	analysis models.SentimentAnalysis
	err      error
}

// AnalyzeBatch partitions comments into fixed-size groups, analyzes every
// comment within a group concurrently, and runs groups sequentially with a
// delay between them. Failed items are logged and excluded from the returned
// list; no failure propagates to the caller. Output order within a group is
// not guaranteed.
func (a *Analyzer) AnalyzeBatch(ctx context.Context, comments []models.Comment, method models.AnalysisMethod) []models.SentimentAnalysis {
	slog.Info("[BatchOrchestrator] starting batch analysis",
		slog.Int("comments", len(comments)),
		slog.String("method", string(method)))

	groups := utils.Chunk(comments, a.BatchSize)

	var succeeded []models.SentimentAnalysis
	var failed []string

	for i, group := range groups {
		outcomes := make([]itemOutcome, len(group))

		var wg sync.WaitGroup
		for j, comment := range group {
			wg.Add(1)
			go func(j int, comment models.Comment) {
				defer wg.Done()
				analysis, err := a.analyzeOne(ctx, comment, method)
				outcomes[j] = itemOutcome{analysis: analysis, err: err}
			}(j, comment)
		}
		wg.Wait()

		for j, outcome := range outcomes {
			if outcome.err != nil {
				failed = append(failed, group[j].ID)
				slog.Error("[BatchOrchestrator] analysis failed, item dropped",
					slog.String("comment_id", group[j].ID),
					slog.String("error", outcome.err.Error()))
				continue
			}
			succeeded = append(succeeded, outcome.analysis)
		}

		slog.Info("[BatchOrchestrator] processed batch",
			slog.Int("batch", i+1),
			slog.Int("batches", len(groups)))

		if i < len(groups)-1 {
			a.sleep(a.BatchDelay)
		}
	}

	slog.Info("[BatchOrchestrator] batch analysis complete",
		slog.Int("succeeded", len(succeeded)),
		slog.Int("failed", len(failed)))
	return succeeded
}

// analyzeOne routes a single comment through the requested provider, falling
// back to the rule-based analyzer on provider error, then merges heuristic
// enrichment. The recorded method is the one that actually produced the score.
func (a *Analyzer) analyzeOne(ctx context.Context, comment models.Comment, method models.AnalysisMethod) (models.SentimentAnalysis, error) {
	start := time.Now()
	brandName := a.registry.DisplayName(comment.BrandID)

	methodUsed := method
	var result *models.ProviderResult
	var err error

	if provider, ok := a.providers[method]; ok {
		result, err = provider.Analyze(ctx, comment.Text, brandName)
	} else {
		err = newProviderError(method, "no provider registered")
	}
	if err != nil {
		slog.Warn("[BatchOrchestrator] provider failed, using rule-based fallback",
			slog.String("comment_id", comment.ID),
			slog.String("method", string(method)),
			slog.String("error", err.Error()))

		methodUsed = models.MethodRuleBased
		result, err = a.fallback.Analyze(ctx, comment.Text, brandName)
		if err != nil {
			return models.SentimentAnalysis{}, err
		}
	}

	// Re-normalize regardless of which provider produced the result so the
	// score-range contract holds even for misbehaving providers.
	result.Normalize(a.lexicon)

	// Provider-returned aspect sentiment takes precedence; lexicon hits only
	// fill aspects the provider left unscored.
	if result.Aspects == nil {
		result.Aspects = make(map[string]models.AspectScore)
	}
	for aspect := range a.aspects.Find(comment.Text) {
		if _, ok := result.Aspects[aspect]; !ok {
			result.Aspects[aspect] = models.AspectScore{
				Sentiment:  result.SentimentScore,
				Confidence: detectedAspectConfidence,
			}
		}
	}

	comparison := a.comparisons.Detect(comment.Text)
	sarcasm := result.SarcasmDetected || a.sarcasm.Detect(comment.Text, result.SentimentScore)

	return models.SentimentAnalysis{
		CommentID:   comment.ID,
		CommentText: comment.Text,

		SentimentLabel:  result.SentimentLabel,
		SentimentScore:  result.SentimentScore,
		ConfidenceScore: result.ConfidenceScore,

		BrandID:        comment.BrandID,
		BrandSentiment: result.BrandSentiment,

		Emotions:        result.Emotions,
		DominantEmotion: result.DominantEmotion,
		Aspects:         result.Aspects,

		AnalysisMethod:   methodUsed,
		ProcessingTimeMS: time.Since(start).Milliseconds(),

		SarcasmDetected:     sarcasm,
		ComparisonMentioned: comparison.HasComparison,
		ComparedBrands:      comparison.MentionedBrands,

		KeywordsPositive: result.KeywordsPositive,
		KeywordsNegative: result.KeywordsNegative,
		Themes:           result.Themes,

		AnalyzedAt: time.Now().UTC(),
	}, nil
}
