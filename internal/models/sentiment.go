package models

import "time"

type SentimentLabel string

const (
	LabelPositive SentimentLabel = "positive"
	LabelNegative SentimentLabel = "negative"
	LabelNeutral  SentimentLabel = "neutral"
	LabelMixed    SentimentLabel = "mixed"
)

type AnalysisMethod string

const (
	MethodOpenAI    AnalysisMethod = "openai"
	MethodGemini    AnalysisMethod = "gemini"
	MethodVader     AnalysisMethod = "vader"
	MethodRuleBased AnalysisMethod = "rule_based"
)

// knownEmotions is the fixed emotion vocabulary. "neutral" is included because
// the rule-based analyzer reports {"neutral": 1.0} when it has no emotion signal.
var knownEmotions = map[string]struct{}{
	"joy": {}, "anger": {}, "fear": {}, "sadness": {},
	"surprise": {}, "disgust": {}, "trust": {}, "anticipation": {},
	"neutral": {},
}

func KnownEmotion(name string) bool {
	_, ok := knownEmotions[name]
	return ok
}

// AspectScore is per-aspect sentiment as reported by a provider.
type AspectScore struct {
	Sentiment  float64 `json:"sentiment" dynamodbav:"sentiment"`
	Confidence float64 `json:"confidence" dynamodbav:"confidence"`
}

// ProviderResult is the structured judgment returned by an analysis provider.
// The JSON tags are the wire contract every provider must produce.
type ProviderResult struct {
	SentimentLabel   SentimentLabel         `json:"sentiment_label"`
	SentimentScore   float64                `json:"sentiment_score"`
	ConfidenceScore  float64                `json:"confidence_score"`
	BrandSentiment   float64                `json:"brand_sentiment"`
	Emotions         map[string]float64     `json:"emotions"`
	DominantEmotion  string                 `json:"dominant_emotion,omitempty"`
	Aspects          map[string]AspectScore `json:"aspects"`
	KeywordsPositive []string               `json:"keywords_positive"`
	KeywordsNegative []string               `json:"keywords_negative"`
	Themes           []string               `json:"themes"`
	SarcasmDetected  bool                   `json:"sarcasm_detected"`
}

// Normalize enforces the result contract in place: scores are clamped to their
// documented ranges and emotion/aspect names outside the fixed vocabularies are
// dropped rather than rejected.
func (r *ProviderResult) Normalize(lexicon AspectLexicon) {
	r.SentimentScore = clamp(r.SentimentScore, -1, 1)
	r.BrandSentiment = clamp(r.BrandSentiment, -1, 1)
	r.ConfidenceScore = clamp(r.ConfidenceScore, 0, 1)

	for name := range r.Emotions {
		if !KnownEmotion(name) {
			delete(r.Emotions, name)
		}
	}
	if r.DominantEmotion != "" && !KnownEmotion(r.DominantEmotion) {
		r.DominantEmotion = ""
	}
	for name, score := range r.Aspects {
		if !lexicon.Known(name) {
			delete(r.Aspects, name)
			continue
		}
		score.Sentiment = clamp(score.Sentiment, -1, 1)
		score.Confidence = clamp(score.Confidence, 0, 1)
		r.Aspects[name] = score
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// SentimentAnalysis is one completed analysis pass over a retained comment.
// Records are append-only; a re-analysis produces a new record rather than
// mutating an earlier one.
type SentimentAnalysis struct {
	CommentID   string `json:"comment_id" dynamodbav:"comment_id"`
	CommentText string `json:"comment_text" dynamodbav:"comment_text"`

	SentimentLabel  SentimentLabel `json:"sentiment_label" dynamodbav:"sentiment_label"`
	SentimentScore  float64        `json:"sentiment_score" dynamodbav:"sentiment_score"`
	ConfidenceScore float64        `json:"confidence_score" dynamodbav:"confidence_score"`

	BrandID        string  `json:"brand_id" dynamodbav:"brand_id"`
	BrandSentiment float64 `json:"brand_sentiment" dynamodbav:"brand_sentiment"`

	Emotions        map[string]float64 `json:"emotions,omitempty" dynamodbav:"emotions,omitempty"`
	DominantEmotion string             `json:"dominant_emotion,omitempty" dynamodbav:"dominant_emotion,omitempty"`

	Aspects map[string]AspectScore `json:"aspects,omitempty" dynamodbav:"aspects,omitempty"`

	AnalysisMethod   AnalysisMethod `json:"analysis_method" dynamodbav:"analysis_method"`
	ModelVersion     string         `json:"model_version,omitempty" dynamodbav:"model_version,omitempty"`
	ProcessingTimeMS int64          `json:"processing_time_ms" dynamodbav:"processing_time_ms"`

	SarcasmDetected     bool     `json:"sarcasm_detected" dynamodbav:"sarcasm_detected"`
	ComparisonMentioned bool     `json:"comparison_mentioned" dynamodbav:"comparison_mentioned"`
	ComparedBrands      []string `json:"compared_brands,omitempty" dynamodbav:"compared_brands,omitempty"`

	KeywordsPositive []string `json:"keywords_positive,omitempty" dynamodbav:"keywords_positive,omitempty"`
	KeywordsNegative []string `json:"keywords_negative,omitempty" dynamodbav:"keywords_negative,omitempty"`
	Themes           []string `json:"themes,omitempty" dynamodbav:"themes,omitempty"`

	AnalyzedAt time.Time `json:"analyzed_at" dynamodbav:"analyzed_at"`
}
