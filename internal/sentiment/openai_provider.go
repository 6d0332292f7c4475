package sentiment

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/nitinsingh33/SolysAI/internal/models"
)

const (
	openAIModel       = openai.GPT3Dot5Turbo1106
	openAISystemRole  = "You are an expert at analyzing sentiment in Indian electric vehicle discussions. Respond only with valid JSON."
	openAITemperature = 0.1
	openAIMaxTokens   = 800
)

// OpenAIProvider is the primary externally-hosted analysis provider.
type OpenAIProvider struct {
	client  *openai.Client
	lexicon models.AspectLexicon
}

func NewOpenAIProvider(client *openai.Client, lexicon models.AspectLexicon) *OpenAIProvider {
	return &OpenAIProvider{client: client, lexicon: lexicon}
}

func (p *OpenAIProvider) Method() models.AnalysisMethod {
	return models.MethodOpenAI
}

func (p *OpenAIProvider) Analyze(ctx context.Context, text, brand string) (*models.ProviderResult, error) {
	if p.client == nil {
		return nil, newProviderError(models.MethodOpenAI, "client not configured")
	}

	start := time.Now()
	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       openAIModel,
		Temperature: openAITemperature,
		MaxTokens:   openAIMaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: openAISystemRole},
			{Role: openai.ChatMessageRoleUser, Content: buildAnalysisPrompt(text, brand)},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return nil, newProviderError(models.MethodOpenAI, "chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, newProviderError(models.MethodOpenAI, "empty completion response")
	}

	slog.Debug("[OpenAIProvider] completion received",
		slog.Duration("elapsed", time.Since(start)),
		slog.String("finish_reason", string(resp.Choices[0].FinishReason)))

	result, err := parseProviderJSON(resp.Choices[0].Message.Content, p.lexicon)
	if err != nil {
		return nil, newProviderError(models.MethodOpenAI, "unparsable response: %w", err)
	}
	return result, nil
}

// buildAnalysisPrompt asks for a JSON object carrying exactly the fields of
// the provider contract, given the comment text and brand display name.
func buildAnalysisPrompt(text, brand string) string {
	return fmt.Sprintf(`Analyze the sentiment of this comment about the EV brand %q:

Comment: %q

Provide a JSON response with:
1. sentiment_label: "positive", "negative", "neutral", or "mixed"
2. sentiment_score: float from -1.0 (very negative) to 1.0 (very positive)
3. confidence_score: float from 0.0 to 1.0
4. brand_sentiment: specific sentiment toward the brand (-1.0 to 1.0)
5. emotions: object with emotion scores (joy, anger, fear, sadness, surprise, disgust, trust, anticipation)
6. dominant_emotion: the strongest emotion
7. aspects: object analyzing sentiment for battery, performance, design, build_quality, features, service, price, charging_infrastructure, each as {"sentiment": float, "confidence": float}
8. keywords_positive: array of positive keywords found
9. keywords_negative: array of negative keywords found
10. themes: array of main themes discussed
11. sarcasm_detected: boolean

Focus on Indian EV context and be precise with sentiment scoring.`, brand, text)
}

// parseProviderJSON unmarshals a provider reply into the result contract,
// stripping Markdown fences first and normalizing scores and vocabularies.
func parseProviderJSON(raw string, lexicon models.AspectLexicon) (*models.ProviderResult, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var result models.ProviderResult
	if err := json.Unmarshal([]byte(cleaned), &result); err != nil {
		return nil, err
	}

	result.Normalize(lexicon)
	return &result, nil
}
