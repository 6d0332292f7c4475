package sentiment

import (
	"context"
	"regexp"

	"github.com/nitinsingh33/SolysAI/internal/models"
)

// GenerativeClient is the transport for a hosted text-generation service that
// answers free-form prompts (the Gemini REST client implements it).
type GenerativeClient interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// Gemini replies are not guaranteed to be bare JSON, so the object is carved
// out of the surrounding text.
var jsonObjectRe = regexp.MustCompile(`(?s)\{.*\}`)

// GeminiProvider is the secondary externally-hosted analysis provider.
type GeminiProvider struct {
	client  GenerativeClient
	lexicon models.AspectLexicon
}

func NewGeminiProvider(client GenerativeClient, lexicon models.AspectLexicon) *GeminiProvider {
	return &GeminiProvider{client: client, lexicon: lexicon}
}

func (p *GeminiProvider) Method() models.AnalysisMethod {
	return models.MethodGemini
}

func (p *GeminiProvider) Analyze(ctx context.Context, text, brand string) (*models.ProviderResult, error) {
	if p.client == nil {
		return nil, newProviderError(models.MethodGemini, "client not configured")
	}

	reply, err := p.client.GenerateContent(ctx, buildAnalysisPrompt(text, brand))
	if err != nil {
		return nil, newProviderError(models.MethodGemini, "generate content failed: %w", err)
	}

	payload := jsonObjectRe.FindString(reply)
	if payload == "" {
		return nil, newProviderError(models.MethodGemini, "no JSON object in response")
	}

	result, err := parseProviderJSON(payload, p.lexicon)
	if err != nil {
		return nil, newProviderError(models.MethodGemini, "unparsable response: %w", err)
	}
	return result, nil
}
