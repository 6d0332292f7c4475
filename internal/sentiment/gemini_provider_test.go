package sentiment

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nitinsingh33/SolysAI/internal/models"
)

type stubGenerative struct {
	reply string
	err   error
}

func (s *stubGenerative) GenerateContent(context.Context, string) (string, error) {
	return s.reply, s.err
}

func TestGeminiProvider_Analyze(t *testing.T) {
	lexicon := models.DefaultAspectLexicon()

	t.Run("json carved out of surrounding prose", func(t *testing.T) {
		client := &stubGenerative{reply: `Here is the analysis you asked for:
{"sentiment_label": "positive", "sentiment_score": 0.7, "confidence_score": 0.8}
Let me know if you need anything else.`}

		provider := NewGeminiProvider(client, lexicon)
		result, err := provider.Analyze(context.Background(), "great scooter", "Ola Electric")
		require.NoError(t, err)
		assert.Equal(t, models.LabelPositive, result.SentimentLabel)
		assert.Equal(t, 0.7, result.SentimentScore)
	})

	t.Run("reply without json", func(t *testing.T) {
		provider := NewGeminiProvider(&stubGenerative{reply: "I cannot analyze this."}, lexicon)
		_, err := provider.Analyze(context.Background(), "great scooter", "Ola Electric")
		var perr *ProviderError
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, models.MethodGemini, perr.Method)
	})

	t.Run("transport error", func(t *testing.T) {
		upstream := errors.New("429 resource exhausted")
		provider := NewGeminiProvider(&stubGenerative{err: upstream}, lexicon)
		_, err := provider.Analyze(context.Background(), "great scooter", "Ola Electric")
		require.Error(t, err)
		assert.ErrorIs(t, err, upstream)
	})

	t.Run("nil client", func(t *testing.T) {
		provider := NewGeminiProvider(nil, lexicon)
		_, err := provider.Analyze(context.Background(), "great scooter", "Ola Electric")
		assert.Error(t, err)
	})
}
