package clients

import (
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

const openAIRequestTimeout = 60 * time.Second

var (
	openAIClientInstance *OpenAIClient
	openAIOnce           sync.Once
)

type OpenAIClient struct {
	Client *openai.Client
}

// GetOpenAIClient returns the shared OpenAI client. A missing API key returns
// a client with no underlying connection; provider calls then fail with a
// provider error and the orchestrator falls back to rule-based analysis.
func GetOpenAIClient() *OpenAIClient {
	openAIOnce.Do(func() {
		apiKey := os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			slog.Warn("[OpenAIClient] Missing OPENAI_API_KEY, OpenAI analysis unavailable")
			openAIClientInstance = &OpenAIClient{}
			return
		}

		config := openai.DefaultConfig(apiKey)
		config.HTTPClient = &http.Client{
			Timeout: openAIRequestTimeout,
		}

		openAIClientInstance = &OpenAIClient{
			Client: openai.NewClientWithConfig(config),
		}
		slog.Info("[OpenAIClient] OpenAI client initialized",
			slog.Duration("timeout", openAIRequestTimeout))
	})
	return openAIClientInstance
}
