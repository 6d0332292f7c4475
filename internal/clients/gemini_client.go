package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"
)

const (
	geminiEndpoint       = "https://generativelanguage.googleapis.com/v1beta/models/gemini-pro:generateContent"
	geminiRequestTimeout = 60 * time.Second
)

var (
	geminiInstance *GeminiClient
	geminiOnce     sync.Once
)

// GeminiClient calls the Gemini REST generateContent endpoint. It exists so
// the secondary analysis provider has a transport; there is no SDK dependency.
type GeminiClient struct {
	Client *http.Client
	APIKey string
}

func GetGeminiClient() *GeminiClient {
	geminiOnce.Do(func() {
		apiKey := os.Getenv("GEMINI_API_KEY")
		if apiKey == "" {
			slog.Warn("[GeminiClient] Missing GEMINI_API_KEY, Gemini analysis unavailable")
		}
		geminiInstance = &GeminiClient{
			Client: &http.Client{Timeout: geminiRequestTimeout},
			APIKey: apiKey,
		}
	})
	return geminiInstance
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

// GenerateContent sends the prompt and returns the first candidate's text,
// retrying transient failures with exponential backoff.
func (g *GeminiClient) GenerateContent(ctx context.Context, prompt string) (string, error) {
	if g.APIKey == "" {
		return "", errors.New("[GeminiClient] API key is missing")
	}

	payload, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	})
	if err != nil {
		return "", err
	}

	url := geminiEndpoint + "?key=" + g.APIKey
	backoff := INITIAL_BACKOFF
	var lastErr error

	for attempt := 1; attempt <= MAX_RETRIES; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
		if err != nil {
			return "", err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("User-Agent", USER_AGENT)

		res, err := g.Client.Do(req)
		if err != nil {
			lastErr = err
			slog.Warn("[GeminiClient] Request failed, will retry",
				slog.Int("attempt", attempt),
				slog.String("error", err.Error()))
		} else {
			text, retryable, err := g.handleResponse(res)
			if err == nil {
				return text, nil
			}
			lastErr = err
			if !retryable {
				return "", err
			}
			slog.Warn("[GeminiClient] Retryable response",
				slog.Int("attempt", attempt),
				slog.String("error", err.Error()))
		}

		time.Sleep(backoff)
		backoff *= 2
		if backoff > MAX_BACKOFF {
			backoff = MAX_BACKOFF
		}
	}

	return "", fmt.Errorf("[GeminiClient] failed after max retries: %w", lastErr)
}

func (g *GeminiClient) handleResponse(res *http.Response) (text string, retryable bool, err error) {
	defer res.Body.Close()

	switch {
	case res.StatusCode == http.StatusOK:
		body, err := io.ReadAll(res.Body)
		if err != nil {
			return "", false, err
		}
		var parsed geminiResponse
		if err := json.Unmarshal(body, &parsed); err != nil {
			return "", false, fmt.Errorf("[GeminiClient] failed to parse JSON response: %w", err)
		}
		if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
			return "", false, errors.New("[GeminiClient] response contained no candidates")
		}
		return parsed.Candidates[0].Content.Parts[0].Text, false, nil

	case res.StatusCode == http.StatusTooManyRequests || res.StatusCode >= 500:
		io.Copy(io.Discard, res.Body)
		return "", true, fmt.Errorf("[GeminiClient] status %d", res.StatusCode)

	case res.StatusCode == http.StatusUnauthorized || res.StatusCode == http.StatusForbidden:
		return "", false, errors.New("[GeminiClient] invalid API key or missing permissions")

	default:
		return "", false, fmt.Errorf("[GeminiClient] unexpected status %d", res.StatusCode)
	}
}
