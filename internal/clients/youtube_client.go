package clients

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/nitinsingh33/SolysAI/internal/models"
)

const (
	youtubeSearchEndpoint         = "https://www.googleapis.com/youtube/v3/search"
	youtubeCommentThreadsEndpoint = "https://www.googleapis.com/youtube/v3/commentThreads"

	// The API caps commentThreads pages at 100 items.
	youtubeCommentsPageSize = 100

	// Searching more than a few keywords per brand burns quota fast.
	maxSearchKeywords = 3
)

var (
	youtubeInstance *YouTubeClient
	youtubeOnce     sync.Once
)

// YouTubeClient is the raw comment source: video search plus page-by-page
// comment thread fetches against the YouTube Data API.
type YouTubeClient struct {
	Client *http.Client
	APIKey string
}

func GetYouTubeClient() *YouTubeClient {
	youtubeOnce.Do(func() {
		apiKey := os.Getenv("YOUTUBE_API_KEY")
		if apiKey == "" {
			slog.Warn("[YouTubeClient] Missing YOUTUBE_API_KEY, scraping unavailable")
		}
		youtubeInstance = &YouTubeClient{
			Client: &http.Client{Timeout: 30 * time.Second},
			APIKey: apiKey,
		}
	})
	return youtubeInstance
}

type youtubeSearchResponse struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
		Snippet struct {
			Title        string `json:"title"`
			ChannelTitle string `json:"channelTitle"`
		} `json:"snippet"`
	} `json:"items"`
}

type youtubeCommentThreadsResponse struct {
	NextPageToken string `json:"nextPageToken"`
	Items         []struct {
		Snippet struct {
			TotalReplyCount int `json:"totalReplyCount"`
			TopLevelComment struct {
				ID      string `json:"id"`
				Snippet struct {
					TextOriginal      string `json:"textOriginal"`
					AuthorDisplayName string `json:"authorDisplayName"`
					AuthorChannelID   struct {
						Value string `json:"value"`
					} `json:"authorChannelId"`
					LikeCount   int    `json:"likeCount"`
					PublishedAt string `json:"publishedAt"`
				} `json:"snippet"`
			} `json:"topLevelComment"`
		} `json:"snippet"`
	} `json:"items"`
}

// SearchVideos finds videos for a brand's keywords, splitting the result
// budget across the first few keywords.
func (y *YouTubeClient) SearchVideos(ctx context.Context, keywords []string, maxResults int) ([]models.Video, error) {
	if y.APIKey == "" {
		return nil, errors.New("[YouTubeClient] API key is missing")
	}
	if len(keywords) > maxSearchKeywords {
		keywords = keywords[:maxSearchKeywords]
	}
	if maxResults <= 0 {
		maxResults = len(keywords)
	}
	perKeyword := maxResults / len(keywords)
	if perKeyword < 1 {
		perKeyword = 1
	}

	var videos []models.Video
	for _, keyword := range keywords {
		params := url.Values{}
		params.Set("part", "snippet")
		params.Set("type", "video")
		params.Set("q", keyword)
		params.Set("maxResults", strconv.Itoa(perKeyword))
		params.Set("key", y.APIKey)

		var parsed youtubeSearchResponse
		if err := y.getJSON(ctx, youtubeSearchEndpoint+"?"+params.Encode(), &parsed); err != nil {
			return nil, fmt.Errorf("[YouTubeClient] video search for %q: %w", keyword, err)
		}

		for _, item := range parsed.Items {
			videos = append(videos, models.Video{
				VideoID:      item.ID.VideoID,
				Title:        item.Snippet.Title,
				ChannelTitle: item.Snippet.ChannelTitle,
			})
		}
	}

	slog.Info("[YouTubeClient] video search complete", slog.Int("videos", len(videos)))
	return videos, nil
}

// FetchCommentPage returns one page of top-level comments for a video and the
// token of the next page; an empty token means the thread is exhausted.
func (y *YouTubeClient) FetchCommentPage(ctx context.Context, videoID, pageToken string) ([]models.RawComment, string, error) {
	if y.APIKey == "" {
		return nil, "", errors.New("[YouTubeClient] API key is missing")
	}

	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("videoId", videoID)
	params.Set("maxResults", strconv.Itoa(youtubeCommentsPageSize))
	params.Set("textFormat", "plainText")
	params.Set("order", "relevance")
	params.Set("key", y.APIKey)
	if pageToken != "" {
		params.Set("pageToken", pageToken)
	}

	var parsed youtubeCommentThreadsResponse
	if err := y.getJSON(ctx, youtubeCommentThreadsEndpoint+"?"+params.Encode(), &parsed); err != nil {
		return nil, "", fmt.Errorf("[YouTubeClient] comment page for %s: %w", videoID, err)
	}

	raws := make([]models.RawComment, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		top := item.Snippet.TopLevelComment
		raws = append(raws, models.RawComment{
			CommentID: top.ID,
			Text:      top.Snippet.TextOriginal,
			Author:    top.Snippet.AuthorDisplayName,
			AuthorID:  top.Snippet.AuthorChannelID.Value,
			Votes:     top.Snippet.LikeCount,
			Replies:   item.Snippet.TotalReplyCount,
			Time:      top.Snippet.PublishedAt,
		})
	}

	return raws, parsed.NextPageToken, nil
}

// getJSON performs a GET with retry/backoff and decodes the body into out.
func (y *YouTubeClient) getJSON(ctx context.Context, requestURL string, out any) error {
	backoff := INITIAL_BACKOFF
	var lastErr error

	for attempt := 1; attempt <= MAX_RETRIES; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
		if err != nil {
			return err
		}
		req.Header.Set("User-Agent", USER_AGENT)

		res, err := y.Client.Do(req)
		if err != nil {
			lastErr = err
			slog.Warn("[YouTubeClient] request failed, will retry",
				slog.Int("attempt", attempt),
				slog.String("error", err.Error()))
		} else {
			done, err := decodeOrRetry(res, out)
			if done {
				return err
			}
			lastErr = err
			slog.Warn("[YouTubeClient] retryable response",
				slog.Int("attempt", attempt),
				slog.String("error", err.Error()))
		}

		time.Sleep(backoff)
		backoff *= 2
		if backoff > MAX_BACKOFF {
			backoff = MAX_BACKOFF
		}
	}

	return fmt.Errorf("failed after max retries: %w", lastErr)
}

// decodeOrRetry consumes the response. done is true when the outcome is final
// (success or a non-retryable failure).
func decodeOrRetry(res *http.Response, out any) (done bool, err error) {
	defer res.Body.Close()

	switch {
	case res.StatusCode == http.StatusOK:
		body, err := io.ReadAll(res.Body)
		if err != nil {
			return true, err
		}
		if err := json.Unmarshal(body, out); err != nil {
			return true, fmt.Errorf("failed to parse JSON response: %w", err)
		}
		return true, nil

	case res.StatusCode == http.StatusForbidden || res.StatusCode == http.StatusTooManyRequests:
		// 403 is how the Data API reports quota exhaustion; both are
		// worth retrying after a backoff.
		io.Copy(io.Discard, res.Body)
		return false, fmt.Errorf("status %d (quota or rate limit)", res.StatusCode)

	case res.StatusCode >= 500:
		io.Copy(io.Discard, res.Body)
		return false, fmt.Errorf("server error: status %d", res.StatusCode)

	case res.StatusCode == http.StatusUnauthorized:
		return true, errors.New("invalid API key, check credentials")

	default:
		return true, fmt.Errorf("unexpected status %d", res.StatusCode)
	}
}
