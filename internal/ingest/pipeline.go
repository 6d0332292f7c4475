package ingest

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"time"

	"github.com/nitinsingh33/SolysAI/internal/models"
)

// CommentFetcher is the external raw-comment source. Implementations page
// through a video's comment thread; an empty next-page token ends pagination.
type CommentFetcher interface {
	SearchVideos(ctx context.Context, keywords []string, maxResults int) ([]models.Video, error)
	FetchCommentPage(ctx context.Context, videoID, pageToken string) ([]models.RawComment, string, error)
}

// DedupCache remembers comment IDs ingested by earlier runs. Best effort only;
// the pipeline makes no exactly-once promise.
type DedupCache interface {
	IsCommentProcessed(ctx context.Context, source, id string) bool
	MarkCommentProcessed(ctx context.Context, source, id string) error
}

const (
	defaultMaxCommentsPerVideo = 500
	defaultVideoDelay          = 2 * time.Second
	defaultBrandDelay          = 5 * time.Second
)

// Pipeline turns raw source records into retained Comment records: rate-limit
// gate per page, clean, length check, brand match (drop on no match), spam/bot
// tagging. It orchestrates three nested scopes (video, brand, all brands),
// each isolating failures of its children.
type Pipeline struct {
	fetcher    CommentFetcher
	limiter    *RateLimiter
	normalizer *Normalizer
	matcher    *BrandMatcher
	classifier *Classifier
	registry   models.BrandRegistry

	// Dedup is optional; a nil cache disables cross-run dedup.
	Dedup DedupCache

	MaxCommentsPerVideo int
	VideoDelay          time.Duration
	BrandDelay          time.Duration
}

func NewPipeline(fetcher CommentFetcher, registry models.BrandRegistry, limiter *RateLimiter) *Pipeline {
	return &Pipeline{
		fetcher:    fetcher,
		limiter:    limiter,
		normalizer: NewNormalizer(),
		matcher:    NewBrandMatcher(registry),
		classifier: NewClassifier(),
		registry:   registry,

		MaxCommentsPerVideo: defaultMaxCommentsPerVideo,
		VideoDelay:          defaultVideoDelay,
		BrandDelay:          defaultBrandDelay,
	}
}

// ScrapeVideoComments pages through one video's comment thread up to
// maxComments raw items. A transport failure aborts only this video's
// remaining pagination; comments already materialized are returned alongside
// the error.
func (p *Pipeline) ScrapeVideoComments(ctx context.Context, videoID string, maxComments int) ([]models.Comment, error) {
	if maxComments <= 0 {
		maxComments = p.MaxCommentsPerVideo
	}

	slog.Info("[IngestionPipeline] scraping video comments", slog.String("video_id", videoID))

	var comments []models.Comment
	seen := 0
	pageToken := ""

	for {
		p.limiter.Wait()

		raws, next, err := p.fetcher.FetchCommentPage(ctx, videoID, pageToken)
		if err != nil {
			slog.Error("[IngestionPipeline] comment page fetch failed, aborting video",
				slog.String("video_id", videoID),
				slog.String("error", err.Error()))
			return comments, fmt.Errorf("[IngestionPipeline] fetch comments for video %s: %w", videoID, err)
		}

		for _, raw := range raws {
			if seen >= maxComments {
				break
			}
			seen++

			if comment, ok := p.materialize(ctx, videoID, raw); ok {
				comments = append(comments, comment)
			}
		}

		if next == "" || seen >= maxComments {
			break
		}
		pageToken = next
	}

	slog.Info("[IngestionPipeline] video scrape complete",
		slog.String("video_id", videoID),
		slog.Int("retained", len(comments)),
		slog.Int("scanned", seen))
	return comments, nil
}

// materialize runs one raw record through the filter chain. The boolean is
// false when the record is dropped; drops are filtering decisions, not errors.
func (p *Pipeline) materialize(ctx context.Context, videoID string, raw models.RawComment) (models.Comment, bool) {
	if p.Dedup != nil && raw.CommentID != "" &&
		p.Dedup.IsCommentProcessed(ctx, string(models.SourceYouTube), raw.CommentID) {
		return models.Comment{}, false
	}

	text := p.normalizer.Clean(raw.Text)
	if !p.normalizer.Acceptable(text) {
		slog.Debug("[IngestionPipeline] dropping short comment", slog.String("comment_id", raw.CommentID))
		return models.Comment{}, false
	}

	matches := p.matcher.Match(text)
	primary, ok := Primary(matches)
	if !ok {
		slog.Debug("[IngestionPipeline] dropping comment without brand mention", slog.String("comment_id", raw.CommentID))
		return models.Comment{}, false
	}

	comment := models.Comment{
		ID:           commentID(string(models.SourceYouTube), raw.CommentID),
		Text:         text,
		Source:       models.SourceYouTube,
		SourceID:     raw.CommentID,
		SourceURL:    "https://www.youtube.com/watch?v=" + videoID,
		VideoID:      videoID,
		AuthorName:   raw.Author,
		AuthorID:     raw.AuthorID,
		LikesCount:   raw.Votes,
		RepliesCount: raw.Replies,

		BrandID:       primary.BrandID,
		BrandKeywords: primary.Keywords,

		PublishedAt: parsePublishedAt(raw.Time),
		ScrapedAt:   time.Now().UTC(),

		Status: models.StatusProcessed,
		IsSpam: p.classifier.IsSpam(raw),
		IsBot:  p.classifier.IsBot(raw),
	}

	if p.Dedup != nil && raw.CommentID != "" {
		if err := p.Dedup.MarkCommentProcessed(ctx, string(models.SourceYouTube), raw.CommentID); err != nil {
			slog.Warn("[IngestionPipeline] failed to mark comment processed",
				slog.String("comment_id", raw.CommentID),
				slog.String("error", err.Error()))
		}
	}

	return comment, true
}

// ScrapeBrandComments scrapes up to maxVideos comment threads for one brand.
// A failing video contributes what it had collected; its siblings continue.
func (p *Pipeline) ScrapeBrandComments(ctx context.Context, brandID string, maxVideos, maxCommentsPerVideo int) ([]models.Comment, error) {
	brand, ok := p.registry.Get(brandID)
	if !ok {
		return nil, fmt.Errorf("[IngestionPipeline] unknown brand: %s", brandID)
	}

	slog.Info("[IngestionPipeline] scraping brand", slog.String("brand", brand.Name))

	p.limiter.Wait()
	videos, err := p.fetcher.SearchVideos(ctx, brand.Keywords, maxVideos)
	if err != nil {
		return nil, fmt.Errorf("[IngestionPipeline] video search for %s: %w", brandID, err)
	}

	var all []models.Comment
	for i, video := range videos {
		comments, err := p.ScrapeVideoComments(ctx, video.VideoID, maxCommentsPerVideo)
		if err != nil {
			slog.Warn("[IngestionPipeline] video scrape failed, continuing with siblings",
				slog.String("video_id", video.VideoID),
				slog.String("error", err.Error()))
		}
		all = append(all, comments...)

		if i < len(videos)-1 {
			time.Sleep(p.VideoDelay)
		}
	}

	slog.Info("[IngestionPipeline] brand scrape complete",
		slog.String("brand", brand.Name),
		slog.Int("comments", len(all)))
	return all, nil
}

// ScrapeAllBrands runs every registry brand in sequence. A failing brand
// contributes an empty slice; the run itself never fails.
func (p *Pipeline) ScrapeAllBrands(ctx context.Context, maxVideosPerBrand, maxCommentsPerVideo int) map[string][]models.Comment {
	slog.Info("[IngestionPipeline] starting scrape across all brands", slog.Int("brands", len(p.registry)))

	results := make(map[string][]models.Comment, len(p.registry))
	for i, brand := range p.registry {
		comments, err := p.ScrapeBrandComments(ctx, brand.ID, maxVideosPerBrand, maxCommentsPerVideo)
		if err != nil {
			slog.Error("[IngestionPipeline] brand scrape failed",
				slog.String("brand_id", brand.ID),
				slog.String("error", err.Error()))
			results[brand.ID] = nil
			continue
		}
		results[brand.ID] = comments

		if i < len(p.registry)-1 {
			time.Sleep(p.BrandDelay)
		}
	}

	total := 0
	for _, comments := range results {
		total += len(comments)
	}
	slog.Info("[IngestionPipeline] scrape complete", slog.Int("total_comments", total))
	return results
}

func commentID(source, sourceID string) string {
	hash := sha256.Sum256([]byte(source + ":" + sourceID))
	return hex.EncodeToString(hash[:])
}

func parsePublishedAt(raw string) time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Now().UTC()
}
