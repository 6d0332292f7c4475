package models

import "time"

type CommentSource string

const (
	SourceYouTube   CommentSource = "youtube"
	SourceTwitter   CommentSource = "twitter"
	SourceReddit    CommentSource = "reddit"
	SourceInstagram CommentSource = "instagram"
)

// CommentStatus is the processing lifecycle of a comment. Transitions only move
// forward: raw -> processed -> analyzed. Spam/bot flags are orthogonal facets,
// set once at ingestion and never cleared.
type CommentStatus string

const (
	StatusRaw       CommentStatus = "raw"
	StatusProcessed CommentStatus = "processed"
	StatusAnalyzed  CommentStatus = "analyzed"
)

// RawComment is a single record from the external comment source, prior to any
// cleaning or filtering.
type RawComment struct {
	CommentID string `json:"cid"`
	Text      string `json:"text"`
	Author    string `json:"author"`
	AuthorID  string `json:"author_id,omitempty"`
	Votes     int    `json:"votes"`
	Replies   int    `json:"replies"`
	Time      string `json:"time"`
}

// Comment is a retained comment. One exists only if at least one brand keyword
// matched during ingestion; everything else is discarded, not stored.
type Comment struct {
	ID        string        `json:"id" dynamodbav:"id"`
	Text      string        `json:"text" dynamodbav:"text"`
	Source    CommentSource `json:"source" dynamodbav:"source"`
	SourceID  string        `json:"source_id" dynamodbav:"source_id"`
	SourceURL string        `json:"source_url,omitempty" dynamodbav:"source_url,omitempty"`
	VideoID   string        `json:"video_id,omitempty" dynamodbav:"video_id,omitempty"`

	AuthorName string `json:"author_name" dynamodbav:"author_name"`
	AuthorID   string `json:"author_id,omitempty" dynamodbav:"author_id,omitempty"`

	LikesCount   int `json:"likes_count" dynamodbav:"likes_count"`
	RepliesCount int `json:"replies_count" dynamodbav:"replies_count"`

	BrandID       string   `json:"brand_id" dynamodbav:"brand_id"`
	BrandKeywords []string `json:"brand_keywords" dynamodbav:"brand_keywords"`

	PublishedAt time.Time `json:"published_at" dynamodbav:"published_at"`
	ScrapedAt   time.Time `json:"scraped_at" dynamodbav:"scraped_at"`

	Status CommentStatus `json:"status" dynamodbav:"status"`
	IsSpam bool          `json:"is_spam" dynamodbav:"is_spam"`
	IsBot  bool          `json:"is_bot" dynamodbav:"is_bot"`
}

// Video is a source video whose comment thread gets scraped.
type Video struct {
	VideoID      string `json:"video_id"`
	Title        string `json:"title"`
	ChannelTitle string `json:"channel_title,omitempty"`
}
