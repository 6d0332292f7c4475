package ingest

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nitinsingh33/SolysAI/internal/models"
)

type fakeFetcher struct {
	videos    map[string][]models.Video // keyed by first search keyword
	pages     map[string][][]models.RawComment
	fetchErr  map[string]error
	searchErr map[string]error

	pageRequests int
}

func (f *fakeFetcher) SearchVideos(_ context.Context, keywords []string, _ int) ([]models.Video, error) {
	if err := f.searchErr[keywords[0]]; err != nil {
		return nil, err
	}
	return f.videos[keywords[0]], nil
}

func (f *fakeFetcher) FetchCommentPage(_ context.Context, videoID, pageToken string) ([]models.RawComment, string, error) {
	f.pageRequests++
	if err := f.fetchErr[videoID]; err != nil {
		return nil, "", err
	}

	idx := 0
	if pageToken != "" {
		idx, _ = strconv.Atoi(pageToken)
	}
	pages := f.pages[videoID]
	if idx >= len(pages) {
		return nil, "", nil
	}

	next := ""
	if idx+1 < len(pages) {
		next = strconv.Itoa(idx + 1)
	}
	return pages[idx], next, nil
}

type fakeDedup struct {
	seen map[string]bool
}

func (d *fakeDedup) IsCommentProcessed(_ context.Context, _, id string) bool {
	return d.seen[id]
}

func (d *fakeDedup) MarkCommentProcessed(_ context.Context, _, id string) error {
	d.seen[id] = true
	return nil
}

func newTestPipeline(fetcher CommentFetcher) *Pipeline {
	p := NewPipeline(fetcher, models.DefaultBrandRegistry(), NewRateLimiter(0, 0))
	p.VideoDelay = 0
	p.BrandDelay = 0
	return p
}

func TestPipeline_ScrapeVideoComments_Filtering(t *testing.T) {
	fetcher := &fakeFetcher{
		pages: map[string][][]models.RawComment{
			"vid1": {{
				{CommentID: "c1", Text: "I love my Ola S1 Pro, amazing battery!", Author: "Priya Sharma", Votes: 12, Replies: 2, Time: "2024-08-29T10:30:00Z"},
				{CommentID: "c2", Text: "nice", Author: "someone"},                             // too short
				{CommentID: "c3", Text: "petrol bikes are still cheaper", Author: "someone"},  // no brand
				{CommentID: "c4", Text: "ola electric click here free money", Author: "xyz1234"}, // spam, still retained
			}},
		},
	}

	pipeline := newTestPipeline(fetcher)
	comments, err := pipeline.ScrapeVideoComments(context.Background(), "vid1", 100)
	require.NoError(t, err)
	require.Len(t, comments, 2)

	first := comments[0]
	assert.Equal(t, "ola_electric", first.BrandID)
	assert.Equal(t, []string{"ola s1"}, first.BrandKeywords)
	assert.Equal(t, models.StatusProcessed, first.Status)
	assert.Equal(t, models.SourceYouTube, first.Source)
	assert.Equal(t, "vid1", first.VideoID)
	assert.Equal(t, 12, first.LikesCount)
	assert.False(t, first.IsSpam)
	assert.False(t, first.PublishedAt.IsZero())

	flagged := comments[1]
	assert.True(t, flagged.IsSpam)
	assert.True(t, flagged.IsBot)
	assert.Equal(t, models.StatusProcessed, flagged.Status)
}

func TestPipeline_ScrapeVideoComments_CapSpansPages(t *testing.T) {
	page := make([]models.RawComment, 10)
	for i := range page {
		page[i] = models.RawComment{
			CommentID: "c" + strconv.Itoa(i),
			Text:      "ola electric makes a great scooter",
			Author:    "regular viewer",
		}
	}
	fetcher := &fakeFetcher{
		pages: map[string][][]models.RawComment{
			"vid1": {page, page, page},
		},
	}

	pipeline := newTestPipeline(fetcher)
	comments, err := pipeline.ScrapeVideoComments(context.Background(), "vid1", 15)
	require.NoError(t, err)

	// 15 raw items scanned: one full page plus half of the second.
	assert.Len(t, comments, 15)
	assert.Equal(t, 2, fetcher.pageRequests)
}

func TestPipeline_ScrapeVideoComments_TransportFailure(t *testing.T) {
	fetcher := &fakeFetcher{
		fetchErr: map[string]error{"vid1": errors.New("connection reset")},
	}

	pipeline := newTestPipeline(fetcher)
	comments, err := pipeline.ScrapeVideoComments(context.Background(), "vid1", 100)
	assert.Error(t, err)
	assert.Empty(t, comments)
}

func TestPipeline_ScrapeBrandComments_IsolatesVideoFailures(t *testing.T) {
	fetcher := &fakeFetcher{
		videos: map[string][]models.Video{
			"ola electric": {{VideoID: "vid1"}, {VideoID: "vid2"}, {VideoID: "vid3"}},
		},
		pages: map[string][][]models.RawComment{
			"vid1": {{{CommentID: "c1", Text: "ola electric battery lasts long", Author: "commuter one"}}},
			"vid3": {{{CommentID: "c2", Text: "ola electric service needs work", Author: "commuter two"}}},
		},
		fetchErr: map[string]error{"vid2": errors.New("boom")},
	}

	pipeline := newTestPipeline(fetcher)
	comments, err := pipeline.ScrapeBrandComments(context.Background(), "ola_electric", 3, 50)
	require.NoError(t, err)
	assert.Len(t, comments, 2)
}

func TestPipeline_ScrapeBrandComments_UnknownBrand(t *testing.T) {
	pipeline := newTestPipeline(&fakeFetcher{})
	_, err := pipeline.ScrapeBrandComments(context.Background(), "tesla", 3, 50)
	assert.Error(t, err)
}

func TestPipeline_ScrapeAllBrands_IsolatesBrandFailures(t *testing.T) {
	fetcher := &fakeFetcher{
		videos: map[string][]models.Video{
			"ola electric": {{VideoID: "vid1"}},
		},
		pages: map[string][][]models.RawComment{
			"vid1": {{{CommentID: "c1", Text: "ola electric range is impressive", Author: "commuter one"}}},
		},
		searchErr: map[string]error{"ather": errors.New("search quota exceeded")},
	}

	pipeline := newTestPipeline(fetcher)
	results := pipeline.ScrapeAllBrands(context.Background(), 1, 50)

	require.Len(t, results, len(models.DefaultBrandRegistry()))
	assert.Len(t, results["ola_electric"], 1)
	assert.Empty(t, results["ather_energy"])
}

func TestPipeline_DedupSkipsSeenComments(t *testing.T) {
	fetcher := &fakeFetcher{
		pages: map[string][][]models.RawComment{
			"vid1": {{
				{CommentID: "seen", Text: "ola electric battery lasts long", Author: "commuter one"},
				{CommentID: "new", Text: "ola electric range is impressive", Author: "commuter two"},
			}},
		},
	}

	pipeline := newTestPipeline(fetcher)
	pipeline.Dedup = &fakeDedup{seen: map[string]bool{"seen": true}}

	comments, err := pipeline.ScrapeVideoComments(context.Background(), "vid1", 100)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "new", comments[0].SourceID)
}
