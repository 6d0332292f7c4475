package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/nitinsingh33/SolysAI/config"
	"github.com/nitinsingh33/SolysAI/internal/clients"
	"github.com/nitinsingh33/SolysAI/internal/db"
	"github.com/nitinsingh33/SolysAI/internal/ingest"
	"github.com/nitinsingh33/SolysAI/internal/logging"
	"github.com/nitinsingh33/SolysAI/internal/models"
)

func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	config.LoadEnv(env)
	logging.InitLogger()

	for {
		err := clients.InitKafkaProducer()
		if err == nil {
			break
		}
		slog.Warn("Kafka init failed, retrying...", slog.String("error", err.Error()))
		time.Sleep(5 * time.Second)
	}
	defer clients.CloseKafkaProducer()

	clients.InitValkey()
	defer clients.CloseValkey()
	db.InitDynamoDB()

	registry := models.DefaultBrandRegistry()
	limiter := ingest.NewRateLimiter(time.Hour, envInt("YOUTUBE_RATE_LIMIT", 100))

	pipeline := ingest.NewPipeline(clients.GetYouTubeClient(), registry, limiter)
	pipeline.Dedup = clients.GetValkeyClient()
	pipeline.MaxCommentsPerVideo = envInt("MAX_COMMENTS_PER_VIDEO", 500)

	maxVideosPerBrand := envInt("MAX_VIDEOS_PER_BRAND", 3)
	scrapeInterval := time.Duration(envInt("SCRAPE_INTERVAL", 21600)) * time.Second

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stopChan := make(chan os.Signal, 1)
	signal.Notify(stopChan, os.Interrupt, syscall.SIGTERM)

	ticker := time.NewTicker(scrapeInterval)
	defer ticker.Stop()

	scrapeAndPublish(ctx, pipeline, maxVideosPerBrand)

	for {
		select {
		case <-ticker.C:
			scrapeAndPublish(ctx, pipeline, maxVideosPerBrand)
		case <-stopChan:
			slog.Info("Shutting down scraper gracefully...")
			return
		}
	}
}

func scrapeAndPublish(ctx context.Context, pipeline *ingest.Pipeline, maxVideosPerBrand int) {
	results := pipeline.ScrapeAllBrands(ctx, maxVideosPerBrand, pipeline.MaxCommentsPerVideo)

	for brandID, comments := range results {
		if len(comments) == 0 {
			continue
		}

		if err := db.StoreBatchedComments(ctx, comments); err != nil {
			slog.Error("[Scraper] failed to store comments",
				slog.String("brand_id", brandID),
				slog.String("error", err.Error()))
		}

		if err := clients.PublishToKafka(clients.KAFKA_TOPIC_COMMENTS, comments); err != nil {
			slog.Error("[Scraper] failed to publish comments",
				slog.String("brand_id", brandID),
				slog.String("error", err.Error()))
		}
	}
}

func envInt(key string, fallback int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return value
}
