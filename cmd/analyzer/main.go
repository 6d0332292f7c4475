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
	"github.com/nitinsingh33/SolysAI/internal/consumers"
	"github.com/nitinsingh33/SolysAI/internal/db"
	"github.com/nitinsingh33/SolysAI/internal/logging"
	"github.com/nitinsingh33/SolysAI/internal/models"
	"github.com/nitinsingh33/SolysAI/internal/sentiment"
)

func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	config.LoadEnv(env)
	logging.InitLogger()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	for {
		err := clients.InitKafkaProducer()
		if err == nil {
			break
		}
		slog.Warn("Kafka init failed, retrying...", slog.String("error", err.Error()))
		time.Sleep(5 * time.Second)
	}
	defer clients.CloseKafkaProducer()
	db.InitDynamoDB()

	registry := models.DefaultBrandRegistry()
	lexicon := models.DefaultAspectLexicon()

	analyzer := sentiment.NewAnalyzer(registry, lexicon,
		sentiment.NewOpenAIProvider(clients.GetOpenAIClient().Client, lexicon),
		sentiment.NewGeminiProvider(clients.GetGeminiClient(), lexicon),
		sentiment.NewVaderProvider(),
	)
	if size, err := strconv.Atoi(os.Getenv("SENTIMENT_BATCH_SIZE")); err == nil && size > 0 {
		analyzer.BatchSize = size
	}

	method := models.AnalysisMethod(os.Getenv("ANALYSIS_METHOD"))
	if method == "" {
		method = models.MethodOpenAI
	}

	consumer, err := clients.NewKafkaConsumer("solysai-analyzer", []string{clients.KAFKA_TOPIC_COMMENTS})
	if err != nil {
		slog.Error("[Main] Failed to create consumer", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer consumer.Close()

	stopChan := make(chan os.Signal, 1)
	signal.Notify(stopChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-stopChan
		slog.Info("Shutting down analyzer gracefully...")
		cancel()
	}()

	consumers.StartCommentConsumer(ctx, consumer, analyzer, method)
}
