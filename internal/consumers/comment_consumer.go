package consumers

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"

	"github.com/nitinsingh33/SolysAI/internal/clients"
	"github.com/nitinsingh33/SolysAI/internal/db"
	"github.com/nitinsingh33/SolysAI/internal/models"
	"github.com/nitinsingh33/SolysAI/internal/sentiment"
	"github.com/nitinsingh33/SolysAI/internal/utils"
)

const (
	pollTimeout  = 1 * time.Second
	flushTimeout = 5 * time.Second
)

var commentBuffer = utils.NewBatchBuffer[models.Comment]()

// StartCommentConsumer reads retained comments off Kafka, buffers them up to
// the analyzer's batch size, and flushes each full (or timed-out) buffer
// through the batch orchestrator.
func StartCommentConsumer(ctx context.Context, consumer *kafka.Consumer, analyzer *sentiment.Analyzer, method models.AnalysisMethod) {
	slog.Info("[CommentConsumer] Listening for comments", slog.String("method", string(method)))

	ticker := time.NewTicker(flushTimeout)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Warn("[CommentConsumer] shutting down, flushing remaining buffer")
			flushBuffer(context.Background(), analyzer, method)
			return
		case <-ticker.C:
			flushBuffer(ctx, analyzer, method)
		default:
			msg, err := consumer.ReadMessage(pollTimeout)
			if err != nil {
				if kafkaErr, ok := err.(kafka.Error); ok && kafkaErr.IsTimeout() {
					continue
				}
				slog.Error("[CommentConsumer] read failed", slog.String("error", err.Error()))
				continue
			}

			var comments []models.Comment
			if err := json.Unmarshal(msg.Value, &comments); err != nil {
				slog.Error("[CommentConsumer] failed to deserialize comments",
					slog.String("error", err.Error()))
				continue
			}

			for _, comment := range comments {
				commentBuffer.Add(comment)
			}

			if commentBuffer.Size() >= analyzer.BatchSize {
				flushBuffer(ctx, analyzer, method)
			}
		}
	}
}

func flushBuffer(ctx context.Context, analyzer *sentiment.Analyzer, method models.AnalysisMethod) {
	batch := commentBuffer.GetAndClear()
	if len(batch) == 0 {
		return
	}

	analyses := analyzer.AnalyzeBatch(ctx, batch, method)
	if len(analyses) == 0 {
		return
	}

	if err := db.StoreBatchedAnalyses(ctx, analyses); err != nil {
		slog.Error("[CommentConsumer] failed to store analyses",
			slog.String("error", err.Error()))
	}

	analyzedIDs := make([]string, 0, len(analyses))
	for _, analysis := range analyses {
		analyzedIDs = append(analyzedIDs, analysis.CommentID)
	}
	if err := db.MarkCommentsAnalyzed(ctx, analyzedIDs); err != nil {
		slog.Error("[CommentConsumer] failed to mark comments analyzed",
			slog.String("error", err.Error()))
	}

	for i := 0; i < 3; i++ {
		err := clients.PublishToKafka(clients.KAFKA_TOPIC_SENTIMENT_RESULTS, analyses)
		if err == nil {
			break
		}
		slog.Warn("[CommentConsumer] result publishing failed",
			slog.Int("attempt", i+1),
			slog.String("error", err.Error()))
		time.Sleep(2 * time.Second)
	}
}
