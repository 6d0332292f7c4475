package db

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/nitinsingh33/SolysAI/internal/clients"
	"github.com/nitinsingh33/SolysAI/internal/models"
	"github.com/nitinsingh33/SolysAI/internal/utils"
)

const (
	COMMENTS_TABLE_NAME           = "Comments"
	SENTIMENT_ANALYSIS_TABLE_NAME = "SentimentAnalyses"

	// DynamoDB caps BatchWriteItem at 25 items per request.
	maxWriteBatchSize = 25
)

var dbClient *dynamodb.Client

func InitDynamoDB() {
	dbClient = clients.GetDynamoDBClient()
}

// StoreBatchedComments persists retained comments, 25 at a time.
func StoreBatchedComments(ctx context.Context, comments []models.Comment) error {
	items := make([]map[string]types.AttributeValue, 0, len(comments))
	for _, comment := range comments {
		item, err := attributevalue.MarshalMap(comment)
		if err != nil {
			return fmt.Errorf("[DynamoDB] Failed to marshal comment %s: %w", comment.ID, err)
		}
		items = append(items, item)
	}
	return batchWrite(ctx, COMMENTS_TABLE_NAME, items)
}

// StoreBatchedAnalyses persists sentiment analyses. Records are append-only;
// a re-analysis writes a new item rather than updating an old one.
func StoreBatchedAnalyses(ctx context.Context, analyses []models.SentimentAnalysis) error {
	items := make([]map[string]types.AttributeValue, 0, len(analyses))
	for _, analysis := range analyses {
		item, err := attributevalue.MarshalMap(analysis)
		if err != nil {
			return fmt.Errorf("[DynamoDB] Failed to marshal analysis for comment %s: %w", analysis.CommentID, err)
		}
		items = append(items, item)
	}
	return batchWrite(ctx, SENTIMENT_ANALYSIS_TABLE_NAME, items)
}

// MarkCommentsAnalyzed advances the lifecycle status of comments whose
// analysis was stored.
func MarkCommentsAnalyzed(ctx context.Context, commentIDs []string) error {
	if dbClient == nil {
		dbClient = clients.GetDynamoDBClient()
	}

	for _, id := range commentIDs {
		_, err := dbClient.UpdateItem(ctx, &dynamodb.UpdateItemInput{
			TableName: strPtr(COMMENTS_TABLE_NAME),
			Key: map[string]types.AttributeValue{
				"id": &types.AttributeValueMemberS{Value: id},
			},
			UpdateExpression: strPtr("SET #status = :analyzed"),
			ExpressionAttributeNames: map[string]string{
				"#status": "status",
			},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":analyzed": &types.AttributeValueMemberS{Value: string(models.StatusAnalyzed)},
			},
		})
		if err != nil {
			return fmt.Errorf("[DynamoDB] Failed to mark comment %s analyzed: %w", id, err)
		}
	}
	return nil
}

func batchWrite(ctx context.Context, table string, items []map[string]types.AttributeValue) error {
	if dbClient == nil {
		dbClient = clients.GetDynamoDBClient()
	}

	for _, chunk := range utils.Chunk(items, maxWriteBatchSize) {
		select {
		case <-ctx.Done():
			slog.Warn("[DynamoDB] context canceled")
			return ctx.Err()
		default:
		}

		writeRequests := make([]types.WriteRequest, 0, len(chunk))
		for _, item := range chunk {
			writeRequests = append(writeRequests, types.WriteRequest{
				PutRequest: &types.PutRequest{Item: item},
			})
		}

		out, err := dbClient.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
			RequestItems: map[string][]types.WriteRequest{
				table: writeRequests,
			},
		})
		if err != nil {
			return fmt.Errorf("[DynamoDB] Failed to batch write to %s: %w", table, err)
		}

		// Retry unprocessed items with backoff before giving up.
		retryCount := 0
		backoff := time.Millisecond * 500
		for len(out.UnprocessedItems) > 0 && retryCount < 3 {
			time.Sleep(backoff)
			backoff *= 2
			retryCount++
			slog.Warn("[DynamoDB] Retrying unprocessed items...",
				slog.String("table", table),
				slog.Int("retry_attempt", retryCount))

			out, err = dbClient.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
				RequestItems: out.UnprocessedItems,
			})
			if err != nil {
				return fmt.Errorf("[DynamoDB] Failed retrying unprocessed items for %s: %w", table, err)
			}
		}
		if len(out.UnprocessedItems) > 0 {
			return fmt.Errorf("[DynamoDB] %d items remain unprocessed for %s", len(out.UnprocessedItems), table)
		}
	}

	return nil
}

func strPtr(s string) *string {
	return &s
}
