package clients

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
)

const (
	KAFKA_TOPIC_COMMENTS          = "ev-comments"       // retained comments from the scraper
	KAFKA_TOPIC_SENTIMENT_RESULTS = "sentiment-results" // completed analyses from the analyzer
)

var kafkaProducer *kafka.Producer

func kafkaBroker() string {
	if broker := os.Getenv("KAFKA_BROKER"); broker != "" {
		return broker
	}
	return "localhost:29092"
}

// InitKafkaProducer creates the shared producer for this process.
func InitKafkaProducer() error {
	broker := kafkaBroker()
	slog.Info("[KafkaClient] Connecting to Kafka", slog.String("broker", broker))

	p, err := kafka.NewProducer(&kafka.ConfigMap{
		"bootstrap.servers":   broker,
		"security.protocol":   "PLAINTEXT",
		"api.version.request": "true",
		"acks":                "all",
	})
	if err != nil {
		return fmt.Errorf("[KafkaClient] failed to create producer: %w", err)
	}

	kafkaProducer = p
	slog.Info("[KafkaClient] Kafka Producer initialized")
	return nil
}

func CloseKafkaProducer() {
	if kafkaProducer != nil {
		if remaining := kafkaProducer.Flush(5000); remaining > 0 {
			slog.Warn("[KafkaClient] Not all messages were delivered before shutdown",
				slog.Int("remaining", remaining))
		}
		kafkaProducer.Close()
		slog.Info("[KafkaClient] Kafka producer shut down")
	}
}

// PublishToKafka serializes payload as JSON and produces it to topic.
func PublishToKafka(topic string, payload any) error {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	err = kafkaProducer.Produce(&kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &topic, Partition: kafka.PartitionAny},
		Value:          jsonData,
	}, nil)
	if err != nil {
		return fmt.Errorf("[KafkaClient] failed to produce to %s: %w", topic, err)
	}
	return nil
}

// NewKafkaConsumer subscribes a fresh consumer to the given topics.
func NewKafkaConsumer(groupID string, topics []string) (*kafka.Consumer, error) {
	consumer, err := kafka.NewConsumer(&kafka.ConfigMap{
		"bootstrap.servers":  kafkaBroker(),
		"group.id":           groupID,
		"auto.offset.reset":  "earliest",
		"enable.auto.commit": true,
	})
	if err != nil {
		return nil, fmt.Errorf("[KafkaClient] failed to create consumer: %w", err)
	}

	if err := consumer.SubscribeTopics(topics, nil); err != nil {
		consumer.Close()
		return nil, fmt.Errorf("[KafkaClient] failed to subscribe: %w", err)
	}
	return consumer, nil
}
