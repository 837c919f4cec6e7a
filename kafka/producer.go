package kafka

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"
)

// Event is the JSON envelope published for catalog changes. Data carries the
// entity snapshot downstream consumers need (id plus pricing).
type Event struct {
	EventType string      `json:"event_type"`
	Data      interface{} `json:"data"`
}

// Producer owns a single Kafka connection shared by all request handlers.
// It is constructed once at process start and closed on shutdown.
type Producer struct {
	writer *kafka.Writer
}

func NewProducer(brokers []string) *Producer {
	writer := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Balancer: &kafka.LeastBytes{},
	}
	return &Producer{writer: writer}
}

// Publish marshals the event and writes a single message to the topic. Any
// failure is returned to the caller; the request that triggered the publish
// fails with it.
func (p *Producer) Publish(ctx context.Context, topic string, event Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Topic: topic,
		Value: data,
	}
	return p.writer.WriteMessages(ctx, msg)
}

func (p *Producer) Close() error {
	return p.writer.Close()
}
