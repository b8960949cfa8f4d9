package mail

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/twmb/franz-go/pkg/kgo"
)

// Producer is the slice of *kgo.Client the gateway needs.
type Producer interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
}

// KafkaGateway publishes messages to the mail outbox topic. The mail
// transport consumes the topic and talks SMTP.
type KafkaGateway struct {
	producer Producer
	topic    string
}

func NewKafkaGateway(producer Producer, topic string) (*KafkaGateway, error) {
	if producer == nil {
		return nil, errors.New("kafka producer is required")
	}
	if topic == "" {
		return nil, errors.New("mail topic is required")
	}
	return &KafkaGateway{producer: producer, topic: topic}, nil
}

// NewKafkaClient opens a franz-go client producing to topic by default.
func NewKafkaClient(brokers []string, topic string) (*kgo.Client, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
		kgo.RequiredAcks(kgo.AllISRAcks()),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}
	return client, nil
}

// Deliver publishes msg keyed by recipient so messages to one address stay ordered.
func (g *KafkaGateway) Deliver(ctx context.Context, msg Message) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode mail message: %w", err)
	}
	record := &kgo.Record{
		Topic: g.topic,
		Key:   []byte(msg.To),
		Value: payload,
		Headers: []kgo.RecordHeader{
			{Key: "message_id", Value: []byte(msg.ID.String())},
			{Key: "content_type", Value: []byte("text/html; charset=utf-8")},
		},
	}
	if err := g.producer.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("publish mail message: %w", err)
	}
	return nil
}
