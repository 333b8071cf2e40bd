package events

import (
	"context"
	"fmt"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"

	"github.com/paulasielawa/Serverless-Event-driven-AI-Notifier/internal/logging"
)

// KafkaEmitter produces notifications to Kafka; destinations are topic names.
type KafkaEmitter struct {
	client *kgo.Client
	logger logging.Logger
}

func NewKafkaEmitter(brokers []string, logger logging.Logger) (*KafkaEmitter, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.ClientID("ai-notifier"),
		kgo.ProducerLinger(0),
		kgo.RequiredAcks(kgo.AllISRAcks()),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka: create client: %w", err)
	}
	return &KafkaEmitter{client: client, logger: logging.OrNop(logger)}, nil
}

func newRecord(topic string, n Notification) (*kgo.Record, error) {
	b, err := n.Body()
	if err != nil {
		return nil, err
	}
	record := &kgo.Record{
		Topic:     topic,
		Key:       []byte(n.ID),
		Value:     b,
		Timestamp: time.Now(),
	}
	for k, v := range n.Attributes() {
		record.Headers = append(record.Headers, kgo.RecordHeader{Key: k, Value: []byte(v)})
	}
	return record, nil
}

func (e *KafkaEmitter) Emit(ctx context.Context, topic string, n Notification) error {
	record, err := newRecord(topic, n)
	if err != nil {
		return err
	}

	if err := e.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("kafka: produce to %s: %w", topic, err)
	}

	e.logger.WithFields(logging.Fields{
		"topic":         topic,
		"invocation_id": n.ID,
	}).Debug("Produced notification to Kafka")
	return nil
}

func (e *KafkaEmitter) Close() error {
	e.client.Close()
	return nil
}
