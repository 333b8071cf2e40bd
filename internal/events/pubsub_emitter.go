package events

import (
	"context"
	"fmt"
	"sync"

	"cloud.google.com/go/pubsub"
	"google.golang.org/api/option"

	"github.com/paulasielawa/Serverless-Event-driven-AI-Notifier/internal/logging"
)

// PubSubEmitter publishes to Google Cloud Pub/Sub, one topic per destination.
type PubSubEmitter struct {
	client *pubsub.Client
	logger logging.Logger

	mu     sync.Mutex
	topics map[string]*pubsub.Topic
}

func NewPubSubEmitter(ctx context.Context, projectID string, logger logging.Logger, opts ...option.ClientOption) (*PubSubEmitter, error) {
	client, err := pubsub.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("pubsub: create client: %w", err)
	}

	return &PubSubEmitter{
		client: client,
		logger: logging.OrNop(logger),
		topics: make(map[string]*pubsub.Topic),
	}, nil
}

func (e *PubSubEmitter) topic(id string) *pubsub.Topic {
	e.mu.Lock()
	defer e.mu.Unlock()
	t, ok := e.topics[id]
	if !ok {
		t = e.client.Topic(id)
		e.topics[id] = t
	}
	return t
}

func (e *PubSubEmitter) Emit(ctx context.Context, topicID string, n Notification) error {
	b, err := n.Body()
	if err != nil {
		return err
	}

	res := e.topic(topicID).Publish(ctx, &pubsub.Message{
		Data:       b,
		Attributes: n.Attributes(),
	})

	msgID, err := res.Get(ctx)
	if err != nil {
		return fmt.Errorf("pubsub: publish to %s: %w", topicID, err)
	}

	e.logger.WithFields(logging.Fields{
		"topic":         topicID,
		"message_id":    msgID,
		"invocation_id": n.ID,
	}).Debug("Published notification to Pub/Sub")
	return nil
}

func (e *PubSubEmitter) Close() error {
	e.mu.Lock()
	for _, t := range e.topics {
		t.Stop()
	}
	e.mu.Unlock()
	return e.client.Close()
}
