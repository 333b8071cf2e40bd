package events

import (
	"context"

	"github.com/paulasielawa/Serverless-Event-driven-AI-Notifier/internal/logging"
)

// Emitter delivers one notification to a destination. The destination is
// transport specific: an SNS topic ARN, a Pub/Sub topic ID or a Kafka topic.
type Emitter interface {
	Emit(ctx context.Context, destination string, n Notification) error
}

// LogEmitter writes notifications to the log instead of a broker.
type LogEmitter struct {
	logger logging.Logger
}

func NewLogEmitter(logger logging.Logger) *LogEmitter {
	return &LogEmitter{logger: logging.OrNop(logger)}
}

func (e *LogEmitter) Emit(_ context.Context, destination string, n Notification) error {
	b, err := n.Body()
	if err != nil {
		return err
	}
	e.logger.WithFields(logging.Fields{
		"destination":   destination,
		"subject":       n.Subject,
		"invocation_id": n.ID,
	}).Infof("NOTIFICATION: %s", string(b))
	return nil
}

func (e *LogEmitter) Close() error {
	return nil
}
