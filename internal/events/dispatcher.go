package events

import (
	"context"
	"errors"
	"fmt"

	"github.com/paulasielawa/Serverless-Event-driven-AI-Notifier/api"
	"github.com/paulasielawa/Serverless-Event-driven-AI-Notifier/internal/classifier"
	"github.com/paulasielawa/Serverless-Event-driven-AI-Notifier/internal/logging"
)

var (
	ErrUnknownCategory = errors.New("unknown category")
	ErrNoDestination   = errors.New("no destination configured")
)

// Routes is the category to destination table.
type Routes map[classifier.Category]string

func NewRoutes(security, cost, infra string) Routes {
	return Routes{
		classifier.Security: security,
		classifier.Cost:     cost,
		classifier.Infra:    infra,
	}
}

// Destination looks a category up by exact match.
func (r Routes) Destination(c classifier.Category) (string, error) {
	dest, ok := r[c]
	if !ok {
		return "", fmt.Errorf("%w %q", ErrUnknownCategory, string(c))
	}
	if dest == "" {
		return "", fmt.Errorf("%w for category %q", ErrNoDestination, string(c))
	}
	return dest, nil
}

type Dispatcher struct {
	emitter Emitter
	routes  Routes
	logger  logging.Logger
}

func NewDispatcher(emitter Emitter, routes Routes, logger logging.Logger) *Dispatcher {
	return &Dispatcher{
		emitter: emitter,
		routes:  routes,
		logger:  logging.OrNop(logger),
	}
}

// Dispatch sends exactly one notification for the classification. Nothing
// is emitted when the category has no destination.
func (d *Dispatcher) Dispatch(ctx context.Context, c classifier.Classification, event api.Event) (Notification, error) {
	dest, err := d.routes.Destination(c.Category)
	if err != nil {
		return Notification{}, err
	}

	n := NewNotification(c, event)
	if err := d.emitter.Emit(ctx, dest, n); err != nil {
		return Notification{}, fmt.Errorf("notify %s: %w", dest, err)
	}

	d.logger.WithFields(logging.Fields{
		"category":      n.Category,
		"destination":   dest,
		"invocation_id": n.ID,
	}).Info("Notification published")
	return n, nil
}
