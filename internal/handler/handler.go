package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/paulasielawa/Serverless-Event-driven-AI-Notifier/api"
	"github.com/paulasielawa/Serverless-Event-driven-AI-Notifier/internal/classifier"
	"github.com/paulasielawa/Serverless-Event-driven-AI-Notifier/internal/events"
	"github.com/paulasielawa/Serverless-Event-driven-AI-Notifier/internal/logging"
	"github.com/paulasielawa/Serverless-Event-driven-AI-Notifier/internal/metrics"
)

type Classifier interface {
	Classify(ctx context.Context, event api.Event) (classifier.Classification, error)
}

type Dispatcher interface {
	Dispatch(ctx context.Context, c classifier.Classification, event api.Event) (events.Notification, error)
}

// Handler processes one event per call: classify, then notify.
type Handler struct {
	classifier Classifier
	dispatcher Dispatcher
	metrics    *metrics.Metrics
	transport  string
	logger     logging.Logger
}

func New(c Classifier, d Dispatcher, m *metrics.Metrics, transport string, logger logging.Logger) *Handler {
	return &Handler{
		classifier: c,
		dispatcher: d,
		metrics:    m,
		transport:  transport,
		logger:     logging.OrNop(logger),
	}
}

// Handle either publishes one notification and returns the summary, or
// fails without publishing anything.
func (h *Handler) Handle(ctx context.Context, event api.Event) (api.Response, error) {
	start := time.Now()

	result, err := h.classifier.Classify(ctx, event)
	if err != nil {
		h.observe(start, "classify_error")
		return api.Response{}, err
	}
	label := categoryLabel(result.Category)
	h.metrics.Classifications.WithLabelValues(label, string(result.Path)).Inc()

	n, err := h.dispatcher.Dispatch(ctx, result, event)
	if err != nil {
		h.metrics.Notifications.WithLabelValues(label, h.transport, "error").Inc()
		h.observe(start, "notify_error")
		return api.Response{}, fmt.Errorf("dispatch %q: %w", result.Category, err)
	}
	h.metrics.Notifications.WithLabelValues(label, h.transport, "ok").Inc()
	h.observe(start, "ok")

	resp := api.Response{
		StatusCode:   http.StatusOK,
		Category:     string(result.Category),
		EventSummary: event,
	}
	if reason, ok := result.ReasonText(); ok {
		resp.AIReason = &reason
	}
	if score, ok := result.Score(); ok {
		resp.AIConfidence = &score
	}

	h.logger.WithFields(logging.Fields{
		"category":      resp.Category,
		"path":          result.Path,
		"event_name":    event.Name(),
		"invocation_id": n.ID,
		"duration_ms":   time.Since(start).Milliseconds(),
	}).Info("Event processed")
	return resp, nil
}

// categoryLabel keeps metric cardinality bounded when a permissive resolver
// lets arbitrary model text through as the category.
func categoryLabel(c classifier.Category) string {
	if c.Valid() {
		return string(c)
	}
	return "other"
}

func (h *Handler) observe(start time.Time, outcome string) {
	h.metrics.Duration.WithLabelValues(outcome).Observe(time.Since(start).Seconds())
}
