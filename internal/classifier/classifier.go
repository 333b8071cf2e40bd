package classifier

import (
	"context"
	"fmt"
	"strings"

	"github.com/paulasielawa/Serverless-Event-driven-AI-Notifier/api"
	"github.com/paulasielawa/Serverless-Event-driven-AI-Notifier/internal/llm"
	"github.com/paulasielawa/Serverless-Event-driven-AI-Notifier/internal/logging"
)

type Classifier struct {
	generator llm.Generator
	resolver  Resolver
	logger    logging.Logger
}

func New(generator llm.Generator, resolver Resolver, logger logging.Logger) *Classifier {
	return &Classifier{
		generator: generator,
		resolver:  resolver,
		logger:    logging.OrNop(logger),
	}
}

// Classify asks the model about the event and resolves its answer. Only a
// failed model call is an error.
func (c *Classifier) Classify(ctx context.Context, event api.Event) (Classification, error) {
	text, err := c.generator.Generate(ctx, BuildPrompt(event))
	if err != nil {
		return Classification{}, fmt.Errorf("classify event: %w", err)
	}
	text = strings.TrimSpace(text)

	result := c.resolver.Resolve(text)
	c.logger.WithFields(logging.Fields{
		"category":   result.Category,
		"path":       result.Path,
		"event_name": event.Name(),
	}).Debug("Resolved model output")
	if result.Path == PathFallback {
		c.logger.WithField("raw_len", len(text)).Warn("Model output was not structured; used keyword fallback")
	}
	return result, nil
}
