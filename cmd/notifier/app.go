package main

import (
	"context"
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/paulasielawa/Serverless-Event-driven-AI-Notifier/internal/classifier"
	"github.com/paulasielawa/Serverless-Event-driven-AI-Notifier/internal/config"
	"github.com/paulasielawa/Serverless-Event-driven-AI-Notifier/internal/events"
	"github.com/paulasielawa/Serverless-Event-driven-AI-Notifier/internal/handler"
	"github.com/paulasielawa/Serverless-Event-driven-AI-Notifier/internal/llm"
	"github.com/paulasielawa/Serverless-Event-driven-AI-Notifier/internal/logging"
	"github.com/paulasielawa/Serverless-Event-driven-AI-Notifier/internal/metrics"
)

type emitter interface {
	events.Emitter
	io.Closer
}

// app holds the process-wide clients shared by every invocation.
type app struct {
	cfg      config.Config
	logger   logging.Logger
	handler  *handler.Handler
	registry *prometheus.Registry
	closers  []io.Closer
}

func newApp(ctx context.Context) (*app, error) {
	logger := logging.NewLoggerWithService(serviceName)
	config.LoadEnv(logger)
	logger.SetLevel(config.GetLogLevel())

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	gen, err := llm.NewClient(ctx, llmConfig(cfg))
	if err != nil {
		return nil, err
	}

	em, err := newEmitter(ctx, cfg, logger)
	if err != nil {
		_ = gen.Close()
		return nil, err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	h := handler.New(
		classifier.New(gen, classifier.Resolver{Strict: cfg.StrictCategories}, logger),
		events.NewDispatcher(em, routes(cfg), logger),
		metrics.New(registry),
		cfg.Transport,
		logger,
	)

	logger.WithFields(logging.Fields{
		"provider":          cfg.Provider,
		"transport":         cfg.Transport,
		"strict_categories": cfg.StrictCategories,
	}).Info("AI notifier initialized")

	return &app{
		cfg:      cfg,
		logger:   logger,
		handler:  h,
		registry: registry,
		closers:  []io.Closer{gen, em},
	}, nil
}

func (a *app) Close() {
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			a.logger.WithError(err).Warn("Failed to close client")
		}
	}
}

func llmConfig(cfg config.Config) llm.Config {
	out := llm.Config{
		Provider: cfg.Provider,
		Model:    cfg.Model,
		Region:   cfg.BedrockRegion,
		APIURL:   cfg.LLMAPIURL,
		APIKey:   cfg.LLMAPIKey,
	}
	if cfg.Provider == "gemini" {
		out.APIKey = cfg.GeminiAPIKey
	}
	return out
}

func newEmitter(ctx context.Context, cfg config.Config, logger logging.Logger) (emitter, error) {
	switch cfg.Transport {
	case "sns":
		return events.NewSNSEmitter(ctx, cfg.AWSRegion, logger)
	case "pubsub":
		return events.NewPubSubEmitter(ctx, cfg.PubSubProjectID, logger)
	case "kafka":
		return events.NewKafkaEmitter(cfg.KafkaBrokers, logger)
	case "log":
		return events.NewLogEmitter(logger), nil
	default:
		return nil, fmt.Errorf("unknown notifier transport %q", cfg.Transport)
	}
}

// routes builds the destination table. The log transport has no real
// destinations, so unset entries fall back to the category name there.
func routes(cfg config.Config) events.Routes {
	r := events.NewRoutes(cfg.Routes.Security, cfg.Routes.Cost, cfg.Routes.Infra)
	if cfg.Transport == "log" {
		for category, dest := range r {
			if dest == "" {
				r[category] = string(category)
			}
		}
	}
	return r
}
