package llm

import (
	"context"
	"fmt"
	"io"
	"strings"
)

// Generator sends a single prompt to a hosted model and returns its text answer.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Client is a Generator holding connections that must be released.
type Client interface {
	Generator
	io.Closer
}

type Config struct {
	Provider string
	Model    string
	Region   string
	APIKey   string
	APIURL   string
}

const (
	defaultBedrockModel = "amazon.titan-text-lite-v1"
	defaultGeminiModel  = "gemini-2.5-flash"
)

// NewClient builds the provider named by cfg.Provider.
func NewClient(ctx context.Context, cfg Config) (Client, error) {
	switch strings.ToLower(cfg.Provider) {
	case "bedrock", "":
		return NewBedrockProvider(ctx, cfg)
	case "gemini":
		return NewGeminiProvider(ctx, cfg)
	case "openai":
		return NewOpenAIProvider(cfg), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", cfg.Provider)
	}
}
