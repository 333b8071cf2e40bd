package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

type GeminiProvider struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewGeminiProvider(ctx context.Context, cfg Config) (*GeminiProvider, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}

	name := cfg.Model
	if name == "" {
		name = defaultGeminiModel
	}
	model := client.GenerativeModel(name)
	model.SetTemperature(0)

	return &GeminiProvider{
		client: client,
		model:  model,
	}, nil
}

// Generate streams the answer and joins the chunks.
func (p *GeminiProvider) Generate(ctx context.Context, prompt string) (string, error) {
	out, errCh := p.Stream(ctx, prompt)
	return collect(out, errCh)
}

func (p *GeminiProvider) Close() error {
	return p.client.Close()
}

func collect(out <-chan StreamChunk, errCh <-chan error) (string, error) {
	var b strings.Builder
	for chunk := range out {
		b.WriteString(chunk.Text)
	}
	if err := <-errCh; err != nil {
		return "", fmt.Errorf("gemini: stream: %w", err)
	}
	if b.Len() == 0 {
		return "", errors.New("gemini: empty response")
	}
	return b.String(), nil
}
