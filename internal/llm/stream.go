package llm

import (
	"context"
	"errors"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/iterator"
)

type StreamChunk struct {
	Text string
}

// Stream yields text parts as Gemini produces them. The error channel
// receives at most one error and is closed when the stream ends.
func (p *GeminiProvider) Stream(ctx context.Context, prompt string) (<-chan StreamChunk, <-chan error) {
	out := make(chan StreamChunk)
	errCh := make(chan error, 1)

	go func() {
		defer close(out)
		defer close(errCh)

		iter := p.model.GenerateContentStream(ctx, genai.Text(prompt))

		for {
			resp, err := iter.Next()
			if errors.Is(err, iterator.Done) {
				return
			}
			if err != nil {
				errCh <- err
				return
			}

			for _, cand := range resp.Candidates {
				if cand.Content == nil {
					continue
				}
				for _, part := range cand.Content.Parts {
					text, ok := part.(genai.Text)
					if !ok {
						continue
					}
					select {
					case out <- StreamChunk{Text: string(text)}:
					case <-ctx.Done():
						errCh <- ctx.Err()
						return
					}
				}
			}
		}
	}()

	return out, errCh
}
