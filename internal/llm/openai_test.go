package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAIProviderGenerate(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "/chat/completions", r.URL.Path)

		var req chatCompletionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		assert.Equal(t, "gpt-test", req.Model)
		assert.False(t, req.Stream)
		assert.Len(t, req.Messages, 1)
		assert.Equal(t, "hi", req.Messages[0].Content)

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id":"1","object":"chat.completion","choices":[{"message":{"role":"assistant","content":"{\"category\":\"cost\"}"}}]}`)
	}))
	defer server.Close()

	provider := NewOpenAIProvider(Config{
		APIURL: server.URL + "/",
		APIKey: "test-key",
		Model:  "gpt-test",
	})

	out, err := provider.Generate(context.Background(), "hi")
	require.NoError(t, err)
	assert.Equal(t, `{"category":"cost"}`, out)
}

func TestOpenAIProviderErrors(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		fmt.Fprint(w, "slow down")
	}))
	defer server.Close()

	_, err := NewOpenAIProvider(Config{APIURL: server.URL, Model: "m"}).Generate(context.Background(), "hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")

	_, err = NewOpenAIProvider(Config{APIURL: server.URL}).Generate(context.Background(), "hi")
	assert.EqualError(t, err, "openai: model is required")
}

func TestOpenAIProviderNoChoices(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"choices":[]}`)
	}))
	defer server.Close()

	_, err := NewOpenAIProvider(Config{APIURL: server.URL, Model: "m"}).Generate(context.Background(), "hi")
	assert.EqualError(t, err, "openai: response has no choices")
}

func TestNewClientUnknownProvider(t *testing.T) {
	_, err := NewClient(context.Background(), Config{Provider: "titan"})
	assert.EqualError(t, err, `unknown LLM provider "titan"`)
}

func TestNewClientOpenAI(t *testing.T) {
	c, err := NewClient(context.Background(), Config{Provider: "OpenAI", Model: "m"})
	require.NoError(t, err)
	assert.IsType(t, &OpenAIProvider{}, c)
	assert.NoError(t, c.Close())
}
