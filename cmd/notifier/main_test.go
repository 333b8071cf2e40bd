package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paulasielawa/Serverless-Event-driven-AI-Notifier/internal/classifier"
	"github.com/paulasielawa/Serverless-Event-driven-AI-Notifier/internal/config"
)

func TestReadEventFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "event.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"detail":{"eventName":"CreateUser"}}`), 0o600))

	event, err := readEvent(nil, path)
	require.NoError(t, err)
	assert.Equal(t, "CreateUser", event.Name())
}

func TestReadEventFromStdin(t *testing.T) {
	event, err := readEvent(strings.NewReader(`{"eventName":"RunInstances"}`), "-")
	require.NoError(t, err)
	assert.Equal(t, "RunInstances", event.Name())
}

func TestReadEventKeepsNumbersVerbatim(t *testing.T) {
	event, err := readEvent(strings.NewReader(`{"detail":{"requestID":12345678901234567891,"ts":1.10}}`), "-")
	require.NoError(t, err)

	out, err := json.Marshal(event)
	require.NoError(t, err)
	assert.Contains(t, string(out), "12345678901234567891")
	assert.Contains(t, string(out), "1.10")
}

func TestReadEventRejectsNonObjects(t *testing.T) {
	for _, body := range []string{"null", "[]", "nope"} {
		_, err := readEvent(strings.NewReader(body), "-")
		assert.Error(t, err, body)
	}
}

func TestRoutesForLogTransport(t *testing.T) {
	r := routes(config.Config{Transport: "log", Routes: config.Routes{Cost: "billing"}})

	dest, err := r.Destination(classifier.Cost)
	require.NoError(t, err)
	assert.Equal(t, "billing", dest)

	dest, err = r.Destination(classifier.Security)
	require.NoError(t, err)
	assert.Equal(t, "security", dest)
}

func TestRoutesKeepEmptyForBrokers(t *testing.T) {
	r := routes(config.Config{Transport: "sns"})

	_, err := r.Destination(classifier.Infra)
	assert.Error(t, err)
}

func TestLLMConfig(t *testing.T) {
	gemini := llmConfig(config.Config{Provider: "gemini", GeminiAPIKey: "g", LLMAPIKey: "o"})
	assert.Equal(t, "g", gemini.APIKey)

	openai := llmConfig(config.Config{Provider: "openai", LLMAPIKey: "o", LLMAPIURL: "http://localhost:11434/v1"})
	assert.Equal(t, "o", openai.APIKey)
	assert.Equal(t, "http://localhost:11434/v1", openai.APIURL)

	bedrock := llmConfig(config.Config{Provider: "bedrock", BedrockRegion: "eu-north-1"})
	assert.Equal(t, "eu-north-1", bedrock.Region)
}
