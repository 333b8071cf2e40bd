package classifier

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paulasielawa/Serverless-Event-driven-AI-Notifier/api"
)

type fakeGenerator struct {
	answer  string
	err     error
	prompts []string
}

func (f *fakeGenerator) Generate(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.answer, f.err
}

func startInstancesEvent() api.Event {
	return api.Event{
		"source":      "aws.ec2",
		"detail-type": "AWS API Call via CloudTrail",
		"detail": map[string]interface{}{
			"eventName": "StartInstances",
			"userIdentity": map[string]interface{}{
				"type":     "IAMUser",
				"userName": "test-user",
			},
		},
	}
}

func TestClassify_StructuredAnswer(t *testing.T) {
	gen := &fakeGenerator{answer: `  {"category": "infra", "confidence":0.9, "reason":"EC2 start event"}  `}
	c := New(gen, Resolver{Strict: true}, logrus.New())

	result, err := c.Classify(context.Background(), startInstancesEvent())
	require.NoError(t, err)

	assert.Equal(t, Infra, result.Category)
	score, ok := result.Score()
	assert.True(t, ok)
	assert.Equal(t, 0.9, score)
	reason, _ := result.ReasonText()
	assert.Contains(t, strings.ToLower(reason), "ec2 start event")

	require.Len(t, gen.prompts, 1)
	assert.Contains(t, gen.prompts[0], `"eventName":"StartInstances"`)
}

func TestClassify_FallbackUsesTrimmedText(t *testing.T) {
	gen := &fakeGenerator{answer: "\n  This is a security problem.  \n"}
	c := New(gen, Resolver{Strict: true}, nil)

	result, err := c.Classify(context.Background(), startInstancesEvent())
	require.NoError(t, err)

	assert.Equal(t, Security, result.Category)
	reason, _ := result.ReasonText()
	assert.Equal(t, "This is a security problem.", reason)
}

func TestClassify_GeneratorErrorPropagates(t *testing.T) {
	boom := errors.New("throttled")
	c := New(&fakeGenerator{err: boom}, Resolver{}, nil)

	_, err := c.Classify(context.Background(), startInstancesEvent())

	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}

func TestBuildPrompt_Deterministic(t *testing.T) {
	event := startInstancesEvent()

	first := BuildPrompt(event)
	second := BuildPrompt(event)

	assert.Equal(t, first, second)
	assert.Contains(t, first, `"security"`)
	assert.Contains(t, first, `{"eventName": "RunInstances"} → category: "cost"`)
	assert.True(t, strings.HasSuffix(first, "\n"))
}

func TestBuildPrompt_EmbedsFullEvent(t *testing.T) {
	event := api.Event{
		"detail": map[string]interface{}{
			"requestParameters": map[string]interface{}{"policyDocument": "<Allow & Deny>"},
		},
		"account": "123456789012",
	}

	prompt := BuildPrompt(event)

	assert.Contains(t, prompt, `{"account":"123456789012","detail":{"requestParameters":{"policyDocument":"<Allow & Deny>"}}}`)
}
