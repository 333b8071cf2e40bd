package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paulasielawa/Serverless-Event-driven-AI-Notifier/api"
	"github.com/paulasielawa/Serverless-Event-driven-AI-Notifier/internal/classifier"
)

type emitted struct {
	destination string
	n           Notification
}

type fakeEmitter struct {
	err   error
	calls []emitted
}

func (f *fakeEmitter) Emit(_ context.Context, destination string, n Notification) error {
	f.calls = append(f.calls, emitted{destination: destination, n: n})
	return f.err
}

var testRoutes = NewRoutes("arn:aws:sns:fake-security", "arn:aws:sns:fake-cost", "arn:aws:sns:fake-infra")

func testEvent() api.Event {
	return api.Event{
		"source": "aws.iam",
		"detail": map[string]interface{}{"eventName": "CreateUser"},
	}
}

func TestDispatch_RoutesByCategory(t *testing.T) {
	for category, want := range map[classifier.Category]string{
		classifier.Security: "arn:aws:sns:fake-security",
		classifier.Cost:     "arn:aws:sns:fake-cost",
		classifier.Infra:    "arn:aws:sns:fake-infra",
	} {
		t.Run(string(category), func(t *testing.T) {
			em := &fakeEmitter{}
			d := NewDispatcher(em, testRoutes, logrus.New())

			n, err := d.Dispatch(context.Background(), classifier.Classification{Category: category}, testEvent())
			require.NoError(t, err)

			require.Len(t, em.calls, 1)
			assert.Equal(t, want, em.calls[0].destination)
			assert.Equal(t, n.ID, em.calls[0].n.ID)
		})
	}
}

func TestDispatch_UnknownCategoryEmitsNothing(t *testing.T) {
	em := &fakeEmitter{}
	d := NewDispatcher(em, testRoutes, logrus.New())

	_, err := d.Dispatch(context.Background(), classifier.Classification{Category: "network"}, testEvent())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownCategory)
	assert.Empty(t, em.calls)
}

func TestDispatch_EmptyDestination(t *testing.T) {
	em := &fakeEmitter{}
	d := NewDispatcher(em, NewRoutes("s", "", "i"), logrus.New())

	_, err := d.Dispatch(context.Background(), classifier.Classification{Category: classifier.Cost}, testEvent())

	assert.ErrorIs(t, err, ErrNoDestination)
	assert.Empty(t, em.calls)
}

func TestDispatch_EmitterFailure(t *testing.T) {
	boom := errors.New("AuthorizationError")
	em := &fakeEmitter{err: boom}
	d := NewDispatcher(em, testRoutes, logrus.New())

	_, err := d.Dispatch(context.Background(), classifier.Classification{Category: classifier.Infra}, testEvent())

	assert.ErrorIs(t, err, boom)
	assert.Len(t, em.calls, 1)
}

func TestDispatch_NilLogger(t *testing.T) {
	em := &fakeEmitter{}
	d := NewDispatcher(em, testRoutes, nil)

	_, err := d.Dispatch(context.Background(), classifier.Classification{Category: classifier.Security}, testEvent())
	require.NoError(t, err)
	assert.Len(t, em.calls, 1)

	require.NoError(t, NewLogEmitter(nil).Emit(context.Background(), "security", em.calls[0].n))
}

func TestNotificationBody(t *testing.T) {
	c := classifier.Resolver{Strict: true}.Resolve(`{"category":"security","confidence":0.8,"reason":"IAM change"}`)
	event := testEvent()

	n := NewNotification(c, event)

	assert.Equal(t, "AI Notifier Event: SECURITY", n.Subject)
	assert.NotEmpty(t, n.ID)

	body, err := n.Body()
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"ai-result": {
			"category": "security",
			"confidence": 0.8,
			"reason": "IAM change",
			"original_event": {"source": "aws.iam", "detail": {"eventName": "CreateUser"}}
		},
		"event-details": {"source": "aws.iam", "detail": {"eventName": "CreateUser"}}
	}`, string(body))
}

func TestNotificationBody_MissingConfidenceIsNull(t *testing.T) {
	c := classifier.Resolver{}.Resolve(`{"category":"infra"}`)

	body, err := NewNotification(c, api.Event{}).Body()
	require.NoError(t, err)

	var decoded map[string]map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &decoded))
	assert.Contains(t, decoded["ai-result"], "confidence")
	assert.Nil(t, decoded["ai-result"]["confidence"])
	assert.Nil(t, decoded["ai-result"]["reason"])
}

func TestSubject(t *testing.T) {
	assert.Equal(t, "AI Notifier Event: COST", Subject("cost"))
	assert.Equal(t, "AI Notifier Event: INFRA", Subject("infra"))
}
