package events

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/paulasielawa/Serverless-Event-driven-AI-Notifier/api"
	"github.com/paulasielawa/Serverless-Event-driven-AI-Notifier/internal/classifier"
)

const subjectPrefix = "AI Notifier Event: "

// Notification is one outgoing message plus the metadata transports attach to it.
type Notification struct {
	ID       string
	Category string
	Subject  string
	Message  api.NotificationMessage
}

func NewNotification(c classifier.Classification, event api.Event) Notification {
	category := string(c.Category)
	return Notification{
		ID:       uuid.NewString(),
		Category: category,
		Subject:  Subject(category),
		Message: api.NotificationMessage{
			AIResult: api.AIResult{
				Category:      category,
				Confidence:    c.Confidence,
				Reason:        c.Reason,
				OriginalEvent: event,
			},
			EventDetails: event,
		},
	}
}

func Subject(category string) string {
	return subjectPrefix + strings.ToUpper(category)
}

// Body is the JSON payload published to the destination.
func (n Notification) Body() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(n.Message); err != nil {
		return nil, fmt.Errorf("marshal notification: %w", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Attributes are the string key/values carried next to the body by
// transports that support them.
func (n Notification) Attributes() map[string]string {
	return map[string]string{
		"subject":       n.Subject,
		"category":      n.Category,
		"invocation_id": n.ID,
	}
}
