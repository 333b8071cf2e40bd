package api

import "encoding/json"

// AIResult is the classification block of an outgoing notification.
// Confidence and Reason hold the model's values untouched.
type AIResult struct {
	Category      string          `json:"category"`
	Confidence    json.RawMessage `json:"confidence"`
	Reason        json.RawMessage `json:"reason"`
	OriginalEvent Event           `json:"original_event"`
}

// NotificationMessage is the JSON body published to the category destination.
type NotificationMessage struct {
	AIResult     AIResult `json:"ai-result"`
	EventDetails Event    `json:"event-details"`
}

// Response is returned to the invoking environment after a notification was sent.
type Response struct {
	StatusCode   int      `json:"statusCode"`
	Category     string   `json:"category"`
	AIReason     *string  `json:"ai_reason"`
	AIConfidence *float64 `json:"ai_confidence"`
	EventSummary Event    `json:"event_summary"`
}

// ErrorResponse is written by the HTTP surface when an invocation fails.
type ErrorResponse struct {
	Error string `json:"error"`
}
