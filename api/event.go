package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Event is an infrastructure event as delivered by the invoking environment,
// for example an EventBridge CloudTrail record. No schema is assumed.
type Event map[string]interface{}

// ErrNotObject is returned by DecodeEvent when the payload is valid JSON but
// not an object.
var ErrNotObject = errors.New("event must be a JSON object")

// DecodeEvent reads a single JSON object from r. Numbers are kept as
// json.Number so they are re-encoded exactly as received.
func DecodeEvent(r io.Reader) (Event, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var event Event
	if err := dec.Decode(&event); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, ErrNotObject
		}
		return nil, fmt.Errorf("decode event: %w", err)
	}
	if event == nil {
		return nil, ErrNotObject
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("decode event: unexpected data after the event object")
	}
	return event, nil
}

// Name returns the API operation name carried by the event, looking at the
// top level and under "detail" the way CloudTrail events nest it.
func (e Event) Name() string {
	if name, ok := e["eventName"].(string); ok {
		return name
	}
	if detail, ok := e["detail"].(map[string]interface{}); ok {
		if name, ok := detail["eventName"].(string); ok {
			return name
		}
	}
	return ""
}
