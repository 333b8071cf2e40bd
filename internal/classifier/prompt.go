package classifier

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/paulasielawa/Serverless-Event-driven-AI-Notifier/api"
)

const promptHeader = `You are an AWS event analyst.
Analyze the following AWS EventBridge event and classify it into one of:
- "security": relates to IAM, policies, unauthorized access, keys, permissions
- "cost": relates to starting/stopping/terminating instances, data transfers
- "infra": other infrastructure operations

Return your response as **valid JSON** with the following structure:
{
  "category": "<one of: security|cost|infra>",
  "confidence": "<0-1 float>",
  "reason": "<short explanation why you categorized it>"
}

Example events:
{"eventName": "RunInstances"} → category: "cost"
{"eventName": "CreateUser"} → category: "security"
{"eventName": "CreateBucket"} → category: "infra"

Event JSON:
`

// BuildPrompt renders the classification prompt for an event. Map keys are
// emitted in sorted order so the same event always yields the same prompt.
func BuildPrompt(event api.Event) string {
	var b strings.Builder
	b.WriteString(promptHeader)
	b.WriteString(encodeEvent(event))
	b.WriteString("\n")
	return b.String()
}

func encodeEvent(event api.Event) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(event); err != nil {
		return fmt.Sprintf("%v", map[string]interface{}(event))
	}
	return strings.TrimRight(buf.String(), "\n")
}
