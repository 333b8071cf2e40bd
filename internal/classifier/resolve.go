package classifier

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	fallbackConfidence = "0.5"
	reasonLimit        = 500
)

var (
	fenceOpen  = regexp.MustCompile("```[\\w-]*\\n")
	objectSpan = regexp.MustCompile(`(?s)\{.*\}`)
)

// Resolver turns raw model output into a Classification. It never fails:
// output that cannot be decoded is classified by keyword.
//
// With Strict set, a decoded category outside Categories is treated like an
// undecodable answer. Without it the decoded category is returned as-is,
// even when no destination exists for it.
type Resolver struct {
	Strict bool
}

func (r Resolver) Resolve(raw string) Classification {
	if c, ok := r.decode(raw); ok {
		return c
	}
	return Fallback(raw)
}

func (r Resolver) decode(raw string) (Classification, bool) {
	cleaned := fenceOpen.ReplaceAllString(raw, "")
	cleaned = strings.TrimSpace(strings.ReplaceAll(cleaned, "```", ""))

	span := objectSpan.FindString(cleaned)
	if span == "" {
		return Classification{}, false
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(span), &fields); err != nil {
		return Classification{}, false
	}
	rawCategory, ok := fields["category"]
	if !ok {
		return Classification{}, false
	}

	category, isString := decodeCategory(rawCategory)
	if r.Strict && (!isString || !category.Valid()) {
		return Classification{}, false
	}

	return Classification{
		Category:   category,
		Confidence: fields["confidence"],
		Reason:     fields["reason"],
		Path:       PathStructured,
	}, true
}

func decodeCategory(raw json.RawMessage) (Category, bool) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return Category(s), true
	}
	text := string(bytes.TrimSpace(raw))
	if text == "null" {
		return "", false
	}
	return Category(text), false
}

// Fallback classifies raw text by keyword. "security" outranks "cost",
// and anything else is infra.
func Fallback(raw string) Classification {
	lower := strings.ToLower(raw)

	category := Infra
	switch {
	case strings.Contains(lower, string(Security)):
		category = Security
	case strings.Contains(lower, string(Cost)):
		category = Cost
	}

	return Classification{
		Category:   category,
		Confidence: json.RawMessage(fallbackConfidence),
		Reason:     marshalString(truncateRunes(raw, reasonLimit)),
		Path:       PathFallback,
	}
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

func marshalString(s string) json.RawMessage {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	// Encoding a string cannot fail.
	_ = enc.Encode(s)
	return json.RawMessage(bytes.TrimRight(buf.Bytes(), "\n"))
}
