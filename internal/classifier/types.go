package classifier

import (
	"encoding/json"
	"strconv"
	"strings"
)

type Category string

const (
	Security Category = "security"
	Cost     Category = "cost"
	Infra    Category = "infra"
)

// Categories lists the closed set of outcomes in fallback priority order.
var Categories = []Category{Security, Cost, Infra}

func (c Category) Valid() bool {
	switch c {
	case Security, Cost, Infra:
		return true
	default:
		return false
	}
}

// Path records how a classification was produced.
type Path string

const (
	PathStructured Path = "structured"
	PathFallback   Path = "fallback"
)

// Classification is the resolved decision for one event. Confidence and
// Reason are the raw JSON values reported by the model (or synthesized by
// the keyword fallback) and are passed downstream unchanged.
type Classification struct {
	Category   Category        `json:"category"`
	Confidence json.RawMessage `json:"confidence"`
	Reason     json.RawMessage `json:"reason"`
	Path       Path            `json:"-"`
}

// Score interprets Confidence as a number. Numeric strings are accepted
// because the prompt template shows the value quoted.
func (c Classification) Score() (float64, bool) {
	if len(c.Confidence) == 0 {
		return 0, false
	}
	var v interface{}
	if err := json.Unmarshal(c.Confidence, &v); err != nil {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// ReasonText returns Reason as text. A missing or null reason reports false;
// non-string values are returned as their JSON text.
func (c Classification) ReasonText() (string, bool) {
	if len(c.Reason) == 0 {
		return "", false
	}
	var v interface{}
	if err := json.Unmarshal(c.Reason, &v); err != nil {
		return "", false
	}
	switch s := v.(type) {
	case nil:
		return "", false
	case string:
		return s, true
	default:
		return string(c.Reason), true
	}
}
