package content

import (
	"encoding/json"
	"fmt"
)

// StrictValidationResult is the outcome of ValidateStrict. Message holds
// the first violation found when IsValid is false.
type StrictValidationResult struct {
	IsValid bool   `json:"isValid"`
	Message string `json:"message,omitempty"`
}

func invalid(format string, args ...any) StrictValidationResult {
	return StrictValidationResult{Message: fmt.Sprintf(format, args...)}
}

// ValidateStrict is the fail-closed companion to Sanitize: instead of
// repairing a malformed document it rejects on the first structural
// violation, in block order. It is meant for call sites that persist
// pre-canonicalized documents and must not silently accept drift.
func ValidateStrict(raw json.RawMessage) StrictValidationResult {
	var parsed any
	if len(raw) == 0 || json.Unmarshal(raw, &parsed) != nil {
		return invalid("content must be a JSON object")
	}

	obj, ok := parsed.(map[string]any)
	if !ok {
		return invalid("content must be a JSON object")
	}

	if _, ok := obj["time"].(float64); !ok {
		return invalid("content is missing a numeric time field")
	}
	if v, ok := obj["version"].(string); !ok || v == "" {
		return invalid("content is missing a version field")
	}

	blocks, ok := obj["blocks"].([]any)
	if !ok {
		return invalid("content is missing a blocks array")
	}

	for i, rb := range blocks {
		block, ok := rb.(map[string]any)
		if !ok {
			return invalid("block %d is not an object", i)
		}
		if t, ok := block["type"].(string); !ok || t == "" {
			return invalid("block %d is missing a string type", i)
		}
		if _, ok := block["data"].(map[string]any); !ok {
			return invalid("block %d is missing a data object", i)
		}
	}

	return StrictValidationResult{IsValid: true}
}
