package interviewer

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// ExtractJSON pulls a single JSON object out of raw model output.
// Attempts, in order: the raw text as-is, the body of a fenced code
// block, and the first balanced top-level {...} substring. The first
// candidate that parses wins.
func ExtractJSON(text string) (json.RawMessage, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, fmt.Errorf("empty response")
	}

	if isJSONObject(trimmed) {
		return json.RawMessage(trimmed), nil
	}

	if inner, ok := fencedBlock(trimmed); ok && isJSONObject(inner) {
		return json.RawMessage(inner), nil
	}

	if obj, ok := firstObject(trimmed); ok && isJSONObject(obj) {
		return json.RawMessage(obj), nil
	}

	return nil, fmt.Errorf("no JSON object found in response")
}

func isJSONObject(s string) bool {
	var obj map[string]json.RawMessage
	return json.Unmarshal([]byte(s), &obj) == nil
}

// fencedBlock extracts the body of the first ``` fence, tolerating a
// language tag on the opening line.
func fencedBlock(s string) (string, bool) {
	start := strings.Index(s, "```")
	if start < 0 {
		return "", false
	}
	rest := s[start+3:]

	// Skip the language tag ("json", etc.) up to the first newline.
	if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
		rest = rest[nl+1:]
	}

	end := strings.Index(rest, "```")
	if end < 0 {
		return "", false
	}
	return strings.TrimSpace(rest[:end]), true
}

// firstObject scans for the first balanced top-level {...} substring,
// ignoring braces inside JSON strings.
func firstObject(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		switch {
		case escaped:
			escaped = false
		case c == '\\' && inString:
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
			// Braces inside strings don't count.
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}

// asInt coerces a raw JSON value to an integer: numbers are rounded,
// numeric strings parsed. Returns false for anything else, including a
// missing (nil) value.
func asInt(raw json.RawMessage) (int, bool) {
	if len(raw) == 0 || string(raw) == "null" {
		return 0, false
	}

	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return int(math.Round(f)), true
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if err := json.Unmarshal([]byte(strings.TrimSpace(s)), &f); err == nil {
			return int(math.Round(f)), true
		}
	}

	return 0, false
}
