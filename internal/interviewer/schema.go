package interviewer

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Per-intent schemas for the parsed model output. Deliberately loose
// where coercion recovers the value anyway: a missing "id" is defaulted,
// "timeLimit" is always overridden, "finalScorePercent" is recomputed.
var (
	questionSchema = intentSchema("question-response", map[string]any{
		"type": "object",
		"properties": map[string]any{
			"id":         map[string]any{"type": "string"},
			"text":       map[string]any{"type": "string", "minLength": 1},
			"difficulty": map[string]any{"type": "string"},
			"timeLimit":  map[string]any{},
		},
		"required": []any{"text"},
	})

	evaluationSchema = intentSchema("evaluation-response", map[string]any{
		"type": "object",
		"properties": map[string]any{
			"score":    map[string]any{},
			"feedback": map[string]any{"type": "string"},
		},
		"required": []any{"score", "feedback"},
	})

	summarySchema = intentSchema("summary-response", map[string]any{
		"type": "object",
		"properties": map[string]any{
			"finalScorePercent": map[string]any{},
			"summary":           map[string]any{"type": "string", "minLength": 1},
		},
		"required": []any{"summary"},
	})
)

type namedSchema struct {
	name       string
	definition map[string]any

	once       sync.Once
	compiled   *jsonschema.Schema
	compileErr error
}

func intentSchema(name string, definition map[string]any) *namedSchema {
	return &namedSchema{name: name, definition: definition}
}

// validate checks the parsed model output against the intent's schema.
func (s *namedSchema) validate(raw json.RawMessage) error {
	s.once.Do(func() {
		s.compiled, s.compileErr = compileSchema(s.name, s.definition)
	})
	if s.compileErr != nil {
		return fmt.Errorf("compile schema %q: %w", s.name, s.compileErr)
	}

	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	if err := s.compiled.Validate(parsed); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

func compileSchema(name string, definition map[string]any) (*jsonschema.Schema, error) {
	// The jsonschema library expects a parsed JSON value (any), not raw
	// bytes. Marshal then unmarshal to get a clean any representation.
	defBytes, err := json.Marshal(definition)
	if err != nil {
		return nil, fmt.Errorf("marshal schema definition: %w", err)
	}
	var defParsed any
	if err := json.Unmarshal(defBytes, &defParsed); err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	schemaURL := fmt.Sprintf("schema://%s.json", name)
	if err := c.AddResource(schemaURL, defParsed); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}

	compiled, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}
	return compiled, nil
}
