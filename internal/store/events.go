package store

import (
	"context"
	"fmt"
	"time"

	"intervue/internal/llm"
)

// LLMEvent is one recorded model call, as returned by QueryLLMEvents.
type LLMEvent struct {
	ID           int64
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	CreatedAt    time.Time
}

// AppendLLMRequest implements llm.EventRecorder.
func (s *Store) AppendLLMRequest(ctx context.Context, ev llm.RequestEvent) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO llm_events (provider, model, purpose, input_tokens, output_tokens, latency_ms, success, error_message, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		ev.Provider, ev.Model, ev.Purpose, ev.InputTokens, ev.OutputTokens,
		ev.LatencyMs, ev.Success, ev.ErrorMessage, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("save model request event: %w", err)
	}
	return nil
}

// QueryLLMEvents returns the most recent model call events, newest
// first, capped at limit (0 means no cap).
func (s *Store) QueryLLMEvents(ctx context.Context, limit int) ([]LLMEvent, error) {
	q := `SELECT id, provider, model, purpose, input_tokens, output_tokens, latency_ms, success, error_message, created_at
		FROM llm_events ORDER BY id DESC`
	args := []any{}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query model events: %w", err)
	}
	defer rows.Close()

	var out []LLMEvent
	for rows.Next() {
		var ev LLMEvent
		var created string
		if err := rows.Scan(&ev.ID, &ev.Provider, &ev.Model, &ev.Purpose,
			&ev.InputTokens, &ev.OutputTokens, &ev.LatencyMs, &ev.Success,
			&ev.ErrorMessage, &created); err != nil {
			return nil, fmt.Errorf("scan event row: %w", err)
		}
		if t, err := time.Parse(time.RFC3339, created); err == nil {
			ev.CreatedAt = t
		}
		out = append(out, ev)
	}
	return out, rows.Err()
}
