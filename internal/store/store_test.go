package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"intervue/internal/interview"
	"intervue/internal/llm"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		if err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got); err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestSaveLoadSessions(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	name := "Jane Doe"
	answer := "an answer"
	score := 4
	asked := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	sessions := []*interview.Session{
		{
			ID:     "first",
			Name:   &name,
			Status: interview.StatusInProgress,
			Questions: []*interview.QuestionRecord{{
				ID:               "q1",
				Text:             "Explain closures.",
				TimeLimitSeconds: 20,
				AskedAt:          asked,
				AnswerText:       &answer,
				AnsweredAt:       &asked,
				Score:            &score,
			}},
		},
		{ID: "second", Status: interview.StatusNotStarted},
	}

	if err := s.SaveSessions(ctx, sessions); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := s.LoadSessions(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("loaded %d sessions, want 2", len(loaded))
	}
	if loaded[0].ID != "first" || loaded[1].ID != "second" {
		t.Fatalf("order lost: %s, %s", loaded[0].ID, loaded[1].ID)
	}
	if *loaded[0].Name != name {
		t.Errorf("name = %q", *loaded[0].Name)
	}
	q := loaded[0].Questions[0]
	if *q.AnswerText != answer || *q.Score != score {
		t.Errorf("question round trip lost data: %+v", q)
	}
	if !q.AskedAt.Equal(asked) {
		t.Errorf("asked at = %v", q.AskedAt)
	}
}

func TestSaveSessions_UpsertsExisting(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	sess := &interview.Session{ID: "only", Status: interview.StatusInProgress}
	if err := s.SaveSessions(ctx, []*interview.Session{sess}); err != nil {
		t.Fatalf("save: %v", err)
	}

	sess.Status = interview.StatusFinished
	if err := s.SaveSessions(ctx, []*interview.Session{sess}); err != nil {
		t.Fatalf("resave: %v", err)
	}

	loaded, err := s.LoadSessions(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded) != 1 {
		t.Fatalf("loaded %d sessions, want 1", len(loaded))
	}
	if loaded[0].Status != interview.StatusFinished {
		t.Fatalf("status = %s, want finished", loaded[0].Status)
	}
}

func TestLLMEvents(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	events := []llm.RequestEvent{
		{Provider: "gemini", Model: "gemini-2.0-flash", Purpose: "generate-question", InputTokens: 120, OutputTokens: 40, LatencyMs: 300, Success: true},
		{Provider: "gemini", Model: "gemini-2.0-flash", Purpose: "evaluate", LatencyMs: 900, Success: false, ErrorMessage: "rate limited"},
	}
	for _, ev := range events {
		if err := s.AppendLLMRequest(ctx, ev); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	got, err := s.QueryLLMEvents(ctx, 0)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d events, want 2", len(got))
	}
	// Newest first.
	if got[0].Purpose != "evaluate" || got[1].Purpose != "generate-question" {
		t.Fatalf("unexpected order: %s, %s", got[0].Purpose, got[1].Purpose)
	}
	if got[0].Success || !got[1].Success {
		t.Error("success flags lost")
	}
	if got[0].ErrorMessage != "rate limited" {
		t.Errorf("error message = %q", got[0].ErrorMessage)
	}
	if got[1].InputTokens != 120 || got[1].OutputTokens != 40 {
		t.Errorf("token counts lost: %+v", got[1])
	}

	limited, err := s.QueryLLMEvents(ctx, 1)
	if err != nil {
		t.Fatalf("query limited: %v", err)
	}
	if len(limited) != 1 || limited[0].Purpose != "evaluate" {
		t.Fatalf("limit not applied: %+v", limited)
	}
}
