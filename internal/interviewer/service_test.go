package interviewer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"intervue/internal/llm"
)

func testService(responses ...llm.MockResponse) (*Service, *llm.MockProvider) {
	mock := llm.NewMockProvider(responses...)
	return NewService(mock, DefaultConfig(), zerolog.Nop()), mock
}

func disabledService() *Service {
	return NewService(nil, DefaultConfig(), zerolog.Nop())
}

func TestGenerateQuestion_LiveResponse(t *testing.T) {
	s, mock := testService(llm.MockResponse{
		Text: `{"id":"q-1","text":"Explain event delegation.","difficulty":"medium","timeLimit":60}`,
	})

	q, err := s.GenerateQuestion(context.Background(), DifficultyMedium, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.ID != "q-1" || q.Text != "Explain event delegation." {
		t.Fatalf("unexpected question: %+v", q)
	}
	if q.Difficulty != DifficultyMedium || q.TimeLimitSeconds != 60 {
		t.Fatalf("unexpected difficulty/limit: %+v", q)
	}
	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call, got %d", mock.CallCount())
	}
	if !mock.Calls[0].JSONResponse {
		t.Fatal("question generation should request JSON output")
	}
}

func TestGenerateQuestion_TimeLimitAlwaysFromDifficulty(t *testing.T) {
	// The model claims a 999 second limit; policy wins.
	s, _ := testService(llm.MockResponse{
		Text: `{"text":"Explain hoisting.","difficulty":"easy","timeLimit":999}`,
	})

	q, err := s.GenerateQuestion(context.Background(), DifficultyEasy, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.TimeLimitSeconds != 20 {
		t.Fatalf("time limit %d, want 20", q.TimeLimitSeconds)
	}
}

func TestGenerateQuestion_DefaultsMissingFields(t *testing.T) {
	s, _ := testService(llm.MockResponse{
		Text: `{"text":"Explain the event loop.","difficulty":"legendary"}`,
	})

	q, err := s.GenerateQuestion(context.Background(), DifficultyHard, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.ID == "" {
		t.Fatal("missing id should be defaulted")
	}
	if q.Difficulty != DifficultyHard {
		t.Fatalf("unknown difficulty should fall back to requested, got %s", q.Difficulty)
	}
	if q.TimeLimitSeconds != 120 {
		t.Fatalf("time limit %d, want 120", q.TimeLimitSeconds)
	}
}

func TestGenerateQuestion_DisabledUsesBank(t *testing.T) {
	s := disabledService()
	q, err := s.GenerateQuestion(context.Background(), DifficultyEasy, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Text == "" || q.ID == "" || q.TimeLimitSeconds != 20 {
		t.Fatalf("fallback question incomplete: %+v", q)
	}
}

func TestGenerateQuestion_GarbageResponseFallsBack(t *testing.T) {
	s, _ := testService(llm.MockResponse{Text: "I cannot produce JSON today."})

	q, err := s.GenerateQuestion(context.Background(), DifficultyMedium, 2)
	if err != nil {
		t.Fatalf("errors must never surface: %v", err)
	}
	if q.Text == "" || q.TimeLimitSeconds != 60 {
		t.Fatalf("fallback question incomplete: %+v", q)
	}
}

func TestGenerateQuestion_ProviderErrorFallsBack(t *testing.T) {
	s, _ := testService(llm.MockResponse{Err: errors.New("invalid api key")})

	q, err := s.GenerateQuestion(context.Background(), DifficultyHard, 5)
	if err != nil {
		t.Fatalf("errors must never surface: %v", err)
	}
	if q.Text == "" || q.Difficulty != DifficultyHard {
		t.Fatalf("fallback question incomplete: %+v", q)
	}
}

func TestEvaluateAnswer_LiveResponse(t *testing.T) {
	s, _ := testService(llm.MockResponse{
		Text: "```json\n{\"score\": 4, \"feedback\": \"Good coverage of the basics.\"}\n```",
	})

	ev, err := s.EvaluateAnswer(context.Background(), Question{Text: "Q"}, "A")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ev.Score != 4 || ev.Feedback != "Good coverage of the basics." {
		t.Fatalf("unexpected evaluation: %+v", ev)
	}
}

func TestEvaluateAnswer_ScoreClamped(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{`{"score": 11, "feedback": "f"}`, 5},
		{`{"score": -2, "feedback": "f"}`, 0},
		{`{"score": "4", "feedback": "f"}`, 4},
	}
	for _, tt := range tests {
		s, _ := testService(llm.MockResponse{Text: tt.raw})
		ev, err := s.EvaluateAnswer(context.Background(), Question{Text: "Q"}, "A")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ev.Score != tt.want {
			t.Errorf("%s: score %d, want %d", tt.raw, ev.Score, tt.want)
		}
	}
}

func TestEvaluateAnswer_UnparseableScoreFallsBack(t *testing.T) {
	s, _ := testService(llm.MockResponse{Text: `{"score": "excellent", "feedback": "f"}`})

	ev, err := s.EvaluateAnswer(context.Background(), Question{Text: "Q"}, "some answer")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ev.Score < 0 || ev.Score > MaxScore {
		t.Fatalf("fallback score %d out of range", ev.Score)
	}
	if ev.Feedback == "" {
		t.Fatal("fallback feedback must not be empty")
	}
}

func TestSummarize_LiveResponse(t *testing.T) {
	s, _ := testService(llm.MockResponse{
		Text: `{"finalScorePercent": 72, "summary": "Solid mid-level candidate."}`,
	})

	sum, err := s.Summarize(context.Background(), []QARecord{{Score: 4}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sum.FinalScorePercent != 72 || sum.Text != "Solid mid-level candidate." {
		t.Fatalf("unexpected summary: %+v", sum)
	}
}

func TestSummarize_RecomputesBadPercent(t *testing.T) {
	records := []QARecord{{Score: 5}, {Score: 5}, {Score: 3}, {Score: 3}, {Score: 1}, {Score: 1}}
	for _, raw := range []string{
		`{"summary": "ok"}`,
		`{"finalScorePercent": 250, "summary": "ok"}`,
		`{"finalScorePercent": -1, "summary": "ok"}`,
		`{"finalScorePercent": "many", "summary": "ok"}`,
	} {
		s, _ := testService(llm.MockResponse{Text: raw})
		sum, err := s.Summarize(context.Background(), records)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if sum.FinalScorePercent != 60 {
			t.Errorf("%s: percent %d, want recomputed 60", raw, sum.FinalScorePercent)
		}
	}
}

func TestEvaluateAnswer_TransientFailuresThenModelResult(t *testing.T) {
	// Three transient failures are inside the retry budget, so the
	// model's verdict wins over the fallback.
	mock := llm.NewMockProvider(
		llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("down")}},
		llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("down")}},
		llm.MockResponse{Err: &llm.ErrRateLimit{Err: errors.New("429")}},
		llm.MockResponse{Text: `{"score": 5, "feedback": "excellent"}`},
	)
	retried := llm.WithRetry(mock, llm.RetryConfig{
		MaxAttempts: 5,
		InitialWait: time.Millisecond,
		MaxWait:     5 * time.Millisecond,
	})
	s := NewService(retried, DefaultConfig(), zerolog.Nop())

	ev, err := s.EvaluateAnswer(context.Background(), Question{Text: "Q"}, "A")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ev.Score != 5 || ev.Feedback != "excellent" {
		t.Fatalf("expected the model result, got %+v", ev)
	}
	if mock.CallCount() != 4 {
		t.Fatalf("expected 4 calls, got %d", mock.CallCount())
	}
}

func TestSummarize_DisabledFallback(t *testing.T) {
	s := disabledService()
	records := []QARecord{{Score: 5}, {Score: 0}}
	sum, err := s.Summarize(context.Background(), records)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sum.FinalScorePercent != 50 {
		t.Fatalf("percent %d, want 50", sum.FinalScorePercent)
	}
	if sum.Text == "" {
		t.Fatal("summary text must not be empty")
	}
}
