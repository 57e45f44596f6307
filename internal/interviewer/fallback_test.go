package interviewer

import (
	"testing"
)

func TestFallbackQuestion_CyclesBank(t *testing.T) {
	q0 := FallbackQuestion(DifficultyEasy, 0)
	q1 := FallbackQuestion(DifficultyEasy, 1)
	q2 := FallbackQuestion(DifficultyEasy, 2)

	if q0.Text == q1.Text {
		t.Fatal("adjacent indexes should hit different bank entries")
	}
	if q0.Text != q2.Text {
		t.Fatal("bank should cycle with period 2")
	}
	if q0.ID == q1.ID {
		t.Fatal("every question gets a fresh id")
	}
}

func TestFallbackQuestion_TimeLimitFromDifficulty(t *testing.T) {
	tests := []struct {
		difficulty Difficulty
		want       int
	}{
		{DifficultyEasy, 20},
		{DifficultyMedium, 60},
		{DifficultyHard, 120},
	}
	for _, tt := range tests {
		q := FallbackQuestion(tt.difficulty, 0)
		if q.TimeLimitSeconds != tt.want {
			t.Errorf("%s: time limit %d, want %d", tt.difficulty, q.TimeLimitSeconds, tt.want)
		}
		if q.Difficulty != tt.difficulty {
			t.Errorf("%s: difficulty %s", tt.difficulty, q.Difficulty)
		}
	}
}

func TestFallbackQuestion_InvalidDifficulty(t *testing.T) {
	q := FallbackQuestion(Difficulty("impossible"), 0)
	if q.Difficulty != DifficultyEasy {
		t.Fatalf("invalid difficulty should degrade to easy, got %s", q.Difficulty)
	}
	if q.TimeLimitSeconds != 20 {
		t.Fatalf("unexpected time limit %d", q.TimeLimitSeconds)
	}
}

func TestFallbackEvaluation_Deterministic(t *testing.T) {
	q := Question{Text: "Explain closures."}
	first := FallbackEvaluation(q, "A closure captures its environment.")
	second := FallbackEvaluation(q, "A closure captures its environment.")

	if first.Score != second.Score {
		t.Fatalf("same submission scored %d then %d", first.Score, second.Score)
	}
	if first.Score < 0 || first.Score > MaxScore {
		t.Fatalf("score %d out of range", first.Score)
	}
	if first.Feedback == "" {
		t.Fatal("feedback must not be empty")
	}
}

func TestFallbackEvaluation_EmptyAnswerScoresZero(t *testing.T) {
	q := Question{Text: "Explain closures."}
	for _, answer := range []string{"", "   ", "\n\t"} {
		ev := FallbackEvaluation(q, answer)
		if ev.Score != 0 {
			t.Fatalf("empty answer %q scored %d", answer, ev.Score)
		}
	}
}

func TestScorePercent(t *testing.T) {
	records := func(scores ...int) []QARecord {
		out := make([]QARecord, len(scores))
		for i, s := range scores {
			out[i] = QARecord{Score: s}
		}
		return out
	}

	tests := []struct {
		name   string
		scores []int
		want   int
	}{
		{"empty", nil, 0},
		{"all zero", []int{0, 0, 0, 0, 0, 0}, 0},
		{"perfect", []int{5, 5, 5, 5, 5, 5}, 100},
		{"mixed", []int{5, 5, 3, 3, 1, 1}, 60},
		{"rounds down", []int{2, 2, 1, 1, 1, 0}, 23},
		{"rounds up", []int{2, 2, 2, 1, 1, 0}, 27},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ScorePercent(records(tt.scores...)); got != tt.want {
				t.Fatalf("ScorePercent(%v) = %d, want %d", tt.scores, got, tt.want)
			}
		})
	}
}

func TestFallbackSummary_UsesCanonicalPercent(t *testing.T) {
	records := []QARecord{{Score: 5}, {Score: 5}, {Score: 3}, {Score: 3}, {Score: 1}, {Score: 1}}
	s := FallbackSummary(records)
	if s.FinalScorePercent != 60 {
		t.Fatalf("percent %d, want 60", s.FinalScorePercent)
	}
	if s.Text == "" {
		t.Fatal("summary text must not be empty")
	}
}
