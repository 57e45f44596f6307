package interviewer

import "fmt"

// Difficulty is the level of a single interview question.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Per-question time limits in seconds. These values are an external
// contract: countdown display and auto-submit timing depend on them.
const (
	EasyTimeLimitSeconds   = 20
	MediumTimeLimitSeconds = 60
	HardTimeLimitSeconds   = 120
)

// MaxScore is the highest score a single answer can receive.
const MaxScore = 5

// TimeLimitSeconds returns the fixed time limit for the difficulty.
// Unknown values get the easy limit, the shortest of the three.
func (d Difficulty) TimeLimitSeconds() int {
	switch d {
	case DifficultyMedium:
		return MediumTimeLimitSeconds
	case DifficultyHard:
		return HardTimeLimitSeconds
	default:
		return EasyTimeLimitSeconds
	}
}

// Valid reports whether d is one of the three known difficulties.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// ParseDifficulty converts a string into a Difficulty.
func ParseDifficulty(s string) (Difficulty, error) {
	d := Difficulty(s)
	if !d.Valid() {
		return "", fmt.Errorf("unknown difficulty: %q", s)
	}
	return d, nil
}

// Question is one generated interview question.
type Question struct {
	ID               string     `json:"id"`
	Text             string     `json:"text"`
	Difficulty       Difficulty `json:"difficulty"`
	TimeLimitSeconds int        `json:"timeLimit"`
}

// Evaluation is the scored assessment of a single answer.
type Evaluation struct {
	Score    int    `json:"score"` // 0..MaxScore
	Feedback string `json:"feedback"`
}

// Summary is the final assessment over a whole interview.
type Summary struct {
	FinalScorePercent int    `json:"finalScorePercent"` // 0..100
	Text              string `json:"summary"`
}

// QARecord is one transcript row handed to the summarizer: the minimal
// view of an answered question.
type QARecord struct {
	Question   string     `json:"question"`
	Difficulty Difficulty `json:"difficulty"`
	Answer     string     `json:"answer"`
	Score      int        `json:"score"`
}
