package interviewer

import (
	"fmt"
	"hash/fnv"
	"math"
	"strings"

	"github.com/google/uuid"
)

// Deterministic local results used when the model is disabled, keeps
// failing after retries, or returns output that never normalizes. The
// shapes are identical to the live path so callers cannot tell the
// difference structurally.

// fallbackQuestions is the canned question bank, cycled by index.
var fallbackQuestions = map[Difficulty][]string{
	DifficultyEasy: {
		"What is a React component? Give an example.",
		"What is the difference between var, let and const in JavaScript?",
	},
	DifficultyMedium: {
		"Explain how React hooks work and create a small example using useEffect to fetch data.",
		"Design a simple REST API in Node.js to handle user creation; what endpoints and middleware do you use?",
	},
	DifficultyHard: {
		"Given a React app that suffers from performance issues, how would you profile and improve it? Mention code-level changes.",
		"Design an authentication system for a multi-service app, including token strategy and refresh tokens.",
	},
}

// FallbackQuestion returns the canned question for the difficulty,
// cycling through the bank by question index.
func FallbackQuestion(difficulty Difficulty, index int) Question {
	if !difficulty.Valid() {
		difficulty = DifficultyEasy
	}
	bank := fallbackQuestions[difficulty]
	if index < 0 {
		index = 0
	}

	return Question{
		ID:               uuid.NewString(),
		Text:             bank[index%len(bank)],
		Difficulty:       difficulty,
		TimeLimitSeconds: difficulty.TimeLimitSeconds(),
	}
}

// FallbackEvaluation scores an answer without a model. The score is
// pseudo-random but deterministic in the question and answer text, so
// repeated calls for the same submission agree. An empty answer always
// scores zero.
func FallbackEvaluation(question Question, answer string) Evaluation {
	if strings.TrimSpace(answer) == "" {
		return Evaluation{
			Score:    0,
			Feedback: "No answer was provided before the time limit.",
		}
	}

	h := fnv.New32a()
	h.Write([]byte(question.Text))
	h.Write([]byte{0})
	h.Write([]byte(answer))
	score := int(h.Sum32() % (MaxScore + 1))

	return Evaluation{
		Score:    score,
		Feedback: fmt.Sprintf("Automated evaluation (score %d). The answer was recorded but could not be reviewed by the AI interviewer.", score),
	}
}

// FallbackSummary computes the arithmetic summary over the records.
func FallbackSummary(records []QARecord) Summary {
	percent := ScorePercent(records)
	return Summary{
		FinalScorePercent: percent,
		Text:              fmt.Sprintf("The candidate answered %d questions and scored %d%% overall.", len(records), percent),
	}
}

// ScorePercent is the canonical final score: round(100 * sum / (n*5)).
// Zero records yield zero.
func ScorePercent(records []QARecord) int {
	if len(records) == 0 {
		return 0
	}
	total := 0
	for _, r := range records {
		total += r.Score
	}
	return int(math.Round(100 * float64(total) / float64(len(records)*MaxScore)))
}
