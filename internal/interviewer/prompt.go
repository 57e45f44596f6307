package interviewer

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Each intent has one template. Every template demands a single minified
// JSON object with an exact key set, so the normalizer has as little
// ambiguity as possible to deal with.

func questionPrompt(difficulty Difficulty) string {
	var b strings.Builder

	b.WriteString("You are an expert interviewer for a full stack (React/Node) developer role.\n")
	fmt.Fprintf(&b, "Generate one unique, %s-level interview question.\n", difficulty)
	b.WriteString(`Return the response as a single, minified JSON object with these exact keys: "id", "text", "difficulty", and "timeLimit".` + "\n")
	b.WriteString("- \"id\": a new unique UUID.\n")
	b.WriteString("- \"text\": the question.\n")
	fmt.Fprintf(&b, "- \"difficulty\": %q.\n", string(difficulty))
	fmt.Fprintf(&b, "- \"timeLimit\": %d.", difficulty.TimeLimitSeconds())

	return b.String()
}

func evaluationPrompt(question Question, answer string) string {
	if strings.TrimSpace(answer) == "" {
		answer = "No answer provided."
	}

	var b strings.Builder

	b.WriteString("You are an expert interviewer evaluating a candidate's answer.\n")
	fmt.Fprintf(&b, "The question was: %q.\n", question.Text)
	fmt.Fprintf(&b, "The candidate's answer was: %q.\n", answer)
	b.WriteString("Evaluate the answer on a scale of 0 to 5. Be critical but fair. Provide brief, constructive feedback.\n")
	b.WriteString(`Return the response as a single, minified JSON object with these exact keys: "score" (an integer from 0 to 5) and "feedback" (a string, max 40 words).`)

	return b.String()
}

func summaryPrompt(records []QARecord) string {
	transcript, err := json.Marshal(records)
	if err != nil {
		// QARecord contains only marshalable fields; this cannot happen.
		transcript = []byte("[]")
	}

	var b strings.Builder

	b.WriteString("You are a hiring manager creating a final summary of a candidate's interview.\n")
	fmt.Fprintf(&b, "Here is the interview transcript: %s.\n", transcript)
	b.WriteString("Based ONLY on this transcript:\n")
	b.WriteString("1. Calculate a final percentage score. The max score for each question is 5.\n")
	b.WriteString("2. Write a concise summary (max 80 words) of the candidate's performance, highlighting strengths and weaknesses.\n")
	b.WriteString(`Return the response as a single, minified JSON object with these exact keys: "finalScorePercent" (an integer from 0 to 100) and "summary" (your summary text).`)

	return b.String()
}
