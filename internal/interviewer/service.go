package interviewer

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"intervue/internal/llm"
)

// Intent labels, used for event logging and prompt selection.
const (
	IntentGenerateQuestion = "generate-question"
	IntentEvaluate         = "evaluate"
	IntentFinalSummary     = "final-summary"
)

// Config tunes generation parameters shared by all intents.
type Config struct {
	Temperature float64
	MaxTokens   int
}

// DefaultConfig returns the standard generation parameters.
func DefaultConfig() Config {
	return Config{
		Temperature: 0.7,
		MaxTokens:   1024,
	}
}

// Service is the AI interviewer: it generates questions, evaluates
// answers and writes the final summary. Every method absorbs transport
// and parsing failures by returning the deterministic fallback for its
// intent, so callers always get a usable result and can keep the
// interview moving.
type Service struct {
	provider llm.Provider
	cfg      Config
	log      zerolog.Logger
}

// NewService creates the AI interviewer. provider may be nil, in which
// case every call takes the fallback path immediately.
func NewService(provider llm.Provider, cfg Config, log zerolog.Logger) *Service {
	return &Service{
		provider: provider,
		cfg:      cfg,
		log:      log.With().Str("component", "interviewer").Logger(),
	}
}

// Enabled reports whether a live model backs this service.
func (s *Service) Enabled() bool {
	return s.provider != nil
}

// questionOutput is the parsed model response for question generation.
type questionOutput struct {
	ID         string          `json:"id"`
	Text       string          `json:"text"`
	Difficulty string          `json:"difficulty"`
	TimeLimit  json.RawMessage `json:"timeLimit"`
}

// GenerateQuestion produces the interview question for the given
// difficulty. index is the question's position in the interview and
// selects the fallback bank entry when the model is unusable.
func (s *Service) GenerateQuestion(ctx context.Context, difficulty Difficulty, index int) (Question, error) {
	raw, ok := s.invoke(ctx, IntentGenerateQuestion, questionPrompt(difficulty), questionSchema)
	if !ok {
		return FallbackQuestion(difficulty, index), nil
	}

	var out questionOutput
	if err := json.Unmarshal(raw, &out); err != nil {
		s.log.Warn().Err(err).Msg("question response did not decode, using fallback")
		return FallbackQuestion(difficulty, index), nil
	}

	q := Question{
		ID:         out.ID,
		Text:       out.Text,
		Difficulty: Difficulty(out.Difficulty),
	}
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	if !q.Difficulty.Valid() {
		q.Difficulty = difficulty
	}
	// The time limit is policy, not model output: always derived from
	// the difficulty mapping, whatever the response claimed.
	q.TimeLimitSeconds = q.Difficulty.TimeLimitSeconds()

	return q, nil
}

// evaluationOutput is the parsed model response for answer evaluation.
type evaluationOutput struct {
	Score    json.RawMessage `json:"score"`
	Feedback string          `json:"feedback"`
}

// EvaluateAnswer scores a single answer against its question.
func (s *Service) EvaluateAnswer(ctx context.Context, question Question, answer string) (Evaluation, error) {
	raw, ok := s.invoke(ctx, IntentEvaluate, evaluationPrompt(question, answer), evaluationSchema)
	if !ok {
		return FallbackEvaluation(question, answer), nil
	}

	var out evaluationOutput
	if err := json.Unmarshal(raw, &out); err != nil {
		s.log.Warn().Err(err).Msg("evaluation response did not decode, using fallback")
		return FallbackEvaluation(question, answer), nil
	}

	score, parsed := asInt(out.Score)
	if !parsed {
		return FallbackEvaluation(question, answer), nil
	}

	return Evaluation{
		Score:    clampScore(score),
		Feedback: out.Feedback,
	}, nil
}

// summaryOutput is the parsed model response for the final summary.
type summaryOutput struct {
	FinalScorePercent json.RawMessage `json:"finalScorePercent"`
	Summary           string          `json:"summary"`
}

// Summarize produces the final percentage and written summary over the
// answered records. The percentage is recomputed locally whenever the
// model's number is missing or unparseable, so a numeric result is
// always available.
func (s *Service) Summarize(ctx context.Context, records []QARecord) (Summary, error) {
	raw, ok := s.invoke(ctx, IntentFinalSummary, summaryPrompt(records), summarySchema)
	if !ok {
		return FallbackSummary(records), nil
	}

	var out summaryOutput
	if err := json.Unmarshal(raw, &out); err != nil {
		s.log.Warn().Err(err).Msg("summary response did not decode, using fallback")
		return FallbackSummary(records), nil
	}

	percent, parsed := asInt(out.FinalScorePercent)
	if !parsed || percent < 0 || percent > 100 {
		percent = ScorePercent(records)
	}

	return Summary{
		FinalScorePercent: percent,
		Text:              out.Summary,
	}, nil
}

// invoke runs one model call for an intent and normalizes the output.
// Returns (raw, false) when the result is unusable for any reason; the
// caller then substitutes the intent's fallback. Errors never escape.
func (s *Service) invoke(ctx context.Context, intent, prompt string, schema *namedSchema) (json.RawMessage, bool) {
	if s.provider == nil {
		return nil, false
	}

	ctx = llm.WithPurpose(ctx, intent)

	resp, err := s.provider.Generate(ctx, llm.Request{
		Prompt:       prompt,
		Temperature:  s.cfg.Temperature,
		MaxTokens:    s.cfg.MaxTokens,
		JSONResponse: true,
	})
	if err != nil {
		s.log.Warn().Err(err).Str("intent", intent).Msg("model call failed, using fallback")
		return nil, false
	}

	raw, err := ExtractJSON(resp.Text)
	if err != nil {
		s.log.Warn().Err(err).Str("intent", intent).Msg("response did not normalize, using fallback")
		return nil, false
	}

	if err := schema.validate(raw); err != nil {
		s.log.Warn().Err(err).Str("intent", intent).Msg("response failed validation, using fallback")
		return nil, false
	}

	return raw, true
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > MaxScore {
		return MaxScore
	}
	return score
}
