package interview

import (
	"strings"
	"time"

	"intervue/internal/interviewer"
)

// Status is the lifecycle state of a session. Transitions move strictly
// forward: not_started → in_progress → finished.
type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusInProgress Status = "in_progress"
	StatusFinished   Status = "finished"
)

// Transcript roles.
const (
	RoleInterviewer = "interviewer"
	RoleCandidate   = "candidate"
)

// ChatMessage is one transcript entry.
type ChatMessage struct {
	Role string    `json:"role"`
	Text string    `json:"text"`
	At   time.Time `json:"at"`
}

// ContactInfo carries the candidate fields supplied by the resume
// ingestion collaborator. Any field may be nil.
type ContactInfo struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
	Phone *string `json:"phone"`
}

// Complete reports whether all three contact fields are present and
// non-empty.
func (c ContactInfo) Complete() bool {
	for _, f := range []*string{c.Name, c.Email, c.Phone} {
		if f == nil || strings.TrimSpace(*f) == "" {
			return false
		}
	}
	return true
}

// QuestionRecord is one asked question and its answer lifecycle. A
// record transitions open → answered exactly once; re-answering is
// rejected, never overwritten.
type QuestionRecord struct {
	ID               string                 `json:"id"`
	Text             string                 `json:"text"`
	Difficulty       interviewer.Difficulty `json:"difficulty"`
	TimeLimitSeconds int                    `json:"timeLimit"`
	AskedAt          time.Time              `json:"askedAt"`
	AnsweredAt       *time.Time             `json:"answeredAt"`
	AnswerText       *string                `json:"answerText"` // "" is a valid no-answer value, distinct from nil
	Score            *int                   `json:"score"`
	Feedback         *string                `json:"feedback"`

	// inFlight marks a record whose answer has been accepted but whose
	// evaluation has not landed yet. It keeps the accept/evaluate gap
	// invisible: snapshots taken during evaluation still show the
	// record as open, and AnsweredAt is only ever set together with
	// Score and Feedback. Deliberately not serialized; a restored
	// mid-evaluation record reopens and its deadline re-arms.
	inFlight bool
}

// Answered reports whether the record has left the open state.
func (r *QuestionRecord) Answered() bool {
	return r.AnsweredAt != nil
}

// closed reports whether the record still accepts an answer. Covers
// both fully answered records and ones whose evaluation is in flight.
func (r *QuestionRecord) closed() bool {
	return r.inFlight || r.AnsweredAt != nil
}

// Remaining derives the time left on the question's clock from the
// wall-clock and the stored AskedAt, clamped to zero. Because it never
// accumulates, the result survives process restarts and suspends.
func (r *QuestionRecord) Remaining(now time.Time) time.Duration {
	limit := time.Duration(r.TimeLimitSeconds) * time.Second
	remaining := limit - now.Sub(r.AskedAt)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Session is one candidate's full interview attempt.
type Session struct {
	ID         string     `json:"id"`
	Name       *string    `json:"name"`
	Email      *string    `json:"email"`
	Phone      *string    `json:"phone"`
	Status     Status     `json:"status"`
	StartedAt  *time.Time `json:"startedAt"`
	FinishedAt *time.Time `json:"finishedAt"`

	// CurrentQuestionIndex is 0-based and monotonically non-decreasing.
	// While in progress, Questions holds exactly the asked-so-far
	// questions: len(Questions) == CurrentQuestionIndex+1.
	CurrentQuestionIndex int               `json:"currentQuestionIndex"`
	Questions            []*QuestionRecord `json:"questions"`

	FinalScorePercent *int    `json:"finalScorePercent"`
	Summary           *string `json:"summary"`

	Transcript []ChatMessage `json:"transcript"`
}

// CurrentQuestion returns the record at the current index, or nil when
// none has been asked yet.
func (s *Session) CurrentQuestion() *QuestionRecord {
	if s.CurrentQuestionIndex < 0 || s.CurrentQuestionIndex >= len(s.Questions) {
		return nil
	}
	return s.Questions[s.CurrentQuestionIndex]
}

// clone returns a deep copy safe to hand outside the service lock.
func (s *Session) clone() *Session {
	out := *s
	out.Name = copyPtr(s.Name)
	out.Email = copyPtr(s.Email)
	out.Phone = copyPtr(s.Phone)
	out.StartedAt = copyPtr(s.StartedAt)
	out.FinishedAt = copyPtr(s.FinishedAt)
	out.FinalScorePercent = copyPtr(s.FinalScorePercent)
	out.Summary = copyPtr(s.Summary)

	out.Questions = make([]*QuestionRecord, len(s.Questions))
	for i, q := range s.Questions {
		qc := *q
		qc.AnsweredAt = copyPtr(q.AnsweredAt)
		qc.AnswerText = copyPtr(q.AnswerText)
		qc.Score = copyPtr(q.Score)
		qc.Feedback = copyPtr(q.Feedback)
		out.Questions[i] = &qc
	}

	out.Transcript = make([]ChatMessage, len(s.Transcript))
	copy(out.Transcript, s.Transcript)

	return &out
}

func copyPtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
