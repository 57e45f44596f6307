package interview

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"intervue/internal/interviewer"
)

// Oracle is the AI interviewer consumed by the state machine. The
// production implementation never returns an error (it falls back to
// deterministic results internally); the state machine still defends
// against failing implementations so that a broken evaluator can never
// stall an interview.
type Oracle interface {
	GenerateQuestion(ctx context.Context, difficulty interviewer.Difficulty, index int) (interviewer.Question, error)
	EvaluateAnswer(ctx context.Context, question interviewer.Question, answer string) (interviewer.Evaluation, error)
	Summarize(ctx context.Context, records []interviewer.QARecord) (interviewer.Summary, error)
}

// Sentinel stored when evaluation fails outright: the question is still
// marked answered so the interview keeps moving.
const (
	sentinelScore    = 0
	sentinelFeedback = "Evaluation unavailable."
)

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the wall-clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithPollInterval overrides the deadline poll interval.
func WithPollInterval(d time.Duration) Option {
	return func(s *Service) { s.poll = d }
}

// Service owns every active Session and drives each one through the
// interview lifecycle. The deadline watcher and the manual submit path
// both funnel into submit; the answered-state check on the open
// QuestionRecord is the compare-and-swap that lets exactly one of them
// win.
type Service struct {
	mu       sync.Mutex
	sessions map[string]*Session
	order    []string
	watches  map[string]*deadlineWatch

	oracle Oracle
	log    zerolog.Logger
	now    func() time.Time
	poll   time.Duration
}

// NewService creates a session service backed by the given oracle.
func NewService(oracle Oracle, log zerolog.Logger, opts ...Option) *Service {
	s := &Service{
		sessions: make(map[string]*Session),
		watches:  make(map[string]*deadlineWatch),
		oracle:   oracle,
		log:      log.With().Str("component", "interview").Logger(),
		now:      time.Now,
		poll:     250 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// StartSession creates a session for the candidate and immediately
// starts the interview: first question asked, deadline armed.
func (s *Service) StartSession(ctx context.Context, contact ContactInfo) (*Session, error) {
	if !contact.Complete() {
		return nil, ErrIncompleteContact
	}

	sess := &Session{
		ID:     uuid.NewString(),
		Name:   copyPtr(contact.Name),
		Email:  copyPtr(contact.Email),
		Phone:  copyPtr(contact.Phone),
		Status: StatusNotStarted,
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.order = append(s.order, sess.ID)
	s.mu.Unlock()

	if err := s.Start(ctx, sess.ID); err != nil {
		return nil, err
	}
	return s.GetSession(sess.ID)
}

// Start transitions a not_started session to in_progress: records the
// start time, asks the first question and arms its deadline. Returns
// InvalidStateError from any other state.
func (s *Service) Start(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		s.mu.Unlock()
		return ErrSessionNotFound
	}
	if sess.Status != StatusNotStarted {
		status := sess.Status
		s.mu.Unlock()
		return &InvalidStateError{Op: "start interview", Status: status}
	}

	now := s.now()
	sess.Status = StatusInProgress
	sess.StartedAt = &now
	s.mu.Unlock()

	// The oracle call happens outside the lock; other sessions stay
	// responsive while the model (and its retry loop) runs.
	question := s.generate(ctx, 0)

	s.mu.Lock()
	s.askLocked(sess, question, 0)
	s.mu.Unlock()

	s.log.Info().Str("session", sessionID).Msg("interview started")
	return nil
}

// SubmitAnswer records the candidate's answer to the currently open
// question, evaluates it, and advances the interview. It is the single
// entry point for both manual and timeout-triggered submissions and is
// idempotent per question: once an answer is accepted, further calls
// for that question are no-ops.
func (s *Service) SubmitAnswer(ctx context.Context, sessionID, text string) error {
	return s.submit(ctx, sessionID, "", text)
}

// submit applies one answer. questionID pins the submission to a
// specific question (the auto-submit path); empty means the currently
// open one.
func (s *Service) submit(ctx context.Context, sessionID, questionID, text string) error {
	s.mu.Lock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		s.mu.Unlock()
		return ErrSessionNotFound
	}
	if sess.Status != StatusInProgress {
		status := sess.Status
		s.mu.Unlock()
		return &InvalidStateError{Op: "submit answer", Status: status}
	}

	rec := sess.CurrentQuestion()
	if rec == nil {
		s.mu.Unlock()
		return &InvalidStateError{Op: "submit answer", Status: sess.Status}
	}
	if questionID != "" && rec.ID != questionID {
		// Stale timer for an already-closed question. Drop it.
		s.mu.Unlock()
		return nil
	}
	if rec.closed() {
		// The race between timer and user was already decided. No-op.
		s.mu.Unlock()
		return nil
	}

	// Accept: this is the compare-and-swap that decides the race. The
	// answer fields themselves are written only after evaluation, all
	// at once, so no snapshot ever shows a half-answered record.
	rec.inFlight = true
	acceptedAt := s.now()
	s.cancelDeadlineLocked(sessionID)
	s.appendCandidateMessageLocked(sess, text)

	index := sess.CurrentQuestionIndex
	question := interviewer.Question{
		ID:               rec.ID,
		Text:             rec.Text,
		Difficulty:       rec.Difficulty,
		TimeLimitSeconds: rec.TimeLimitSeconds,
	}
	s.mu.Unlock()

	evaluation, err := s.oracle.EvaluateAnswer(ctx, question, text)

	s.mu.Lock()
	score := evaluation.Score
	feedback := evaluation.Feedback
	if err != nil {
		// Partial failure must not stall the interview: mark the
		// question answered with sentinel values and move on.
		s.log.Warn().Err(err).Str("session", sessionID).Int("question", index).
			Msg("evaluation failed, storing sentinel")
		score = sentinelScore
		feedback = sentinelFeedback
	}
	answer := text
	rec.AnswerText = &answer
	rec.AnsweredAt = &acceptedAt
	rec.Score = &score
	rec.Feedback = &feedback
	rec.inFlight = false

	if index == PlanLength-1 {
		records := qaRecordsLocked(sess)
		s.mu.Unlock()
		s.finish(ctx, sessionID, sess, records)
		return nil
	}

	s.mu.Unlock()
	next := index + 1
	nextQuestion := s.generate(ctx, next)

	s.mu.Lock()
	s.askLocked(sess, nextQuestion, next)
	s.mu.Unlock()
	return nil
}

// finish runs the summarizer and moves the session to its terminal
// state. A summarizer failure leaves the score and summary unset; the
// session still finishes.
func (s *Service) finish(ctx context.Context, sessionID string, sess *Session, records []interviewer.QARecord) {
	summary, err := s.oracle.Summarize(ctx, records)

	s.mu.Lock()
	if err != nil {
		s.log.Warn().Err(err).Str("session", sessionID).Msg("summary failed, finishing without one")
	} else {
		percent := summary.FinalScorePercent
		text := summary.Text
		sess.FinalScorePercent = &percent
		sess.Summary = &text
	}
	now := s.now()
	sess.Status = StatusFinished
	sess.FinishedAt = &now
	s.cancelDeadlineLocked(sessionID)
	s.mu.Unlock()

	s.log.Info().Str("session", sessionID).Msg("interview finished")
}

// generate asks the oracle for the question at the given plan index.
// A failing oracle degrades to the deterministic bank so the interview
// can always move forward.
func (s *Service) generate(ctx context.Context, index int) interviewer.Question {
	question, err := s.oracle.GenerateQuestion(ctx, Plan[index], index)
	if err != nil {
		s.log.Warn().Err(err).Int("question", index).Msg("generation failed, using question bank")
		return interviewer.FallbackQuestion(Plan[index], index)
	}
	return question
}

// askLocked appends the question as a new open record, advances the
// index, logs it to the transcript and arms the deadline. Caller holds
// the lock.
func (s *Service) askLocked(sess *Session, question interviewer.Question, index int) {
	rec := &QuestionRecord{
		ID:               question.ID,
		Text:             question.Text,
		Difficulty:       question.Difficulty,
		TimeLimitSeconds: question.TimeLimitSeconds,
		AskedAt:          s.now(),
	}
	sess.Questions = append(sess.Questions, rec)
	sess.CurrentQuestionIndex = index
	sess.Transcript = append(sess.Transcript, ChatMessage{
		Role: RoleInterviewer,
		Text: fmt.Sprintf("Q%d: %s", index+1, question.Text),
		At:   rec.AskedAt,
	})
	s.armDeadlineLocked(sess.ID, rec)
}

// appendCandidateMessageLocked logs the candidate's answer, skipping
// the append when the previous entry is a byte-identical candidate
// message (overlapping triggers would otherwise echo twice).
func (s *Service) appendCandidateMessageLocked(sess *Session, text string) {
	msgText := text
	if msgText == "" {
		msgText = "[no answer]"
	}
	if n := len(sess.Transcript); n > 0 {
		last := sess.Transcript[n-1]
		if last.Role == RoleCandidate && last.Text == msgText {
			return
		}
	}
	sess.Transcript = append(sess.Transcript, ChatMessage{
		Role: RoleCandidate,
		Text: msgText,
		At:   s.now(),
	})
}

// qaRecordsLocked builds the summarizer's view of the session.
func qaRecordsLocked(sess *Session) []interviewer.QARecord {
	records := make([]interviewer.QARecord, 0, len(sess.Questions))
	for _, q := range sess.Questions {
		r := interviewer.QARecord{
			Question:   q.Text,
			Difficulty: q.Difficulty,
		}
		if q.AnswerText != nil {
			r.Answer = *q.AnswerText
		}
		if q.Score != nil {
			r.Score = *q.Score
		}
		records = append(records, r)
	}
	return records
}

// GetSession returns a snapshot of one session.
func (s *Service) GetSession(sessionID string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess.clone(), nil
}

// ListSessions returns snapshots of all sessions in creation order.
func (s *Service) ListSessions() []*Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Session, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.sessions[id].clone())
	}
	return out
}

// ActiveSession returns a snapshot of the most recently created
// in-progress session, if any. Used after a restart to offer the
// candidate their unfinished interview back.
func (s *Service) ActiveSession() (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(s.order) - 1; i >= 0; i-- {
		sess := s.sessions[s.order[i]]
		if sess.Status == StatusInProgress {
			return sess.clone(), true
		}
	}
	return nil, false
}

// Remaining reports the time left on the session's open question.
// Returns false when the session has no open question.
func (s *Service) Remaining(sessionID string) (time.Duration, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[sessionID]
	if !ok || sess.Status != StatusInProgress {
		return 0, false
	}
	rec := sess.CurrentQuestion()
	if rec == nil || rec.closed() {
		return 0, false
	}
	return rec.Remaining(s.now()), true
}

// ExportSessions returns the full session list for the persistence
// collaborator to serialize.
func (s *Service) ExportSessions() []*Session {
	return s.ListSessions()
}

// RestoreSessions rehydrates a previously exported session list. For
// every in-progress session with an open question, the deadline is
// re-armed from the stored AskedAt: any time that passed while the
// process was down still counts against the question's clock.
func (s *Service) RestoreSessions(sessions []*Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sess := range sessions {
		if sess == nil || sess.ID == "" {
			continue
		}
		if _, exists := s.sessions[sess.ID]; exists {
			continue
		}
		restored := sess.clone()
		for _, rec := range restored.Questions {
			// A record caught mid-evaluation when the snapshot was
			// taken has no answer fields; it reopens.
			rec.inFlight = false
		}
		s.sessions[restored.ID] = restored
		s.order = append(s.order, restored.ID)

		if restored.Status == StatusInProgress {
			if rec := restored.CurrentQuestion(); rec != nil && !rec.Answered() {
				s.armDeadlineLocked(restored.ID, rec)
			}
		}
	}
}

// Close cancels all outstanding deadline watches.
func (s *Service) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, w := range s.watches {
		w.cancel()
		delete(s.watches, id)
	}
}
