package interview

import (
	"context"
	"sync"
	"time"
)

// deadlineWatch is the cancellation handle for one question's deadline
// goroutine. cancel is safe to call any number of times from any
// goroutine.
type deadlineWatch struct {
	stop chan struct{}
	once sync.Once
}

func (w *deadlineWatch) cancel() {
	w.once.Do(func() { close(w.stop) })
}

// armDeadlineLocked starts a watcher for the given open question,
// replacing any watcher a previous question left behind. Caller holds
// the lock.
func (s *Service) armDeadlineLocked(sessionID string, rec *QuestionRecord) {
	if prev, ok := s.watches[sessionID]; ok {
		prev.cancel()
	}
	w := &deadlineWatch{stop: make(chan struct{})}
	s.watches[sessionID] = w

	limit := time.Duration(rec.TimeLimitSeconds) * time.Second
	go s.watchDeadline(sessionID, rec.ID, rec.AskedAt, limit, w)
}

// cancelDeadlineLocked stops the session's watcher, if any. Caller
// holds the lock.
func (s *Service) cancelDeadlineLocked(sessionID string) {
	if w, ok := s.watches[sessionID]; ok {
		w.cancel()
		delete(s.watches, sessionID)
	}
}

// watchDeadline polls the clock until the question's time limit
// elapses, then force-submits an empty answer. The remaining time is
// derived from AskedAt on every tick rather than counted down, so the
// watcher stays correct across clock injection in tests and across
// restore (time spent while the process was down still counts).
func (s *Service) watchDeadline(sessionID, questionID string, askedAt time.Time, limit time.Duration, w *deadlineWatch) {
	ticker := time.NewTicker(s.poll)
	defer ticker.Stop()

	for {
		select {
		case <-w.stop:
			return
		case <-ticker.C:
			if s.now().Sub(askedAt) >= limit {
				s.autoSubmit(sessionID, questionID)
				return
			}
		}
	}
}

// autoSubmit is the timeout path into submit. The question pin makes a
// late-firing watcher for an already-closed question a harmless no-op,
// and a session that finished in the meantime just reports an invalid
// state, which is dropped here.
func (s *Service) autoSubmit(sessionID, questionID string) {
	if err := s.submit(context.Background(), sessionID, questionID, ""); err != nil {
		s.log.Debug().Err(err).Str("session", sessionID).Str("question_id", questionID).
			Msg("auto-submit dropped")
	}
}
