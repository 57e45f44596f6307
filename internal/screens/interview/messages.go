package interview

import "time"

// timerTickMsg is sent every second to refresh the countdown and pick
// up question changes made by the deadline watcher.
type timerTickMsg time.Time

// answerSubmittedMsg is sent when an answer submission completes.
type answerSubmittedMsg struct {
	Err error
}
