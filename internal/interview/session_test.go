package interview

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"intervue/internal/interviewer"
)

func TestContactInfo_Complete(t *testing.T) {
	s := func(v string) *string { return &v }

	tests := []struct {
		name    string
		contact ContactInfo
		want    bool
	}{
		{"all set", ContactInfo{Name: s("Jane"), Email: s("j@x.io"), Phone: s("555")}, true},
		{"nil name", ContactInfo{Email: s("j@x.io"), Phone: s("555")}, false},
		{"empty email", ContactInfo{Name: s("Jane"), Email: s(""), Phone: s("555")}, false},
		{"whitespace phone", ContactInfo{Name: s("Jane"), Email: s("j@x.io"), Phone: s("  ")}, false},
		{"none", ContactInfo{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.contact.Complete())
		})
	}
}

func TestQuestionRecord_AnsweredDistinguishesEmptyFromUnanswered(t *testing.T) {
	rec := &QuestionRecord{}
	require.False(t, rec.Answered())

	empty := ""
	now := time.Now()
	rec.AnswerText = &empty
	rec.AnsweredAt = &now
	require.True(t, rec.Answered())
}

func TestQuestionRecord_RemainingClamped(t *testing.T) {
	askedAt := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	rec := &QuestionRecord{AskedAt: askedAt, TimeLimitSeconds: 60}

	require.Equal(t, 60*time.Second, rec.Remaining(askedAt))
	require.Equal(t, 45*time.Second, rec.Remaining(askedAt.Add(15*time.Second)))
	require.Equal(t, time.Duration(0), rec.Remaining(askedAt.Add(2*time.Minute)))
}

func TestSession_CurrentQuestion(t *testing.T) {
	sess := &Session{}
	require.Nil(t, sess.CurrentQuestion())

	sess.Questions = []*QuestionRecord{{ID: "a"}, {ID: "b"}}
	sess.CurrentQuestionIndex = 1
	require.Equal(t, "b", sess.CurrentQuestion().ID)

	sess.CurrentQuestionIndex = 7
	require.Nil(t, sess.CurrentQuestion())
}

func TestSession_JSONRoundTrip(t *testing.T) {
	name := "Jane Doe"
	answer := "an answer"
	score := 4
	started := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	sess := &Session{
		ID:        "abc",
		Name:      &name,
		Status:    StatusInProgress,
		StartedAt: &started,
		Questions: []*QuestionRecord{{
			ID:               "q1",
			Text:             "Explain closures.",
			Difficulty:       interviewer.DifficultyEasy,
			TimeLimitSeconds: 20,
			AskedAt:          started,
			AnswerText:       &answer,
			AnsweredAt:       &started,
			Score:            &score,
		}},
		Transcript: []ChatMessage{{Role: RoleInterviewer, Text: "Q1: Explain closures.", At: started}},
	}

	data, err := json.Marshal(sess)
	require.NoError(t, err)

	var back Session
	require.NoError(t, json.Unmarshal(data, &back))

	require.Equal(t, sess.ID, back.ID)
	require.Equal(t, name, *back.Name)
	require.Equal(t, StatusInProgress, back.Status)
	require.Len(t, back.Questions, 1)
	require.Equal(t, answer, *back.Questions[0].AnswerText)
	require.Equal(t, 4, *back.Questions[0].Score)
	require.True(t, back.Questions[0].Answered())
	require.Len(t, back.Transcript, 1)
}

func TestInvalidStateError_Message(t *testing.T) {
	err := &InvalidStateError{Op: "submit answer", Status: StatusFinished}
	require.Contains(t, err.Error(), "submit answer")
	require.Contains(t, err.Error(), string(StatusFinished))
}
