package interview

import "intervue/internal/interviewer"

// Plan is the fixed question sequence for every interview: two easy,
// two medium, two hard. This is immutable policy, not derived state.
var Plan = [...]interviewer.Difficulty{
	interviewer.DifficultyEasy,
	interviewer.DifficultyEasy,
	interviewer.DifficultyMedium,
	interviewer.DifficultyMedium,
	interviewer.DifficultyHard,
	interviewer.DifficultyHard,
}

// PlanLength is the number of questions in an interview.
const PlanLength = len(Plan)
