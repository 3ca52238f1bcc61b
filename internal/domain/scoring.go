package domain

import "math"

// Score marks a frozen answer record against the question list.
// Per question: unanswered contributes 0, a match contributes rules.Correct,
// anything else contributes rules.Wrong. Questions without a correct option
// are unmatchable, so a committed selection on them always scores as wrong.
func Score(questions []Question, answers []int, rules MarkingRules) ScoreSummary {
	summary := ScoreSummary{
		PerQuestion: make([]QuestionReview, 0, len(questions)),
	}

	for i, q := range questions {
		correctIdx := q.CorrectIndex()
		userIdx := Unanswered
		if i < len(answers) {
			userIdx = answers[i]
		}

		review := QuestionReview{
			QuestionIndex: i,
			Answered:      userIdx != Unanswered,
		}
		if correctIdx != Unanswered {
			review.CorrectOptionIndex = intPtr(correctIdx)
		}
		if userIdx != Unanswered {
			review.UserOptionIndex = intPtr(userIdx)
			if correctIdx != Unanswered && userIdx == correctIdx {
				review.Correct = true
				summary.RawScore += rules.Correct
			} else {
				summary.RawScore += rules.Wrong
			}
		}
		summary.PerQuestion = append(summary.PerQuestion, review)
	}

	summary.MaxScore = len(questions) * rules.Correct
	if summary.MaxScore > 0 {
		summary.Percentage = int(math.Round(float64(summary.RawScore) / float64(summary.MaxScore) * 100))
	}
	return summary
}

func intPtr(v int) *int {
	return &v
}
