package app

import "quiz-session-service/internal/domain"

// answerRecord maps question positions to committed option indexes, with
// domain.Unanswered marking empty slots. It is owned by a Session and only
// mutated through set.
type answerRecord []int

func newAnswerRecord(questionCount int) (answerRecord, error) {
	if questionCount <= 0 {
		return nil, domain.ErrInvalidSize
	}
	record := make(answerRecord, questionCount)
	for i := range record {
		record[i] = domain.Unanswered
	}
	return record, nil
}

func (r answerRecord) set(index, optionIndex int) error {
	if index < 0 || index >= len(r) {
		return domain.ErrIndexOutOfRange
	}
	r[index] = optionIndex
	return nil
}

func (r answerRecord) get(index int) (int, error) {
	if index < 0 || index >= len(r) {
		return domain.Unanswered, domain.ErrIndexOutOfRange
	}
	return r[index], nil
}

// isComplete reports whether every question has a committed selection.
func (r answerRecord) isComplete() bool {
	for _, v := range r {
		if v == domain.Unanswered {
			return false
		}
	}
	return true
}

func (r answerRecord) clone() answerRecord {
	frozen := make(answerRecord, len(r))
	copy(frozen, r)
	return frozen
}

func (r answerRecord) answeredFlags() []bool {
	flags := make([]bool, len(r))
	for i, v := range r {
		flags[i] = v != domain.Unanswered
	}
	return flags
}
