package domain

// Unanswered is the sentinel stored in an answer record for a question the
// taker has not committed a selection for.
const Unanswered = -1

// Phase is the coarse state of a quiz session.
type Phase string

const (
	PhaseActive   Phase = "active"
	PhaseFinished Phase = "finished"
)

// MarkingRules carries the signed point values for a document. Wrong is
// typically negative so incorrect answers are penalized.
type MarkingRules struct {
	Correct int `json:"correct" yaml:"correct"`
	Wrong   int `json:"wrong" yaml:"wrong"`
}

// IsZero reports whether the document left its marking block empty.
func (m MarkingRules) IsZero() bool {
	return m.Correct == 0 && m.Wrong == 0
}

// Option represents a possible answer for a question. Selections are recorded
// by the option's position within the owning question, not by ID.
type Option struct {
	ID      string `json:"id"`
	Text    string `json:"text"`
	Correct bool   `json:"correct"`
}

// Question models an MCQ question. Explanation and the supplementary section
// slices are opaque to the core; rendering them is the client's problem.
type Question struct {
	ID               string   `json:"id"`
	Prompt           string   `json:"prompt"`
	Options          []Option `json:"options"`
	Explanation      string   `json:"explanation,omitempty"`
	ReadingSections  []string `json:"readingSections,omitempty"`
	PracticeSections []string `json:"practiceSections,omitempty"`
}

// CorrectIndex returns the position of the correct option, or Unanswered when
// no option is flagged correct (so no selection can ever match it).
func (q Question) CorrectIndex() int {
	for i := range q.Options {
		if q.Options[i].Correct {
			return i
		}
	}
	return Unanswered
}

// QuizDocument is the immutable input to a session. Question order is the
// canonical navigation index space.
type QuizDocument struct {
	ID              string       `json:"id"`
	Title           string       `json:"title"`
	Topic           string       `json:"topic,omitempty"`
	Description     string       `json:"description,omitempty"`
	DurationMinutes int          `json:"durationMinutes"`
	Marking         MarkingRules `json:"marking"`
	Questions       []Question   `json:"questions"`
}

// Validate checks the document shape before a session may be built on it.
func (d QuizDocument) Validate() error {
	if d.DurationMinutes <= 0 {
		return ErrInvalidDuration
	}
	if len(d.Questions) == 0 {
		return ErrInvalidSize
	}
	for _, q := range d.Questions {
		if len(q.Options) < 2 {
			return ErrTooFewOptions
		}
	}
	return nil
}

// Snapshot is the read-only session view pushed to the presentation layer on
// every state change.
type Snapshot struct {
	Phase          Phase  `json:"phase"`
	CurrentIndex   int    `json:"currentIndex"`
	QuestionCount  int    `json:"questionCount"`
	Remaining      int    `json:"remainingSeconds"`
	RemainingLabel string `json:"remainingLabel"`
	Selected       *int   `json:"selectedOption"`
	Answered       []bool `json:"answered"`
}

// QuestionReview is the per-question portion of the results payload.
// Nil index pointers encode "none" for the client.
type QuestionReview struct {
	QuestionIndex      int  `json:"questionIndex"`
	UserOptionIndex    *int `json:"userOptionIndex"`
	CorrectOptionIndex *int `json:"correctOptionIndex"`
	Answered           bool `json:"answered"`
	Correct            bool `json:"correct"`
}

// ScoreSummary is handed to the client when a session enters the finished
// phase. Percentage is intentionally unclamped: penalties can push it below
// zero and that is meaningful.
type ScoreSummary struct {
	RawScore    int              `json:"rawScore"`
	MaxScore    int              `json:"maxScore"`
	Percentage  int              `json:"percentage"`
	PerQuestion []QuestionReview `json:"perQuestion"`
}
