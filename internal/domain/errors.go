package domain

import "errors"

var (
	// ErrInvalidSize is returned when an answer record would be built for a
	// non-positive question count. Fatal to session construction.
	ErrInvalidSize = errors.New("question count must be positive")
	// ErrIndexOutOfRange signals internal misuse of the answer record.
	ErrIndexOutOfRange = errors.New("question index out of range")
	// ErrInvalidDuration is returned for documents without a positive duration.
	ErrInvalidDuration = errors.New("quiz duration must be positive")
	// ErrTooFewOptions is returned for questions with fewer than two options.
	ErrTooFewOptions = errors.New("question needs at least two options")
	// ErrDocumentNotFound indicates the quiz document could not be loaded.
	ErrDocumentNotFound = errors.New("quiz document not found")
	// ErrSessionNotFound is returned when acting on an unknown session.
	ErrSessionNotFound = errors.New("quiz session not found")
	// ErrSessionFinished is returned for mutations after the finished phase.
	ErrSessionFinished = errors.New("quiz session already finished")
	// ErrInvalidOption is returned when a selection does not exist on the
	// current question.
	ErrInvalidOption = errors.New("option index out of range")
	// ErrNoSelection is returned when saving without a buffered selection.
	ErrNoSelection = errors.New("no option selected")
	// ErrSessionActive is returned when results are requested before the
	// session has finished.
	ErrSessionActive = errors.New("quiz session still active")
)
