package app

import (
	"sync"
	"time"

	"quiz-session-service/internal/domain"
)

// Session is one attempt at a quiz document: the state machine that owns the
// answer record, the current-question navigator, the transient selection
// buffer and the countdown. It starts in the active phase; finished is
// terminal and only Reset rebuilds an attempt from the retained document.
type Session struct {
	id    string
	doc   domain.QuizDocument
	rules domain.MarkingRules

	mu          sync.Mutex
	phase       domain.Phase
	answers     answerRecord
	nav         *navigator
	selected    int // buffered option for the displayed question, domain.Unanswered when empty
	remaining   int
	results     *domain.ScoreSummary
	started     bool
	ticker      *countdown
	subscribers map[chan domain.Snapshot]struct{}
}

// NewSession validates the document and builds an active session with every
// question unanswered. Marking rules come from the document, falling back to
// defaultRules when the document carries none.
func NewSession(id string, doc domain.QuizDocument, defaultRules domain.MarkingRules) (*Session, error) {
	return newSessionWithInterval(id, doc, defaultRules, time.Second)
}

// newSessionWithInterval allows tests to shrink the tick interval.
func newSessionWithInterval(id string, doc domain.QuizDocument, defaultRules domain.MarkingRules, interval time.Duration) (*Session, error) {
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	answers, err := newAnswerRecord(len(doc.Questions))
	if err != nil {
		return nil, err
	}
	rules := doc.Marking
	if rules.IsZero() {
		rules = defaultRules
	}
	return &Session{
		id:          id,
		doc:         doc,
		rules:       rules,
		phase:       domain.PhaseActive,
		answers:     answers,
		nav:         newNavigator(len(doc.Questions)),
		selected:    domain.Unanswered,
		remaining:   doc.DurationMinutes * 60,
		ticker:      newCountdown(interval),
		subscribers: make(map[chan domain.Snapshot]struct{}),
	}, nil
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Document returns the immutable quiz document this attempt runs against.
func (s *Session) Document() domain.QuizDocument {
	return s.doc
}

// Start launches the countdown. Calling it again while the session runs is a
// no-op, so there is never more than one tick source per session.
func (s *Session) Start() {
	s.mu.Lock()
	s.started = true
	active := s.phase == domain.PhaseActive
	s.mu.Unlock()
	if active {
		s.ticker.start(s.tick)
	}
}

// tick applies one countdown decrement. A tick that fires after the session
// finished is a no-op; reaching zero forces the finished phase regardless of
// completeness, with no confirmation step.
func (s *Session) tick() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != domain.PhaseActive {
		return
	}
	s.remaining--
	if s.remaining <= 0 {
		s.remaining = 0
		s.finishLocked()
		return
	}
	s.broadcastLocked()
}

// Select buffers an option for the displayed question without committing it.
func (s *Session) Select(optionIndex int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != domain.PhaseActive {
		return domain.ErrSessionFinished
	}
	if optionIndex < 0 || optionIndex >= len(s.doc.Questions[s.nav.current].Options) {
		return domain.ErrInvalidOption
	}
	s.selected = optionIndex
	s.broadcastLocked()
	return nil
}

// SaveAnswer commits the buffered selection to the answer record.
func (s *Session) SaveAnswer() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != domain.PhaseActive {
		return domain.ErrSessionFinished
	}
	if s.selected == domain.Unanswered {
		return domain.ErrNoSelection
	}
	if err := s.answers.set(s.nav.current, s.selected); err != nil {
		return err
	}
	s.broadcastLocked()
	return nil
}

// GoTo displays the question at index. Out-of-range targets are ignored, and
// the selection buffer is always repopulated from the answer record so the
// displayed selection matches what is persisted, never a leftover value.
func (s *Session) GoTo(index int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.moveLocked(func() bool { return s.nav.goTo(index) })
}

// Next advances one question, staying in place at the upper boundary.
func (s *Session) Next() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.moveLocked(s.nav.next)
}

// Prev moves back one question, staying in place at the lower boundary.
func (s *Session) Prev() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.moveLocked(s.nav.prev)
}

func (s *Session) moveLocked(move func() bool) {
	if s.phase != domain.PhaseActive {
		return
	}
	if !move() {
		return
	}
	s.selected = s.answers[s.nav.current]
	s.broadcastLocked()
}

// RequestFinish attempts a manual finish. With a complete answer record the
// session transitions immediately and confirmRequired is false. Otherwise the
// session is left untouched and confirmRequired is true: the caller must put
// a yes/no decision to the taker and call ConfirmFinish only on yes.
func (s *Session) RequestFinish() (confirmRequired bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != domain.PhaseActive {
		return false
	}
	if !s.answers.isComplete() {
		return true
	}
	s.finishLocked()
	return false
}

// ConfirmFinish completes a manual finish that RequestFinish flagged as
// needing confirmation. Declining is simply never calling this.
func (s *Session) ConfirmFinish() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != domain.PhaseActive {
		return
	}
	s.finishLocked()
}

// finishLocked freezes the answer record, scores it once and cancels the
// countdown so no stray tick can re-enter the machine.
func (s *Session) finishLocked() {
	s.phase = domain.PhaseFinished
	frozen := s.answers.clone()
	s.answers = frozen
	summary := domain.Score(s.doc.Questions, frozen, s.rules)
	s.results = &summary
	s.ticker.cancel()
	s.broadcastLocked()
}

// Reset rebuilds the attempt from the original document: fresh answer record,
// navigator at zero, full countdown. It replaces any reload-the-world restart.
func (s *Session) Reset() {
	s.mu.Lock()
	s.ticker.cancel()
	answers, _ := newAnswerRecord(len(s.doc.Questions))
	s.answers = answers
	s.nav = newNavigator(len(s.doc.Questions))
	s.selected = domain.Unanswered
	s.remaining = s.doc.DurationMinutes * 60
	s.results = nil
	s.phase = domain.PhaseActive
	restart := s.started
	s.broadcastLocked()
	s.mu.Unlock()

	if restart {
		s.ticker.start(s.tick)
	}
}

// Results returns the frozen score summary once the session has finished.
func (s *Session) Results() (domain.ScoreSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != domain.PhaseFinished || s.results == nil {
		return domain.ScoreSummary{}, domain.ErrSessionActive
	}
	return *s.results, nil
}

// Snapshot builds the read-only view handed to the presentation layer.
func (s *Session) Snapshot() domain.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() domain.Snapshot {
	snap := domain.Snapshot{
		Phase:          s.phase,
		CurrentIndex:   s.nav.current,
		QuestionCount:  len(s.doc.Questions),
		Remaining:      s.remaining,
		RemainingLabel: domain.FormatSeconds(s.remaining),
		Answered:       s.answers.answeredFlags(),
	}
	if s.selected != domain.Unanswered {
		sel := s.selected
		snap.Selected = &sel
	}
	return snap
}

// Subscribe returns a channel receiving a snapshot on every state change,
// primed with the current state. The caller must invoke cancel to avoid leaks.
func (s *Session) Subscribe() (<-chan domain.Snapshot, func()) {
	ch := make(chan domain.Snapshot, 8)

	s.mu.Lock()
	s.subscribers[ch] = struct{}{}
	// Primed under the lock so a concurrent broadcast cannot queue a newer
	// snapshot ahead of the initial one. The buffer leaves room for both.
	ch <- s.snapshotLocked()
	s.mu.Unlock()

	cancel := func() {
		s.mu.Lock()
		if _, ok := s.subscribers[ch]; ok {
			delete(s.subscribers, ch)
			close(ch)
		}
		s.mu.Unlock()
	}
	return ch, cancel
}

func (s *Session) broadcastLocked() {
	snap := s.snapshotLocked()
	for ch := range s.subscribers {
		select {
		case ch <- snap:
		default:
			// Slow consumers drop the stale snapshot rather than block the machine.
			select {
			case <-ch:
			default:
			}
			ch <- snap
		}
	}
}

// Close cancels the countdown as part of session teardown.
func (s *Session) Close() {
	s.ticker.cancel()
}
