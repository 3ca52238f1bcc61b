package app

import (
	"context"

	"github.com/google/uuid"

	"quiz-session-service/internal/domain"
)

// SessionRepository abstracts how live sessions are tracked (in-memory, Redis-marked, etc).
type SessionRepository interface {
	Put(session *Session)
	Get(sessionID string) (*Session, bool)
	Delete(sessionID string)
}

// DocumentRepository loads quiz documents (from cache/backing store).
type DocumentRepository interface {
	GetDocument(ctx context.Context, quizID string) (domain.QuizDocument, error)
}

// SessionService contains the quiz-taking use cases.
type SessionService struct {
	sessions       SessionRepository
	documents      DocumentRepository
	defaultMarking domain.MarkingRules
}

func NewSessionService(store SessionRepository, documents DocumentRepository, defaultMarking domain.MarkingRules) *SessionService {
	return &SessionService{sessions: store, documents: documents, defaultMarking: defaultMarking}
}

// StartSession loads the document, builds a fresh attempt and starts its
// countdown. Construction fails before any state is registered, so a bad
// document never leaves a half-built session behind.
func (s *SessionService) StartSession(ctx context.Context, quizID string) (*Session, error) {
	doc, err := s.documents.GetDocument(ctx, quizID)
	if err != nil {
		return nil, err
	}
	session, err := NewSession(uuid.NewString(), doc, s.defaultMarking)
	if err != nil {
		return nil, err
	}
	s.sessions.Put(session)
	session.Start()
	return session, nil
}

// Resume returns a previously started session, e.g. after a reconnect.
func (s *SessionService) Resume(sessionID string) (*Session, error) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return session, nil
}

// EndSession tears a session down: the countdown is cancelled immediately so
// no stray tick fires after removal.
func (s *SessionService) EndSession(sessionID string) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return
	}
	session.Close()
	s.sessions.Delete(sessionID)
}
