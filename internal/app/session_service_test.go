package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"quiz-session-service/internal/app"
	"quiz-session-service/internal/domain"
	"quiz-session-service/internal/infra/memory"
)

func TestStartSessionAndResume(t *testing.T) {
	ctx := context.Background()
	service := newTestService()

	session, err := service.StartSession(ctx, "quiz-1")
	if err != nil {
		t.Fatalf("start session: %v", err)
	}
	defer service.EndSession(session.ID())
	if session.ID() == "" {
		t.Fatalf("expected session id")
	}
	if snap := session.Snapshot(); snap.Phase != domain.PhaseActive || snap.QuestionCount != 2 {
		t.Fatalf("unexpected initial snapshot %+v", snap)
	}

	resumed, err := service.Resume(session.ID())
	if err != nil {
		t.Fatalf("resume: %v", err)
	}
	if resumed != session {
		t.Fatalf("expected the same session instance")
	}
}

func TestStartSessionUnknownQuiz(t *testing.T) {
	service := newTestService()
	if _, err := service.StartSession(context.Background(), "missing"); !errors.Is(err, domain.ErrDocumentNotFound) {
		t.Fatalf("expected document not found, got %v", err)
	}
}

func TestEndSessionRemovesAndStopsSession(t *testing.T) {
	service := newTestService()
	session, err := service.StartSession(context.Background(), "quiz-1")
	if err != nil {
		t.Fatalf("start session: %v", err)
	}

	service.EndSession(session.ID())
	if _, err := service.Resume(session.ID()); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected session gone, got %v", err)
	}
	// Ending an unknown session is a no-op.
	service.EndSession("nope")
}

func newTestService() *app.SessionService {
	documents := memory.NewDocumentRepository(memory.NewStaticDocumentLoader(map[string]domain.QuizDocument{
		"quiz-1": {
			ID:              "quiz-1",
			Title:           "Test Quiz",
			DurationMinutes: 5,
			Questions: []domain.Question{
				{
					ID:     "q1",
					Prompt: "What is 2 + 2?",
					Options: []domain.Option{
						{ID: "o1", Text: "3"},
						{ID: "o2", Text: "4", Correct: true},
						{ID: "o3", Text: "5"},
					},
				},
				{
					ID:     "q2",
					Prompt: "What is 3 × 3?",
					Options: []domain.Option{
						{ID: "o1", Text: "9", Correct: true},
						{ID: "o2", Text: "6"},
					},
				},
			},
		},
	}), 5*time.Minute)
	return app.NewSessionService(memory.NewSessionStore(), documents, domain.MarkingRules{Correct: 4, Wrong: -1})
}
