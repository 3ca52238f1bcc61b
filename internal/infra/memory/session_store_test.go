package memory

import (
	"testing"

	"quiz-session-service/internal/app"
	"quiz-session-service/internal/domain"
)

func TestSessionStoreLifecycle(t *testing.T) {
	store := NewSessionStore()

	session, err := app.NewSession("attempt-1", sampleDocument(), domain.MarkingRules{Correct: 4, Wrong: -1})
	if err != nil {
		t.Fatalf("new session: %v", err)
	}

	store.Put(session)
	if got, ok := store.Get("attempt-1"); !ok || got != session {
		t.Fatalf("expected stored session back")
	}

	store.Delete("attempt-1")
	if _, ok := store.Get("attempt-1"); ok {
		t.Fatalf("expected session removed")
	}
}
