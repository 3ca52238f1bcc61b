package redis

import (
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"quiz-session-service/internal/app"
	"quiz-session-service/internal/domain"
)

func TestSessionStoreSetsAndClearsKeys(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewSessionStore(client, time.Minute)

	session, err := app.NewSession("attempt-1", sampleDocument(), domain.MarkingRules{Correct: 4, Wrong: -1})
	if err != nil {
		t.Fatalf("new session: %v", err)
	}

	store.Put(session)
	if !mr.Exists("quiz:attempt:attempt-1") {
		t.Fatalf("expected liveness key to be set")
	}
	if got, ok := store.Get("attempt-1"); !ok || got != session {
		t.Fatalf("expected stored session back")
	}

	store.Delete("attempt-1")
	if mr.Exists("quiz:attempt:attempt-1") {
		t.Fatalf("expected liveness key to be removed")
	}
}
