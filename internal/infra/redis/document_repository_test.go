package redis

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"quiz-session-service/internal/domain"
	"quiz-session-service/internal/infra/memory"
)

func TestDocumentRepositoryCachesInRedis(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	client := newClient(mr)

	loader := &countingLoader{
		DocumentLoader: memory.NewStaticDocumentLoader(map[string]domain.QuizDocument{
			"quiz-1": sampleDocument(),
		}),
	}
	repo := NewDocumentRepository(client, loader, time.Minute)

	doc, err := repo.GetDocument(context.Background(), "quiz-1")
	if err != nil {
		t.Fatalf("get document: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected loader called once, got %d", loader.calls)
	}
	if len(doc.Questions) != 1 || doc.Questions[0].CorrectIndex() != 1 {
		t.Fatalf("unexpected document %+v", doc)
	}

	// Second call should hit the Redis cache, loader not incremented.
	doc, err = repo.GetDocument(context.Background(), "quiz-1")
	if err != nil {
		t.Fatalf("get document 2: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected cache hit, loader calls=%d", loader.calls)
	}
	// The cached round-trip keeps the full content, not just an answer key.
	if doc.Questions[0].Prompt == "" || doc.Questions[0].Explanation == "" {
		t.Fatalf("expected full document from cache, got %+v", doc.Questions[0])
	}
}

type countingLoader struct {
	memory.DocumentLoader
	calls int
}

func (l *countingLoader) LoadDocument(ctx context.Context, quizID string) (domain.QuizDocument, error) {
	l.calls++
	return l.DocumentLoader.LoadDocument(ctx, quizID)
}

func sampleDocument() domain.QuizDocument {
	return domain.QuizDocument{
		ID:              "quiz-1",
		Title:           "Sample Quiz",
		DurationMinutes: 10,
		Marking:         domain.MarkingRules{Correct: 4, Wrong: -1},
		Questions: []domain.Question{
			{
				ID:          "q1",
				Prompt:      "What is 2 + 2?",
				Explanation: "Count on your fingers.",
				Options: []domain.Option{
					{ID: "o1", Text: "3"},
					{ID: "o2", Text: "4", Correct: true},
				},
			},
		},
	}
}

func newClient(mr *miniredis.Miniredis) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
}
