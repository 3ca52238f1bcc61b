package redis

import (
	"context"
	"encoding/json"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"quiz-session-service/internal/domain"
)

// DocumentLoader fetches quiz documents from a backing store (e.g., Postgres).
type DocumentLoader interface {
	LoadDocument(ctx context.Context, quizID string) (domain.QuizDocument, error)
}

// DocumentRepository caches whole documents as JSON values in Redis and falls
// back to a loader on cache miss. The results view needs prompts, options and
// explanation text, so the full document is cached rather than an answer key.
type DocumentRepository struct {
	client *redis.Client
	loader DocumentLoader
	ttl    time.Duration
	sf     singleflight.Group
	rnd    *rand.Rand
}

func NewDocumentRepository(client *redis.Client, loader DocumentLoader, ttl time.Duration) *DocumentRepository {
	return &DocumentRepository{
		client: client,
		loader: loader,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (r *DocumentRepository) GetDocument(ctx context.Context, quizID string) (domain.QuizDocument, error) {
	key := r.documentKey(quizID)

	if raw, err := r.client.Get(ctx, key).Bytes(); err == nil && len(raw) > 0 {
		var doc domain.QuizDocument
		if err := json.Unmarshal(raw, &doc); err == nil {
			return doc, nil
		}
		// Corrupt cache entry: fall through and reload.
	}

	result, err, _ := r.sf.Do(quizID, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if raw, err := r.client.Get(ctx, key).Bytes(); err == nil && len(raw) > 0 {
			var doc domain.QuizDocument
			if err := json.Unmarshal(raw, &doc); err == nil {
				return doc, nil
			}
		}

		doc, err := r.loader.LoadDocument(ctx, quizID)
		if err != nil {
			return domain.QuizDocument{}, err
		}

		if raw, err := json.Marshal(doc); err == nil {
			_ = r.client.Set(ctx, key, raw, r.ttlWithJitter()).Err()
		}
		return doc, nil
	})
	if err != nil {
		return domain.QuizDocument{}, err
	}
	return result.(domain.QuizDocument), nil
}

func (r *DocumentRepository) documentKey(quizID string) string {
	return "quiz:" + quizID + ":document"
}

func (r *DocumentRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}
