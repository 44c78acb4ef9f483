// Package memory holds process-local implementations of the app-layer
// repositories, used standalone or as the fallback when Redis is not
// configured.
package memory

import (
	"context"
	"math/rand"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"quiz-master-gateway/internal/domain"
)

// QuizFetcher fetches quiz detail from the remote backend.
type QuizFetcher interface {
	Quiz(ctx context.Context, id int64) (domain.Quiz, error)
}

// QuizCache caches quiz detail with TTL to avoid hammering the backend, and
// collapses concurrent misses into one upstream call.
type QuizCache struct {
	fetcher QuizFetcher
	ttl     time.Duration
	clock   func() time.Time
	sf      singleflight.Group
	rnd     *rand.Rand

	mu    sync.RWMutex
	cache map[int64]cachedQuiz
}

type cachedQuiz struct {
	quiz      domain.Quiz
	expiresAt time.Time
}

func NewQuizCache(fetcher QuizFetcher, ttl time.Duration) *QuizCache {
	return &QuizCache{
		fetcher: fetcher,
		ttl:     ttl,
		clock:   time.Now,
		rnd:     rand.New(rand.NewSource(time.Now().UnixNano())),
		cache:   make(map[int64]cachedQuiz),
	}
}

func (c *QuizCache) Quiz(ctx context.Context, id int64) (domain.Quiz, error) {
	now := c.clock()

	c.mu.RLock()
	if entry, ok := c.cache[id]; ok && entry.expiresAt.After(now) {
		c.mu.RUnlock()
		return entry.quiz, nil
	}
	c.mu.RUnlock()

	result, err, _ := c.sf.Do(strconv.FormatInt(id, 10), func() (interface{}, error) {
		now := c.clock()
		c.mu.RLock()
		if entry, ok := c.cache[id]; ok && entry.expiresAt.After(now) {
			c.mu.RUnlock()
			return entry.quiz, nil
		}
		c.mu.RUnlock()

		quiz, err := c.fetcher.Quiz(ctx, id)
		if err != nil {
			return domain.Quiz{}, err
		}

		c.mu.Lock()
		c.cache[id] = cachedQuiz{
			quiz:      quiz,
			expiresAt: now.Add(c.ttlWithJitter()),
		}
		c.mu.Unlock()
		return quiz, nil
	})
	if err != nil {
		return domain.Quiz{}, err
	}
	return result.(domain.Quiz), nil
}

// Invalidate drops the cached entry so the next read refetches. Mutations go
// through the backend; this keeps the display snapshot from going stale.
func (c *QuizCache) Invalidate(_ context.Context, id int64) {
	c.mu.Lock()
	delete(c.cache, id)
	c.mu.Unlock()
}

func (c *QuizCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}
