package redis

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"quiz-master-gateway/internal/domain"
)

// QuizFetcher fetches quiz detail from the remote backend.
type QuizFetcher interface {
	Quiz(ctx context.Context, id int64) (domain.Quiz, error)
}

// QuizCache stores quiz detail as JSON under quiz:{id} and falls back to the
// fetcher on cache miss. Concurrent misses for one quiz collapse into a
// single backend call.
type QuizCache struct {
	client  *redis.Client
	fetcher QuizFetcher
	ttl     time.Duration
	sf      singleflight.Group
	rnd     *rand.Rand
}

func NewQuizCache(client *redis.Client, fetcher QuizFetcher, ttl time.Duration) *QuizCache {
	return &QuizCache{
		client:  client,
		fetcher: fetcher,
		ttl:     ttl,
		rnd:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (c *QuizCache) Quiz(ctx context.Context, id int64) (domain.Quiz, error) {
	key := c.key(id)

	if quiz, ok, err := c.read(ctx, key); err == nil && ok {
		return quiz, nil
	}

	result, err, _ := c.sf.Do(strconv.FormatInt(id, 10), func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if quiz, ok, err := c.read(ctx, key); err == nil && ok {
			return quiz, nil
		}

		quiz, err := c.fetcher.Quiz(ctx, id)
		if err != nil {
			return domain.Quiz{}, err
		}

		payload, err := json.Marshal(quiz)
		if err != nil {
			return domain.Quiz{}, err
		}
		// best-effort write; a cache failure must not fail the read
		_ = c.client.Set(ctx, key, payload, c.ttlWithJitter()).Err()

		return quiz, nil
	})
	if err != nil {
		return domain.Quiz{}, err
	}
	return result.(domain.Quiz), nil
}

// Invalidate drops the cached entry so the next read refetches.
func (c *QuizCache) Invalidate(ctx context.Context, id int64) {
	_ = c.client.Del(ctx, c.key(id)).Err()
}

func (c *QuizCache) read(ctx context.Context, key string) (domain.Quiz, bool, error) {
	payload, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Quiz{}, false, nil
	}
	if err != nil {
		return domain.Quiz{}, false, err
	}
	var quiz domain.Quiz
	if err := json.Unmarshal(payload, &quiz); err != nil {
		return domain.Quiz{}, false, err
	}
	return quiz, true, nil
}

func (c *QuizCache) key(id int64) string {
	return "quiz:" + strconv.FormatInt(id, 10)
}

func (c *QuizCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}
