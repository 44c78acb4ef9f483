package redis

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"quiz-master-gateway/internal/domain"
)

type countingFetcher struct {
	quizzes map[int64]domain.Quiz
	calls   int
}

func (f *countingFetcher) Quiz(_ context.Context, id int64) (domain.Quiz, error) {
	f.calls++
	quiz, ok := f.quizzes[id]
	if !ok {
		return domain.Quiz{}, domain.NotFound("quiz")
	}
	return quiz, nil
}

func sampleQuiz() domain.Quiz {
	return domain.Quiz{
		ID:                     1,
		Name:                   "Pub Quiz Night",
		DateTime:               time.Date(2025, 6, 1, 20, 0, 0, 0, time.UTC),
		MaxTeams:               10,
		MaxParticipantsPerTeam: 4,
		RegisteredTeamsCount:   3,
	}
}

func newClient(mr *miniredis.Miniredis) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
}

func TestQuizCacheCachesInRedis(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	fetcher := &countingFetcher{quizzes: map[int64]domain.Quiz{1: sampleQuiz()}}
	cache := NewQuizCache(newClient(mr), fetcher, time.Minute)

	quiz, err := cache.Quiz(context.Background(), 1)
	if err != nil {
		t.Fatalf("get quiz: %v", err)
	}
	if quiz.Name != "Pub Quiz Night" {
		t.Fatalf("unexpected quiz: %+v", quiz)
	}
	if fetcher.calls != 1 {
		t.Fatalf("expected fetcher called once, got %d", fetcher.calls)
	}

	// Second call should hit cache, fetcher not incremented.
	_, _ = cache.Quiz(context.Background(), 1)
	if fetcher.calls != 1 {
		t.Fatalf("expected cache hit, fetcher calls=%d", fetcher.calls)
	}
}

func TestQuizCacheExpiresInRedis(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	fetcher := &countingFetcher{quizzes: map[int64]domain.Quiz{1: sampleQuiz()}}
	cache := NewQuizCache(newClient(mr), fetcher, time.Minute)

	if _, err := cache.Quiz(context.Background(), 1); err != nil {
		t.Fatalf("get quiz: %v", err)
	}

	// Past TTL plus maximum jitter.
	mr.FastForward(2 * time.Minute)
	if _, err := cache.Quiz(context.Background(), 1); err != nil {
		t.Fatalf("get quiz after expiry: %v", err)
	}
	if fetcher.calls != 2 {
		t.Fatalf("expired key must refetch, fetcher calls=%d", fetcher.calls)
	}
}

func TestQuizCacheInvalidate(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	fetcher := &countingFetcher{quizzes: map[int64]domain.Quiz{1: sampleQuiz()}}
	cache := NewQuizCache(newClient(mr), fetcher, time.Minute)

	if _, err := cache.Quiz(context.Background(), 1); err != nil {
		t.Fatalf("get quiz: %v", err)
	}

	updated := sampleQuiz()
	updated.RegisteredTeamsCount = 4
	fetcher.quizzes[1] = updated
	cache.Invalidate(context.Background(), 1)

	quiz, err := cache.Quiz(context.Background(), 1)
	if err != nil {
		t.Fatalf("get quiz after invalidate: %v", err)
	}
	if fetcher.calls != 2 || quiz.RegisteredTeamsCount != 4 {
		t.Fatalf("invalidate must refetch fresh snapshot, calls=%d teams=%d", fetcher.calls, quiz.RegisteredTeamsCount)
	}
}
