package memory

import (
	"context"
	"testing"
	"time"

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

func TestQuizCacheCaches(t *testing.T) {
	fetcher := &countingFetcher{quizzes: map[int64]domain.Quiz{1: sampleQuiz()}}
	cache := NewQuizCache(fetcher, time.Minute)

	if _, err := cache.Quiz(context.Background(), 1); err != nil {
		t.Fatalf("get quiz: %v", err)
	}
	if fetcher.calls != 1 {
		t.Fatalf("expected fetcher once, got %d", fetcher.calls)
	}

	if _, err := cache.Quiz(context.Background(), 1); err != nil {
		t.Fatalf("get quiz 2: %v", err)
	}
	if fetcher.calls != 1 {
		t.Fatalf("expected cache hit, fetcher calls %d", fetcher.calls)
	}
}

func TestQuizCacheInvalidateForcesRefetch(t *testing.T) {
	fetcher := &countingFetcher{quizzes: map[int64]domain.Quiz{1: sampleQuiz()}}
	cache := NewQuizCache(fetcher, time.Minute)

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
	if fetcher.calls != 2 {
		t.Fatalf("invalidate must force a refetch, fetcher calls %d", fetcher.calls)
	}
	if quiz.RegisteredTeamsCount != 4 {
		t.Fatalf("expected fresh snapshot, got %d teams", quiz.RegisteredTeamsCount)
	}
}

func TestQuizCacheExpiry(t *testing.T) {
	fetcher := &countingFetcher{quizzes: map[int64]domain.Quiz{1: sampleQuiz()}}
	cache := NewQuizCache(fetcher, time.Minute)

	now := time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC)
	cache.clock = func() time.Time { return now }

	if _, err := cache.Quiz(context.Background(), 1); err != nil {
		t.Fatalf("get quiz: %v", err)
	}

	// Past TTL plus maximum jitter.
	now = now.Add(2 * time.Minute)
	if _, err := cache.Quiz(context.Background(), 1); err != nil {
		t.Fatalf("get quiz after expiry: %v", err)
	}
	if fetcher.calls != 2 {
		t.Fatalf("expired entry must refetch, fetcher calls %d", fetcher.calls)
	}
}

func TestQuizCacheMissPropagatesNotFound(t *testing.T) {
	fetcher := &countingFetcher{quizzes: map[int64]domain.Quiz{}}
	cache := NewQuizCache(fetcher, time.Minute)

	_, err := cache.Quiz(context.Background(), 99)
	if domain.KindOf(err) != domain.KindNotFound {
		t.Fatalf("expected not-found, got %v", err)
	}
}
