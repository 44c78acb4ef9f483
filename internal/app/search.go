package app

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"quiz-master-gateway/internal/domain"
)

// QuizSearcher is the slice of the data-access interface the search flow
// needs.
type QuizSearcher interface {
	SearchQuizzes(ctx context.Context, params domain.QuizSearchParams) ([]domain.QuizSummary, error)
}

// SearchCoordinator debounces filter changes with one uniform interval and
// guards against stale responses: each change bumps a generation, and a
// response only applies while its generation is still current. Without the
// guard a slow older query could overwrite a newer one's results.
type SearchCoordinator struct {
	searcher QuizSearcher
	debounce time.Duration
	apply    func(params domain.QuizSearchParams, quizzes []domain.QuizSummary, err error)
	logger   *slog.Logger

	mu    sync.Mutex
	gen   uint64
	timer *time.Timer
}

func NewSearchCoordinator(searcher QuizSearcher, debounce time.Duration, apply func(domain.QuizSearchParams, []domain.QuizSummary, error), logger *slog.Logger) *SearchCoordinator {
	if logger == nil {
		logger = slog.Default()
	}
	return &SearchCoordinator{
		searcher: searcher,
		debounce: debounce,
		apply:    apply,
		logger:   logger,
	}
}

// SetParams records a filter change. The pending query, if any, is
// superseded; after the debounce interval the latest params are queried.
func (c *SearchCoordinator) SetParams(ctx context.Context, params domain.QuizSearchParams) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.gen++
	gen := c.gen
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(c.debounce, func() {
		c.run(ctx, gen, params)
	})
}

// Stop cancels any pending query and invalidates in-flight responses.
func (c *SearchCoordinator) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

func (c *SearchCoordinator) run(ctx context.Context, gen uint64, params domain.QuizSearchParams) {
	if !c.current(gen) {
		return
	}
	quizzes, err := c.searcher.SearchQuizzes(ctx, params)
	if !c.current(gen) {
		// Superseded while in flight; newer results win.
		return
	}
	if err != nil {
		c.logger.Warn("quiz search failed", "searchTerm", params.SearchTerm, "err", err)
	}
	c.apply(params, quizzes, err)
}

func (c *SearchCoordinator) current(gen uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gen == gen
}
