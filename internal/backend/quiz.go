package backend

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"quiz-master-gateway/internal/domain"
)

// SearchQuizzes lists quizzes with optional search-term, category, and sort
// filters.
func (c *Client) SearchQuizzes(ctx context.Context, params domain.QuizSearchParams) ([]domain.QuizSummary, error) {
	query := url.Values{}
	if params.SearchTerm != "" {
		query.Set("searchTerm", params.SearchTerm)
	}
	if params.CategoryID != 0 {
		query.Set("categoryId", strconv.FormatInt(params.CategoryID, 10))
	}
	if params.SortBy != "" {
		query.Set("sortBy", string(params.SortBy))
	}
	if params.SortDirection != "" {
		query.Set("sortDirection", string(params.SortDirection))
	}

	path := "/quiz"
	if encoded := query.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var out []domain.QuizSummary
	if err := c.get(ctx, path, &out, call{op: "fetch quizzes", entity: "quiz"}); err != nil {
		return nil, err
	}
	return out, nil
}

// Quiz fetches one quiz's full detail record.
func (c *Client) Quiz(ctx context.Context, id int64) (domain.Quiz, error) {
	var out domain.Quiz
	err := c.get(ctx, fmt.Sprintf("/quiz/%d", id), &out, call{op: "fetch quiz", entity: "quiz"})
	return out, err
}

// QuizzesByOrganizer lists an organizer's quizzes for their profile page.
func (c *Client) QuizzesByOrganizer(ctx context.Context, organizerID int64) ([]domain.QuizSummary, error) {
	var out []domain.QuizSummary
	err := c.get(ctx, fmt.Sprintf("/quiz/organizer/%d", organizerID), &out,
		call{op: "fetch organizer quizzes", entity: "organizer"})
	return out, err
}

// CreateQuiz schedules a new quiz for the authenticated organizer.
func (c *Client) CreateQuiz(ctx context.Context, req domain.QuizRequest) (domain.Quiz, error) {
	var out domain.Quiz
	err := c.post(ctx, "/quiz", req, &out, call{op: "create quiz", entity: "quiz"})
	return out, err
}

// UpdateQuiz edits an existing quiz.
func (c *Client) UpdateQuiz(ctx context.Context, id int64, req domain.QuizRequest) (domain.Quiz, error) {
	var out domain.Quiz
	err := c.put(ctx, fmt.Sprintf("/quiz/%d", id), req, &out, call{op: "update quiz", entity: "quiz"})
	return out, err
}

// DeleteQuiz removes a quiz.
func (c *Client) DeleteQuiz(ctx context.Context, id int64) error {
	return c.del(ctx, fmt.Sprintf("/quiz/%d", id), call{op: "delete quiz", entity: "quiz"})
}
