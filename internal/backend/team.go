package backend

import (
	"context"
	"fmt"

	"quiz-master-gateway/internal/domain"
)

// MyTeams lists the authenticated captain's registrations.
func (c *Client) MyTeams(ctx context.Context) ([]domain.Team, error) {
	var out []domain.Team
	err := c.get(ctx, "/team/my", &out, call{op: "fetch teams", entity: "team"})
	return out, err
}

// TeamsByQuiz lists every team registered for a quiz.
func (c *Client) TeamsByQuiz(ctx context.Context, quizID int64) ([]domain.QuizTeam, error) {
	var out []domain.QuizTeam
	err := c.get(ctx, fmt.Sprintf("/team/quiz/%d", quizID), &out,
		call{op: "fetch quiz teams", entity: "quiz"})
	return out, err
}

// CreateTeam registers a team; the backend enforces capacity and the
// one-team-per-captain rule.
func (c *Client) CreateTeam(ctx context.Context, req domain.CreateTeamRequest) (domain.Team, error) {
	var out domain.Team
	err := c.post(ctx, "/team", req, &out, call{op: "register team", entity: "quiz"})
	return out, err
}

// UpdateTeam edits a registration.
func (c *Client) UpdateTeam(ctx context.Context, teamID int64, req domain.UpdateTeamRequest) (domain.Team, error) {
	var out domain.Team
	err := c.put(ctx, fmt.Sprintf("/team/%d", teamID), req, &out, call{op: "update team", entity: "team"})
	return out, err
}

// DeleteTeam withdraws a registration.
func (c *Client) DeleteTeam(ctx context.Context, teamID int64) error {
	return c.del(ctx, fmt.Sprintf("/team/%d", teamID), call{op: "withdraw team", entity: "team"})
}

// SetTeamResult publishes one team's final position.
func (c *Client) SetTeamResult(ctx context.Context, teamID int64, req domain.TeamResultRequest) error {
	return c.put(ctx, fmt.Sprintf("/team/%d/result", teamID), req, nil,
		call{op: "set team result", entity: "team"})
}
