package backend

import (
	"context"
	"fmt"

	"quiz-master-gateway/internal/domain"
)

// User fetches a public user profile (organizer pages use this).
func (c *Client) User(ctx context.Context, id int64) (domain.User, error) {
	var out domain.User
	err := c.get(ctx, fmt.Sprintf("/user/%d", id), &out, call{op: "fetch user", entity: "user"})
	return out, err
}

// UpdateProfile edits the authenticated user's own profile.
func (c *Client) UpdateProfile(ctx context.Context, req domain.UpdateProfileRequest) (domain.User, error) {
	var out domain.User
	err := c.put(ctx, "/user/profile", req, &out, call{op: "update profile", entity: "user"})
	return out, err
}

// ChangePassword rotates the authenticated user's password.
func (c *Client) ChangePassword(ctx context.Context, req domain.ChangePasswordRequest) error {
	return c.put(ctx, "/user/password", req, nil, call{op: "change password", entity: "user"})
}

// AllUsers lists every account (admin back-office).
func (c *Client) AllUsers(ctx context.Context) ([]domain.User, error) {
	var out []domain.User
	err := c.get(ctx, "/admin/users", &out, call{op: "fetch users", entity: "user"})
	return out, err
}

// DeleteUser removes an account (admin back-office).
func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	return c.del(ctx, fmt.Sprintf("/admin/users/%d", id), call{op: "delete user", entity: "user"})
}

// PendingOrganizers lists organizer accounts awaiting approval.
func (c *Client) PendingOrganizers(ctx context.Context) ([]domain.User, error) {
	var out []domain.User
	err := c.get(ctx, "/admin/pending-organizers", &out,
		call{op: "fetch pending organizers", entity: "organizer"})
	return out, err
}

// ApproveOrganizer activates a pending organizer account.
func (c *Client) ApproveOrganizer(ctx context.Context, id int64) error {
	return c.put(ctx, fmt.Sprintf("/admin/approve-organizer/%d", id), nil, nil,
		call{op: "approve organizer", entity: "organizer"})
}

// RejectOrganizer declines a pending organizer account.
func (c *Client) RejectOrganizer(ctx context.Context, id int64) error {
	return c.put(ctx, fmt.Sprintf("/admin/reject-organizer/%d", id), nil, nil,
		call{op: "reject organizer", entity: "organizer"})
}

// AllQuizzes lists every quiz for admin moderation and stats.
func (c *Client) AllQuizzes(ctx context.Context) ([]domain.QuizSummary, error) {
	var out []domain.QuizSummary
	err := c.get(ctx, "/admin/all-quizzes", &out, call{op: "fetch quizzes", entity: "quiz"})
	return out, err
}
