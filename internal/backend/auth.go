package backend

import (
	"context"

	"quiz-master-gateway/internal/domain"
)

// Login exchanges credentials for a bearer token and the user profile.
func (c *Client) Login(ctx context.Context, req domain.LoginRequest) (domain.AuthResponse, error) {
	var out domain.AuthResponse
	err := c.post(ctx, "/auth/login", req, &out, call{op: "log in", entity: "user"})
	return out, err
}

// Register creates an account and logs it in. Organizer accounts come back
// unapproved and wait for an admin.
func (c *Client) Register(ctx context.Context, req domain.RegisterRequest) (domain.AuthResponse, error) {
	var out domain.AuthResponse
	err := c.post(ctx, "/auth/register", req, &out, call{op: "register", entity: "user"})
	return out, err
}
