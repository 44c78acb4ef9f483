package backend

import (
	"context"
	"fmt"

	"quiz-master-gateway/internal/domain"
)

// SubscriptionStatus reports whether the authenticated competitor follows the
// organizer.
func (c *Client) SubscriptionStatus(ctx context.Context, organizerID int64) (bool, error) {
	var subscribed bool
	err := c.get(ctx, fmt.Sprintf("/subscription/organizer/%d/status", organizerID), &subscribed,
		call{op: "check subscription", entity: "organizer"})
	return subscribed, err
}

// ToggleSubscription flips the follow state and returns the new one.
func (c *Client) ToggleSubscription(ctx context.Context, organizerID int64) (bool, error) {
	var out struct {
		IsSubscribed bool `json:"isSubscribed"`
	}
	err := c.post(ctx, fmt.Sprintf("/subscription/organizer/%d/toggle", organizerID), nil, &out,
		call{op: "toggle subscription", entity: "organizer"})
	return out.IsSubscribed, err
}

// MySubscriptions lists the organizers the authenticated competitor follows.
func (c *Client) MySubscriptions(ctx context.Context) ([]domain.Subscription, error) {
	var out []domain.Subscription
	err := c.get(ctx, "/subscription/my", &out, call{op: "fetch subscriptions", entity: "subscription"})
	return out, err
}
