package backend

import (
	"context"
	"fmt"

	"quiz-master-gateway/internal/domain"
)

// MyNotifications lists the authenticated user's notifications.
func (c *Client) MyNotifications(ctx context.Context) ([]domain.Notification, error) {
	var out []domain.Notification
	err := c.get(ctx, "/notification/my", &out, call{op: "fetch notifications", entity: "notification"})
	return out, err
}

// MarkNotificationRead flags one notification as read.
func (c *Client) MarkNotificationRead(ctx context.Context, id int64) error {
	return c.put(ctx, fmt.Sprintf("/notification/%d/read", id), nil, nil,
		call{op: "mark notification read", entity: "notification"})
}

// MarkAllNotificationsRead flags every notification as read.
func (c *Client) MarkAllNotificationsRead(ctx context.Context) error {
	return c.put(ctx, "/notification/my/read-all", nil, nil,
		call{op: "mark notifications read", entity: "notification"})
}

// DeleteNotification removes one notification.
func (c *Client) DeleteNotification(ctx context.Context, id int64) error {
	return c.del(ctx, fmt.Sprintf("/notification/%d", id),
		call{op: "delete notification", entity: "notification"})
}
