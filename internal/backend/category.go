package backend

import (
	"context"
	"fmt"

	"quiz-master-gateway/internal/domain"
)

// Categories lists all quiz categories.
func (c *Client) Categories(ctx context.Context) ([]domain.Category, error) {
	var out []domain.Category
	err := c.get(ctx, "/category", &out, call{op: "fetch categories", entity: "category"})
	return out, err
}

// Category fetches one category.
func (c *Client) Category(ctx context.Context, id int64) (domain.Category, error) {
	var out domain.Category
	err := c.get(ctx, fmt.Sprintf("/category/%d", id), &out, call{op: "fetch category", entity: "category"})
	return out, err
}

// CreateCategory adds a category (admin only; the backend enforces it).
func (c *Client) CreateCategory(ctx context.Context, req domain.CategoryRequest) error {
	return c.post(ctx, "/category", req, nil, call{op: "create category", entity: "category"})
}

// UpdateCategory renames a category.
func (c *Client) UpdateCategory(ctx context.Context, id int64, req domain.CategoryRequest) error {
	return c.put(ctx, fmt.Sprintf("/category/%d", id), req, nil, call{op: "update category", entity: "category"})
}

// DeleteCategory removes a category.
func (c *Client) DeleteCategory(ctx context.Context, id int64) error {
	return c.del(ctx, fmt.Sprintf("/category/%d", id), call{op: "delete category", entity: "category"})
}
