package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/financeflow/flow/internal/model"
)

type categoryPayload struct {
	Name string `json:"name"`
}

// ListCategories fetches the full category list.
func (c *Client) ListCategories(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	if err := c.do(ctx, http.MethodGet, "categories/", nil, nil, &categories); err != nil {
		return nil, fmt.Errorf("failed to fetch categories: %w", err)
	}
	return categories, nil
}

// CreateCategory adds a new category. Name uniqueness is enforced by
// the backend.
func (c *Client) CreateCategory(ctx context.Context, name string) error {
	if err := c.do(ctx, http.MethodPost, "categories/", nil, categoryPayload{Name: name}, nil); err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

// RenameCategory changes a category's name.
func (c *Client) RenameCategory(ctx context.Context, id int, name string) error {
	path := fmt.Sprintf("categories/%d/", id)
	if err := c.do(ctx, http.MethodPatch, path, nil, categoryPayload{Name: name}, nil); err != nil {
		return fmt.Errorf("failed to rename category %d: %w", id, err)
	}
	return nil
}

// DeleteCategory removes a category. Transactions that referenced it
// are orphaned server-side, not deleted.
func (c *Client) DeleteCategory(ctx context.Context, id int) error {
	path := fmt.Sprintf("categories/%d/", id)
	if err := c.do(ctx, http.MethodDelete, path, nil, nil, nil); err != nil {
		return fmt.Errorf("failed to delete category %d: %w", id, err)
	}
	return nil
}
