package store

import (
	"context"
	"sync"

	"github.com/financeflow/flow/internal/api"
	"github.com/financeflow/flow/internal/common"
	"github.com/financeflow/flow/internal/model"
)

// CategoryStore mirrors the user's category list. Mutations go through
// the gateway and are followed by a full reload; the local copy is
// never patched in place. Logout leaves it stale but harmless, since
// it reloads on the next authenticated use.
type CategoryStore struct {
	client *api.Client

	mu         sync.Mutex
	categories []model.Category
}

// NewCategoryStore creates an empty category store.
func NewCategoryStore(client *api.Client) *CategoryStore {
	return &CategoryStore{client: client}
}

// Categories returns the current list.
func (s *CategoryStore) Categories() []model.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Category, len(s.categories))
	copy(out, s.categories)
	return out
}

// DefaultID returns the first category's id, or zero when the list is
// empty. Drafts adopt it so the category field is never left empty if
// avoidable.
func (s *CategoryStore) DefaultID() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.categories) == 0 {
		return 0
	}
	return s.categories[0].ID
}

// RefetchAll replaces the whole list. On failure the previous list is
// kept.
func (s *CategoryStore) RefetchAll(ctx context.Context) error {
	categories, err := s.client.ListCategories(ctx)
	if err != nil {
		common.LogError(err, "Failed to fetch categories", nil)
		return err
	}

	s.mu.Lock()
	s.categories = categories
	s.mu.Unlock()
	return nil
}

// Create adds a category then reloads the list.
func (s *CategoryStore) Create(ctx context.Context, name string) error {
	if err := s.client.CreateCategory(ctx, name); err != nil {
		return common.NewUserError("failed to add category", err)
	}
	return s.RefetchAll(ctx)
}

// Rename changes a category's name then reloads the list. Transaction
// rows keep showing the old denormalized name until their next refetch.
func (s *CategoryStore) Rename(ctx context.Context, id int, name string) error {
	if err := s.client.RenameCategory(ctx, id, name); err != nil {
		return common.NewUserError("failed to rename category", err)
	}
	return s.RefetchAll(ctx)
}

// Remove deletes a category then reloads the list. Transactions that
// referenced it are orphaned server-side; the backend supplies their
// placeholder label on the next transaction refetch. Callers must have
// obtained interactive confirmation first.
func (s *CategoryStore) Remove(ctx context.Context, id int) error {
	if err := s.client.DeleteCategory(ctx, id); err != nil {
		return common.NewUserError("failed to delete category", err)
	}
	return s.RefetchAll(ctx)
}
