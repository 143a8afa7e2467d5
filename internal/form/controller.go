// Package form holds the draft transaction being composed and decides
// whether submitting it creates a new record or replaces an existing
// one.
package form

import (
	"context"
	"sync"
	"time"

	"github.com/financeflow/flow/internal/model"
	"github.com/financeflow/flow/internal/store"
)

// Mode distinguishes composing a new transaction from editing one.
type Mode int

const (
	// ModeCreate composes a new transaction.
	ModeCreate Mode = iota
	// ModeEdit replaces an existing transaction's fields.
	ModeEdit
)

// Controller owns the draft lifecycle: blank with defaults in create
// mode, seeded wholesale from a record in edit mode, reset after every
// successful submit or explicit cancel. Submit runs on goroutines the
// UI spawns while the render path reads the mode and draft, so all
// state sits behind the mutex.
type Controller struct {
	categories *store.CategoryStore

	mu     sync.Mutex
	draft  model.Draft
	editID int
	mode   Mode
}

// NewController starts in create mode with a blank defaulted draft.
func NewController(categories *store.CategoryStore) *Controller {
	c := &Controller{categories: categories}
	c.Cancel()
	return c
}

// Mode returns the current mode.
func (c *Controller) Mode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// EditingID returns the id of the transaction being edited; only
// meaningful in edit mode.
func (c *Controller) EditingID() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.editID
}

// Draft returns the current draft.
func (c *Controller) Draft() model.Draft {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

// SetDraft replaces the draft contents, keeping the current mode.
func (c *Controller) SetDraft(d model.Draft) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft = d
}

// BeginEdit switches to edit mode, replacing the draft wholesale with
// the record's current field values.
func (c *Controller) BeginEdit(t model.Transaction) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mode = ModeEdit
	c.editID = t.ID
	c.draft = model.DraftFromTransaction(t)
}

// Cancel abandons the draft and returns to create mode.
func (c *Controller) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reset()
}

// Submit dispatches the draft as a create or an update depending on
// the current mode, never both. On success the draft resets to blank
// with defaults reapplied; on failure it is kept for correction. The
// lock is released around the network call; the UI keeps rendering
// the submitted draft until the result lands.
func (c *Controller) Submit(ctx context.Context, transactions *store.TransactionStore) error {
	c.mu.Lock()
	mode, editID, draft := c.mode, c.editID, c.draft
	c.mu.Unlock()

	var err error
	switch mode {
	case ModeEdit:
		err = transactions.Update(ctx, editID, draft)
	default:
		err = transactions.Create(ctx, draft)
	}
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.reset()
	return nil
}

// ApplyDefaultCategory adopts the first category's id if the draft has
// none set yet. The category store's refresh path calls this so a
// draft is never left without a category once one exists.
func (c *Controller) ApplyDefaultCategory() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.applyDefaultCategory()
}

func (c *Controller) applyDefaultCategory() {
	if c.draft.Category == 0 {
		c.draft.Category = c.categories.DefaultID()
	}
}

// reset returns to create mode: blank draft, today's date, expense
// type, default category when available. Callers hold the lock.
func (c *Controller) reset() {
	c.mode = ModeCreate
	c.editID = 0
	c.draft = model.Draft{
		Date: time.Now().Format(model.DateLayout),
		Type: model.TypeExpense,
	}
	c.applyDefaultCategory()
}
