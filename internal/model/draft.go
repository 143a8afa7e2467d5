package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Draft is the form-shaped mirror of Transaction used while composing
// create or edit input. Fields stay strings until submit; Category
// holds a category id once the category list has loaded (zero means
// not yet chosen).
type Draft struct {
	Description string
	Amount      string
	Date        string
	Type        TransactionType
	Category    int
}

// TransactionPayload is the POST/PUT body for transaction mutations.
type TransactionPayload struct {
	Description string          `json:"description"`
	Amount      string          `json:"amount"`
	Date        string          `json:"date"`
	Type        TransactionType `json:"type"`
	Category    *int            `json:"category"`
}

// DraftFromTransaction seeds an edit-mode draft from an existing
// record's current field values.
func DraftFromTransaction(t Transaction) Draft {
	d := Draft{
		Description: t.Description,
		Amount:      t.Amount,
		Date:        t.Date,
		Type:        t.Type,
	}
	if t.Category != nil {
		d.Category = *t.Category
	}
	return d
}

// Validate checks the draft at the form boundary before it is
// submitted. It reports the first problem found.
func (d Draft) Validate() error {
	if d.Description == "" {
		return fmt.Errorf("description is required")
	}
	amount, err := decimal.NewFromString(d.Amount)
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", d.Amount, err)
	}
	if amount.IsNegative() {
		return fmt.Errorf("amount must not be negative")
	}
	if _, err := time.ParseInLocation(DateLayout, d.Date, time.Local); err != nil {
		return fmt.Errorf("invalid date %q: %w", d.Date, err)
	}
	if d.Type != TypeIncome && d.Type != TypeExpense {
		return fmt.Errorf("invalid transaction type %q", d.Type)
	}
	return nil
}

// Payload converts a validated draft into the mutation body. An unset
// category is sent as null; the backend stores the transaction as
// uncategorized.
func (d Draft) Payload() TransactionPayload {
	p := TransactionPayload{
		Description: d.Description,
		Amount:      d.Amount,
		Date:        d.Date,
		Type:        d.Type,
	}
	if d.Category != 0 {
		id := d.Category
		p.Category = &id
	}
	return p
}
