// Package model defines the wire types exchanged with the FinanceFlow API.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType marks a transaction as income or expense.
type TransactionType string

const (
	// TypeIncome represents money coming in.
	TypeIncome TransactionType = "IN"
	// TypeExpense represents money going out.
	TypeExpense TransactionType = "OUT"
)

// DateLayout is the calendar-date format used across the API.
const DateLayout = "2006-01-02"

// Transaction is a single record as served by the backend.
//
// Amount crosses the wire as a decimal string. CategoryName is a
// denormalized display field recomputed server-side on every read; it
// can lag a category rename or deletion until the next refetch.
type Transaction struct {
	Description  string          `json:"description"`
	Amount       string          `json:"amount"`
	Date         string          `json:"date"`
	CategoryName string          `json:"category_name"`
	Type         TransactionType `json:"type"`
	Category     *int            `json:"category"`
	ID           int             `json:"id"`
}

// DecimalAmount parses the wire amount string. Malformed amounts
// collapse to zero rather than poisoning an aggregate.
func (t Transaction) DecimalAmount() decimal.Decimal {
	d, err := decimal.NewFromString(t.Amount)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// DateValue parses the calendar date in local time.
func (t Transaction) DateValue() (time.Time, error) {
	return time.ParseInLocation(DateLayout, t.Date, time.Local)
}
