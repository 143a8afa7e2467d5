// Package aggregate computes summary values from a loaded transaction
// list. Everything here is pure and recomputed on every call; nothing
// is cached across fetches.
package aggregate

import (
	"github.com/shopspring/decimal"

	"github.com/financeflow/flow/internal/model"
)

// Summary holds the monthly totals shown on the dashboard cards.
type Summary struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
	Balance decimal.Decimal
}

// CategoryAmount is one slice of the expense breakdown.
type CategoryAmount struct {
	Name   string
	Amount decimal.Decimal
}

// Summarize totals the list. Income sums IN transactions, Expense sums
// OUT, and Balance is exactly Income minus Expense.
func Summarize(transactions []model.Transaction) Summary {
	income := decimal.Zero
	expense := decimal.Zero

	for _, t := range transactions {
		switch t.Type {
		case model.TypeIncome:
			income = income.Add(t.DecimalAmount())
		case model.TypeExpense:
			expense = expense.Add(t.DecimalAmount())
		}
	}

	return Summary{
		Income:  income,
		Expense: expense,
		Balance: income.Sub(expense),
	}
}

// ExpensesByCategory groups OUT transactions by their display category
// name, summing amounts per group. Group order follows first
// occurrence in the source list.
func ExpensesByCategory(transactions []model.Transaction) []CategoryAmount {
	var groups []CategoryAmount
	index := make(map[string]int)

	for _, t := range transactions {
		if t.Type != model.TypeExpense {
			continue
		}

		name := t.CategoryName
		if i, ok := index[name]; ok {
			groups[i].Amount = groups[i].Amount.Add(t.DecimalAmount())
			continue
		}

		index[name] = len(groups)
		groups = append(groups, CategoryAmount{Name: name, Amount: t.DecimalAmount()})
	}

	return groups
}
