package aggregate

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/financeflow/flow/internal/model"
)

func tx(txType model.TransactionType, amount, category string) model.Transaction {
	return model.Transaction{Type: txType, Amount: amount, CategoryName: category}
}

func TestSummarize(t *testing.T) {
	transactions := []model.Transaction{
		tx(model.TypeIncome, "2500.00", "Salary"),
		tx(model.TypeExpense, "50.25", "Food"),
		tx(model.TypeExpense, "800.00", "Rent"),
		tx(model.TypeIncome, "120.50", "Freelance"),
	}

	s := Summarize(transactions)

	assert.True(t, s.Income.Equal(decimal.RequireFromString("2620.50")), "income = %s", s.Income)
	assert.True(t, s.Expense.Equal(decimal.RequireFromString("850.25")), "expense = %s", s.Expense)
	assert.True(t, s.Balance.Equal(decimal.RequireFromString("1770.25")), "balance = %s", s.Balance)

	// The defining invariant: income - expense == balance, exactly.
	assert.True(t, s.Income.Sub(s.Expense).Equal(s.Balance))
}

func TestSummarizeEmptyList(t *testing.T) {
	s := Summarize(nil)
	assert.True(t, s.Income.IsZero())
	assert.True(t, s.Expense.IsZero())
	assert.True(t, s.Balance.IsZero())
}

func TestSummarizeDecimalExactness(t *testing.T) {
	// 0.1 + 0.2 style sums that drift in binary floating point.
	transactions := []model.Transaction{
		tx(model.TypeExpense, "0.10", ""),
		tx(model.TypeExpense, "0.20", ""),
	}

	s := Summarize(transactions)
	assert.True(t, s.Expense.Equal(decimal.RequireFromString("0.30")), "expense = %s", s.Expense)
}

func TestExpensesByCategory(t *testing.T) {
	t.Run("groups in first-occurrence order", func(t *testing.T) {
		transactions := []model.Transaction{
			tx(model.TypeExpense, "50", "Food"),
			tx(model.TypeExpense, "30", "Food"),
			tx(model.TypeExpense, "20", "Rent"),
		}

		groups := ExpensesByCategory(transactions)
		require.Len(t, groups, 2)
		assert.Equal(t, "Food", groups[0].Name)
		assert.True(t, groups[0].Amount.Equal(decimal.NewFromInt(80)))
		assert.Equal(t, "Rent", groups[1].Name)
		assert.True(t, groups[1].Amount.Equal(decimal.NewFromInt(20)))
	})

	t.Run("ignores income", func(t *testing.T) {
		transactions := []model.Transaction{
			tx(model.TypeIncome, "1000", "Salary"),
			tx(model.TypeExpense, "10", "Food"),
		}

		groups := ExpensesByCategory(transactions)
		require.Len(t, groups, 1)
		assert.Equal(t, "Food", groups[0].Name)
	})

	t.Run("group sums add up to total expense", func(t *testing.T) {
		transactions := []model.Transaction{
			tx(model.TypeExpense, "12.34", "Food"),
			tx(model.TypeExpense, "56.78", "Rent"),
			tx(model.TypeExpense, "9.10", "Food"),
			tx(model.TypeIncome, "999.99", "Salary"),
		}

		total := decimal.Zero
		for _, g := range ExpensesByCategory(transactions) {
			total = total.Add(g.Amount)
		}
		assert.True(t, total.Equal(Summarize(transactions).Expense))
	})

	t.Run("orphaned category groups under its placeholder label", func(t *testing.T) {
		// After a referenced category is deleted, the backend serves
		// an empty display name; it still gets a stable group.
		transactions := []model.Transaction{
			tx(model.TypeExpense, "5", ""),
			tx(model.TypeExpense, "7", ""),
		}

		groups := ExpensesByCategory(transactions)
		require.Len(t, groups, 1)
		assert.True(t, groups[0].Amount.Equal(decimal.NewFromInt(12)))
	})
}
