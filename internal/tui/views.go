package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/financeflow/flow/internal/aggregate"
	"github.com/financeflow/flow/internal/cli"
	"github.com/financeflow/flow/internal/form"
	"github.com/financeflow/flow/internal/model"
)

const maxBarWidth = 30

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(cli.PrimaryColor)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444")).
			Padding(0, 2).
			Width(20)

	cardLabelStyle = lipgloss.NewStyle().
			Foreground(cli.SubtleColor)

	selectedRowStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(cli.PrimaryColor)

	barStyle = lipgloss.NewStyle().
			Foreground(cli.ExpenseColor)

	statusOKStyle = lipgloss.NewStyle().
			Foreground(cli.SuccessColor)

	statusErrStyle = lipgloss.NewStyle().
			Foreground(cli.ErrorColor)

	helpStyle = lipgloss.NewStyle().
			Foreground(cli.SubtleColor)
)

// View renders the current view state.
func (m Model) View() string {
	if m.expired {
		return cli.FormatWarning("Session expired. Run 'flow login' to sign in again.") + "\n"
	}

	switch m.state {
	case viewForm:
		return m.viewForm()
	case viewConfirmDelete:
		return m.viewConfirmDelete()
	default:
		return m.viewDashboard()
	}
}

func (m Model) viewDashboard() string {
	var b strings.Builder

	monthLabel := m.selector.Current().Format("January 2006")
	b.WriteString(headerStyle.Render(cli.MoneyIcon+" FinanceFlow · "+monthLabel) + "\n\n")

	transactions := m.transactions.Transactions()
	summary := aggregate.Summarize(transactions)

	b.WriteString(m.viewSummaryCards(summary) + "\n\n")

	if groups := aggregate.ExpensesByCategory(transactions); len(groups) > 0 {
		b.WriteString(m.viewBreakdown(groups, summary.Expense) + "\n")
	}

	b.WriteString(m.viewTransactionList(transactions))

	if m.status != "" {
		style := statusOKStyle
		if m.statusErr {
			style = statusErrStyle
		}
		b.WriteString("\n" + style.Render(m.status) + "\n")
	}

	if m.showHelp {
		b.WriteString("\n" + helpStyle.Render(
			"←/h prev month · →/l next month · t today · n new · e edit · d delete · r refresh · q quit"))
	} else {
		b.WriteString("\n" + helpStyle.Render("? help · q quit"))
	}

	return b.String()
}

func (m Model) viewSummaryCards(summary aggregate.Summary) string {
	income := cardStyle.Render(
		cardLabelStyle.Render("Income") + "\n" +
			cli.IncomeStyle.Render(summary.Income.StringFixed(2)))

	expense := cardStyle.Render(
		cardLabelStyle.Render("Expense") + "\n" +
			cli.ExpenseStyle.Render(summary.Expense.StringFixed(2)))

	balanceStyle := cli.IncomeStyle
	if summary.Balance.IsNegative() {
		balanceStyle = cli.ExpenseStyle
	}
	balance := cardStyle.Render(
		cardLabelStyle.Render("Balance") + "\n" +
			balanceStyle.Render(summary.Balance.StringFixed(2)))

	return lipgloss.JoinHorizontal(lipgloss.Top, income, " ", expense, " ", balance)
}

func (m Model) viewBreakdown(groups []aggregate.CategoryAmount, total decimal.Decimal) string {
	var b strings.Builder
	b.WriteString(cli.SubtleStyle.Render("Expenses by category") + "\n")

	nameWidth := 0
	for _, g := range groups {
		if len(g.Name) > nameWidth {
			nameWidth = len(g.Name)
		}
	}

	for _, g := range groups {
		width := 0
		if total.IsPositive() {
			ratio, _ := g.Amount.Div(total).Float64()
			width = int(ratio * maxBarWidth)
		}
		if width < 1 {
			width = 1
		}

		name := g.Name
		if name == "" {
			name = "(uncategorized)"
		}
		fmt.Fprintf(&b, "  %-*s %s %s\n",
			nameWidth, name,
			barStyle.Render(strings.Repeat("█", width)),
			g.Amount.StringFixed(2))
	}

	return b.String()
}

func (m Model) viewTransactionList(transactions []model.Transaction) string {
	if len(transactions) == 0 {
		return cli.SubtleStyle.Render("No transactions this month. Press 'n' to add one.") + "\n"
	}

	var b strings.Builder
	b.WriteString(cli.SubtleStyle.Render("History") + "\n")

	for i, t := range transactions {
		marker := "  "
		if i == m.cursor {
			marker = "> "
		}

		category := t.CategoryName
		if category == "" {
			category = "(uncategorized)"
		}

		row := fmt.Sprintf("%s%-10s %-28s %-16s %s",
			marker, t.Date, truncate(t.Description, 28), category,
			cli.FormatAmount(t.DecimalAmount().StringFixed(2), t.Type == model.TypeIncome))

		if i == m.cursor {
			row = selectedRowStyle.Render(row)
		}
		b.WriteString(row + "\n")
	}

	return b.String()
}

func (m Model) viewForm() string {
	var b strings.Builder

	title := "New Transaction"
	if m.controller.Mode() == form.ModeEdit {
		title = fmt.Sprintf("Edit Transaction %d", m.controller.EditingID())
	}
	b.WriteString(headerStyle.Render(title) + "\n\n")

	labels := []string{"Description", "Amount", "Date", "Category", "Type"}
	for i, input := range m.inputs {
		b.WriteString(cardLabelStyle.Render(labels[i]) + "\n")
		b.WriteString(input.View() + "\n")
	}

	if categories := m.categories.Categories(); len(categories) > 0 {
		var legend []string
		for _, c := range categories {
			legend = append(legend, fmt.Sprintf("%d=%s", c.ID, c.Name))
		}
		b.WriteString("\n" + helpStyle.Render("Categories: "+strings.Join(legend, "  ")) + "\n")
	}

	if m.status != "" && m.statusErr {
		b.WriteString("\n" + statusErrStyle.Render(m.status) + "\n")
	}

	b.WriteString("\n" + helpStyle.Render("Enter submit · Tab next field · Esc cancel"))
	return b.String()
}

func (m Model) viewConfirmDelete() string {
	question := fmt.Sprintf("Delete %q (%s)?",
		m.deleteTarget.Description, m.deleteTarget.DecimalAmount().StringFixed(2))

	return cli.RenderBox("Confirm", question+"\n\n"+helpStyle.Render("y delete · n keep"))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}
