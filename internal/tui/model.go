// Package tui implements the interactive dashboard: monthly summary,
// category breakdown, transaction list, and the create/edit form.
package tui

import (
	"context"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/financeflow/flow/internal/common"
	"github.com/financeflow/flow/internal/form"
	"github.com/financeflow/flow/internal/model"
	"github.com/financeflow/flow/internal/period"
	"github.com/financeflow/flow/internal/session"
	"github.com/financeflow/flow/internal/store"
)

type viewState int

const (
	viewDashboard viewState = iota
	viewForm
	viewConfirmDelete
)

// Form field indices.
const (
	fieldDescription = iota
	fieldAmount
	fieldDate
	fieldCategory
	fieldType
	fieldCount
)

const statusTimeout = 4 * time.Second

// Model is the root bubbletea model for the dashboard.
type Model struct {
	keys KeyMap

	session      *session.Session
	selector     *period.Selector
	transactions *store.TransactionStore
	categories   *store.CategoryStore
	controller   *form.Controller

	state        viewState
	cursor       int
	inputs       []textinput.Model
	focus        int
	deleteTarget model.Transaction

	status    string
	statusErr bool
	showHelp  bool
	expired   bool
	width     int
	height    int
}

// NewModel assembles the dashboard from its collaborators.
func NewModel(sess *session.Session, selector *period.Selector, transactions *store.TransactionStore, categories *store.CategoryStore, controller *form.Controller) Model {
	inputs := make([]textinput.Model, fieldCount)
	placeholders := []string{"description", "0.00", "YYYY-MM-DD", "category id", "IN or OUT"}
	for i := range inputs {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.CharLimit = 64
		inputs[i] = ti
	}

	return Model{
		keys:         DefaultKeyMap(),
		session:      sess,
		selector:     selector,
		transactions: transactions,
		categories:   categories,
		controller:   controller,
		inputs:       inputs,
	}
}

// Init loads categories and the selected month's transactions.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadCategoriesCmd(), m.refreshCmd(), textinput.Blink)
}

func (m Model) refreshCmd() tea.Cmd {
	s := m.transactions
	return func() tea.Msg {
		return transactionsRefreshedMsg{err: s.Refetch(context.Background())}
	}
}

func (m Model) loadCategoriesCmd() tea.Cmd {
	s := m.categories
	return func() tea.Msg {
		return categoriesLoadedMsg{err: s.RefetchAll(context.Background())}
	}
}

func (m Model) shiftMonthCmd(delta int) tea.Cmd {
	sel := m.selector
	s := m.transactions
	return func() tea.Msg {
		// The store refetches synchronously via its period
		// subscription; the subscription itself cannot report back.
		if delta < 0 {
			sel.Previous()
		} else {
			sel.Next()
		}
		return transactionsRefreshedMsg{err: s.LastFetchError()}
	}
}

func (m Model) goToTodayCmd() tea.Cmd {
	sel := m.selector
	s := m.transactions
	return func() tea.Msg {
		sel.GoToToday()
		return transactionsRefreshedMsg{err: s.LastFetchError()}
	}
}

func (m Model) submitCmd() tea.Cmd {
	c := m.controller
	s := m.transactions
	return func() tea.Msg {
		return mutationDoneMsg{err: c.Submit(context.Background(), s)}
	}
}

func (m Model) deleteCmd(id int) tea.Cmd {
	s := m.transactions
	return func() tea.Msg {
		return mutationDoneMsg{err: s.Remove(context.Background(), id)}
	}
}

func expireStatusCmd() tea.Cmd {
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}

// Update routes messages by view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case sessionExpiredMsg:
		m.expired = true
		return m, tea.Quit

	case transactionsRefreshedMsg:
		// A failed refetch keeps the previous list; surface it softly.
		if msg.err != nil {
			return m.withStatus("could not refresh transactions", true), expireStatusCmd()
		}
		m.clampCursor()
		return m, nil

	case categoriesLoadedMsg:
		if msg.err == nil {
			m.controller.ApplyDefaultCategory()
		}
		return m, nil

	case mutationDoneMsg:
		if msg.err != nil {
			return m.withStatus(common.UserMessage(msg.err), true), expireStatusCmd()
		}
		m.state = viewDashboard
		m.clampCursor()
		return m.withStatus("saved", false), expireStatusCmd()

	case clearStatusMsg:
		m.status = ""
		return m, nil

	case tea.KeyMsg:
		switch m.state {
		case viewForm:
			return m.updateForm(msg)
		case viewConfirmDelete:
			return m.updateConfirmDelete(msg)
		default:
			return m.updateDashboard(msg)
		}
	}

	return m, nil
}

func (m Model) updateDashboard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	list := m.transactions.Transactions()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(list)-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.PrevMonth):
		return m, m.shiftMonthCmd(-1)

	case key.Matches(msg, m.keys.NextMonth):
		return m, m.shiftMonthCmd(1)

	case key.Matches(msg, m.keys.Today):
		return m, m.goToTodayCmd()

	case key.Matches(msg, m.keys.Refresh):
		return m, m.refreshCmd()

	case key.Matches(msg, m.keys.New):
		m.controller.Cancel() // fresh defaulted draft
		m.openForm()
		return m, nil

	case key.Matches(msg, m.keys.Edit):
		if m.cursor < len(list) {
			m.controller.BeginEdit(list[m.cursor])
			m.openForm()
		}
		return m, nil

	case key.Matches(msg, m.keys.Delete):
		if m.cursor < len(list) {
			m.deleteTarget = list[m.cursor]
			m.state = viewConfirmDelete
		}
		return m, nil
	}

	return m, nil
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.controller.Cancel()
		m.state = viewDashboard
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		m.collectDraft()
		return m, m.submitCmd()

	case msg.String() == "shift+tab", msg.String() == "up":
		m.setFocus((m.focus + fieldCount - 1) % fieldCount)
		return m, nil

	case key.Matches(msg, m.keys.NextField):
		m.setFocus((m.focus + 1) % fieldCount)
		return m, nil
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m Model) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.state = viewDashboard
		return m, m.deleteCmd(m.deleteTarget.ID)
	case "n", "N", "esc", "q":
		m.state = viewDashboard
		return m, nil
	}
	return m, nil
}

// openForm seeds the inputs from the controller's draft and focuses
// the first field.
func (m *Model) openForm() {
	d := m.controller.Draft()
	m.inputs[fieldDescription].SetValue(d.Description)
	m.inputs[fieldAmount].SetValue(d.Amount)
	m.inputs[fieldDate].SetValue(d.Date)
	if d.Category != 0 {
		m.inputs[fieldCategory].SetValue(strconv.Itoa(d.Category))
	} else {
		m.inputs[fieldCategory].SetValue("")
	}
	m.inputs[fieldType].SetValue(string(d.Type))

	m.state = viewForm
	m.setFocus(fieldDescription)
}

// collectDraft reads the inputs back into the controller's draft.
func (m *Model) collectDraft() {
	categoryID, _ := strconv.Atoi(m.inputs[fieldCategory].Value())
	m.controller.SetDraft(model.Draft{
		Description: m.inputs[fieldDescription].Value(),
		Amount:      m.inputs[fieldAmount].Value(),
		Date:        m.inputs[fieldDate].Value(),
		Category:    categoryID,
		Type:        model.TransactionType(m.inputs[fieldType].Value()),
	})
}

func (m *Model) setFocus(i int) {
	m.focus = i
	for j := range m.inputs {
		if j == i {
			m.inputs[j].Focus()
		} else {
			m.inputs[j].Blur()
		}
	}
}

func (m *Model) clampCursor() {
	if n := len(m.transactions.Transactions()); m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) withStatus(text string, isErr bool) Model {
	m.status = text
	m.statusErr = isErr
	return m
}

// Expired reports whether the program quit because the credential was
// rejected mid-session.
func (m Model) Expired() bool {
	return m.expired
}
