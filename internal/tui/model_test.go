package tui

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/financeflow/flow/internal/api"
	"github.com/financeflow/flow/internal/form"
	"github.com/financeflow/flow/internal/model"
	"github.com/financeflow/flow/internal/period"
	"github.com/financeflow/flow/internal/session"
	"github.com/financeflow/flow/internal/store"
)

type harness struct {
	model    Model
	selector *period.Selector

	mu           sync.Mutex
	transactions []model.Transaction
	deleted      []int
	failReads    bool
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{}

	mux := http.NewServeMux()
	mux.HandleFunc("/transactions/", func(w http.ResponseWriter, r *http.Request) {
		h.mu.Lock()
		defer h.mu.Unlock()
		switch r.Method {
		case http.MethodGet:
			if h.failReads {
				http.Error(w, "boom", http.StatusInternalServerError)
				return
			}
			out := []model.Transaction{}
			month, _ := strconv.Atoi(r.URL.Query().Get("month"))
			for _, tx := range h.transactions {
				date, err := tx.DateValue()
				if err == nil && int(date.Month()) == month {
					out = append(out, tx)
				}
			}
			_ = json.NewEncoder(w).Encode(out)
		case http.MethodDelete:
			id, _ := strconv.Atoi(r.URL.Path[len("/transactions/") : len(r.URL.Path)-1])
			h.deleted = append(h.deleted, id)
			for i, tx := range h.transactions {
				if tx.ID == id {
					h.transactions = append(h.transactions[:i], h.transactions[i+1:]...)
					break
				}
			}
			w.WriteHeader(http.StatusNoContent)
		}
	})
	mux.HandleFunc("/categories/", func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode([]model.Category{{ID: 1, Name: "Food"}})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	sess, err := session.Load(filepath.Join(t.TempDir(), "session.json"))
	require.NoError(t, err)
	require.NoError(t, sess.SetToken("tok"))

	client := api.NewClient(srv.URL, sess)
	h.selector = period.NewSelectorAt(time.Date(2024, time.March, 15, 0, 0, 0, 0, time.Local))
	transactions := store.NewTransactionStore(client, h.selector, sess)
	categories := store.NewCategoryStore(client)

	h.model = NewModel(sess, h.selector, transactions, categories, form.NewController(categories))
	return h
}

func (h *harness) seed(tx model.Transaction) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.transactions = append(h.transactions, tx)
}

func (h *harness) setFailReads(fail bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.failReads = fail
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMonthNavigationKeys(t *testing.T) {
	h := newHarness(t)

	updated, cmd := h.model.Update(keyMsg("l"))
	require.NotNil(t, cmd)

	// Running the command performs the period change and refetch.
	msg := cmd()
	_, ok := msg.(transactionsRefreshedMsg)
	assert.True(t, ok)
	assert.Equal(t, 4, h.selector.Month())

	m := updated.(Model)
	updated, cmd = m.Update(keyMsg("h"))
	require.NotNil(t, cmd)
	cmd()
	assert.Equal(t, 3, h.selector.Month())

	_ = updated
}

func TestMonthNavigationSurfacesRefreshFailure(t *testing.T) {
	h := newHarness(t)
	h.setFailReads(true)

	updated, cmd := h.model.Update(keyMsg("l"))
	require.NotNil(t, cmd)

	msg := cmd()
	refreshed, ok := msg.(transactionsRefreshedMsg)
	require.True(t, ok)
	require.Error(t, refreshed.err, "navigation reports the failed refetch like manual refresh does")

	m, _ := updated.(Model).Update(msg)
	assert.Contains(t, m.(Model).View(), "could not refresh transactions")
}

func TestNewTransactionFormDefaults(t *testing.T) {
	h := newHarness(t)

	updated, _ := h.model.Update(keyMsg("n"))
	m := updated.(Model)

	assert.Equal(t, viewForm, m.state)
	assert.Equal(t, time.Now().Format(model.DateLayout), m.inputs[fieldDate].Value())
	assert.Equal(t, string(model.TypeExpense), m.inputs[fieldType].Value())
}

func TestEditSeedsFormFromSelection(t *testing.T) {
	h := newHarness(t)
	catID := 1
	h.seed(model.Transaction{
		ID: 10, Description: "Rent", Amount: "800.00", Date: "2024-03-01",
		Type: model.TypeExpense, Category: &catID, CategoryName: "Food",
	})
	require.NoError(t, h.model.transactions.Refetch(context.Background()))

	updated, _ := h.model.Update(keyMsg("e"))
	m := updated.(Model)

	assert.Equal(t, viewForm, m.state)
	assert.Equal(t, form.ModeEdit, m.controller.Mode())
	assert.Equal(t, 10, m.controller.EditingID())
	assert.Equal(t, "Rent", m.inputs[fieldDescription].Value())
	assert.Equal(t, "800.00", m.inputs[fieldAmount].Value())
	assert.Equal(t, "1", m.inputs[fieldCategory].Value())
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	h := newHarness(t)
	h.seed(model.Transaction{ID: 10, Description: "Rent", Amount: "800.00", Date: "2024-03-01", Type: model.TypeExpense})
	require.NoError(t, h.model.transactions.Refetch(context.Background()))

	updated, cmd := h.model.Update(keyMsg("d"))
	m := updated.(Model)
	assert.Equal(t, viewConfirmDelete, m.state)
	assert.Nil(t, cmd, "no deletion before confirmation")

	t.Run("declining keeps the transaction", func(t *testing.T) {
		declined, cmd := m.Update(keyMsg("n"))
		assert.Equal(t, viewDashboard, declined.(Model).state)
		assert.Nil(t, cmd)
		assert.Empty(t, h.deleted)
	})

	t.Run("confirming deletes and refetches", func(t *testing.T) {
		confirmed, cmd := m.Update(keyMsg("y"))
		require.NotNil(t, cmd)

		msg := cmd()
		done, ok := msg.(mutationDoneMsg)
		require.True(t, ok)
		require.NoError(t, done.err)

		assert.Equal(t, []int{10}, h.deleted)
		assert.Empty(t, confirmed.(Model).transactions.Transactions())
	})
}

func TestSessionExpiryQuitsDashboard(t *testing.T) {
	h := newHarness(t)

	updated, cmd := h.model.Update(sessionExpiredMsg{})
	m := updated.(Model)

	assert.True(t, m.Expired())
	require.NotNil(t, cmd)
	assert.Contains(t, m.View(), "Session expired")
}
