package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/financeflow/flow/internal/api"
	"github.com/financeflow/flow/internal/form"
	"github.com/financeflow/flow/internal/period"
	"github.com/financeflow/flow/internal/session"
	"github.com/financeflow/flow/internal/store"
)

// Run starts the dashboard and blocks until it exits. A credential
// rejection mid-session quits the program and reports expiry.
func Run(sess *session.Session, client *api.Client, selector *period.Selector, transactions *store.TransactionStore, categories *store.CategoryStore) error {
	controller := form.NewController(categories)
	m := NewModel(sess, selector, transactions, categories, controller)

	p := tea.NewProgram(m, tea.WithAltScreen())

	// The gateway's global 401 policy already cleared the credential;
	// the dashboard just needs to get out of the way.
	client.SetUnauthorizedHook(func() {
		p.Send(sessionExpiredMsg{})
	})

	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("dashboard failed: %w", err)
	}

	if fm, ok := final.(Model); ok && fm.Expired() {
		return fmt.Errorf("session expired, run 'flow login' to sign in again")
	}

	return nil
}
