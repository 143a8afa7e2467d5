// Package store holds the client's in-memory mirrors of server state.
//
// Both stores are full-refresh caches: every fetch replaces the whole
// list and no mutation is applied locally before the server confirms
// it. The server is the only source of truth; the stores just decide
// when to ask it again.
package store

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/financeflow/flow/internal/api"
	"github.com/financeflow/flow/internal/common"
	"github.com/financeflow/flow/internal/model"
	"github.com/financeflow/flow/internal/period"
	"github.com/financeflow/flow/internal/session"
)

// TransactionStore mirrors the transactions of the currently viewed
// month. It refetches whenever the period selector changes and after
// every successful mutation, delete included.
type TransactionStore struct {
	client   *api.Client
	selector *period.Selector

	mu           sync.Mutex
	transactions []model.Transaction
	fetchSeq     uint64
	lastFetchErr error
}

// NewTransactionStore wires the store to its collaborators: it
// subscribes to period changes and drops its contents on logout.
func NewTransactionStore(client *api.Client, selector *period.Selector, sess *session.Session) *TransactionStore {
	s := &TransactionStore{
		client:   client,
		selector: selector,
	}

	selector.Subscribe(func() {
		if !sess.Authenticated() {
			return
		}
		// Failures are logged inside Refetch; the previous list stays.
		_ = s.Refetch(context.Background())
	})

	sess.OnLogout(s.clear)

	return s
}

// Transactions returns the current list.
func (s *TransactionStore) Transactions() []model.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Transaction, len(s.transactions))
	copy(out, s.transactions)
	return out
}

// Refetch reloads the list for the currently selected period. On
// failure the previous list is left untouched, stale but present. A
// response that arrives after the selected period has moved on is
// discarded.
func (s *TransactionStore) Refetch(ctx context.Context) error {
	s.mu.Lock()
	s.fetchSeq++
	seq := s.fetchSeq
	year, month := s.selector.Year(), s.selector.Month()
	s.mu.Unlock()

	transactions, err := s.client.ListTransactions(ctx, year, month)
	if err != nil {
		common.LogError(err, "Failed to fetch transactions", common.Fields{
			"year":  year,
			"month": month,
		})
		s.finish(seq, err)
		return err
	}

	s.apply(seq, year, month, transactions)
	s.finish(seq, nil)
	return nil
}

// LastFetchError reports how the most recent refetch ended, nil on
// success. The period subscription has no caller to return an error
// to; whoever moved the period reads the outcome here.
func (s *TransactionStore) LastFetchError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastFetchErr
}

// finish records a fetch outcome unless a later fetch has started.
func (s *TransactionStore) finish(seq uint64, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq == s.fetchSeq {
		s.lastFetchErr = err
	}
}

// apply installs a fetch result unless it is stale: superseded by a
// later fetch, or issued for a period that is no longer selected.
func (s *TransactionStore) apply(seq uint64, year, month int, transactions []model.Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.fetchSeq {
		slog.Debug("Discarding superseded fetch result", "seq", seq, "latest", s.fetchSeq)
		return
	}
	if year != s.selector.Year() || month != s.selector.Month() {
		slog.Debug("Discarding fetch result for deselected period",
			"fetched_year", year, "fetched_month", month,
			"selected_year", s.selector.Year(), "selected_month", s.selector.Month())
		return
	}

	s.transactions = transactions
}

// Create submits a new transaction and reloads the selected period.
// The list is never patched optimistically.
func (s *TransactionStore) Create(ctx context.Context, draft model.Draft) error {
	if err := draft.Validate(); err != nil {
		return common.NewUserError("invalid transaction", err)
	}

	if err := s.client.CreateTransaction(ctx, draft.Payload()); err != nil {
		return common.NewUserError("failed to save transaction", err)
	}

	return s.Refetch(ctx)
}

// Update replaces the named transaction and reloads the selected period.
func (s *TransactionStore) Update(ctx context.Context, id int, draft model.Draft) error {
	if err := draft.Validate(); err != nil {
		return common.NewUserError("invalid transaction", err)
	}

	if err := s.client.UpdateTransaction(ctx, id, draft.Payload()); err != nil {
		return common.NewUserError("failed to update transaction", err)
	}

	return s.Refetch(ctx)
}

// Remove deletes the named transaction and reloads the selected
// period, keeping the one refetch discipline shared by all mutations.
// Callers must have obtained interactive confirmation first.
func (s *TransactionStore) Remove(ctx context.Context, id int) error {
	if err := s.client.DeleteTransaction(ctx, id); err != nil {
		return common.NewUserError(fmt.Sprintf("failed to delete transaction %d", id), err)
	}

	return s.Refetch(ctx)
}

// clear drops the in-memory list; runs on logout.
func (s *TransactionStore) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fetchSeq++
	s.transactions = nil
	s.lastFetchErr = nil
}
