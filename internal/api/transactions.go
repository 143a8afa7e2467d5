package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/financeflow/flow/internal/model"
)

// ListTransactions fetches all transactions in the given calendar
// month. Month is 1-based.
func (c *Client) ListTransactions(ctx context.Context, year int, month int) ([]model.Transaction, error) {
	query := url.Values{}
	query.Set("month", strconv.Itoa(month))
	query.Set("year", strconv.Itoa(year))

	var transactions []model.Transaction
	if err := c.do(ctx, http.MethodGet, "transactions/", query, nil, &transactions); err != nil {
		return nil, fmt.Errorf("failed to fetch transactions: %w", err)
	}

	return transactions, nil
}

// CreateTransaction submits a new transaction.
func (c *Client) CreateTransaction(ctx context.Context, payload model.TransactionPayload) error {
	if err := c.do(ctx, http.MethodPost, "transactions/", nil, payload, nil); err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

// UpdateTransaction submits a full replacement of the named transaction.
func (c *Client) UpdateTransaction(ctx context.Context, id int, payload model.TransactionPayload) error {
	path := fmt.Sprintf("transactions/%d/", id)
	if err := c.do(ctx, http.MethodPut, path, nil, payload, nil); err != nil {
		return fmt.Errorf("failed to update transaction %d: %w", id, err)
	}
	return nil
}

// DeleteTransaction removes the named transaction.
func (c *Client) DeleteTransaction(ctx context.Context, id int) error {
	path := fmt.Sprintf("transactions/%d/", id)
	if err := c.do(ctx, http.MethodDelete, path, nil, nil, nil); err != nil {
		return fmt.Errorf("failed to delete transaction %d: %w", id, err)
	}
	return nil
}
