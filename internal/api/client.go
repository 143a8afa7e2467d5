// Package api wraps all outbound calls to the FinanceFlow backend.
//
// Every request attaches the bearer credential when one is present. A
// 401 from any call triggers the global policy: the stored credential
// is cleared and the unauthorized hook fires, regardless of which call
// failed. All other error statuses propagate to the caller.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/financeflow/flow/internal/common"
	"github.com/financeflow/flow/internal/session"
)

// DefaultBaseURL points at a locally running backend.
const DefaultBaseURL = "http://127.0.0.1:8000/api/"

// Client is the gateway to the backend API.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	session        *session.Session
	onUnauthorized func()
}

// APIError carries a non-2xx response that is not handled globally.
type APIError struct {
	Body       string
	StatusCode int
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error: %d - %s", e.StatusCode, e.Body)
}

// Unwrap maps well-known statuses onto sentinel errors.
func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusUnauthorized:
		return common.ErrUnauthorized
	case http.StatusNotFound:
		return common.ErrNotFound
	case http.StatusConflict:
		return common.ErrConflict
	}
	return nil
}

// NewClient creates a gateway client bound to a session.
func NewClient(baseURL string, sess *session.Session) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		session: sess,
	}
}

// SetUnauthorizedHook registers the action taken after the global 401
// policy clears the credential. One-shot commands exit; the dashboard
// switches back to the login view.
func (c *Client) SetUnauthorizedHook(fn func()) {
	c.onUnauthorized = fn
}

// do executes one API call. Body (if non-nil) is sent as JSON; out (if
// non-nil) receives the decoded response.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		c.handleUnauthorized(method, path)
		return &APIError{StatusCode: resp.StatusCode, Body: "credential rejected"}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(respBody))}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// authorize attaches the bearer credential if one is present.
func (c *Client) authorize(req *http.Request) {
	if token := c.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

// handleUnauthorized implements the global 401 policy.
func (c *Client) handleUnauthorized(method, path string) {
	slog.Warn("Credential rejected, clearing session", "method", method, "path", path)

	if err := c.session.Clear(); err != nil {
		common.LogError(err, "Failed to clear session state", common.Fields{"path": path})
	}
	if c.onUnauthorized != nil {
		c.onUnauthorized()
	}
}
