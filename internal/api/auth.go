package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/financeflow/flow/internal/common"
)

type tokenRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Access string `json:"access"`
}

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email,omitempty"`
}

// Login exchanges credentials for a bearer token and stores it in the
// session on success.
func (c *Client) Login(ctx context.Context, username, password string) error {
	var resp tokenResponse
	err := c.do(ctx, http.MethodPost, "token/", nil, tokenRequest{Username: username, Password: password}, &resp)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized {
			return common.NewUserError("invalid username or password", err)
		}
		return fmt.Errorf("login failed: %w", err)
	}

	if resp.Access == "" {
		return fmt.Errorf("login succeeded but no token was returned")
	}

	if err := c.session.SetToken(resp.Access); err != nil {
		return fmt.Errorf("failed to store credential: %w", err)
	}

	return nil
}

// Register creates a new account. It does not log the user in; callers
// follow up with Login.
func (c *Client) Register(ctx context.Context, username, password, email string) error {
	err := c.do(ctx, http.MethodPost, "register/", nil, registerRequest{
		Username: username,
		Password: password,
		Email:    email,
	}, nil)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusBadRequest {
			return common.NewUserError("registration rejected, the username may be taken", err)
		}
		return fmt.Errorf("registration failed: %w", err)
	}
	return nil
}
