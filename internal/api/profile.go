package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/financeflow/flow/internal/model"
)

// GetProfile fetches the authenticated user's account details.
func (c *Client) GetProfile(ctx context.Context) (model.Profile, error) {
	var profile model.Profile
	if err := c.do(ctx, http.MethodGet, "profile/", nil, nil, &profile); err != nil {
		return model.Profile{}, fmt.Errorf("failed to fetch profile: %w", err)
	}
	return profile, nil
}

// UpdateProfile patches the user's account. The password field is
// omitted from the body entirely when unchanged.
func (c *Client) UpdateProfile(ctx context.Context, update model.ProfileUpdate) error {
	if err := c.do(ctx, http.MethodPatch, "profile/", nil, update, nil); err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	return nil
}
