package main

import (
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/financeflow/flow/internal/api"
	"github.com/financeflow/flow/internal/cli"
	"github.com/financeflow/flow/internal/common"
	"github.com/financeflow/flow/internal/session"
)

// initSession loads the persisted session state.
func initSession() (*session.Session, error) {
	path, err := session.StateFilePath()
	if err != nil {
		return nil, err
	}

	sess, err := session.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	return sess, nil
}

// initClient builds the gateway client. For one-shot commands the
// unauthorized hook just explains what happened; the credential has
// already been cleared by the time it runs.
func initClient(sess *session.Session) *api.Client {
	client := api.NewClient(viper.GetString("api.base_url"), sess)
	client.SetUnauthorizedHook(func() {
		fmt.Fprintln(os.Stderr, cli.FormatWarning("Session expired. Run 'flow login' to sign in again."))
	})
	return client
}

// requireAuth fails fast when no credential is stored, before any
// network round trip.
func requireAuth(sess *session.Session) error {
	if !sess.Authenticated() {
		return common.NewUserError("not logged in, run 'flow login' first", common.ErrNotLoggedIn)
	}
	return nil
}
