package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/financeflow/flow/internal/common"
	"github.com/financeflow/flow/internal/model"
	"github.com/financeflow/flow/internal/session"
)

func newTestSession(t *testing.T) *session.Session {
	t.Helper()
	sess, err := session.Load(filepath.Join(t.TempDir(), "session.json"))
	require.NoError(t, err)
	return sess
}

func TestBearerCredentialAttached(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode([]model.Category{})
	}))
	defer srv.Close()

	sess := newTestSession(t)
	require.NoError(t, sess.SetToken("tok-123"))
	client := NewClient(srv.URL, sess)

	_, err := client.ListCategories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth)
}

func TestNoCredentialNoHeader(t *testing.T) {
	var gotAuth string
	var hasAuth bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, hasAuth = r.Header["Authorization"]
		_ = json.NewEncoder(w).Encode([]model.Category{})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, newTestSession(t))
	_, err := client.ListCategories(context.Background())
	require.NoError(t, err)
	assert.False(t, hasAuth, "unexpected Authorization header %q", gotAuth)
}

func TestGlobalUnauthorizedPolicy(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	sess := newTestSession(t)
	require.NoError(t, sess.SetToken("expired"))

	client := NewClient(srv.URL, sess)
	hookFired := false
	client.SetUnauthorizedHook(func() { hookFired = true })

	// Any authenticated call hitting a 401 must clear the credential
	// and fire the hook, regardless of endpoint.
	_, err := client.ListTransactions(context.Background(), 2024, 3)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrUnauthorized)
	assert.False(t, sess.Authenticated())
	assert.True(t, hookFired)
}

func TestLoginStoresToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/token/", r.URL.Path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if body["username"] == "maria" && body["password"] == "hunter2" {
			_ = json.NewEncoder(w).Encode(map[string]string{"access": "fresh-token"})
			return
		}
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	sess := newTestSession(t)
	client := NewClient(srv.URL, sess)

	t.Run("success", func(t *testing.T) {
		require.NoError(t, client.Login(context.Background(), "maria", "hunter2"))
		assert.True(t, sess.Authenticated())
		assert.Equal(t, "fresh-token", sess.Token())
	})

	t.Run("bad credentials", func(t *testing.T) {
		err := client.Login(context.Background(), "maria", "wrong")
		require.Error(t, err)

		var userErr *common.UserError
		assert.True(t, errors.As(err, &userErr))
		assert.False(t, sess.Authenticated())
	})
}

func TestMutationErrorsPropagate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"name":["category with this name already exists"]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, newTestSession(t))
	err := client.CreateCategory(context.Background(), "Food")
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Contains(t, apiErr.Body, "already exists")
}

func TestListTransactionsQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "3", r.URL.Query().Get("month"))
		assert.Equal(t, "2024", r.URL.Query().Get("year"))
		_ = json.NewEncoder(w).Encode([]model.Transaction{
			{ID: 1, Description: "Groceries", Amount: "52.10", Type: model.TypeExpense},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, newTestSession(t))
	transactions, err := client.ListTransactions(context.Background(), 2024, 3)
	require.NoError(t, err)
	require.Len(t, transactions, 1)
	assert.Equal(t, "Groceries", transactions[0].Description)
}

func TestUpdateProfileOmitsBlankPassword(t *testing.T) {
	var rawBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&rawBody))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, newTestSession(t))

	err := client.UpdateProfile(context.Background(), model.ProfileUpdate{
		Username: "maria",
		Email:    "maria@example.com",
	})
	require.NoError(t, err)

	_, hasPassword := rawBody["password"]
	assert.False(t, hasPassword, "blank password must be omitted, not sent empty")
}
