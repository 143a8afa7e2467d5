package export

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/financeflow/flow/internal/api"
	"github.com/financeflow/flow/internal/session"
)

func TestFilename(t *testing.T) {
	assert.Equal(t, "statement_2024-03_en.pdf", Filename(2024, 3, "en"))
	assert.Equal(t, "statement_2023-12_pt.pdf", Filename(2023, 12, "pt"))
}

func TestStatementDownload(t *testing.T) {
	pdf := []byte("%PDF-1.4 fake statement body")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/export-pdf/", r.URL.Path)
		assert.Equal(t, "3", r.URL.Query().Get("month"))
		assert.Equal(t, "2024", r.URL.Query().Get("year"))
		assert.Equal(t, "en", r.URL.Query().Get("lang"))
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write(pdf)
	}))
	defer srv.Close()

	sess, err := session.Load(filepath.Join(t.TempDir(), "session.json"))
	require.NoError(t, err)
	require.NoError(t, sess.SetToken("tok"))
	client := api.NewClient(srv.URL, sess)

	dir := t.TempDir()
	path, err := Statement(context.Background(), client, dir, 2024, 3, "en")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "statement_2024-03_en.pdf"), path)

	written, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, pdf, written)
}

func TestStatementDownloadError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	sess, err := session.Load(filepath.Join(t.TempDir(), "session.json"))
	require.NoError(t, err)
	client := api.NewClient(srv.URL, sess)

	dir := t.TempDir()
	_, err = Statement(context.Background(), client, dir, 2024, 3, "en")
	require.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "no partial file on failure")
}
