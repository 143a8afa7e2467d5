// Package export downloads backend-rendered monthly statement documents.
package export

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"

	"github.com/financeflow/flow/internal/api"
)

// Filename builds the statement filename, encoding period and locale.
func Filename(year, month int, lang string) string {
	return fmt.Sprintf("statement_%04d-%02d_%s.pdf", year, month, lang)
}

// Statement fetches the rendered statement for the given month and
// writes it into dir, streaming through a progress bar. It returns the
// path of the written file.
func Statement(ctx context.Context, client *api.Client, dir string, year, month int, lang string) (string, error) {
	body, size, err := client.ExportStatement(ctx, year, month, lang)
	if err != nil {
		return "", fmt.Errorf("failed to export statement: %w", err)
	}
	defer body.Close()

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create download directory: %w", err)
	}

	path := filepath.Join(dir, Filename(year, month, lang))
	out, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer out.Close()

	bar := progressbar.DefaultBytes(size, "downloading statement")
	if _, err := io.Copy(io.MultiWriter(out, bar), body); err != nil {
		os.Remove(path) // don't leave a truncated document behind
		return "", fmt.Errorf("failed to download statement: %w", err)
	}

	return path, nil
}
