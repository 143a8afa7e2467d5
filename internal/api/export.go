package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// ExportStatement requests the rendered monthly statement document and
// returns the response body stream with its length (-1 when unknown).
// The caller owns closing the stream.
func (c *Client) ExportStatement(ctx context.Context, year, month int, lang string) (io.ReadCloser, int64, error) {
	query := url.Values{}
	query.Set("month", strconv.Itoa(month))
	query.Set("year", strconv.Itoa(year))
	query.Set("lang", lang)

	u := c.baseURL + "export-pdf/?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to reach API: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		resp.Body.Close()
		c.handleUnauthorized(http.MethodGet, "export-pdf/")
		return nil, 0, &APIError{StatusCode: resp.StatusCode, Body: "credential rejected"}
	}

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, 0, &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	return resp.Body, resp.ContentLength, nil
}
