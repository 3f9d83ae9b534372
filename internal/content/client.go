// Package content talks to the notebook backend and renders chapter content
// to HTML.
package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

var ErrNotFound = errors.New("content not found")

// Cache stores raw backend responses.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, keys ...string) error
}

type Client struct {
	BaseURL string
	client  *http.Client
	cache   Cache
	logger  *slog.Logger
}

// NewClient returns a client for the backend at baseURL. cache may be nil.
func NewClient(baseURL string, cache Cache, logger *slog.Logger) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 10 * time.Second},
		cache:   cache,
		logger:  logger,
	}
}

func (c *Client) Notebooks(ctx context.Context) ([]Notebook, error) {
	var notebooks []Notebook
	if err := c.getJSON(ctx, "/notebooks", &notebooks); err != nil {
		return nil, err
	}
	return notebooks, nil
}

func (c *Client) Chapters(ctx context.Context, notebookID string) ([]Chapter, error) {
	var chapters []Chapter
	if err := c.getJSON(ctx, chaptersPath(notebookID), &chapters); err != nil {
		return nil, err
	}
	return chapters, nil
}

// Content fetches the body of a chapter. chapterID is the chapter number.
func (c *Client) Content(ctx context.Context, notebookID, chapterID string) (*DocumentContent, error) {
	var doc DocumentContent
	if err := c.getJSON(ctx, contentPath(notebookID, chapterID), &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Invalidate drops the cached chapter list and body of a chapter so the next
// read goes to the backend.
func (c *Client) Invalidate(ctx context.Context, notebookID, chapterID string) error {
	if c.cache == nil {
		return nil
	}
	return c.cache.Delete(ctx, chaptersPath(notebookID), contentPath(notebookID, chapterID))
}

func chaptersPath(notebookID string) string {
	return fmt.Sprintf("/notebooks/%s/chapters", url.PathEscape(notebookID))
}

func contentPath(notebookID, chapterID string) string {
	return fmt.Sprintf("/notebooks/%s/content?path=%s", url.PathEscape(notebookID), url.QueryEscape(chapterID))
}

func (c *Client) getJSON(ctx context.Context, path string, dst any) error {
	if c.cache != nil {
		raw, ok, err := c.cache.Get(ctx, path)
		if err != nil {
			c.logger.Warn("content cache read failed", "path", path, "error", err)
		}
		if ok {
			if err := json.Unmarshal(raw, dst); err == nil {
				return nil
			}
			c.logger.Warn("discarding undecodable cache entry", "path", path)
		}
	}

	raw, err := c.fetch(ctx, path)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}

	if c.cache != nil {
		if err := c.cache.Set(ctx, path, raw); err != nil {
			c.logger.Warn("content cache write failed", "path", path, "error", err)
		}
	}
	return nil
}

func (c *Client) fetch(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("bad status %d: %s", resp.StatusCode, string(raw))
	}

	return raw, nil
}
