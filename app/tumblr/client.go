package tumblr

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultCallback = "TumblrPostMap.process"
	DefaultTag      = "geo"
)

// Client pages through a blog's posts using the v1 read API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	callback   string
	tag        string
	userAgent  string
}

func NewClient(httpClient *http.Client, baseURL, callback, tag, userAgent string) *Client {
	if callback == "" {
		callback = DefaultCallback
	}
	if tag == "" {
		tag = DefaultTag
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		callback:   callback,
		tag:        tag,
		userAgent:  userAgent,
	}
}

// PageURL returns the request URL for the page starting at start.
func (c *Client) PageURL(start int) string {
	return c.baseURL + "/api/read/json?callback=" + url.QueryEscape(c.callback) +
		"&tagged=" + url.QueryEscape(c.tag) +
		"&start=" + strconv.Itoa(start)
}

func (c *Client) FetchPage(ctx context.Context, start int) (*Page, error) {
	pageURL := c.PageURL(start)

	data, err := fetch(ctx, c.httpClient, pageURL, c.userAgent)
	if err != nil {
		return nil, err
	}

	page, err := DecodePage(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page at %d: %w", start, err)
	}

	slog.Debug("Page fetched", "url", pageURL, "posts", len(page.Posts), "start", int(page.Start), "total", int(page.Total))

	return page, nil
}

func fetch(ctx context.Context, httpClient *http.Client, target, userAgent string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return data, nil
}

// NewHTTPClient returns the client used for feed requests.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}
