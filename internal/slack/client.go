// Package slack fetches the full message history of a single channel
// through the paginated conversations.history API.
package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL is the conversations.history endpoint.
	DefaultBaseURL = "https://slack.com/api/conversations.history"

	// DefaultPageLimit is the number of messages requested per page.
	DefaultPageLimit = 1000

	// DefaultTimeout bounds each history request.
	DefaultTimeout = 30 * time.Second

	// PageRate paces page fetches at Slack's Tier 3 budget (50 per minute).
	PageRate = 50.0 / 60.0
)

// Client reads one channel's history. Endpoint, page limit, and credentials
// are fixed at construction.
type Client struct {
	token      string
	channel    string
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    string
	pageLimit  int
	logger     *slog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithBaseURL sets a custom endpoint URL (for testing).
func WithBaseURL(url string) ClientOption {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithPageLimit sets the per-page message limit.
func WithPageLimit(n int) ClientOption {
	return func(c *Client) {
		c.pageLimit = n
	}
}

// WithLogger enables page-fetch diagnostics.
func WithLogger(l *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = l
	}
}

// NewClient creates a client for the given bearer token and channel ID.
func NewClient(token, channel string, opts ...ClientOption) *Client {
	c := &Client{
		token:      token,
		channel:    channel,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(rate.Limit(PageRate), 1),
		baseURL:    DefaultBaseURL,
		pageLimit:  DefaultPageLimit,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// historyResponse is the raw conversations.history reply. Optional fields
// default to their zero values when absent.
type historyResponse struct {
	OK               bool              `json:"ok"`
	Messages         []json.RawMessage `json:"messages"`
	HasMore          bool              `json:"has_more"`
	ResponseMetadata *responseMetadata `json:"response_metadata"`
	Error            string            `json:"error,omitempty"`
}

// responseMetadata contains pagination info.
type responseMetadata struct {
	NextCursor string `json:"next_cursor"`
}

// fetchChunk issues one history request and validates the reply into a
// chunk. An empty cursor means the first page. Any transport, decode, API,
// or pagination-contract failure is fatal; there is no retry.
func (c *Client) fetchChunk(ctx context.Context, cursor string) (chunk, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("waiting for rate limiter: %w", err)
	}

	q := url.Values{}
	q.Set("channel", c.channel)
	q.Set("limit", strconv.Itoa(c.pageLimit))
	if cursor != "" {
		q.Set("cursor", cursor)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching history: %w", err)
	}
	defer resp.Body.Close()

	var page historyResponse
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("parsing history response: %w", err)
	}

	c.logger.Debug("fetched history page",
		"channel", c.channel,
		"messages", len(page.Messages),
		"has_more", page.HasMore)

	return newChunk(&page)
}
