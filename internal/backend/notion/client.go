// Package notion implements the service.Store interface using the Notion REST API.
package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"notionhabit/internal/config"
	"notionhabit/internal/service"
)

const (
	// PageSize is the number of records requested per query page.
	PageSize = 100

	// maxErrorBody bounds how much of an error response is read.
	maxErrorBody = 64 << 10
)

// Client implements service.Store using the Notion API.
type Client struct {
	http       *http.Client
	logger     *zap.Logger
	baseURL    string
	version    string
	databaseID string
	timeout    time.Duration
	maxPages   int
}

// New creates a new Notion client from cfg.
// Requires the token and database id to be configured.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Static bearer credential; no refresh flow
	tokenSource := oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: cfg.Token,
		TokenType:   "Bearer",
	})

	return newClient(oauth2.NewClient(ctx, tokenSource), cfg, logger), nil
}

// NewWithHTTPClient creates a client with a custom HTTP client (for testing).
// The HTTP client is responsible for attaching credentials.
func NewWithHTTPClient(httpClient *http.Client, cfg *config.Config, logger *zap.Logger) *Client {
	return newClient(httpClient, cfg, logger)
}

func newClient(httpClient *http.Client, cfg *config.Config, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	maxPages := cfg.MaxPages
	if maxPages < 1 {
		maxPages = 1
	}
	return &Client{
		http:       httpClient,
		logger:     logger.Named("notion"),
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		version:    cfg.NotionVersion,
		databaseID: cfg.DatabaseID,
		timeout:    cfg.Timeout,
		maxPages:   maxPages,
	}
}

type queryRequest struct {
	Filter      any    `json:"filter,omitempty"`
	PageSize    int    `json:"page_size,omitempty"`
	StartCursor string `json:"start_cursor,omitempty"`
}

type queryResponse struct {
	Results    []json.RawMessage `json:"results"`
	HasMore    bool              `json:"has_more"`
	NextCursor string            `json:"next_cursor"`
}

// Query returns the records matching all clauses.
// At most maxPages pages are read; remaining results are dropped with a warning.
func (c *Client) Query(ctx context.Context, clauses []service.Clause) ([]service.Record, error) {
	filter, err := BuildFilter(clauses)
	if err != nil {
		return nil, err
	}

	path := "/databases/" + url.PathEscape(c.databaseID) + "/query"
	req := queryRequest{Filter: filter, PageSize: PageSize}

	var records []service.Record
	for page := 1; ; page++ {
		var resp queryResponse
		if err := c.do(ctx, "query", http.MethodPost, path, req, &resp); err != nil {
			return nil, err
		}
		if ce := c.logger.Check(zap.DebugLevel, "query page received"); ce != nil {
			raws := make([][]byte, len(resp.Results))
			for i, raw := range resp.Results {
				raws[i] = raw
			}
			ce.Write(
				zap.Int("page", page),
				zap.Int("results", len(resp.Results)),
				zap.Bool("has_more", resp.HasMore),
				zap.ByteStrings("records", raws),
			)
		}

		for _, raw := range resp.Results {
			rec, err := ParsePage(raw)
			if err != nil {
				return nil, err
			}
			records = append(records, rec)
		}

		if !resp.HasMore || resp.NextCursor == "" {
			break
		}
		if page >= c.maxPages {
			c.logger.Warn("query results truncated",
				zap.Int("pages", page),
				zap.Int("records", len(records)),
			)
			break
		}
		req.StartCursor = resp.NextCursor
	}

	return records, nil
}

// UpdateStatus patches the Status property of one page.
func (c *Client) UpdateStatus(ctx context.Context, id string, status service.Status) error {
	body := map[string]any{
		"properties": map[string]any{
			propStatus: map[string]any{
				"select": map[string]string{"name": string(status)},
			},
		},
	}
	return c.do(ctx, "update "+id, http.MethodPatch, "/pages/"+url.PathEscape(id), body, nil)
}

// do sends one JSON request and decodes a success body into out (if non-nil).
func (c *Client) do(ctx context.Context, op, method, path string, in, out any) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("%s: encode request: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Notion-Version", c.version)

	c.logger.Debug("request", zap.String("method", method), zap.String("path", path))

	resp, err := c.http.Do(req)
	if err != nil {
		return &service.TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return remoteError(op, resp)
	}
	c.logger.Debug("response ok", zap.Int("status", resp.StatusCode))

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &service.RemoteError{
			Op:         op,
			StatusCode: resp.StatusCode,
			Message:    "unreadable response body: " + err.Error(),
		}
	}
	return nil
}

// remoteError converts a non-2xx response into a *service.RemoteError.
func remoteError(op string, resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	var apiErr struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &apiErr); err != nil || apiErr.Message == "" {
		apiErr.Message = strings.TrimSpace(string(body))
		if apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
	}

	return &service.RemoteError{
		Op:         op,
		StatusCode: resp.StatusCode,
		Code:       apiErr.Code,
		Message:    apiErr.Message,
	}
}
