package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"backoffice/internal/table"
)

const basePath = "/api/v1"

// TokenSource supplies the current bearer token, empty when logged out.
type TokenSource func() string

// Config carries what the client needs to talk to the service.
type Config struct {
	BaseURL string
	Timeout time.Duration
	Token   TokenSource
	Logger  *zap.Logger
}

// Client is the HTTP client for the back-office REST API. Safe for use from
// multiple goroutines.
type Client struct {
	baseURL string
	http    *http.Client
	token   TokenSource
	logger  *zap.Logger
}

// NewClient builds a client with an explicit timeout so a hung request can
// never pin a screen in its loading state.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = table.DefaultFetchTimeout
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: cfg.BaseURL,
		http:    &http.Client{Timeout: timeout},
		token:   cfg.Token,
		logger:  logger,
	}
}

// do executes one round trip. A non-2xx response becomes an *APIError built
// from the body; transport failures become a status-0 *APIError.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + basePath + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("api: encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("api: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != nil {
		if tok := c.token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err))
		return &APIError{Status: 0, Message: err.Error(), Timestamp: time.Now().UTC()}
	}
	defer resp.Body.Close()

	c.logger.Debug("request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)))

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &APIError{Status: 0, Message: err.Error(), Timestamp: time.Now().UTC()}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := parseErrorBody(resp.StatusCode, raw)
		switch {
		case apiErr.IsServer():
			c.logger.Warn("server error",
				zap.String("method", method),
				zap.String("path", path),
				zap.Int("status", apiErr.Status),
				zap.String("message", apiErr.Message))
		case apiErr.IsValidation(), apiErr.IsNotFound():
			c.logger.Debug("request rejected",
				zap.String("method", method),
				zap.String("path", path),
				zap.Int("status", apiErr.Status),
				zap.String("message", apiErr.Message))
		}
		return apiErr
	}
	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("api: decode response: %w", err)
		}
	}
	return nil
}

// pageResponse is the service's uniform list envelope.
type pageResponse struct {
	Content       []table.Record `json:"content"`
	TotalPages    int            `json:"totalPages"`
	TotalElements int            `json:"totalElements"`
}

// list performs one paginated list call and normalizes the envelope.
func (c *Client) list(ctx context.Context, path string, q table.Query) (table.Page, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(q.Page))
	query.Set("size", strconv.Itoa(q.Size))
	for key, value := range q.Filters {
		if value != "" {
			query.Set(key, value)
		}
	}

	var resp pageResponse
	if err := c.do(ctx, http.MethodGet, path, query, nil, &resp); err != nil {
		return table.Page{}, err
	}
	return table.Page{
		Items:         resp.Content,
		TotalPages:    resp.TotalPages,
		TotalElements: resp.TotalElements,
	}, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}
