// Package remote is a REST client for the hosted document store that keeps
// the player's progress record.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/mathquest/internal/progress"
	"github.com/abhisek/mathquest/internal/store"
)

// maxErrorBody caps how much of a failed response body is kept in errors.
const maxErrorBody = 512

// Config addresses the document store collection.
type Config struct {
	// URL is the collection endpoint, e.g. https://host/api/entities/GameProgress.
	URL string `toml:"url"`

	// APIKey is sent in the api_key header.
	APIKey string `toml:"api_key"`

	// Timeout bounds each request.
	Timeout time.Duration `toml:"timeout"`
}

// Client implements store.ProgressRepo against the document store.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	logger  *zap.Logger
}

var _ store.ProgressRepo = (*Client)(nil)

// New creates a Client. A nil httpClient gets a default client with
// cfg.Timeout; a nil logger disables logging.
func New(cfg Config, httpClient *http.Client, logger *zap.Logger) *Client {
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.URL, "/"),
		apiKey:  cfg.APIKey,
		http:    httpClient,
		logger:  logger.Named("remote"),
	}
}

// Fetch returns the first record in the collection, creating the initial
// record when the collection is empty.
func (c *Client) Fetch(ctx context.Context) (*progress.Progress, error) {
	var records []progress.Progress
	if err := c.do(ctx, "fetch", http.MethodGet, c.baseURL, nil, &records); err != nil {
		return nil, err
	}
	if len(records) > 0 {
		p := normalize(records[0])
		return &p, nil
	}

	c.logger.Info("no progress record found, creating one")
	return c.Create(ctx)
}

// Create stores the initial record and returns it with its assigned ID.
func (c *Client) Create(ctx context.Context) (*progress.Progress, error) {
	var created progress.Progress
	if err := c.do(ctx, "create", http.MethodPost, c.baseURL, progress.Initial(), &created); err != nil {
		return nil, err
	}
	p := normalize(created)
	return &p, nil
}

// Update replaces the record identified by p.ID. The ID travels in the URL
// only. Without an ID the initial record is created instead.
func (c *Client) Update(ctx context.Context, p progress.Progress) (*progress.Progress, error) {
	if p.ID == "" {
		c.logger.Warn("update without an ID, creating a record instead")
		return c.Create(ctx)
	}

	body := p.Clone()
	body.ID = ""

	var updated progress.Progress
	url := c.baseURL + "/" + p.ID
	if err := c.do(ctx, "update", http.MethodPut, url, body, &updated); err != nil {
		return nil, err
	}

	// Some stores answer PUT with an empty body.
	if updated.ID == "" && updated.Level == 0 {
		updated = p.Clone()
	}
	if updated.ID == "" {
		updated.ID = p.ID
	}
	out := normalize(updated)
	return &out, nil
}

func (c *Client) do(ctx context.Context, op, method, url string, in, out any) error {
	var reqBody io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%s progress: marshal request: %w", op, err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return fmt.Errorf("%s progress: %w", op, err)
	}
	req.Header.Set("api_key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("request failed", zap.String("op", op), zap.Error(err))
		return fmt.Errorf("%s progress: %w", op, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s progress: read response: %w", op, err)
	}

	c.logger.Debug("request",
		zap.String("op", op),
		zap.String("method", method),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Op: op, StatusCode: resp.StatusCode, Body: truncate(string(data), maxErrorBody)}
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%s progress: decode response: %w", op, err)
	}
	return nil
}

// normalize fills defaults for fields the store may omit.
func normalize(p progress.Progress) progress.Progress {
	p = p.Clone()
	if p.Level < 1 {
		p.Level = 1
	}
	return p
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
