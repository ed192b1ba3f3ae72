// Package analysis is the HTTP client for the remote text analysis service.
package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"toneterm/internal/model"
	"toneterm/internal/util"
)

const (
	SentimentPath = "/anal"
	RewritePath   = "/new_email"

	defaultMaxResponseBytes = 1 << 20
	errorExcerptRunes       = 200
)

type Config struct {
	BaseURL string
	// Timeout bounds a whole request. Zero means no timeout: a request that
	// never settles leaves its workflow loading.
	Timeout          time.Duration
	MaxResponseBytes int64
	Logger           *slog.Logger
	HTTPClient       *http.Client // optional, mainly for tests
}

type Client struct {
	baseURL          string
	http             *http.Client
	maxResponseBytes int64
	logger           *slog.Logger
}

func New(cfg Config) *Client {
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: cfg.Timeout}
	}
	limit := cfg.MaxResponseBytes
	if limit <= 0 {
		limit = defaultMaxResponseBytes
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Client{
		baseURL:          strings.TrimRight(cfg.BaseURL, "/"),
		http:             hc,
		maxResponseBytes: limit,
		logger:           logger,
	}
}

type analyzeRequest struct {
	Text string `json:"text"`
}

// analyzeResponse accepts both the current {message, score} body and the
// deprecated {Sentiment} body.
type analyzeResponse struct {
	Message   *string     `json:"message"`
	Score     model.Score `json:"score"`
	Sentiment *string     `json:"Sentiment"`
}

type rewriteResponse struct {
	Email *string `json:"email"`
}

type rewriteRequest struct {
	Email string     `json:"email"`
	Tone  model.Tone `json:"tone"`
}

// Analyze scores text with POST /anal.
func (c *Client) Analyze(ctx context.Context, text string) (model.SentimentResult, error) {
	var resp analyzeResponse
	if err := c.post(ctx, SentimentPath, analyzeRequest{Text: text}, &resp); err != nil {
		return model.SentimentResult{}, err
	}
	switch {
	case resp.Message != nil:
		return model.SentimentResult{Message: *resp.Message, Score: resp.Score}, nil
	case resp.Sentiment != nil:
		c.logger.Warn("analyzer returned deprecated response shape", "path", SentimentPath)
		return model.SentimentResult{Message: *resp.Sentiment, Score: resp.Score}, nil
	default:
		return model.SentimentResult{}, &NetworkError{
			Op:  "decode",
			URL: c.baseURL + SentimentPath,
			Err: errors.New("response has neither message nor Sentiment"),
		}
	}
}

// Rewrite asks the service to rewrite email in the given tone with POST /new_email.
func (c *Client) Rewrite(ctx context.Context, email string, tone model.Tone) (model.EmailRewriteResult, error) {
	var resp rewriteResponse
	if err := c.post(ctx, RewritePath, rewriteRequest{Email: email, Tone: tone}, &resp); err != nil {
		return model.EmailRewriteResult{}, err
	}
	if resp.Email == nil {
		return model.EmailRewriteResult{}, &NetworkError{
			Op:  "decode",
			URL: c.baseURL + RewritePath,
			Err: errors.New("response has no email"),
		}
	}
	return model.EmailRewriteResult{Email: *resp.Email}, nil
}

func (c *Client) post(ctx context.Context, path string, in, out any) error {
	url := c.baseURL + path
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("marshal %s request: %w", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create %s request: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error("request failed", "path", path, "err", err)
		return &NetworkError{Op: "send", URL: url, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, c.maxResponseBytes+1))
	if err != nil {
		return &NetworkError{Op: "read", URL: url, Err: err}
	}
	if int64(len(raw)) > c.maxResponseBytes {
		return &NetworkError{Op: "read", URL: url, Err: fmt.Errorf("response exceeded limit (%d bytes)", c.maxResponseBytes)}
	}

	c.logger.Debug("response received",
		"path", path,
		"status", resp.StatusCode,
		"bytes", len(raw),
		"elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &ServerError{URL: url, StatusCode: resp.StatusCode, Body: util.Preview(string(raw), errorExcerptRunes)}
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &NetworkError{Op: "decode", URL: url, Err: err}
	}
	return nil
}
