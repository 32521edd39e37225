// Package api implements the outbound HTTP gateway to the Kommer backend.
// It owns the wire formats: bearer attachment, DTO shapes, the post-type
// enum codes, and the mapping from HTTP status codes to domain errors.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/kommer/client-go/internal/api/metrics"
	"github.com/kommer/client-go/internal/core/domain"
	"github.com/kommer/client-go/internal/core/ports"
)

const defaultTimeout = 5 * time.Second

// Client talks to the backend REST API. It implements ports.Gateway.
type Client struct {
	http    *http.Client
	baseURL string
	tokens  ports.TokenStore
	logger  zerolog.Logger
}

// Options configures a Client.
type Options struct {
	BaseURL string
	Timeout time.Duration
	// Tokens supplies the bearer token attached to every authenticated call.
	// May be nil for a purely anonymous client.
	Tokens ports.TokenStore
	Logger zerolog.Logger
}

func New(opts Options) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		http:    &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		tokens:  opts.Tokens,
		logger:  opts.Logger,
	}
}

// call describes one request to the backend.
type call struct {
	endpoint  string // logical name for metrics and logs
	method    string
	path      string
	body      any  // marshaled as JSON when non-nil
	out       any  // decoded from the response body when non-nil
	anonymous bool // skip the bearer header (login, register)
}

func (c *Client) do(ctx context.Context, req call) error {
	var body io.Reader
	if req.body != nil {
		raw, err := json.Marshal(req.body)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", req.endpoint, err)
		}
		body = bytes.NewReader(raw)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, c.baseURL+req.path, body)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", req.endpoint, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	// The token is read per request, so a login that happened after this
	// client was built is picked up immediately.
	if !req.anonymous && c.tokens != nil {
		if token, err := c.tokens.Load(); err == nil && token != "" {
			httpReq.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		metrics.RequestsTotal.WithLabelValues(req.endpoint, "network_error").Inc()
		c.logger.Warn().Err(err).Str("endpoint", req.endpoint).Msg("request failed")
		return &domain.NetworkError{Op: req.endpoint, Err: err}
	}
	defer resp.Body.Close()

	metrics.RequestDuration.WithLabelValues(req.endpoint).Observe(time.Since(start).Seconds())
	metrics.RequestsTotal.WithLabelValues(req.endpoint, strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode >= 400 {
		return c.errorFrom(req.endpoint, resp)
	}

	if req.out != nil {
		if err := json.NewDecoder(resp.Body).Decode(req.out); err != nil {
			return fmt.Errorf("%s: decode response: %w", req.endpoint, err)
		}
	}
	return nil
}

// errorFrom maps a non-2xx response to the domain error taxonomy.
func (c *Client) errorFrom(endpoint string, resp *http.Response) error {
	msg := errorMessage(resp.Body)

	c.logger.Debug().
		Str("endpoint", endpoint).
		Int("status", resp.StatusCode).
		Str("message", msg).
		Msg("backend rejected request")

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return domain.ErrUnauthenticated
	case http.StatusForbidden:
		return domain.ErrForbidden
	case http.StatusNotFound:
		return domain.ErrNotFound
	default:
		return &domain.ServerError{StatusCode: resp.StatusCode, Message: msg}
	}
}

func errorMessage(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, 4<<10))
	if err != nil || len(raw) == 0 {
		return ""
	}
	var envelope errorResponse
	if json.Unmarshal(raw, &envelope) == nil {
		if envelope.Error != "" {
			return envelope.Error
		}
		if envelope.Message != "" {
			return envelope.Message
		}
	}
	return strings.TrimSpace(string(raw))
}
