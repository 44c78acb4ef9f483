// Package backend is the REST client for the quiz-master backend, the
// external owner of all persistence and business rules. The gateway consumes
// this contract and never re-implements it. Every call translates transport
// failures into the domain error taxonomy before returning, so raw status
// codes never leak into a rendering path.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"quiz-master-gateway/internal/domain"
)

type tokenKey struct{}

// WithToken attaches the viewer's bearer token to the context; every call
// issued with that context authenticates as the viewer.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

// TokenFrom extracts the bearer token, if any.
func TokenFrom(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(tokenKey{}).(string)
	return token, ok && token != ""
}

// Client talks to the backend API over HTTP/JSON.
type Client struct {
	baseURL string
	httpc   *http.Client
	logger  *slog.Logger
}

func New(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// call names the operation and entity for error translation: op feeds the
// generic "could not <op>" fallback, entity the "<entity> not found" message.
type call struct {
	op     string
	entity string
}

func (c *Client) get(ctx context.Context, path string, out any, meta call) error {
	return c.do(ctx, http.MethodGet, path, nil, out, meta)
}

func (c *Client) post(ctx context.Context, path string, in, out any, meta call) error {
	return c.do(ctx, http.MethodPost, path, in, out, meta)
}

func (c *Client) put(ctx context.Context, path string, in, out any, meta call) error {
	return c.do(ctx, http.MethodPut, path, in, out, meta)
}

func (c *Client) del(ctx context.Context, path string, meta call) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, meta)
}

func (c *Client) do(ctx context.Context, method, path string, in, out any, meta call) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return domain.Unknown(meta.op, err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return domain.Unknown(meta.op, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token, ok := TokenFrom(ctx); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		c.logger.Warn("backend request failed", "method", method, "path", path, "err", err)
		return domain.Unknown(meta.op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return c.translate(resp, meta)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.logger.Warn("backend response decode failed", "path", path, "err", err)
		return domain.Unknown(meta.op, err)
	}
	return nil
}

// translate maps a failed response onto the error taxonomy. Business-rule
// rejections keep the backend's message verbatim when one is present.
func (c *Client) translate(resp *http.Response, meta call) error {
	message := backendMessage(resp.Body)

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return domain.PermissionDenied(meta.op)
	case http.StatusNotFound:
		return domain.NotFound(meta.entity)
	case http.StatusBadRequest, http.StatusConflict, http.StatusUnprocessableEntity:
		if message == "" {
			message = "could not " + meta.op
		}
		return domain.Conflict(message)
	default:
		c.logger.Warn("backend error", "status", resp.StatusCode, "op", meta.op, "message", message)
		return domain.Unknown(meta.op, nil)
	}
}

// backendMessage digs the human-readable message out of an error body, which
// the backend sends either as {"message": "..."} or as a bare string.
func backendMessage(body io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(body, 64<<10))
	if err != nil || len(data) == 0 {
		return ""
	}

	var envelope struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &envelope); err == nil && envelope.Message != "" {
		return envelope.Message
	}
	var plain string
	if err := json.Unmarshal(data, &plain); err == nil {
		return plain
	}
	if t := strings.TrimSpace(string(data)); !strings.HasPrefix(t, "{") && !strings.HasPrefix(t, "[") {
		return t
	}
	return ""
}
