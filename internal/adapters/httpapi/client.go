package httpapi

// Package httpapi implements the outbound HTTP adapters for the notes
// service API: a generic JSON request client, an auth-aware decorator that
// transparently refreshes expired access tokens, and the HTTP-backed
// repositories built on top of them.

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	apperrors "github.com/notesapp/noteskit/internal/errors"
	"github.com/notesapp/noteskit/internal/ports"
)

const defaultRequestTimeout = 30 * time.Second

var _ ports.Requester = (*Client)(nil)

// ClientOptions groups dependencies for Client.
type ClientOptions struct {
	// BaseURL is the root of the notes service API, e.g. "https://api.example.com".
	BaseURL string

	// TokenFunc returns the current access token, or "" when none is held.
	// It is called per request so rotated tokens are picked up immediately.
	TokenFunc func() string

	// HTTPClient overrides the underlying transport. Optional.
	HTTPClient *http.Client

	Logger *slog.Logger
}

// Client is a generic JSON request client for the notes service API.
// HTTP failure statuses are mapped onto the internal/errors taxonomy.
type Client struct {
	base    *url.URL
	http    *http.Client
	tokenFn func() string
	logger  *slog.Logger
}

// NewClient constructs a Client.
func NewClient(opts ClientOptions) (*Client, error) {
	if opts.BaseURL == "" {
		return nil, errors.New("base URL is required")
	}
	base, err := url.Parse(opts.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base URL: %w", err)
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultRequestTimeout}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		base:    base,
		http:    httpClient,
		tokenFn: opts.TokenFunc,
		logger:  logger,
	}, nil
}

func (c *Client) Get(ctx context.Context, endpoint string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, endpoint, nil, "")
}

func (c *Client) Post(ctx context.Context, endpoint string, payload any) (json.RawMessage, error) {
	body, err := encodePayload(payload)
	if err != nil {
		return nil, err
	}
	return c.do(ctx, http.MethodPost, endpoint, body, "application/json")
}

func (c *Client) Put(ctx context.Context, endpoint string, payload any) (json.RawMessage, error) {
	body, err := encodePayload(payload)
	if err != nil {
		return nil, err
	}
	return c.do(ctx, http.MethodPut, endpoint, body, "application/json")
}

func (c *Client) Delete(ctx context.Context, endpoint string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodDelete, endpoint, nil, "")
}

func (c *Client) UploadFile(
	ctx context.Context,
	endpoint, field, filename string,
	contents io.Reader,
) (json.RawMessage, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile(field, filename)
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, copyErr := io.Copy(part, contents); copyErr != nil {
		return nil, fmt.Errorf("copy file contents: %w", copyErr)
	}
	if closeErr := writer.Close(); closeErr != nil {
		return nil, fmt.Errorf("finalize multipart body: %w", closeErr)
	}
	return c.do(ctx, http.MethodPost, endpoint, &buf, writer.FormDataContentType())
}

func (c *Client) do(
	ctx context.Context,
	method, endpoint string,
	body io.Reader,
	contentType string,
) (json.RawMessage, error) {
	target, err := c.resolve(endpoint)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.tokenFn != nil {
		if token := c.tokenFn(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, classifyTransportError(ctx, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeUnknown, "read response body")
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, statusToError(resp.StatusCode, data)
	}
	if len(data) == 0 {
		return nil, nil
	}
	return json.RawMessage(data), nil
}

func (c *Client) resolve(endpoint string) (string, error) {
	ref, err := url.Parse(endpoint)
	if err != nil {
		return "", fmt.Errorf("parse endpoint %q: %w", endpoint, err)
	}
	resolved := *c.base
	resolved.Path = strings.TrimSuffix(c.base.Path, "/") + "/" + strings.TrimPrefix(ref.Path, "/")
	resolved.RawQuery = ref.RawQuery
	return resolved.String(), nil
}

func encodePayload(payload any) (io.Reader, error) {
	if payload == nil {
		return nil, nil
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}
	return bytes.NewReader(data), nil
}

func classifyTransportError(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, context.Canceled) || errors.Is(ctx.Err(), context.Canceled):
		return apperrors.Wrap(err, apperrors.ErrCodeCanceled, "request canceled")
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded):
		return apperrors.Wrap(err, apperrors.ErrCodeTimeout, "request timed out")
	default:
		return apperrors.Wrap(err, apperrors.ErrCodeUnknown, "request failed")
	}
}

// apiErrorBody is the error shape returned by the notes service.
type apiErrorBody struct {
	Detail  string `json:"detail"`
	Message string `json:"message"`
}

func statusToError(status int, body []byte) error {
	message := http.StatusText(status)
	var parsed apiErrorBody
	if err := json.Unmarshal(body, &parsed); err == nil {
		if parsed.Detail != "" {
			message = parsed.Detail
		} else if parsed.Message != "" {
			message = parsed.Message
		}
	}

	switch {
	case status == http.StatusUnauthorized:
		return apperrors.Unauthorized(message)
	case status == http.StatusForbidden:
		return apperrors.Forbidden(message)
	case status == http.StatusNotFound:
		return apperrors.NotFound(message)
	case status == http.StatusConflict:
		return apperrors.Conflict(message)
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		return apperrors.Validation(message)
	case status >= http.StatusInternalServerError:
		return apperrors.Internalf("%s (status %d)", message, status)
	default:
		return apperrors.Unknown(fmt.Sprintf("%s (status %d)", message, status))
	}
}
