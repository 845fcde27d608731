// Package transport provides the single shared HTTP client for the
// AiutoDesk API. It owns the two interceptors of the auth lifecycle:
// outbound requests carry the persisted bearer token, and any 401 response
// evicts that token before the error reaches the caller, so a stale
// credential is never retried.
//
// The transport never retries and never queues: each call is one attempt
// whose success or failure is surfaced as a coded error.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/aiutodesk/desk/internal/errors"
	"github.com/aiutodesk/desk/internal/log"
	"github.com/aiutodesk/desk/internal/tokenstore"
)

// Config holds transport configuration.
type Config struct {
	// BaseURL is the fixed base address all request paths are resolved
	// against.
	BaseURL string

	// Timeout is the fixed per-request timeout. Defaults to 10 seconds.
	Timeout time.Duration

	// Tokens is the persisted token store read by the outbound interceptor
	// and evicted by the inbound one.
	Tokens tokenstore.Store

	// Logger receives request tracing and interceptor warnings.
	Logger *log.Logger
}

// Client is the shared HTTP client. Construct one per process and inject it
// everywhere; per-request reconstruction defeats the interceptor contract.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *log.Logger
}

// New creates the shared client with both interceptors installed.
func New(cfg Config) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = log.DefaultLogger()
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		logger:  cfg.Logger,
		http: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &authRoundTripper{
				next:   http.DefaultTransport,
				tokens: cfg.Tokens,
				logger: cfg.Logger,
			},
		},
	}
}

// BaseURL returns the configured base address.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// authRoundTripper implements both interceptors around a single attempt.
type authRoundTripper struct {
	next   http.RoundTripper
	tokens tokenstore.Store
	logger *log.Logger
}

// RoundTrip attaches the bearer token when one is stored and evicts it on a
// 401 response. A token read failure must not block the request: it is
// logged and the request proceeds unauthenticated.
func (t *authRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	token, err := t.tokens.GetToken(req.Context())
	if err != nil {
		t.logger.WithError(err).Warn("token read failed, sending request unauthenticated")
	} else if token != "" {
		req = req.Clone(req.Context())
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := t.next.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		if delErr := t.tokens.DeleteToken(req.Context()); delErr != nil {
			t.logger.WithError(delErr).Warn("failed to evict rejected token")
		} else {
			t.logger.Debug("evicted rejected token", "path", req.URL.Path)
		}
	}

	return resp, nil
}

// apiError is the wire shape of an AiutoDesk error response. The message
// field arrives as a string or a string array depending on the validator.
type apiError struct {
	StatusCode int             `json:"statusCode"`
	Message    json.RawMessage `json:"message"`
	Error      string          `json:"error"`
}

func (e *apiError) message() string {
	if len(e.Message) == 0 {
		return e.Error
	}

	var single string
	if err := json.Unmarshal(e.Message, &single); err == nil {
		return single
	}

	var many []string
	if err := json.Unmarshal(e.Message, &many); err == nil && len(many) > 0 {
		return strings.Join(many, "; ")
	}

	return e.Error
}

// Do performs one JSON request against the API. A non-nil body is sent as
// JSON; a non-nil target receives the decoded response body. Failures are
// returned as coded errors per the status mapping, with the server's own
// message preserved where one was sent.
func (c *Client) Do(ctx context.Context, method, path string, body, target any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidRequest, "failed to encode request body", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidRequest, "failed to create request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	c.logger.Debug("request", "method", method, "path", path)

	resp, err := c.http.Do(req)
	if err != nil {
		return classifyTransportError(method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.decodeError(resp, method, path)
	}

	if target != nil {
		if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
			return errors.Wrap(errors.ErrCodeRequestFailed,
				fmt.Sprintf("failed to decode response for %s %s", method, path), err)
		}
	}

	return nil
}

func classifyTransportError(method, path string, err error) error {
	msg := fmt.Sprintf("%s %s failed", method, path)
	if isTimeout(err) {
		return errors.Wrap(errors.ErrCodeRequestTimeout, msg, err).
			WithSuggestion("Check connectivity to the AiutoDesk backend")
	}
	return errors.Wrap(errors.ErrCodeRequestFailed, msg, err).
		WithSuggestion("Check connectivity to the AiutoDesk backend").
		WithSuggestion("Use 'desk proxy' and AIUTODESK_API_URL for local development")
}

func isTimeout(err error) bool {
	type timeout interface{ Timeout() bool }
	for e := err; e != nil; e = unwrapOnce(e) {
		if t, ok := e.(timeout); ok && t.Timeout() {
			return true
		}
	}
	return false
}

func unwrapOnce(err error) error {
	u, ok := err.(interface{ Unwrap() error })
	if !ok {
		return nil
	}
	return u.Unwrap()
}

func (c *Client) decodeError(resp *http.Response, method, path string) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

	message := ""
	var wire apiError
	if err := json.Unmarshal(raw, &wire); err == nil {
		message = wire.message()
	}
	if message == "" {
		message = fmt.Sprintf("%s %s returned status %d", method, path, resp.StatusCode)
	}

	c.logger.Debug("request failed", "method", method, "path", path, "status", resp.StatusCode)

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return errors.New(errors.ErrCodeTokenRejected, message)
	case http.StatusNotFound:
		return errors.New(errors.ErrCodeResourceNotFound, message)
	case http.StatusConflict:
		return errors.New(errors.ErrCodeEmailRegistered, message)
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return errors.New(errors.ErrCodeInvalidRequest, message)
	default:
		return errors.New(errors.ErrCodeRequestFailed, message)
	}
}
