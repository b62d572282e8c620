// Package api implements the low-level HTTP client for the storefront
// backend: request building, bearer auth, JSON envelope unwrapping, and
// the normalizers that extract usable shapes from the backend's
// heterogeneous response envelopes.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// DefaultBaseURL is used when no backend address is configured.
const DefaultBaseURL = "http://localhost:8080"

// tokenKeys are the auth-token field names seen across backend
// revisions, in precedence order.
var tokenKeys = []string{"token", "accessToken", "access_token", "jwt", "id_token"}

// Error is a typed non-2xx HTTP failure. Message comes from the
// conventional {success:false, error:{message}} envelope when present,
// otherwise from the HTTP status text.
type Error struct {
	Message string
	Status  int
	Body    any
}

func (e *Error) Error() string {
	return fmt.Sprintf("api: %s (status %d)", e.Message, e.Status)
}

// RequestOptions tweaks a single request.
type RequestOptions struct {
	// SkipAuth suppresses the Authorization header even when a token
	// is stored (login, register, public settings).
	SkipAuth bool
}

// Client performs JSON requests against the storefront backend.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenStore
	log     *zap.Logger
}

// New builds a Client for baseURL. An empty baseURL falls back to
// DefaultBaseURL; a trailing slash is stripped so paths can always be
// appended verbatim.
func New(baseURL string, tokens TokenStore, log *zap.Logger) *Client {
	u := strings.TrimSpace(baseURL)
	if u == "" {
		u = DefaultBaseURL
	}
	u = strings.TrimRight(u, "/")
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		baseURL: u,
		http:    &http.Client{},
		tokens:  tokens,
		log:     log,
	}
}

// SetHTTPClient replaces the underlying transport. Intended for tests
// and for callers that need custom TLS settings.
func (c *Client) SetHTTPClient(h *http.Client) { c.http = h }

// BaseURL returns the normalized backend address.
func (c *Client) BaseURL() string { return c.baseURL }

// Tokens exposes the token store shared with the session manager.
func (c *Client) Tokens() TokenStore { return c.tokens }

// Do performs a JSON request. path must include the /api prefix.
// body is serialized only for POST/PUT/PATCH. On success the decoded
// body is returned, unwrapped from a {data} envelope if present; an
// empty response body yields nil. On non-2xx a *Error is returned.
func (c *Client) Do(ctx context.Context, method, path string, body any, opts *RequestOptions) (any, error) {
	if opts == nil {
		opts = &RequestOptions{}
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil && (method == http.MethodPost || method == http.MethodPut || method == http.MethodPatch) {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reqBody = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if !opts.SkipAuth {
		if token := strings.TrimSpace(c.tokens.Token()); token != "" {
			// One space after "Bearer", raw token, no quotes.
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	res, err := c.http.Do(req)
	if err != nil {
		// Transport failure: propagated, never retried.
		return nil, fmt.Errorf("cannot reach server: %w", err)
	}
	defer func() { _ = res.Body.Close() }()

	text, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	// Defensive parse: a malformed body is treated as absent, not fatal.
	var decoded any
	if len(bytes.TrimSpace(text)) > 0 {
		if err := json.Unmarshal(text, &decoded); err != nil {
			decoded = nil
		}
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		msg := errorMessage(decoded)
		if msg == "" {
			msg = http.StatusText(res.StatusCode)
		}
		if msg == "" {
			msg = fmt.Sprintf("HTTP %d", res.StatusCode)
		}
		c.log.Debug("request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", res.StatusCode))
		return nil, &Error{Message: msg, Status: res.StatusCode, Body: decoded}
	}

	return unwrap(decoded), nil
}

// errorMessage extracts the message from a {success:false,
// error:{message}} envelope, or returns "".
func errorMessage(decoded any) string {
	obj, ok := decoded.(map[string]any)
	if !ok {
		return ""
	}
	if success, ok := obj["success"].(bool); !ok || success {
		return ""
	}
	errObj, ok := obj["error"].(map[string]any)
	if !ok {
		return ""
	}
	msg, _ := errObj["message"].(string)
	return msg
}

// unwrap lifts a {data} envelope. When data is an array it is returned
// unchanged; when it is an object, top-level auth-token siblings are
// hoisted into it because some backend revisions place the token next
// to data rather than inside it.
func unwrap(decoded any) any {
	obj, ok := decoded.(map[string]any)
	if !ok {
		return decoded
	}
	inner, present := obj["data"]
	if !present {
		return decoded
	}
	if arr, ok := inner.([]any); ok {
		return arr
	}
	out := map[string]any{}
	if innerObj, ok := inner.(map[string]any); ok {
		for k, v := range innerObj {
			out[k] = v
		}
	}
	for _, k := range tokenKeys {
		sibling, ok := obj[k].(string)
		if !ok {
			continue
		}
		if cur, exists := out[k]; !exists || cur == "" || cur == nil {
			out[k] = sibling
		}
	}
	return out
}
