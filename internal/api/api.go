package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/plx-dev/plx/internal/shared"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

const defaultBaseURL = "http://localhost:3008"

// searchRate bounds search-as-you-type traffic against the backend.
const searchRate = rate.Limit(5)

// Client is the HTTP client for the playlist backend.
type Client struct {
	baseURL    string
	base       *http.Client // unauthenticated transport (login, register)
	httpClient *http.Client // bearer transport once Authenticate has run
	token      *oauth2.Token
	limiter    *rate.Limiter
	logger     *log.Logger
}

// NewClient creates a backend client. An empty baseURL falls back to the
// local development backend; a nil client falls back to [http.DefaultClient].
func NewClient(baseURL string, client *http.Client, logger *log.Logger) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	return &Client{
		baseURL:    baseURL,
		base:       client,
		httpClient: client,
		limiter:    rate.NewLimiter(searchRate, 1),
		logger:     logger,
	}
}

// Authenticate installs the session token for subsequent requests.
//
// The token is carried as a Bearer header via an [oauth2] static token
// source; it is never validated client-side.
func (c *Client) Authenticate(ctx context.Context, token string) error {
	if token == "" {
		return shared.ErrNotAuthenticated
	}

	c.token = &oauth2.Token{AccessToken: token}
	c.httpClient = oauth2.NewClient(ctx, oauth2.StaticTokenSource(c.token))
	return nil
}

// Authenticated reports whether a session token has been installed.
func (c *Client) Authenticated() bool {
	return c.token != nil && c.token.AccessToken != ""
}

// APIError is a non-2xx backend response.
//
// Message carries the server-supplied message when the body was decodable;
// callers surface it directly or fall back to a generic notice. A response
// with ErrorCode "1001" additionally unwraps to [shared.ErrReauthRequired].
type APIError struct {
	Status    int
	Message   string `json:"message"`
	ErrorCode string `json:"errorCode"`
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("backend error: status %d", e.Status)
}

func (e *APIError) Unwrap() error {
	if e.ErrorCode == reauthErrorCode {
		return shared.ErrReauthRequired
	}
	return shared.ErrAPIRequest
}

// reauthErrorCode is the backend's distinguished "refresh/session invalid
// upstream" failure, which must trigger the re-authorization hand-off.
const reauthErrorCode = "1001"

// doRequest performs a request against the backend and decodes the JSON
// response into result (when non-nil). A nil body sends no payload.
//
// When authed is true the request goes through the bearer transport and
// fails fast if no session token has been installed.
func (c *Client) doRequest(ctx context.Context, method, endpoint string, body, result any, authed bool) error {
	apiURL := c.baseURL + endpoint

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, apiURL, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	client := c.base
	if authed {
		if !c.Authenticated() {
			return fmt.Errorf("%w: call Authenticate first", shared.ErrNotAuthenticated)
		}
		client = c.httpClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.decodeError(resp)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// decodeError turns a non-2xx response into an [APIError], preserving the
// server-supplied message and error code when the body is JSON.
func (c *Client) decodeError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}

	data, err := io.ReadAll(resp.Body)
	if err == nil && len(data) > 0 {
		// Best effort: an undecodable body leaves the generic message.
		_ = json.Unmarshal(data, apiErr)
	}

	c.logger.Warnf("backend error: status %d code %q", apiErr.Status, apiErr.ErrorCode)
	return apiErr
}
