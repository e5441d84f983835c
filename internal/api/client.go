package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"console/internal/logging"
	"console/internal/types"
)

const requestTimeout = 10 * time.Second

// Client talks to the backend's resource API. All calls carry the bearer
// token except login; all calls are bounded by a fixed timeout so a silent
// backend fails as a NetworkError instead of hanging the caller.
type Client struct {
	baseURL string
	http    *http.Client
	log     logging.Logger

	mu    sync.Mutex
	token string
}

func New(baseURL string, log logging.Logger) *Client {
	if log == nil {
		log = logging.Nop()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout: requestTimeout,
		},
		log: log,
	}
}

// SetToken installs the bearer token used for authenticated calls.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = strings.TrimSpace(token)
}

func (c *Client) ClearToken() {
	c.SetToken("")
}

func (c *Client) Token() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

// TokenResponse is the login exchange result.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Login exchanges form-encoded credentials for a bearer token. The token is
// not installed on the client; the session layer decides that.
func (c *Client) Login(ctx context.Context, username, password string) (*TokenResponse, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	var resp TokenResponse
	if err := c.doForm(ctx, "/api/auth/login", form, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// LoginWithGoogle exchanges a federated provider token for a bearer token.
func (c *Client) LoginWithGoogle(ctx context.Context, providerToken string) (*TokenResponse, error) {
	body := map[string]string{"token": providerToken}
	var resp TokenResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/google", body, false, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Me fetches the identity behind the installed token.
func (c *Client) Me(ctx context.Context) (*types.User, error) {
	var user types.User
	if err := c.doJSON(ctx, http.MethodGet, "/api/auth/me", nil, true, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) ListClients(ctx context.Context) ([]types.Client, error) {
	var out []types.Client
	if err := c.doJSON(ctx, http.MethodGet, "/api/clients", nil, true, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateClient(ctx context.Context, draft types.Client) (types.Client, error) {
	var out types.Client
	if err := c.doJSON(ctx, http.MethodPost, "/api/clients", draft, true, &out); err != nil {
		return types.Client{}, err
	}
	return out, nil
}

func (c *Client) UpdateClient(ctx context.Context, record types.Client) (types.Client, error) {
	var out types.Client
	if err := c.doJSON(ctx, http.MethodPut, "/api/clients/"+record.ID, record, true, &out); err != nil {
		return types.Client{}, err
	}
	return out, nil
}

func (c *Client) DeleteClient(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/clients/"+id, nil, true, nil)
}

func (c *Client) ListTickets(ctx context.Context) ([]types.Ticket, error) {
	var out []types.Ticket
	if err := c.doJSON(ctx, http.MethodGet, "/api/tickets", nil, true, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateTicket(ctx context.Context, draft types.Ticket) (types.Ticket, error) {
	var out types.Ticket
	if err := c.doJSON(ctx, http.MethodPost, "/api/tickets", draft, true, &out); err != nil {
		return types.Ticket{}, err
	}
	return out, nil
}

func (c *Client) UpdateTicket(ctx context.Context, record types.Ticket) (types.Ticket, error) {
	var out types.Ticket
	if err := c.doJSON(ctx, http.MethodPut, "/api/tickets/"+record.ID, record, true, &out); err != nil {
		return types.Ticket{}, err
	}
	return out, nil
}

func (c *Client) DeleteTicket(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/tickets/"+id, nil, true, nil)
}

func (c *Client) ListAssets(ctx context.Context) ([]types.Asset, error) {
	var out []types.Asset
	if err := c.doJSON(ctx, http.MethodGet, "/api/assets", nil, true, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateAsset(ctx context.Context, draft types.Asset) (types.Asset, error) {
	var out types.Asset
	if err := c.doJSON(ctx, http.MethodPost, "/api/assets", draft, true, &out); err != nil {
		return types.Asset{}, err
	}
	return out, nil
}

func (c *Client) UpdateAsset(ctx context.Context, record types.Asset) (types.Asset, error) {
	var out types.Asset
	if err := c.doJSON(ctx, http.MethodPut, "/api/assets/"+record.ID, record, true, &out); err != nil {
		return types.Asset{}, err
	}
	return out, nil
}

func (c *Client) DeleteAsset(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/assets/"+id, nil, true, nil)
}

func (c *Client) doJSON(ctx context.Context, method, path string, body any, requireAuth bool, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.do(req, requireAuth, out)
}

func (c *Client) doForm(ctx context.Context, path string, form url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(req, false, out)
}

func (c *Client) do(req *http.Request, requireAuth bool, out any) error {
	if requireAuth {
		token := c.Token()
		if token == "" {
			return &AuthError{StatusCode: http.StatusUnauthorized, Message: "no session token"}
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	reqID := logging.NewRequestID()
	c.log.Debug("api request",
		logging.F("id", reqID),
		logging.F("method", req.Method),
		logging.F("path", req.URL.Path))

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug("api transport failure", logging.F("id", reqID), logging.F("err", err))
		return &NetworkError{URL: c.baseURL, Err: err}
	}
	defer resp.Body.Close()

	c.log.Debug("api response", logging.F("id", reqID), logging.F("status", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return statusError(resp.StatusCode, decodeDetail(resp.Body, resp.Status), resp.Header)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// decodeDetail extracts the backend's {"detail": "..."} error body, falling
// back to the HTTP status line.
func decodeDetail(body io.Reader, fallback string) string {
	var payload struct {
		Detail string `json:"detail"`
	}
	_ = json.NewDecoder(body).Decode(&payload)
	if payload.Detail != "" {
		return payload.Detail
	}
	return fallback
}
