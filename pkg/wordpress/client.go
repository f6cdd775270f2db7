package wordpress

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const apiPrefix = "/wp-json/wp/v2"

// Login checks replay caller credentials against the remote and should
// fail fast; everything else uses the regular timeout.
const authTimeout = 10 * time.Second

// Config holds WordPress connection settings. Username and Password are
// the long-lived service account used for all proxied calls; caller
// credentials only ever appear in AuthenticateAs.
type Config struct {
	BaseURL  string
	Username string
	Password string
	Timeout  time.Duration
}

// Client wraps the WordPress REST API. Safe for concurrent use; all
// configuration is fixed at construction.
type Client struct {
	httpClient *http.Client
	authClient *http.Client
	baseURL    string
	username   string
	password   string
	logger     *slog.Logger
}

// New creates a WordPress client.
func New(cfg Config, logger *slog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		authClient: &http.Client{Timeout: authTimeout},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		username:   cfg.Username,
		password:   cfg.Password,
		logger:     logger.With("component", "wordpress"),
	}
}

// BaseURL returns the configured WordPress site URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Probe issues a minimal authenticated request against the API root.
// It returns true only on success and never returns an error; used for
// health checks and operator diagnostics.
func (c *Client) Probe(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+apiPrefix+"/", nil)
	if err != nil {
		return false
	}
	req.SetBasicAuth(c.username, c.password)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("connection probe failed", "error", err)
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// List fetches up to perPage posts in remote-default order. perPage is
// bounded to the remote maximum of 100; values <= 0 mean 100.
func (c *Client) List(ctx context.Context, perPage int) ([]Post, error) {
	if perPage <= 0 || perPage > 100 {
		perPage = 100
	}

	var raw []wpPost
	url := fmt.Sprintf("%s%s/posts?per_page=%d", c.baseURL, apiPrefix, perPage)
	if err := c.doJSON(ctx, http.MethodGet, url, nil, &raw); err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}

	posts := make([]Post, len(raw))
	for i, p := range raw {
		posts[i] = p.flatten()
	}
	return posts, nil
}

// Get fetches one post by id.
func (c *Client) Get(ctx context.Context, id int64) (*Post, error) {
	var raw wpPost
	url := fmt.Sprintf("%s%s/posts/%d", c.baseURL, apiPrefix, id)
	if err := c.doJSON(ctx, http.MethodGet, url, nil, &raw); err != nil {
		return nil, fmt.Errorf("get post %d: %w", id, err)
	}
	post := raw.flatten()
	return &post, nil
}

// Create creates a post. An empty status defaults to draft on the
// remote side; the returned post carries the remote-assigned id.
func (c *Client) Create(ctx context.Context, title, content, status string) (*Post, error) {
	payload := wpPostPayload{Title: title, Content: content, Status: status}

	var raw wpPost
	url := c.baseURL + apiPrefix + "/posts"
	if err := c.doJSON(ctx, http.MethodPost, url, payload, &raw); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	c.logger.Info("post created", "id", raw.ID, "status", raw.Status)
	post := raw.flatten()
	return &post, nil
}

// Update rewrites title and content of an existing post. An empty
// status leaves the remote status unchanged.
func (c *Client) Update(ctx context.Context, id int64, title, content, status string) (*Post, error) {
	payload := wpPostPayload{Title: title, Content: content, Status: status}

	var raw wpPost
	url := fmt.Sprintf("%s%s/posts/%d", c.baseURL, apiPrefix, id)
	if err := c.doJSON(ctx, http.MethodPost, url, payload, &raw); err != nil {
		return nil, fmt.Errorf("update post %d: %w", id, err)
	}

	c.logger.Info("post updated", "id", id)
	post := raw.flatten()
	return &post, nil
}

// Delete permanently deletes a post, bypassing the remote trash.
// Deleting an absent id surfaces ErrNotFound so the caller can detect
// that nothing happened.
func (c *Client) Delete(ctx context.Context, id int64) error {
	url := fmt.Sprintf("%s%s/posts/%d?force=true", c.baseURL, apiPrefix, id)
	if err := c.doJSON(ctx, http.MethodDelete, url, nil, nil); err != nil {
		return fmt.Errorf("delete post %d: %w", id, err)
	}

	c.logger.Info("post deleted", "id", id)
	return nil
}

// AuthenticateAs performs a privileged read using the caller-supplied
// credentials, not the service account. It returns true iff the remote
// accepts them; a rejection is (false, nil), only transport failures
// return an error.
func (c *Client) AuthenticateAs(ctx context.Context, username, password string) (bool, error) {
	url := c.baseURL + apiPrefix + "/posts?per_page=1"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, fmt.Errorf("authenticate: %w", err)
	}
	req.SetBasicAuth(username, password)
	req.Header.Set("Accept", "application/json")

	resp, err := c.authClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("authenticate: %w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return true, nil
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return false, nil
	default:
		return false, fmt.Errorf("authenticate: %w: status %d", ErrRejected, resp.StatusCode)
	}
}

// CurrentUser fetches the account behind the service credentials.
func (c *Client) CurrentUser(ctx context.Context) (*User, error) {
	var user User
	url := c.baseURL + apiPrefix + "/users/me"
	if err := c.doJSON(ctx, http.MethodGet, url, nil, &user); err != nil {
		return nil, fmt.Errorf("current user: %w", err)
	}
	return &user, nil
}

// doJSON executes one authenticated request and decodes the response
// into out when non-nil. Transport failures (including timeouts) map to
// ErrUnavailable, 404/410 to ErrNotFound, other error statuses to
// ErrRejected.
func (c *Client) doJSON(ctx context.Context, method, url string, payload, out any) error {
	var body *bytes.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.SetBasicAuth(c.username, c.password)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("request failed", "method", method, "url", url, "error", err)
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Error("request rejected", "method", method, "url", url, "status", resp.StatusCode)
		return statusError(resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode response: %v", ErrRejected, err)
	}
	return nil
}

func statusError(code int) error {
	switch code {
	case http.StatusNotFound, http.StatusGone:
		return fmt.Errorf("%w: status %d", ErrNotFound, code)
	default:
		return fmt.Errorf("%w: status %d", ErrRejected, code)
	}
}
