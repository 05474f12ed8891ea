// Package client talks to the PrepNerdz resource API over REST.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/prepnerdz/prepnerdz-api/internal/models"
	"github.com/prepnerdz/prepnerdz-api/pkg/config"
	appErrors "github.com/prepnerdz/prepnerdz-api/pkg/errors"
)

const (
	sessionCookie = "token"
	maxErrorBody  = 4 << 10
)

// Client is a resource API client. Credentials travel in a cookie jar the way
// a browser session would, plus a bearer header when a token is configured.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	token   string
	logger  *zap.Logger
}

// New builds a client from configuration.
func New(cfg config.ClientConfig, logger *zap.Logger) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return NewWithHTTPClient(cfg.BackendURL, cfg.AuthToken, &http.Client{Jar: jar, Timeout: timeout}, logger)
}

// NewWithHTTPClient builds a client over a caller-supplied http.Client.
// baseURL includes the API prefix, e.g. http://localhost:8080/api/v1.
func NewWithHTTPClient(baseURL, token string, hc *http.Client, logger *zap.Logger) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("invalid backend url %q", baseURL))
	}
	if hc == nil {
		hc = &http.Client{Timeout: 10 * time.Second}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if token != "" && hc.Jar != nil {
		hc.Jar.SetCookies(u, []*http.Cookie{{Name: sessionCookie, Value: token, Path: "/"}})
	}
	return &Client{baseURL: u, http: hc, token: token, logger: logger}, nil
}

// ListResources returns every resource of the given type.
func (c *Client) ListResources(ctx context.Context, resourceType models.ResourceType) ([]models.Resource, error) {
	var out []models.Resource
	q := url.Values{"type": {string(resourceType)}}
	if err := c.do(ctx, http.MethodGet, "/resource", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Resource returns a single resource with its subject chain.
func (c *Client) Resource(ctx context.Context, id string) (*models.Resource, error) {
	id = strings.TrimSpace(id)
	if id == "" || strings.Contains(id, "/") {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("invalid resource id %q", id))
	}
	var out models.Resource
	if err := c.do(ctx, http.MethodGet, "/resource/"+id, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// BranchID resolves a branch code to its id.
func (c *Client) BranchID(ctx context.Context, branchName string) (string, error) {
	var out models.BranchIDResponse
	if err := c.do(ctx, http.MethodGet, "/getmyid/branchid", url.Values{"branchName": {branchName}}, nil, &out); err != nil {
		return "", err
	}
	return out.BranchID, nil
}

// SemesterID resolves a semester number to its id.
func (c *Client) SemesterID(ctx context.Context, semNumber string) (string, error) {
	var out models.SemesterIDResponse
	if err := c.do(ctx, http.MethodGet, "/getmyid/semesterid", url.Values{"semNumber": {semNumber}}, nil, &out); err != nil {
		return "", err
	}
	return out.SemesterID, nil
}

// Search requests one page of search results.
func (c *Client) Search(ctx context.Context, filter models.SearchFilter) (*models.SearchPage, error) {
	q := url.Values{
		"type":     {string(filter.Type)},
		"branch":   {filter.Branch},
		"semester": {filter.Semester},
		"query":    {filter.Query},
		"page":     {strconv.Itoa(filter.Page)},
		"limit":    {strconv.Itoa(filter.Limit)},
	}
	var out models.SearchPage
	if err := c.do(ctx, http.MethodGet, "/search", q, nil, &out); err != nil {
		return nil, err
	}
	if out.Data == nil {
		out.Data = []models.Resource{}
	}
	return &out, nil
}

// Session reports the caller's session status.
func (c *Client) Session(ctx context.Context) (models.SessionStatus, error) {
	var out models.SessionResponse
	if err := c.do(ctx, http.MethodGet, "/auth/user/session", nil, nil, &out); err != nil {
		return models.SessionStatus{}, err
	}
	return out.Message, nil
}

// ListBookmarks returns the bookmarks of userID. An answer with
// success=false is a server rejection.
func (c *Client) ListBookmarks(ctx context.Context, userID string) ([]models.Bookmark, error) {
	var out models.BookmarkList
	if err := c.do(ctx, http.MethodGet, "/bookmark/user/"+url.PathEscape(userID), nil, nil, &out); err != nil {
		return nil, err
	}
	if !out.Success {
		return nil, appErrors.Clone(appErrors.ErrServerRejection, "failed to list bookmarks")
	}
	return out.Data, nil
}

// AddBookmark asks the server to bookmark resourceID. The server's verdict is
// returned as-is; only transport and HTTP failures are errors.
func (c *Client) AddBookmark(ctx context.Context, userID, resourceID string) (models.Ack, error) {
	return c.mutateBookmark(ctx, http.MethodPost, userID, resourceID)
}

// RemoveBookmark asks the server to remove a bookmark.
func (c *Client) RemoveBookmark(ctx context.Context, userID, resourceID string) (models.Ack, error) {
	return c.mutateBookmark(ctx, http.MethodDelete, userID, resourceID)
}

func (c *Client) mutateBookmark(ctx context.Context, method, userID, resourceID string) (models.Ack, error) {
	var ack models.Ack
	body := models.BookmarkRequest{UserID: userID, ResourceID: resourceID}
	if err := c.do(ctx, method, "/bookmark", nil, body, &ack); err != nil {
		return models.Ack{}, err
	}
	return ack, nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, dest interface{}) error {
	endpoint := *c.baseURL
	endpoint.Path = c.baseURL.Path + path
	if query != nil {
		endpoint.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), reader)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("resource api request failed", zap.String("method", method), zap.String("path", path), zap.Error(err))
		return appErrors.Wrap(err, appErrors.ErrNetwork.Code, appErrors.ErrNetwork.Status, fmt.Sprintf("%s %s failed", method, path))
	}
	defer resp.Body.Close()

	c.logger.Debug("resource api request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(method, path, resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return appErrors.Wrap(err, appErrors.ErrNetwork.Code, appErrors.ErrNetwork.Status, fmt.Sprintf("decode %s %s", method, path))
	}
	return nil
}

// statusError maps a non-2xx answer to a network error, keeping the server's
// message when the body carries one.
func statusError(method, path string, resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	var failure struct {
		Message string `json:"message"`
	}
	msg := fmt.Sprintf("%s %s: http %s", method, path, resp.Status)
	if json.Unmarshal(raw, &failure) == nil && failure.Message != "" {
		msg += ": " + failure.Message
	}
	return appErrors.Wrap(fmt.Errorf("http %d", resp.StatusCode), appErrors.ErrNetwork.Code, appErrors.ErrNetwork.Status, msg)
}
