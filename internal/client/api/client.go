// Package api is the HTTP client for the portal API used by memberctl.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/memberhub/internal/server/models"
)

// Client talks JSON to the portal server and keeps the session token pair
// for the lifetime of the process.
type Client struct {
	baseURL string
	http    *http.Client

	accessToken  string
	refreshToken string
}

// NewClient constructs a Client for the given base URL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// Session mirrors the server's session payload.
type Session struct {
	User   *models.User `json:"user"`
	Tokens *TokenPair   `json:"tokens"`
}

// TokenPair mirrors the server's token payload.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type apiError struct {
	Message any `json:"message"`
}

func (c *Client) do(ctx context.Context, method, path string, payload any, out any) error {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.accessToken)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		e := &apiError{}
		if err := json.NewDecoder(resp.Body).Decode(e); err == nil && e.Message != nil {
			return fmt.Errorf("server: %v", e.Message)
		}
		return fmt.Errorf("server: %s", resp.Status)
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

// Login authenticates and stores the returned token pair on the client.
func (c *Client) Login(ctx context.Context, email, password string) (*models.User, error) {
	session := &Session{}
	err := c.do(ctx, http.MethodPost, "/api/auth/login",
		map[string]string{"email": email, "password": password}, session)
	if err != nil {
		return nil, err
	}
	if session.Tokens != nil {
		c.accessToken = session.Tokens.AccessToken
		c.refreshToken = session.Tokens.RefreshToken
	}
	return session.User, nil
}

// Logout destroys the server-side session and drops the local tokens.
func (c *Client) Logout(ctx context.Context) error {
	err := c.do(ctx, http.MethodPost, "/api/auth/logout",
		map[string]string{"refreshToken": c.refreshToken}, nil)
	c.accessToken = ""
	c.refreshToken = ""
	return err
}

// Refresh rotates the refresh token and stores the new pair.
func (c *Client) Refresh(ctx context.Context) error {
	pair := &TokenPair{}
	err := c.do(ctx, http.MethodPost, "/api/auth/refresh",
		map[string]string{"refreshToken": c.refreshToken}, pair)
	if err != nil {
		return err
	}
	c.accessToken = pair.AccessToken
	c.refreshToken = pair.RefreshToken
	return nil
}

// Members fetches the admin directory, optionally filtered.
func (c *Client) Members(ctx context.Context, query, status string) ([]*models.Member, error) {
	params := url.Values{}
	if query != "" {
		params.Set("q", query)
	}
	if status != "" {
		params.Set("status", status)
	}
	path := "/api/admin/members"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var list []*models.Member
	if err := c.do(ctx, http.MethodGet, path, nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// Stats fetches the derived directory statistics.
func (c *Client) Stats(ctx context.Context) (*models.MemberStats, error) {
	stats := &models.MemberStats{}
	if err := c.do(ctx, http.MethodGet, "/api/admin/stats", nil, stats); err != nil {
		return nil, err
	}
	return stats, nil
}

// LoggedIn reports whether the client holds a session.
func (c *Client) LoggedIn() bool {
	return c.accessToken != ""
}
