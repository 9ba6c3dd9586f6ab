package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/memberhub/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, time.Second)
}

func TestLogin_StoresTokens(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/auth/login", r.URL.Path)

		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "admin@organisasi.com", req["email"])

		json.NewEncoder(w).Encode(&Session{
			User:   &models.User{ID: "1", Email: req["email"], Role: models.RoleAdmin},
			Tokens: &TokenPair{AccessToken: "access", RefreshToken: "refresh"},
		})
	})

	user, err := c.Login(context.Background(), "admin@organisasi.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, "1", user.ID)
	assert.True(t, c.LoggedIn())
	assert.Equal(t, "access", c.accessToken)
	assert.Equal(t, "refresh", c.refreshToken)
}

func TestLogin_ServerError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"message": "unauthorized"})
	})

	_, err := c.Login(context.Background(), "x@y.com", "password123")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unauthorized")
	assert.False(t, c.LoggedIn())
}

func TestMembers_SendsBearerAndFilters(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/admin/members", r.URL.Path)
		assert.Equal(t, "Bearer access", r.Header.Get("Authorization"))
		assert.Equal(t, "jane", r.URL.Query().Get("q"))
		assert.Equal(t, "inactive", r.URL.Query().Get("status"))

		json.NewEncoder(w).Encode([]*models.Member{
			{User: models.User{ID: "5", Name: "Jane Smith"}},
		})
	})
	c.accessToken = "access"

	list, err := c.Members(context.Background(), "jane", "inactive")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Jane Smith", list[0].Name)
}

func TestStats(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/admin/stats", r.URL.Path)
		json.NewEncoder(w).Encode(&models.MemberStats{Total: 5, Active: 4, Inactive: 1})
	})

	stats, err := c.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, stats.Total)
	assert.Equal(t, 4, stats.Active)
}

func TestRefresh_RotatesPair(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/auth/refresh", r.URL.Path)

		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "old-refresh", req["refreshToken"])

		json.NewEncoder(w).Encode(&TokenPair{AccessToken: "new-access", RefreshToken: "new-refresh"})
	})
	c.accessToken = "old-access"
	c.refreshToken = "old-refresh"

	require.NoError(t, c.Refresh(context.Background()))
	assert.Equal(t, "new-access", c.accessToken)
	assert.Equal(t, "new-refresh", c.refreshToken)
}

func TestLogout_ClearsTokensEvenOnError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	c.accessToken = "access"
	c.refreshToken = "refresh"

	err := c.Logout(context.Background())
	require.Error(t, err)
	assert.False(t, c.LoggedIn())
}
