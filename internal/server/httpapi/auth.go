package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/memberhub/internal/common"
	"github.com/dmitrijs2005/memberhub/internal/server/models"
	"github.com/dmitrijs2005/memberhub/internal/server/services"
	"github.com/labstack/echo/v4"
)

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type tokenPairResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type sessionResponse struct {
	User   *models.User       `json:"user"`
	Tokens *tokenPairResponse `json:"tokens,omitempty"`
}

func sessionJSON(session *services.Session) *sessionResponse {
	return &sessionResponse{
		User: session.User,
		Tokens: &tokenPairResponse{
			AccessToken:  session.Tokens.AccessToken,
			RefreshToken: session.Tokens.RefreshToken,
		},
	}
}

func (s *HTTPServer) handleRegister(c echo.Context) error {
	req := &registerRequest{}
	if err := c.Bind(req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	session, err := s.auth.Register(ctx, req.Email, req.Password, req.Name)
	if err != nil {
		s.logger.Warn(ctx, "registration rejected", "email", req.Email, "reason", err.Error())
		return toHTTPError(err)
	}

	s.logger.Info(ctx, "Registered", "email", req.Email)
	return c.JSON(http.StatusCreated, sessionJSON(session))
}

func (s *HTTPServer) handleLogin(c echo.Context) error {
	req := &loginRequest{}
	if err := c.Bind(req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	session, err := s.auth.Login(ctx, req.Email, req.Password)
	if err != nil {
		s.logger.Warn(ctx, "login rejected", "email", req.Email, "reason", err.Error())
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, sessionJSON(session))
}

func (s *HTTPServer) handleRefresh(c echo.Context) error {
	req := &refreshRequest{}
	if err := c.Bind(req); err != nil {
		return err
	}

	pair, err := s.auth.RefreshSession(c.Request().Context(), req.RefreshToken)
	if err != nil {
		// an unknown refresh token reads as a dead session, not a missing resource
		if errors.Is(err, common.ErrorNotFound) {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid refresh token")
		}
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, &tokenPairResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

func (s *HTTPServer) handleLogout(c echo.Context) error {
	req := &refreshRequest{}
	if err := c.Bind(req); err != nil {
		return err
	}

	if err := s.auth.Logout(c.Request().Context(), req.RefreshToken); err != nil {
		return toHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// handleSession restores a session from the refresh token the client kept
// across restarts. A dead token is not an error: the response carries a
// null user and the client starts unauthenticated.
func (s *HTTPServer) handleSession(c echo.Context) error {
	token := c.Request().Header.Get("X-Refresh-Token")

	user, err := s.auth.Restore(c.Request().Context(), token)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, &sessionResponse{User: user})
}
