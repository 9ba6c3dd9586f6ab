package httpapi

import (
	"net/http"
	"strings"

	"github.com/dmitrijs2005/memberhub/internal/server/auth"
	"github.com/dmitrijs2005/memberhub/internal/server/models"
	"github.com/labstack/echo/v4"
)

const claimsContextKey = "claims"

// accessTokenMiddleware parses the Bearer token and stores the claims on
// the request context. A missing or invalid token yields 401.
func (s *HTTPServer) accessTokenMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "must log in")
		}

		claims, err := auth.ParseToken(token, s.jwtSecret)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "must log in")
		}

		c.Set(claimsContextKey, claims)
		return next(c)
	}
}

// requireRole gates a route group by minimum role rank.
func (s *HTTPServer) requireRole(required models.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims := requestClaims(c)
			if claims == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "must log in")
			}
			if !models.HasRole(&models.User{Role: claims.Role}, required) {
				return echo.NewHTTPError(http.StatusForbidden, "insufficient role")
			}
			return next(c)
		}
	}
}

func requestClaims(c echo.Context) *auth.Claims {
	claims, _ := c.Get(claimsContextKey).(*auth.Claims)
	return claims
}
