package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/memberhub/internal/server/models"
	"github.com/labstack/echo/v4"
)

// profileUpdateRequest is the self-service subset of the member record.
// Role, activity and verification are admin-only and have no fields here.
type profileUpdateRequest struct {
	Name            *string `json:"name"`
	Phone           *string `json:"phone"`
	Address         *string `json:"address"`
	ProfileComplete *bool   `json:"profileComplete"`
}

func (s *HTTPServer) handleGetProfile(c echo.Context) error {
	claims := requestClaims(c)

	member, err := s.directory.GetMemberByID(c.Request().Context(), claims.UserID)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, member)
}

func (s *HTTPServer) handleUpdateProfile(c echo.Context) error {
	claims := requestClaims(c)

	req := &profileUpdateRequest{}
	if err := c.Bind(req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	user, err := s.auth.UpdateProfile(ctx, claims.UserID, models.MemberUpdate{
		Name:            req.Name,
		Phone:           req.Phone,
		Address:         req.Address,
		ProfileComplete: req.ProfileComplete,
	})
	if err != nil {
		return toHTTPError(err)
	}

	s.logger.Info(ctx, "Profile updated", "user_id", claims.UserID)
	return c.JSON(http.StatusOK, user)
}
