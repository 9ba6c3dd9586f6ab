package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/memberhub/internal/server/models"
	"github.com/dmitrijs2005/memberhub/internal/server/services"
	"github.com/labstack/echo/v4"
)

// handleListMembers returns the directory, optionally narrowed by a text
// query (?q=) and a status filter (?status=).
func (s *HTTPServer) handleListMembers(c echo.Context) error {
	list, err := s.directory.GetMembers(c.Request().Context())
	if err != nil {
		return toHTTPError(err)
	}

	query := c.QueryParam("q")
	status := services.StatusFilter(c.QueryParam("status"))
	if status == "" {
		status = services.FilterAll
	}

	return c.JSON(http.StatusOK, services.FilterMembers(list, query, status))
}

func (s *HTTPServer) handleGetMember(c echo.Context) error {
	member, err := s.directory.GetMemberByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, member)
}

func (s *HTTPServer) handleUpdateMember(c echo.Context) error {
	upd := models.MemberUpdate{}
	if err := c.Bind(&upd); err != nil {
		return err
	}
	if upd.Role != nil && !upd.Role.Valid() {
		return echo.NewHTTPError(http.StatusBadRequest, "unknown role")
	}

	id := c.Param("id")
	ctx := c.Request().Context()

	ok, err := s.directory.UpdateMember(ctx, id, upd)
	if err != nil {
		return toHTTPError(err)
	}
	if !ok {
		return c.NoContent(http.StatusNotFound)
	}

	member, err := s.directory.GetMemberByID(ctx, id)
	if err != nil {
		return toHTTPError(err)
	}

	s.logger.Info(ctx, "Member updated", "member_id", id)
	return c.JSON(http.StatusOK, member)
}

func (s *HTTPServer) handleDeleteMember(c echo.Context) error {
	id := c.Param("id")
	ctx := c.Request().Context()

	ok, err := s.directory.DeleteMember(ctx, id)
	if err != nil {
		return toHTTPError(err)
	}
	if !ok {
		return c.NoContent(http.StatusNotFound)
	}

	s.logger.Info(ctx, "Member deleted", "member_id", id)
	return c.NoContent(http.StatusNoContent)
}

func (s *HTTPServer) handleStats(c echo.Context) error {
	stats, err := s.directory.Stats(c.Request().Context())
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, stats)
}
