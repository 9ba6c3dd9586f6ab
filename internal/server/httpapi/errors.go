package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/memberhub/internal/common"
	"github.com/labstack/echo/v4"
)

// toHTTPError maps service sentinel errors to HTTP status codes. Unmapped
// errors become opaque 500s so internals never leak to the client.
func toHTTPError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, common.ErrorUserNotFound),
		errors.Is(err, common.ErrorUnauthorized),
		errors.Is(err, common.ErrorInvalidToken),
		errors.Is(err, common.ErrorRefreshTokenExpired),
		errors.Is(err, common.ErrorNoSession):
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	case errors.Is(err, common.ErrorAccountInactive):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	case errors.Is(err, common.ErrorWeakPassword),
		errors.Is(err, common.ErrorInvalidName):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, common.ErrorDuplicateEmail):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, common.ErrorFileTooLarge):
		return echo.NewHTTPError(http.StatusRequestEntityTooLarge, err.Error())
	case errors.Is(err, common.ErrorUnsupportedType):
		return echo.NewHTTPError(http.StatusUnsupportedMediaType, err.Error())
	case errors.Is(err, common.ErrorNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
}
