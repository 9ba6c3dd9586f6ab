// Package httpapi exposes the portal over HTTP/JSON: session endpoints,
// the member profile, document uploads and the admin directory.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/dmitrijs2005/memberhub/internal/logging"
	"github.com/dmitrijs2005/memberhub/internal/server/config"
	"github.com/dmitrijs2005/memberhub/internal/server/models"
	"github.com/dmitrijs2005/memberhub/internal/server/services"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type HTTPServer struct {
	address   string
	logger    logging.Logger
	auth      *services.AuthService
	uploads   *services.UploadService
	directory *services.DirectoryService
	jwtSecret []byte

	bodyLimit string
}

func NewHTTPServer(cfg *config.Config, l logging.Logger, as *services.AuthService, us *services.UploadService, ds *services.DirectoryService) (*HTTPServer, error) {
	return &HTTPServer{
		address:   cfg.EndpointAddr,
		logger:    l.With("module", "http_server"),
		auth:      as,
		uploads:   us,
		directory: ds,
		jwtSecret: []byte(cfg.SecretKey),
		// multipart overhead on top of the per-file limit
		bodyLimit: fmt.Sprintf("%dK", (cfg.MaxUploadSize*6)/1024),
	}, nil
}

// newEcho builds the echo instance with middleware and routes. Split from
// Run so handler tests can drive it through httptest.
func (s *HTTPServer) newEcho() *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.BodyLimit(s.bodyLimit))
	e.Use(middleware.RequestID())
	e.Use(middleware.Recover())

	headers := []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization}
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowHeaders:     headers,
		AllowCredentials: true,
	}))

	api := e.Group("/api")

	api.POST("/auth/register", s.handleRegister)
	api.POST("/auth/login", s.handleLogin)
	api.POST("/auth/refresh", s.handleRefresh)
	api.POST("/auth/logout", s.handleLogout)
	api.GET("/auth/session", s.handleSession)

	member := api.Group("", s.accessTokenMiddleware, s.requireRole(models.RoleMember))
	member.GET("/profile", s.handleGetProfile)
	member.PUT("/profile", s.handleUpdateProfile)
	member.POST("/files", s.handleUploadFiles)
	member.GET("/files", s.handleListFiles)
	member.GET("/files/:id/content", s.handleFileContent)
	member.DELETE("/files/:id", s.handleDeleteFile)

	admin := api.Group("/admin", s.accessTokenMiddleware, s.requireRole(models.RoleAdmin))
	admin.GET("/members", s.handleListMembers)
	admin.GET("/members/:id", s.handleGetMember)
	admin.PATCH("/members/:id", s.handleUpdateMember)
	admin.DELETE("/members/:id", s.handleDeleteMember)
	admin.GET("/stats", s.handleStats)

	return e
}

func (s *HTTPServer) Run(ctx context.Context) error {
	e := s.newEcho()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(shutdownCtx, err.Error())
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := e.Start(s.address); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
