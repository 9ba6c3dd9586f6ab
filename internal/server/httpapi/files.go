package httpapi

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/dmitrijs2005/memberhub/internal/server/models"
	"github.com/dmitrijs2005/memberhub/internal/server/services"
	"github.com/labstack/echo/v4"
)

type uploadResultResponse struct {
	File  *models.StoredFile `json:"file,omitempty"`
	Error string             `json:"error,omitempty"`
}

type uploadResponse struct {
	Results []uploadResultResponse `json:"results"`
}

// fileURL prefers a presigned blob URL and falls back to streaming the
// content through the API.
func (s *HTTPServer) fileURL(c echo.Context, f *models.StoredFile) string {
	if u, ok := s.uploads.SignedURL(c.Request().Context(), f); ok {
		return u
	}
	return fmt.Sprintf("/api/files/%s/content", f.ID)
}

func readUploadInput(fh *multipart.FileHeader) (services.UploadInput, error) {
	src, err := fh.Open()
	if err != nil {
		return services.UploadInput{}, err
	}
	defer src.Close()

	content, err := io.ReadAll(src)
	if err != nil {
		return services.UploadInput{}, err
	}

	return services.UploadInput{
		Name:     fh.Filename,
		Size:     fh.Size,
		MimeType: fh.Header.Get(echo.HeaderContentType),
		Content:  content,
	}, nil
}

// handleUploadFiles accepts a multipart form with one or more "files" parts
// and a "category" field, and runs them as independent concurrent uploads.
// Per-file outcomes are reported in part order; one bad file never fails
// the batch.
func (s *HTTPServer) handleUploadFiles(c echo.Context) error {
	claims := requestClaims(c)

	form, err := c.MultipartForm()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "multipart form expected")
	}
	headers := form.File["files"]
	if len(headers) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "no files provided")
	}

	category := models.FileCategory(c.FormValue("category"))
	if !category.Valid() {
		return echo.NewHTTPError(http.StatusBadRequest, "unknown file category")
	}

	inputs := make([]services.UploadInput, 0, len(headers))
	for _, fh := range headers {
		in, err := readUploadInput(fh)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "unreadable file part")
		}
		inputs = append(inputs, in)
	}

	ctx := c.Request().Context()
	results := s.uploads.UploadAll(ctx, claims.UserID, inputs, category, nil)

	resp := &uploadResponse{Results: make([]uploadResultResponse, len(results))}
	for i, r := range results {
		if r.Err != nil {
			s.logger.Warn(ctx, "upload failed", "user_id", claims.UserID, "name", inputs[i].Name, "reason", r.Err.Error())
			resp.Results[i] = uploadResultResponse{Error: r.Err.Error()}
			continue
		}
		r.File.URL = s.fileURL(c, r.File)
		resp.Results[i] = uploadResultResponse{File: r.File}
	}

	return c.JSON(http.StatusOK, resp)
}

func (s *HTTPServer) handleListFiles(c echo.Context) error {
	claims := requestClaims(c)

	category := models.FileCategory(c.QueryParam("category"))
	if category != "" && !category.Valid() {
		return echo.NewHTTPError(http.StatusBadRequest, "unknown file category")
	}

	list, err := s.uploads.ListFiles(c.Request().Context(), claims.UserID, category)
	if err != nil {
		return toHTTPError(err)
	}
	for _, f := range list {
		f.URL = s.fileURL(c, f)
	}
	return c.JSON(http.StatusOK, list)
}

func (s *HTTPServer) handleFileContent(c echo.Context) error {
	claims := requestClaims(c)

	f, data, err := s.uploads.GetContent(c.Request().Context(), c.Param("id"))
	if err != nil {
		return toHTTPError(err)
	}

	// owners see their own files; admins can inspect any
	if f.OwnerID != claims.UserID && !models.HasRole(&models.User{Role: claims.Role}, models.RoleAdmin) {
		return echo.NewHTTPError(http.StatusForbidden, "insufficient role")
	}

	return c.Blob(http.StatusOK, f.MimeType, data)
}

func (s *HTTPServer) handleDeleteFile(c echo.Context) error {
	claims := requestClaims(c)
	id := c.Param("id")
	ctx := c.Request().Context()

	f, err := s.uploads.GetFile(ctx, id)
	if err == nil && f.OwnerID != claims.UserID &&
		!models.HasRole(&models.User{Role: claims.Role}, models.RoleAdmin) {
		return echo.NewHTTPError(http.StatusForbidden, "insufficient role")
	}

	removed, err := s.uploads.Delete(ctx, id)
	if err != nil {
		return toHTTPError(err)
	}
	if !removed {
		return c.NoContent(http.StatusNotFound)
	}
	return c.NoContent(http.StatusNoContent)
}
