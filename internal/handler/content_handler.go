package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	apperrors "learnhub/internal/errors"
	"learnhub/internal/repository"
	"learnhub/internal/service"
)

// ContentHandler handles public listings and admin content management.
type ContentHandler struct {
	contentService service.ContentService
	catalogService service.CatalogService
}

// NewContentHandler creates a new content handler.
func NewContentHandler(contentService service.ContentService, catalogService service.CatalogService) *ContentHandler {
	return &ContentHandler{
		contentService: contentService,
		catalogService: catalogService,
	}
}

func contentFilterFromQuery(c echo.Context) repository.ContentFilter {
	filter := repository.ContentFilter{Type: c.QueryParam("type")}
	if raw := c.QueryParam("chapter_id"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 32); err == nil {
			filter.ChapterID = uint(id)
		}
	}
	return filter
}

// List godoc
// @Summary List content, filterable by type and chapter
// @Tags content
// @Produce json
// @Param type query string false "Content type"
// @Param chapter_id query int false "Chapter ID"
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} errors.ErrorResponse
// @Router /content [get]
func (h *ContentHandler) List(c echo.Context) error {
	items, err := h.contentService.List(c.Request().Context(), contentFilterFromQuery(c))
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.Message)
	}
	return c.JSON(http.StatusOK, echo.Map{"content": items})
}

// AdminList godoc
// @Summary List all content including file paths
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param type query string false "Content type"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /admin/content [get]
func (h *ContentHandler) AdminList(c echo.Context) error {
	filter := repository.ContentFilter{Type: c.QueryParam("type")}
	items, err := h.contentService.List(c.Request().Context(), filter)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.Message)
	}
	return c.JSON(http.StatusOK, echo.Map{"content": items})
}

// Create godoc
// @Summary Create a content item, optionally with an uploaded file
// @Tags admin
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param title formData string true "Title"
// @Param type formData string true "Content type"
// @Param content formData string false "Inline content"
// @Param chapter_id formData int false "Chapter ID"
// @Param is_premium formData bool false "Premium flag"
// @Param file formData file false "Attached file"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /admin/content [post]
func (h *ContentHandler) Create(c echo.Context) error {
	title := c.FormValue("title")
	contentType := c.FormValue("type")
	if title == "" || contentType == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Title and type are required")
	}

	input := service.CreateContentInput{
		Title:     title,
		Type:      contentType,
		Content:   c.FormValue("content"),
		IsPremium: parseBool(c.FormValue("is_premium")),
	}
	if raw := c.FormValue("chapter_id"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 32); err == nil {
			input.ChapterID = uint(id)
		}
	}

	if fh, err := c.FormFile("file"); err == nil && fh != nil {
		src, err := fh.Open()
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to read upload")
		}
		defer src.Close()
		input.FileName = fh.Filename
		input.File = src
	}

	item, err := h.contentService.Create(c.Request().Context(), input)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.Message)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Content created successfully",
		"id":      item.ID,
		"fileUrl": item.FileURL,
	})
}

// Delete godoc
// @Summary Delete a content item and its file
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Content ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /admin/content/{id} [delete]
func (h *ContentHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid content ID")
	}

	if err := h.contentService.Delete(c.Request().Context(), uint(id)); err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.Message)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Content deleted successfully"})
}

// Chapters godoc
// @Summary List syllabus chapters
// @Tags catalog
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} errors.ErrorResponse
// @Router /chapters [get]
func (h *ContentHandler) Chapters(c echo.Context) error {
	chapters, err := h.catalogService.Chapters(c.Request().Context())
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.Message)
	}
	return c.JSON(http.StatusOK, echo.Map{"chapters": chapters})
}

// Courses godoc
// @Summary List courses
// @Tags catalog
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} errors.ErrorResponse
// @Router /courses [get]
func (h *ContentHandler) Courses(c echo.Context) error {
	courses, err := h.catalogService.Courses(c.Request().Context())
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.Message)
	}
	return c.JSON(http.StatusOK, echo.Map{"courses": courses})
}

func parseBool(raw string) bool {
	b, _ := strconv.ParseBool(raw)
	return b
}
