package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "learnhub/internal/errors"
	"learnhub/internal/middleware"
	"learnhub/internal/service"
)

// ProgressHandler handles progress tracking endpoints.
type ProgressHandler struct {
	progressService service.ProgressService
}

// NewProgressHandler creates a new progress handler.
func NewProgressHandler(progressService service.ProgressService) *ProgressHandler {
	return &ProgressHandler{progressService: progressService}
}

// UpsertProgressRequest represents a progress submission.
type UpsertProgressRequest struct {
	ChapterID uint `json:"chapterId" validate:"required"`
	Progress  int  `json:"progress" validate:"gte=0,lte=100"`
}

// Upsert godoc
// @Summary Save chapter progress for the caller
// @Tags progress
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpsertProgressRequest true "Progress data"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /progress [post]
func (h *ProgressHandler) Upsert(c echo.Context) error {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
	}

	var req UpsertProgressRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Chapter ID and progress are required")
	}

	if err := h.progressService.Upsert(c.Request().Context(), claims.UserID, req.ChapterID, req.Progress); err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.Message)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Progress saved successfully"})
}

// List godoc
// @Summary List the caller's progress rows
// @Tags progress
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /progress [get]
func (h *ProgressHandler) List(c echo.Context) error {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
	}

	rows, err := h.progressService.ListByUser(c.Request().Context(), claims.UserID)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.Message)
	}
	return c.JSON(http.StatusOK, echo.Map{"progress": rows})
}
