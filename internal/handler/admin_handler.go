package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	apperrors "learnhub/internal/errors"
	"learnhub/internal/service"
)

// AdminHandler handles the read-only admin views and user control.
type AdminHandler struct {
	adminService service.AdminService
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(adminService service.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// ControlUserRequest selects the action applied to a user account.
type ControlUserRequest struct {
	Action string `json:"action" validate:"required"`
}

// ListUsers godoc
// @Summary List all users
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.adminService.ListUsers(c.Request().Context())
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.Message)
	}
	return c.JSON(http.StatusOK, echo.Map{"users": users})
}

// Stats godoc
// @Summary Headline platform totals
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.Stats
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /admin/stats [get]
func (h *AdminHandler) Stats(c echo.Context) error {
	stats, err := h.adminService.Stats(c.Request().Context())
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.Message)
	}
	return c.JSON(http.StatusOK, stats)
}

// Dashboard godoc
// @Summary Aggregate admin overview
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.Dashboard
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /admin/dashboard [get]
func (h *AdminHandler) Dashboard(c echo.Context) error {
	dashboard, err := h.adminService.Dashboard(c.Request().Context())
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.Message)
	}
	return c.JSON(http.StatusOK, dashboard)
}

// Activities godoc
// @Summary List user activities
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param userId query int false "Filter by user"
// @Param limit query int false "Row limit (default 50)"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /admin/activities [get]
func (h *AdminHandler) Activities(c echo.Context) error {
	var userID uint
	if raw := c.QueryParam("userId"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 32); err == nil {
			userID = uint(id)
		}
	}
	limit := queryInt(c, "limit", 50)

	activities, err := h.adminService.Activities(c.Request().Context(), userID, limit)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.Message)
	}
	return c.JSON(http.StatusOK, echo.Map{"activities": activities})
}

// Logs godoc
// @Summary List system logs
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param level query string false "Filter by level"
// @Param limit query int false "Row limit (default 100)"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /admin/logs [get]
func (h *AdminHandler) Logs(c echo.Context) error {
	logs, err := h.adminService.SystemLogs(c.Request().Context(), c.QueryParam("level"), queryInt(c, "limit", 100))
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.Message)
	}
	return c.JSON(http.StatusOK, echo.Map{"logs": logs})
}

// Sessions godoc
// @Summary List unexpired login sessions
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /admin/sessions [get]
func (h *AdminHandler) Sessions(c echo.Context) error {
	sessions, err := h.adminService.ActiveSessions(c.Request().Context())
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.Message)
	}
	return c.JSON(http.StatusOK, echo.Map{"sessions": sessions})
}

// ControlUser godoc
// @Summary Suspend, delete or reset the password of a user
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param request body ControlUserRequest true "Action"
// @Success 200 {object} service.ControlResult
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /admin/users/{id}/control [post]
func (h *AdminHandler) ControlUser(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	var req ControlUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Action is required")
	}

	result, err := h.adminService.ControlUser(c.Request().Context(), uint(id), req.Action)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.Message)
	}
	return c.JSON(http.StatusOK, result)
}

func queryInt(c echo.Context, name string, def int) int {
	if raw := c.QueryParam(name); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			return v
		}
	}
	return def
}
