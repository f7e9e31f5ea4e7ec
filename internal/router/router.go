package router

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"learnhub/internal/config"
	apperrors "learnhub/internal/errors"
	"learnhub/internal/handler"
	"learnhub/internal/middleware"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	contentHandler *handler.ContentHandler,
	progressHandler *handler.ProgressHandler,
	adminHandler *handler.AdminHandler,
) {
	e.Use(echomw.RequestID())
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())

	e.Validator = &CustomValidator{validator: validator.New()}
	e.HTTPErrorHandler = jsonErrorHandler

	e.GET("/swagger/*", echoSwagger.WrapHandler)
	e.Static("/uploads", cfg.UploadDir)

	api := e.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "OK", "message": "learnhub backend is running"})
	})

	// Public routes
	api.POST("/signup", authHandler.Signup)
	api.POST("/login", authHandler.Login)
	api.POST("/admin/login", authHandler.AdminLogin)
	api.GET("/content", contentHandler.List)
	api.GET("/chapters", contentHandler.Chapters)
	api.GET("/courses", contentHandler.Courses)

	// Routes requiring a valid user token
	user := api.Group("", middleware.UserAuth(cfg.JWTSecret))
	user.GET("/profile", authHandler.Profile)
	user.GET("/premium-content", authHandler.PremiumContent)
	user.POST("/progress", progressHandler.Upsert)
	user.GET("/progress", progressHandler.List)

	// Routes requiring the admin role
	admin := api.Group("/admin", middleware.UserAuth(cfg.JWTSecret), middleware.AdminOnly())
	admin.GET("/content", contentHandler.AdminList)
	admin.POST("/content", contentHandler.Create)
	admin.DELETE("/content/:id", contentHandler.Delete)
	admin.GET("/users", adminHandler.ListUsers)
	admin.GET("/stats", adminHandler.Stats)
	admin.GET("/dashboard", adminHandler.Dashboard)
	admin.GET("/activities", adminHandler.Activities)
	admin.GET("/logs", adminHandler.Logs)
	admin.GET("/sessions", adminHandler.Sessions)
	admin.POST("/users/:id/control", adminHandler.ControlUser)
}

// jsonErrorHandler renders every error as {"error": string}, including
// unmatched routes.
func jsonErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := "Server error"

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		switch m := he.Message.(type) {
		case string:
			msg = m
		case apperrors.ErrorResponse:
			msg = m.Error
		default:
			msg = http.StatusText(code)
		}
	}

	if code == http.StatusNotFound && msg == http.StatusText(http.StatusNotFound) {
		msg = "Route not found"
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}
	_ = c.JSON(code, apperrors.ErrorResponse{Error: msg})
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
