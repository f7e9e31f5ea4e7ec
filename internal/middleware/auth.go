package middleware

import (
	"errors"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"learnhub/internal/auth"
)

// contextKey is where the verified token lives in the echo context.
const contextKey = "user"

// UserAuth gates a route group on a valid session token. A missing
// Authorization header and a bad token are both 401; the two cases get the
// distinct messages callers rely on.
func UserAuth(secret string) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(secret),
		ContextKey: contextKey,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			var extErr *echojwt.TokenExtractionError
			if errors.As(err, &extErr) {
				return echo.NewHTTPError(http.StatusUnauthorized, "Access token required")
			}
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
		},
	})
}

// AdminOnly requires the admin role claim on an already-verified token. A
// valid token without the role is 403, not 401.
func AdminOnly() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := ClaimsFrom(c)
			if !ok || !claims.IsAdmin() {
				return echo.NewHTTPError(http.StatusForbidden, "Insufficient admin privileges")
			}
			return next(c)
		}
	}
}

// ClaimsFrom extracts the verified claims UserAuth stored in the context.
func ClaimsFrom(c echo.Context) (*auth.Claims, bool) {
	token, ok := c.Get(contextKey).(*jwt.Token)
	if !ok {
		return nil, false
	}
	claims, ok := token.Claims.(*auth.Claims)
	return claims, ok
}
