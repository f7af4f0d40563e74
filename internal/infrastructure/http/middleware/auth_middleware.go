package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// EchoAuth returns an Echo middleware that accepts only the configured bearer
// token. An empty token disables the check; skipper exempts public routes.
func EchoAuth(token string, skipper echomw.Skipper) echo.MiddlewareFunc {
	if skipper == nil {
		skipper = echomw.DefaultSkipper
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if token == "" || skipper(c) {
				return next(c)
			}

			got := extractToken(c.Request())
			if got == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
			}
			if subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token")
			}
			return next(c)
		}
	}
}

// PathSkipper exempts requests whose path ends with one of suffixes
func PathSkipper(suffixes ...string) echomw.Skipper {
	return func(c echo.Context) bool {
		p := c.Request().URL.Path
		for _, s := range suffixes {
			if strings.HasSuffix(p, s) {
				return true
			}
		}
		return false
	}
}

func extractToken(r *http.Request) string {
	// Try Authorization header first
	authHeader := r.Header.Get("Authorization")
	if authHeader != "" {
		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return strings.TrimSpace(parts[1])
		}
	}

	// Try cookie as fallback
	if cookie, err := r.Cookie("access_token"); err == nil {
		return cookie.Value
	}
	return ""
}
