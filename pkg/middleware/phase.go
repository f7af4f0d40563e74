package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/johnquangdev/meetmate/internal/domain/entities"
)

// MeetingGetter loads the meeting named by a route
type MeetingGetter interface {
	GetMeeting(id string) (entities.Meeting, error)
}

// RequirePhase middleware: only allow the request while the meeting named
// by the :id route parameter is in one of the allowed phases
func RequirePhase(meetings MeetingGetter, allowed ...entities.Phase) echo.MiddlewareFunc {
	names := make([]string, len(allowed))
	for i, p := range allowed {
		names[i] = string(p)
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			m, err := meetings.GetMeeting(c.Param("id"))
			if err != nil {
				return err
			}
			for _, p := range allowed {
				if m.Phase == p {
					return next(c)
				}
			}
			return echo.NewHTTPError(http.StatusConflict,
				"Meeting is in phase "+string(m.Phase)+"; allowed: "+strings.Join(names, ", "))
		}
	}
}
