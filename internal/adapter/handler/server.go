package handler

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/johnquangdev/meetmate/internal/infrastructure/http/middleware"
	"github.com/johnquangdev/meetmate/internal/infrastructure/memdb"
	pkgvalidator "github.com/johnquangdev/meetmate/pkg/validator"
)

// Store is the full backend surface the demo server exposes
type Store interface {
	MeetingStore
	ItemStore
	MinutesStore
	KnowledgeStore
}

var _ Store = (*memdb.Store)(nil)

// NewServer builds an Echo instance serving every backend endpoint over
// store. A non-empty token is required as bearer token on every route
// except the waitlist.
func NewServer(store Store, token string, logger *zap.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = pkgvalidator.New()
	e.HTTPErrorHandler = ErrorHandler(logger)

	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())

	authMW := middleware.EchoAuth(token, middleware.PathSkipper("/marketing/join", "/health"))

	router := NewRouter(
		NewMeetingHandler(store, logger),
		NewItemHandler(store, logger),
		NewMinutesHandler(store, logger),
		NewKnowledgeHandler(store, logger),
		store,
		authMW,
	)
	router.Setup(e)
	return e
}
