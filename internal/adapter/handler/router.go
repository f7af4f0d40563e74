package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/johnquangdev/meetmate/internal/domain/entities"
	"github.com/johnquangdev/meetmate/pkg/middleware"
)

// APIPrefix is where every backend endpoint is mounted
const APIPrefix = "/api/v1"

// Router holds all handlers
type Router struct {
	meetingHandler   *Meeting
	itemHandler      *Item
	minutesHandler   *Minutes
	knowledgeHandler *Knowledge
	meetings         middleware.MeetingGetter
	authMiddleware   echo.MiddlewareFunc
}

// NewRouter creates a new router with all handlers
func NewRouter(
	meetingHandler *Meeting,
	itemHandler *Item,
	minutesHandler *Minutes,
	knowledgeHandler *Knowledge,
	meetings middleware.MeetingGetter,
	authMiddleware echo.MiddlewareFunc,
) *Router {
	return &Router{
		meetingHandler:   meetingHandler,
		itemHandler:      itemHandler,
		minutesHandler:   minutesHandler,
		knowledgeHandler: knowledgeHandler,
		meetings:         meetings,
		authMiddleware:   authMiddleware,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", rt.healthCheck)

	v1 := e.Group(APIPrefix)
	if rt.authMiddleware != nil {
		v1.Use(rt.authMiddleware)
	}

	rt.setupMeetingRoutes(v1)
	rt.setupItemRoutes(v1)
	rt.setupMinutesRoutes(v1)
	rt.setupKnowledgeRoutes(v1)
}

// setupMeetingRoutes configures meeting, participant and transcript routes
func (rt *Router) setupMeetingRoutes(g *echo.Group) {
	meetingGroup := g.Group("/meetings")
	meetingGroup.GET("", rt.meetingHandler.ListMeetings)
	meetingGroup.POST("", rt.meetingHandler.CreateMeeting)
	meetingGroup.GET("/:id", rt.meetingHandler.GetMeeting)
	meetingGroup.PUT("/:id/phase", rt.meetingHandler.UpdatePhase)
	meetingGroup.GET("/:id/participants", rt.meetingHandler.ListParticipants)
	meetingGroup.POST("/:id/participants", rt.meetingHandler.AddParticipant)
	meetingGroup.DELETE("/:id/participants/:user_id", rt.meetingHandler.RemoveParticipant)

	transcriptGroup := g.Group("/transcripts")
	transcriptGroup.GET("/meeting/:id/chunks", rt.meetingHandler.ListChunks)
	transcriptGroup.POST("/:id/chunks", rt.meetingHandler.IngestChunks,
		middleware.RequirePhase(rt.meetings, entities.PhaseIn))
}

// setupItemRoutes configures action, decision and risk routes
func (rt *Router) setupItemRoutes(g *echo.Group) {
	g.GET("/actions", rt.itemHandler.ListActions)
	g.PATCH("/actions/:id", rt.itemHandler.UpdateAction)
	g.POST("/actions/:id/sync", rt.itemHandler.SyncAction)
	g.GET("/decisions", rt.itemHandler.ListDecisions)
	g.GET("/risks", rt.itemHandler.ListRisks)
}

// setupMinutesRoutes configures minutes and template routes
func (rt *Router) setupMinutesRoutes(g *echo.Group) {
	minutesGroup := g.Group("/minutes")
	minutesGroup.POST("/generate", rt.minutesHandler.Generate)
	minutesGroup.GET("/latest", rt.minutesHandler.Latest)
	minutesGroup.POST("/distribute", rt.minutesHandler.Distribute)
	minutesGroup.PUT("/:id", rt.minutesHandler.Update)

	templateGroup := g.Group("/minutes-templates")
	templateGroup.GET("", rt.minutesHandler.ListTemplates)
	templateGroup.POST("", rt.minutesHandler.CreateTemplate)
	templateGroup.GET("/:id", rt.minutesHandler.GetTemplate)
	templateGroup.PUT("/:id", rt.minutesHandler.UpdateTemplate)
	templateGroup.DELETE("/:id", rt.minutesHandler.DeleteTemplate)
}

// setupKnowledgeRoutes configures Knowledge Hub, marketing and assistant routes
func (rt *Router) setupKnowledgeRoutes(g *echo.Group) {
	knowledgeGroup := g.Group("/knowledge")
	knowledgeGroup.GET("", rt.knowledgeHandler.List)
	knowledgeGroup.POST("/search", rt.knowledgeHandler.Search)
	knowledgeGroup.POST("/upload", rt.knowledgeHandler.Upload)
	knowledgeGroup.DELETE("/:id", rt.knowledgeHandler.Delete)

	g.POST("/marketing/join", rt.knowledgeHandler.Join)
	g.POST("/assistant/chat", rt.knowledgeHandler.Ask)
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status": "ok",
	})
}
