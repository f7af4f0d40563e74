package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meetmate/internal/adapter/dto/common"
	"github.com/johnquangdev/meetmate/internal/adapter/dto/knowledge"
	"github.com/johnquangdev/meetmate/internal/domain/entities"
)

const maxUploadBytes = 20 << 20

// KnowledgeStore is what the Knowledge Hub, waitlist and assistant need
type KnowledgeStore interface {
	ListDocuments(filter knowledge.ListDocumentsRequest) ([]entities.KnowledgeDocument, int)
	SearchDocuments(req knowledge.SearchRequest) []entities.KnowledgeSearchResult
	UploadDocument(req knowledge.UploadRequest, fileName string) entities.KnowledgeDocument
	DeleteDocument(id string) error
	JoinWaitlist(req common.JoinWaitlistRequest) error
	Ask(req common.AskRequest) (entities.AssistantAnswer, error)
}

// Knowledge handles Knowledge Hub, marketing and assistant requests
type Knowledge struct {
	store  KnowledgeStore
	logger *zap.Logger
}

// NewKnowledgeHandler creates a new knowledge handler
func NewKnowledgeHandler(store KnowledgeStore, logger *zap.Logger) *Knowledge {
	return &Knowledge{store: store, logger: logger}
}

// List handles GET /knowledge
func (h *Knowledge) List(c echo.Context) error {
	var req knowledge.ListDocumentsRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	items, total := h.store.ListDocuments(req)
	return list(c, items, total)
}

// Search handles POST /knowledge/search
func (h *Knowledge) Search(c echo.Context) error {
	var req knowledge.SearchRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	results := h.store.SearchDocuments(req)
	if results == nil {
		results = []entities.KnowledgeSearchResult{}
	}
	return c.JSON(http.StatusOK, knowledge.SearchResponse{Query: req.Query, Results: results})
}

// Upload handles POST /knowledge/upload
func (h *Knowledge) Upload(c echo.Context) error {
	file, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "file: field required")
	}
	if file.Size > maxUploadBytes {
		return echo.NewHTTPError(http.StatusRequestEntityTooLarge, "File too large")
	}

	req := knowledge.UploadRequest{
		Title:        c.FormValue("title"),
		Description:  c.FormValue("description"),
		Source:       c.FormValue("source"),
		Category:     c.FormValue("category"),
		DocumentType: c.FormValue("document_type"),
		Tags:         splitTags(c.FormValue("tags")),
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	doc := h.store.UploadDocument(req, file.Filename)
	h.logger.Info("knowledge.uploaded",
		zap.String("document_id", doc.ID),
		zap.String("file_name", file.Filename),
		zap.Int64("size", file.Size),
	)
	return c.JSON(http.StatusCreated, doc)
}

// Delete handles DELETE /knowledge/:id
func (h *Knowledge) Delete(c echo.Context) error {
	if err := h.store.DeleteDocument(c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Join handles POST /marketing/join; it is served without authentication
func (h *Knowledge) Join(c echo.Context) error {
	var req common.JoinWaitlistRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := h.store.JoinWaitlist(req); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, common.MessageResponse{Message: "You are on the list"})
}

// Ask handles POST /assistant/chat
func (h *Knowledge) Ask(c echo.Context) error {
	var req common.AskRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if req.Scope == entities.ScopeMeeting && req.MeetingID == "" {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "meeting_id is required for the meeting scope")
	}
	ans, err := h.store.Ask(req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ans)
}

func splitTags(raw string) []string {
	var tags []string
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
