package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meetmate/internal/adapter/dto/minutes"
	"github.com/johnquangdev/meetmate/internal/domain/entities"
)

// MinutesStore is what the minutes and template endpoints need
type MinutesStore interface {
	GenerateMinutes(req minutes.GenerateMinutesRequest) (entities.MeetingMinutes, error)
	LatestMinutes(meetingID string) (entities.MeetingMinutes, error)
	UpdateMinutes(id string, req minutes.UpdateMinutesRequest) (entities.MeetingMinutes, error)
	Distribute(req minutes.DistributeRequest) ([]entities.DistributionResult, error)

	ListTemplates() []entities.MinutesTemplate
	GetTemplate(id string) (entities.MinutesTemplate, error)
	CreateTemplate(req minutes.TemplateRequest) entities.MinutesTemplate
	UpdateTemplate(id string, req minutes.TemplateRequest) (entities.MinutesTemplate, error)
	DeleteTemplate(id string) error
}

// Minutes handles minutes generation, approval and distribution
type Minutes struct {
	store  MinutesStore
	logger *zap.Logger
}

// NewMinutesHandler creates a new minutes handler
func NewMinutesHandler(store MinutesStore, logger *zap.Logger) *Minutes {
	return &Minutes{store: store, logger: logger}
}

// Generate handles POST /minutes/generate
func (h *Minutes) Generate(c echo.Context) error {
	var req minutes.GenerateMinutesRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	m, err := h.store.GenerateMinutes(req)
	if err != nil {
		return err
	}
	h.logger.Info("minutes.generated",
		zap.String("meeting_id", m.MeetingID),
		zap.String("minutes_id", m.ID),
		zap.Int("version", m.Version),
	)
	return c.JSON(http.StatusCreated, m)
}

// Latest handles GET /minutes/latest?meeting_id=
func (h *Minutes) Latest(c echo.Context) error {
	var req byMeeting
	if err := bind(c, &req); err != nil {
		return err
	}
	m, err := h.store.LatestMinutes(req.MeetingID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, m)
}

// Update handles PUT /minutes/:id
func (h *Minutes) Update(c echo.Context) error {
	var req minutes.UpdateMinutesRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	m, err := h.store.UpdateMinutes(c.Param("id"), req)
	if err != nil {
		return err
	}
	if req.Status != nil {
		h.logger.Info("minutes.status.updated", zap.String("minutes_id", m.ID), zap.String("status", string(m.Status)))
	}
	return c.JSON(http.StatusOK, m)
}

// Distribute handles POST /minutes/distribute
func (h *Minutes) Distribute(c echo.Context) error {
	var req minutes.DistributeRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	results, err := h.store.Distribute(req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, minutes.DistributeResponse{Results: results})
}

// ListTemplates handles GET /minutes-templates
func (h *Minutes) ListTemplates(c echo.Context) error {
	items := h.store.ListTemplates()
	return list(c, items, len(items))
}

// GetTemplate handles GET /minutes-templates/:id
func (h *Minutes) GetTemplate(c echo.Context) error {
	t, err := h.store.GetTemplate(c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, t)
}

// CreateTemplate handles POST /minutes-templates
func (h *Minutes) CreateTemplate(c echo.Context) error {
	var req minutes.TemplateRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, h.store.CreateTemplate(req))
}

// UpdateTemplate handles PUT /minutes-templates/:id
func (h *Minutes) UpdateTemplate(c echo.Context) error {
	var req minutes.TemplateRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	t, err := h.store.UpdateTemplate(c.Param("id"), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, t)
}

// DeleteTemplate handles DELETE /minutes-templates/:id
func (h *Minutes) DeleteTemplate(c echo.Context) error {
	if err := h.store.DeleteTemplate(c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
