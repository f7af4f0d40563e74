package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meetmate/internal/adapter/dto/common"
	"github.com/johnquangdev/meetmate/internal/adapter/dto/meeting"
	"github.com/johnquangdev/meetmate/internal/domain/entities"
)

// MeetingStore is what the meeting endpoints need from the backend store
type MeetingStore interface {
	ListMeetings(filter meeting.ListMeetingsRequest) ([]entities.Meeting, int)
	GetMeeting(id string) (entities.Meeting, error)
	CreateMeeting(req meeting.CreateMeetingRequest) (entities.Meeting, error)
	UpdatePhase(id string, target entities.Phase) (entities.Meeting, error)
	ListParticipants(meetingID string) ([]entities.Participant, error)
	AddParticipant(meetingID string, req meeting.AddParticipantRequest) (entities.Participant, error)
	RemoveParticipant(meetingID, userID string) error
	ListChunks(meetingID string) ([]entities.TranscriptChunk, error)
	IngestChunks(meetingID string, chunks []meeting.IngestChunk) ([]entities.TranscriptChunk, error)
}

// Meeting handles meeting, participant and transcript requests
type Meeting struct {
	store  MeetingStore
	logger *zap.Logger
}

// NewMeetingHandler creates a new meeting handler
func NewMeetingHandler(store MeetingStore, logger *zap.Logger) *Meeting {
	return &Meeting{store: store, logger: logger}
}

// ListMeetings handles GET /meetings
func (h *Meeting) ListMeetings(c echo.Context) error {
	var req meeting.ListMeetingsRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	items, total := h.store.ListMeetings(req)
	return list(c, items, total)
}

// CreateMeeting handles POST /meetings
func (h *Meeting) CreateMeeting(c echo.Context) error {
	var req meeting.CreateMeetingRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	m, err := h.store.CreateMeeting(req)
	if err != nil {
		return err
	}
	h.logger.Info("meeting.created", zap.String("meeting_id", m.ID), zap.String("title", m.Title))
	return c.JSON(http.StatusCreated, m)
}

// GetMeeting handles GET /meetings/:id
func (h *Meeting) GetMeeting(c echo.Context) error {
	m, err := h.store.GetMeeting(c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, m)
}

// UpdatePhase handles PUT /meetings/:id/phase
func (h *Meeting) UpdatePhase(c echo.Context) error {
	var req meeting.UpdatePhaseRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	m, err := h.store.UpdatePhase(c.Param("id"), req.Phase)
	if err != nil {
		return err
	}
	h.logger.Info("meeting.phase.updated", zap.String("meeting_id", m.ID), zap.String("phase", string(m.Phase)))
	return c.JSON(http.StatusOK, m)
}

// ListParticipants handles GET /meetings/:id/participants
func (h *Meeting) ListParticipants(c echo.Context) error {
	items, err := h.store.ListParticipants(c.Param("id"))
	if err != nil {
		return err
	}
	return list(c, items, len(items))
}

// AddParticipant handles POST /meetings/:id/participants
func (h *Meeting) AddParticipant(c echo.Context) error {
	var req meeting.AddParticipantRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	p, err := h.store.AddParticipant(c.Param("id"), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, p)
}

// RemoveParticipant handles DELETE /meetings/:id/participants/:user_id
func (h *Meeting) RemoveParticipant(c echo.Context) error {
	if err := h.store.RemoveParticipant(c.Param("id"), c.Param("user_id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ListChunks handles GET /transcripts/meeting/:id/chunks
func (h *Meeting) ListChunks(c echo.Context) error {
	items, err := h.store.ListChunks(c.Param("id"))
	if err != nil {
		return err
	}
	return list(c, items, len(items))
}

// IngestChunks handles POST /transcripts/:id/chunks
func (h *Meeting) IngestChunks(c echo.Context) error {
	var req meeting.IngestTranscriptRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	items, err := h.store.IngestChunks(c.Param("id"), req.Chunks)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, common.ListResponse[entities.TranscriptChunk]{Items: items, Total: len(items)})
}
