package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meetmate/internal/adapter/dto/meeting"
	"github.com/johnquangdev/meetmate/internal/domain/entities"
)

// ItemStore is what the extracted item endpoints need from the backend store
type ItemStore interface {
	ListActions(meetingID string) ([]entities.ActionItem, error)
	ListDecisions(meetingID string) ([]entities.DecisionItem, error)
	ListRisks(meetingID string) ([]entities.RiskItem, error)
	UpdateAction(id string, req meeting.UpdateActionRequest) (entities.ActionItem, error)
	SyncAction(id string, target entities.SyncTarget) (entities.TaskSyncResult, error)
}

// Item handles action, decision and risk requests
type Item struct {
	store  ItemStore
	logger *zap.Logger
}

// NewItemHandler creates a new item handler
func NewItemHandler(store ItemStore, logger *zap.Logger) *Item {
	return &Item{store: store, logger: logger}
}

type byMeeting struct {
	MeetingID string `query:"meeting_id" json:"meeting_id" validate:"required"`
}

// listItems serves the three item lists, which differ only in their loader
func listItems[T any](c echo.Context, load func(meetingID string) ([]T, error)) error {
	var req byMeeting
	if err := bind(c, &req); err != nil {
		return err
	}
	items, err := load(req.MeetingID)
	if err != nil {
		return err
	}
	return list(c, items, len(items))
}

// ListActions handles GET /actions?meeting_id=
func (h *Item) ListActions(c echo.Context) error {
	return listItems(c, h.store.ListActions)
}

// ListDecisions handles GET /decisions?meeting_id=
func (h *Item) ListDecisions(c echo.Context) error {
	return listItems(c, h.store.ListDecisions)
}

// ListRisks handles GET /risks?meeting_id=
func (h *Item) ListRisks(c echo.Context) error {
	return listItems(c, h.store.ListRisks)
}

// UpdateAction handles PATCH /actions/:id
func (h *Item) UpdateAction(c echo.Context) error {
	var req meeting.UpdateActionRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if req.Empty() {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "nothing to update")
	}
	a, err := h.store.UpdateAction(c.Param("id"), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, a)
}

// SyncAction handles POST /actions/:id/sync
func (h *Item) SyncAction(c echo.Context) error {
	var req meeting.SyncActionRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	res, err := h.store.SyncAction(c.Param("id"), req.Target)
	if err != nil {
		return err
	}
	h.logger.Info("action.synced",
		zap.String("item_id", res.ItemID),
		zap.String("target", string(res.Target)),
		zap.String("external_id", res.ExternalID),
	)
	return c.JSON(http.StatusOK, res)
}
