package repository

import (
	"context"
	"net/url"

	apperrors "github.com/johnquangdev/meetmate/errors"
	"github.com/johnquangdev/meetmate/internal/adapter/dto/common"
	"github.com/johnquangdev/meetmate/internal/adapter/dto/meeting"
	"github.com/johnquangdev/meetmate/internal/domain/entities"
	"github.com/johnquangdev/meetmate/internal/domain/repositories"
)

// ItemRepository handles extracted meeting artifacts over HTTP
type ItemRepository struct {
	api API
}

// NewItemRepository creates a new item repository
func NewItemRepository(api API) *ItemRepository {
	return &ItemRepository{api: api}
}

var _ repositories.ItemRepository = (*ItemRepository)(nil)

func listItems[T any](ctx context.Context, api API, resource, meetingID string) ([]T, error) {
	if err := requireID("meeting", meetingID); err != nil {
		return nil, err
	}
	var resp common.ListResponse[T]
	if err := api.Get(ctx, "/"+resource, url.Values{"meeting_id": {meetingID}}, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// ListActions retrieves the action items of a meeting
func (r *ItemRepository) ListActions(ctx context.Context, meetingID string) ([]entities.ActionItem, error) {
	return listItems[entities.ActionItem](ctx, r.api, "actions", meetingID)
}

// ListDecisions retrieves the decisions of a meeting
func (r *ItemRepository) ListDecisions(ctx context.Context, meetingID string) ([]entities.DecisionItem, error) {
	return listItems[entities.DecisionItem](ctx, r.api, "decisions", meetingID)
}

// ListRisks retrieves the risks of a meeting
func (r *ItemRepository) ListRisks(ctx context.Context, meetingID string) ([]entities.RiskItem, error) {
	return listItems[entities.RiskItem](ctx, r.api, "risks", meetingID)
}

// UpdateAction patches an action item
func (r *ItemRepository) UpdateAction(ctx context.Context, id string, req meeting.UpdateActionRequest) (*entities.ActionItem, error) {
	if err := requireID("action item", id); err != nil {
		return nil, err
	}
	if req.Empty() {
		return nil, apperrors.ErrInvalidArgument("nothing to update")
	}
	if err := validate(&req); err != nil {
		return nil, err
	}
	var item entities.ActionItem
	if err := r.api.Patch(ctx, path("/actions/%s", id), req, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// SyncAction pushes an action item to an external task system
func (r *ItemRepository) SyncAction(ctx context.Context, id string, target entities.SyncTarget) (*entities.TaskSyncResult, error) {
	if err := requireID("action item", id); err != nil {
		return nil, err
	}
	req := meeting.SyncActionRequest{Target: target}
	if err := validate(&req); err != nil {
		return nil, err
	}
	var resp meeting.SyncActionResponse
	if err := r.api.Post(ctx, path("/actions/%s/sync", id), req, &resp); err != nil {
		return nil, err
	}
	res := resp.Result()
	return &res, nil
}
