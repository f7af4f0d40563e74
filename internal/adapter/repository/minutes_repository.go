package repository

import (
	"context"
	"net/url"

	apperrors "github.com/johnquangdev/meetmate/errors"
	"github.com/johnquangdev/meetmate/internal/adapter/dto/common"
	"github.com/johnquangdev/meetmate/internal/adapter/dto/minutes"
	"github.com/johnquangdev/meetmate/internal/domain/entities"
	"github.com/johnquangdev/meetmate/internal/domain/repositories"
)

// MinutesRepository handles minutes generation and approval over HTTP
type MinutesRepository struct {
	api API
}

// NewMinutesRepository creates a new minutes repository
func NewMinutesRepository(api API) *MinutesRepository {
	return &MinutesRepository{api: api}
}

var _ repositories.MinutesRepository = (*MinutesRepository)(nil)

// Generate asks the backend for a new minutes version
func (r *MinutesRepository) Generate(ctx context.Context, req minutes.GenerateMinutesRequest) (*entities.MeetingMinutes, error) {
	if err := validate(&req); err != nil {
		return nil, err
	}
	var m entities.MeetingMinutes
	if err := r.api.Post(ctx, "/minutes/generate", req, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// Latest retrieves the newest minutes of a meeting
func (r *MinutesRepository) Latest(ctx context.Context, meetingID string) (*entities.MeetingMinutes, error) {
	if err := requireID("meeting", meetingID); err != nil {
		return nil, err
	}
	var m entities.MeetingMinutes
	if err := r.api.Get(ctx, "/minutes/latest", url.Values{"meeting_id": {meetingID}}, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// UpdateStatus changes the approval status of minutes
func (r *MinutesRepository) UpdateStatus(ctx context.Context, id string, status entities.MinutesStatus) (*entities.MeetingMinutes, error) {
	if !status.Valid() {
		return nil, apperrors.ErrInvalidArgument("unknown minutes status " + string(status))
	}
	return r.update(ctx, id, minutes.UpdateMinutesRequest{Status: &status})
}

// UpdateContent replaces the markdown body of minutes
func (r *MinutesRepository) UpdateContent(ctx context.Context, id, markdown string) (*entities.MeetingMinutes, error) {
	return r.update(ctx, id, minutes.UpdateMinutesRequest{MinutesMarkdown: &markdown})
}

func (r *MinutesRepository) update(ctx context.Context, id string, req minutes.UpdateMinutesRequest) (*entities.MeetingMinutes, error) {
	if err := requireID("minutes", id); err != nil {
		return nil, err
	}
	if err := validate(&req); err != nil {
		return nil, err
	}
	var m entities.MeetingMinutes
	if err := r.api.Put(ctx, path("/minutes/%s", id), req, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// Distribute emails minutes to recipients
func (r *MinutesRepository) Distribute(ctx context.Context, req minutes.DistributeRequest) ([]entities.DistributionResult, error) {
	if err := validate(&req); err != nil {
		return nil, err
	}
	var resp minutes.DistributeResponse
	if err := r.api.Post(ctx, "/minutes/distribute", req, &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

// TemplateRepository handles minutes templates over HTTP
type TemplateRepository struct {
	api API
}

// NewTemplateRepository creates a new template repository
func NewTemplateRepository(api API) *TemplateRepository {
	return &TemplateRepository{api: api}
}

var _ repositories.TemplateRepository = (*TemplateRepository)(nil)

// List retrieves every template
func (r *TemplateRepository) List(ctx context.Context) ([]entities.MinutesTemplate, error) {
	var resp common.ListResponse[entities.MinutesTemplate]
	if err := r.api.Get(ctx, "/minutes-templates", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// Get retrieves a template by ID
func (r *TemplateRepository) Get(ctx context.Context, id string) (*entities.MinutesTemplate, error) {
	if err := requireID("template", id); err != nil {
		return nil, err
	}
	var t entities.MinutesTemplate
	if err := r.api.Get(ctx, path("/minutes-templates/%s", id), nil, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// Create creates a template
func (r *TemplateRepository) Create(ctx context.Context, req minutes.TemplateRequest) (*entities.MinutesTemplate, error) {
	if err := validate(&req); err != nil {
		return nil, err
	}
	var t entities.MinutesTemplate
	if err := r.api.Post(ctx, "/minutes-templates", req, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// Update replaces a template
func (r *TemplateRepository) Update(ctx context.Context, id string, req minutes.TemplateRequest) (*entities.MinutesTemplate, error) {
	if err := requireID("template", id); err != nil {
		return nil, err
	}
	if err := validate(&req); err != nil {
		return nil, err
	}
	var t entities.MinutesTemplate
	if err := r.api.Put(ctx, path("/minutes-templates/%s", id), req, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// Delete removes a template
func (r *TemplateRepository) Delete(ctx context.Context, id string) error {
	if err := requireID("template", id); err != nil {
		return err
	}
	return r.api.Delete(ctx, path("/minutes-templates/%s", id), nil)
}
