package repository

import (
	"context"
	"net/url"

	"github.com/johnquangdev/meetmate/internal/adapter/dto/common"
	"github.com/johnquangdev/meetmate/internal/adapter/dto/meeting"
	"github.com/johnquangdev/meetmate/internal/domain/entities"
	"github.com/johnquangdev/meetmate/internal/domain/repositories"
)

// MeetingRepository reads and mutates meetings over HTTP
type MeetingRepository struct {
	api API
}

// NewMeetingRepository creates a new meeting repository
func NewMeetingRepository(api API) *MeetingRepository {
	return &MeetingRepository{api: api}
}

var _ repositories.MeetingRepository = (*MeetingRepository)(nil)

// List retrieves meetings with filters
func (r *MeetingRepository) List(ctx context.Context, filter meeting.ListMeetingsRequest) ([]entities.Meeting, int, error) {
	if err := validate(&filter); err != nil {
		return nil, 0, err
	}
	q := url.Values{}
	if filter.Phase != "" {
		q.Set("phase", string(filter.Phase))
	}
	if filter.ProjectID != "" {
		q.Set("project_id", filter.ProjectID)
	}
	if filter.Search != "" {
		q.Set("search", filter.Search)
	}
	paging(q, filter.Skip, filter.Limit)

	var resp common.ListResponse[entities.Meeting]
	if err := r.api.Get(ctx, "/meetings", q, &resp); err != nil {
		return nil, 0, err
	}
	return resp.Items, resp.Total, nil
}

// Get retrieves a meeting by ID
func (r *MeetingRepository) Get(ctx context.Context, id string) (*entities.Meeting, error) {
	if err := requireID("meeting", id); err != nil {
		return nil, err
	}
	var m entities.Meeting
	if err := r.api.Get(ctx, path("/meetings/%s", id), nil, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// Create creates a meeting; an empty meeting type becomes the default
func (r *MeetingRepository) Create(ctx context.Context, req meeting.CreateMeetingRequest) (*entities.Meeting, error) {
	if req.MeetingType == "" {
		req.MeetingType = entities.DefaultMeetingType
	}
	if err := validate(&req); err != nil {
		return nil, err
	}
	var m entities.Meeting
	if err := r.api.Post(ctx, "/meetings", req, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// UpdatePhase moves a meeting to another phase
func (r *MeetingRepository) UpdatePhase(ctx context.Context, id string, phase entities.Phase) (*entities.Meeting, error) {
	if err := requireID("meeting", id); err != nil {
		return nil, err
	}
	req := meeting.UpdatePhaseRequest{Phase: phase}
	if err := validate(&req); err != nil {
		return nil, err
	}
	var m entities.Meeting
	if err := r.api.Put(ctx, path("/meetings/%s/phase", id), req, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// ParticipantRepository manages meeting membership over HTTP
type ParticipantRepository struct {
	api API
}

// NewParticipantRepository creates a new participant repository
func NewParticipantRepository(api API) *ParticipantRepository {
	return &ParticipantRepository{api: api}
}

var _ repositories.ParticipantRepository = (*ParticipantRepository)(nil)

// List retrieves the participants of a meeting
func (r *ParticipantRepository) List(ctx context.Context, meetingID string) ([]entities.Participant, error) {
	if err := requireID("meeting", meetingID); err != nil {
		return nil, err
	}
	var resp common.ListResponse[entities.Participant]
	if err := r.api.Get(ctx, path("/meetings/%s/participants", meetingID), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// Add adds a participant to a meeting
func (r *ParticipantRepository) Add(ctx context.Context, meetingID string, req meeting.AddParticipantRequest) (*entities.Participant, error) {
	if err := requireID("meeting", meetingID); err != nil {
		return nil, err
	}
	if req.Role == "" {
		req.Role = entities.ParticipantRoleAttendee
	}
	if err := validate(&req); err != nil {
		return nil, err
	}
	var p entities.Participant
	if err := r.api.Post(ctx, path("/meetings/%s/participants", meetingID), req, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Remove removes a participant from a meeting
func (r *ParticipantRepository) Remove(ctx context.Context, meetingID, userID string) error {
	if err := requireID("meeting", meetingID); err != nil {
		return err
	}
	if err := requireID("participant", userID); err != nil {
		return err
	}
	return r.api.Delete(ctx, path("/meetings/%s/participants/%s", meetingID, userID), nil)
}
