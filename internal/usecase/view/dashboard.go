package view

import (
	"context"

	"github.com/johnquangdev/meetmate/internal/adapter/dto/meeting"
	"github.com/johnquangdev/meetmate/internal/domain/entities"
)

// DashboardState is a snapshot of the meeting list
type DashboardState struct {
	Meetings Group[[]entities.Meeting] `json:"meetings" yaml:"meetings"`
	Total    int                       `json:"total" yaml:"total"`
}

// Buckets groups the listed meetings by phase
func (s DashboardState) Buckets() map[entities.Phase][]entities.Meeting {
	out := make(map[entities.Phase][]entities.Meeting, len(entities.Phases))
	for _, p := range entities.Phases {
		out[p] = nil
	}
	for _, m := range s.Meetings.Data {
		p := m.Phase
		if !p.Valid() {
			p = entities.PhasePre
		}
		out[p] = append(out[p], m)
	}
	return out
}

// Dashboard lists meetings bucketed by phase
type Dashboard struct {
	base
	deps   Deps
	filter meeting.ListMeetingsRequest
	state  DashboardState
}

// NewDashboard creates the dashboard view
func NewDashboard(deps Deps, filter meeting.ListMeetingsRequest) *Dashboard {
	return &Dashboard{
		base:   newBase("dashboard", deps.Fallback, deps.logger()),
		deps:   deps,
		filter: filter,
	}
}

// Mount loads the meeting list
func (v *Dashboard) Mount(ctx context.Context) error {
	v.begin(ctx)
	return v.Refresh(ctx)
}

// Unmount cancels pending fetches
func (v *Dashboard) Unmount() {
	v.end()
}

// State returns a snapshot of the view
func (v *Dashboard) State() DashboardState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

// Refresh refetches the meeting list
func (v *Dashboard) Refresh(ctx context.Context) error {
	var total int
	err := v.run(ctx, fetch(&v.base, "meetings", &v.state.Meetings, func(ctx context.Context) ([]entities.Meeting, error) {
		items, n, err := v.deps.Meetings.List(ctx, v.filter)
		total = n
		return items, err
	}, nil))

	v.mu.Lock()
	if v.state.Meetings.Err == nil && v.state.Meetings.Source == entities.SourceLive {
		v.state.Total = total
	}
	v.mu.Unlock()
	return err
}

// CreateMeeting creates a meeting and refetches the list. An empty meeting
// type is replaced by the default; the backend starts every meeting in pre.
func (v *Dashboard) CreateMeeting(ctx context.Context, req meeting.CreateMeetingRequest) (*entities.Meeting, error) {
	var created *entities.Meeting
	err := v.mutate(ctx, "meeting.create", func(ctx context.Context) error {
		var err error
		created, err = v.deps.Meetings.Create(ctx, req)
		return err
	}, v.Refresh)
	return created, err
}
