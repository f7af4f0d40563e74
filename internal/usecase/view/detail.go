package view

import (
	"context"
	"sync"

	"go.uber.org/zap"

	apperrors "github.com/johnquangdev/meetmate/errors"
	"github.com/johnquangdev/meetmate/internal/domain/entities"
	usecaseErrors "github.com/johnquangdev/meetmate/internal/usecase/errors"
)

// DetailState is a snapshot of the meeting detail view
type DetailState struct {
	Meeting   Group[*entities.Meeting] `json:"meeting" yaml:"meeting"`
	ActiveTab entities.Phase           `json:"active_tab" yaml:"active_tab"`
	Panels    []Panel                  `json:"panels" yaml:"panels"`
}

// Detail is the meeting detail view. The active tab is seeded from the
// meeting phase on every mount; selecting another tab never changes the
// phase.
type Detail struct {
	base
	deps      Deps
	meetingID string
	state     DetailState

	// tabMu serialises tab switches
	tabMu sync.Mutex
	tab   Tab
}

// NewDetail creates the detail view for a meeting
func NewDetail(deps Deps, meetingID string) *Detail {
	return &Detail{
		base:      newBase("detail", deps.Fallback, deps.logger()),
		deps:      deps,
		meetingID: meetingID,
	}
}

// Mount loads the meeting and mounts the tab matching its phase
func (v *Detail) Mount(ctx context.Context) error {
	if v.meetingID == "" {
		return apperrors.ErrMissingID("meeting")
	}
	v.begin(ctx)
	if err := v.loadMeeting(ctx); err != nil {
		return err
	}

	v.mu.Lock()
	m := copyMeeting(v.state.Meeting.Data)
	v.mu.Unlock()
	return v.switchTab(ctx, m.Phase, m)
}

// Unmount releases the active tab and cancels pending work
func (v *Detail) Unmount() {
	v.tabMu.Lock()
	if v.tab != nil {
		v.tab.Unmount()
		v.tab = nil
	}
	v.tabMu.Unlock()
	v.end()
}

// Refresh refetches the meeting and the active tab. When the phase moved
// since the last load the tab for the new phase is mounted; otherwise the
// active tab gets the refreshed meeting so its phase guards stay current.
func (v *Detail) Refresh(ctx context.Context) error {
	v.mu.Lock()
	var before entities.Phase
	if v.state.Meeting.Data != nil {
		before = v.state.Meeting.Data.Phase
	}
	v.mu.Unlock()

	if err := v.loadMeeting(ctx); err != nil {
		return err
	}
	v.mu.Lock()
	m := copyMeeting(v.state.Meeting.Data)
	v.mu.Unlock()

	if before != "" && before != m.Phase {
		v.logger.Info("view.phase.remote",
			zap.String("meeting_id", v.meetingID),
			zap.String("from", string(before)),
			zap.String("to", string(m.Phase)),
		)
		return v.switchTab(ctx, m.Phase, m)
	}

	v.tabMu.Lock()
	tab := v.tab
	v.tabMu.Unlock()
	if tab == nil {
		return nil
	}
	tab.SetMeeting(m)
	return tab.Refresh(ctx)
}

// SelectTab shows another phase tab without touching the meeting phase
func (v *Detail) SelectTab(ctx context.Context, p entities.Phase) error {
	if !p.Valid() {
		return apperrors.ErrInvalidArgument("unknown tab " + string(p))
	}
	if !v.IsMounted() {
		return usecaseErrors.ErrNotMounted
	}
	v.mu.Lock()
	m := copyMeeting(v.state.Meeting.Data)
	v.mu.Unlock()
	return v.switchTab(ctx, p, m)
}

// Tab returns the active tab controller
func (v *Detail) Tab() Tab {
	v.tabMu.Lock()
	defer v.tabMu.Unlock()
	return v.tab
}

// State returns a snapshot of the view
func (v *Detail) State() DetailState {
	v.mu.Lock()
	defer v.mu.Unlock()
	s := v.state
	s.Meeting.Data = copyMeeting(v.state.Meeting.Data)
	s.Panels = append([]Panel(nil), v.state.Panels...)
	return s
}

func (v *Detail) loadMeeting(ctx context.Context) error {
	err := v.run(ctx, fetch(&v.base, "meeting", &v.state.Meeting, func(ctx context.Context) (*entities.Meeting, error) {
		return v.deps.liveMeetings().Get(ctx, v.meetingID)
	}, nil))
	if err != nil {
		return err
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.state.Meeting.Err != nil {
		return v.state.Meeting.Err
	}
	if v.state.Meeting.Data == nil {
		return usecaseErrors.ErrNoMeeting
	}
	return nil
}

// phaseChanged follows a tab action that moved the meeting to a new phase
func (v *Detail) phaseChanged(ctx context.Context, m *entities.Meeting) {
	v.mu.Lock()
	if !v.mounted {
		v.mu.Unlock()
		return
	}
	v.state.Meeting.Data = copyMeeting(m)
	v.mu.Unlock()

	if err := v.switchTab(ctx, m.Phase, m); err != nil {
		v.logger.Warn("view.tab.error", zap.String("phase", string(m.Phase)), zap.Error(err))
	}
}

func (v *Detail) switchTab(ctx context.Context, p entities.Phase, m *entities.Meeting) error {
	v.tabMu.Lock()
	defer v.tabMu.Unlock()

	if v.tab != nil {
		v.tab.Unmount()
	}
	tab := NewTab(p, v.deps, m, v.phaseChanged)
	v.tab = tab

	v.mu.Lock()
	v.state.ActiveTab = p
	v.state.Panels = tab.Panels()
	v.mu.Unlock()

	v.logger.Debug("view.tab", zap.String("meeting_id", v.meetingID), zap.String("phase", string(p)))
	return tab.Mount(ctx)
}
