package view

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/johnquangdev/meetmate/internal/domain/entities"
	"github.com/johnquangdev/meetmate/internal/domain/repositories"
	"github.com/johnquangdev/meetmate/internal/usecase/chatcontext"
	"github.com/johnquangdev/meetmate/internal/usecase/minutes"
	"github.com/johnquangdev/meetmate/internal/usecase/phase"
	"github.com/johnquangdev/meetmate/internal/usecase/tasksync"
)

// Deps are the collaborators every view draws from
type Deps struct {
	Meetings repositories.MeetingRepository
	// LiveMeetings bypasses any response cache. The detail view reads the
	// phase from it; nil means Meetings.
	LiveMeetings repositories.MeetingRepository
	Participants repositories.ParticipantRepository
	Transcripts  repositories.TranscriptRepository
	Items        repositories.ItemRepository
	Templates    repositories.TemplateRepository
	Knowledge    repositories.KnowledgeRepository

	Phase    phase.Service
	Minutes  minutes.Service
	TaskSync tasksync.Service
	Context  *chatcontext.Store

	// Fallback enables mock data for groups that support it
	Fallback bool
	Logger   *zap.Logger
}

func (d Deps) liveMeetings() repositories.MeetingRepository {
	if d.LiveMeetings == nil {
		return d.Meetings
	}
	return d.LiveMeetings
}

func (d Deps) logger() *zap.Logger {
	if d.Logger == nil {
		return zap.NewNop()
	}
	return d.Logger
}

// Panel names a section a tab renders
type Panel string

const (
	PanelParticipants Panel = "participants"
	PanelAgenda       Panel = "agenda"
	PanelTemplates    Panel = "templates"
	PanelStart        Panel = "start_meeting"
	PanelRecording    Panel = "recording_controls"
	PanelTranscript   Panel = "transcript"
	PanelActions      Panel = "actions"
	PanelDecisions    Panel = "decisions"
	PanelRisks        Panel = "risks"
	PanelEnd          Panel = "end_meeting"
	PanelStatistics   Panel = "statistics"
	PanelMinutes      Panel = "minutes"
	PanelDistribution Panel = "distribution"
	PanelTaskSync     Panel = "task_sync"
)

// Tab is the controller behind one phase tab of the meeting detail view
type Tab interface {
	Phase() entities.Phase
	Mount(ctx context.Context) error
	Unmount()
	Refresh(ctx context.Context) error
	Panels() []Panel

	// SetMeeting replaces the meeting the tab acts on
	SetMeeting(m *entities.Meeting)
}

// PhaseChangeFunc is called after a tab moved its meeting to another phase
type PhaseChangeFunc func(ctx context.Context, m *entities.Meeting)

// NewTab builds the tab controller for p
func NewTab(p entities.Phase, deps Deps, m *entities.Meeting, onPhase PhaseChangeFunc) Tab {
	switch p {
	case entities.PhaseIn:
		return NewInMeeting(deps, m, onPhase)
	case entities.PhasePost:
		return NewPostMeeting(deps, m)
	default:
		return NewPreMeeting(deps, m, onPhase)
	}
}

// tabContext is the chat context slot handling shared by the phase tabs
type tabContext struct {
	store *chatcontext.Store
	owner string
}

func newTabContext(store *chatcontext.Store, p entities.Phase) tabContext {
	return tabContext{store: store, owner: "tab:" + string(p) + ":" + uuid.NewString()}
}

func (t tabContext) set(m *entities.Meeting, p entities.Phase) {
	if t.store == nil || m == nil {
		return
	}
	t.store.Set(t.owner, entities.ChatContextOverride{
		Scope:     entities.ScopeMeeting,
		MeetingID: m.ID,
		ProjectID: m.ProjectID,
		Phase:     p,
		Title:     m.Title,
	})
}

func (t tabContext) clear() {
	if t.store != nil {
		t.store.Clear(t.owner)
	}
}

func copyMeeting(m *entities.Meeting) *entities.Meeting {
	if m == nil {
		return nil
	}
	c := *m
	return &c
}
