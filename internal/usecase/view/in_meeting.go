package view

import (
	"context"

	"github.com/johnquangdev/meetmate/internal/adapter/dto/meeting"
	"github.com/johnquangdev/meetmate/internal/domain/entities"
	"github.com/johnquangdev/meetmate/internal/usecase/phase"
)

// InMeetingState is a snapshot of the live meeting tab
type InMeetingState struct {
	Meeting    *entities.Meeting                 `json:"meeting" yaml:"meeting"`
	Transcript Group[[]entities.TranscriptChunk] `json:"transcript" yaml:"transcript"`
	Actions    Group[[]entities.ActionItem]      `json:"actions" yaml:"actions"`
	Decisions  Group[[]entities.DecisionItem]    `json:"decisions" yaml:"decisions"`
	Risks      Group[[]entities.RiskItem]        `json:"risks" yaml:"risks"`
}

// InMeeting follows a running meeting: transcript and extracted items
type InMeeting struct {
	base
	deps    Deps
	chat    tabContext
	onPhase PhaseChangeFunc
	state   InMeetingState
}

var _ Tab = (*InMeeting)(nil)

// NewInMeeting creates the live meeting tab for m
func NewInMeeting(deps Deps, m *entities.Meeting, onPhase PhaseChangeFunc) *InMeeting {
	return &InMeeting{
		base:    newBase("in_meeting", deps.Fallback, deps.logger()),
		deps:    deps,
		chat:    newTabContext(deps.Context, entities.PhaseIn),
		onPhase: onPhase,
		state:   InMeetingState{Meeting: copyMeeting(m)},
	}
}

// Phase returns the phase this tab renders
func (v *InMeeting) Phase() entities.Phase {
	return entities.PhaseIn
}

// Panels lists the sections of the tab
func (v *InMeeting) Panels() []Panel {
	return []Panel{PanelRecording, PanelTranscript, PanelActions, PanelDecisions, PanelRisks, PanelEnd}
}

// Mount sets the chat context and loads every group
func (v *InMeeting) Mount(ctx context.Context) error {
	v.begin(ctx)
	v.chat.set(v.state.Meeting, entities.PhaseIn)
	return v.Refresh(ctx)
}

// Unmount cancels pending fetches and releases the chat context
func (v *InMeeting) Unmount() {
	if v.end() {
		v.chat.clear()
	}
}

// SetMeeting replaces the meeting the tab acts on
func (v *InMeeting) SetMeeting(m *entities.Meeting) {
	if m == nil {
		return
	}
	v.mu.Lock()
	v.state.Meeting = copyMeeting(m)
	mounted := v.mounted
	v.mu.Unlock()
	if mounted {
		v.chat.set(m, v.Phase())
	}
}

// State returns a snapshot of the tab
func (v *InMeeting) State() InMeetingState {
	v.mu.Lock()
	defer v.mu.Unlock()
	s := v.state
	s.Meeting = copyMeeting(v.state.Meeting)
	return s
}

// Refresh refetches every group in parallel
func (v *InMeeting) Refresh(ctx context.Context) error {
	id := v.meetingID()
	return v.run(ctx,
		fetch(&v.base, "transcript", &v.state.Transcript, func(ctx context.Context) ([]entities.TranscriptChunk, error) {
			return v.deps.Transcripts.ListChunks(ctx, id)
		}, nil),
		fetch(&v.base, "actions", &v.state.Actions, func(ctx context.Context) ([]entities.ActionItem, error) {
			return v.deps.Items.ListActions(ctx, id)
		}, nil),
		fetch(&v.base, "decisions", &v.state.Decisions, func(ctx context.Context) ([]entities.DecisionItem, error) {
			return v.deps.Items.ListDecisions(ctx, id)
		}, nil),
		fetch(&v.base, "risks", &v.state.Risks, func(ctx context.Context) ([]entities.RiskItem, error) {
			return v.deps.Items.ListRisks(ctx, id)
		}, nil),
	)
}

// IngestChunks pushes transcript segments by hand and refreshes
func (v *InMeeting) IngestChunks(ctx context.Context, chunks ...meeting.IngestChunk) error {
	id := v.meetingID()
	return v.mutate(ctx, "transcript.ingest", func(ctx context.Context) error {
		_, err := v.deps.Transcripts.Ingest(ctx, id, meeting.IngestTranscriptRequest{Chunks: chunks})
		return err
	}, v.Refresh)
}

// EndMeeting moves the meeting to the post phase
func (v *InMeeting) EndMeeting(ctx context.Context) (*phase.Result, error) {
	v.mu.Lock()
	m := copyMeeting(v.state.Meeting)
	v.mu.Unlock()
	if m == nil {
		m = &entities.Meeting{}
	}
	return changePhase(ctx, &v.base, m, v.deps.Phase.EndMeeting, v.onPhase)
}

func (v *InMeeting) meetingID() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.state.Meeting == nil {
		return ""
	}
	return v.state.Meeting.ID
}
