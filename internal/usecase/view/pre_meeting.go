package view

import (
	"context"

	"github.com/johnquangdev/meetmate/internal/adapter/dto/knowledge"
	"github.com/johnquangdev/meetmate/internal/adapter/dto/meeting"
	"github.com/johnquangdev/meetmate/internal/domain/entities"
	"github.com/johnquangdev/meetmate/internal/usecase/fallback"
	"github.com/johnquangdev/meetmate/internal/usecase/phase"
)

const agendaResults = 5

// PreMeetingState is a snapshot of the pre-meeting tab
type PreMeetingState struct {
	Meeting      *entities.Meeting                       `json:"meeting" yaml:"meeting"`
	Participants Group[[]entities.Participant]           `json:"participants" yaml:"participants"`
	Agenda       Group[[]entities.KnowledgeSearchResult] `json:"agenda" yaml:"agenda"`
	Templates    Group[[]entities.MinutesTemplate]       `json:"templates" yaml:"templates"`
}

// PreMeeting prepares a meeting: who attends, related documents, templates
type PreMeeting struct {
	base
	deps    Deps
	chat    tabContext
	onPhase PhaseChangeFunc
	state   PreMeetingState
}

var _ Tab = (*PreMeeting)(nil)

// NewPreMeeting creates the pre-meeting tab for m
func NewPreMeeting(deps Deps, m *entities.Meeting, onPhase PhaseChangeFunc) *PreMeeting {
	return &PreMeeting{
		base:    newBase("pre_meeting", deps.Fallback, deps.logger()),
		deps:    deps,
		chat:    newTabContext(deps.Context, entities.PhasePre),
		onPhase: onPhase,
		state:   PreMeetingState{Meeting: copyMeeting(m)},
	}
}

// Phase returns the phase this tab renders
func (v *PreMeeting) Phase() entities.Phase {
	return entities.PhasePre
}

// Panels lists the sections of the tab
func (v *PreMeeting) Panels() []Panel {
	return []Panel{PanelParticipants, PanelAgenda, PanelTemplates, PanelStart}
}

// Mount sets the chat context and loads every group
func (v *PreMeeting) Mount(ctx context.Context) error {
	v.begin(ctx)
	v.chat.set(v.state.Meeting, entities.PhasePre)
	return v.Refresh(ctx)
}

// Unmount cancels pending fetches and releases the chat context
func (v *PreMeeting) Unmount() {
	if v.end() {
		v.chat.clear()
	}
}

// SetMeeting replaces the meeting the tab acts on
func (v *PreMeeting) SetMeeting(m *entities.Meeting) {
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
func (v *PreMeeting) State() PreMeetingState {
	v.mu.Lock()
	defer v.mu.Unlock()
	s := v.state
	s.Meeting = copyMeeting(v.state.Meeting)
	return s
}

// Refresh refetches every group in parallel
func (v *PreMeeting) Refresh(ctx context.Context) error {
	m := v.meeting()
	return v.run(ctx,
		fetch(&v.base, "participants", &v.state.Participants, func(ctx context.Context) ([]entities.Participant, error) {
			return v.deps.Participants.List(ctx, m.ID)
		}, fallback.Participants),
		fetch(&v.base, "agenda", &v.state.Agenda, func(ctx context.Context) ([]entities.KnowledgeSearchResult, error) {
			if m.Title == "" {
				return nil, nil
			}
			return v.deps.Knowledge.Search(ctx, knowledge.SearchRequest{Query: m.Title, Limit: agendaResults})
		}, nil),
		fetch(&v.base, "templates", &v.state.Templates, v.deps.Templates.List, nil),
	)
}

// AddParticipant adds someone to the meeting and refreshes
func (v *PreMeeting) AddParticipant(ctx context.Context, req meeting.AddParticipantRequest) error {
	m := v.meeting()
	return v.mutate(ctx, "participant.add", func(ctx context.Context) error {
		_, err := v.deps.Participants.Add(ctx, m.ID, req)
		return err
	}, v.Refresh)
}

// RemoveParticipant removes someone from the meeting and refreshes
func (v *PreMeeting) RemoveParticipant(ctx context.Context, userID string) error {
	m := v.meeting()
	return v.mutate(ctx, "participant.remove", func(ctx context.Context) error {
		return v.deps.Participants.Remove(ctx, m.ID, userID)
	}, v.Refresh)
}

// StartMeeting moves the meeting to the in phase. When a request was sent the
// detail view is told to switch tabs.
func (v *PreMeeting) StartMeeting(ctx context.Context) (*phase.Result, error) {
	return changePhase(ctx, &v.base, v.meeting(), v.deps.Phase.StartMeeting, v.onPhase)
}

func (v *PreMeeting) meeting() *entities.Meeting {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.state.Meeting == nil {
		return &entities.Meeting{}
	}
	return copyMeeting(v.state.Meeting)
}

// changePhase runs a phase action within b's lifetime
func changePhase(
	ctx context.Context,
	b *base,
	m *entities.Meeting,
	action func(context.Context, *entities.Meeting) (*phase.Result, error),
	onPhase PhaseChangeFunc,
) (*phase.Result, error) {
	b.mu.Lock()
	reqCtx, _, done, err := b.scope(ctx)
	b.mu.Unlock()
	if err != nil {
		return nil, err
	}
	res, err := action(reqCtx, m)
	done()
	if res != nil && res.Changed && onPhase != nil {
		onPhase(ctx, res.Meeting)
	}
	return res, err
}
