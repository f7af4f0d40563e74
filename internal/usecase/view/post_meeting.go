package view

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	apperrors "github.com/johnquangdev/meetmate/errors"
	"github.com/johnquangdev/meetmate/internal/adapter/dto/meeting"
	"github.com/johnquangdev/meetmate/internal/domain/entities"
	usecaseErrors "github.com/johnquangdev/meetmate/internal/usecase/errors"
	"github.com/johnquangdev/meetmate/internal/usecase/fallback"
	"github.com/johnquangdev/meetmate/internal/usecase/minutes"
	"github.com/johnquangdev/meetmate/internal/usecase/tasksync"
)

// PostMeetingState is a snapshot of the post-meeting tab
type PostMeetingState struct {
	Meeting      *entities.Meeting                 `json:"meeting" yaml:"meeting"`
	Minutes      Group[*entities.MeetingMinutes]   `json:"minutes" yaml:"minutes"`
	Transcript   Group[[]entities.TranscriptChunk] `json:"transcript" yaml:"transcript"`
	Actions      Group[[]entities.ActionItem]      `json:"actions" yaml:"actions"`
	Decisions    Group[[]entities.DecisionItem]    `json:"decisions" yaml:"decisions"`
	Risks        Group[[]entities.RiskItem]        `json:"risks" yaml:"risks"`
	Participants Group[[]entities.Participant]     `json:"participants" yaml:"participants"`

	// Outcomes of the last distribution and task sync, if any
	Distribution []entities.DistributionResult `json:"distribution,omitempty" yaml:"distribution,omitempty"`
	SyncReport   *tasksync.Report              `json:"sync_report,omitempty" yaml:"sync_report,omitempty"`
}

// Statistics derives the numbers shown on the statistics panel
func (s PostMeetingState) Statistics() Statistics {
	return ComputeStatistics(s.Transcript.Data, s.Actions.Data, s.Decisions.Data, s.Risks.Data, s.Participants.Data)
}

// Statistics summarises a finished meeting
type Statistics struct {
	TranscriptChunks int      `json:"transcript_chunks" yaml:"transcript_chunks"`
	Speakers         []string `json:"speakers" yaml:"speakers"`
	DurationSeconds  float64  `json:"duration_seconds" yaml:"duration_seconds"`
	Participants     int      `json:"participants" yaml:"participants"`
	Actions          int      `json:"actions" yaml:"actions"`
	OpenActions      int      `json:"open_actions" yaml:"open_actions"`
	Decisions        int      `json:"decisions" yaml:"decisions"`
	Risks            int      `json:"risks" yaml:"risks"`
	HighRisks        int      `json:"high_risks" yaml:"high_risks"`
}

// ComputeStatistics derives Statistics from loaded data. Duration spans the
// first chunk start to the last chunk end.
func ComputeStatistics(
	chunks []entities.TranscriptChunk,
	actions []entities.ActionItem,
	decisions []entities.DecisionItem,
	risks []entities.RiskItem,
	participants []entities.Participant,
) Statistics {
	st := Statistics{
		TranscriptChunks: len(chunks),
		Speakers:         entities.Speakers(chunks),
		Participants:     len(participants),
		Actions:          len(actions),
		Decisions:        len(decisions),
		Risks:            len(risks),
	}
	if len(chunks) > 0 {
		first, last := chunks[0].StartTime, chunks[0].EndTime
		for _, c := range chunks[1:] {
			if c.StartTime < first {
				first = c.StartTime
			}
			if c.EndTime > last {
				last = c.EndTime
			}
		}
		st.DurationSeconds = last - first
	}
	for _, a := range actions {
		if a.Status != entities.ActionDone && a.Status != entities.ActionCancelled {
			st.OpenActions++
		}
	}
	for _, r := range risks {
		if r.Severity == entities.SeverityHigh || r.Severity == entities.SeverityCritical {
			st.HighRisks++
		}
	}
	return st
}

// PostMeeting wraps up a meeting: minutes, distribution, task sync
type PostMeeting struct {
	base
	deps  Deps
	chat  tabContext
	state PostMeetingState
}

var _ Tab = (*PostMeeting)(nil)

// NewPostMeeting creates the post-meeting tab for m
func NewPostMeeting(deps Deps, m *entities.Meeting) *PostMeeting {
	return &PostMeeting{
		base:  newBase("post_meeting", deps.Fallback, deps.logger()),
		deps:  deps,
		chat:  newTabContext(deps.Context, entities.PhasePost),
		state: PostMeetingState{Meeting: copyMeeting(m)},
	}
}

// Phase returns the phase this tab renders
func (v *PostMeeting) Phase() entities.Phase {
	return entities.PhasePost
}

// Panels lists the sections of the tab
func (v *PostMeeting) Panels() []Panel {
	return []Panel{
		PanelStatistics, PanelMinutes, PanelDistribution,
		PanelActions, PanelDecisions, PanelRisks, PanelParticipants, PanelTaskSync,
	}
}

// Mount sets the chat context and loads every group
func (v *PostMeeting) Mount(ctx context.Context) error {
	v.begin(ctx)
	v.chat.set(v.state.Meeting, entities.PhasePost)
	return v.Refresh(ctx)
}

// Unmount cancels pending fetches and releases the chat context
func (v *PostMeeting) Unmount() {
	if v.end() {
		v.chat.clear()
	}
}

// SetMeeting replaces the meeting the tab acts on
func (v *PostMeeting) SetMeeting(m *entities.Meeting) {
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
func (v *PostMeeting) State() PostMeetingState {
	v.mu.Lock()
	defer v.mu.Unlock()
	s := v.state
	s.Meeting = copyMeeting(v.state.Meeting)
	return s
}

// Refresh refetches every group in parallel. Missing minutes are not an
// error: the meeting simply has none yet.
func (v *PostMeeting) Refresh(ctx context.Context) error {
	id := v.meetingID()
	return v.run(ctx,
		fetch(&v.base, "minutes", &v.state.Minutes, func(ctx context.Context) (*entities.MeetingMinutes, error) {
			m, err := v.deps.Minutes.Latest(ctx, id)
			if apperrors.IsNotFound(err) {
				return nil, nil
			}
			return m, err
		}, nil),
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
		fetch(&v.base, "participants", &v.state.Participants, func(ctx context.Context) ([]entities.Participant, error) {
			return v.deps.Participants.List(ctx, id)
		}, fallback.Participants),
	)
}

// GenerateMinutes asks for a new minutes version. A fallback draft is shown
// tagged as mock and the backend error is still returned.
func (v *PostMeeting) GenerateMinutes(ctx context.Context, templateID string) (entities.Source, error) {
	v.mu.Lock()
	reqCtx, gen, done, err := v.scope(ctx)
	input := minutes.GenerateInput{
		Meeting:    copyMeeting(v.state.Meeting),
		TemplateID: templateID,
		Actions:    v.state.Actions.Data,
		Decisions:  v.state.Decisions.Data,
		Risks:      v.state.Risks.Data,
		Previous:   v.state.Minutes.Data,
	}
	v.mu.Unlock()
	if err != nil {
		return "", err
	}

	res, err := v.deps.Minutes.Generate(reqCtx, input)
	done()
	if res.IsMock() {
		v.mu.Lock()
		if v.current(gen) {
			v.state.Minutes = Group[*entities.MeetingMinutes]{Data: res.Data, Source: entities.SourceMock, Err: err}
		}
		v.mu.Unlock()
		return entities.SourceMock, err
	}
	if err != nil {
		return "", err
	}
	return entities.SourceLive, v.Refresh(ctx)
}

// ReviewMinutes marks the minutes reviewed
func (v *PostMeeting) ReviewMinutes(ctx context.Context) error {
	return v.moveMinutes(ctx, "minutes.review", v.deps.Minutes.Review)
}

// ApproveMinutes marks the minutes approved
func (v *PostMeeting) ApproveMinutes(ctx context.Context) error {
	return v.moveMinutes(ctx, "minutes.approve", v.deps.Minutes.Approve)
}

// RejectMinutes sends the minutes back to draft
func (v *PostMeeting) RejectMinutes(ctx context.Context) error {
	return v.moveMinutes(ctx, "minutes.reject", v.deps.Minutes.Reject)
}

// moveMinutes applies a status change and merges the result locally without
// refetching
func (v *PostMeeting) moveMinutes(
	ctx context.Context,
	action string,
	move func(context.Context, *entities.MeetingMinutes) (*entities.MeetingMinutes, error),
) error {
	v.mu.Lock()
	reqCtx, gen, done, err := v.scope(ctx)
	current := v.state.Minutes.Data
	v.mu.Unlock()
	if err != nil {
		return err
	}

	updated, err := move(reqCtx, current)
	done()
	if err != nil {
		v.logger.Error("view.action.error", zap.String("action", action), zap.Error(err))
		return err
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.current(gen) {
		v.state.Minutes.Data = updated
	}
	v.logger.Info("view.action", zap.String("action", action))
	return nil
}

// EditMinutes replaces the minutes markdown and refreshes
func (v *PostMeeting) EditMinutes(ctx context.Context, markdown string) error {
	current := v.currentMinutes()
	return v.mutate(ctx, "minutes.edit", func(ctx context.Context) error {
		_, err := v.deps.Minutes.Edit(ctx, current, markdown)
		return err
	}, v.Refresh)
}

// Distribute emails the current minutes and keeps the per-recipient outcome
func (v *PostMeeting) Distribute(ctx context.Context, recipients []string, subject, message string) ([]entities.DistributionResult, error) {
	current := v.currentMinutes()
	var results []entities.DistributionResult
	err := v.mutate(ctx, "minutes.distribute", func(ctx context.Context) error {
		var err error
		results, err = v.deps.Minutes.Distribute(ctx, minutes.DistributeInput{
			Minutes:    current,
			Recipients: recipients,
			Subject:    subject,
			Message:    message,
		})
		if err == nil {
			v.mu.Lock()
			v.state.Distribution = results
			v.mu.Unlock()
		}
		return err
	}, v.Refresh)
	return results, err
}

// SyncTasks pushes the selected action items, or all of them when none are
// named, to target
func (v *PostMeeting) SyncTasks(ctx context.Context, target entities.SyncTarget, itemIDs ...string) (*tasksync.Report, error) {
	v.mu.Lock()
	loaded := v.state.Actions.Data
	v.mu.Unlock()

	selected, err := selectActions(loaded, itemIDs)
	if err != nil {
		return nil, err
	}

	var report *tasksync.Report
	err = v.mutate(ctx, "tasks.sync", func(ctx context.Context) error {
		var err error
		report, err = v.deps.TaskSync.Sync(ctx, selected, target)
		if report != nil {
			v.mu.Lock()
			v.state.SyncReport = report
			v.mu.Unlock()
		}
		return err
	}, v.Refresh)
	return report, err
}

// UpdateAction edits an action item and refreshes
func (v *PostMeeting) UpdateAction(ctx context.Context, id string, req meeting.UpdateActionRequest) error {
	return v.mutate(ctx, "action.update", func(ctx context.Context) error {
		_, err := v.deps.Items.UpdateAction(ctx, id, req)
		return err
	}, v.Refresh)
}

func selectActions(loaded []entities.ActionItem, ids []string) ([]entities.ActionItem, error) {
	if len(ids) == 0 {
		return loaded, nil
	}
	byID := make(map[string]entities.ActionItem, len(loaded))
	for _, a := range loaded {
		byID[a.ID] = a
	}
	out := make([]entities.ActionItem, 0, len(ids))
	for _, id := range ids {
		a, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: %s", usecaseErrors.ErrActionItemNotFound, id)
		}
		out = append(out, a)
	}
	return out, nil
}

func (v *PostMeeting) currentMinutes() *entities.MeetingMinutes {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state.Minutes.Data
}

func (v *PostMeeting) meetingID() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.state.Meeting == nil {
		return ""
	}
	return v.state.Meeting.ID
}
