package phase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	apperrors "github.com/johnquangdev/meetmate/errors"
	"github.com/johnquangdev/meetmate/internal/adapter/dto/meeting"
	"github.com/johnquangdev/meetmate/internal/domain/entities"
)

type fakeMeetings struct {
	meetings map[string]entities.Meeting
	updates  []entities.Phase
	getErr   error
}

func (f *fakeMeetings) List(context.Context, meeting.ListMeetingsRequest) ([]entities.Meeting, int, error) {
	return nil, 0, nil
}

func (f *fakeMeetings) Get(_ context.Context, id string) (*entities.Meeting, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	m := f.meetings[id]
	return &m, nil
}

func (f *fakeMeetings) Create(context.Context, meeting.CreateMeetingRequest) (*entities.Meeting, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeMeetings) UpdatePhase(_ context.Context, id string, phase entities.Phase) (*entities.Meeting, error) {
	f.updates = append(f.updates, phase)
	m := f.meetings[id]
	m.Phase = phase
	f.meetings[id] = m
	return &m, nil
}

func newController(t *testing.T, m entities.Meeting) (*Controller, *fakeMeetings) {
	repo := &fakeMeetings{meetings: map[string]entities.Meeting{m.ID: m}}
	return NewController(repo, zaptest.NewLogger(t)), repo
}

func TestStartMeeting_AlreadyInIssuesNoRequest(t *testing.T) {
	m := entities.Meeting{ID: "m-1", Phase: entities.PhaseIn}
	c, repo := newController(t, m)

	res, err := c.StartMeeting(context.Background(), &m)
	require.NoError(t, err)
	assert.False(t, res.Changed)
	assert.Empty(t, repo.updates)

	post := entities.Meeting{ID: "m-1", Phase: entities.PhasePost}
	res, err = c.StartMeeting(context.Background(), &post)
	require.NoError(t, err)
	assert.False(t, res.Changed)
	assert.Empty(t, repo.updates)
}

func TestStartMeeting_RefetchesAfterUpdate(t *testing.T) {
	m := entities.Meeting{ID: "m-1", Phase: entities.PhasePre}
	c, repo := newController(t, m)

	res, err := c.StartMeeting(context.Background(), &m)
	require.NoError(t, err)
	assert.True(t, res.Changed)
	assert.Equal(t, entities.PhaseIn, res.Meeting.Phase)
	assert.Equal(t, []entities.Phase{entities.PhaseIn}, repo.updates)
}

func TestEndMeeting_FromPreIsRefused(t *testing.T) {
	m := entities.Meeting{ID: "m-1", Phase: entities.PhasePre}
	c, repo := newController(t, m)

	_, err := c.EndMeeting(context.Background(), &m)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindState, apperrors.KindOf(err))
	assert.Empty(t, repo.updates)
}

func TestTransition_BackwardIsRefused(t *testing.T) {
	m := entities.Meeting{ID: "m-1", Phase: entities.PhasePost}
	c, repo := newController(t, m)

	_, err := c.Transition(context.Background(), &m, entities.PhasePre)
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrorCode_INVALID_TRANSITION, appErr.Code)
	assert.Equal(t, "m-1", appErr.Details["meeting_id"])
	assert.Empty(t, repo.updates)
}

func TestTransition_RefetchFailureKeepsLocalPhase(t *testing.T) {
	m := entities.Meeting{ID: "m-1", Phase: entities.PhaseIn}
	c, repo := newController(t, m)
	repo.getErr = errors.New("boom")

	res, err := c.EndMeeting(context.Background(), &m)
	require.Error(t, err)
	require.NotNil(t, res)
	assert.True(t, res.Changed)
	assert.Equal(t, entities.PhasePost, res.Meeting.Phase)
	assert.Equal(t, entities.PhaseIn, m.Phase)
}

func TestTransition_MissingMeeting(t *testing.T) {
	c, _ := newController(t, entities.Meeting{ID: "m-1"})
	_, err := c.StartMeeting(context.Background(), nil)
	assert.Equal(t, apperrors.ErrorCode_MISSING_ID, mustAppErr(t, err).Code)
}

func mustAppErr(t *testing.T, err error) apperrors.AppError {
	t.Helper()
	appErr, ok := apperrors.As(err)
	require.True(t, ok, "expected AppError, got %v", err)
	return appErr
}
