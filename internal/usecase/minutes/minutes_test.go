package minutes

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	apperrors "github.com/johnquangdev/meetmate/errors"
	dto "github.com/johnquangdev/meetmate/internal/adapter/dto/minutes"
	"github.com/johnquangdev/meetmate/internal/domain/entities"
	usecaseErrors "github.com/johnquangdev/meetmate/internal/usecase/errors"
	"github.com/johnquangdev/meetmate/internal/usecase/fallback"
)

type fakeRepo struct {
	generateErr error
	statusCalls []entities.MinutesStatus
	distributed []dto.DistributeRequest
}

func (f *fakeRepo) Generate(_ context.Context, req dto.GenerateMinutesRequest) (*entities.MeetingMinutes, error) {
	if f.generateErr != nil {
		return nil, f.generateErr
	}
	return &entities.MeetingMinutes{ID: "min-1", MeetingID: req.MeetingID, Version: 1, Status: entities.MinutesDraft}, nil
}

func (f *fakeRepo) Latest(_ context.Context, meetingID string) (*entities.MeetingMinutes, error) {
	return &entities.MeetingMinutes{ID: "min-1", MeetingID: meetingID}, nil
}

func (f *fakeRepo) UpdateStatus(_ context.Context, id string, status entities.MinutesStatus) (*entities.MeetingMinutes, error) {
	f.statusCalls = append(f.statusCalls, status)
	// the backend body is deliberately different to prove only status is merged
	return &entities.MeetingMinutes{ID: id, Status: status, MinutesMarkdown: "server copy"}, nil
}

func (f *fakeRepo) UpdateContent(_ context.Context, id, markdown string) (*entities.MeetingMinutes, error) {
	return &entities.MeetingMinutes{ID: id, MinutesMarkdown: markdown}, nil
}

func (f *fakeRepo) Distribute(_ context.Context, req dto.DistributeRequest) ([]entities.DistributionResult, error) {
	f.distributed = append(f.distributed, req)
	out := make([]entities.DistributionResult, 0, len(req.Recipients))
	for _, r := range req.Recipients {
		out = append(out, entities.DistributionResult{Recipient: r, Status: entities.DeliverySent})
	}
	return out, nil
}

func newService(t *testing.T, repo *fakeRepo, fallbackEnabled bool) *MinutesService {
	return NewMinutesService(repo, fallbackEnabled, zaptest.NewLogger(t))
}

func TestReviewApprove_MergesOnlyStatus(t *testing.T) {
	repo := &fakeRepo{}
	svc := newService(t, repo, true)
	draft := &entities.MeetingMinutes{ID: "min-1", Status: entities.MinutesDraft, MinutesMarkdown: "local copy", Version: 2}

	reviewed, err := svc.Review(context.Background(), draft)
	require.NoError(t, err)
	assert.Equal(t, entities.MinutesReviewed, reviewed.Status)
	assert.Equal(t, "local copy", reviewed.MinutesMarkdown)
	assert.Equal(t, 2, reviewed.Version)
	assert.Equal(t, entities.MinutesDraft, draft.Status, "input must not be mutated")

	approved, err := svc.Approve(context.Background(), reviewed)
	require.NoError(t, err)
	assert.Equal(t, entities.MinutesApproved, approved.Status)

	_, err = svc.Reject(context.Background(), approved)
	assert.Equal(t, apperrors.KindState, apperrors.KindOf(err))
	assert.Equal(t, []entities.MinutesStatus{entities.MinutesReviewed, entities.MinutesApproved}, repo.statusCalls)
}

func TestApprove_FromDraftIsRefusedLocally(t *testing.T) {
	repo := &fakeRepo{}
	svc := newService(t, repo, true)

	_, err := svc.Approve(context.Background(), &entities.MeetingMinutes{ID: "min-1", Status: entities.MinutesDraft})
	require.Error(t, err)
	assert.Empty(t, repo.statusCalls)
}

func TestReject_ReturnsToDraft(t *testing.T) {
	svc := newService(t, &fakeRepo{}, true)
	m, err := svc.Reject(context.Background(), &entities.MeetingMinutes{ID: "min-1", Status: entities.MinutesReviewed})
	require.NoError(t, err)
	assert.Equal(t, entities.MinutesDraft, m.Status)
}

func TestGenerate_Live(t *testing.T) {
	svc := newService(t, &fakeRepo{}, true)
	res, err := svc.Generate(context.Background(), GenerateInput{Meeting: &entities.Meeting{ID: "m-1"}})
	require.NoError(t, err)
	assert.Equal(t, entities.SourceLive, res.Source)
	assert.Equal(t, "min-1", res.Data.ID)
}

func TestGenerate_FallsBackToMockAndKeepsError(t *testing.T) {
	cause := apperrors.ErrNetwork("POST", "/minutes/generate", errors.New("connection refused"))
	svc := newService(t, &fakeRepo{generateErr: cause}, true)

	res, err := svc.Generate(context.Background(), GenerateInput{
		Meeting:  &entities.Meeting{ID: "m-1", Title: "Sprint Review"},
		Previous: &entities.MeetingMinutes{Version: 4},
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsNetwork(err))
	assert.True(t, res.IsMock())
	require.NotNil(t, res.Data)
	assert.Equal(t, 5, res.Data.Version)
	assert.True(t, fallback.IsMockID(res.Data.ID))

	// offline minutes cannot enter the approval workflow
	_, err = svc.Review(context.Background(), res.Data)
	assert.ErrorIs(t, err, usecaseErrors.ErrMinutesOffline)
}

func TestGenerate_NoFallbackWhenDisabled(t *testing.T) {
	svc := newService(t, &fakeRepo{generateErr: errors.New("down")}, false)
	res, err := svc.Generate(context.Background(), GenerateInput{Meeting: &entities.Meeting{ID: "m-1"}})
	require.Error(t, err)
	assert.Nil(t, res.Data)
	assert.Empty(t, res.Source)
}

func TestEdit_ApprovedIsFrozen(t *testing.T) {
	svc := newService(t, &fakeRepo{}, true)
	_, err := svc.Edit(context.Background(), &entities.MeetingMinutes{ID: "min-1", Status: entities.MinutesApproved}, "# new")
	assert.ErrorIs(t, err, usecaseErrors.ErrMinutesApproved)

	m, err := svc.Edit(context.Background(), &entities.MeetingMinutes{ID: "min-1", Status: entities.MinutesDraft}, "# new")
	require.NoError(t, err)
	assert.Equal(t, "# new", m.MinutesMarkdown)
}

func TestDistribute_TrimsRecipients(t *testing.T) {
	repo := &fakeRepo{}
	svc := newService(t, repo, true)
	m := &entities.MeetingMinutes{ID: "min-1", MeetingID: "m-1"}

	_, err := svc.Distribute(context.Background(), DistributeInput{Minutes: m, Recipients: []string{" ", ""}})
	assert.ErrorIs(t, err, usecaseErrors.ErrNoRecipients)

	results, err := svc.Distribute(context.Background(), DistributeInput{
		Minutes:    m,
		Recipients: []string{" a@example.com", "b@example.com "},
	})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, []string{"a@example.com", "b@example.com"}, repo.distributed[0].Recipients)
}
