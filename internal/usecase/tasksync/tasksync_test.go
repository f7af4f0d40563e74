package tasksync

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	apperrors "github.com/johnquangdev/meetmate/errors"
	"github.com/johnquangdev/meetmate/internal/adapter/dto/meeting"
	"github.com/johnquangdev/meetmate/internal/domain/entities"
	usecaseErrors "github.com/johnquangdev/meetmate/internal/usecase/errors"
)

type fakeItems struct {
	mu       sync.Mutex
	calls    []string
	fail     map[string]error
	declined map[string]string
	inFlight atomic.Int32
	maxSeen  atomic.Int32
}

func (f *fakeItems) ListActions(context.Context, string) ([]entities.ActionItem, error) {
	return nil, nil
}

func (f *fakeItems) ListDecisions(context.Context, string) ([]entities.DecisionItem, error) {
	return nil, nil
}

func (f *fakeItems) ListRisks(context.Context, string) ([]entities.RiskItem, error) {
	return nil, nil
}

func (f *fakeItems) UpdateAction(context.Context, string, meeting.UpdateActionRequest) (*entities.ActionItem, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeItems) SyncAction(_ context.Context, id string, target entities.SyncTarget) (*entities.TaskSyncResult, error) {
	n := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		seen := f.maxSeen.Load()
		if n <= seen || f.maxSeen.CompareAndSwap(seen, n) {
			break
		}
	}
	time.Sleep(5 * time.Millisecond)

	f.mu.Lock()
	f.calls = append(f.calls, id)
	f.mu.Unlock()

	if err := f.fail[id]; err != nil {
		return nil, err
	}
	if reason, ok := f.declined[id]; ok {
		return &entities.TaskSyncResult{ItemID: id, Target: target, Error: reason}, nil
	}
	return &entities.TaskSyncResult{ItemID: id, Target: target, ExternalID: "EXT-" + id, Synced: true}, nil
}

func actions(ids ...string) []entities.ActionItem {
	out := make([]entities.ActionItem, len(ids))
	for i, id := range ids {
		out[i] = entities.ActionItem{ID: id, Description: "task " + id}
	}
	return out
}

func TestSync_TracksPartialFailurePerItem(t *testing.T) {
	repo := &fakeItems{fail: map[string]error{
		"a-2": apperrors.ErrHTTP(http.StatusBadGateway, "Jira unavailable", nil),
	}}
	s := NewSyncer(repo, 2, zaptest.NewLogger(t))

	report, err := s.Sync(context.Background(), actions("a-1", "a-2", "a-3"), entities.SyncJira)
	require.NoError(t, err)
	require.Len(t, report.Results, 3)

	assert.Equal(t, "a-1", report.Results[0].ItemID)
	assert.True(t, report.Results[0].Synced)
	assert.Equal(t, "EXT-a-1", report.Results[0].ExternalID)

	assert.False(t, report.Results[1].Synced)
	assert.Equal(t, "Jira unavailable (HTTP 502)", report.Results[1].Error)

	assert.True(t, report.Results[2].Synced)
	assert.Len(t, report.Synced(), 2)
	assert.Len(t, report.Failed(), 1)
	assert.False(t, report.Complete())
}

func TestSync_KeepsDeclinedResult(t *testing.T) {
	repo := &fakeItems{declined: map[string]string{"a-1": "", "a-2": "Project is archived"}}
	s := NewSyncer(repo, 2, zaptest.NewLogger(t))

	report, err := s.Sync(context.Background(), actions("a-1", "a-2", "a-3"), entities.SyncPlanner)
	require.NoError(t, err)

	assert.False(t, report.Results[0].Synced)
	assert.Equal(t, "Not synced to planner", report.Results[0].Error)
	assert.False(t, report.Results[1].Synced)
	assert.Equal(t, "Project is archived", report.Results[1].Error)
	assert.True(t, report.Results[2].Synced)
	assert.Len(t, report.Failed(), 2)
}

func TestSync_BoundsConcurrency(t *testing.T) {
	repo := &fakeItems{}
	s := NewSyncer(repo, 2, zaptest.NewLogger(t))

	report, err := s.Sync(context.Background(), actions("1", "2", "3", "4", "5", "6"), entities.SyncPlanner)
	require.NoError(t, err)
	assert.True(t, report.Complete())
	assert.LessOrEqual(t, repo.maxSeen.Load(), int32(2))
	assert.Len(t, repo.calls, 6)
}

func TestSync_SkipsAlreadyLinkedItems(t *testing.T) {
	repo := &fakeItems{}
	s := NewSyncer(repo, 0, zaptest.NewLogger(t))
	items := actions("a-1", "a-2")
	items[0].ExternalTaskRefs = map[entities.SyncTarget]string{entities.SyncLOffice: "LO-9"}

	report, err := s.Sync(context.Background(), items, entities.SyncLOffice)
	require.NoError(t, err)
	assert.Equal(t, []string{"a-2"}, repo.calls)
	assert.Equal(t, "LO-9", report.Results[0].ExternalID)
	assert.True(t, report.Complete())
}

func TestSync_RejectsBadInput(t *testing.T) {
	s := NewSyncer(&fakeItems{}, 1, zaptest.NewLogger(t))

	_, err := s.Sync(context.Background(), actions("a-1"), "trello")
	assert.ErrorIs(t, err, usecaseErrors.ErrUnknownSyncTarget)

	_, err = s.Sync(context.Background(), nil, entities.SyncJira)
	assert.ErrorIs(t, err, usecaseErrors.ErrNoActionItems)
}

func TestSync_CancelledContext(t *testing.T) {
	s := NewSyncer(&fakeItems{}, 1, zaptest.NewLogger(t))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := s.Sync(ctx, actions("a-1"), entities.SyncJira)
	require.Error(t, err)
	assert.True(t, apperrors.IsNetwork(err))
	require.NotNil(t, report)
}
