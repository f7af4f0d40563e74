package repository_test

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/johnquangdev/meetmate/internal/adapter/dto/meeting"
	"github.com/johnquangdev/meetmate/internal/adapter/handler"
	"github.com/johnquangdev/meetmate/internal/adapter/repository"
	"github.com/johnquangdev/meetmate/internal/domain/entities"
	"github.com/johnquangdev/meetmate/internal/infrastructure/cache"
	"github.com/johnquangdev/meetmate/internal/infrastructure/gateway"
	"github.com/johnquangdev/meetmate/internal/infrastructure/memdb"
)

type cachedEnv struct {
	store        *memdb.Store
	live         *repository.MeetingRepository
	meetings     *repository.CachedMeetingRepository
	participants *repository.CachedParticipantRepository
}

func newCachedEnv(t *testing.T) *cachedEnv {
	t.Helper()
	logger := zaptest.NewLogger(t)
	store := memdb.New()
	memdb.Seed(store)
	srv := httptest.NewServer(handler.NewServer(store, "", logger))
	t.Cleanup(srv.Close)

	client, err := gateway.New(gateway.Options{BaseURL: srv.URL + handler.APIPrefix, Logger: logger})
	require.NoError(t, err)

	mem := cache.NewMemoryStore()
	t.Cleanup(func() { _ = mem.Close() })

	live := repository.NewMeetingRepository(client)
	cached := repository.NewCachedMeetingRepository(live, mem, time.Minute, logger)
	return &cachedEnv{
		store:        store,
		live:         live,
		meetings:     cached,
		participants: repository.NewCachedParticipantRepository(repository.NewParticipantRepository(client), cached),
	}
}

func TestCachedMeeting_ServesCachedCopyUntilInvalidated(t *testing.T) {
	e := newCachedEnv(t)
	ctx := context.Background()

	m, err := e.meetings.Get(ctx, memdb.SeedPreMeetingID)
	require.NoError(t, err)
	require.Equal(t, entities.PhasePre, m.Phase)

	// another client moves the meeting
	_, err = e.store.UpdatePhase(memdb.SeedPreMeetingID, entities.PhaseIn)
	require.NoError(t, err)

	cached, err := e.meetings.Get(ctx, memdb.SeedPreMeetingID)
	require.NoError(t, err)
	assert.Equal(t, entities.PhasePre, cached.Phase)

	live, err := e.live.Get(ctx, memdb.SeedPreMeetingID)
	require.NoError(t, err)
	assert.Equal(t, entities.PhaseIn, live.Phase)
}

func TestCachedMeeting_UpdatePhaseInvalidates(t *testing.T) {
	e := newCachedEnv(t)
	ctx := context.Background()

	_, err := e.meetings.Get(ctx, memdb.SeedPreMeetingID)
	require.NoError(t, err)

	_, err = e.meetings.UpdatePhase(ctx, memdb.SeedPreMeetingID, entities.PhaseIn)
	require.NoError(t, err)

	m, err := e.meetings.Get(ctx, memdb.SeedPreMeetingID)
	require.NoError(t, err)
	assert.Equal(t, entities.PhaseIn, m.Phase)
}

func TestCachedMeeting_CreatePrimesCache(t *testing.T) {
	e := newCachedEnv(t)
	ctx := context.Background()

	created, err := e.meetings.Create(ctx, meeting.CreateMeetingRequest{
		Title:       "Ops review",
		MeetingType: entities.DefaultMeetingType,
		StartTime:   "2026-03-03T09:00:00Z",
		EndTime:     "2026-03-03T10:00:00Z",
	})
	require.NoError(t, err)

	_, err = e.store.UpdatePhase(created.ID, entities.PhaseIn)
	require.NoError(t, err)

	m, err := e.meetings.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.PhasePre, m.Phase, "served from cache")
}

func TestCachedParticipants_MembershipChangesInvalidate(t *testing.T) {
	e := newCachedEnv(t)
	ctx := context.Background()

	before, err := e.meetings.Get(ctx, memdb.SeedPreMeetingID)
	require.NoError(t, err)

	p, err := e.participants.Add(ctx, memdb.SeedPreMeetingID, meeting.AddParticipantRequest{
		Email: "quynh@example.com", DisplayName: "Quynh Le", Role: entities.ParticipantRoleOptional,
	})
	require.NoError(t, err)

	added, err := e.meetings.Get(ctx, memdb.SeedPreMeetingID)
	require.NoError(t, err)
	assert.Len(t, added.Participants, len(before.Participants)+1)

	require.NoError(t, e.participants.Remove(ctx, memdb.SeedPreMeetingID, p.UserID))

	removed, err := e.meetings.Get(ctx, memdb.SeedPreMeetingID)
	require.NoError(t, err)
	assert.Len(t, removed.Participants, len(before.Participants))
}
