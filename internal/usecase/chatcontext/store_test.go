package chatcontext

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/johnquangdev/meetmate/internal/domain/entities"
	usecaseErrors "github.com/johnquangdev/meetmate/internal/usecase/errors"
)

func meetingCtx(id string, phase entities.Phase) entities.ChatContextOverride {
	return entities.ChatContextOverride{Scope: entities.ScopeMeeting, MeetingID: id, Phase: phase}
}

func TestStore_LastSetWins(t *testing.T) {
	s := NewStore()
	s.Set("tab-a", meetingCtx("m-1", entities.PhasePre))
	s.Set("tab-b", entities.ChatContextOverride{Scope: entities.ScopeKnowledge, Title: "Knowledge Hub"})

	got, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, entities.ChatContextOverride{Scope: entities.ScopeKnowledge, Title: "Knowledge Hub"}, got)
}

func TestStore_ClearOnlyByHolder(t *testing.T) {
	s := NewStore()
	s.Set("tab-a", meetingCtx("m-1", entities.PhasePre))
	s.Set("tab-b", meetingCtx("m-1", entities.PhasePost))

	assert.False(t, s.Clear("tab-a"))
	got, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, entities.PhasePost, got.Phase)

	assert.True(t, s.Clear("tab-b"))
	_, ok = s.Current()
	assert.False(t, ok)
	assert.Equal(t, entities.ScopeGeneral, s.Resolve().Scope)
}

func TestStore_Subscribe(t *testing.T) {
	s := NewStore()
	var seen []*entities.ChatContextOverride
	unsubscribe := s.Subscribe(func(o *entities.ChatContextOverride) { seen = append(seen, o) })

	s.Set("tab", meetingCtx("m-1", entities.PhaseIn))
	s.Clear("tab")
	unsubscribe()
	s.Set("tab", meetingCtx("m-2", entities.PhaseIn))

	require.Len(t, seen, 2)
	assert.Equal(t, "m-1", seen[0].MeetingID)
	assert.Nil(t, seen[1])
}

type fakeAssistant struct {
	got entities.ChatContextOverride
}

func (f *fakeAssistant) Ask(_ context.Context, question string, o entities.ChatContextOverride) (*entities.AssistantAnswer, error) {
	f.got = o
	return &entities.AssistantAnswer{Answer: "re: " + question}, nil
}

func TestAssistant_UsesCurrentOverride(t *testing.T) {
	store := NewStore()
	repo := &fakeAssistant{}
	a := NewAssistant(repo, store, zaptest.NewLogger(t))

	_, err := a.Ask(context.Background(), "  ")
	assert.ErrorIs(t, err, usecaseErrors.ErrEmptyQuestion)

	store.Set("tab", meetingCtx("m-1", entities.PhaseIn))
	ans, err := a.Ask(context.Background(), "what was decided?")
	require.NoError(t, err)
	assert.Equal(t, "re: what was decided?", ans.Answer)
	assert.Equal(t, "m-1", repo.got.MeetingID)
}
