package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePhase(t *testing.T) {
	for _, p := range Phases {
		got, err := ParsePhase(string(p))
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}
	_, err := ParsePhase("done")
	assert.Error(t, err)
	assert.Equal(t, -1, Phase("").Order())
	assert.Less(t, PhasePre.Order(), PhaseIn.Order())
	assert.Less(t, PhaseIn.Order(), PhasePost.Order())
}

func TestParseTimestamp(t *testing.T) {
	want := time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)
	for _, s := range []string{
		"2025-01-10T09:00",
		"2025-01-10T09:00:00",
		"2025-01-10T09:00:00Z",
		"2025-01-10 09:00",
	} {
		got, err := ParseTimestamp(s)
		require.NoError(t, err, s)
		assert.True(t, want.Equal(got), s)
	}
	_, err := ParseTimestamp("tomorrow")
	assert.Error(t, err)
}

func TestMeeting_ScheduledDuration(t *testing.T) {
	m := Meeting{StartTime: "2025-01-10T09:00", EndTime: "2025-01-10T10:30"}
	d, ok := m.ScheduledDuration()
	require.True(t, ok)
	assert.Equal(t, 90*time.Minute, d)

	m.EndTime = "2025-01-10T08:00"
	_, ok = m.ScheduledDuration()
	assert.False(t, ok)

	m.EndTime = ""
	_, ok = m.ScheduledDuration()
	assert.False(t, ok)
}

func TestSortChunksAndSpeakers(t *testing.T) {
	chunks := []TranscriptChunk{
		{ID: "c", ChunkIndex: 2, StartTime: 10, Speaker: "Bo"},
		{ID: "b", ChunkIndex: 1, StartTime: 5, Speaker: "Ann"},
		{ID: "a", ChunkIndex: 0, StartTime: 5, Speaker: "Bo"},
	}
	SortChunks(chunks)

	ids := []string{chunks[0].ID, chunks[1].ID, chunks[2].ID}
	assert.Equal(t, []string{"a", "b", "c"}, ids)
	assert.Equal(t, []string{"Bo", "Ann"}, Speakers(chunks))
}

func TestPhaseCanTransitionTo(t *testing.T) {
	allowed := map[[2]Phase]bool{
		{PhasePre, PhaseIn}:   true,
		{PhaseIn, PhasePost}:  true,
		{PhasePre, PhasePost}: false,
		{PhaseIn, PhasePre}:   false,
		{PhasePost, PhaseIn}:  false,
		{PhasePost, PhasePre}: false,
		{PhasePre, PhasePre}:  false,
	}
	for pair, want := range allowed {
		assert.Equal(t, want, pair[0].CanTransitionTo(pair[1]), "%s -> %s", pair[0], pair[1])
	}

	next, ok := PhasePre.Next()
	assert.True(t, ok)
	assert.Equal(t, PhaseIn, next)
	_, ok = PhasePost.Next()
	assert.False(t, ok)
}

func TestMinutesStatusCanTransitionTo(t *testing.T) {
	all := []MinutesStatus{MinutesDraft, MinutesReviewed, MinutesApproved}
	reachable := map[MinutesStatus][]MinutesStatus{
		MinutesDraft:    {MinutesReviewed},
		MinutesReviewed: {MinutesApproved, MinutesDraft},
		MinutesApproved: nil,
	}
	for _, from := range all {
		for _, to := range all {
			want := false
			for _, r := range reachable[from] {
				want = want || r == to
			}
			assert.Equal(t, want, from.CanTransitionTo(to), "%s -> %s", from, to)
		}
		assert.Equal(t, reachable[from], from.NextStatuses())
	}
}
