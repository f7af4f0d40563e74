package fallback

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/johnquangdev/meetmate/internal/domain/entities"
)

func TestResult_Source(t *testing.T) {
	live := Live(3)
	assert.Equal(t, entities.SourceLive, live.Source)
	assert.False(t, live.IsMock())
	assert.NoError(t, live.Err)

	cause := errors.New("offline")
	mock := Mock([]string{"x"}, cause)
	assert.True(t, mock.IsMock())
	assert.ErrorIs(t, mock.Err, cause)
}

func TestParticipants_AreTaggedAsMock(t *testing.T) {
	ps := Participants()
	assert.NotEmpty(t, ps)
	for _, p := range ps {
		assert.True(t, IsMockID(p.UserID))
	}
	assert.True(t, ps[0].IsOrganizer())
}

func TestMinutes_UsesLoadedItems(t *testing.T) {
	m := Minutes(MinutesInput{
		Meeting:   &entities.Meeting{ID: "m-1", Title: "Sprint Review"},
		Actions:   []entities.ActionItem{{Description: "Ship build", Owner: "Hoa", Deadline: "2025-01-17"}},
		Decisions: []entities.DecisionItem{{Description: "Freeze scope"}},
		Version:   2,
		Now:       time.Date(2025, 1, 10, 10, 0, 0, 0, time.UTC),
	})

	assert.True(t, IsMockID(m.ID))
	assert.Equal(t, "m-1", m.MeetingID)
	assert.Equal(t, 3, m.Version)
	assert.Equal(t, entities.MinutesDraft, m.Status)
	assert.Equal(t, "2025-01-10T10:00:00Z", m.GeneratedAt)
	assert.Contains(t, m.MinutesMarkdown, "# Sprint Review")
	assert.Contains(t, m.MinutesMarkdown, "- Ship build (Hoa, due 2025-01-17)")
	assert.Contains(t, m.MinutesMarkdown, "- Freeze scope")
	assert.Contains(t, m.ExecutiveSummary, "1 decisions, 1 action items, 0 risks")
}
