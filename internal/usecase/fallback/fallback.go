package fallback

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/johnquangdev/meetmate/internal/domain/entities"
)

// Result carries data together with where it came from. A mock result keeps
// the error that caused the fallback so callers can still surface it.
type Result[T any] struct {
	Data   T
	Source entities.Source
	Err    error
}

// Live wraps backend data
func Live[T any](data T) Result[T] {
	return Result[T]{Data: data, Source: entities.SourceLive}
}

// Mock wraps locally built data that replaced a failed fetch
func Mock[T any](data T, cause error) Result[T] {
	return Result[T]{Data: data, Source: entities.SourceMock, Err: cause}
}

// IsMock reports whether the data was built locally
func (r Result[T]) IsMock() bool {
	return r.Source == entities.SourceMock
}

var demoTeam = []struct {
	name  string
	email string
	role  entities.ParticipantRole
}{
	{"Linh Tran", "linh.tran@example.com", entities.ParticipantRoleOrganizer},
	{"Minh Nguyen", "minh.nguyen@example.com", entities.ParticipantRoleRequired},
	{"Hoa Pham", "hoa.pham@example.com", entities.ParticipantRoleRequired},
	{"Duc Le", "duc.le@example.com", entities.ParticipantRoleOptional},
}

// Participants builds a placeholder participant list
func Participants() []entities.Participant {
	out := make([]entities.Participant, 0, len(demoTeam))
	for _, member := range demoTeam {
		out = append(out, entities.Participant{
			UserID:         "mock-" + uuid.NewString(),
			DisplayName:    member.name,
			Email:          member.email,
			Role:           member.role,
			ResponseStatus: entities.ResponseAccepted,
		})
	}
	return out
}

// MinutesInput is what the local minutes builder knows about a meeting
type MinutesInput struct {
	Meeting   *entities.Meeting
	Actions   []entities.ActionItem
	Decisions []entities.DecisionItem
	Risks     []entities.RiskItem
	// Version of the newest minutes already shown, if any
	Version int
	Now     time.Time
}

// Minutes builds a draft from the items already loaded in the view
func Minutes(in MinutesInput) entities.MeetingMinutes {
	now := in.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}
	title := "Meeting"
	meetingID := ""
	if in.Meeting != nil {
		meetingID = in.Meeting.ID
		if in.Meeting.Title != "" {
			title = in.Meeting.Title
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title)
	b.WriteString("_Draft generated offline. Regenerate once the backend is reachable._\n\n")

	b.WriteString("## Decisions\n\n")
	if len(in.Decisions) == 0 {
		b.WriteString("- None recorded\n")
	}
	for _, d := range in.Decisions {
		fmt.Fprintf(&b, "- %s\n", d.Description)
	}

	b.WriteString("\n## Action items\n\n")
	if len(in.Actions) == 0 {
		b.WriteString("- None recorded\n")
	}
	for _, a := range in.Actions {
		owner := a.Owner
		if owner == "" {
			owner = "unassigned"
		}
		fmt.Fprintf(&b, "- %s (%s", a.Description, owner)
		if a.Deadline != "" {
			fmt.Fprintf(&b, ", due %s", a.Deadline)
		}
		b.WriteString(")\n")
	}

	b.WriteString("\n## Risks\n\n")
	if len(in.Risks) == 0 {
		b.WriteString("- None recorded\n")
	}
	for _, r := range in.Risks {
		fmt.Fprintf(&b, "- [%s] %s\n", r.Severity, r.Description)
	}

	summary := fmt.Sprintf("%s: %d decisions, %d action items, %d risks.",
		title, len(in.Decisions), len(in.Actions), len(in.Risks))

	return entities.MeetingMinutes{
		ID:               "mock-" + uuid.NewString(),
		MeetingID:        meetingID,
		Version:          in.Version + 1,
		MinutesMarkdown:  b.String(),
		ExecutiveSummary: summary,
		Status:           entities.MinutesDraft,
		GeneratedAt:      now.Format(time.RFC3339),
	}
}

// IsMockID reports whether id was produced by this package
func IsMockID(id string) bool {
	return strings.HasPrefix(id, "mock-")
}
