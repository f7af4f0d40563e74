package entities

import (
	"fmt"
	"time"
)

// Phase represents the lifecycle stage of a meeting
type Phase string

const (
	PhasePre  Phase = "pre"
	PhaseIn   Phase = "in"
	PhasePost Phase = "post"
)

// Phases lists every phase in lifecycle order
var Phases = []Phase{PhasePre, PhaseIn, PhasePost}

// Valid reports whether p is a known phase
func (p Phase) Valid() bool {
	return p.Order() >= 0
}

// Order returns the lifecycle position of p, or -1 when unknown
func (p Phase) Order() int {
	switch p {
	case PhasePre:
		return 0
	case PhaseIn:
		return 1
	case PhasePost:
		return 2
	default:
		return -1
	}
}

// Next returns the phase after p, if any
func (p Phase) Next() (Phase, bool) {
	switch p {
	case PhasePre:
		return PhaseIn, true
	case PhaseIn:
		return PhasePost, true
	default:
		return "", false
	}
}

// CanTransitionTo reports whether a meeting may move from p to target.
// Only pre->in and in->post are allowed.
func (p Phase) CanTransitionTo(target Phase) bool {
	next, ok := p.Next()
	return ok && next == target
}

// ParsePhase converts user input into a Phase
func ParsePhase(s string) (Phase, error) {
	p := Phase(s)
	if !p.Valid() {
		return "", fmt.Errorf("unknown phase %q (want pre, in or post)", s)
	}
	return p, nil
}

// DefaultMeetingType is applied when a new meeting does not name one
const DefaultMeetingType = "weekly_status"

// Meeting represents a meeting as returned by the backend
type Meeting struct {
	ID           string        `json:"id"`
	Title        string        `json:"title"`
	Description  string        `json:"description,omitempty"`
	MeetingType  string        `json:"meeting_type"`
	Phase        Phase         `json:"phase"`
	StartTime    string        `json:"start_time,omitempty"`
	EndTime      string        `json:"end_time,omitempty"`
	Location     string        `json:"location,omitempty"`
	TeamsLink    string        `json:"teams_link,omitempty"`
	ProjectID    string        `json:"project_id,omitempty"`
	Participants []Participant `json:"participants,omitempty"`
	CreatedAt    string        `json:"created_at,omitempty"`
	UpdatedAt    string        `json:"updated_at,omitempty"`
}

// ScheduledDuration returns end minus start when both parse
func (m *Meeting) ScheduledDuration() (time.Duration, bool) {
	start, err := ParseTimestamp(m.StartTime)
	if err != nil {
		return 0, false
	}
	end, err := ParseTimestamp(m.EndTime)
	if err != nil || end.Before(start) {
		return 0, false
	}
	return end.Sub(start), true
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// ParseTimestamp accepts the timestamp shapes the backend and the CLI use.
// Values without a zone are read as UTC.
func ParseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised timestamp %q", s)
}
