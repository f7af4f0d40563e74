package entities

// ParticipantRole represents the role of a participant in a meeting
type ParticipantRole string

const (
	ParticipantRoleOrganizer ParticipantRole = "organizer"
	ParticipantRoleRequired  ParticipantRole = "required"
	ParticipantRoleOptional  ParticipantRole = "optional"
	ParticipantRoleAttendee  ParticipantRole = "attendee"
)

// ResponseStatus represents a participant's answer to the invitation
type ResponseStatus string

const (
	ResponseAccepted  ResponseStatus = "accepted"
	ResponseDeclined  ResponseStatus = "declined"
	ResponseTentative ResponseStatus = "tentative"
	ResponsePending   ResponseStatus = "pending"
)

// Participant represents a member of a meeting
type Participant struct {
	UserID         string          `json:"user_id"`
	DisplayName    string          `json:"display_name"`
	Email          string          `json:"email"`
	Role           ParticipantRole `json:"role"`
	ResponseStatus ResponseStatus  `json:"response_status"`
}

// IsOrganizer checks if the participant organises the meeting
func (p *Participant) IsOrganizer() bool {
	return p.Role == ParticipantRoleOrganizer
}

// IsAttending checks if the participant has not declined
func (p *Participant) IsAttending() bool {
	return p.ResponseStatus != ResponseDeclined
}

// Name returns the display name, falling back to the email address
func (p *Participant) Name() string {
	if p.DisplayName != "" {
		return p.DisplayName
	}
	return p.Email
}
