package meeting

import "github.com/johnquangdev/meetmate/internal/domain/entities"

// CreateMeetingRequest represents the request to create a meeting
type CreateMeetingRequest struct {
	Title       string `json:"title" validate:"required,min=1,max=255"`
	Description string `json:"description,omitempty"`
	MeetingType string `json:"meeting_type" validate:"required"`
	StartTime   string `json:"start_time" validate:"required"`
	EndTime     string `json:"end_time" validate:"required"`
	Location    string `json:"location,omitempty"`
	TeamsLink   string `json:"teams_link,omitempty" validate:"omitempty,url"`
	ProjectID   string `json:"project_id,omitempty"`
}

// ListMeetingsRequest represents query parameters for listing meetings
type ListMeetingsRequest struct {
	Phase     entities.Phase `query:"phase" validate:"omitempty,oneof=pre in post"`
	ProjectID string         `query:"project_id"`
	Search    string         `query:"search"`
	Skip      int            `query:"skip" validate:"min=0"`
	Limit     int            `query:"limit" validate:"min=0,max=500"`
}

// UpdatePhaseRequest represents the request to move a meeting to another phase
type UpdatePhaseRequest struct {
	Phase entities.Phase `json:"phase" validate:"required,oneof=pre in post"`
}

// AddParticipantRequest represents the request to add a participant
type AddParticipantRequest struct {
	Email       string                   `json:"email" validate:"required,email"`
	DisplayName string                   `json:"display_name,omitempty" validate:"omitempty,max=255"`
	Role        entities.ParticipantRole `json:"role" validate:"required,oneof=organizer required optional attendee"`
}

// IngestChunk is a transcript segment pushed by the manual ingest path
type IngestChunk struct {
	ChunkIndex int     `json:"chunk_index" validate:"min=0"`
	Speaker    string  `json:"speaker" validate:"required"`
	StartTime  float64 `json:"start_time" validate:"min=0"`
	EndTime    float64 `json:"end_time" validate:"gtefield=StartTime"`
	Text       string  `json:"text" validate:"required"`
}

// IngestTranscriptRequest represents a batch of transcript chunks
type IngestTranscriptRequest struct {
	Chunks []IngestChunk `json:"chunks" validate:"required,min=1,dive"`
}

// UpdateActionRequest patches the editable fields of an action item
type UpdateActionRequest struct {
	Owner    *string                `json:"owner,omitempty"`
	Deadline *string                `json:"deadline,omitempty"`
	Priority *entities.Priority     `json:"priority,omitempty" validate:"omitempty,oneof=low medium high critical"`
	Status   *entities.ActionStatus `json:"status,omitempty" validate:"omitempty,oneof=proposed confirmed in_progress done cancelled"`
}

// Empty reports whether the patch changes nothing
func (r UpdateActionRequest) Empty() bool {
	return r.Owner == nil && r.Deadline == nil && r.Priority == nil && r.Status == nil
}

// SyncActionRequest asks the backend to push an action item to a task system
type SyncActionRequest struct {
	Target entities.SyncTarget `json:"target" validate:"required,oneof=planner jira loffice"`
}
