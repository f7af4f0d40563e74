package repositories

import (
	"context"

	"github.com/johnquangdev/meetmate/internal/adapter/dto/meeting"
	"github.com/johnquangdev/meetmate/internal/domain/entities"
)

// MeetingRepository defines access to meetings on the backend
type MeetingRepository interface {
	// List retrieves meetings matching the filter
	List(ctx context.Context, filter meeting.ListMeetingsRequest) ([]entities.Meeting, int, error)

	// Get retrieves a meeting by its ID
	Get(ctx context.Context, id string) (*entities.Meeting, error)

	// Create creates a new meeting
	Create(ctx context.Context, req meeting.CreateMeetingRequest) (*entities.Meeting, error)

	// UpdatePhase moves a meeting to another lifecycle phase
	UpdatePhase(ctx context.Context, id string, phase entities.Phase) (*entities.Meeting, error)
}

// ParticipantRepository defines access to meeting membership
type ParticipantRepository interface {
	// List retrieves the participants of a meeting
	List(ctx context.Context, meetingID string) ([]entities.Participant, error)

	// Add adds a participant to a meeting
	Add(ctx context.Context, meetingID string, req meeting.AddParticipantRequest) (*entities.Participant, error)

	// Remove removes a participant from a meeting
	Remove(ctx context.Context, meetingID, userID string) error
}

// TranscriptRepository defines access to transcript chunks
type TranscriptRepository interface {
	// ListChunks retrieves chunks ordered by start time
	ListChunks(ctx context.Context, meetingID string) ([]entities.TranscriptChunk, error)

	// Ingest appends chunks to a meeting transcript
	Ingest(ctx context.Context, meetingID string, req meeting.IngestTranscriptRequest) ([]entities.TranscriptChunk, error)
}

// ItemRepository defines access to extracted actions, decisions and risks
type ItemRepository interface {
	ListActions(ctx context.Context, meetingID string) ([]entities.ActionItem, error)
	ListDecisions(ctx context.Context, meetingID string) ([]entities.DecisionItem, error)
	ListRisks(ctx context.Context, meetingID string) ([]entities.RiskItem, error)

	// UpdateAction patches owner, deadline, priority or status
	UpdateAction(ctx context.Context, id string, req meeting.UpdateActionRequest) (*entities.ActionItem, error)

	// SyncAction pushes one action item to an external task system
	SyncAction(ctx context.Context, id string, target entities.SyncTarget) (*entities.TaskSyncResult, error)
}
