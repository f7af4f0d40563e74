package repositories

import (
	"context"

	"github.com/johnquangdev/meetmate/internal/adapter/dto/minutes"
	"github.com/johnquangdev/meetmate/internal/domain/entities"
)

// MinutesRepository defines access to generated minutes
type MinutesRepository interface {
	// Generate creates a new version of the minutes
	Generate(ctx context.Context, req minutes.GenerateMinutesRequest) (*entities.MeetingMinutes, error)

	// Latest retrieves the newest version for a meeting
	Latest(ctx context.Context, meetingID string) (*entities.MeetingMinutes, error)

	// UpdateStatus changes the approval status
	UpdateStatus(ctx context.Context, id string, status entities.MinutesStatus) (*entities.MeetingMinutes, error)

	// UpdateContent replaces the markdown body
	UpdateContent(ctx context.Context, id, markdown string) (*entities.MeetingMinutes, error)

	// Distribute emails the minutes and reports per recipient
	Distribute(ctx context.Context, req minutes.DistributeRequest) ([]entities.DistributionResult, error)
}

// TemplateRepository defines access to minutes templates
type TemplateRepository interface {
	List(ctx context.Context) ([]entities.MinutesTemplate, error)
	Get(ctx context.Context, id string) (*entities.MinutesTemplate, error)
	Create(ctx context.Context, req minutes.TemplateRequest) (*entities.MinutesTemplate, error)
	Update(ctx context.Context, id string, req minutes.TemplateRequest) (*entities.MinutesTemplate, error)
	Delete(ctx context.Context, id string) error
}
