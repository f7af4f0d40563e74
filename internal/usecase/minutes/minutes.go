package minutes

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	apperrors "github.com/johnquangdev/meetmate/errors"
	dto "github.com/johnquangdev/meetmate/internal/adapter/dto/minutes"
	"github.com/johnquangdev/meetmate/internal/domain/entities"
	"github.com/johnquangdev/meetmate/internal/domain/repositories"
	usecaseErrors "github.com/johnquangdev/meetmate/internal/usecase/errors"
	"github.com/johnquangdev/meetmate/internal/usecase/fallback"
)

// Service defines the minutes workflow
type Service interface {
	// Latest retrieves the newest minutes of a meeting
	Latest(ctx context.Context, meetingID string) (*entities.MeetingMinutes, error)

	// Generate asks the backend for new minutes, falling back to a local
	// draft when allowed
	Generate(ctx context.Context, input GenerateInput) (fallback.Result[*entities.MeetingMinutes], error)

	// Review moves draft minutes to reviewed
	Review(ctx context.Context, m *entities.MeetingMinutes) (*entities.MeetingMinutes, error)

	// Approve moves reviewed minutes to approved
	Approve(ctx context.Context, m *entities.MeetingMinutes) (*entities.MeetingMinutes, error)

	// Reject sends reviewed minutes back to draft
	Reject(ctx context.Context, m *entities.MeetingMinutes) (*entities.MeetingMinutes, error)

	// Edit replaces the markdown of minutes that are not approved
	Edit(ctx context.Context, m *entities.MeetingMinutes, markdown string) (*entities.MeetingMinutes, error)

	// Distribute emails minutes and reports per recipient
	Distribute(ctx context.Context, input DistributeInput) ([]entities.DistributionResult, error)
}

// Ensure MinutesService implements Service interface
var _ Service = (*MinutesService)(nil)

// MinutesService handles the minutes workflow
type MinutesService struct {
	repo            repositories.MinutesRepository
	fallbackEnabled bool
	logger          *zap.Logger
	now             func() time.Time
}

// NewMinutesService creates a new minutes service
func NewMinutesService(repo repositories.MinutesRepository, fallbackEnabled bool, logger *zap.Logger) *MinutesService {
	return &MinutesService{
		repo:            repo,
		fallbackEnabled: fallbackEnabled,
		logger:          logger,
		now:             func() time.Time { return time.Now().UTC() },
	}
}

// Latest retrieves the newest minutes of a meeting
func (s *MinutesService) Latest(ctx context.Context, meetingID string) (*entities.MeetingMinutes, error) {
	return s.repo.Latest(ctx, meetingID)
}

// GenerateInput represents input for generating minutes
type GenerateInput struct {
	Meeting    *entities.Meeting
	TemplateID string
	// Items already loaded by the caller, used only for the offline draft
	Actions   []entities.ActionItem
	Decisions []entities.DecisionItem
	Risks     []entities.RiskItem
	Previous  *entities.MeetingMinutes
}

// Generate creates a new minutes version. When the backend fails and
// fallback is enabled the result holds a local draft tagged as mock and the
// backend error is still returned.
func (s *MinutesService) Generate(ctx context.Context, input GenerateInput) (fallback.Result[*entities.MeetingMinutes], error) {
	if input.Meeting == nil || input.Meeting.ID == "" {
		return fallback.Result[*entities.MeetingMinutes]{}, apperrors.ErrMissingID("meeting")
	}

	m, err := s.repo.Generate(ctx, dto.GenerateMinutesRequest{
		MeetingID:        input.Meeting.ID,
		TemplateID:       input.TemplateID,
		IncludeActions:   true,
		IncludeDecisions: true,
		IncludeRisks:     true,
		IncludeSummary:   true,
	})
	if err == nil {
		s.logger.Info("minutes.generated",
			zap.String("meeting_id", input.Meeting.ID),
			zap.String("minutes_id", m.ID),
			zap.Int("version", m.Version),
		)
		return fallback.Live(m), nil
	}

	s.logger.Error("minutes.generate.error", zap.String("meeting_id", input.Meeting.ID), zap.Error(err))
	if !s.fallbackEnabled || ctx.Err() != nil {
		return fallback.Result[*entities.MeetingMinutes]{}, fmt.Errorf("failed to generate minutes: %w", err)
	}

	version := 0
	if input.Previous != nil {
		version = input.Previous.Version
	}
	draft := fallback.Minutes(fallback.MinutesInput{
		Meeting:   input.Meeting,
		Actions:   input.Actions,
		Decisions: input.Decisions,
		Risks:     input.Risks,
		Version:   version,
		Now:       s.now(),
	})
	s.logger.Warn("minutes.generate.fallback", zap.String("meeting_id", input.Meeting.ID))
	return fallback.Mock(&draft, err), fmt.Errorf("failed to generate minutes: %w", err)
}

// Review moves draft minutes to reviewed
func (s *MinutesService) Review(ctx context.Context, m *entities.MeetingMinutes) (*entities.MeetingMinutes, error) {
	return s.move(ctx, m, entities.MinutesReviewed)
}

// Approve moves reviewed minutes to approved
func (s *MinutesService) Approve(ctx context.Context, m *entities.MeetingMinutes) (*entities.MeetingMinutes, error) {
	return s.move(ctx, m, entities.MinutesApproved)
}

// Reject sends reviewed minutes back to draft
func (s *MinutesService) Reject(ctx context.Context, m *entities.MeetingMinutes) (*entities.MeetingMinutes, error) {
	if m != nil && m.Status != entities.MinutesReviewed {
		return nil, apperrors.ErrInvalidTransition("minutes", string(m.Status), string(entities.MinutesDraft))
	}
	return s.move(ctx, m, entities.MinutesDraft)
}

// move validates locally, sends the status change and merges only the
// status into a copy of m; the rest of the resource is not refetched
func (s *MinutesService) move(ctx context.Context, m *entities.MeetingMinutes, target entities.MinutesStatus) (*entities.MeetingMinutes, error) {
	if err := s.requireRemote(m); err != nil {
		return nil, err
	}
	if !m.Status.CanTransitionTo(target) {
		return nil, apperrors.ErrInvalidTransition("minutes", string(m.Status), string(target)).
			WithDetail("minutes_id", m.ID)
	}

	if _, err := s.repo.UpdateStatus(ctx, m.ID, target); err != nil {
		s.logger.Error("minutes.status.error",
			zap.String("minutes_id", m.ID),
			zap.String("target", string(target)),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to mark minutes %s: %w", target, err)
	}
	s.logger.Info("minutes.status",
		zap.String("minutes_id", m.ID),
		zap.String("from", string(m.Status)),
		zap.String("to", string(target)),
	)

	merged := *m
	merged.Status = target
	return &merged, nil
}

// Edit replaces the markdown of minutes that are not approved
func (s *MinutesService) Edit(ctx context.Context, m *entities.MeetingMinutes, markdown string) (*entities.MeetingMinutes, error) {
	if err := s.requireRemote(m); err != nil {
		return nil, err
	}
	if m.Status == entities.MinutesApproved {
		return nil, usecaseErrors.ErrMinutesApproved
	}
	if strings.TrimSpace(markdown) == "" {
		return nil, apperrors.ErrInvalidArgument("minutes cannot be empty")
	}
	updated, err := s.repo.UpdateContent(ctx, m.ID, markdown)
	if err != nil {
		return nil, fmt.Errorf("failed to update minutes: %w", err)
	}
	return updated, nil
}

// DistributeInput represents input for sending minutes
type DistributeInput struct {
	Minutes    *entities.MeetingMinutes
	Recipients []string
	Subject    string
	Message    string
}

// Distribute emails minutes. A nil error with failed entries means the
// backend accepted the request but some deliveries failed.
func (s *MinutesService) Distribute(ctx context.Context, input DistributeInput) ([]entities.DistributionResult, error) {
	if err := s.requireRemote(input.Minutes); err != nil {
		return nil, err
	}
	recipients := make([]string, 0, len(input.Recipients))
	for _, r := range input.Recipients {
		if r = strings.TrimSpace(r); r != "" {
			recipients = append(recipients, r)
		}
	}
	if len(recipients) == 0 {
		return nil, usecaseErrors.ErrNoRecipients
	}

	results, err := s.repo.Distribute(ctx, dto.DistributeRequest{
		MinutesID:  input.Minutes.ID,
		MeetingID:  input.Minutes.MeetingID,
		Recipients: recipients,
		Subject:    input.Subject,
		Message:    input.Message,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to distribute minutes: %w", err)
	}

	failed := 0
	for _, r := range results {
		if r.Status != entities.DeliverySent {
			failed++
		}
	}
	s.logger.Info("minutes.distributed",
		zap.String("minutes_id", input.Minutes.ID),
		zap.Int("recipients", len(results)),
		zap.Int("failed", failed),
	)
	return results, nil
}

func (s *MinutesService) requireRemote(m *entities.MeetingMinutes) error {
	if m == nil {
		return usecaseErrors.ErrMinutesNotLoaded
	}
	if m.ID == "" {
		return apperrors.ErrMissingID("minutes")
	}
	if fallback.IsMockID(m.ID) {
		return usecaseErrors.ErrMinutesOffline
	}
	return nil
}
