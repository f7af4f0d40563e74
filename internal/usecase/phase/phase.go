package phase

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	apperrors "github.com/johnquangdev/meetmate/errors"
	"github.com/johnquangdev/meetmate/internal/domain/entities"
	"github.com/johnquangdev/meetmate/internal/domain/repositories"
)

// Service defines the meeting phase transitions
type Service interface {
	// StartMeeting moves a meeting from pre to in
	StartMeeting(ctx context.Context, m *entities.Meeting) (*Result, error)

	// EndMeeting moves a meeting from in to post
	EndMeeting(ctx context.Context, m *entities.Meeting) (*Result, error)

	// Transition moves a meeting to target when allowed
	Transition(ctx context.Context, m *entities.Meeting, target entities.Phase) (*Result, error)
}

// Result of a phase action
type Result struct {
	// Meeting is the refetched meeting, or the input when nothing was sent
	Meeting *entities.Meeting
	// Changed is false when the guard skipped the request
	Changed bool
}

// Ensure Controller implements Service interface
var _ Service = (*Controller)(nil)

// Controller drives phase transitions through the meeting repository
type Controller struct {
	meetings repositories.MeetingRepository
	logger   *zap.Logger
}

// NewController creates a new phase controller
func NewController(meetings repositories.MeetingRepository, logger *zap.Logger) *Controller {
	return &Controller{meetings: meetings, logger: logger}
}

// StartMeeting is a no-op when the meeting is already in or past the in phase
func (c *Controller) StartMeeting(ctx context.Context, m *entities.Meeting) (*Result, error) {
	return c.advance(ctx, m, entities.PhaseIn)
}

// EndMeeting is a no-op when the meeting has already ended
func (c *Controller) EndMeeting(ctx context.Context, m *entities.Meeting) (*Result, error) {
	return c.advance(ctx, m, entities.PhasePost)
}

func (c *Controller) advance(ctx context.Context, m *entities.Meeting, target entities.Phase) (*Result, error) {
	if m == nil || m.ID == "" {
		return nil, apperrors.ErrMissingID("meeting")
	}
	if m.Phase.Order() >= target.Order() {
		c.logger.Debug("phase.transition.skipped",
			zap.String("meeting_id", m.ID),
			zap.String("phase", string(m.Phase)),
			zap.String("target", string(target)),
		)
		return &Result{Meeting: m}, nil
	}
	return c.Transition(ctx, m, target)
}

// Transition issues the phase update and refetches the meeting. Moving to the
// current phase is a no-op; any move other than the next phase is refused
// without contacting the backend.
func (c *Controller) Transition(ctx context.Context, m *entities.Meeting, target entities.Phase) (*Result, error) {
	if m == nil || m.ID == "" {
		return nil, apperrors.ErrMissingID("meeting")
	}
	if m.Phase == target {
		return &Result{Meeting: m}, nil
	}
	if !m.Phase.CanTransitionTo(target) {
		return nil, apperrors.ErrInvalidTransition("meeting", string(m.Phase), string(target)).
			WithDetail("meeting_id", m.ID)
	}

	if _, err := c.meetings.UpdatePhase(ctx, m.ID, target); err != nil {
		c.logger.Error("phase.transition.error",
			zap.String("meeting_id", m.ID),
			zap.String("target", string(target)),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to move meeting to %s: %w", target, err)
	}
	c.logger.Info("phase.transition",
		zap.String("meeting_id", m.ID),
		zap.String("from", string(m.Phase)),
		zap.String("to", string(target)),
	)

	fresh, err := c.meetings.Get(ctx, m.ID)
	if err != nil {
		// the transition happened; keep a local copy with the new phase
		local := *m
		local.Phase = target
		return &Result{Meeting: &local, Changed: true}, fmt.Errorf("failed to refetch meeting: %w", err)
	}
	return &Result{Meeting: fresh, Changed: true}, nil
}
