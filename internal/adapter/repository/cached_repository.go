package repository

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/johnquangdev/meetmate/internal/adapter/dto/meeting"
	"github.com/johnquangdev/meetmate/internal/domain/entities"
	"github.com/johnquangdev/meetmate/internal/domain/repositories"
	"github.com/johnquangdev/meetmate/internal/infrastructure/cache"
)

func meetingKey(id string) string {
	return "meeting:" + id
}

// CachedMeetingRepository caches single-meeting reads. Lists are never
// cached so the dashboard always reflects the backend.
type CachedMeetingRepository struct {
	repositories.MeetingRepository
	store  cache.Store
	ttl    time.Duration
	logger *zap.Logger
}

var _ repositories.MeetingRepository = (*CachedMeetingRepository)(nil)

// NewCachedMeetingRepository wraps next with store
func NewCachedMeetingRepository(next repositories.MeetingRepository, store cache.Store, ttl time.Duration, logger *zap.Logger) *CachedMeetingRepository {
	return &CachedMeetingRepository{MeetingRepository: next, store: store, ttl: ttl, logger: logger}
}

// Get serves a cached meeting when present, otherwise fetches and stores it
func (r *CachedMeetingRepository) Get(ctx context.Context, id string) (*entities.Meeting, error) {
	if raw, ok, err := r.store.Get(ctx, meetingKey(id)); err != nil {
		r.logger.Warn("cache.get.error", zap.String("meeting_id", id), zap.Error(err))
	} else if ok {
		var m entities.Meeting
		if err := json.Unmarshal([]byte(raw), &m); err == nil {
			r.logger.Debug("cache.hit", zap.String("meeting_id", id))
			return &m, nil
		}
	}

	m, err := r.MeetingRepository.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	r.put(ctx, m)
	return m, nil
}

// Create creates a meeting and primes the cache with it
func (r *CachedMeetingRepository) Create(ctx context.Context, req meeting.CreateMeetingRequest) (*entities.Meeting, error) {
	m, err := r.MeetingRepository.Create(ctx, req)
	if err != nil {
		return nil, err
	}
	r.put(ctx, m)
	return m, nil
}

// UpdatePhase drops the cached meeting before and after the change
func (r *CachedMeetingRepository) UpdatePhase(ctx context.Context, id string, phase entities.Phase) (*entities.Meeting, error) {
	r.invalidate(ctx, id)
	m, err := r.MeetingRepository.UpdatePhase(ctx, id, phase)
	r.invalidate(ctx, id)
	return m, err
}

func (r *CachedMeetingRepository) put(ctx context.Context, m *entities.Meeting) {
	if m == nil || m.ID == "" {
		return
	}
	raw, err := json.Marshal(m)
	if err != nil {
		return
	}
	if err := r.store.Set(ctx, meetingKey(m.ID), string(raw), r.ttl); err != nil {
		r.logger.Warn("cache.set.error", zap.String("meeting_id", m.ID), zap.Error(err))
	}
}

func (r *CachedMeetingRepository) invalidate(ctx context.Context, id string) {
	if err := r.store.Delete(ctx, meetingKey(id)); err != nil {
		r.logger.Warn("cache.delete.error", zap.String("meeting_id", id), zap.Error(err))
	}
}

// CachedParticipantRepository invalidates the cached meeting whenever its
// membership changes, since meetings embed their participants
type CachedParticipantRepository struct {
	repositories.ParticipantRepository
	meetings *CachedMeetingRepository
}

var _ repositories.ParticipantRepository = (*CachedParticipantRepository)(nil)

// NewCachedParticipantRepository wraps next
func NewCachedParticipantRepository(next repositories.ParticipantRepository, meetings *CachedMeetingRepository) *CachedParticipantRepository {
	return &CachedParticipantRepository{ParticipantRepository: next, meetings: meetings}
}

// Add adds a participant and drops the cached meeting
func (r *CachedParticipantRepository) Add(ctx context.Context, meetingID string, req meeting.AddParticipantRequest) (*entities.Participant, error) {
	p, err := r.ParticipantRepository.Add(ctx, meetingID, req)
	r.meetings.invalidate(ctx, meetingID)
	return p, err
}

// Remove removes a participant and drops the cached meeting
func (r *CachedParticipantRepository) Remove(ctx context.Context, meetingID, userID string) error {
	err := r.ParticipantRepository.Remove(ctx, meetingID, userID)
	r.meetings.invalidate(ctx, meetingID)
	return err
}
