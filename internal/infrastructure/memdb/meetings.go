package memdb

import (
	"sort"
	"strings"

	"github.com/johnquangdev/meetmate/internal/adapter/dto/meeting"
	"github.com/johnquangdev/meetmate/internal/domain/entities"
)

// ListMeetings returns meetings matching filter, newest start first
func (s *Store) ListMeetings(filter meeting.ListMeetingsRequest) ([]entities.Meeting, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	search := strings.ToLower(filter.Search)
	var out []entities.Meeting
	for _, id := range s.meetingOrder {
		m := s.meetings[id]
		if filter.Phase != "" && m.Phase != filter.Phase {
			continue
		}
		if filter.ProjectID != "" && m.ProjectID != filter.ProjectID {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(m.Title+" "+m.Description), search) {
			continue
		}
		out = append(out, s.meetingWithParticipants(m))
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartTime > out[j].StartTime
	})

	total := len(out)
	return page(out, filter.Skip, filter.Limit), total
}

// GetMeeting returns one meeting with its participants
func (s *Store) GetMeeting(id string) (entities.Meeting, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.meetings[id]
	if !ok {
		return entities.Meeting{}, notFound("Meeting not found")
	}
	return s.meetingWithParticipants(m), nil
}

// CreateMeeting stores a new meeting in the pre phase
func (s *Store) CreateMeeting(req meeting.CreateMeetingRequest) (entities.Meeting, error) {
	start, err := entities.ParseTimestamp(req.StartTime)
	if err != nil {
		return entities.Meeting{}, invalid("start_time: %v", err)
	}
	end, err := entities.ParseTimestamp(req.EndTime)
	if err != nil {
		return entities.Meeting{}, invalid("end_time: %v", err)
	}
	if end.Before(start) {
		return entities.Meeting{}, invalid("end_time must not be before start_time")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	meetingType := req.MeetingType
	if meetingType == "" {
		meetingType = entities.DefaultMeetingType
	}
	now := s.timestamp()
	m := &entities.Meeting{
		ID:          s.newID(),
		Title:       req.Title,
		Description: req.Description,
		MeetingType: meetingType,
		Phase:       entities.PhasePre,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Location:    req.Location,
		TeamsLink:   req.TeamsLink,
		ProjectID:   req.ProjectID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.meetings[m.ID] = m
	s.meetingOrder = append(s.meetingOrder, m.ID)
	return *m, nil
}

// UpdatePhase moves a meeting forward. Repeating the current phase is
// accepted and changes nothing.
func (s *Store) UpdatePhase(id string, target entities.Phase) (entities.Meeting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.meetings[id]
	if !ok {
		return entities.Meeting{}, notFound("Meeting not found")
	}
	if m.Phase != target {
		if !m.Phase.CanTransitionTo(target) {
			return entities.Meeting{}, conflict("Cannot move meeting from %s to %s", m.Phase, target)
		}
		m.Phase = target
		m.UpdatedAt = s.timestamp()
	}
	return s.meetingWithParticipants(m), nil
}

// ListParticipants returns the participants of a meeting
func (s *Store) ListParticipants(meetingID string) ([]entities.Participant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.meetings[meetingID]; !ok {
		return nil, notFound("Meeting not found")
	}
	return append([]entities.Participant(nil), s.participants[meetingID]...), nil
}

// AddParticipant adds someone to a meeting; emails are unique per meeting
func (s *Store) AddParticipant(meetingID string, req meeting.AddParticipantRequest) (entities.Participant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.meetings[meetingID]; !ok {
		return entities.Participant{}, notFound("Meeting not found")
	}
	for _, p := range s.participants[meetingID] {
		if strings.EqualFold(p.Email, req.Email) {
			return entities.Participant{}, conflict("%s is already a participant", req.Email)
		}
	}
	role := req.Role
	if role == "" {
		role = entities.ParticipantRoleAttendee
	}
	p := entities.Participant{
		UserID:         s.newID(),
		DisplayName:    req.DisplayName,
		Email:          req.Email,
		Role:           role,
		ResponseStatus: entities.ResponsePending,
	}
	s.participants[meetingID] = append(s.participants[meetingID], p)
	return p, nil
}

// RemoveParticipant removes someone from a meeting
func (s *Store) RemoveParticipant(meetingID, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.participants[meetingID]
	for i, p := range list {
		if p.UserID == userID {
			s.participants[meetingID] = append(list[:i:i], list[i+1:]...)
			return nil
		}
	}
	return notFound("Participant not found")
}

// ListChunks returns the transcript of a meeting
func (s *Store) ListChunks(meetingID string) ([]entities.TranscriptChunk, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.meetings[meetingID]; !ok {
		return nil, notFound("Meeting not found")
	}
	out := append([]entities.TranscriptChunk(nil), s.chunks[meetingID]...)
	entities.SortChunks(out)
	return out, nil
}

// IngestChunks appends transcript chunks to a meeting. The HTTP layer only
// routes here while the meeting is in progress.
func (s *Store) IngestChunks(meetingID string, chunks []meeting.IngestChunk) ([]entities.TranscriptChunk, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.meetings[meetingID]; !ok {
		return nil, notFound("Meeting not found")
	}
	out := make([]entities.TranscriptChunk, 0, len(chunks))
	for _, c := range chunks {
		chunk := entities.TranscriptChunk{
			ID:         s.newID(),
			MeetingID:  meetingID,
			ChunkIndex: c.ChunkIndex,
			Speaker:    c.Speaker,
			StartTime:  c.StartTime,
			EndTime:    c.EndTime,
			Text:       c.Text,
		}
		s.chunks[meetingID] = append(s.chunks[meetingID], chunk)
		out = append(out, chunk)
	}
	return out, nil
}

func (s *Store) meetingWithParticipants(m *entities.Meeting) entities.Meeting {
	out := *m
	out.Participants = append([]entities.Participant(nil), s.participants[m.ID]...)
	return out
}

func page[T any](items []T, skip, limit int) []T {
	if skip >= len(items) {
		return nil
	}
	items = items[skip:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
