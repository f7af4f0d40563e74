package memdb

import (
	"time"

	"github.com/johnquangdev/meetmate/internal/domain/entities"
)

// Fixed identifiers of the demo data
const (
	SeedPreMeetingID  = "11111111-0000-4000-8000-000000000001"
	SeedInMeetingID   = "11111111-0000-4000-8000-000000000002"
	SeedPostMeetingID = "11111111-0000-4000-8000-000000000003"

	SeedTemplateID = "22222222-0000-4000-8000-000000000001"

	SeedDocumentID = "33333333-0000-4000-8000-000000000001"

	SeedActionRolloutID   = "44444444-0000-4000-8000-000000000001"
	SeedActionRunbookID   = "44444444-0000-4000-8000-000000000002"
	SeedActionCancelledID = "44444444-0000-4000-8000-000000000003"
)

// Seed fills the store with one meeting per phase and supporting data
func Seed(s *Store) {
	s.mu.Lock()
	defer s.mu.Unlock()

	base := s.now().Truncate(time.Hour)
	at := func(d time.Duration) string { return base.Add(d).Format(time.RFC3339) }
	created := s.timestamp()

	meetings := []*entities.Meeting{
		{
			ID:          SeedPreMeetingID,
			Title:       "Sprint 14 planning",
			Description: "Scope the payment gateway rollout",
			MeetingType: "sprint_planning",
			Phase:       entities.PhasePre,
			StartTime:   at(24 * time.Hour),
			EndTime:     at(25 * time.Hour),
			Location:    "Room 4.02",
			ProjectID:   "payments",
		},
		{
			ID:          SeedInMeetingID,
			Title:       "Weekly status",
			Description: "Delivery status across squads",
			MeetingType: entities.DefaultMeetingType,
			Phase:       entities.PhaseIn,
			StartTime:   at(0),
			EndTime:     at(time.Hour),
			ProjectID:   "payments",
		},
		{
			ID:          SeedPostMeetingID,
			Title:       "Gateway steering committee",
			Description: "Go/no-go for the payment gateway",
			MeetingType: "steering",
			Phase:       entities.PhasePost,
			StartTime:   at(-48 * time.Hour),
			EndTime:     at(-47 * time.Hour),
			ProjectID:   "payments",
		},
	}
	for _, m := range meetings {
		m.CreatedAt = created
		m.UpdatedAt = created
		s.meetings[m.ID] = m
		s.meetingOrder = append(s.meetingOrder, m.ID)
	}

	team := []entities.Participant{
		{UserID: "u-lan", DisplayName: "Lan Pham", Email: "lan@example.com", Role: entities.ParticipantRoleOrganizer, ResponseStatus: entities.ResponseAccepted},
		{UserID: "u-minh", DisplayName: "Minh Tran", Email: "minh@example.com", Role: entities.ParticipantRoleRequired, ResponseStatus: entities.ResponseAccepted},
		{UserID: "u-hoa", DisplayName: "Hoa Nguyen", Email: "hoa@example.com", Role: entities.ParticipantRoleOptional, ResponseStatus: entities.ResponseTentative},
	}
	for _, m := range meetings {
		s.participants[m.ID] = append([]entities.Participant(nil), team...)
	}

	s.chunks[SeedInMeetingID] = []entities.TranscriptChunk{
		{ID: "c-in-0", MeetingID: SeedInMeetingID, ChunkIndex: 0, Speaker: "Lan Pham", StartTime: 0, EndTime: 6.5, Text: "Let's start with the gateway rollout."},
		{ID: "c-in-1", MeetingID: SeedInMeetingID, ChunkIndex: 1, Speaker: "Minh Tran", StartTime: 6.5, EndTime: 14, Text: "Load tests pass, the runbook is still missing."},
	}
	s.chunks[SeedPostMeetingID] = []entities.TranscriptChunk{
		{ID: "c-post-0", MeetingID: SeedPostMeetingID, ChunkIndex: 0, Speaker: "Lan Pham", StartTime: 0, EndTime: 8, Text: "We agree to go live on the first of next month."},
		{ID: "c-post-1", MeetingID: SeedPostMeetingID, ChunkIndex: 1, Speaker: "Hoa Nguyen", StartTime: 8, EndTime: 17.5, Text: "Fraud rules need review before launch."},
		{ID: "c-post-2", MeetingID: SeedPostMeetingID, ChunkIndex: 2, Speaker: "Minh Tran", StartTime: 17.5, EndTime: 25, Text: "I will write the on-call runbook."},
	}

	s.addAction(&entities.ActionItem{ID: SeedActionRolloutID, MeetingID: SeedPostMeetingID, Description: "Schedule the production rollout", Owner: "Lan Pham", Deadline: at(7 * 24 * time.Hour)[:10], Priority: entities.PriorityHigh, Status: entities.ActionConfirmed})
	s.addAction(&entities.ActionItem{ID: SeedActionRunbookID, MeetingID: SeedPostMeetingID, Description: "Write the on-call runbook", Owner: "Minh Tran", Priority: entities.PriorityMedium, Status: entities.ActionProposed})
	s.addAction(&entities.ActionItem{ID: SeedActionCancelledID, MeetingID: SeedPostMeetingID, Description: "Evaluate a second acquirer", Priority: entities.PriorityLow, Status: entities.ActionCancelled})
	s.addAction(&entities.ActionItem{ID: "a-in-1", MeetingID: SeedInMeetingID, Description: "Share load test report", Owner: "Minh Tran", Priority: entities.PriorityMedium, Status: entities.ActionProposed})

	s.decisions["d-post-1"] = &entities.DecisionItem{ID: "d-post-1", MeetingID: SeedPostMeetingID, Description: "Go live on the first of next month", DecidedBy: "Lan Pham", Status: entities.DecisionConfirmed}
	s.itemOrder = append(s.itemOrder, "d-post-1")
	s.risks["r-post-1"] = &entities.RiskItem{ID: "r-post-1", MeetingID: SeedPostMeetingID, Description: "Fraud rules not reviewed", Severity: entities.SeverityHigh, Mitigation: "Review with the risk team", Owner: "Hoa Nguyen", Status: entities.RiskOpen}
	s.itemOrder = append(s.itemOrder, "r-post-1")

	s.templates[SeedTemplateID] = &entities.MinutesTemplate{
		ID:          SeedTemplateID,
		Name:        "Standard minutes",
		Description: "Decisions, actions and risks",
		MeetingType: entities.DefaultMeetingType,
		Sections:    append([]entities.TemplateSection(nil), defaultSections...),
		IsDefault:   true,
		CreatedAt:   created,
	}

	s.documents[SeedDocumentID] = &entities.KnowledgeDocument{
		ID:           SeedDocumentID,
		Title:        "Payment gateway rollout plan",
		Description:  "Phased rollout of the payment gateway with fraud rule review and on-call runbook.",
		Source:       "confluence",
		Category:     "project",
		Tags:         []string{"payments", "rollout"},
		DocumentType: "pdf",
		FileURL:      "/files/" + SeedDocumentID + "/rollout.pdf",
		CreatedAt:    created,
	}
	s.docOrder = append(s.docOrder, SeedDocumentID)
}

func (s *Store) addAction(a *entities.ActionItem) {
	s.actions[a.ID] = a
	s.itemOrder = append(s.itemOrder, a.ID)
}
