package memdb

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/meetmate/internal/adapter/dto/common"
	"github.com/johnquangdev/meetmate/internal/adapter/dto/knowledge"
	"github.com/johnquangdev/meetmate/internal/adapter/dto/meeting"
	"github.com/johnquangdev/meetmate/internal/adapter/dto/minutes"
	"github.com/johnquangdev/meetmate/internal/domain/entities"
)

func newSeeded(t *testing.T) *Store {
	t.Helper()
	clock := time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)
	s := New(WithClock(func() time.Time { return clock }))
	Seed(s)
	return s
}

func TestListMeetings_FiltersAndPages(t *testing.T) {
	s := newSeeded(t)

	all, total := s.ListMeetings(meeting.ListMeetingsRequest{})
	require.Len(t, all, 3)
	assert.Equal(t, 3, total)
	assert.Equal(t, SeedPreMeetingID, all[0].ID, "newest start first")
	assert.Len(t, all[0].Participants, 3)

	post, total := s.ListMeetings(meeting.ListMeetingsRequest{Phase: entities.PhasePost})
	require.Len(t, post, 1)
	assert.Equal(t, 1, total)

	paged, total := s.ListMeetings(meeting.ListMeetingsRequest{Skip: 1, Limit: 1})
	require.Len(t, paged, 1)
	assert.Equal(t, 3, total)
	assert.Equal(t, SeedInMeetingID, paged[0].ID)

	found, _ := s.ListMeetings(meeting.ListMeetingsRequest{Search: "STEERING"})
	require.Len(t, found, 1)
	assert.Equal(t, SeedPostMeetingID, found[0].ID)
}

func TestUpdatePhase(t *testing.T) {
	s := newSeeded(t)

	m, err := s.UpdatePhase(SeedPreMeetingID, entities.PhaseIn)
	require.NoError(t, err)
	assert.Equal(t, entities.PhaseIn, m.Phase)

	_, err = s.UpdatePhase(SeedPreMeetingID, entities.PhaseIn)
	assert.NoError(t, err, "repeating the current phase is accepted")

	_, err = s.UpdatePhase(SeedPostMeetingID, entities.PhasePre)
	assert.True(t, errors.Is(err, ErrConflict))

	_, err = s.UpdatePhase("missing", entities.PhaseIn)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestCreateMeeting_Validates(t *testing.T) {
	s := New()

	_, err := s.CreateMeeting(meeting.CreateMeetingRequest{Title: "x", StartTime: "2026-03-02T10:00", EndTime: "2026-03-02T09:00"})
	assert.True(t, errors.Is(err, ErrInvalid))

	m, err := s.CreateMeeting(meeting.CreateMeetingRequest{Title: "Retro", StartTime: "2026-03-02T10:00", EndTime: "2026-03-02T11:00"})
	require.NoError(t, err)
	assert.Equal(t, entities.PhasePre, m.Phase)
	assert.Equal(t, entities.DefaultMeetingType, m.MeetingType)
}

func TestParticipants(t *testing.T) {
	s := newSeeded(t)

	p, err := s.AddParticipant(SeedPreMeetingID, meeting.AddParticipantRequest{Email: "an@example.com", Role: entities.ParticipantRoleAttendee})
	require.NoError(t, err)
	assert.Equal(t, entities.ResponsePending, p.ResponseStatus)

	_, err = s.AddParticipant(SeedPreMeetingID, meeting.AddParticipantRequest{Email: "AN@example.com"})
	assert.True(t, errors.Is(err, ErrConflict))

	require.NoError(t, s.RemoveParticipant(SeedPreMeetingID, p.UserID))
	list, err := s.ListParticipants(SeedPreMeetingID)
	require.NoError(t, err)
	assert.Len(t, list, 3)

	assert.True(t, errors.Is(s.RemoveParticipant(SeedPreMeetingID, p.UserID), ErrNotFound))
}

func TestIngestChunks_KeepsTimeOrder(t *testing.T) {
	s := newSeeded(t)
	chunk := meeting.IngestChunk{ChunkIndex: 2, Speaker: "Hoa Nguyen", StartTime: 14, EndTime: 20, Text: "Agreed."}

	_, err := s.IngestChunks("missing", []meeting.IngestChunk{chunk})
	assert.True(t, errors.Is(err, ErrNotFound))

	out, err := s.IngestChunks(SeedInMeetingID, []meeting.IngestChunk{chunk})
	require.NoError(t, err)
	require.Len(t, out, 1)

	all, err := s.ListChunks(SeedInMeetingID)
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.Equal(t, "Agreed.", all[2].Text)
}

func TestSyncAction(t *testing.T) {
	s := newSeeded(t)

	first, err := s.SyncAction(SeedActionRolloutID, entities.SyncJira)
	require.NoError(t, err)
	assert.Equal(t, "MEET-101", first.ExternalID)
	assert.True(t, first.Synced)

	again, err := s.SyncAction(SeedActionRolloutID, entities.SyncJira)
	require.NoError(t, err)
	assert.Equal(t, first.ExternalID, again.ExternalID, "sync is idempotent per target")

	_, err = s.SyncAction(SeedActionCancelledID, entities.SyncJira)
	assert.True(t, errors.Is(err, ErrConflict))

	actions, err := s.ListActions(SeedPostMeetingID)
	require.NoError(t, err)
	assert.Equal(t, "MEET-101", actions[0].ExternalTaskRefs[entities.SyncJira])
}

func TestUpdateAction(t *testing.T) {
	s := newSeeded(t)
	owner := "Hoa Nguyen"
	deadline := "2026-04-01"

	a, err := s.UpdateAction(SeedActionRunbookID, meeting.UpdateActionRequest{Owner: &owner, Deadline: &deadline})
	require.NoError(t, err)
	assert.Equal(t, owner, a.Owner)
	assert.Equal(t, deadline, a.Deadline)

	bad := "next week"
	_, err = s.UpdateAction(SeedActionRunbookID, meeting.UpdateActionRequest{Deadline: &bad})
	assert.True(t, errors.Is(err, ErrInvalid))
}

func TestMinutesWorkflow(t *testing.T) {
	s := newSeeded(t)

	_, err := s.LatestMinutes(SeedPostMeetingID)
	assert.True(t, errors.Is(err, ErrNotFound))

	_, err = s.GenerateMinutes(minutes.GenerateMinutesRequest{MeetingID: SeedInMeetingID})
	assert.True(t, errors.Is(err, ErrConflict), "minutes need an ended meeting")

	req := minutes.GenerateMinutesRequest{MeetingID: SeedPostMeetingID, IncludeActions: true, IncludeDecisions: true, IncludeRisks: true, IncludeSummary: true}
	v1, err := s.GenerateMinutes(req)
	require.NoError(t, err)
	assert.Equal(t, 1, v1.Version)
	assert.Equal(t, entities.MinutesDraft, v1.Status)
	assert.Contains(t, v1.MinutesMarkdown, "## Decisions")
	assert.Contains(t, v1.MinutesMarkdown, "Go live on the first of next month")
	assert.Contains(t, v1.MinutesMarkdown, "Write the on-call runbook (Minh Tran, medium)")
	assert.NotEmpty(t, v1.ExecutiveSummary)

	v2, err := s.GenerateMinutes(req)
	require.NoError(t, err)
	assert.Equal(t, 2, v2.Version)

	latest, err := s.LatestMinutes(SeedPostMeetingID)
	require.NoError(t, err)
	assert.Equal(t, v2.ID, latest.ID)

	approved := entities.MinutesApproved
	_, err = s.UpdateMinutes(v2.ID, minutes.UpdateMinutesRequest{Status: &approved})
	assert.True(t, errors.Is(err, ErrConflict), "draft cannot skip review")

	reviewed := entities.MinutesReviewed
	_, err = s.UpdateMinutes(v2.ID, minutes.UpdateMinutesRequest{Status: &reviewed})
	require.NoError(t, err)
	m, err := s.UpdateMinutes(v2.ID, minutes.UpdateMinutesRequest{Status: &approved})
	require.NoError(t, err)
	assert.Equal(t, entities.MinutesApproved, m.Status)

	text := "# edited"
	_, err = s.UpdateMinutes(v2.ID, minutes.UpdateMinutesRequest{MinutesMarkdown: &text})
	assert.True(t, errors.Is(err, ErrConflict), "approved minutes are frozen")

	_, err = s.UpdateMinutes(v2.ID, minutes.UpdateMinutesRequest{})
	assert.True(t, errors.Is(err, ErrInvalid))
}

func TestDistribute_PartialFailure(t *testing.T) {
	s := newSeeded(t)
	m, err := s.GenerateMinutes(minutes.GenerateMinutesRequest{MeetingID: SeedPostMeetingID})
	require.NoError(t, err)

	results, err := s.Distribute(minutes.DistributeRequest{
		MinutesID:  m.ID,
		MeetingID:  SeedPostMeetingID,
		Recipients: []string{"lan@example.com", "ghost@nowhere.invalid"},
	})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, entities.DeliverySent, results[0].Status)
	assert.Equal(t, entities.DeliveryFailed, results[1].Status)
	assert.NotEmpty(t, results[1].Error)

	_, err = s.Distribute(minutes.DistributeRequest{MinutesID: m.ID, MeetingID: SeedPreMeetingID, Recipients: []string{"lan@example.com"}})
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestTemplates(t *testing.T) {
	s := newSeeded(t)

	created := s.CreateTemplate(minutes.TemplateRequest{
		Name:        "Steering",
		MeetingType: entities.DefaultMeetingType,
		Sections:    []entities.TemplateSection{{Title: "Summary"}},
		IsDefault:   true,
	})
	old, err := s.GetTemplate(SeedTemplateID)
	require.NoError(t, err)
	assert.False(t, old.IsDefault, "one default per meeting type")

	list := s.ListTemplates()
	require.Len(t, list, 2)
	assert.Equal(t, created.ID, list[0].ID)

	assert.True(t, errors.Is(s.DeleteTemplate(created.ID), ErrConflict))
	require.NoError(t, s.DeleteTemplate(SeedTemplateID))
	_, err = s.GetTemplate(SeedTemplateID)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestKnowledge(t *testing.T) {
	s := newSeeded(t)

	doc := s.UploadDocument(knowledge.UploadRequest{Title: "Fraud rules", Description: "Rules for card payments", Category: "policy", Tags: []string{"payments"}}, "rules.docx")
	assert.Equal(t, "docx", doc.DocumentType)
	assert.Contains(t, doc.FileURL, "rules.docx")

	docs, total := s.ListDocuments(knowledge.ListDocumentsRequest{})
	assert.Equal(t, 2, total)
	assert.Equal(t, doc.ID, docs[0].ID, "newest first")

	policy, total := s.ListDocuments(knowledge.ListDocumentsRequest{Category: "POLICY"})
	assert.Equal(t, 1, total)
	assert.Equal(t, doc.ID, policy[0].ID)

	hits := s.SearchDocuments(knowledge.SearchRequest{Query: "rollout runbook"})
	require.NotEmpty(t, hits)
	assert.Equal(t, SeedDocumentID, hits[0].Document.ID)
	assert.InDelta(t, 1.0, hits[0].Score, 0.001)

	assert.Empty(t, s.SearchDocuments(knowledge.SearchRequest{Query: "rollout", Tags: []string{"hr"}}))

	require.NoError(t, s.DeleteDocument(doc.ID))
	assert.True(t, errors.Is(s.DeleteDocument(doc.ID), ErrNotFound))
}

func TestWaitlistAndAssistant(t *testing.T) {
	s := newSeeded(t)

	require.NoError(t, s.JoinWaitlist(common.JoinWaitlistRequest{Email: "new@example.com"}))
	assert.True(t, errors.Is(s.JoinWaitlist(common.JoinWaitlistRequest{Email: "NEW@example.com"}), ErrConflict))

	ans, err := s.Ask(common.AskRequest{Message: "what is open?", Scope: entities.ScopeMeeting, MeetingID: SeedPostMeetingID})
	require.NoError(t, err)
	assert.Contains(t, ans.Answer, "2 open action items")
	assert.Equal(t, []string{SeedPostMeetingID}, ans.Citations)

	ans, err = s.Ask(common.AskRequest{Message: "rollout", Scope: entities.ScopeKnowledge})
	require.NoError(t, err)
	assert.Equal(t, []string{SeedDocumentID}, ans.Citations)

	_, err = s.Ask(common.AskRequest{Message: "x", Scope: entities.ScopeMeeting, MeetingID: "missing"})
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestTemplateFor_FallbackIsStable(t *testing.T) {
	s := newSeeded(t)
	for _, id := range []string{"tpl-retro", "tpl-planning", "tpl-zeta"} {
		s.templates[id] = &entities.MinutesTemplate{ID: id, MeetingType: id, IsDefault: true}
	}
	want := SeedTemplateID
	for id, tpl := range s.templates {
		if tpl.IsDefault && id < want {
			want = id
		}
	}

	for i := 0; i < 20; i++ {
		got, err := s.templateFor("", "workshop")
		require.NoError(t, err)
		assert.Equal(t, want, got.ID)
	}

	got, err := s.templateFor("", "tpl-zeta")
	require.NoError(t, err)
	assert.Equal(t, "tpl-zeta", got.ID, "a default for the meeting type wins")
}
