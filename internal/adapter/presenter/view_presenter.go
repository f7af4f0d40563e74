package presenter

import (
	"fmt"
	"io"
	"strings"

	"github.com/johnquangdev/meetmate/internal/domain/entities"
	"github.com/johnquangdev/meetmate/internal/usecase/view"
)

var phaseLabels = map[entities.Phase]string{
	entities.PhasePre:  "Upcoming",
	entities.PhaseIn:   "Live",
	entities.PhasePost: "Finished",
}

// Dashboard writes the meeting list bucketed by phase
func Dashboard(w io.Writer, s view.DashboardState) error {
	if note := groupNote(s.Meetings.Loading, s.Meetings.Err, s.Meetings.Source); note != "" {
		fmt.Fprintf(w, "(%s)\n", note)
	}
	buckets := s.Buckets()
	for _, p := range entities.Phases {
		heading(w, fmt.Sprintf("%s (%d)", phaseLabels[p], len(buckets[p])), "")
		if len(buckets[p]) == 0 {
			continue
		}
		if err := Meetings(w, buckets[p], 0); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "\n%d meetings in total.\n", s.Total)
	return err
}

// Detail writes the meeting header, the tab strip and the active tab
func Detail(w io.Writer, s view.DetailState, tab view.Tab) error {
	if err := Meeting(w, s.Meeting.Data); err != nil {
		return err
	}
	var tabs []string
	for _, p := range entities.Phases {
		label := string(p)
		if p == s.ActiveTab {
			label = "[" + label + "]"
		}
		tabs = append(tabs, label)
	}
	fmt.Fprintf(w, "\nTabs: %s\n", strings.Join(tabs, " "))

	switch t := tab.(type) {
	case *view.PreMeeting:
		return PreMeeting(w, t.State())
	case *view.InMeeting:
		return InMeeting(w, t.State())
	case *view.PostMeeting:
		return PostMeeting(w, t.State())
	}
	return nil
}

// PreMeeting writes the preparation panels
func PreMeeting(w io.Writer, s view.PreMeetingState) error {
	heading(w, "Participants", groupNote(s.Participants.Loading, s.Participants.Err, s.Participants.Source))
	if err := Participants(w, s.Participants.Data); err != nil {
		return err
	}
	heading(w, "Related documents", groupNote(s.Agenda.Loading, s.Agenda.Err, s.Agenda.Source))
	if err := SearchResults(w, s.Agenda.Data); err != nil {
		return err
	}
	heading(w, "Minutes templates", groupNote(s.Templates.Loading, s.Templates.Err, s.Templates.Source))
	return Templates(w, s.Templates.Data)
}

// InMeeting writes the live panels
func InMeeting(w io.Writer, s view.InMeetingState) error {
	heading(w, "Transcript", groupNote(s.Transcript.Loading, s.Transcript.Err, s.Transcript.Source))
	if err := Transcript(w, s.Transcript.Data); err != nil {
		return err
	}
	return items(w, s.Actions, s.Decisions, s.Risks)
}

// PostMeeting writes statistics, minutes and the extracted items
func PostMeeting(w io.Writer, s view.PostMeetingState) error {
	heading(w, "Statistics", "")
	if err := Statistics(w, s.Statistics()); err != nil {
		return err
	}
	heading(w, "Minutes", groupNote(s.Minutes.Loading, s.Minutes.Err, s.Minutes.Source))
	if err := Minutes(w, s.Minutes.Data, s.Minutes.Source); err != nil {
		return err
	}
	if err := items(w, s.Actions, s.Decisions, s.Risks); err != nil {
		return err
	}
	heading(w, "Participants", groupNote(s.Participants.Loading, s.Participants.Err, s.Participants.Source))
	if err := Participants(w, s.Participants.Data); err != nil {
		return err
	}
	if len(s.Distribution) > 0 {
		heading(w, "Last distribution", "")
		if err := Distribution(w, s.Distribution); err != nil {
			return err
		}
	}
	return nil
}

func items(
	w io.Writer,
	actions view.Group[[]entities.ActionItem],
	decisions view.Group[[]entities.DecisionItem],
	risks view.Group[[]entities.RiskItem],
) error {
	heading(w, "Action items", groupNote(actions.Loading, actions.Err, actions.Source))
	if err := Actions(w, actions.Data); err != nil {
		return err
	}
	heading(w, "Decisions", groupNote(decisions.Loading, decisions.Err, decisions.Source))
	if err := Decisions(w, decisions.Data); err != nil {
		return err
	}
	heading(w, "Risks", groupNote(risks.Loading, risks.Err, risks.Source))
	return Risks(w, risks.Data)
}

// Statistics writes the numbers of the statistics panel
func Statistics(w io.Writer, st view.Statistics) error {
	tw := newTable(w)
	fmt.Fprintf(tw, "Recorded:\t%s\n", clock(st.DurationSeconds))
	fmt.Fprintf(tw, "Transcript chunks:\t%d\n", st.TranscriptChunks)
	fmt.Fprintf(tw, "Speakers:\t%s\n", orDash(strings.Join(st.Speakers, ", ")))
	fmt.Fprintf(tw, "Participants:\t%d\n", st.Participants)
	fmt.Fprintf(tw, "Action items:\t%d (%d open)\n", st.Actions, st.OpenActions)
	fmt.Fprintf(tw, "Decisions:\t%d\n", st.Decisions)
	fmt.Fprintf(tw, "Risks:\t%d (%d high)\n", st.Risks, st.HighRisks)
	return tw.Flush()
}

// KnowledgeHub writes the document list and the last search
func KnowledgeHub(w io.Writer, s view.KnowledgeHubState) error {
	heading(w, "Documents", groupNote(s.Documents.Loading, s.Documents.Err, s.Documents.Source))
	if err := Documents(w, s.Documents.Data); err != nil {
		return err
	}
	if s.Query == "" {
		return nil
	}
	heading(w, fmt.Sprintf("Results for %q", s.Query), groupNote(s.Results.Loading, s.Results.Err, s.Results.Source))
	return SearchResults(w, s.Results.Data)
}
