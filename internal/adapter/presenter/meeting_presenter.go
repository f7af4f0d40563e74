package presenter

import (
	"fmt"
	"io"

	"github.com/johnquangdev/meetmate/internal/domain/entities"
)

// Meetings writes a meeting table
func Meetings(w io.Writer, meetings []entities.Meeting, total int) error {
	if len(meetings) == 0 {
		_, err := fmt.Fprintln(w, "No meetings found.")
		return err
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tPHASE\tTYPE\tSTART\tTITLE")
	for _, m := range meetings {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", m.ID, m.Phase, orDash(m.MeetingType), orDash(m.StartTime), truncate(m.Title, 60))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if total > len(meetings) {
		_, err := fmt.Fprintf(w, "\nShowing %d of %d meetings.\n", len(meetings), total)
		return err
	}
	return nil
}

// Meeting writes the details of one meeting
func Meeting(w io.Writer, m *entities.Meeting) error {
	if m == nil {
		_, err := fmt.Fprintln(w, "No meeting.")
		return err
	}
	tw := newTable(w)
	fmt.Fprintf(tw, "ID:\t%s\n", m.ID)
	fmt.Fprintf(tw, "Title:\t%s\n", m.Title)
	fmt.Fprintf(tw, "Phase:\t%s\n", m.Phase)
	fmt.Fprintf(tw, "Type:\t%s\n", orDash(m.MeetingType))
	fmt.Fprintf(tw, "Start:\t%s\n", orDash(m.StartTime))
	fmt.Fprintf(tw, "End:\t%s\n", orDash(m.EndTime))
	if d, ok := m.ScheduledDuration(); ok {
		fmt.Fprintf(tw, "Duration:\t%s\n", d)
	}
	if m.Location != "" {
		fmt.Fprintf(tw, "Location:\t%s\n", m.Location)
	}
	if m.TeamsLink != "" {
		fmt.Fprintf(tw, "Teams link:\t%s\n", m.TeamsLink)
	}
	if m.ProjectID != "" {
		fmt.Fprintf(tw, "Project:\t%s\n", m.ProjectID)
	}
	if m.Description != "" {
		fmt.Fprintf(tw, "Description:\t%s\n", m.Description)
	}
	return tw.Flush()
}

// PhaseChange reports the outcome of a start or end request
func PhaseChange(w io.Writer, m *entities.Meeting, changed bool) error {
	if m == nil {
		return nil
	}
	if !changed {
		_, err := fmt.Fprintf(w, "Meeting %s is already %s; nothing sent.\n", m.ID, m.Phase)
		return err
	}
	_, err := fmt.Fprintf(w, "Meeting %s is now %s.\n", m.ID, m.Phase)
	return err
}

// Participants writes a participant table
func Participants(w io.Writer, participants []entities.Participant) error {
	if len(participants) == 0 {
		_, err := fmt.Fprintln(w, "No participants.")
		return err
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "USER ID\tNAME\tEMAIL\tROLE\tRESPONSE")
	for _, p := range participants {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", p.UserID, p.Name(), orDash(p.Email), p.Role, p.ResponseStatus)
	}
	return tw.Flush()
}

// Transcript writes chunks as timestamped lines
func Transcript(w io.Writer, chunks []entities.TranscriptChunk) error {
	if len(chunks) == 0 {
		_, err := fmt.Fprintln(w, "No transcript yet.")
		return err
	}
	for _, c := range chunks {
		if _, err := fmt.Fprintf(w, "[%s-%s] %s: %s\n", clock(c.StartTime), clock(c.EndTime), orDash(c.Speaker), c.Text); err != nil {
			return err
		}
	}
	return nil
}
