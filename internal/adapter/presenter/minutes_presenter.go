package presenter

import (
	"fmt"
	"io"
	"strings"

	"github.com/johnquangdev/meetmate/internal/domain/entities"
)

// Minutes writes the header and markdown of a minutes version
func Minutes(w io.Writer, m *entities.MeetingMinutes, source entities.Source) error {
	if m == nil {
		_, err := fmt.Fprintln(w, "No minutes generated yet.")
		return err
	}
	header := fmt.Sprintf("Minutes v%d (%s)", m.Version, m.Status)
	if source == entities.SourceMock {
		header += " [offline draft, not saved]"
	}
	if m.GeneratedAt != "" {
		header += " generated " + m.GeneratedAt
	}
	if _, err := fmt.Fprintf(w, "%s\n\n", header); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, m.MinutesMarkdown); err != nil {
		return err
	}
	// offline drafts cannot move through the workflow
	next := m.Status.NextStatuses()
	if source == entities.SourceMock || len(next) == 0 {
		return nil
	}
	names := make([]string, len(next))
	for i, s := range next {
		names[i] = string(s)
	}
	_, err := fmt.Fprintf(w, "\nNext: %s\n", strings.Join(names, " or "))
	return err
}

// Distribution writes the per-recipient delivery outcome
func Distribution(w io.Writer, results []entities.DistributionResult) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "RECIPIENT\tSTATUS\tERROR")
	for _, r := range results {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", r.Recipient, r.Status, orDash(r.Error))
	}
	return tw.Flush()
}

// Templates writes a template table
func Templates(w io.Writer, templates []entities.MinutesTemplate) error {
	if len(templates) == 0 {
		_, err := fmt.Fprintln(w, "No templates.")
		return err
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tNAME\tMEETING TYPE\tDEFAULT\tSECTIONS")
	for _, t := range templates {
		def := ""
		if t.IsDefault {
			def = "yes"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\n", t.ID, t.Name, orDash(t.MeetingType), orDash(def), len(t.Sections))
	}
	return tw.Flush()
}

// Template writes one template with its sections
func Template(w io.Writer, t *entities.MinutesTemplate) error {
	if t == nil {
		return nil
	}
	tw := newTable(w)
	fmt.Fprintf(tw, "ID:\t%s\n", t.ID)
	fmt.Fprintf(tw, "Name:\t%s\n", t.Name)
	fmt.Fprintf(tw, "Meeting type:\t%s\n", orDash(t.MeetingType))
	fmt.Fprintf(tw, "Default:\t%t\n", t.IsDefault)
	if t.Description != "" {
		fmt.Fprintf(tw, "Description:\t%s\n", t.Description)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	for i, s := range t.Sections {
		line := fmt.Sprintf("  %d. %s", i+1, s.Title)
		if s.Description != "" {
			line += ": " + s.Description
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
