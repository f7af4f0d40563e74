package presenter

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/johnquangdev/meetmate/internal/domain/entities"
)

// Actions writes an action item table
func Actions(w io.Writer, actions []entities.ActionItem) error {
	if len(actions) == 0 {
		_, err := fmt.Fprintln(w, "No action items.")
		return err
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tSTATUS\tPRIORITY\tOWNER\tDEADLINE\tTASKS\tDESCRIPTION")
	for _, a := range actions {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			a.ID, a.Status, a.Priority, orDash(a.Owner), orDash(a.Deadline), orDash(taskRefs(a.ExternalTaskRefs)), truncate(a.Description, 60))
	}
	return tw.Flush()
}

func taskRefs(refs map[entities.SyncTarget]string) string {
	out := make([]string, 0, len(refs))
	for target, ref := range refs {
		out = append(out, string(target)+":"+ref)
	}
	sort.Strings(out)
	return strings.Join(out, ",")
}

// Decisions writes a decision table
func Decisions(w io.Writer, decisions []entities.DecisionItem) error {
	if len(decisions) == 0 {
		_, err := fmt.Fprintln(w, "No decisions.")
		return err
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tSTATUS\tDECIDED BY\tDESCRIPTION")
	for _, d := range decisions {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", d.ID, d.Status, orDash(d.DecidedBy), truncate(d.Description, 70))
	}
	return tw.Flush()
}

// Risks writes a risk table
func Risks(w io.Writer, risks []entities.RiskItem) error {
	if len(risks) == 0 {
		_, err := fmt.Fprintln(w, "No risks.")
		return err
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tSEVERITY\tSTATUS\tOWNER\tDESCRIPTION")
	for _, r := range risks {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", r.ID, r.Severity, r.Status, orDash(r.Owner), truncate(r.Description, 60))
	}
	return tw.Flush()
}

// SyncResults writes one line per pushed action item and a summary
func SyncResults(w io.Writer, target entities.SyncTarget, results []entities.TaskSyncResult) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "ITEM\tRESULT\tTASK")
	failed := 0
	for _, r := range results {
		if r.Synced {
			fmt.Fprintf(tw, "%s\tsynced\t%s\n", r.ItemID, orDash(r.ExternalID))
			continue
		}
		failed++
		fmt.Fprintf(tw, "%s\tfailed\t%s\n", orDash(r.ItemID), orDash(r.Error))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\n%d of %d items synced to %s.\n", len(results)-failed, len(results), target)
	return err
}
