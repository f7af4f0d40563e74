package presenter

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	apperrors "github.com/johnquangdev/meetmate/errors"
	"github.com/johnquangdev/meetmate/internal/domain/entities"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

// clock formats seconds from the start of a recording as m:ss
func clock(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	total := int(seconds)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

func truncate(s string, n int) string {
	r := []rune(strings.Join(strings.Fields(s), " "))
	if len(r) <= n {
		return string(r)
	}
	return string(r[:n-3]) + "..."
}

// groupNote describes a view group that is not plain live data, or returns ""
func groupNote(loading bool, err error, source entities.Source) string {
	switch {
	case loading:
		return "loading"
	case err != nil && source == entities.SourceMock:
		return "offline data: " + apperrors.UserMessage(err)
	case err != nil:
		return "error: " + apperrors.UserMessage(err)
	case source == entities.SourceMock:
		return "offline data"
	}
	return ""
}

func heading(w io.Writer, title, note string) {
	if note != "" {
		fmt.Fprintf(w, "\n== %s (%s)\n", title, note)
		return
	}
	fmt.Fprintf(w, "\n== %s\n", title)
}
