package presenter

import (
	"fmt"
	"io"
	"strings"

	"github.com/johnquangdev/meetmate/internal/domain/entities"
)

// Documents writes a document table
func Documents(w io.Writer, docs []entities.KnowledgeDocument) error {
	if len(docs) == 0 {
		_, err := fmt.Fprintln(w, "No documents.")
		return err
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tTYPE\tCATEGORY\tTAGS\tTITLE")
	for _, d := range docs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", d.ID, orDash(d.DocumentType), orDash(d.Category), orDash(strings.Join(d.Tags, ",")), truncate(d.Title, 60))
	}
	return tw.Flush()
}

// SearchResults writes ranked hits with their snippet
func SearchResults(w io.Writer, results []entities.KnowledgeSearchResult) error {
	if len(results) == 0 {
		_, err := fmt.Fprintln(w, "No matching documents.")
		return err
	}
	for i, r := range results {
		if _, err := fmt.Fprintf(w, "%d. %s (%.2f) %s\n", i+1, r.Document.Title, r.Score, r.Document.ID); err != nil {
			return err
		}
		if r.Snippet != "" {
			if _, err := fmt.Fprintf(w, "   %s\n", r.Snippet); err != nil {
				return err
			}
		}
	}
	return nil
}

// Answer writes an assistant reply and its citations
func Answer(w io.Writer, scope entities.ChatContextOverride, a *entities.AssistantAnswer) error {
	if a == nil {
		return nil
	}
	label := string(scope.Scope)
	if scope.Title != "" {
		label += ": " + scope.Title
	}
	if _, err := fmt.Fprintf(w, "[%s]\n%s\n", label, a.Answer); err != nil {
		return err
	}
	if len(a.Citations) > 0 {
		_, err := fmt.Fprintf(w, "\nSources: %s\n", strings.Join(a.Citations, ", "))
		return err
	}
	return nil
}
