package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/johnquangdev/meetmate/internal/adapter/dto/common"
	"github.com/johnquangdev/meetmate/internal/adapter/dto/knowledge"
	"github.com/johnquangdev/meetmate/internal/adapter/presenter"
	"github.com/johnquangdev/meetmate/internal/domain/entities"
)

func newKnowledgeCommand(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "knowledge",
		Short:   "Manage the Knowledge Hub",
		Aliases: []string{"kb"},
	}
	cmd.AddCommand(newKnowledgeListCommand(s))
	cmd.AddCommand(newKnowledgeSearchCommand(s))
	cmd.AddCommand(newKnowledgeUploadCommand(s))
	cmd.AddCommand(newKnowledgeDeleteCommand(s))
	return cmd
}

func newKnowledgeListCommand(s *session) *cobra.Command {
	var filter knowledge.ListDocumentsRequest
	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List documents, newest first",
		Aliases: []string{"ls"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := s.open(cmd.Context())
			if err != nil {
				return err
			}
			docs, total, err := app.Knowledge.List(cmd.Context(), filter)
			if err != nil {
				return err
			}
			return s.print(common.ListResponse[entities.KnowledgeDocument]{Items: docs, Total: total}, func(w io.Writer) error {
				return presenter.Documents(w, docs)
			})
		},
	}
	cmd.Flags().StringVar(&filter.Category, "category", "", "Filter by category")
	cmd.Flags().IntVar(&filter.Skip, "skip", 0, "Number of documents to skip")
	cmd.Flags().IntVarP(&filter.Limit, "limit", "l", 50, "Maximum number of results")
	return cmd
}

func newKnowledgeSearchCommand(s *session) *cobra.Command {
	var req knowledge.SearchRequest
	cmd := &cobra.Command{
		Use:   "search <query>...",
		Short: "Search documents",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req.Query = strings.Join(args, " ")
			app, err := s.open(cmd.Context())
			if err != nil {
				return err
			}
			results, err := app.Knowledge.Search(cmd.Context(), req)
			if err != nil {
				return err
			}
			return s.print(knowledge.SearchResponse{Query: req.Query, Results: results}, func(w io.Writer) error {
				return presenter.SearchResults(w, results)
			})
		},
	}
	cmd.Flags().IntVarP(&req.Limit, "limit", "l", 10, "Maximum number of hits")
	cmd.Flags().StringVar(&req.Category, "category", "", "Only documents in this category")
	cmd.Flags().StringSliceVar(&req.Tags, "tag", nil, "Only documents with this tag, repeatable")
	return cmd
}

func newKnowledgeUploadCommand(s *session) *cobra.Command {
	var req knowledge.UploadRequest
	cmd := &cobra.Command{
		Use:   "upload <file>",
		Short: "Upload a document",
		Long: `Upload a document to the Knowledge Hub. The title defaults to the file
name and the document type to its extension.

Example:
  meetmate knowledge upload rollout.pdf --category project --tag payments --tag rollout`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening document: %w", err)
			}
			defer f.Close()

			name := filepath.Base(args[0])
			if req.Title == "" {
				req.Title = strings.TrimSuffix(name, filepath.Ext(name))
			}
			app, err := s.open(cmd.Context())
			if err != nil {
				return err
			}
			doc, err := app.Knowledge.Upload(cmd.Context(), req, name, f)
			if err != nil {
				return err
			}
			return s.print(doc, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "Uploaded %q as %s.\n", doc.Title, doc.ID)
				return err
			})
		},
	}
	cmd.Flags().StringVarP(&req.Title, "title", "t", "", "Title")
	cmd.Flags().StringVar(&req.Description, "description", "", "Description")
	cmd.Flags().StringVar(&req.Source, "source", "", "Where the document comes from")
	cmd.Flags().StringVar(&req.Category, "category", "", "Category")
	cmd.Flags().StringVar(&req.DocumentType, "type", "", "Document type (default: file extension)")
	cmd.Flags().StringSliceVar(&req.Tags, "tag", nil, "Tag, repeatable")
	return cmd
}

func newKnowledgeDeleteCommand(s *session) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <document-id>",
		Short:   "Delete a document",
		Aliases: []string{"rm"},
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := s.open(cmd.Context())
			if err != nil {
				return err
			}
			if err := app.Knowledge.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			s.printf("Deleted %s.\n", args[0])
			return nil
		},
	}
}
