package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	apperrors "github.com/johnquangdev/meetmate/errors"
	"github.com/johnquangdev/meetmate/internal/adapter/presenter"
	"github.com/johnquangdev/meetmate/internal/domain/entities"
	"github.com/johnquangdev/meetmate/internal/usecase/minutes"
	"github.com/johnquangdev/meetmate/internal/usecase/view"
)

// minutesOutput is the structured form of a minutes version
type minutesOutput struct {
	Minutes *entities.MeetingMinutes `json:"minutes"`
	Source  entities.Source          `json:"source,omitempty"`
}

func newMinutesCommand(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "minutes",
		Short: "Generate, review and distribute meeting minutes",
		Long: `Generate, review and distribute meeting minutes.

Minutes move draft -> reviewed -> approved; reviewed minutes can be sent
back to draft. Approved minutes are final.`,
	}
	cmd.AddCommand(newMinutesGenerateCommand(s))
	cmd.AddCommand(newMinutesShowCommand(s))
	cmd.AddCommand(newMinutesMoveCommand(s, "review", "Mark the latest minutes reviewed", (*minutes.MinutesService).Review))
	cmd.AddCommand(newMinutesMoveCommand(s, "approve", "Approve the latest minutes", (*minutes.MinutesService).Approve))
	cmd.AddCommand(newMinutesMoveCommand(s, "reject", "Send reviewed minutes back to draft", (*minutes.MinutesService).Reject))
	cmd.AddCommand(newMinutesEditCommand(s))
	cmd.AddCommand(newMinutesDistributeCommand(s))
	return cmd
}

func newMinutesGenerateCommand(s *session) *cobra.Command {
	var templateID string
	cmd := &cobra.Command{
		Use:   "generate <meeting-id>",
		Short: "Generate a new minutes version",
		Long: `Generate a new minutes version for a finished meeting.

When the backend cannot generate minutes and fallback is enabled, an offline
draft built from the loaded items is shown. It is marked as such, is not
saved, and the backend error is still reported.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			app, err := s.open(ctx)
			if err != nil {
				return err
			}
			tab, err := mountPostMeeting(ctx, app, args[0])
			if err != nil {
				return err
			}
			defer tab.Unmount()

			source, genErr := tab.GenerateMinutes(ctx, templateID)
			if source == "" {
				return genErr
			}
			st := tab.State()
			if err := s.print(minutesOutput{Minutes: st.Minutes.Data, Source: source}, func(w io.Writer) error {
				return presenter.Minutes(w, st.Minutes.Data, source)
			}); err != nil {
				return err
			}
			return genErr
		},
	}
	cmd.Flags().StringVar(&templateID, "template", "", "Template id (default: the default template for the meeting type)")
	return cmd
}

func mountPostMeeting(ctx context.Context, app *App, meetingID string) (*view.PostMeeting, error) {
	m, err := app.Meetings.Get(ctx, meetingID)
	if err != nil {
		return nil, err
	}
	tab := view.NewPostMeeting(app.ViewDeps(), m)
	if err := tab.Mount(ctx); err != nil {
		return nil, err
	}
	return tab, nil
}

func newMinutesShowCommand(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "show <meeting-id>",
		Short: "Print the latest minutes of a meeting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := s.open(cmd.Context())
			if err != nil {
				return err
			}
			// a 404 means no minutes were generated yet
			m, err := app.MinutesService.Latest(cmd.Context(), args[0])
			if err != nil && !apperrors.IsNotFound(err) {
				return err
			}
			return s.print(minutesOutput{Minutes: m, Source: sourceOf(m)}, func(w io.Writer) error {
				return presenter.Minutes(w, m, sourceOf(m))
			})
		},
	}
}

func sourceOf(m *entities.MeetingMinutes) entities.Source {
	if m == nil {
		return ""
	}
	return entities.SourceLive
}

func newMinutesMoveCommand(
	s *session,
	use, short string,
	move func(*minutes.MinutesService, context.Context, *entities.MeetingMinutes) (*entities.MeetingMinutes, error),
) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <meeting-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			app, err := s.open(ctx)
			if err != nil {
				return err
			}
			current, err := app.MinutesService.Latest(ctx, args[0])
			if err != nil {
				return err
			}
			updated, err := move(app.MinutesService, ctx, current)
			if err != nil {
				return err
			}
			return s.print(minutesOutput{Minutes: updated, Source: entities.SourceLive}, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "Minutes v%d are now %s.\n", updated.Version, updated.Status)
				return err
			})
		},
	}
}

func newMinutesEditCommand(s *session) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "edit <meeting-id>",
		Short: "Replace the markdown of the latest minutes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				data []byte
				err  error
			)
			if file == "-" {
				data, err = io.ReadAll(s.deps.In)
			} else {
				data, err = os.ReadFile(file)
			}
			if err != nil {
				return fmt.Errorf("reading minutes: %w", err)
			}

			ctx := cmd.Context()
			app, err := s.open(ctx)
			if err != nil {
				return err
			}
			current, err := app.MinutesService.Latest(ctx, args[0])
			if err != nil {
				return err
			}
			updated, err := app.MinutesService.Edit(ctx, current, string(data))
			if err != nil {
				return err
			}
			return s.print(minutesOutput{Minutes: updated, Source: entities.SourceLive}, func(w io.Writer) error {
				return presenter.Minutes(w, updated, entities.SourceLive)
			})
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "Markdown file, - for stdin (required)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func newMinutesDistributeCommand(s *session) *cobra.Command {
	var (
		to      []string
		subject string
		message string
	)
	cmd := &cobra.Command{
		Use:   "distribute <meeting-id>",
		Short: "Email the latest minutes",
		Long: `Email the latest minutes. Each recipient gets its own delivery result;
a failed delivery does not stop the others.

Example:
  meetmate minutes distribute <id> --to lan@example.com --to minh@example.com`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			app, err := s.open(ctx)
			if err != nil {
				return err
			}
			current, err := app.MinutesService.Latest(ctx, args[0])
			if err != nil {
				return err
			}
			results, err := app.MinutesService.Distribute(ctx, minutes.DistributeInput{
				Minutes:    current,
				Recipients: to,
				Subject:    subject,
				Message:    message,
			})
			if err != nil {
				return err
			}
			return s.print(results, func(w io.Writer) error {
				return presenter.Distribution(w, results)
			})
		},
	}
	cmd.Flags().StringSliceVar(&to, "to", nil, "Recipient email, repeatable (required)")
	cmd.Flags().StringVar(&subject, "subject", "", "Email subject")
	cmd.Flags().StringVar(&message, "message", "", "Message above the minutes")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}
