package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	apperrors "github.com/johnquangdev/meetmate/errors"
	"github.com/johnquangdev/meetmate/internal/adapter/dto/common"
	"github.com/johnquangdev/meetmate/internal/adapter/dto/meeting"
	"github.com/johnquangdev/meetmate/internal/adapter/presenter"
	"github.com/johnquangdev/meetmate/internal/domain/entities"
	"github.com/johnquangdev/meetmate/internal/usecase/phase"
)

func newMeetingCommand(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "meeting",
		Short:   "Manage meetings",
		Aliases: []string{"meetings"},
	}
	cmd.AddCommand(newMeetingListCommand(s))
	cmd.AddCommand(newMeetingGetCommand(s))
	cmd.AddCommand(newMeetingCreateCommand(s))
	cmd.AddCommand(newMeetingPhaseCommand(s, "start", "Move a meeting to the in phase", entities.PhaseIn))
	cmd.AddCommand(newMeetingPhaseCommand(s, "end", "Move a meeting to the post phase", entities.PhasePost))
	cmd.AddCommand(newMeetingWatchCommand(s))
	return cmd
}

func newMeetingListCommand(s *session) *cobra.Command {
	var (
		filter meeting.ListMeetingsRequest
		phaseF string
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List meetings",
		Long: `List meetings, upcoming first.

Examples:
  meetmate meeting list --phase in
  meetmate meeting list --search steering -o json`,
		Aliases: []string{"ls"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if phaseF != "" {
				p, err := entities.ParsePhase(phaseF)
				if err != nil {
					return err
				}
				filter.Phase = p
			}
			app, err := s.open(cmd.Context())
			if err != nil {
				return err
			}
			items, total, err := app.Meetings.List(cmd.Context(), filter)
			if err != nil {
				return err
			}
			return s.print(common.ListResponse[entities.Meeting]{Items: items, Total: total}, func(w io.Writer) error {
				return presenter.Meetings(w, items, total)
			})
		},
	}
	cmd.Flags().StringVar(&phaseF, "phase", "", "Filter by phase: pre, in, post")
	cmd.Flags().StringVar(&filter.ProjectID, "project", "", "Filter by project id")
	cmd.Flags().StringVarP(&filter.Search, "search", "s", "", "Search in titles")
	cmd.Flags().IntVar(&filter.Skip, "skip", 0, "Number of meetings to skip")
	cmd.Flags().IntVarP(&filter.Limit, "limit", "l", 50, "Maximum number of results")
	return cmd
}

func newMeetingGetCommand(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "get <meeting-id>",
		Short: "Show one meeting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := s.open(cmd.Context())
			if err != nil {
				return err
			}
			m, err := app.Meetings.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return s.print(m, func(w io.Writer) error {
				return presenter.Meeting(w, m)
			})
		},
	}
}

func newMeetingCreateCommand(s *session) *cobra.Command {
	var (
		req      meeting.CreateMeetingRequest
		duration time.Duration
	)
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a meeting",
		Long: `Create a meeting. New meetings always start in the pre phase.

Times accept RFC3339 or "2006-01-02 15:04" (UTC). Either --end or
--duration is required.

Examples:
  meetmate meeting create --title "Sprint Review" --start "2026-03-06 10:00" --duration 1h
  meetmate meeting create --title "Steering" --type steering --start 2026-03-06T10:00:00Z --end 2026-03-06T11:00:00Z`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := fillEndTime(&req, duration); err != nil {
				return err
			}
			app, err := s.open(cmd.Context())
			if err != nil {
				return err
			}
			m, err := app.Meetings.Create(cmd.Context(), req)
			if err != nil {
				return err
			}
			return s.print(m, func(w io.Writer) error {
				fmt.Fprintln(w, "Meeting created.")
				return presenter.Meeting(w, m)
			})
		},
	}
	cmd.Flags().StringVarP(&req.Title, "title", "t", "", "Meeting title (required)")
	cmd.Flags().StringVar(&req.MeetingType, "type", "", "Meeting type (default "+entities.DefaultMeetingType+")")
	cmd.Flags().StringVar(&req.StartTime, "start", "", "Start time (required)")
	cmd.Flags().StringVar(&req.EndTime, "end", "", "End time")
	cmd.Flags().DurationVar(&duration, "duration", 0, "Length of the meeting, used when --end is not set")
	cmd.Flags().StringVar(&req.Description, "description", "", "Description")
	cmd.Flags().StringVar(&req.Location, "location", "", "Location")
	cmd.Flags().StringVar(&req.TeamsLink, "teams-link", "", "Online meeting link")
	cmd.Flags().StringVar(&req.ProjectID, "project", "", "Project id")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("start")
	return cmd
}

func fillEndTime(req *meeting.CreateMeetingRequest, duration time.Duration) error {
	if req.EndTime != "" {
		return nil
	}
	if duration <= 0 {
		return apperrors.ErrInvalidArgument("either --end or --duration is required")
	}
	start, err := entities.ParseTimestamp(req.StartTime)
	if err != nil {
		return apperrors.ErrInvalidArgument(err.Error())
	}
	req.StartTime = start.UTC().Format(time.RFC3339)
	req.EndTime = start.Add(duration).UTC().Format(time.RFC3339)
	return nil
}

// phaseOutput is the structured form of a start or end result
type phaseOutput struct {
	Meeting *entities.Meeting `json:"meeting"`
	Changed bool              `json:"changed"`
}

func newMeetingPhaseCommand(s *session, use, short string, target entities.Phase) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <meeting-id>",
		Short: short,
		Long: short + `.

Nothing is sent when the meeting is already at or past that phase.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			app, err := s.open(ctx)
			if err != nil {
				return err
			}
			// the guard must see the backend phase, not a cached copy
			m, err := app.LiveMeetings.Get(ctx, args[0])
			if err != nil {
				return err
			}
			var res *phase.Result
			if target == entities.PhaseIn {
				res, err = app.Phase.StartMeeting(ctx, m)
			} else {
				res, err = app.Phase.EndMeeting(ctx, m)
			}
			if err != nil {
				return err
			}
			return s.print(phaseOutput{Meeting: res.Meeting, Changed: res.Changed}, func(w io.Writer) error {
				return presenter.PhaseChange(w, res.Meeting, res.Changed)
			})
		},
	}
}

func newMeetingWatchCommand(s *session) *cobra.Command {
	var interval time.Duration
	cmd := &cobra.Command{
		Use:   "watch <meeting-id>",
		Short: "Follow the phase of a meeting",
		Long: `Poll a meeting and print every phase change until it has ended.

Phase changes made by other clients are only seen through polling.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := s.open(cmd.Context())
			if err != nil {
				return err
			}
			if interval <= 0 {
				interval = app.Config.Behavior.WatchInterval
			}
			return watchMeeting(cmd.Context(), s, app, args[0], interval)
		},
	}
	cmd.Flags().DurationVar(&interval, "interval", 0, "Poll interval (default MEETMATE_WATCH_INTERVAL)")
	return cmd
}

func watchMeeting(ctx context.Context, s *session, app *App, id string, interval time.Duration) error {
	ticker := backoff.NewTicker(backoff.NewConstantBackOff(interval))
	defer ticker.Stop()

	var last entities.Phase
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

		m, err := app.LiveMeetings.Get(ctx, id)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			// a missing meeting will not come back
			if apperrors.IsNotFound(err) {
				return err
			}
			app.Logger.Warn("meeting.watch.error", zap.String("meeting_id", id), zap.Error(err))
			continue
		}
		if m.Phase != last {
			last = m.Phase
			err := s.print(m, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "%s  %s is %s\n", time.Now().Format(time.TimeOnly), m.Title, m.Phase)
				return err
			})
			if err != nil {
				return err
			}
		}
		if _, more := m.Phase.Next(); !more {
			return nil
		}
	}
}
