package cli

import (
	"context"
	"io"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	apperrors "github.com/johnquangdev/meetmate/errors"
	"github.com/johnquangdev/meetmate/internal/adapter/dto/meeting"
	"github.com/johnquangdev/meetmate/internal/adapter/presenter"
	"github.com/johnquangdev/meetmate/internal/domain/entities"
)

// itemsOutput is the structured form of items list
type itemsOutput struct {
	Actions   []entities.ActionItem   `json:"actions,omitempty"`
	Decisions []entities.DecisionItem `json:"decisions,omitempty"`
	Risks     []entities.RiskItem     `json:"risks,omitempty"`
}

func newItemsCommand(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "items",
		Short: "Action items, decisions and risks extracted from meetings",
	}

	var kind string
	list := &cobra.Command{
		Use:   "list <meeting-id>",
		Short: "List extracted items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := s.open(cmd.Context())
			if err != nil {
				return err
			}
			out, err := loadItems(cmd.Context(), app, args[0], kind)
			if err != nil {
				return err
			}
			return s.print(out, func(w io.Writer) error {
				if kind == "all" || kind == "actions" {
					if err := presenter.Actions(w, out.Actions); err != nil {
						return err
					}
				}
				if kind == "all" || kind == "decisions" {
					if err := presenter.Decisions(w, out.Decisions); err != nil {
						return err
					}
				}
				if kind == "all" || kind == "risks" {
					return presenter.Risks(w, out.Risks)
				}
				return nil
			})
		},
	}
	list.Flags().StringVar(&kind, "kind", "all", "Which items: all, actions, decisions, risks")
	cmd.AddCommand(list)
	cmd.AddCommand(newItemsUpdateCommand(s))
	return cmd
}

// loadItems fetches the requested kinds in parallel
func loadItems(ctx context.Context, app *App, meetingID, kind string) (itemsOutput, error) {
	var out itemsOutput
	switch kind {
	case "all", "actions", "decisions", "risks":
	default:
		return out, apperrors.ErrInvalidArgument("--kind must be all, actions, decisions or risks")
	}

	g, gCtx := errgroup.WithContext(ctx)
	if kind == "all" || kind == "actions" {
		g.Go(func() error {
			var err error
			out.Actions, err = app.Items.ListActions(gCtx, meetingID)
			return err
		})
	}
	if kind == "all" || kind == "decisions" {
		g.Go(func() error {
			var err error
			out.Decisions, err = app.Items.ListDecisions(gCtx, meetingID)
			return err
		})
	}
	if kind == "all" || kind == "risks" {
		g.Go(func() error {
			var err error
			out.Risks, err = app.Items.ListRisks(gCtx, meetingID)
			return err
		})
	}
	return out, g.Wait()
}

func newItemsUpdateCommand(s *session) *cobra.Command {
	var owner, deadline, priority, status string
	cmd := &cobra.Command{
		Use:   "update <action-id>",
		Short: "Edit an action item",
		Long: `Edit the owner, deadline, priority or status of an action item.
Only the flags given are sent.

Example:
  meetmate items update <id> --owner "Minh Tran" --status in_progress`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var req meeting.UpdateActionRequest
			flags := cmd.Flags()
			if flags.Changed("owner") {
				req.Owner = &owner
			}
			if flags.Changed("deadline") {
				req.Deadline = &deadline
			}
			if flags.Changed("priority") {
				p := entities.Priority(priority)
				req.Priority = &p
			}
			if flags.Changed("status") {
				st := entities.ActionStatus(status)
				req.Status = &st
			}
			if req.Empty() {
				return apperrors.ErrInvalidArgument("nothing to update")
			}

			app, err := s.open(cmd.Context())
			if err != nil {
				return err
			}
			a, err := app.Items.UpdateAction(cmd.Context(), args[0], req)
			if err != nil {
				return err
			}
			return s.print(a, func(w io.Writer) error {
				return presenter.Actions(w, []entities.ActionItem{*a})
			})
		},
	}
	cmd.Flags().StringVar(&owner, "owner", "", "Owner")
	cmd.Flags().StringVar(&deadline, "deadline", "", "Deadline (YYYY-MM-DD)")
	cmd.Flags().StringVar(&priority, "priority", "", "Priority: low, medium, high, critical")
	cmd.Flags().StringVar(&status, "status", "", "Status: proposed, confirmed, in_progress, done, cancelled")
	return cmd
}
