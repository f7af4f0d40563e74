package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/johnquangdev/meetmate/internal/adapter/presenter"
	"github.com/johnquangdev/meetmate/internal/domain/entities"
)

func newTasksCommand(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "Push action items to external task systems",
	}

	var (
		target  string
		itemIDs []string
	)
	sync := &cobra.Command{
		Use:   "sync <meeting-id>",
		Short: "Create tasks for the action items of a meeting",
		Long: `Create tasks for action items in planner, jira or loffice.

Every item is pushed on its own; a failing item is reported and does not
stop the rest. Items already linked to the target are not pushed again.

Examples:
  meetmate tasks sync <id> --target jira
  meetmate tasks sync <id> --target planner --item <action-id> --item <action-id>`,
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

			syncTarget := entities.SyncTarget(target)
			report, err := tab.SyncTasks(ctx, syncTarget, itemIDs...)
			if report == nil {
				return err
			}
			if perr := s.print(report, func(w io.Writer) error {
				return presenter.SyncResults(w, syncTarget, report.Results)
			}); perr != nil {
				return perr
			}
			if err != nil {
				return err
			}
			if failed := len(report.Failed()); failed > 0 {
				return fmt.Errorf("%d of %d items failed to sync", failed, len(report.Results))
			}
			return nil
		},
	}
	sync.Flags().StringVar(&target, "target", "", "Task system: planner, jira, loffice (required)")
	sync.Flags().StringSliceVar(&itemIDs, "item", nil, "Action item id, repeatable (default: all items)")
	_ = sync.MarkFlagRequired("target")
	cmd.AddCommand(sync)
	return cmd
}
