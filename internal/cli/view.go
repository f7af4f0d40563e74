package cli

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/johnquangdev/meetmate/internal/adapter/dto/knowledge"
	"github.com/johnquangdev/meetmate/internal/adapter/dto/meeting"
	"github.com/johnquangdev/meetmate/internal/adapter/presenter"
	"github.com/johnquangdev/meetmate/internal/domain/entities"
	"github.com/johnquangdev/meetmate/internal/usecase/view"
)

func newViewCommand(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view",
		Short: "Render a screen of the assistant",
		Long: `Render one screen the way the app shows it. Groups that fail to load
are reported inline; the rest of the screen still renders.

Examples:
  meetmate view dashboard
  meetmate view meeting <id> --tab post
  meetmate view knowledge --search "rollout plan"`,
	}
	cmd.AddCommand(newViewDashboardCommand(s))
	cmd.AddCommand(newViewMeetingCommand(s))
	cmd.AddCommand(newViewKnowledgeCommand(s))
	return cmd
}

func newViewDashboardCommand(s *session) *cobra.Command {
	var (
		filter meeting.ListMeetingsRequest
		phaseF string
	)
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Meetings bucketed by phase",
		Args:  cobra.NoArgs,
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
			v := view.NewDashboard(app.ViewDeps(), filter)
			defer v.Unmount()
			if err := v.Mount(cmd.Context()); err != nil {
				return err
			}
			st := v.State()
			return s.print(st, func(w io.Writer) error {
				return presenter.Dashboard(w, st)
			})
		},
	}
	cmd.Flags().StringVar(&phaseF, "phase", "", "Only show one phase: pre, in, post")
	cmd.Flags().StringVarP(&filter.Search, "search", "s", "", "Search in titles")
	cmd.Flags().IntVarP(&filter.Limit, "limit", "l", 50, "Maximum number of meetings")
	return cmd
}

// detailOutput is the structured form of the meeting detail screen
type detailOutput struct {
	view.DetailState
	Tab interface{} `json:"tab,omitempty"`
}

func tabState(tab view.Tab) interface{} {
	switch t := tab.(type) {
	case *view.PreMeeting:
		return t.State()
	case *view.InMeeting:
		return t.State()
	case *view.PostMeeting:
		return t.State()
	}
	return nil
}

func newViewMeetingCommand(s *session) *cobra.Command {
	var tabF string
	cmd := &cobra.Command{
		Use:   "meeting <meeting-id>",
		Short: "Meeting detail with the tab for its phase",
		Long: `Show a meeting and the tab matching its phase. --tab opens another tab
without changing the meeting phase.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			var tabPhase entities.Phase
			if tabF != "" {
				p, err := entities.ParsePhase(tabF)
				if err != nil {
					return err
				}
				tabPhase = p
			}
			app, err := s.open(ctx)
			if err != nil {
				return err
			}

			v := view.NewDetail(app.ViewDeps(), args[0])
			defer v.Unmount()
			if err := v.Mount(ctx); err != nil {
				return err
			}
			if tabPhase != "" {
				if err := v.SelectTab(ctx, tabPhase); err != nil {
					return err
				}
			}

			st, tab := v.State(), v.Tab()
			return s.print(detailOutput{DetailState: st, Tab: tabState(tab)}, func(w io.Writer) error {
				return presenter.Detail(w, st, tab)
			})
		},
	}
	cmd.Flags().StringVar(&tabF, "tab", "", "Tab to open: pre, in, post")
	return cmd
}

func newViewKnowledgeCommand(s *session) *cobra.Command {
	var (
		filter knowledge.ListDocumentsRequest
		query  string
	)
	cmd := &cobra.Command{
		Use:     "knowledge",
		Short:   "Knowledge Hub documents and search results",
		Aliases: []string{"kb"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			app, err := s.open(ctx)
			if err != nil {
				return err
			}
			v := view.NewKnowledgeHub(app.ViewDeps(), filter)
			defer v.Unmount()
			if err := v.Mount(ctx); err != nil {
				return err
			}
			var searchErr error
			if query != "" {
				searchErr = v.Search(ctx, knowledge.SearchRequest{Query: query, Category: filter.Category})
			}
			st := v.State()
			if err := s.print(st, func(w io.Writer) error {
				return presenter.KnowledgeHub(w, st)
			}); err != nil {
				return err
			}
			return searchErr
		},
	}
	cmd.Flags().StringVar(&filter.Category, "category", "", "Filter by category")
	cmd.Flags().StringVarP(&query, "search", "s", "", "Search the knowledge base")
	return cmd
}
