package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/johnquangdev/meetmate/internal/adapter/dto/common"
	"github.com/johnquangdev/meetmate/internal/adapter/presenter"
	"github.com/johnquangdev/meetmate/internal/domain/entities"
)

// cliOwner holds the chat context slot for one-shot questions
const cliOwner = "cli"

func newJoinCommand(s *session) *cobra.Command {
	var req common.JoinWaitlistRequest
	cmd := &cobra.Command{
		Use:   "join <email>",
		Short: "Join the MeetMate waitlist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req.Email = args[0]
			app, err := s.open(cmd.Context())
			if err != nil {
				return err
			}
			if err := app.Marketing.Join(cmd.Context(), req); err != nil {
				return err
			}
			return s.print(common.MessageResponse{Message: "You are on the list"}, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "%s is on the waitlist.\n", req.Email)
				return err
			})
		},
	}
	cmd.Flags().StringVar(&req.Name, "name", "", "Your name")
	cmd.Flags().StringVar(&req.Company, "company", "", "Your company")
	return cmd
}

// answerOutput is the structured form of an assistant reply
type answerOutput struct {
	Context entities.ChatContextOverride `json:"context"`
	*entities.AssistantAnswer
}

func newAskCommand(s *session) *cobra.Command {
	var (
		meetingID string
		inKB      bool
	)
	cmd := &cobra.Command{
		Use:   "ask <question>...",
		Short: "Ask the assistant",
		Long: `Ask the assistant a question. By default the question is general;
--meeting scopes it to one meeting and its current phase, --knowledge to the
Knowledge Hub.

Examples:
  meetmate ask --meeting <id> "who owns the runbook?"
  meetmate ask --knowledge rollout plan`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			app, err := s.open(ctx)
			if err != nil {
				return err
			}

			switch {
			case meetingID != "":
				m, err := app.Meetings.Get(ctx, meetingID)
				if err != nil {
					return err
				}
				app.Context.Set(cliOwner, entities.ChatContextOverride{
					Scope:     entities.ScopeMeeting,
					MeetingID: m.ID,
					ProjectID: m.ProjectID,
					Phase:     m.Phase,
					Title:     m.Title,
				})
			case inKB:
				app.Context.Set(cliOwner, entities.ChatContextOverride{Scope: entities.ScopeKnowledge, Title: "Knowledge Hub"})
			}
			defer app.Context.Clear(cliOwner)

			scope := app.Context.Resolve()
			ans, err := app.Assistant.Ask(ctx, strings.Join(args, " "))
			if err != nil {
				return err
			}
			return s.print(answerOutput{Context: scope, AssistantAnswer: ans}, func(w io.Writer) error {
				return presenter.Answer(w, scope, ans)
			})
		},
	}
	cmd.Flags().StringVarP(&meetingID, "meeting", "m", "", "Scope the question to a meeting")
	cmd.Flags().BoolVar(&inKB, "knowledge", false, "Scope the question to the Knowledge Hub")
	cmd.MarkFlagsMutuallyExclusive("meeting", "knowledge")
	return cmd
}
