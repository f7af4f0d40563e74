package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/johnquangdev/meetmate/internal/adapter/dto/meeting"
	"github.com/johnquangdev/meetmate/internal/adapter/presenter"
	"github.com/johnquangdev/meetmate/internal/domain/entities"
)

func newParticipantCommand(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "participant",
		Short:   "Manage who attends a meeting",
		Aliases: []string{"participants"},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list <meeting-id>",
		Short: "List participants",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := s.open(cmd.Context())
			if err != nil {
				return err
			}
			ps, err := app.Participants.List(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return s.print(ps, func(w io.Writer) error {
				return presenter.Participants(w, ps)
			})
		},
	})

	var (
		req  meeting.AddParticipantRequest
		role string
	)
	add := &cobra.Command{
		Use:   "add <meeting-id>",
		Short: "Add a participant",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req.Role = entities.ParticipantRole(role)
			app, err := s.open(cmd.Context())
			if err != nil {
				return err
			}
			p, err := app.Participants.Add(cmd.Context(), args[0], req)
			if err != nil {
				return err
			}
			return s.print(p, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "Added %s as %s (user id %s).\n", p.Name(), p.Role, p.UserID)
				return err
			})
		},
	}
	add.Flags().StringVar(&req.Email, "email", "", "Email address (required)")
	add.Flags().StringVar(&req.DisplayName, "name", "", "Display name")
	add.Flags().StringVar(&role, "role", string(entities.ParticipantRoleAttendee), "Role: organizer, required, optional, attendee")
	_ = add.MarkFlagRequired("email")
	cmd.AddCommand(add)

	cmd.AddCommand(&cobra.Command{
		Use:   "remove <meeting-id> <user-id>",
		Short: "Remove a participant",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := s.open(cmd.Context())
			if err != nil {
				return err
			}
			if err := app.Participants.Remove(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			s.printf("Removed %s.\n", args[1])
			return nil
		},
	})
	return cmd
}
