package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/johnquangdev/meetmate/internal/adapter/dto/minutes"
	"github.com/johnquangdev/meetmate/internal/adapter/presenter"
	"github.com/johnquangdev/meetmate/internal/domain/entities"
)

func newTemplateCommand(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "template",
		Short:   "Manage minutes templates",
		Aliases: []string{"templates"},
	}

	cmd.AddCommand(&cobra.Command{
		Use:     "list",
		Short:   "List templates, defaults first",
		Aliases: []string{"ls"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := s.open(cmd.Context())
			if err != nil {
				return err
			}
			ts, err := app.Templates.List(cmd.Context())
			if err != nil {
				return err
			}
			return s.print(ts, func(w io.Writer) error {
				return presenter.Templates(w, ts)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "get <template-id>",
		Short: "Show a template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := s.open(cmd.Context())
			if err != nil {
				return err
			}
			t, err := app.Templates.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return s.print(t, func(w io.Writer) error {
				return presenter.Template(w, t)
			})
		},
	})

	cmd.AddCommand(newTemplateWriteCommand(s, false))
	cmd.AddCommand(newTemplateWriteCommand(s, true))

	cmd.AddCommand(&cobra.Command{
		Use:     "delete <template-id>",
		Short:   "Delete a template; default templates cannot be deleted",
		Aliases: []string{"rm"},
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := s.open(cmd.Context())
			if err != nil {
				return err
			}
			if err := app.Templates.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			s.printf("Deleted %s.\n", args[0])
			return nil
		},
	})
	return cmd
}

// templateFlags are shared by create and update
type templateFlags struct {
	name        string
	description string
	meetingType string
	sections    []string
	isDefault   bool
}

func (f *templateFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "Template name")
	cmd.Flags().StringVar(&f.description, "description", "", "Description")
	cmd.Flags().StringVar(&f.meetingType, "type", "", "Meeting type the template applies to")
	cmd.Flags().StringArrayVar(&f.sections, "section", nil, `Section as "Title" or "Title: what goes in it", repeatable`)
	cmd.Flags().BoolVar(&f.isDefault, "default", false, "Make this the default template for its meeting type")
}

// apply copies the flags the user set onto req
func (f *templateFlags) apply(cmd *cobra.Command, req *minutes.TemplateRequest) {
	flags := cmd.Flags()
	if flags.Changed("name") {
		req.Name = f.name
	}
	if flags.Changed("description") {
		req.Description = f.description
	}
	if flags.Changed("type") {
		req.MeetingType = f.meetingType
	}
	if flags.Changed("section") {
		req.Sections = parseSections(f.sections)
	}
	if flags.Changed("default") {
		req.IsDefault = f.isDefault
	}
}

func parseSections(values []string) []entities.TemplateSection {
	out := make([]entities.TemplateSection, 0, len(values))
	for _, v := range values {
		title, desc, _ := strings.Cut(v, ":")
		title = strings.TrimSpace(title)
		if title == "" {
			continue
		}
		out = append(out, entities.TemplateSection{Title: title, Description: strings.TrimSpace(desc)})
	}
	return out
}

func newTemplateWriteCommand(s *session, update bool) *cobra.Command {
	var f templateFlags
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a template",
		Long: `Create a minutes template.

Example:
  meetmate template create --name "Steering" --type steering --default \
    --section "Decisions" --section "Risks: open risks and owners"`,
		Args: cobra.NoArgs,
	}
	if update {
		cmd.Use = "update <template-id>"
		cmd.Short = "Change a template; flags not given keep their value"
		cmd.Long = ""
		cmd.Args = cobra.ExactArgs(1)
	}
	f.bind(cmd)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		app, err := s.open(ctx)
		if err != nil {
			return err
		}

		var req minutes.TemplateRequest
		if update {
			current, err := app.Templates.Get(ctx, args[0])
			if err != nil {
				return err
			}
			req = minutes.TemplateRequest{
				Name:        current.Name,
				Description: current.Description,
				MeetingType: current.MeetingType,
				Sections:    current.Sections,
				IsDefault:   current.IsDefault,
			}
		}
		f.apply(cmd, &req)

		var t *entities.MinutesTemplate
		if update {
			t, err = app.Templates.Update(ctx, args[0], req)
		} else {
			t, err = app.Templates.Create(ctx, req)
		}
		if err != nil {
			return err
		}
		return s.print(t, func(w io.Writer) error {
			fmt.Fprintf(w, "Saved template %s.\n", t.ID)
			return presenter.Template(w, t)
		})
	}
	return cmd
}
