package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/johnquangdev/meetmate/pkg/config"
	"github.com/johnquangdev/meetmate/pkg/logger"
)

// Deps holds dependencies for the command tree
type Deps struct {
	LoadConfig func() (*config.Config, error)
	NewLogger  func(cfg *config.Config) (*zap.Logger, error)
	Out        io.Writer
	Err        io.Writer
	In         io.Reader
}

// DefaultDeps returns dependencies for production use
func DefaultDeps() *Deps {
	return &Deps{
		LoadConfig: config.Load,
		NewLogger: func(cfg *config.Config) (*zap.Logger, error) {
			return logger.New(cfg.Env, cfg.LogLevel)
		},
		Out: os.Stdout,
		Err: os.Stderr,
		In:  os.Stdin,
	}
}

// session carries the global flags and the lazily wired App of one run
type session struct {
	deps   *Deps
	output string
	app    *App
}

// open wires the App on first use so help and completion need no config
func (s *session) open(ctx context.Context) (*App, error) {
	if s.app != nil {
		return s.app, nil
	}
	cfg, err := s.deps.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	if s.output != "" {
		cfg.Output = s.output
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	zl, err := s.deps.NewLogger(cfg)
	if err != nil {
		return nil, fmt.Errorf("initializing logger: %w", err)
	}
	app, err := NewApp(ctx, cfg, zl)
	if err != nil {
		return nil, err
	}
	s.app = app
	return app, nil
}

func (s *session) close() {
	if s.app == nil {
		return
	}
	if err := s.app.Close(); err != nil {
		s.app.Logger.Warn("cli.close.error", zap.Error(err))
	}
	_ = s.app.Logger.Sync()
}

// NewRootCommand creates the meetmate command tree
func NewRootCommand(deps *Deps) *cobra.Command {
	cmd, _ := newRootCommand(deps)
	return cmd
}

func newRootCommand(deps *Deps) (*cobra.Command, *session) {
	if deps == nil {
		deps = DefaultDeps()
	}
	s := &session{deps: deps}

	cmd := &cobra.Command{
		Use:   "meetmate",
		Short: "MeetMate meeting assistant client",
		Long: `MeetMate drives meetings from preparation to approved minutes.

Configuration is read from MEETMATE_* environment variables and an optional
.env file. Point MEETMATE_API_BASE_URL at a backend, or run meetmate-demo for
an offline one.

Examples:
  # Meetings bucketed by phase
  meetmate view dashboard

  # Start a meeting and follow it
  meetmate meeting start <id>
  meetmate meeting watch <id>

  # Wrap up
  meetmate minutes generate <id>
  meetmate tasks sync <id> --target jira`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVarP(&s.output, "output", "o", "", "Output format: text, json, yaml")

	cmd.AddCommand(newMeetingCommand(s))
	cmd.AddCommand(newParticipantCommand(s))
	cmd.AddCommand(newTranscriptCommand(s))
	cmd.AddCommand(newItemsCommand(s))
	cmd.AddCommand(newMinutesCommand(s))
	cmd.AddCommand(newTasksCommand(s))
	cmd.AddCommand(newKnowledgeCommand(s))
	cmd.AddCommand(newTemplateCommand(s))
	cmd.AddCommand(newJoinCommand(s))
	cmd.AddCommand(newAskCommand(s))
	cmd.AddCommand(newViewCommand(s))

	return cmd, s
}

// Execute runs the command tree with args
func Execute(ctx context.Context, deps *Deps, args []string) error {
	cmd, s := newRootCommand(deps)
	defer s.close()

	cmd.SetArgs(args)
	cmd.SetOut(s.deps.Out)
	cmd.SetErr(s.deps.Err)
	cmd.SetIn(s.deps.In)
	return cmd.ExecuteContext(ctx)
}
