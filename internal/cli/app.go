package cli

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/johnquangdev/meetmate/internal/adapter/repository"
	"github.com/johnquangdev/meetmate/internal/domain/entities"
	"github.com/johnquangdev/meetmate/internal/domain/repositories"
	"github.com/johnquangdev/meetmate/internal/infrastructure/cache"
	"github.com/johnquangdev/meetmate/internal/infrastructure/gateway"
	"github.com/johnquangdev/meetmate/internal/usecase/chatcontext"
	"github.com/johnquangdev/meetmate/internal/usecase/minutes"
	"github.com/johnquangdev/meetmate/internal/usecase/phase"
	"github.com/johnquangdev/meetmate/internal/usecase/tasksync"
	"github.com/johnquangdev/meetmate/internal/usecase/view"
	"github.com/johnquangdev/meetmate/pkg/config"
)

// App is the wired client: gateway, repositories and use cases
type App struct {
	Config *config.Config
	Logger *zap.Logger

	Meetings     repositories.MeetingRepository
	Participants repositories.ParticipantRepository
	Transcripts  repositories.TranscriptRepository
	Items        repositories.ItemRepository
	Minutes      repositories.MinutesRepository
	Templates    repositories.TemplateRepository
	Knowledge    repositories.KnowledgeRepository
	Marketing    repositories.MarketingRepository

	// LiveMeetings bypasses the response cache; pollers read from it
	LiveMeetings repositories.MeetingRepository

	Phase          *phase.Controller
	MinutesService *minutes.MinutesService
	TaskSync       *tasksync.Syncer
	Context        *chatcontext.Store
	Assistant      *chatcontext.Assistant

	cache       cache.Store
	unsubscribe func()
}

// NewApp wires the client from cfg
func NewApp(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	client, err := gateway.New(gateway.Options{
		BaseURL: cfg.API.BaseURL,
		Token:   cfg.API.Token,
		Timeout: cfg.API.Timeout,
		Logger:  logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gateway client: %w", err)
	}

	store, err := cache.New(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	live := repository.NewMeetingRepository(client)
	var meetings repositories.MeetingRepository = live
	var participants repositories.ParticipantRepository = repository.NewParticipantRepository(client)
	if store != nil {
		cached := repository.NewCachedMeetingRepository(live, store, cfg.Cache.TTL, logger)
		meetings = cached
		participants = repository.NewCachedParticipantRepository(participants, cached)
	}

	items := repository.NewItemRepository(client)
	minutesRepo := repository.NewMinutesRepository(client)
	chat := chatcontext.NewStore()
	unsubscribe := chat.Subscribe(logContextChange(logger))

	return &App{
		Config:         cfg,
		Logger:         logger,
		Meetings:       meetings,
		Participants:   participants,
		Transcripts:    repository.NewTranscriptRepository(client),
		Items:          items,
		Minutes:        minutesRepo,
		Templates:      repository.NewTemplateRepository(client),
		Knowledge:      repository.NewKnowledgeRepository(client),
		Marketing:      repository.NewMarketingRepository(client),
		LiveMeetings:   live,
		Phase:          phase.NewController(meetings, logger),
		MinutesService: minutes.NewMinutesService(minutesRepo, cfg.Behavior.FallbackEnabled, logger),
		TaskSync:       tasksync.NewSyncer(items, cfg.Behavior.SyncConcurrency, logger),
		Context:        chat,
		Assistant:      chatcontext.NewAssistant(repository.NewAssistantRepository(client), chat, logger),
		cache:          store,
		unsubscribe:    unsubscribe,
	}, nil
}

// ViewDeps returns the collaborators the view controllers need
func (a *App) ViewDeps() view.Deps {
	return view.Deps{
		Meetings:     a.Meetings,
		LiveMeetings: a.LiveMeetings,
		Participants: a.Participants,
		Transcripts:  a.Transcripts,
		Items:        a.Items,
		Templates:    a.Templates,
		Knowledge:    a.Knowledge,
		Phase:        a.Phase,
		Minutes:      a.MinutesService,
		TaskSync:     a.TaskSync,
		Context:      a.Context,
		Fallback:     a.Config.Behavior.FallbackEnabled,
		Logger:       a.Logger,
	}
}

// logContextChange traces every chat context change at debug level
func logContextChange(logger *zap.Logger) chatcontext.Listener {
	return func(o *entities.ChatContextOverride) {
		if o == nil {
			logger.Debug("chat.context.cleared")
			return
		}
		logger.Debug("chat.context.changed",
			zap.String("scope", string(o.Scope)),
			zap.String("meeting_id", o.MeetingID),
			zap.String("phase", string(o.Phase)),
		)
	}
}

// Close releases the cache connection, if any
func (a *App) Close() error {
	if a.unsubscribe != nil {
		a.unsubscribe()
	}
	if a.cache == nil {
		return nil
	}
	return a.cache.Close()
}
