package chatcontext

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/johnquangdev/meetmate/internal/domain/entities"
	"github.com/johnquangdev/meetmate/internal/domain/repositories"
	usecaseErrors "github.com/johnquangdev/meetmate/internal/usecase/errors"
)

// Assistant sends questions scoped by whatever the store currently holds
type Assistant struct {
	repo   repositories.AssistantRepository
	store  *Store
	logger *zap.Logger
}

// NewAssistant creates a new assistant bound to store
func NewAssistant(repo repositories.AssistantRepository, store *Store, logger *zap.Logger) *Assistant {
	return &Assistant{repo: repo, store: store, logger: logger}
}

// Ask sends question with the current override
func (a *Assistant) Ask(ctx context.Context, question string) (*entities.AssistantAnswer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, usecaseErrors.ErrEmptyQuestion
	}
	override := a.store.Resolve()
	a.logger.Debug("assistant.ask",
		zap.String("scope", string(override.Scope)),
		zap.String("meeting_id", override.MeetingID),
	)
	ans, err := a.repo.Ask(ctx, question, override)
	if err != nil {
		return nil, fmt.Errorf("assistant request failed: %w", err)
	}
	return ans, nil
}
