package repositories

import (
	"context"
	"io"

	"github.com/johnquangdev/meetmate/internal/adapter/dto/common"
	"github.com/johnquangdev/meetmate/internal/adapter/dto/knowledge"
	"github.com/johnquangdev/meetmate/internal/domain/entities"
)

// KnowledgeRepository defines access to the Knowledge Hub
type KnowledgeRepository interface {
	// List retrieves documents, optionally filtered by category
	List(ctx context.Context, filter knowledge.ListDocumentsRequest) ([]entities.KnowledgeDocument, int, error)

	// Search runs a semantic search over documents
	Search(ctx context.Context, req knowledge.SearchRequest) ([]entities.KnowledgeSearchResult, error)

	// Upload stores a new document
	Upload(ctx context.Context, req knowledge.UploadRequest, fileName string, content io.Reader) (*entities.KnowledgeDocument, error)

	// Delete removes a document
	Delete(ctx context.Context, id string) error
}

// MarketingRepository defines the public landing page endpoints
type MarketingRepository interface {
	// Join registers an email on the waitlist without authentication
	Join(ctx context.Context, req common.JoinWaitlistRequest) error
}

// AssistantRepository defines access to the assistant chat
type AssistantRepository interface {
	// Ask sends a question scoped by the current chat context
	Ask(ctx context.Context, question string, override entities.ChatContextOverride) (*entities.AssistantAnswer, error)
}
