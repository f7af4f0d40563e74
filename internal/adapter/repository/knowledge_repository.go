package repository

import (
	"context"
	"io"
	"net/url"

	"github.com/johnquangdev/meetmate/internal/adapter/dto/common"
	"github.com/johnquangdev/meetmate/internal/adapter/dto/knowledge"
	"github.com/johnquangdev/meetmate/internal/domain/entities"
	"github.com/johnquangdev/meetmate/internal/domain/repositories"
	"github.com/johnquangdev/meetmate/internal/infrastructure/gateway"
)

// KnowledgeRepository handles Knowledge Hub documents over HTTP
type KnowledgeRepository struct {
	api API
}

// NewKnowledgeRepository creates a new knowledge repository
func NewKnowledgeRepository(api API) *KnowledgeRepository {
	return &KnowledgeRepository{api: api}
}

var _ repositories.KnowledgeRepository = (*KnowledgeRepository)(nil)

// List retrieves documents
func (r *KnowledgeRepository) List(ctx context.Context, filter knowledge.ListDocumentsRequest) ([]entities.KnowledgeDocument, int, error) {
	if err := validate(&filter); err != nil {
		return nil, 0, err
	}
	q := url.Values{}
	if filter.Category != "" {
		q.Set("category", filter.Category)
	}
	paging(q, filter.Skip, filter.Limit)

	var resp common.ListResponse[entities.KnowledgeDocument]
	if err := r.api.Get(ctx, "/knowledge", q, &resp); err != nil {
		return nil, 0, err
	}
	return resp.Items, resp.Total, nil
}

// Search runs a knowledge search
func (r *KnowledgeRepository) Search(ctx context.Context, req knowledge.SearchRequest) ([]entities.KnowledgeSearchResult, error) {
	if err := validate(&req); err != nil {
		return nil, err
	}
	var resp knowledge.SearchResponse
	if err := r.api.Post(ctx, "/knowledge/search", req, &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

// Upload sends a document as multipart form data
func (r *KnowledgeRepository) Upload(ctx context.Context, req knowledge.UploadRequest, fileName string, content io.Reader) (*entities.KnowledgeDocument, error) {
	if err := validate(&req); err != nil {
		return nil, err
	}
	if err := requireID("file name", fileName); err != nil {
		return nil, err
	}
	var doc entities.KnowledgeDocument
	if err := r.api.Upload(ctx, "/knowledge/upload", req.Fields(), fileFor(fileName, content), &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Delete removes a document
func (r *KnowledgeRepository) Delete(ctx context.Context, id string) error {
	if err := requireID("document", id); err != nil {
		return err
	}
	return r.api.Delete(ctx, path("/knowledge/%s", id), nil)
}

// MarketingRepository handles the public landing page endpoints
type MarketingRepository struct {
	api API
}

// NewMarketingRepository creates a new marketing repository
func NewMarketingRepository(api API) *MarketingRepository {
	return &MarketingRepository{api: api}
}

var _ repositories.MarketingRepository = (*MarketingRepository)(nil)

// Join registers an email on the waitlist
func (r *MarketingRepository) Join(ctx context.Context, req common.JoinWaitlistRequest) error {
	if err := validate(&req); err != nil {
		return err
	}
	return r.api.Post(ctx, "/marketing/join", req, nil, gateway.WithSkipAuth())
}

// AssistantRepository sends questions to the assistant over HTTP
type AssistantRepository struct {
	api API
}

// NewAssistantRepository creates a new assistant repository
func NewAssistantRepository(api API) *AssistantRepository {
	return &AssistantRepository{api: api}
}

var _ repositories.AssistantRepository = (*AssistantRepository)(nil)

// Ask sends a question carrying the chat context override
func (r *AssistantRepository) Ask(ctx context.Context, question string, override entities.ChatContextOverride) (*entities.AssistantAnswer, error) {
	if override.Scope == "" {
		override.Scope = entities.ScopeGeneral
	}
	req := common.AskRequest{
		Message:   question,
		Scope:     override.Scope,
		MeetingID: override.MeetingID,
		ProjectID: override.ProjectID,
		Phase:     override.Phase,
	}
	if err := validate(&req); err != nil {
		return nil, err
	}
	var ans entities.AssistantAnswer
	if err := r.api.Post(ctx, "/assistant/chat", req, &ans); err != nil {
		return nil, err
	}
	return &ans, nil
}
