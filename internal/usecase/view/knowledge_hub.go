package view

import (
	"context"
	"io"

	"github.com/google/uuid"

	"github.com/johnquangdev/meetmate/internal/adapter/dto/knowledge"
	"github.com/johnquangdev/meetmate/internal/domain/entities"
)

// KnowledgeHubState is a snapshot of the Knowledge Hub
type KnowledgeHubState struct {
	Documents Group[[]entities.KnowledgeDocument]     `json:"documents" yaml:"documents"`
	Results   Group[[]entities.KnowledgeSearchResult] `json:"results" yaml:"results"`
	Query     string                                  `json:"query,omitempty" yaml:"query,omitempty"`
}

// Contains reports whether a document with id is listed
func (s KnowledgeHubState) Contains(id string) bool {
	for _, d := range s.Documents.Data {
		if d.ID == id {
			return true
		}
	}
	return false
}

// KnowledgeHub lists, searches and manages knowledge documents
type KnowledgeHub struct {
	base
	deps   Deps
	filter knowledge.ListDocumentsRequest
	owner  string
	state  KnowledgeHubState
}

// NewKnowledgeHub creates the Knowledge Hub view
func NewKnowledgeHub(deps Deps, filter knowledge.ListDocumentsRequest) *KnowledgeHub {
	return &KnowledgeHub{
		base:   newBase("knowledge_hub", deps.Fallback, deps.logger()),
		deps:   deps,
		filter: filter,
		owner:  "knowledge:" + uuid.NewString(),
	}
}

// Mount scopes the assistant to the knowledge base and loads documents
func (v *KnowledgeHub) Mount(ctx context.Context) error {
	v.begin(ctx)
	if v.deps.Context != nil {
		v.deps.Context.Set(v.owner, entities.ChatContextOverride{Scope: entities.ScopeKnowledge, Title: "Knowledge Hub"})
	}
	return v.Refresh(ctx)
}

// Unmount cancels pending fetches and releases the chat context
func (v *KnowledgeHub) Unmount() {
	if v.end() && v.deps.Context != nil {
		v.deps.Context.Clear(v.owner)
	}
}

// State returns a snapshot of the view
func (v *KnowledgeHub) State() KnowledgeHubState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

// Refresh refetches the document list
func (v *KnowledgeHub) Refresh(ctx context.Context) error {
	return v.run(ctx, fetch(&v.base, "documents", &v.state.Documents, func(ctx context.Context) ([]entities.KnowledgeDocument, error) {
		docs, _, err := v.deps.Knowledge.List(ctx, v.filter)
		return docs, err
	}, nil))
}

// Search runs a search and keeps its results next to the list
func (v *KnowledgeHub) Search(ctx context.Context, req knowledge.SearchRequest) error {
	v.mu.Lock()
	v.state.Query = req.Query
	v.mu.Unlock()
	if err := v.run(ctx, fetch(&v.base, "search", &v.state.Results, func(ctx context.Context) ([]entities.KnowledgeSearchResult, error) {
		return v.deps.Knowledge.Search(ctx, req)
	}, nil)); err != nil {
		return err
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state.Results.Err
}

// Upload stores a document and refreshes
func (v *KnowledgeHub) Upload(ctx context.Context, req knowledge.UploadRequest, fileName string, content io.Reader) (*entities.KnowledgeDocument, error) {
	var doc *entities.KnowledgeDocument
	err := v.mutate(ctx, "knowledge.upload", func(ctx context.Context) error {
		var err error
		doc, err = v.deps.Knowledge.Upload(ctx, req, fileName, content)
		return err
	}, v.Refresh)
	return doc, err
}

// Delete removes a document and refreshes. On failure the list is left as
// it was and the error is returned.
func (v *KnowledgeHub) Delete(ctx context.Context, id string) error {
	return v.mutate(ctx, "knowledge.delete", func(ctx context.Context) error {
		return v.deps.Knowledge.Delete(ctx, id)
	}, v.Refresh)
}
