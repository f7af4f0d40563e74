package knowledge

import (
	"strings"

	"github.com/johnquangdev/meetmate/internal/domain/entities"
)

// ListDocumentsRequest represents query parameters for listing documents
type ListDocumentsRequest struct {
	Category string `query:"category"`
	Skip     int    `query:"skip" validate:"min=0"`
	Limit    int    `query:"limit" validate:"min=0,max=500"`
}

// SearchRequest represents a knowledge search
type SearchRequest struct {
	Query    string   `json:"query" validate:"required,min=1"`
	Limit    int      `json:"limit,omitempty" validate:"min=0,max=100"`
	Category string   `json:"category,omitempty"`
	Tags     []string `json:"tags,omitempty"`
}

// SearchResponse wraps search hits
type SearchResponse struct {
	Query   string                           `json:"query"`
	Results []entities.KnowledgeSearchResult `json:"results"`
}

// UploadRequest carries the metadata sent alongside an uploaded file
type UploadRequest struct {
	Title        string   `validate:"required,min=1,max=255"`
	Description  string   `validate:"max=2000"`
	Source       string   `validate:"max=255"`
	Category     string   `validate:"max=100"`
	DocumentType string   `validate:"max=50"`
	Tags         []string `validate:"dive,min=1,max=50"`
}

// Fields flattens the metadata into multipart form fields
func (r UploadRequest) Fields() map[string]string {
	fields := map[string]string{"title": r.Title}
	if r.Description != "" {
		fields["description"] = r.Description
	}
	if r.Source != "" {
		fields["source"] = r.Source
	}
	if r.Category != "" {
		fields["category"] = r.Category
	}
	if r.DocumentType != "" {
		fields["document_type"] = r.DocumentType
	}
	if len(r.Tags) > 0 {
		fields["tags"] = strings.Join(r.Tags, ",")
	}
	return fields
}
