package entities

// KnowledgeDocument is a document stored in the Knowledge Hub
type KnowledgeDocument struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description,omitempty"`
	Source       string   `json:"source,omitempty"`
	Category     string   `json:"category,omitempty"`
	Tags         []string `json:"tags,omitempty"`
	FileURL      string   `json:"file_url,omitempty"`
	DocumentType string   `json:"document_type,omitempty"`
	CreatedAt    string   `json:"created_at,omitempty"`
}

// KnowledgeSearchResult is one hit of a knowledge search
type KnowledgeSearchResult struct {
	Document KnowledgeDocument `json:"document"`
	Score    float64           `json:"score"`
	Snippet  string            `json:"snippet,omitempty"`
}
