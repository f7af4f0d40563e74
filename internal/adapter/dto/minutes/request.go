package minutes

import "github.com/johnquangdev/meetmate/internal/domain/entities"

// GenerateMinutesRequest asks the backend to (re)generate minutes
type GenerateMinutesRequest struct {
	MeetingID        string `json:"meeting_id" validate:"required"`
	TemplateID       string `json:"template_id,omitempty"`
	IncludeActions   bool   `json:"include_actions"`
	IncludeDecisions bool   `json:"include_decisions"`
	IncludeRisks     bool   `json:"include_risks"`
	IncludeSummary   bool   `json:"include_executive_summary"`
}

// UpdateMinutesRequest changes the status or the content of minutes
type UpdateMinutesRequest struct {
	Status          *entities.MinutesStatus `json:"status,omitempty" validate:"omitempty,oneof=draft reviewed approved"`
	MinutesMarkdown *string                 `json:"minutes_markdown,omitempty"`
}

// DistributeRequest asks the backend to email minutes to recipients
type DistributeRequest struct {
	MinutesID  string   `json:"minutes_id" validate:"required"`
	MeetingID  string   `json:"meeting_id" validate:"required"`
	Recipients []string `json:"recipients" validate:"required,min=1,dive,email"`
	Subject    string   `json:"subject,omitempty"`
	Message    string   `json:"message,omitempty"`
}

// DistributeResponse carries one delivery entry per recipient
type DistributeResponse struct {
	Results []entities.DistributionResult `json:"results"`
}

// TemplateRequest creates or replaces a minutes template
type TemplateRequest struct {
	Name        string                     `json:"name" validate:"required,min=1,max=255"`
	Description string                     `json:"description,omitempty"`
	MeetingType string                     `json:"meeting_type,omitempty"`
	Sections    []entities.TemplateSection `json:"sections" validate:"required,min=1,dive"`
	IsDefault   bool                       `json:"is_default"`
}
