package common

import "github.com/johnquangdev/meetmate/internal/domain/entities"

// JoinWaitlistRequest represents the landing page email capture
type JoinWaitlistRequest struct {
	Email   string `json:"email" validate:"required,email"`
	Name    string `json:"name,omitempty" validate:"omitempty,max=255"`
	Company string `json:"company,omitempty" validate:"omitempty,max=255"`
}

// AskRequest represents a question to the assistant with its context
type AskRequest struct {
	Message   string                `json:"message" validate:"required,min=1,max=4000"`
	Scope     entities.ContextScope `json:"scope" validate:"required,oneof=general knowledge project meeting"`
	MeetingID string                `json:"meeting_id,omitempty"`
	ProjectID string                `json:"project_id,omitempty"`
	Phase     entities.Phase        `json:"phase,omitempty" validate:"omitempty,oneof=pre in post"`
}
