package entities

// ContextScope is what the assistant widget is focused on
type ContextScope string

const (
	ScopeGeneral   ContextScope = "general"
	ScopeKnowledge ContextScope = "knowledge"
	ScopeProject   ContextScope = "project"
	ScopeMeeting   ContextScope = "meeting"
)

// ChatContextOverride tells the assistant what the user is looking at
type ChatContextOverride struct {
	Scope     ContextScope `json:"scope"`
	MeetingID string       `json:"meeting_id,omitempty"`
	ProjectID string       `json:"project_id,omitempty"`
	Phase     Phase        `json:"phase,omitempty"`
	Title     string       `json:"title,omitempty"`
}

// AssistantAnswer is the assistant's reply to a question
type AssistantAnswer struct {
	Answer    string   `json:"answer"`
	Citations []string `json:"citations,omitempty"`
}

// Source tells whether data came from the backend or was built locally
type Source string

const (
	SourceLive Source = "live"
	SourceMock Source = "mock"
)
