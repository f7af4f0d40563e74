package entities

// MinutesStatus is the approval state of generated minutes
type MinutesStatus string

const (
	MinutesDraft    MinutesStatus = "draft"
	MinutesReviewed MinutesStatus = "reviewed"
	MinutesApproved MinutesStatus = "approved"
)

// Valid reports whether s is a known status
func (s MinutesStatus) Valid() bool {
	switch s {
	case MinutesDraft, MinutesReviewed, MinutesApproved:
		return true
	}
	return false
}

var minutesTransitions = map[MinutesStatus][]MinutesStatus{
	MinutesDraft:    {MinutesReviewed},
	MinutesReviewed: {MinutesApproved, MinutesDraft},
	MinutesApproved: nil,
}

// NextStatuses returns the statuses reachable from s
func (s MinutesStatus) NextStatuses() []MinutesStatus {
	return minutesTransitions[s]
}

// CanTransitionTo reports whether minutes may move from s to target
func (s MinutesStatus) CanTransitionTo(target MinutesStatus) bool {
	for _, n := range minutesTransitions[s] {
		if n == target {
			return true
		}
	}
	return false
}

// MeetingMinutes is an AI-generated summary document of a meeting
type MeetingMinutes struct {
	ID               string        `json:"id"`
	MeetingID        string        `json:"meeting_id"`
	Version          int           `json:"version"`
	MinutesMarkdown  string        `json:"minutes_markdown"`
	ExecutiveSummary string        `json:"executive_summary,omitempty"`
	Status           MinutesStatus `json:"status"`
	GeneratedAt      string        `json:"generated_at,omitempty"`
}

// DeliveryStatus is the per-recipient outcome of a distribution
type DeliveryStatus string

const (
	DeliverySent   DeliveryStatus = "sent"
	DeliveryFailed DeliveryStatus = "failed"
)

// DistributionResult logs delivery of minutes to one recipient
type DistributionResult struct {
	Recipient string         `json:"recipient"`
	Status    DeliveryStatus `json:"status"`
	Error     string         `json:"error,omitempty"`
}

// TemplateSection is one heading the minutes generator fills in
type TemplateSection struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// MinutesTemplate describes the structure of generated minutes
type MinutesTemplate struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	MeetingType string            `json:"meeting_type,omitempty"`
	Sections    []TemplateSection `json:"sections"`
	IsDefault   bool              `json:"is_default"`
	CreatedAt   string            `json:"created_at,omitempty"`
}
