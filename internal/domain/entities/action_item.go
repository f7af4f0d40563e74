package entities

// Priority of an action item
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// Valid reports whether p is a known priority
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

// ActionStatus of an action item
type ActionStatus string

const (
	ActionProposed   ActionStatus = "proposed"
	ActionConfirmed  ActionStatus = "confirmed"
	ActionInProgress ActionStatus = "in_progress"
	ActionDone       ActionStatus = "done"
	ActionCancelled  ActionStatus = "cancelled"
)

// ActionItem is a task extracted from a meeting
type ActionItem struct {
	ID               string                `json:"id"`
	MeetingID        string                `json:"meeting_id"`
	Description      string                `json:"description"`
	Owner            string                `json:"owner,omitempty"`
	Deadline         string                `json:"deadline,omitempty"`
	Priority         Priority              `json:"priority"`
	Status           ActionStatus          `json:"status"`
	ExternalTaskRefs map[SyncTarget]string `json:"external_task_refs,omitempty"`
}

// SyncedTo reports whether the item already has a task in target
func (a *ActionItem) SyncedTo(target SyncTarget) bool {
	return a.ExternalTaskRefs[target] != ""
}

// DecisionStatus of a decision item
type DecisionStatus string

const (
	DecisionProposed  DecisionStatus = "proposed"
	DecisionConfirmed DecisionStatus = "confirmed"
	DecisionReverted  DecisionStatus = "reverted"
)

// DecisionItem is a decision extracted from a meeting
type DecisionItem struct {
	ID          string         `json:"id"`
	MeetingID   string         `json:"meeting_id"`
	Description string         `json:"description"`
	Rationale   string         `json:"rationale,omitempty"`
	DecidedBy   string         `json:"decided_by,omitempty"`
	Status      DecisionStatus `json:"status"`
}

// Severity of a risk item
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// RiskStatus of a risk item
type RiskStatus string

const (
	RiskOpen      RiskStatus = "open"
	RiskMitigated RiskStatus = "mitigated"
	RiskClosed    RiskStatus = "closed"
)

// RiskItem is a risk extracted from a meeting
type RiskItem struct {
	ID          string     `json:"id"`
	MeetingID   string     `json:"meeting_id"`
	Description string     `json:"description"`
	Severity    Severity   `json:"severity"`
	Mitigation  string     `json:"mitigation,omitempty"`
	Owner       string     `json:"owner,omitempty"`
	Status      RiskStatus `json:"status"`
}

// SyncTarget is an external task system action items can be pushed to
type SyncTarget string

const (
	SyncPlanner SyncTarget = "planner"
	SyncJira    SyncTarget = "jira"
	SyncLOffice SyncTarget = "loffice"
)

// Valid reports whether t is a supported target
func (t SyncTarget) Valid() bool {
	switch t {
	case SyncPlanner, SyncJira, SyncLOffice:
		return true
	}
	return false
}

// TaskSyncResult is the outcome of pushing one action item to a target
type TaskSyncResult struct {
	ItemID      string     `json:"item_id"`
	Target      SyncTarget `json:"target"`
	ExternalID  string     `json:"external_id,omitempty"`
	ExternalURL string     `json:"external_url,omitempty"`
	Synced      bool       `json:"synced"`
	Error       string     `json:"error,omitempty"`
}
