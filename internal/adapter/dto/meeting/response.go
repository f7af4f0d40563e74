package meeting

import "github.com/johnquangdev/meetmate/internal/domain/entities"

// SyncActionResponse is the backend reply to a sync request. Older backends
// omit synced; a 2xx reply without it and without an error is a success.
type SyncActionResponse struct {
	ItemID      string              `json:"item_id"`
	Target      entities.SyncTarget `json:"target"`
	ExternalID  string              `json:"external_id,omitempty"`
	ExternalURL string              `json:"external_url,omitempty"`
	Synced      *bool               `json:"synced"`
	Error       string              `json:"error,omitempty"`
}

// Result converts the reply into a sync result
func (r SyncActionResponse) Result() entities.TaskSyncResult {
	synced := r.Error == ""
	if r.Synced != nil {
		synced = *r.Synced
	}
	return entities.TaskSyncResult{
		ItemID:      r.ItemID,
		Target:      r.Target,
		ExternalID:  r.ExternalID,
		ExternalURL: r.ExternalURL,
		Synced:      synced,
		Error:       r.Error,
	}
}
