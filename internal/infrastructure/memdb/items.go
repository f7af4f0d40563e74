package memdb

import (
	"fmt"
	"time"

	"github.com/johnquangdev/meetmate/internal/adapter/dto/meeting"
	"github.com/johnquangdev/meetmate/internal/domain/entities"
)

var taskPrefixes = map[entities.SyncTarget]string{
	entities.SyncPlanner: "PLN",
	entities.SyncJira:    "MEET",
	entities.SyncLOffice: "LO",
}

// ListActions returns the action items of a meeting
func (s *Store) ListActions(meetingID string) ([]entities.ActionItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.meetings[meetingID]; !ok {
		return nil, notFound("Meeting not found")
	}
	var out []entities.ActionItem
	for _, id := range s.itemOrder {
		if a, ok := s.actions[id]; ok && a.MeetingID == meetingID {
			out = append(out, copyAction(a))
		}
	}
	return out, nil
}

// ListDecisions returns the decisions of a meeting
func (s *Store) ListDecisions(meetingID string) ([]entities.DecisionItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.meetings[meetingID]; !ok {
		return nil, notFound("Meeting not found")
	}
	var out []entities.DecisionItem
	for _, id := range s.itemOrder {
		if d, ok := s.decisions[id]; ok && d.MeetingID == meetingID {
			out = append(out, *d)
		}
	}
	return out, nil
}

// ListRisks returns the risks of a meeting
func (s *Store) ListRisks(meetingID string) ([]entities.RiskItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.meetings[meetingID]; !ok {
		return nil, notFound("Meeting not found")
	}
	var out []entities.RiskItem
	for _, id := range s.itemOrder {
		if r, ok := s.risks[id]; ok && r.MeetingID == meetingID {
			out = append(out, *r)
		}
	}
	return out, nil
}

// UpdateAction applies a partial update to an action item
func (s *Store) UpdateAction(id string, req meeting.UpdateActionRequest) (entities.ActionItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.actions[id]
	if !ok {
		return entities.ActionItem{}, notFound("Action item not found")
	}
	if req.Owner != nil {
		a.Owner = *req.Owner
	}
	if req.Deadline != nil {
		if *req.Deadline != "" && !validDeadline(*req.Deadline) {
			return entities.ActionItem{}, invalid("deadline: unrecognised date %q", *req.Deadline)
		}
		a.Deadline = *req.Deadline
	}
	if req.Priority != nil {
		a.Priority = *req.Priority
	}
	if req.Status != nil {
		a.Status = *req.Status
	}
	return copyAction(a), nil
}

// SyncAction creates a task for an action item in an external system.
// Cancelled items are refused so demos can show partial failures.
func (s *Store) SyncAction(id string, target entities.SyncTarget) (entities.TaskSyncResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.actions[id]
	if !ok {
		return entities.TaskSyncResult{}, notFound("Action item not found")
	}
	prefix, ok := taskPrefixes[target]
	if !ok {
		return entities.TaskSyncResult{}, invalid("unsupported target %q", target)
	}
	if a.Status == entities.ActionCancelled {
		return entities.TaskSyncResult{}, conflict("Cancelled action items cannot be synced")
	}

	if ref := a.ExternalTaskRefs[target]; ref != "" {
		return syncResult(a.ID, target, ref), nil
	}
	s.taskSeq++
	ref := fmt.Sprintf("%s-%d", prefix, 100+s.taskSeq)
	if a.ExternalTaskRefs == nil {
		a.ExternalTaskRefs = make(map[entities.SyncTarget]string)
	}
	a.ExternalTaskRefs[target] = ref
	return syncResult(a.ID, target, ref), nil
}

func syncResult(itemID string, target entities.SyncTarget, ref string) entities.TaskSyncResult {
	return entities.TaskSyncResult{
		ItemID:      itemID,
		Target:      target,
		ExternalID:  ref,
		ExternalURL: fmt.Sprintf("https://%s.example.com/tasks/%s", target, ref),
		Synced:      true,
	}
}

func copyAction(a *entities.ActionItem) entities.ActionItem {
	out := *a
	if a.ExternalTaskRefs != nil {
		out.ExternalTaskRefs = make(map[entities.SyncTarget]string, len(a.ExternalTaskRefs))
		for k, v := range a.ExternalTaskRefs {
			out.ExternalTaskRefs[k] = v
		}
	}
	return out
}

func validDeadline(s string) bool {
	if _, err := time.Parse(time.DateOnly, s); err == nil {
		return true
	}
	_, err := entities.ParseTimestamp(s)
	return err == nil
}
