package memdb

import (
	"fmt"
	"sort"
	"strings"

	"github.com/johnquangdev/meetmate/internal/adapter/dto/minutes"
	"github.com/johnquangdev/meetmate/internal/domain/entities"
)

// GenerateMinutes writes a new minutes version for an ended meeting
func (s *Store) GenerateMinutes(req minutes.GenerateMinutesRequest) (entities.MeetingMinutes, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.meetings[req.MeetingID]
	if !ok {
		return entities.MeetingMinutes{}, notFound("Meeting not found")
	}
	if m.Phase != entities.PhasePost {
		return entities.MeetingMinutes{}, conflict("Minutes can only be generated after the meeting has ended")
	}

	tpl, err := s.templateFor(req.TemplateID, m.MeetingType)
	if err != nil {
		return entities.MeetingMinutes{}, err
	}

	version := 1
	if history := s.minutes[m.ID]; len(history) > 0 {
		version = history[len(history)-1].Version + 1
	}

	actions, decisions, risks := s.itemsOf(m.ID)
	summary := ""
	if req.IncludeSummary {
		summary = fmt.Sprintf("%s covered %d decisions, %d action items and %d risks.",
			m.Title, len(decisions), len(actions), len(risks))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", m.Title)
	if summary != "" {
		fmt.Fprintf(&b, "%s\n\n", summary)
	}
	for _, section := range tpl.Sections {
		fmt.Fprintf(&b, "## %s\n\n", section.Title)
		lines := sectionLines(section.Title, req, actions, decisions, risks)
		if len(lines) == 0 {
			b.WriteString("_Nothing recorded._\n\n")
			continue
		}
		for _, line := range lines {
			fmt.Fprintf(&b, "- %s\n", line)
		}
		b.WriteString("\n")
	}

	out := &entities.MeetingMinutes{
		ID:               s.newID(),
		MeetingID:        m.ID,
		Version:          version,
		MinutesMarkdown:  b.String(),
		ExecutiveSummary: summary,
		Status:           entities.MinutesDraft,
		GeneratedAt:      s.timestamp(),
	}
	s.minutes[m.ID] = append(s.minutes[m.ID], out)
	return *out, nil
}

// LatestMinutes returns the newest minutes of a meeting
func (s *Store) LatestMinutes(meetingID string) (entities.MeetingMinutes, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.meetings[meetingID]; !ok {
		return entities.MeetingMinutes{}, notFound("Meeting not found")
	}
	history := s.minutes[meetingID]
	if len(history) == 0 {
		return entities.MeetingMinutes{}, notFound("No minutes generated yet")
	}
	return *history[len(history)-1], nil
}

// UpdateMinutes changes status or content, following the approval workflow
func (s *Store) UpdateMinutes(id string, req minutes.UpdateMinutesRequest) (entities.MeetingMinutes, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m := s.findMinutes(id)
	if m == nil {
		return entities.MeetingMinutes{}, notFound("Minutes not found")
	}
	if req.Status == nil && req.MinutesMarkdown == nil {
		return entities.MeetingMinutes{}, invalid("nothing to update")
	}
	if req.Status != nil && *req.Status != m.Status && !m.Status.CanTransitionTo(*req.Status) {
		return entities.MeetingMinutes{}, conflict("Cannot move minutes from %s to %s", m.Status, *req.Status)
	}
	if req.MinutesMarkdown != nil && m.Status == entities.MinutesApproved {
		return entities.MeetingMinutes{}, conflict("Approved minutes cannot be edited")
	}

	if req.Status != nil {
		m.Status = *req.Status
	}
	if req.MinutesMarkdown != nil {
		m.MinutesMarkdown = *req.MinutesMarkdown
	}
	return *m, nil
}

// Distribute records one delivery per recipient. Addresses on the .invalid
// top-level domain fail so partial delivery can be demonstrated.
func (s *Store) Distribute(req minutes.DistributeRequest) ([]entities.DistributionResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m := s.findMinutes(req.MinutesID)
	if m == nil || m.MeetingID != req.MeetingID {
		return nil, notFound("Minutes not found")
	}
	out := make([]entities.DistributionResult, 0, len(req.Recipients))
	for _, r := range req.Recipients {
		res := entities.DistributionResult{Recipient: r, Status: entities.DeliverySent}
		if strings.HasSuffix(strings.ToLower(r), ".invalid") {
			res.Status = entities.DeliveryFailed
			res.Error = "mailbox unavailable"
		}
		out = append(out, res)
	}
	return out, nil
}

func (s *Store) findMinutes(id string) *entities.MeetingMinutes {
	for _, history := range s.minutes {
		for _, m := range history {
			if m.ID == id {
				return m
			}
		}
	}
	return nil
}

func (s *Store) itemsOf(meetingID string) ([]entities.ActionItem, []entities.DecisionItem, []entities.RiskItem) {
	var (
		actions   []entities.ActionItem
		decisions []entities.DecisionItem
		risks     []entities.RiskItem
	)
	for _, id := range s.itemOrder {
		if a, ok := s.actions[id]; ok && a.MeetingID == meetingID {
			actions = append(actions, *a)
		}
		if d, ok := s.decisions[id]; ok && d.MeetingID == meetingID {
			decisions = append(decisions, *d)
		}
		if r, ok := s.risks[id]; ok && r.MeetingID == meetingID {
			risks = append(risks, *r)
		}
	}
	return actions, decisions, risks
}

// sectionLines picks content for a template section by its title
func sectionLines(
	title string,
	req minutes.GenerateMinutesRequest,
	actions []entities.ActionItem,
	decisions []entities.DecisionItem,
	risks []entities.RiskItem,
) []string {
	var lines []string
	lower := strings.ToLower(title)
	switch {
	case strings.Contains(lower, "decision") && req.IncludeDecisions:
		for _, d := range decisions {
			lines = append(lines, d.Description)
		}
	case strings.Contains(lower, "action") && req.IncludeActions:
		for _, a := range actions {
			owner := a.Owner
			if owner == "" {
				owner = "unassigned"
			}
			lines = append(lines, fmt.Sprintf("%s (%s, %s)", a.Description, owner, a.Priority))
		}
	case strings.Contains(lower, "risk") && req.IncludeRisks:
		for _, r := range risks {
			lines = append(lines, fmt.Sprintf("[%s] %s", r.Severity, r.Description))
		}
	}
	return lines
}

// Templates

// ListTemplates returns every template, defaults first
func (s *Store) ListTemplates() []entities.MinutesTemplate {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entities.MinutesTemplate, 0, len(s.templates))
	for _, t := range s.templates {
		out = append(out, *t)
	}
	sortTemplates(out)
	return out
}

// GetTemplate returns one template
func (s *Store) GetTemplate(id string) (entities.MinutesTemplate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.templates[id]
	if !ok {
		return entities.MinutesTemplate{}, notFound("Template not found")
	}
	return *t, nil
}

// CreateTemplate stores a template; a new default replaces the previous one
// for the same meeting type
func (s *Store) CreateTemplate(req minutes.TemplateRequest) entities.MinutesTemplate {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &entities.MinutesTemplate{ID: s.newID(), CreatedAt: s.timestamp()}
	s.applyTemplate(t, req)
	s.templates[t.ID] = t
	return *t
}

// UpdateTemplate replaces a template
func (s *Store) UpdateTemplate(id string, req minutes.TemplateRequest) (entities.MinutesTemplate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.templates[id]
	if !ok {
		return entities.MinutesTemplate{}, notFound("Template not found")
	}
	s.applyTemplate(t, req)
	return *t, nil
}

// DeleteTemplate removes a template that is not a default
func (s *Store) DeleteTemplate(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.templates[id]
	if !ok {
		return notFound("Template not found")
	}
	if t.IsDefault {
		return conflict("Default templates cannot be deleted")
	}
	delete(s.templates, id)
	return nil
}

func (s *Store) applyTemplate(t *entities.MinutesTemplate, req minutes.TemplateRequest) {
	if req.IsDefault {
		for _, other := range s.templates {
			if other.MeetingType == req.MeetingType {
				other.IsDefault = false
			}
		}
	}
	t.Name = req.Name
	t.Description = req.Description
	t.MeetingType = req.MeetingType
	t.Sections = append([]entities.TemplateSection(nil), req.Sections...)
	t.IsDefault = req.IsDefault
}

// templateFor resolves the named template, else the default for the meeting
// type, else any default
func (s *Store) templateFor(id, meetingType string) (*entities.MinutesTemplate, error) {
	if id != "" {
		t, ok := s.templates[id]
		if !ok {
			return nil, notFound("Template not found")
		}
		return t, nil
	}
	ids := make([]string, 0, len(s.templates))
	for id := range s.templates {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var fallback *entities.MinutesTemplate
	for _, id := range ids {
		t := s.templates[id]
		if !t.IsDefault {
			continue
		}
		if t.MeetingType == meetingType {
			return t, nil
		}
		if fallback == nil {
			fallback = t
		}
	}
	if fallback != nil {
		return fallback, nil
	}
	return &entities.MinutesTemplate{Sections: defaultSections}, nil
}

var defaultSections = []entities.TemplateSection{
	{Title: "Decisions"},
	{Title: "Action items"},
	{Title: "Risks"},
}

func sortTemplates(list []entities.MinutesTemplate) {
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].IsDefault != list[j].IsDefault {
			return list[i].IsDefault
		}
		return list[i].Name < list[j].Name
	})
}
