package memdb

import (
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/johnquangdev/meetmate/internal/adapter/dto/common"
	"github.com/johnquangdev/meetmate/internal/adapter/dto/knowledge"
	"github.com/johnquangdev/meetmate/internal/domain/entities"
)

const snippetLength = 160

// ListDocuments returns documents, newest first, optionally by category
func (s *Store) ListDocuments(filter knowledge.ListDocumentsRequest) ([]entities.KnowledgeDocument, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []entities.KnowledgeDocument
	for i := len(s.docOrder) - 1; i >= 0; i-- {
		d := s.documents[s.docOrder[i]]
		if filter.Category != "" && !strings.EqualFold(d.Category, filter.Category) {
			continue
		}
		out = append(out, copyDocument(d))
	}
	total := len(out)
	return page(out, filter.Skip, filter.Limit), total
}

// SearchDocuments scores documents by how many query terms they contain
func (s *Store) SearchDocuments(req knowledge.SearchRequest) []entities.KnowledgeSearchResult {
	s.mu.RLock()
	defer s.mu.RUnlock()

	terms := strings.Fields(strings.ToLower(req.Query))
	var out []entities.KnowledgeSearchResult
	for _, id := range s.docOrder {
		d := s.documents[id]
		if req.Category != "" && !strings.EqualFold(d.Category, req.Category) {
			continue
		}
		if !hasTags(d, req.Tags) {
			continue
		}
		text := strings.ToLower(d.Title + " " + d.Description + " " + strings.Join(d.Tags, " "))
		hits := 0
		for _, term := range terms {
			if strings.Contains(text, term) {
				hits++
			}
		}
		if hits == 0 {
			continue
		}
		out = append(out, entities.KnowledgeSearchResult{
			Document: copyDocument(d),
			Score:    float64(hits) / float64(len(terms)),
			Snippet:  snippet(d.Description),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	if req.Limit > 0 && len(out) > req.Limit {
		out = out[:req.Limit]
	}
	return out
}

// UploadDocument stores the metadata of an uploaded file
func (s *Store) UploadDocument(req knowledge.UploadRequest, fileName string) entities.KnowledgeDocument {
	s.mu.Lock()
	defer s.mu.Unlock()

	docType := req.DocumentType
	if docType == "" {
		docType = strings.TrimPrefix(path.Ext(fileName), ".")
	}
	d := &entities.KnowledgeDocument{
		ID:           s.newID(),
		Title:        req.Title,
		Description:  req.Description,
		Source:       req.Source,
		Category:     req.Category,
		Tags:         append([]string(nil), req.Tags...),
		DocumentType: docType,
		CreatedAt:    s.timestamp(),
	}
	d.FileURL = fmt.Sprintf("/files/%s/%s", d.ID, path.Base(fileName))
	s.documents[d.ID] = d
	s.docOrder = append(s.docOrder, d.ID)
	return copyDocument(d)
}

// DeleteDocument removes a document
func (s *Store) DeleteDocument(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.documents[id]; !ok {
		return notFound("Document not found")
	}
	delete(s.documents, id)
	for i, other := range s.docOrder {
		if other == id {
			s.docOrder = append(s.docOrder[:i:i], s.docOrder[i+1:]...)
			break
		}
	}
	return nil
}

// JoinWaitlist registers an email once
func (s *Store) JoinWaitlist(req common.JoinWaitlistRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := strings.ToLower(req.Email)
	if _, ok := s.waitlist[key]; ok {
		return conflict("%s is already on the waitlist", req.Email)
	}
	s.waitlist[key] = s.now()
	return nil
}

// Ask answers a question from what the store knows about the given scope
func (s *Store) Ask(req common.AskRequest) (entities.AssistantAnswer, error) {
	switch req.Scope {
	case entities.ScopeMeeting:
		return s.askMeeting(req)
	case entities.ScopeKnowledge:
		hits := s.SearchDocuments(knowledge.SearchRequest{Query: req.Message, Limit: 3})
		if len(hits) == 0 {
			return entities.AssistantAnswer{Answer: "No document in the Knowledge Hub matches that question."}, nil
		}
		ans := entities.AssistantAnswer{
			Answer: fmt.Sprintf("Found %d related document(s). The closest is %q.", len(hits), hits[0].Document.Title),
		}
		for _, h := range hits {
			ans.Citations = append(ans.Citations, h.Document.ID)
		}
		return ans, nil
	default:
		return entities.AssistantAnswer{
			Answer: "Open a meeting or the Knowledge Hub to ask about a specific context.",
		}, nil
	}
}

func (s *Store) askMeeting(req common.AskRequest) (entities.AssistantAnswer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.meetings[req.MeetingID]
	if !ok {
		return entities.AssistantAnswer{}, notFound("Meeting not found")
	}
	actions, decisions, risks := s.itemsOf(m.ID)
	open := 0
	for _, a := range actions {
		if a.Status != entities.ActionDone && a.Status != entities.ActionCancelled {
			open++
		}
	}
	phase := req.Phase
	if phase == "" {
		phase = m.Phase
	}
	return entities.AssistantAnswer{
		Answer: fmt.Sprintf("%q (%s phase) has %d open action items, %d decisions and %d risks.",
			m.Title, phase, open, len(decisions), len(risks)),
		Citations: []string{m.ID},
	}, nil
}

func hasTags(d *entities.KnowledgeDocument, tags []string) bool {
	for _, want := range tags {
		found := false
		for _, tag := range d.Tags {
			if strings.EqualFold(tag, want) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func snippet(text string) string {
	r := []rune(text)
	if len(r) <= snippetLength {
		return text
	}
	return string(r[:snippetLength]) + "..."
}

func copyDocument(d *entities.KnowledgeDocument) entities.KnowledgeDocument {
	out := *d
	out.Tags = append([]string(nil), d.Tags...)
	return out
}
