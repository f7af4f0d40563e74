package chatcontext

import (
	"sync"

	"github.com/johnquangdev/meetmate/internal/domain/entities"
)

// Listener is notified with the new override, or nil after a clear
type Listener func(override *entities.ChatContextOverride)

// Store is the single process-wide override slot read by the assistant.
// The last Set wins; there is no stacking or merging of overrides.
type Store struct {
	mu        sync.RWMutex
	owner     string
	current   *entities.ChatContextOverride
	listeners map[int]Listener
	nextID    int
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{listeners: make(map[int]Listener)}
}

// Set replaces the override and records who set it
func (s *Store) Set(owner string, override entities.ChatContextOverride) {
	s.mu.Lock()
	s.owner = owner
	copied := override
	s.current = &copied
	listeners := s.snapshot()
	s.mu.Unlock()

	notify(listeners, &copied)
}

// Clear empties the slot if owner still holds it, so a late unmount cannot
// wipe an override set by the view that replaced it. It reports whether the
// slot was cleared.
func (s *Store) Clear(owner string) bool {
	s.mu.Lock()
	if s.current == nil || s.owner != owner {
		s.mu.Unlock()
		return false
	}
	s.owner = ""
	s.current = nil
	listeners := s.snapshot()
	s.mu.Unlock()

	notify(listeners, nil)
	return true
}

// Current returns a copy of the override, or false when the slot is empty
func (s *Store) Current() (entities.ChatContextOverride, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return entities.ChatContextOverride{}, false
	}
	return *s.current, true
}

// Resolve returns the current override, or the general scope when empty
func (s *Store) Resolve() entities.ChatContextOverride {
	if o, ok := s.Current(); ok {
		return o
	}
	return entities.ChatContextOverride{Scope: entities.ScopeGeneral}
}

// Subscribe registers fn and returns a function that removes it
func (s *Store) Subscribe(fn Listener) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

func (s *Store) snapshot() []Listener {
	out := make([]Listener, 0, len(s.listeners))
	for _, fn := range s.listeners {
		out = append(out, fn)
	}
	return out
}

func notify(listeners []Listener, override *entities.ChatContextOverride) {
	for _, fn := range listeners {
		if override == nil {
			fn(nil)
			continue
		}
		copied := *override
		fn(&copied)
	}
}
