package memdb

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/johnquangdev/meetmate/internal/domain/entities"
)

// Error kinds the HTTP layer maps to status codes
var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
	ErrInvalid  = errors.New("invalid")
)

// Error carries a user-facing detail alongside its kind
type Error struct {
	Kind   error
	Detail string
}

// Error implements error interface
func (e *Error) Error() string {
	return e.Detail
}

// Unwrap exposes the kind for errors.Is
func (e *Error) Unwrap() error {
	return e.Kind
}

func notFound(format string, args ...interface{}) error {
	return &Error{Kind: ErrNotFound, Detail: fmt.Sprintf(format, args...)}
}

func conflict(format string, args ...interface{}) error {
	return &Error{Kind: ErrConflict, Detail: fmt.Sprintf(format, args...)}
}

func invalid(format string, args ...interface{}) error {
	return &Error{Kind: ErrInvalid, Detail: fmt.Sprintf(format, args...)}
}

// Store is the in-memory backend behind the demo server. Every method is
// safe for concurrent use.
type Store struct {
	mu sync.RWMutex

	meetings     map[string]*entities.Meeting
	meetingOrder []string
	participants map[string][]entities.Participant
	chunks       map[string][]entities.TranscriptChunk
	actions      map[string]*entities.ActionItem
	decisions    map[string]*entities.DecisionItem
	risks        map[string]*entities.RiskItem
	itemOrder    []string
	minutes      map[string][]*entities.MeetingMinutes
	templates    map[string]*entities.MinutesTemplate
	documents    map[string]*entities.KnowledgeDocument
	docOrder     []string
	waitlist     map[string]time.Time
	taskSeq      int

	now   func() time.Time
	newID func() string
}

// Option customises a store
type Option func(*Store)

// WithClock overrides the time source
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New creates an empty store
func New(opts ...Option) *Store {
	s := &Store{
		meetings:     make(map[string]*entities.Meeting),
		participants: make(map[string][]entities.Participant),
		chunks:       make(map[string][]entities.TranscriptChunk),
		actions:      make(map[string]*entities.ActionItem),
		decisions:    make(map[string]*entities.DecisionItem),
		risks:        make(map[string]*entities.RiskItem),
		minutes:      make(map[string][]*entities.MeetingMinutes),
		templates:    make(map[string]*entities.MinutesTemplate),
		documents:    make(map[string]*entities.KnowledgeDocument),
		waitlist:     make(map[string]time.Time),
		now:          func() time.Time { return time.Now().UTC() },
		newID:        uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) timestamp() string {
	return s.now().Format(time.RFC3339)
}
