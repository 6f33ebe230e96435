// Package analytics records the user journey through the diagnosis funnel:
// form progress, diagnosis views, playbook engagement. Events are held
// per-session with a 30-day expiry, newest first.
package analytics

import (
	"fmt"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

type EventType string

const (
	EventFormStarted        EventType = "form_started"
	EventFormStepCompleted  EventType = "form_step_completed"
	EventFormCompleted      EventType = "form_completed"
	EventDiagnosisViewed    EventType = "diagnosis_viewed"
	EventPlaybookViewed     EventType = "playbook_viewed"
	EventPlaybookDownloaded EventType = "playbook_downloaded"
	EventPlaybookShared     EventType = "playbook_shared"
	EventPageVisited        EventType = "page_visited"
)

func (t EventType) Valid() bool {
	switch t {
	case EventFormStarted, EventFormStepCompleted, EventFormCompleted,
		EventDiagnosisViewed, EventPlaybookViewed, EventPlaybookDownloaded,
		EventPlaybookShared, EventPageVisited:
		return true
	}
	return false
}

type Event struct {
	SessionID string         `json:"sessionId"`
	Type      EventType      `json:"type"`
	Timestamp time.Time      `json:"timestamp"`
	Data      map[string]any `json:"data,omitempty"`
}

// Summary is the funnel view of a single session.
type Summary struct {
	SessionID           string      `json:"sessionId"`
	TotalEvents         int         `json:"totalEvents"`
	EventTypes          []EventType `json:"eventTypes"`
	FormStarted         bool        `json:"formStarted"`
	FormCompleted       bool        `json:"formCompleted"`
	DiagnosisViewed     bool        `json:"diagnosisViewed"`
	PlaybookViewed      bool        `json:"playbookViewed"`
	PlaybookDownloaded  bool        `json:"playbookDownloaded"`
	PlaybookShared      bool        `json:"playbookShared"`
	CoreActionCompleted bool        `json:"coreActionCompleted"`
	SessionDuration     int64       `json:"sessionDurationMs"`
}

// Service is what the HTTP layer depends on; NopService satisfies it for
// deployments that disable tracking.
type Service interface {
	Track(ev Event) error
	SessionEvents(sessionID string) []Event
	JourneySummary(sessionID string) Summary
	ClearSession(sessionID string)
}

const (
	sessionTTL  = 30 * 24 * time.Hour
	maxSessions = 4096
)

// Store keeps per-session event lists in an expiring LRU. Sessions idle for
// the TTL fall out on their own; the LRU bound caps total memory.
type Store struct {
	mu       sync.Mutex
	sessions *expirable.LRU[string, []Event]
	now      func() time.Time
}

var _ Service = (*Store)(nil)

func NewStore() *Store {
	return &Store{
		sessions: expirable.NewLRU[string, []Event](maxSessions, nil, sessionTTL),
		now:      time.Now,
	}
}

// SetClock overrides the timestamp source. Tests use it for stable output.
func (s *Store) SetClock(now func() time.Time) {
	s.now = now
}

func (s *Store) Track(ev Event) error {
	if ev.SessionID == "" {
		return fmt.Errorf("session id required")
	}
	if !ev.Type.Valid() {
		return fmt.Errorf("unknown event type %q", ev.Type)
	}
	if ev.Timestamp.IsZero() {
		ev.Timestamp = s.now().UTC()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	events, _ := s.sessions.Get(ev.SessionID)
	// Newest first, matching list-push semantics.
	events = append([]Event{ev}, events...)
	s.sessions.Add(ev.SessionID, events)
	return nil
}

func (s *Store) SessionEvents(sessionID string) []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	events, _ := s.sessions.Get(sessionID)
	out := make([]Event, len(events))
	copy(out, events)
	return out
}

func (s *Store) JourneySummary(sessionID string) Summary {
	events := s.SessionEvents(sessionID)
	sum := Summary{SessionID: sessionID, TotalEvents: len(events), EventTypes: []EventType{}}
	seen := make(map[EventType]bool)
	for _, ev := range events {
		if !seen[ev.Type] {
			seen[ev.Type] = true
			sum.EventTypes = append(sum.EventTypes, ev.Type)
		}
	}
	sum.FormStarted = seen[EventFormStarted]
	sum.FormCompleted = seen[EventFormCompleted]
	sum.DiagnosisViewed = seen[EventDiagnosisViewed]
	sum.PlaybookViewed = seen[EventPlaybookViewed]
	sum.PlaybookDownloaded = seen[EventPlaybookDownloaded]
	sum.PlaybookShared = seen[EventPlaybookShared]
	sum.CoreActionCompleted = sum.FormCompleted && sum.PlaybookViewed
	if len(events) > 0 {
		// Events are newest first; the last one opened the session.
		oldest := events[len(events)-1].Timestamp
		sum.SessionDuration = s.now().UTC().Sub(oldest).Milliseconds()
	}
	return sum
}

func (s *Store) ClearSession(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions.Remove(sessionID)
}

// NopService drops every event. Used when tracking is disabled.
type NopService struct{}

var _ Service = NopService{}

func (NopService) Track(Event) error            { return nil }
func (NopService) SessionEvents(string) []Event { return nil }
func (NopService) ClearSession(string)          {}

func (NopService) JourneySummary(id string) Summary {
	return Summary{SessionID: id, EventTypes: []EventType{}}
}
