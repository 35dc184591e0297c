package analytics

import (
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventRecipeAdded   EventType = "recipe_added"
	EventRecipeRemoved EventType = "recipe_removed"
	EventSearch        EventType = "search"
	EventFilter        EventType = "filter"
	EventStatistics    EventType = "statistics"
)

// Event describes one catalog operation. Outcome is "ok" or the error code
// from pkg/errors.Code.
type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Operation string    `json:"operation"`
	Recipe    string    `json:"recipe,omitempty"`
	Terms     []string  `json:"terms,omitempty"`
	Results   int       `json:"results"`
	Outcome   string    `json:"outcome"`
	Cached    bool      `json:"cached,omitempty"`
	LatencyUs int64     `json:"latency_us"`
	RequestID string    `json:"request_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// NewEvent stamps an event with a fresh ID and the current UTC time.
func NewEvent(t EventType, operation string) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      t,
		Operation: operation,
		Outcome:   "ok",
		Timestamp: time.Now().UTC(),
	}
}

// Tracker receives catalog events. Implementations must not block.
type Tracker interface {
	Track(event Event)
}

type multiTracker []Tracker

func (m multiTracker) Track(event Event) {
	for _, t := range m {
		t.Track(event)
	}
}

// Multi fans an event out to every non-nil tracker.
func Multi(trackers ...Tracker) Tracker {
	out := make(multiTracker, 0, len(trackers))
	for _, t := range trackers {
		if t != nil {
			out = append(out, t)
		}
	}
	return out
}
