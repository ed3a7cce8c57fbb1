package entities

// EventStatus is the lifecycle phase of a scheduled event
type EventStatus string

// Event statuses
const (
	EventStatusUpcoming EventStatus = "upcoming"
	EventStatusActive   EventStatus = "active"
	EventStatusEnded    EventStatus = "ended"
)

// IsValid reports whether the status is known
func (s EventStatus) IsValid() bool {
	switch s {
	case EventStatusUpcoming, EventStatusActive, EventStatusEnded:
		return true
	}
	return false
}

// Event is a scheduled promotion tied to the card calendar. Status is
// derived from the schedule at read time, never stored.
type Event struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Series      int32       `json:"series,omitempty"`
	StartsAt    int64       `json:"startsAt"`
	EndsAt      int64       `json:"endsAt"`
	Status      EventStatus `json:"status,omitempty"`
}

// StatusAt returns the event's phase at the given unix time
func (e *Event) StatusAt(now int64) EventStatus {
	switch {
	case now < e.StartsAt:
		return EventStatusUpcoming
	case now >= e.EndsAt:
		return EventStatusEnded
	}
	return EventStatusActive
}
