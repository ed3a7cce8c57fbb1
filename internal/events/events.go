// Package events holds the static event calendar. Like the card catalog
// the schedule ships embedded in the binary and is immutable after load;
// an event's status is derived from the schedule at read time.
package events

import (
	_ "embed"
	"encoding/json"
	"sort"

	"github.com/daddeck/daddeck-api/internal/entities"
	"github.com/daddeck/daddeck-api/internal/errors"
)

//go:embed data/events.json
var embeddedEvents []byte

type eventFile struct {
	Events []*entities.Event `json:"events"`
}

// Table is the loaded event calendar
type Table struct {
	byID    map[string]*entities.Event
	ordered []*entities.Event
}

// New loads the embedded event calendar
func New() (*Table, error) {
	return Load(embeddedEvents)
}

// Load parses and validates an event calendar from JSON
func Load(data []byte) (*Table, error) {
	var file eventFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, errors.Wrap(err, "failed to parse event data")
	}

	t := &Table{
		byID:    make(map[string]*entities.Event, len(file.Events)),
		ordered: make([]*entities.Event, 0, len(file.Events)),
	}

	for _, event := range file.Events {
		if err := validateEvent(event); err != nil {
			return nil, err
		}
		if _, exists := t.byID[event.ID]; exists {
			return nil, errors.InvalidArgumentf("duplicate event ID %q", event.ID)
		}
		t.byID[event.ID] = event
		t.ordered = append(t.ordered, event)
	}

	sort.Slice(t.ordered, func(i, j int) bool {
		if t.ordered[i].StartsAt != t.ordered[j].StartsAt {
			return t.ordered[i].StartsAt < t.ordered[j].StartsAt
		}
		return t.ordered[i].ID < t.ordered[j].ID
	})

	return t, nil
}

func validateEvent(event *entities.Event) error {
	vb := errors.NewValidationBuilder()

	if event.ID == "" {
		vb.RequiredField("ID")
	}
	if event.Name == "" {
		vb.RequiredField("Name")
	}
	if event.StartsAt <= 0 {
		vb.RequiredField("StartsAt")
	}
	if event.EndsAt <= event.StartsAt {
		vb.Fieldf("EndsAt", "must be after StartsAt")
	}

	if err := vb.Build(); err != nil {
		return errors.Wrapf(err, "invalid event %q", event.ID)
	}
	return nil
}

// Size returns the number of events in the calendar
func (t *Table) Size() int {
	return len(t.ordered)
}

// List returns events in schedule order with statuses stamped for the
// given time, optionally filtered to one status.
func (t *Table) List(now int64, status entities.EventStatus) ([]*entities.Event, error) {
	if status != "" && !status.IsValid() {
		return nil, errors.InvalidArgumentf("unknown event status %q", status)
	}

	out := make([]*entities.Event, 0, len(t.ordered))
	for _, event := range t.ordered {
		stamped := *event
		stamped.Status = event.StatusAt(now)
		if status != "" && stamped.Status != status {
			continue
		}
		out = append(out, &stamped)
	}
	return out, nil
}

// Get returns one event by ID with its status stamped for the given time
func (t *Table) Get(now int64, id string) (*entities.Event, error) {
	if id == "" {
		return nil, errors.InvalidArgument("event ID cannot be empty")
	}
	event, ok := t.byID[id]
	if !ok {
		return nil, errors.NotFoundf("event with ID %s not found", id)
	}
	stamped := *event
	stamped.Status = event.StatusAt(now)
	return &stamped, nil
}
