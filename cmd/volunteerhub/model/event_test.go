package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEvent_TableName(t *testing.T) {
	event := Event{}
	assert.Equal(t, "events", event.TableName())
}

func TestEvent_IsRegistrationOpen(t *testing.T) {
	now := time.Now()
	future := now.Add(24 * time.Hour)
	past := now.Add(-24 * time.Hour)

	published := Event{Status: EventPublished}
	assert.True(t, published.IsRegistrationOpen(now))

	withFutureDeadline := Event{Status: EventPublished, RegistrationDeadline: &future}
	assert.True(t, withFutureDeadline.IsRegistrationOpen(now))

	withPastDeadline := Event{Status: EventPublished, RegistrationDeadline: &past}
	assert.False(t, withPastDeadline.IsRegistrationOpen(now))

	draft := Event{Status: EventDraft, RegistrationDeadline: &future}
	assert.False(t, draft.IsRegistrationOpen(now))

	cancelled := Event{Status: EventCancelled}
	assert.False(t, cancelled.IsRegistrationOpen(now))
}

func TestEvent_IsRegistrationOpen_AtExactDeadline(t *testing.T) {
	deadline := time.Now()
	event := Event{Status: EventPublished, RegistrationDeadline: &deadline}

	// the deadline instant itself is closed, only strictly-before is open
	assert.False(t, event.IsRegistrationOpen(deadline))
	assert.True(t, event.IsRegistrationOpen(deadline.Add(-time.Second)))
}

func TestEvent_HasFreeSlots(t *testing.T) {
	unbounded := Event{CurrentParticipants: 1000}
	assert.True(t, unbounded.HasFreeSlots())

	max := 2

	withRoom := Event{MaxParticipants: &max, CurrentParticipants: 1}
	assert.True(t, withRoom.HasFreeSlots())

	full := Event{MaxParticipants: &max, CurrentParticipants: 2}
	assert.False(t, full.HasFreeSlots())

	overfull := Event{MaxParticipants: &max, CurrentParticipants: 3}
	assert.False(t, overfull.HasFreeSlots())
}

func TestEvent_IsUpcomingAndIsOngoing(t *testing.T) {
	now := time.Now()

	upcoming := Event{
		Status:    EventPublished,
		StartDate: now.Add(time.Hour),
		EndDate:   now.Add(2 * time.Hour),
	}
	assert.True(t, upcoming.IsUpcoming(now))
	assert.False(t, upcoming.IsOngoing(now))

	ongoing := Event{
		Status:    EventPublished,
		StartDate: now.Add(-time.Hour),
		EndDate:   now.Add(time.Hour),
	}
	assert.False(t, ongoing.IsUpcoming(now))
	assert.True(t, ongoing.IsOngoing(now))

	past := Event{
		Status:    EventPublished,
		StartDate: now.Add(-2 * time.Hour),
		EndDate:   now.Add(-time.Hour),
	}
	assert.False(t, past.IsUpcoming(now))
	assert.False(t, past.IsOngoing(now))

	draftUpcoming := Event{
		Status:    EventDraft,
		StartDate: now.Add(time.Hour),
		EndDate:   now.Add(2 * time.Hour),
	}
	assert.False(t, draftUpcoming.IsUpcoming(now))
}

func TestEvent_JSONSerialization(t *testing.T) {
	now := time.Now()
	max := 50
	event := Event{
		ID:              "event-1",
		Title:           "Park Cleanup",
		EventType:       EventTypeCleanup,
		Status:          EventPublished,
		City:            "Moscow",
		MaxParticipants: &max,
		StartDate:       now,
		EndDate:         now.Add(3 * time.Hour),
	}

	jsonData, err := json.Marshal(event)
	assert.NoError(t, err)
	assert.Contains(t, string(jsonData), `"id":"event-1"`)
	assert.Contains(t, string(jsonData), `"event_type":"cleanup"`)
	assert.Contains(t, string(jsonData), `"status":"published"`)
	assert.Contains(t, string(jsonData), `"max_participants":50`)

	var decoded Event
	err = json.Unmarshal(jsonData, &decoded)
	assert.NoError(t, err)
	assert.Equal(t, event.ID, decoded.ID)
	assert.Equal(t, event.EventType, decoded.EventType)
	assert.Equal(t, *event.MaxParticipants, *decoded.MaxParticipants)
}
