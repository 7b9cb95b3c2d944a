package policy

import (
	"testing"
	"time"

	"volunteerhub-backend/cmd/volunteerhub/model"

	"github.com/stretchr/testify/assert"
)

func publishedEvent(max *int, current int, deadline *time.Time) *model.Event {
	return &model.Event{
		ID:                   "event-1",
		Status:               model.EventPublished,
		MaxParticipants:      max,
		CurrentParticipants:  current,
		RegistrationDeadline: deadline,
	}
}

func TestCanRegister_Allowed(t *testing.T) {
	now := time.Now()
	deadline := now.Add(time.Hour)
	max := 10

	event := publishedEvent(&max, 5, &deadline)

	assert.NoError(t, CanRegister(event, nil, now))
}

func TestCanRegister_ClosedByStatus(t *testing.T) {
	now := time.Now()

	for _, status := range []model.EventStatus{
		model.EventDraft,
		model.EventPending,
		model.EventCancelled,
		model.EventCompleted,
	} {
		event := &model.Event{ID: "event-1", Status: status}
		assert.ErrorIs(t, CanRegister(event, nil, now), model.ErrRegistrationClosed, "status %s", status)
	}
}

func TestCanRegister_ClosedByDeadline(t *testing.T) {
	now := time.Now()
	deadline := now.Add(-time.Minute)
	max := 10

	// still published with free slots, the deadline alone closes it
	event := publishedEvent(&max, 0, &deadline)

	assert.ErrorIs(t, CanRegister(event, nil, now), model.ErrRegistrationClosed)
}

func TestCanRegister_Full(t *testing.T) {
	now := time.Now()
	max := 2

	event := publishedEvent(&max, 2, nil)

	assert.ErrorIs(t, CanRegister(event, nil, now), model.ErrEventFull)
}

func TestCanRegister_ExistingRecordBlocks(t *testing.T) {
	now := time.Now()
	event := publishedEvent(nil, 0, nil)

	for _, status := range []model.ParticipationStatus{
		model.ParticipationRegistered,
		model.ParticipationConfirmed,
		model.ParticipationAttended,
		model.ParticipationCancelled,
		model.ParticipationNoShow,
	} {
		existing := &model.Participation{Status: status}
		assert.ErrorIs(t, CanRegister(event, existing, now), model.ErrAlreadyRegistered, "status %s", status)
	}
}

func TestCanRegister_ExistingCheckedBeforeWindow(t *testing.T) {
	now := time.Now()

	// a duplicate attempt on a closed event reports AlreadyRegistered, not
	// RegistrationClosed
	event := &model.Event{ID: "event-1", Status: model.EventCompleted}
	existing := &model.Participation{Status: model.ParticipationAttended}

	assert.ErrorIs(t, CanRegister(event, existing, now), model.ErrAlreadyRegistered)
}

func TestCanCancel(t *testing.T) {
	assert.ErrorIs(t, CanCancel(nil), model.ErrNotRegistered)

	assert.NoError(t, CanCancel(&model.Participation{Status: model.ParticipationRegistered}))
	assert.NoError(t, CanCancel(&model.Participation{Status: model.ParticipationConfirmed}))

	assert.ErrorIs(t, CanCancel(&model.Participation{Status: model.ParticipationCancelled}), model.ErrNotRegistered)
	assert.ErrorIs(t, CanCancel(&model.Participation{Status: model.ParticipationNoShow}), model.ErrNotRegistered)
	assert.ErrorIs(t, CanCancel(&model.Participation{Status: model.ParticipationAttended}), model.ErrNotRegistered)
}

func TestCanTransition(t *testing.T) {
	type move struct {
		from    model.ParticipationStatus
		to      model.ParticipationStatus
		allowed bool
	}

	moves := []move{
		{model.ParticipationRegistered, model.ParticipationConfirmed, true},
		{model.ParticipationRegistered, model.ParticipationCancelled, true},
		{model.ParticipationRegistered, model.ParticipationAttended, true},
		{model.ParticipationRegistered, model.ParticipationNoShow, true},

		{model.ParticipationConfirmed, model.ParticipationCancelled, true},
		{model.ParticipationConfirmed, model.ParticipationAttended, true},
		{model.ParticipationConfirmed, model.ParticipationNoShow, true},
		{model.ParticipationConfirmed, model.ParticipationRegistered, false},

		{model.ParticipationAttended, model.ParticipationCancelled, false},
		{model.ParticipationAttended, model.ParticipationNoShow, false},
		{model.ParticipationAttended, model.ParticipationConfirmed, false},

		{model.ParticipationCancelled, model.ParticipationRegistered, false},
		{model.ParticipationCancelled, model.ParticipationConfirmed, false},
		{model.ParticipationCancelled, model.ParticipationCancelled, false},

		{model.ParticipationNoShow, model.ParticipationAttended, false},
		{model.ParticipationNoShow, model.ParticipationCancelled, false},
	}

	for _, m := range moves {
		err := CanTransition(m.from, m.to)
		if m.allowed {
			assert.NoError(t, err, "%s -> %s", m.from, m.to)
		} else {
			assert.ErrorIs(t, err, model.ErrNotRegistered, "%s -> %s", m.from, m.to)
		}
	}
}

func TestTransitionDelta(t *testing.T) {
	// freeing moves
	assert.Equal(t, -1, TransitionDelta(model.ParticipationRegistered, model.ParticipationCancelled))
	assert.Equal(t, -1, TransitionDelta(model.ParticipationConfirmed, model.ParticipationCancelled))
	assert.Equal(t, -1, TransitionDelta(model.ParticipationRegistered, model.ParticipationNoShow))
	assert.Equal(t, -1, TransitionDelta(model.ParticipationConfirmed, model.ParticipationNoShow))

	// slot-keeping moves
	assert.Equal(t, 0, TransitionDelta(model.ParticipationRegistered, model.ParticipationConfirmed))
	assert.Equal(t, 0, TransitionDelta(model.ParticipationRegistered, model.ParticipationAttended))
	assert.Equal(t, 0, TransitionDelta(model.ParticipationConfirmed, model.ParticipationAttended))

	// moves from non-counting states never touch the counter
	assert.Equal(t, 0, TransitionDelta(model.ParticipationCancelled, model.ParticipationCancelled))
	assert.Equal(t, 0, TransitionDelta(model.ParticipationNoShow, model.ParticipationCancelled))
}

func TestRemovalDelta(t *testing.T) {
	assert.Equal(t, -1, RemovalDelta(model.ParticipationRegistered))
	assert.Equal(t, -1, RemovalDelta(model.ParticipationConfirmed))
	assert.Equal(t, -1, RemovalDelta(model.ParticipationAttended))
	assert.Equal(t, 0, RemovalDelta(model.ParticipationCancelled))
	assert.Equal(t, 0, RemovalDelta(model.ParticipationNoShow))
}

// Walks the two-slot event scenario: A and B fill the event, C bounces off,
// A cancels, C gets the freed slot.
func TestCapacityScenario(t *testing.T) {
	now := time.Now()
	deadline := now.Add(time.Hour)
	max := 2

	event := publishedEvent(&max, 0, &deadline)
	records := map[string]*model.Participation{}

	register := func(user string) error {
		err := CanRegister(event, records[user], now)
		if err != nil {
			return err
		}
		records[user] = &model.Participation{UserID: user, Status: model.ParticipationRegistered}
		event.CurrentParticipants += RegisterDelta
		return nil
	}

	cancel := func(user string) error {
		err := CanCancel(records[user])
		if err != nil {
			return err
		}
		event.CurrentParticipants += TransitionDelta(records[user].Status, model.ParticipationCancelled)
		records[user].Status = model.ParticipationCancelled
		return nil
	}

	assert.NoError(t, register("A"))
	assert.Equal(t, 1, event.CurrentParticipants)

	assert.NoError(t, register("B"))
	assert.Equal(t, 2, event.CurrentParticipants)

	assert.ErrorIs(t, register("C"), model.ErrEventFull)
	assert.Equal(t, 2, event.CurrentParticipants)

	assert.NoError(t, cancel("A"))
	assert.Equal(t, 1, event.CurrentParticipants)

	assert.NoError(t, register("C"))
	assert.Equal(t, 2, event.CurrentParticipants)

	// second cancel is rejected and the counter stays put
	assert.ErrorIs(t, cancel("A"), model.ErrNotRegistered)
	assert.Equal(t, 2, event.CurrentParticipants)

	// A cancelled earlier, re-registration is refused for good
	assert.ErrorIs(t, register("A"), model.ErrAlreadyRegistered)
	assert.Equal(t, 2, event.CurrentParticipants)
}
