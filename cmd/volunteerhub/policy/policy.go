// Package policy holds the pure decision rules of the event participation
// engine: whether a registration, cancellation, or status change is allowed
// for a given event and existing participation. It never touches storage; the
// repository re-evaluates these decisions inside its transactions so the
// answer is computed against locked rows.
package policy

import (
	"time"

	"volunteerhub-backend/cmd/volunteerhub/model"
)

// CanRegister decides whether a new registration is allowed. existing is the
// user's participation row for the event, nil when none exists. A row in any
// status, including cancelled, blocks re-registration: the (user, event) pair
// is unique for the lifetime of the record.
func CanRegister(event *model.Event, existing *model.Participation, now time.Time) error {
	if existing != nil {
		return model.ErrAlreadyRegistered
	}
	if !event.IsRegistrationOpen(now) {
		return model.ErrRegistrationClosed
	}
	if !event.HasFreeSlots() {
		return model.ErrEventFull
	}
	return nil
}

// CanCancel decides whether the user may cancel their participation. Only
// registered and confirmed participations can be cancelled; anything else,
// including a missing row or an already-cancelled one, is NotRegistered.
func CanCancel(existing *model.Participation) error {
	if existing == nil {
		return model.ErrNotRegistered
	}
	return CanTransition(existing.Status, model.ParticipationCancelled)
}

// CanTransition validates a status change on an existing participation.
// Invalid moves report NotRegistered: the action needed an active
// participation in a compatible state and there isn't one.
func CanTransition(from, to model.ParticipationStatus) error {
	switch from {
	case model.ParticipationRegistered:
		switch to {
		case model.ParticipationConfirmed, model.ParticipationCancelled,
			model.ParticipationAttended, model.ParticipationNoShow:
			return nil
		}
	case model.ParticipationConfirmed:
		switch to {
		case model.ParticipationCancelled, model.ParticipationAttended,
			model.ParticipationNoShow:
			return nil
		}
	}
	// attended, cancelled and no_show are terminal
	return model.ErrNotRegistered
}

// RegisterDelta is the capacity delta of a successful registration.
const RegisterDelta = 1

// TransitionDelta is the capacity delta of a status change on an existing
// participation. Cancellation and no-show free the slot when the prior status
// held one; confirmation and attendance keep it.
func TransitionDelta(from, to model.ParticipationStatus) int {
	if !from.CountsTowardCapacity() {
		return 0
	}
	if to == model.ParticipationCancelled || to == model.ParticipationNoShow {
		return -1
	}
	return 0
}

// RemovalDelta is the capacity delta of deleting a participation row outright
// (administrative cleanup). The counter only moves when the removed row was
// holding a slot.
func RemovalDelta(status model.ParticipationStatus) int {
	if status.CountsTowardCapacity() {
		return -1
	}
	return 0
}
