package repository

import (
	"context"
	"errors"
	"log/slog"

	"volunteerhub-backend/cmd/volunteerhub/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CapacityCounter maintains events.current_participants. The stored count is
// driven exclusively by deltas applied from ledger transactions; it is never
// recomputed on the request path. Reconcile recounts from the ledger as a
// maintenance operation and corrects any drift.
type CapacityCounter struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewCapacityCounter(db *gorm.DB, logger *slog.Logger) *CapacityCounter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CapacityCounter{
		db:     db,
		logger: logger,
	}
}

// Apply moves the counter of an already-locked event row by delta inside the
// caller's transaction. A decrement below zero clamps to zero; that only
// happens when the counter has drifted from the ledger, so it is logged
// rather than silently ignored.
func (c *CapacityCounter) Apply(tx *gorm.DB, event *model.Event, delta int) error {
	next := event.CurrentParticipants + delta

	if next < 0 {
		c.logger.Error("participant counter underflow, clamping to zero",
			"event_id", event.ID,
			"count", event.CurrentParticipants,
			"delta", delta,
		)
		next = 0
	}

	result := tx.
		Model(&model.Event{}).
		Where("id = ?", event.ID).
		Update("current_participants", next)

	if result.Error != nil {
		return result.Error
	}

	event.CurrentParticipants = next
	return nil
}

// Reconcile recounts the participations that hold a slot and rewrites the
// stored counter. It returns the drift that was corrected (recount minus
// stored value), zero when the counter was already consistent.
func (c *CapacityCounter) Reconcile(ctx context.Context, eventID string) (int, error) {

	var drift int

	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var event model.Event
		err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&event, "id = ?", eventID).
			Error

		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return model.ErrEventNotFound
			}
			return err
		}

		var count int64
		err = tx.
			Model(&model.Participation{}).
			Where("event_id = ? AND status IN ?", eventID, countingStatuses).
			Count(&count).
			Error

		if err != nil {
			return err
		}

		drift = int(count) - event.CurrentParticipants
		if drift == 0 {
			return nil
		}

		c.logger.Warn("participant counter drifted from ledger",
			"event_id", eventID,
			"stored", event.CurrentParticipants,
			"recount", count,
		)

		result := tx.
			Model(&model.Event{}).
			Where("id = ?", eventID).
			Update("current_participants", int(count))

		return result.Error
	})

	if err != nil {
		return 0, err
	}

	return drift, nil
}

var countingStatuses = []model.ParticipationStatus{
	model.ParticipationRegistered,
	model.ParticipationConfirmed,
	model.ParticipationAttended,
}
