package repository

import (
	"context"
	"errors"
	"time"

	"volunteerhub-backend/cmd/volunteerhub/model"
	"volunteerhub-backend/cmd/volunteerhub/policy"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ParticipationRepo is the only writer of participation rows. Every write
// runs in one transaction that locks the event row, re-evaluates the policy
// against the locked state, applies the status change and moves the capacity
// counter, so the slot check and the write cannot interleave with a
// concurrent registration for the same event.
type ParticipationRepo struct {
	db      *gorm.DB
	counter *CapacityCounter
}

func NewParticipationRepo(db *gorm.DB, counter *CapacityCounter) *ParticipationRepo {
	return &ParticipationRepo{
		db:      db,
		counter: counter,
	}
}

func (r *ParticipationRepo) lockEvent(tx *gorm.DB, eventID string) (*model.Event, error) {

	var event model.Event

	err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&event, "id = ?", eventID).
		Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrEventNotFound
		}
		return nil, err
	}

	return &event, nil
}

func (r *ParticipationRepo) find(tx *gorm.DB, userID, eventID string) (*model.Participation, error) {

	var participation model.Participation

	err := tx.
		Where("user_id = ? AND event_id = ?", userID, eventID).
		First(&participation).
		Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &participation, nil
}

// Register creates a participation in registered state and takes one slot.
// Policy rejections (closed registration, full event, existing row) come back
// as the model sentinel errors.
func (r *ParticipationRepo) Register(ctx context.Context, userID, eventID, notes string) (*model.Participation, error) {

	var created model.Participation

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		event, err := r.lockEvent(tx, eventID)
		if err != nil {
			return err
		}

		existing, err := r.find(tx, userID, eventID)
		if err != nil {
			return err
		}

		err = policy.CanRegister(event, existing, time.Now())
		if err != nil {
			return err
		}

		id, err := uuid.NewV7()
		if err != nil {
			return err
		}

		now := time.Now()
		created = model.Participation{
			ID:              id.String(),
			UserID:          userID,
			EventID:         eventID,
			Status:          model.ParticipationRegistered,
			Notes:           notes,
			RegisteredAt:    now,
			StatusChangedAt: now,
		}

		err = tx.Create(&created).Error
		if err != nil {
			return err
		}

		return r.counter.Apply(tx, event, policy.RegisterDelta)
	})

	if err != nil {
		return nil, err
	}

	return &created, nil
}

// Cancel marks the user's participation cancelled and frees its slot. The row
// stays behind so the user cannot re-register under the unique (user, event)
// constraint.
func (r *ParticipationRepo) Cancel(ctx context.Context, userID, eventID string) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		event, err := r.lockEvent(tx, eventID)
		if err != nil {
			return err
		}

		existing, err := r.find(tx, userID, eventID)
		if err != nil {
			return err
		}

		err = policy.CanCancel(existing)
		if err != nil {
			return err
		}

		prior := existing.Status

		err = tx.
			Model(&model.Participation{}).
			Where("id = ?", existing.ID).
			Updates(map[string]any{
				"status":            model.ParticipationCancelled,
				"status_changed_at": time.Now(),
			}).
			Error

		if err != nil {
			return err
		}

		delta := policy.TransitionDelta(prior, model.ParticipationCancelled)
		if delta == 0 {
			return nil
		}

		return r.counter.Apply(tx, event, delta)
	})
}

// ChangeStatus applies an administrative transition (confirm, attended,
// no_show). Attended transitions may record volunteer hours, which also roll
// up into the user's totals.
func (r *ParticipationRepo) ChangeStatus(ctx context.Context, userID, eventID string, to model.ParticipationStatus, volunteerHours *int) (*model.Participation, error) {

	var updated model.Participation

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		event, err := r.lockEvent(tx, eventID)
		if err != nil {
			return err
		}

		existing, err := r.find(tx, userID, eventID)
		if err != nil {
			return err
		}
		if existing == nil {
			return model.ErrNotRegistered
		}

		err = policy.CanTransition(existing.Status, to)
		if err != nil {
			return err
		}

		prior := existing.Status
		changedAt := time.Now()

		fields := map[string]any{
			"status":            to,
			"status_changed_at": changedAt,
		}
		if to == model.ParticipationAttended && volunteerHours != nil {
			fields["volunteer_hours"] = *volunteerHours
		}

		err = tx.
			Model(&model.Participation{}).
			Where("id = ?", existing.ID).
			Updates(fields).
			Error

		if err != nil {
			return err
		}

		if to == model.ParticipationAttended {
			userFields := map[string]any{
				"events_participated": gorm.Expr("events_participated + 1"),
			}
			if volunteerHours != nil {
				userFields["total_volunteer_hours"] = gorm.Expr("total_volunteer_hours + ?", *volunteerHours)
			}

			err = tx.
				Model(&model.User{}).
				Where("id = ?", userID).
				Updates(userFields).
				Error

			if err != nil {
				return err
			}
		}

		delta := policy.TransitionDelta(prior, to)
		if delta != 0 {
			err = r.counter.Apply(tx, event, delta)
			if err != nil {
				return err
			}
		}

		updated = *existing
		updated.Status = to
		updated.StatusChangedAt = changedAt
		if to == model.ParticipationAttended && volunteerHours != nil {
			updated.VolunteerHours = volunteerHours
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return &updated, nil
}

// GetParticipation returns the user's row for the event, nil when none
// exists.
func (r *ParticipationRepo) GetParticipation(ctx context.Context, userID, eventID string) (*model.Participation, error) {
	return r.find(r.db.WithContext(ctx), userID, eventID)
}

// ListParticipants returns the event's participations ordered by registration
// time. An empty status set means all statuses.
func (r *ParticipationRepo) ListParticipants(ctx context.Context, eventID string, statuses []model.ParticipationStatus) ([]model.Participation, error) {

	query := r.db.
		WithContext(ctx).
		Model(&model.Participation{}).
		Where("event_id = ?", eventID)

	if len(statuses) > 0 {
		query = query.Where("status IN ?", statuses)
	}

	var participations []model.Participation

	result := query.
		Order("registered_at ASC").
		Find(&participations)

	if result.Error != nil {
		return nil, result.Error
	}

	return participations, nil
}

func (r *ParticipationRepo) ListByUser(ctx context.Context, userID string, status *model.ParticipationStatus) ([]model.Participation, error) {

	query := r.db.
		WithContext(ctx).
		Model(&model.Participation{}).
		Where("user_id = ?", userID)

	if status != nil {
		query = query.Where("status = ?", *status)
	}

	var participations []model.Participation

	result := query.
		Order("registered_at ASC").
		Find(&participations)

	if result.Error != nil {
		return nil, result.Error
	}

	return participations, nil
}

// AdminDelete removes a participation row outright and corrects the counter
// when the removed row was holding a slot. Normal cancellation never deletes.
func (r *ParticipationRepo) AdminDelete(ctx context.Context, userID, eventID string) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		event, err := r.lockEvent(tx, eventID)
		if err != nil {
			return err
		}

		existing, err := r.find(tx, userID, eventID)
		if err != nil {
			return err
		}
		if existing == nil {
			return model.ErrNotRegistered
		}

		err = tx.
			Delete(&model.Participation{}, "id = ?", existing.ID).
			Error

		if err != nil {
			return err
		}

		delta := policy.RemovalDelta(existing.Status)
		if delta == 0 {
			return nil
		}

		return r.counter.Apply(tx, event, delta)
	})
}
