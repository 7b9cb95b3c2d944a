package repository

import (
	"context"
	"errors"
	"time"

	"volunteerhub-backend/cmd/volunteerhub/model"

	"gorm.io/gorm"
)

type EventRepo struct {
	db *gorm.DB
}

func NewEventRepo(db *gorm.DB) *EventRepo {
	return &EventRepo{
		db: db,
	}
}

// EventFilter narrows ListEvents. Zero values mean no filtering on that
// dimension; Timeframe is one of "upcoming", "past", "ongoing".
type EventFilter struct {
	City      string
	EventType model.EventType
	Timeframe string
}

func (r *EventRepo) GetEvent(ctx context.Context, id string) (*model.Event, error) {

	var event model.Event

	result := r.db.
		WithContext(ctx).
		First(&event, "id = ?", id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrEventNotFound
		}
		return nil, result.Error
	}

	return &event, nil
}

func (r *EventRepo) ListEvents(ctx context.Context, filter EventFilter) ([]model.Event, error) {

	now := time.Now()

	query := r.db.
		WithContext(ctx).
		Model(&model.Event{}).
		Where("status = ?", model.EventPublished)

	if filter.City != "" {
		query = query.Where("city = ?", filter.City)
	}
	if filter.EventType != "" {
		query = query.Where("event_type = ?", filter.EventType)
	}

	switch filter.Timeframe {
	case "past":
		query = query.Where("end_date < ?", now)
	case "ongoing":
		query = query.Where("start_date <= ? AND end_date >= ?", now, now)
	case "upcoming":
		query = query.Where("start_date >= ?", now)
	}

	var events []model.Event

	result := query.
		Order("start_date ASC").
		Find(&events)

	if result.Error != nil {
		return nil, result.Error
	}

	return events, nil
}

func (r *EventRepo) UpcomingEvents(ctx context.Context, limit int) ([]model.Event, error) {

	var events []model.Event

	result := r.db.
		WithContext(ctx).
		Model(&model.Event{}).
		Where("status = ? AND start_date >= ?", model.EventPublished, time.Now()).
		Order("start_date ASC").
		Limit(limit).
		Find(&events)

	if result.Error != nil {
		return nil, result.Error
	}

	return events, nil
}

func (r *EventRepo) CreateEvent(ctx context.Context, event *model.Event) error {

	result := r.db.
		WithContext(ctx).
		Create(event)

	if result.Error != nil {
		return result.Error
	}

	return nil
}

func (r *EventRepo) UpdateEvent(ctx context.Context, event *model.Event) error {

	result := r.db.
		WithContext(ctx).
		Save(event)

	if result.Error != nil {
		return result.Error
	}

	return nil
}

func (r *EventRepo) SetEventStatus(ctx context.Context, id string, status model.EventStatus) error {

	result := r.db.
		WithContext(ctx).
		Model(&model.Event{}).
		Where("id = ?", id).
		Update("status", status)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return model.ErrEventNotFound
	}

	return nil
}

func (r *EventRepo) IncrementViewCount(ctx context.Context, id string) error {

	result := r.db.
		WithContext(ctx).
		Model(&model.Event{}).
		Where("id = ?", id).
		Update("view_count", gorm.Expr("view_count + 1"))

	if result.Error != nil {
		return result.Error
	}

	return nil
}
