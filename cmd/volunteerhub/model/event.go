package model

import "time"

type EventStatus string

var (
	EventDraft     EventStatus = "draft"
	EventPending   EventStatus = "pending"
	EventPublished EventStatus = "published"
	EventCancelled EventStatus = "cancelled"
	EventCompleted EventStatus = "completed"
)

type EventType string

var (
	EventTypeVolunteer   EventType = "volunteer"
	EventTypeMeeting     EventType = "meeting"
	EventTypeTraining    EventType = "training"
	EventTypeConference  EventType = "conference"
	EventTypeCelebration EventType = "celebration"
	EventTypeCleanup     EventType = "cleanup"
	EventTypeFundraising EventType = "fundraising"
)

type Event struct {
	ID          string    `gorm:"column:id;primaryKey" json:"id"`
	Title       string    `gorm:"column:title" json:"title"`
	Description string    `gorm:"column:description" json:"description"`
	EventType   EventType `gorm:"column:event_type" json:"event_type"`

	StartDate            time.Time  `gorm:"column:start_date" json:"start_date"`
	EndDate              time.Time  `gorm:"column:end_date" json:"end_date"`
	RegistrationDeadline *time.Time `gorm:"column:registration_deadline" json:"registration_deadline,omitempty"`

	City       string `gorm:"column:city" json:"city"`
	Address    string `gorm:"column:address" json:"address"`
	Online     bool   `gorm:"column:online" json:"online"`
	OnlineLink string `gorm:"column:online_link" json:"online_link,omitempty"`

	NKOID     *string `gorm:"column:nko_id" json:"nko_id,omitempty"`
	CreatedBy string  `gorm:"column:created_by" json:"created_by"`

	MaxParticipants     *int `gorm:"column:max_participants" json:"max_participants,omitempty"`
	CurrentParticipants int  `gorm:"column:current_participants" json:"current_participants"`

	Status     EventStatus `gorm:"column:status" json:"status"`
	IsFeatured bool        `gorm:"column:is_featured" json:"is_featured"`

	Requirements string `gorm:"column:requirements" json:"requirements,omitempty"`
	WhatToBring  string `gorm:"column:what_to_bring" json:"what_to_bring,omitempty"`
	ContactInfo  string `gorm:"column:contact_info" json:"contact_info,omitempty"`

	ViewCount int `gorm:"column:view_count" json:"view_count"`

	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (m *Event) TableName() string {
	return "events"
}

// IsRegistrationOpen reports whether the event accepts new registrations at
// the given instant. Only published events accept registrations, and a set
// deadline closes them once it passes.
func (m *Event) IsRegistrationOpen(now time.Time) bool {
	if m.Status != EventPublished {
		return false
	}
	if m.RegistrationDeadline != nil {
		return now.Before(*m.RegistrationDeadline)
	}
	return true
}

// HasFreeSlots reports whether the participant cap still has room. Events
// without a cap are unbounded.
func (m *Event) HasFreeSlots() bool {
	if m.MaxParticipants == nil {
		return true
	}
	return m.CurrentParticipants < *m.MaxParticipants
}

func (m *Event) IsUpcoming(now time.Time) bool {
	return m.Status == EventPublished && m.StartDate.After(now)
}

func (m *Event) IsOngoing(now time.Time) bool {
	return m.Status == EventPublished && !m.StartDate.After(now) && !m.EndDate.Before(now)
}
