package model

import "time"

type ParticipationStatus string

var (
	ParticipationRegistered ParticipationStatus = "registered"
	ParticipationConfirmed  ParticipationStatus = "confirmed"
	ParticipationAttended   ParticipationStatus = "attended"
	ParticipationCancelled  ParticipationStatus = "cancelled"
	ParticipationNoShow     ParticipationStatus = "no_show"
)

// CountsTowardCapacity reports whether a participation in this status holds a
// slot on the event. Cancellations and no-shows free their slot.
func (s ParticipationStatus) CountsTowardCapacity() bool {
	switch s {
	case ParticipationRegistered, ParticipationConfirmed, ParticipationAttended:
		return true
	}
	return false
}

// Participation is one user's registration on one event. The (user, event)
// pair is unique for the lifetime of the row: cancellation is a status, not a
// deletion, and a cancelled row is never re-activated.
type Participation struct {
	ID      string `gorm:"column:id;primaryKey" json:"id"`
	UserID  string `gorm:"column:user_id;uniqueIndex:uq_participation_user_event" json:"user_id"`
	EventID string `gorm:"column:event_id;uniqueIndex:uq_participation_user_event;index:idx_participation_event_status" json:"event_id"`

	Status ParticipationStatus `gorm:"column:status;index:idx_participation_event_status" json:"status"`

	Notes          string `gorm:"column:notes" json:"notes,omitempty"`
	VolunteerHours *int   `gorm:"column:volunteer_hours" json:"volunteer_hours,omitempty"`

	RegisteredAt    time.Time `gorm:"column:registered_at" json:"registered_at"`
	StatusChangedAt time.Time `gorm:"column:status_changed_at" json:"status_changed_at"`
}

func (m *Participation) TableName() string {
	return "event_participations"
}
