package model

import "time"

type UserRole string

var (
	RoleVolunteer            UserRole = "volunteer"
	RoleNKORepresentative    UserRole = "nko_representative"
	RoleCorporateVolunteer   UserRole = "corporate_volunteer"
	RoleCorporateCoordinator UserRole = "corporate_coordinator"
	RoleModerator            UserRole = "moderator"
	RoleAdmin                UserRole = "admin"
)

type User struct {
	ID           string   `gorm:"column:id;primaryKey" json:"id"`
	Username     string   `gorm:"column:username;uniqueIndex" json:"username"`
	Email        string   `gorm:"column:email;uniqueIndex" json:"email"`
	PasswordHash string   `gorm:"column:password_hash" json:"-"`
	FirstName    string   `gorm:"column:first_name" json:"first_name,omitempty"`
	LastName     string   `gorm:"column:last_name" json:"last_name,omitempty"`
	Role         UserRole `gorm:"column:role" json:"role"`

	Phone string `gorm:"column:phone" json:"phone,omitempty"`
	City  string `gorm:"column:city" json:"city,omitempty"`

	Bio       string `gorm:"column:bio" json:"bio,omitempty"`
	Skills    string `gorm:"column:skills" json:"skills,omitempty"`
	Interests string `gorm:"column:interests" json:"interests,omitempty"`

	TotalVolunteerHours int `gorm:"column:total_volunteer_hours" json:"total_volunteer_hours"`
	EventsParticipated  int `gorm:"column:events_participated" json:"events_participated"`

	IsActive bool `gorm:"column:is_active" json:"is_active"`

	CreatedAt    time.Time `gorm:"column:created_at" json:"created_at"`
	LastActivity time.Time `gorm:"column:last_activity" json:"last_activity"`
}

func (m *User) TableName() string {
	return "users"
}

func (m *User) FullName() string {
	if m.FirstName == "" {
		return m.LastName
	}
	if m.LastName == "" {
		return m.FirstName
	}
	return m.FirstName + " " + m.LastName
}

func (m *User) IsModeratorOrAdmin() bool {
	return m.Role == RoleModerator || m.Role == RoleAdmin
}
