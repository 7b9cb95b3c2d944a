package model

import (
	"time"

	"gorm.io/datatypes"
)

type NKOStatus string

var (
	NKODraft    NKOStatus = "draft"
	NKOPending  NKOStatus = "pending"
	NKOApproved NKOStatus = "approved"
	NKORejected NKOStatus = "rejected"
)

type NKOCategory string

var (
	CategoryEcology   NKOCategory = "ecology"
	CategoryAnimals   NKOCategory = "animals"
	CategoryChildren  NKOCategory = "children"
	CategoryElderly   NKOCategory = "elderly"
	CategorySport     NKOCategory = "sport"
	CategoryCulture   NKOCategory = "culture"
	CategoryEducation NKOCategory = "education"
	CategoryHealth    NKOCategory = "health"
)

// NKO is a registered non-profit organization. SocialLinks holds a flat
// name-to-url map, e.g. {"vk": "...", "tg": "..."}.
type NKO struct {
	ID          string      `gorm:"column:id;primaryKey" json:"id"`
	Name        string      `gorm:"column:name" json:"name"`
	Description string      `gorm:"column:description" json:"description"`
	Mission     string      `gorm:"column:mission" json:"mission,omitempty"`
	Category    NKOCategory `gorm:"column:category" json:"category"`

	Email       string         `gorm:"column:email" json:"email"`
	Phone       string         `gorm:"column:phone" json:"phone,omitempty"`
	Website     string         `gorm:"column:website" json:"website,omitempty"`
	SocialLinks datatypes.JSON `gorm:"column:social_links" json:"social_links,omitempty"`

	City    string `gorm:"column:city" json:"city"`
	Address string `gorm:"column:address" json:"address,omitempty"`

	OwnerID  string    `gorm:"column:owner_id" json:"owner_id"`
	Status   NKOStatus `gorm:"column:status" json:"status"`
	IsActive bool      `gorm:"column:is_active" json:"is_active"`

	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (m *NKO) TableName() string {
	return "nkos"
}

type MembershipRole string

var (
	MemberRoleMember      MembershipRole = "member"
	MemberRoleVolunteer   MembershipRole = "volunteer"
	MemberRoleCoordinator MembershipRole = "coordinator"
	MemberRoleModerator   MembershipRole = "moderator"
	MemberRoleAdmin       MembershipRole = "admin"
)

type MembershipStatus string

var (
	MembershipPending  MembershipStatus = "pending"
	MembershipApproved MembershipStatus = "approved"
	MembershipRejected MembershipStatus = "rejected"
	MembershipBanned   MembershipStatus = "banned"
)

type NKOMembership struct {
	ID     string `gorm:"column:id;primaryKey" json:"id"`
	UserID string `gorm:"column:user_id;uniqueIndex:uq_membership_user_nko" json:"user_id"`
	NKOID  string `gorm:"column:nko_id;uniqueIndex:uq_membership_user_nko" json:"nko_id"`

	Role   MembershipRole   `gorm:"column:role" json:"role"`
	Status MembershipStatus `gorm:"column:status" json:"status"`

	Responsibilities string `gorm:"column:responsibilities" json:"responsibilities,omitempty"`
	Skills           string `gorm:"column:skills" json:"skills,omitempty"`

	JoinedAt time.Time `gorm:"column:joined_at" json:"joined_at"`
}

func (m *NKOMembership) TableName() string {
	return "nko_memberships"
}
