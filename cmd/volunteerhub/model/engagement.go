package model

import "time"

// ContentLike columns are spelled out rather than embedding ContentRef: the
// reference and the user form one unique key, so a user cannot hold two likes
// on the same content even when two toggles race.
type ContentLike struct {
	ID string `gorm:"column:id;primaryKey" json:"id"`

	Kind     ContentKind `gorm:"column:content_kind;uniqueIndex:uq_like_ref_user" json:"content_kind"`
	TargetID string      `gorm:"column:content_id;uniqueIndex:uq_like_ref_user" json:"content_id"`
	UserID   string      `gorm:"column:user_id;uniqueIndex:uq_like_ref_user" json:"user_id"`

	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

func (m *ContentLike) Ref() ContentRef {
	return ContentRef{Kind: m.Kind, ID: m.TargetID}
}

func (m *ContentLike) TableName() string {
	return "content_likes"
}

type ContentView struct {
	ID string `gorm:"column:id;primaryKey" json:"id"`

	Ref ContentRef `gorm:"embedded" json:"ref"`

	UserID    *string   `gorm:"column:user_id" json:"user_id,omitempty"`
	IPAddress string    `gorm:"column:ip_address" json:"ip_address"`
	ViewedAt  time.Time `gorm:"column:viewed_at;index" json:"viewed_at"`
}

func (m *ContentView) TableName() string {
	return "content_views"
}
