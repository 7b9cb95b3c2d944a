package model

import (
	"fmt"
	"time"
)

// ContentKind tags which concrete entity a comment, like, or view is attached
// to. Together with the target id it forms a typed reference, one variant per
// attachable entity, in place of a free-form type/id pair.
type ContentKind string

var (
	KindNews      ContentKind = "news"
	KindEvent     ContentKind = "event"
	KindKnowledge ContentKind = "knowledge"
)

type ContentRef struct {
	Kind ContentKind `gorm:"column:content_kind" json:"content_kind"`
	ID   string      `gorm:"column:content_id" json:"content_id"`
}

// NewContentRef builds a reference, rejecting unknown kinds so an invalid tag
// can never reach storage.
func NewContentRef(kind ContentKind, id string) (ContentRef, error) {
	switch kind {
	case KindNews, KindEvent, KindKnowledge:
		return ContentRef{Kind: kind, ID: id}, nil
	}
	return ContentRef{}, fmt.Errorf("unknown content kind %q", kind)
}

type NewsStatus string

var (
	NewsDraft     NewsStatus = "draft"
	NewsPending   NewsStatus = "pending"
	NewsPublished NewsStatus = "published"
	NewsArchived  NewsStatus = "archived"
)

type News struct {
	ID      string `gorm:"column:id;primaryKey" json:"id"`
	Title   string `gorm:"column:title" json:"title"`
	Content string `gorm:"column:content" json:"content"`
	Excerpt string `gorm:"column:excerpt" json:"excerpt,omitempty"`

	AuthorID string  `gorm:"column:author_id" json:"author_id"`
	NKOID    *string `gorm:"column:nko_id" json:"nko_id,omitempty"`

	Status        NewsStatus `gorm:"column:status;index:idx_news_status_published" json:"status"`
	IsFeatured    bool       `gorm:"column:is_featured" json:"is_featured"`
	AllowComments bool       `gorm:"column:allow_comments" json:"allow_comments"`

	City string `gorm:"column:city" json:"city"`
	Slug string `gorm:"column:slug;uniqueIndex" json:"slug"`

	ViewCount int `gorm:"column:view_count" json:"view_count"`

	CreatedAt   time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at" json:"updated_at"`
	PublishedAt *time.Time `gorm:"column:published_at;index:idx_news_status_published" json:"published_at,omitempty"`
}

func (m *News) TableName() string {
	return "news"
}

func (m *News) IsPublished(now time.Time) bool {
	return m.Status == NewsPublished && m.PublishedAt != nil && !m.PublishedAt.After(now)
}

type KnowledgeCategory string

var (
	KnowledgeGuide        KnowledgeCategory = "guide"
	KnowledgeLaw          KnowledgeCategory = "law"
	KnowledgeFinance      KnowledgeCategory = "finance"
	KnowledgeVolunteer    KnowledgeCategory = "volunteer"
	KnowledgeReporting    KnowledgeCategory = "reporting"
	KnowledgeSuccessStory KnowledgeCategory = "success_story"
	KnowledgeMethodology  KnowledgeCategory = "methodology"
)

type KnowledgeBase struct {
	ID      string `gorm:"column:id;primaryKey" json:"id"`
	Title   string `gorm:"column:title" json:"title"`
	Content string `gorm:"column:content" json:"content"`
	Excerpt string `gorm:"column:excerpt" json:"excerpt,omitempty"`

	Category        KnowledgeCategory `gorm:"column:category" json:"category"`
	IsPublic        bool              `gorm:"column:is_public" json:"is_public"`
	DifficultyLevel string            `gorm:"column:difficulty_level" json:"difficulty_level"`

	AuthorID string `gorm:"column:author_id" json:"author_id"`

	ViewCount     int `gorm:"column:view_count" json:"view_count"`
	DownloadCount int `gorm:"column:download_count" json:"download_count"`

	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (m *KnowledgeBase) TableName() string {
	return "knowledge_base"
}

type Comment struct {
	ID string `gorm:"column:id;primaryKey" json:"id"`

	Ref ContentRef `gorm:"embedded" json:"ref"`

	AuthorID string  `gorm:"column:author_id" json:"author_id"`
	Text     string  `gorm:"column:text" json:"text"`
	ParentID *string `gorm:"column:parent_id" json:"parent_id,omitempty"`

	IsApproved bool `gorm:"column:is_approved" json:"is_approved"`
	IsDeleted  bool `gorm:"column:is_deleted" json:"is_deleted"`

	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (m *Comment) TableName() string {
	return "comments"
}
