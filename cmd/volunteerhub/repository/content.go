package repository

import (
	"context"
	"errors"
	"time"

	"volunteerhub-backend/cmd/volunteerhub/model"

	"gorm.io/gorm"
)

var (
	ErrNewsNotFound      = errors.New("news not found")
	ErrKnowledgeNotFound = errors.New("knowledge base material not found")
)

type ContentRepo struct {
	db *gorm.DB
}

func NewContentRepo(db *gorm.DB) *ContentRepo {
	return &ContentRepo{
		db: db,
	}
}

func (r *ContentRepo) CreateNews(ctx context.Context, news *model.News) error {

	result := r.db.
		WithContext(ctx).
		Create(news)

	if result.Error != nil {
		return result.Error
	}

	return nil
}

// GetNewsBySlug returns a published news item.
func (r *ContentRepo) GetNewsBySlug(ctx context.Context, slug string) (*model.News, error) {

	var news model.News

	result := r.db.
		WithContext(ctx).
		Where("slug = ? AND status = ?", slug, model.NewsPublished).
		First(&news)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNewsNotFound
		}
		return nil, result.Error
	}

	return &news, nil
}

func (r *ContentRepo) ListNews(ctx context.Context, city string, limit int) ([]model.News, error) {

	query := r.db.
		WithContext(ctx).
		Model(&model.News{}).
		Where("status = ? AND published_at <= ?", model.NewsPublished, time.Now())

	if city != "" {
		query = query.Where("city = ?", city)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var news []model.News

	result := query.
		Order("published_at DESC").
		Find(&news)

	if result.Error != nil {
		return nil, result.Error
	}

	return news, nil
}

// PopularNews returns the most viewed published news.
func (r *ContentRepo) PopularNews(ctx context.Context, limit int) ([]model.News, error) {

	if limit < 1 {
		limit = 10
	}

	var news []model.News

	result := r.db.
		WithContext(ctx).
		Model(&model.News{}).
		Where("status = ? AND published_at <= ?", model.NewsPublished, time.Now()).
		Order("view_count DESC").
		Limit(limit).
		Find(&news)

	if result.Error != nil {
		return nil, result.Error
	}

	return news, nil
}

// FeaturedNews returns editor-picked published news, newest first.
func (r *ContentRepo) FeaturedNews(ctx context.Context, limit int) ([]model.News, error) {

	if limit < 1 {
		limit = 10
	}

	var news []model.News

	result := r.db.
		WithContext(ctx).
		Model(&model.News{}).
		Where("status = ? AND published_at <= ? AND is_featured = ?", model.NewsPublished, time.Now(), true).
		Order("published_at DESC").
		Limit(limit).
		Find(&news)

	if result.Error != nil {
		return nil, result.Error
	}

	return news, nil
}

func (r *ContentRepo) CreateKnowledge(ctx context.Context, material *model.KnowledgeBase) error {

	result := r.db.
		WithContext(ctx).
		Create(material)

	if result.Error != nil {
		return result.Error
	}

	return nil
}

// GetKnowledge returns a public knowledge base material.
func (r *ContentRepo) GetKnowledge(ctx context.Context, id string) (*model.KnowledgeBase, error) {

	var material model.KnowledgeBase

	result := r.db.
		WithContext(ctx).
		Where("id = ? AND is_public = ?", id, true).
		First(&material)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrKnowledgeNotFound
		}
		return nil, result.Error
	}

	return &material, nil
}

func (r *ContentRepo) ListKnowledge(ctx context.Context, category model.KnowledgeCategory, difficulty string) ([]model.KnowledgeBase, error) {

	query := r.db.
		WithContext(ctx).
		Model(&model.KnowledgeBase{}).
		Where("is_public = ?", true)

	if category != "" {
		query = query.Where("category = ?", category)
	}
	if difficulty != "" {
		query = query.Where("difficulty_level = ?", difficulty)
	}

	var materials []model.KnowledgeBase

	result := query.
		Order("created_at DESC").
		Find(&materials)

	if result.Error != nil {
		return nil, result.Error
	}

	return materials, nil
}

// PopularKnowledge returns the most viewed public materials.
func (r *ContentRepo) PopularKnowledge(ctx context.Context, limit int) ([]model.KnowledgeBase, error) {

	if limit < 1 {
		limit = 10
	}

	var materials []model.KnowledgeBase

	result := r.db.
		WithContext(ctx).
		Model(&model.KnowledgeBase{}).
		Where("is_public = ?", true).
		Order("view_count DESC").
		Limit(limit).
		Find(&materials)

	if result.Error != nil {
		return nil, result.Error
	}

	return materials, nil
}

func (r *ContentRepo) IncrementDownloadCount(ctx context.Context, id string) error {

	result := r.db.
		WithContext(ctx).
		Model(&model.KnowledgeBase{}).
		Where("id = ?", id).
		Update("download_count", gorm.Expr("download_count + 1"))

	if result.Error != nil {
		return result.Error
	}

	return nil
}
