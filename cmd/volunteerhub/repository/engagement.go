package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"volunteerhub-backend/cmd/volunteerhub/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EngagementRepo records views, likes and comments against typed content
// references. The view-count increment on the target and the view row are
// written in the same transaction so the per-item counter matches the log.
type EngagementRepo struct {
	db *gorm.DB
}

func NewEngagementRepo(db *gorm.DB) *EngagementRepo {
	return &EngagementRepo{
		db: db,
	}
}

func targetModel(kind model.ContentKind) (any, error) {
	switch kind {
	case model.KindNews:
		return &model.News{}, nil
	case model.KindEvent:
		return &model.Event{}, nil
	case model.KindKnowledge:
		return &model.KnowledgeBase{}, nil
	}
	return nil, fmt.Errorf("unknown content kind %q", kind)
}

func (r *EngagementRepo) RecordView(ctx context.Context, ref model.ContentRef, userID *string, ip string) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		target, err := targetModel(ref.Kind)
		if err != nil {
			return err
		}

		result := tx.
			Model(target).
			Where("id = ?", ref.ID).
			Update("view_count", gorm.Expr("view_count + 1"))

		if result.Error != nil {
			return result.Error
		}

		id, err := uuid.NewV7()
		if err != nil {
			return err
		}

		view := model.ContentView{
			ID:        id.String(),
			Ref:       ref,
			UserID:    userID,
			IPAddress: ip,
			ViewedAt:  time.Now(),
		}

		return tx.Create(&view).Error
	})
}

// ToggleLike adds a like for the user, or removes the existing one. It
// reports whether the content is liked after the call.
func (r *EngagementRepo) ToggleLike(ctx context.Context, ref model.ContentRef, userID string) (bool, error) {

	var liked bool

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var existing model.ContentLike

		err := tx.
			Where("content_kind = ? AND content_id = ? AND user_id = ?", ref.Kind, ref.ID, userID).
			First(&existing).
			Error

		if err == nil {
			liked = false
			return tx.Delete(&model.ContentLike{}, "id = ?", existing.ID).Error
		}

		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		id, err := uuid.NewV7()
		if err != nil {
			return err
		}

		like := model.ContentLike{
			ID:        id.String(),
			Kind:      ref.Kind,
			TargetID:  ref.ID,
			UserID:    userID,
			CreatedAt: time.Now(),
		}

		liked = true
		err = tx.Create(&like).Error
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// a concurrent toggle inserted first; the like exists either way
			return nil
		}
		return err
	})

	if err != nil {
		return false, err
	}

	return liked, nil
}

func (r *EngagementRepo) CountLikes(ctx context.Context, ref model.ContentRef) (int64, error) {

	var count int64

	result := r.db.
		WithContext(ctx).
		Model(&model.ContentLike{}).
		Where("content_kind = ? AND content_id = ?", ref.Kind, ref.ID).
		Count(&count)

	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}

func (r *EngagementRepo) CreateComment(ctx context.Context, comment *model.Comment) error {

	result := r.db.
		WithContext(ctx).
		Create(comment)

	if result.Error != nil {
		return result.Error
	}

	return nil
}

// ListComments returns approved, non-deleted comments for the content in
// creation order.
func (r *EngagementRepo) ListComments(ctx context.Context, ref model.ContentRef) ([]model.Comment, error) {

	var comments []model.Comment

	result := r.db.
		WithContext(ctx).
		Model(&model.Comment{}).
		Where("content_kind = ? AND content_id = ? AND is_approved = ? AND is_deleted = ?",
			ref.Kind, ref.ID, true, false).
		Order("created_at ASC").
		Find(&comments)

	if result.Error != nil {
		return nil, result.Error
	}

	return comments, nil
}
