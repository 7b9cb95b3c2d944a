package repository

import (
	"context"
	"errors"

	"volunteerhub-backend/cmd/volunteerhub/model"

	"gorm.io/gorm"
)

type NKORepo struct {
	db *gorm.DB
}

func NewNKORepo(db *gorm.DB) *NKORepo {
	return &NKORepo{
		db: db,
	}
}

var ErrNKONotFound = errors.New("nko not found")

func (r *NKORepo) CreateNKO(ctx context.Context, nko *model.NKO) error {

	result := r.db.
		WithContext(ctx).
		Create(nko)

	if result.Error != nil {
		return result.Error
	}

	return nil
}

func (r *NKORepo) GetNKO(ctx context.Context, id string) (*model.NKO, error) {

	var nko model.NKO

	result := r.db.
		WithContext(ctx).
		First(&nko, "id = ?", id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNKONotFound
		}
		return nil, result.Error
	}

	return &nko, nil
}

// ListNKOs returns active approved organizations, optionally narrowed by city
// or category.
func (r *NKORepo) ListNKOs(ctx context.Context, city string, category model.NKOCategory) ([]model.NKO, error) {

	query := r.db.
		WithContext(ctx).
		Model(&model.NKO{}).
		Where("status = ? AND is_active = ?", model.NKOApproved, true)

	if city != "" {
		query = query.Where("city = ?", city)
	}
	if category != "" {
		query = query.Where("category = ?", category)
	}

	var nkos []model.NKO

	result := query.
		Order("name ASC").
		Find(&nkos)

	if result.Error != nil {
		return nil, result.Error
	}

	return nkos, nil
}

func (r *NKORepo) CreateMembership(ctx context.Context, membership *model.NKOMembership) error {

	result := r.db.
		WithContext(ctx).
		Create(membership)

	if result.Error != nil {
		return result.Error
	}

	return nil
}

func (r *NKORepo) GetMembership(ctx context.Context, userID, nkoID string) (*model.NKOMembership, error) {

	var membership model.NKOMembership

	result := r.db.
		WithContext(ctx).
		Where("user_id = ? AND nko_id = ?", userID, nkoID).
		First(&membership)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	return &membership, nil
}

func (r *NKORepo) SetMembershipStatus(ctx context.Context, userID, nkoID string, status model.MembershipStatus) error {

	result := r.db.
		WithContext(ctx).
		Model(&model.NKOMembership{}).
		Where("user_id = ? AND nko_id = ?", userID, nkoID).
		Update("status", status)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *NKORepo) ListMemberships(ctx context.Context, nkoID string) ([]model.NKOMembership, error) {

	var memberships []model.NKOMembership

	result := r.db.
		WithContext(ctx).
		Where("nko_id = ?", nkoID).
		Order("joined_at ASC").
		Find(&memberships)

	if result.Error != nil {
		return nil, result.Error
	}

	return memberships, nil
}
