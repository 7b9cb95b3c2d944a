package repository

import (
	"context"
	"errors"
	"time"

	"volunteerhub-backend/cmd/volunteerhub/model"

	"gorm.io/gorm"
)

// ErrUserExists reports a signup hitting the unique username or email
// constraint.
var ErrUserExists = errors.New("username or email already taken")

type UserRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{
		db: db,
	}
}

func (r *UserRepo) CreateUser(ctx context.Context, user *model.User) error {

	result := r.db.
		WithContext(ctx).
		Create(user)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return ErrUserExists
		}
		return result.Error
	}

	return nil
}

func (r *UserRepo) GetUser(ctx context.Context, id string) (*model.User, error) {

	var user model.User

	result := r.db.
		WithContext(ctx).
		First(&user, "id = ?", id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrUserNotFound
		}
		return nil, result.Error
	}

	return &user, nil
}

func (r *UserRepo) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {

	var user model.User

	result := r.db.
		WithContext(ctx).
		First(&user, "username = ?", username)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrUserNotFound
		}
		return nil, result.Error
	}

	return &user, nil
}

func (r *UserRepo) TouchActivity(ctx context.Context, id string) error {

	result := r.db.
		WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", id).
		Update("last_activity", time.Now())

	if result.Error != nil {
		return result.Error
	}

	return nil
}
