package store

import (
	"context"
	"errors"

	"github.com/eventease/eventease/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserStore struct {
	*DB
}

func NewUserStore(db *DB) *UserStore {
	return &UserStore{DB: db}
}

func (s *UserStore) CreateUser(ctx context.Context, user *models.User) error {
	db, cancel := s.handle(ctx)
	defer cancel()

	if err := db.Create(user).Error; err != nil {
		if isUniqueViolation(err) {
			return models.ErrDuplicateAccount
		}
		return translateErr(err)
	}
	return nil
}

func (s *UserStore) UserByEmail(ctx context.Context, email string) (models.User, error) {
	db, cancel := s.handle(ctx)
	defer cancel()

	var user models.User
	err := db.Preload("Role").Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, models.ErrUserNotFound
		}
		return models.User{}, translateErr(err)
	}
	return user, nil
}

func (s *UserStore) UserByID(ctx context.Context, id uuid.UUID) (models.User, error) {
	db, cancel := s.handle(ctx)
	defer cancel()

	var user models.User
	err := db.Preload("Role").Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, models.ErrUserNotFound
		}
		return models.User{}, translateErr(err)
	}
	return user, nil
}

func (s *UserStore) RoleByName(ctx context.Context, name string) (models.Role, error) {
	db, cancel := s.handle(ctx)
	defer cancel()

	var role models.Role
	err := db.Where("name = ?", name).First(&role).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Role{}, models.ErrValidation
		}
		return models.Role{}, translateErr(err)
	}
	return role, nil
}
