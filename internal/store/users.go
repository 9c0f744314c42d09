package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"office-log-backend/internal/model"
)

// GetUserByUsername looks up a login by exact username. Comparisons are
// case-sensitive: "Admin" and "admin" are different accounts.
func (s *gormStore) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if user.Username != username {
		// Guard against collations that fold case on equality.
		return nil, ErrNotFound
	}
	return &user, nil
}

func (s *gormStore) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	var user model.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *gormStore) CountUsers(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&model.User{}).Count(&n).Error
	return n, err
}

func (s *gormStore) CreateUser(ctx context.Context, user *model.User) error {
	return s.db.WithContext(ctx).Create(user).Error
}

func (s *gormStore) ListOffices(ctx context.Context) ([]model.Office, error) {
	var rows []model.Office
	err := s.db.WithContext(ctx).Order("name ASC").Find(&rows).Error
	return rows, err
}

func (s *gormStore) ListEmployees(ctx context.Context) ([]model.Employee, error) {
	var rows []model.Employee
	err := s.db.WithContext(ctx).Where("is_active = ?", true).Order("full_name ASC").Find(&rows).Error
	return rows, err
}
