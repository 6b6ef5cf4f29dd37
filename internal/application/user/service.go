package user

import (
	"context"
	"errors"
	"fmt"

	"nearvisit-backend/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrUserNotFound = errors.New("User not found")

// Service reads user accounts.
type Service struct {
	DB *gorm.DB
}

// GetProfile returns the user by id. PasswordHash is loaded but never serialized.
func (s *Service) GetProfile(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var u domain.User
	if err := s.DB.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}
