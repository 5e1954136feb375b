package service

import (
	"context"
	"errors"
	"time"

	"universal-shop-backend/internal/features/user/models"
	"universal-shop-backend/internal/features/user/repository"
)

var ErrUserNotFound = errors.New("user not found")

type UserService interface {
	GetUser(ctx context.Context, id int64) (*models.User, error)
	GetOrCreateUser(ctx context.Context, telegramID int64, username, firstName, lastName string) (*models.User, error)
}

// AdminChecker decides whether a Telegram ID has admin rights. Backed by the
// ADMIN_IDS configuration.
type AdminChecker func(telegramID int64) bool

type userService struct {
	repo    repository.UserRepository
	isAdmin AdminChecker
}

func NewUserService(repo repository.UserRepository, isAdmin AdminChecker) UserService {
	return &userService{
		repo:    repo,
		isAdmin: isAdmin,
	}
}

func (s *userService) GetUser(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrUserNotFound
	}

	return user, nil
}

// GetOrCreateUser upserts the Telegram profile. The admin flag is derived
// from configuration on every call, so demoting an admin only requires a
// config change.
func (s *userService) GetOrCreateUser(ctx context.Context, telegramID int64, username, firstName, lastName string) (*models.User, error) {
	user := &models.User{
		ID:        telegramID,
		Username:  username,
		FirstName: firstName,
		LastName:  lastName,
		IsAdmin:   s.isAdmin(telegramID),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := s.repo.Upsert(ctx, user); err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, telegramID)
}
