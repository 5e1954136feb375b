package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"universal-shop-backend/internal/features/user/models"
	"universal-shop-backend/internal/features/user/repository"
)

type fakeUserRepo struct {
	users map[int64]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*models.User)}
}

func (r *fakeUserRepo) Upsert(ctx context.Context, user *models.User) error {
	stored := *user
	if existing, ok := r.users[user.ID]; ok {
		stored.CreatedAt = existing.CreatedAt
	}
	r.users[user.ID] = &stored
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func adminOnly(ids ...int64) AdminChecker {
	return func(telegramID int64) bool {
		for _, id := range ids {
			if id == telegramID {
				return true
			}
		}
		return false
	}
}

func TestGetOrCreateUser(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo, adminOnly(1))

	user, err := svc.GetOrCreateUser(context.Background(), 100, "tester", "Test", "User")
	require.NoError(t, err)

	assert.Equal(t, int64(100), user.ID)
	assert.Equal(t, "tester", user.Username)
	assert.False(t, user.IsAdmin)
}

func TestGetOrCreateUserRefreshesProfile(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo, adminOnly())

	_, err := svc.GetOrCreateUser(context.Background(), 100, "old", "Old", "Name")
	require.NoError(t, err)

	user, err := svc.GetOrCreateUser(context.Background(), 100, "new", "New", "Name")
	require.NoError(t, err)

	assert.Equal(t, "new", user.Username)
	assert.Equal(t, "New", user.FirstName)
	assert.Len(t, repo.users, 1)
}

func TestGetOrCreateUserAdminFlag(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo, adminOnly(1))

	admin, err := svc.GetOrCreateUser(context.Background(), 1, "boss", "Boss", "")
	require.NoError(t, err)
	assert.True(t, admin.IsAdmin)

	// Admin status tracks configuration, not history: the flag is
	// re-derived on every upsert.
	demoted := NewUserService(repo, adminOnly())
	user, err := demoted.GetOrCreateUser(context.Background(), 1, "boss", "Boss", "")
	require.NoError(t, err)
	assert.False(t, user.IsAdmin)
}

func TestGetUserUnknown(t *testing.T) {
	svc := NewUserService(newFakeUserRepo(), adminOnly())

	_, err := svc.GetUser(context.Background(), 404)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Test User", (&models.User{FirstName: "Test", LastName: "User"}).DisplayName())
	assert.Equal(t, "Test", (&models.User{FirstName: "Test"}).DisplayName())
}
