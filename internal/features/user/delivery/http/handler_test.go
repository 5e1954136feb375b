package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	initdata "github.com/telegram-mini-apps/init-data-golang"

	"universal-shop-backend/internal/common/config"
	"universal-shop-backend/internal/features/user/models"
	"universal-shop-backend/internal/features/user/service"
)

type fakeUserService struct {
	users map[int64]*models.User
}

func (s *fakeUserService) GetUser(ctx context.Context, id int64) (*models.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, service.ErrUserNotFound
	}
	return user, nil
}

func (s *fakeUserService) GetOrCreateUser(ctx context.Context, telegramID int64, username, firstName, lastName string) (*models.User, error) {
	return s.users[telegramID], nil
}

func setupUserRouter(requesterID int64) *gin.Engine {
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{}
	cfg.Telegram.AdminIDs = []int64{1}

	svc := &fakeUserService{users: map[int64]*models.User{
		100: {ID: 100, Username: "tester", FirstName: "Test"},
	}}
	handler := NewUserHandler(svc, cfg)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("user", initdata.User{ID: requesterID})
		c.Set("app_user", &models.User{ID: requesterID, IsAdmin: requesterID == 1})
	})
	handler.RegisterRoutes(router.Group("/api"))
	return router
}

func getRequest(router *gin.Engine, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestGetMe(t *testing.T) {
	router := setupUserRouter(100)

	w := getRequest(router, "/api/users/me")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"id":100`)
}

func TestGetUserByID(t *testing.T) {
	router := setupUserRouter(1)

	w := getRequest(router, "/api/admin/users/100")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"username":"tester"`)
}

func TestGetUserByIDUnknown(t *testing.T) {
	router := setupUserRouter(1)

	w := getRequest(router, "/api/admin/users/404")

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetUserByIDRequiresAdmin(t *testing.T) {
	router := setupUserRouter(100)

	w := getRequest(router, "/api/admin/users/100")

	assert.Equal(t, http.StatusForbidden, w.Code)
}
