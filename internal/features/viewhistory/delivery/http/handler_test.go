package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	apperrors "universal-shop-backend/internal/common/errors"
	"universal-shop-backend/internal/common/middleware"
	catalogmodels "universal-shop-backend/internal/features/catalog/models"
	usermodels "universal-shop-backend/internal/features/user/models"
)

type fakeViewService struct {
	recorded [][2]int64
	deleted  [][2]int64
	known    map[int64]bool
}

func (s *fakeViewService) RecordView(ctx context.Context, userID, productID int64) error {
	if !s.known[productID] {
		return apperrors.NewProductNotFoundError(productID)
	}
	s.recorded = append(s.recorded, [2]int64{userID, productID})
	return nil
}

func (s *fakeViewService) DeleteView(ctx context.Context, userID, productID int64) (int64, error) {
	s.deleted = append(s.deleted, [2]int64{userID, productID})
	if !s.known[productID] {
		return 0, nil
	}
	return 1, nil
}

func (s *fakeViewService) GetLastViewed(ctx context.Context, userID int64) (*catalogmodels.Product, error) {
	return nil, nil
}

func setupViewRouter(authenticated bool) (*gin.Engine, *fakeViewService) {
	gin.SetMode(gin.TestMode)

	svc := &fakeViewService{known: map[int64]bool{10: true}}
	handler := NewViewHistoryHandler(svc)

	router := gin.New()
	router.Use(middleware.ErrorHandler())
	if authenticated {
		router.Use(func(c *gin.Context) {
			c.Set("app_user", &usermodels.User{ID: 1})
		})
	}
	handler.RegisterRoutes(router.Group("/api"))
	return router, svc
}

func doRequest(router *gin.Engine, method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRecordViewEndpoint(t *testing.T) {
	router, svc := setupViewRouter(true)

	w := doRequest(router, http.MethodPost, "/api/products/10/view")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true}`, w.Body.String())
	assert.Equal(t, [][2]int64{{1, 10}}, svc.recorded)
}

func TestRecordViewUnknownProductEndpoint(t *testing.T) {
	router, svc := setupViewRouter(true)

	w := doRequest(router, http.MethodPost, "/api/products/404/view")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, svc.recorded)
}

func TestRecordViewBadID(t *testing.T) {
	router, _ := setupViewRouter(true)

	w := doRequest(router, http.MethodPost, "/api/products/abc/view")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRecordViewUnauthenticated(t *testing.T) {
	router, svc := setupViewRouter(false)

	w := doRequest(router, http.MethodPost, "/api/products/10/view")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, svc.recorded)
}

func TestDeleteViewEndpoint(t *testing.T) {
	router, _ := setupViewRouter(true)

	w := doRequest(router, http.MethodDelete, "/api/view-history/10")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"deleted_count":1}`, w.Body.String())
}

func TestDeleteViewMissingEntry(t *testing.T) {
	router, _ := setupViewRouter(true)

	// Deleting an absent entry succeeds with a zero count.
	w := doRequest(router, http.MethodDelete, "/api/view-history/404")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"deleted_count":0}`, w.Body.String())
}
