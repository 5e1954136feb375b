package service

import (
	"context"

	apperrors "universal-shop-backend/internal/common/errors"
	catalogmodels "universal-shop-backend/internal/features/catalog/models"
	catalogservice "universal-shop-backend/internal/features/catalog/service"
	"universal-shop-backend/internal/features/viewhistory/repository"
)

type ViewHistoryService interface {
	RecordView(ctx context.Context, userID, productID int64) error
	DeleteView(ctx context.Context, userID, productID int64) (int64, error)
	GetLastViewed(ctx context.Context, userID int64) (*catalogmodels.Product, error)
}

type viewHistoryService struct {
	repo    repository.ViewHistoryRepository
	catalog catalogservice.CatalogService
}

func NewViewHistoryService(repo repository.ViewHistoryRepository, catalog catalogservice.CatalogService) ViewHistoryService {
	return &viewHistoryService{
		repo:    repo,
		catalog: catalog,
	}
}

// RecordView stores the view after checking the product exists: the foreign
// key would reject an unknown product anyway, so the caller gets a clean
// NotFound instead of a constraint violation.
func (s *viewHistoryService) RecordView(ctx context.Context, userID, productID int64) error {
	if _, err := s.catalog.GetActiveProduct(ctx, productID); err != nil {
		return err
	}

	if err := s.repo.Record(ctx, userID, productID); err != nil {
		return apperrors.NewDatabaseError("record view", err)
	}

	return nil
}

func (s *viewHistoryService) DeleteView(ctx context.Context, userID, productID int64) (int64, error) {
	deleted, err := s.repo.Delete(ctx, userID, productID)
	if err != nil {
		return 0, apperrors.NewDatabaseError("delete view", err)
	}

	return deleted, nil
}

func (s *viewHistoryService) GetLastViewed(ctx context.Context, userID int64) (*catalogmodels.Product, error) {
	product, err := s.repo.LastViewedProduct(ctx, userID)
	if err != nil {
		return nil, apperrors.NewDatabaseError("get last viewed", err)
	}

	return product, nil
}
