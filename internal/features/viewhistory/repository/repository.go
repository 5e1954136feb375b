package repository

import (
	"context"

	catalogmodels "universal-shop-backend/internal/features/catalog/models"
)

type ViewHistoryRepository interface {
	// Record replaces any previous view of the product by this user with a
	// fresh timestamp.
	Record(ctx context.Context, userID, productID int64) error

	// Delete removes the view row if present and reports how many rows were
	// removed (0 or 1 given the uniqueness constraint).
	Delete(ctx context.Context, userID, productID int64) (int64, error)

	// LastViewedProduct returns the product from the user's most recent view,
	// or nil when the history is empty.
	LastViewedProduct(ctx context.Context, userID int64) (*catalogmodels.Product, error)
}
