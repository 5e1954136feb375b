package repository

import (
	"context"
	"errors"

	"universal-shop-backend/internal/features/order/models"
)

var ErrOrderNotFound = errors.New("order not found")

type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error

	// GetByID returns ErrOrderNotFound for unknown ids.
	GetByID(ctx context.Context, id int64) (*models.Order, error)

	// TransitionStatus moves the order from one status to another in a
	// single statement and reports whether a row actually changed. The
	// WHERE clause on the current status is the per-order serialization
	// boundary: concurrent identical transitions collapse into one.
	TransitionStatus(ctx context.Context, id int64, from, to string) (bool, error)

	// Complete stamps completed_at together with the status change.
	Complete(ctx context.Context, id int64) (bool, error)

	List(ctx context.Context) ([]*models.Order, error)
}
