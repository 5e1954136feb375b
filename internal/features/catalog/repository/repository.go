package repository

import (
	"context"
	"errors"

	"universal-shop-backend/internal/features/catalog/models"
)

var ErrProductNotFound = errors.New("product not found")

type CatalogRepository interface {
	CreateGame(ctx context.Context, game *models.Game) error
	CreateApp(ctx context.Context, app *models.App) error
	CreateProduct(ctx context.Context, product *models.Product) error

	// List operations return active records only.
	ListGames(ctx context.Context) ([]*models.Game, error)
	ListApps(ctx context.Context) ([]*models.App, error)
	ListProducts(ctx context.Context) ([]*models.Product, error)
	ListProductsByGame(ctx context.Context, gameID int64) ([]*models.Product, error)
	ListProductsByApp(ctx context.Context, appID int64) ([]*models.Product, error)

	// GetActiveProduct returns ErrProductNotFound for unknown or inactive ids.
	GetActiveProduct(ctx context.Context, id int64) (*models.Product, error)

	// GetProduct looks up a product regardless of its active flag. Used for
	// delivering already-sold products that were deactivated afterwards.
	GetProduct(ctx context.Context, id int64) (*models.Product, error)
}
