package service

import (
	"context"
	"time"

	"universal-shop-backend/internal/common/cache"
	apperrors "universal-shop-backend/internal/common/errors"
	"universal-shop-backend/internal/common/logger"
	"universal-shop-backend/internal/features/catalog/models"
	"universal-shop-backend/internal/features/catalog/repository"
)

const listCacheTTL = 5 * time.Minute

type CatalogService interface {
	CreateGame(ctx context.Context, input models.GameCreate) (*models.Game, error)
	CreateApp(ctx context.Context, input models.AppCreate) (*models.App, error)
	CreateProduct(ctx context.Context, input models.ProductCreate) (*models.Product, error)

	GetGames(ctx context.Context) ([]*models.Game, error)
	GetApps(ctx context.Context) ([]*models.App, error)
	GetProducts(ctx context.Context) ([]*models.Product, error)
	GetGameProducts(ctx context.Context, gameID int64) ([]*models.Product, error)
	GetAppProducts(ctx context.Context, appID int64) ([]*models.Product, error)
	GetActiveProduct(ctx context.Context, id int64) (*models.Product, error)
	GetProduct(ctx context.Context, id int64) (*models.Product, error)
}

type catalogService struct {
	repo  repository.CatalogRepository
	cache *cache.CacheService
}

// NewCatalogService builds the catalog service. cache may be nil, in which
// case every read goes straight to the repository.
func NewCatalogService(repo repository.CatalogRepository, cacheService *cache.CacheService) CatalogService {
	return &catalogService{
		repo:  repo,
		cache: cacheService,
	}
}

func (s *catalogService) CreateGame(ctx context.Context, input models.GameCreate) (*models.Game, error) {
	game := &models.Game{
		Name:    input.Name,
		IconURL: input.IconURL,
	}

	if err := s.repo.CreateGame(ctx, game); err != nil {
		return nil, apperrors.NewDatabaseError("create game", err)
	}

	s.invalidateCache(ctx)
	return game, nil
}

func (s *catalogService) CreateApp(ctx context.Context, input models.AppCreate) (*models.App, error) {
	app := &models.App{
		Name:    input.Name,
		IconURL: input.IconURL,
	}

	if err := s.repo.CreateApp(ctx, app); err != nil {
		return nil, apperrors.NewDatabaseError("create app", err)
	}

	s.invalidateCache(ctx)
	return app, nil
}

func (s *catalogService) CreateProduct(ctx context.Context, input models.ProductCreate) (*models.Product, error) {
	if input.Price < 0 {
		return nil, apperrors.NewValidationError("price", "must be non-negative")
	}
	if input.GameID != nil && input.AppID != nil {
		return nil, apperrors.NewValidationError("game_id", "product may reference a game or an app, not both")
	}

	product := &models.Product{
		GameID:       input.GameID,
		AppID:        input.AppID,
		Name:         input.Name,
		Description:  input.Description,
		ImageURL:     input.ImageURL,
		Price:        input.Price,
		DeliveryData: input.DeliveryData,
	}

	if err := s.repo.CreateProduct(ctx, product); err != nil {
		return nil, apperrors.NewDatabaseError("create product", err)
	}

	s.invalidateCache(ctx)
	return product, nil
}

func (s *catalogService) GetGames(ctx context.Context) ([]*models.Game, error) {
	var games []*models.Game
	if s.cacheGet(ctx, cache.KeyActiveGames, &games) {
		return games, nil
	}

	games, err := s.repo.ListGames(ctx)
	if err != nil {
		return nil, apperrors.NewDatabaseError("list games", err)
	}

	s.cacheSet(ctx, cache.KeyActiveGames, games)
	return games, nil
}

func (s *catalogService) GetApps(ctx context.Context) ([]*models.App, error) {
	var apps []*models.App
	if s.cacheGet(ctx, cache.KeyActiveApps, &apps) {
		return apps, nil
	}

	apps, err := s.repo.ListApps(ctx)
	if err != nil {
		return nil, apperrors.NewDatabaseError("list apps", err)
	}

	s.cacheSet(ctx, cache.KeyActiveApps, apps)
	return apps, nil
}

func (s *catalogService) GetProducts(ctx context.Context) ([]*models.Product, error) {
	var products []*models.Product
	if s.cacheGet(ctx, cache.KeyActiveProducts, &products) {
		return products, nil
	}

	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, apperrors.NewDatabaseError("list products", err)
	}

	s.cacheSet(ctx, cache.KeyActiveProducts, products)
	return products, nil
}

func (s *catalogService) GetGameProducts(ctx context.Context, gameID int64) ([]*models.Product, error) {
	products, err := s.repo.ListProductsByGame(ctx, gameID)
	if err != nil {
		return nil, apperrors.NewDatabaseError("list game products", err)
	}
	return products, nil
}

func (s *catalogService) GetAppProducts(ctx context.Context, appID int64) ([]*models.Product, error) {
	products, err := s.repo.ListProductsByApp(ctx, appID)
	if err != nil {
		return nil, apperrors.NewDatabaseError("list app products", err)
	}
	return products, nil
}

func (s *catalogService) GetActiveProduct(ctx context.Context, id int64) (*models.Product, error) {
	product, err := s.repo.GetActiveProduct(ctx, id)
	if err != nil {
		if err == repository.ErrProductNotFound {
			return nil, apperrors.NewProductNotFoundError(id)
		}
		return nil, apperrors.NewDatabaseError("get product", err)
	}
	return product, nil
}

func (s *catalogService) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	product, err := s.repo.GetProduct(ctx, id)
	if err != nil {
		if err == repository.ErrProductNotFound {
			return nil, apperrors.NewProductNotFoundError(id)
		}
		return nil, apperrors.NewDatabaseError("get product", err)
	}
	return product, nil
}

// cacheGet reads a cached listing; cache misses and errors fall through to
// the repository.
func (s *catalogService) cacheGet(ctx context.Context, key string, dest interface{}) bool {
	if s.cache == nil {
		return false
	}
	return s.cache.Get(ctx, key, dest) == nil
}

func (s *catalogService) cacheSet(ctx context.Context, key string, value interface{}) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, value, listCacheTTL); err != nil {
		logger.Warn().Err(err).Str("key", key).Msg("Failed to cache catalog listing")
	}
}

func (s *catalogService) invalidateCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateCatalogCache(ctx); err != nil {
		logger.Warn().Err(err).Msg("Failed to invalidate catalog cache")
	}
}
