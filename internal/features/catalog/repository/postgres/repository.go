package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"universal-shop-backend/internal/features/catalog/models"
	"universal-shop-backend/internal/features/catalog/repository"
)

type postgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) repository.CatalogRepository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) CreateGame(ctx context.Context, game *models.Game) error {
	query := `
		INSERT INTO games (name, icon_url)
		VALUES ($1, $2)
		RETURNING id, is_active, created_at
	`

	err := r.db.QueryRowContext(ctx, query, game.Name, game.IconURL).
		Scan(&game.ID, &game.IsActive, &game.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create game: %w", err)
	}

	return nil
}

func (r *postgresRepository) CreateApp(ctx context.Context, app *models.App) error {
	query := `
		INSERT INTO apps (name, icon_url)
		VALUES ($1, $2)
		RETURNING id, is_active, created_at
	`

	err := r.db.QueryRowContext(ctx, query, app.Name, app.IconURL).
		Scan(&app.ID, &app.IsActive, &app.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create app: %w", err)
	}

	return nil
}

func (r *postgresRepository) CreateProduct(ctx context.Context, product *models.Product) error {
	query := `
		INSERT INTO products (game_id, app_id, name, description, image_url, price, delivery_data)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, is_active, created_at
	`

	err := r.db.QueryRowContext(ctx, query,
		product.GameID, product.AppID, product.Name, product.Description,
		product.ImageURL, product.Price, product.DeliveryData).
		Scan(&product.ID, &product.IsActive, &product.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}

	return nil
}

func (r *postgresRepository) ListGames(ctx context.Context) ([]*models.Game, error) {
	query := `
		SELECT id, name, icon_url, is_active, created_at
		FROM games
		WHERE is_active = TRUE
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}
	defer rows.Close()

	games := []*models.Game{}
	for rows.Next() {
		var game models.Game
		if err := rows.Scan(&game.ID, &game.Name, &game.IconURL, &game.IsActive, &game.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan game: %w", err)
		}
		games = append(games, &game)
	}

	return games, rows.Err()
}

func (r *postgresRepository) ListApps(ctx context.Context) ([]*models.App, error) {
	query := `
		SELECT id, name, icon_url, is_active, created_at
		FROM apps
		WHERE is_active = TRUE
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list apps: %w", err)
	}
	defer rows.Close()

	apps := []*models.App{}
	for rows.Next() {
		var app models.App
		if err := rows.Scan(&app.ID, &app.Name, &app.IconURL, &app.IsActive, &app.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan app: %w", err)
		}
		apps = append(apps, &app)
	}

	return apps, rows.Err()
}

const productColumns = "id, game_id, app_id, name, description, image_url, price, delivery_data, is_active, created_at"

func (r *postgresRepository) ListProducts(ctx context.Context) ([]*models.Product, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM products
		WHERE is_active = TRUE
		ORDER BY id
	`, productColumns)

	return r.queryProducts(ctx, query)
}

func (r *postgresRepository) ListProductsByGame(ctx context.Context, gameID int64) ([]*models.Product, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM products
		WHERE game_id = $1 AND is_active = TRUE
		ORDER BY id
	`, productColumns)

	return r.queryProducts(ctx, query, gameID)
}

func (r *postgresRepository) ListProductsByApp(ctx context.Context, appID int64) ([]*models.Product, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM products
		WHERE app_id = $1 AND is_active = TRUE
		ORDER BY id
	`, productColumns)

	return r.queryProducts(ctx, query, appID)
}

func (r *postgresRepository) GetActiveProduct(ctx context.Context, id int64) (*models.Product, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM products
		WHERE id = $1 AND is_active = TRUE
	`, productColumns)

	var product models.Product
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&product.ID, &product.GameID, &product.AppID, &product.Name, &product.Description,
		&product.ImageURL, &product.Price, &product.DeliveryData, &product.IsActive, &product.CreatedAt)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, repository.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return &product, nil
}

func (r *postgresRepository) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM products
		WHERE id = $1
	`, productColumns)

	var product models.Product
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&product.ID, &product.GameID, &product.AppID, &product.Name, &product.Description,
		&product.ImageURL, &product.Price, &product.DeliveryData, &product.IsActive, &product.CreatedAt)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, repository.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return &product, nil
}

func (r *postgresRepository) queryProducts(ctx context.Context, query string, args ...interface{}) ([]*models.Product, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := []*models.Product{}
	for rows.Next() {
		var product models.Product
		err := rows.Scan(
			&product.ID, &product.GameID, &product.AppID, &product.Name, &product.Description,
			&product.ImageURL, &product.Price, &product.DeliveryData, &product.IsActive, &product.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, &product)
	}

	return products, rows.Err()
}
