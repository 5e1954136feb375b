package postgres

import (
	"context"
	"database/sql"
	"fmt"

	catalogmodels "universal-shop-backend/internal/features/catalog/models"
	"universal-shop-backend/internal/features/viewhistory/repository"
)

type postgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) repository.ViewHistoryRepository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) Record(ctx context.Context, userID, productID int64) error {
	// Repeat views collapse onto the unique (user_id, product_id) row,
	// refreshing the timestamp.
	query := `
		INSERT INTO view_history (user_id, product_id, viewed_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (user_id, product_id) DO UPDATE SET viewed_at = NOW()
	`

	if _, err := r.db.ExecContext(ctx, query, userID, productID); err != nil {
		return fmt.Errorf("failed to record view: %w", err)
	}

	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, userID, productID int64) (int64, error) {
	query := "DELETE FROM view_history WHERE user_id = $1 AND product_id = $2"

	result, err := r.db.ExecContext(ctx, query, userID, productID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete view: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return deleted, nil
}

func (r *postgresRepository) LastViewedProduct(ctx context.Context, userID int64) (*catalogmodels.Product, error) {
	query := `
		SELECT p.id, p.game_id, p.app_id, p.name, p.description, p.image_url,
			p.price, p.delivery_data, p.is_active, p.created_at
		FROM view_history vh
		JOIN products p ON p.id = vh.product_id
		WHERE vh.user_id = $1
		ORDER BY vh.viewed_at DESC
		LIMIT 1
	`

	var product catalogmodels.Product
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&product.ID, &product.GameID, &product.AppID, &product.Name, &product.Description,
		&product.ImageURL, &product.Price, &product.DeliveryData, &product.IsActive, &product.CreatedAt)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get last viewed product: %w", err)
	}

	return &product, nil
}
