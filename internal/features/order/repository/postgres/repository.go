package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"universal-shop-backend/internal/features/order/models"
	"universal-shop-backend/internal/features/order/repository"
)

type postgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) repository.OrderRepository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) Create(ctx context.Context, order *models.Order) error {
	query := `
		INSERT INTO orders (user_id, product_id, payment_method, amount, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := r.db.QueryRowContext(ctx, query,
		order.UserID, order.ProductID, order.PaymentMethod, order.Amount, order.Status).
		Scan(&order.ID, &order.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*models.Order, error) {
	query := `
		SELECT id, user_id, product_id, payment_method, amount, status, created_at, completed_at
		FROM orders
		WHERE id = $1
	`

	var order models.Order
	var completedAt sql.NullTime
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&order.ID, &order.UserID, &order.ProductID, &order.PaymentMethod,
		&order.Amount, &order.Status, &order.CreatedAt, &completedAt)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, repository.ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	if completedAt.Valid {
		order.CompletedAt = &completedAt.Time
	}

	return &order, nil
}

func (r *postgresRepository) TransitionStatus(ctx context.Context, id int64, from, to string) (bool, error) {
	query := "UPDATE orders SET status = $3 WHERE id = $1 AND status = $2"

	result, err := r.db.ExecContext(ctx, query, id, from, to)
	if err != nil {
		return false, fmt.Errorf("failed to transition order status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return affected > 0, nil
}

func (r *postgresRepository) Complete(ctx context.Context, id int64) (bool, error) {
	// Completion is allowed from pending or paid, never from a terminal state.
	query := `
		UPDATE orders
		SET status = $2, completed_at = NOW()
		WHERE id = $1 AND status IN ($3, $4)
	`

	result, err := r.db.ExecContext(ctx, query, id,
		models.StatusCompleted, models.StatusPending, models.StatusPaid)
	if err != nil {
		return false, fmt.Errorf("failed to complete order: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return affected > 0, nil
}

func (r *postgresRepository) List(ctx context.Context) ([]*models.Order, error) {
	query := `
		SELECT id, user_id, product_id, payment_method, amount, status, created_at, completed_at
		FROM orders
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	orders := []*models.Order{}
	for rows.Next() {
		var order models.Order
		var completedAt sql.NullTime
		err := rows.Scan(
			&order.ID, &order.UserID, &order.ProductID, &order.PaymentMethod,
			&order.Amount, &order.Status, &order.CreatedAt, &completedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		if completedAt.Valid {
			order.CompletedAt = &completedAt.Time
		}
		orders = append(orders, &order)
	}

	return orders, rows.Err()
}
