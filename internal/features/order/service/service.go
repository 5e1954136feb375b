package service

import (
	"context"

	apperrors "universal-shop-backend/internal/common/errors"
	"universal-shop-backend/internal/common/logger"
	catalogmodels "universal-shop-backend/internal/features/catalog/models"
	catalogservice "universal-shop-backend/internal/features/catalog/service"
	"universal-shop-backend/internal/features/order/models"
	"universal-shop-backend/internal/features/order/repository"
	usermodels "universal-shop-backend/internal/features/user/models"
	"universal-shop-backend/internal/payments"
)

// Notifier is the outbound notification port used by the order lifecycle.
// All methods are best-effort: implementations log failures and never
// surface them to the caller, so notification transport problems cannot
// fail an order operation.
type Notifier interface {
	NotifyNewOrder(ctx context.Context, order *models.Order, product *catalogmodels.Product, buyer *usermodels.User)
	DeliverPurchase(ctx context.Context, buyerID int64, deliveryData string)
	NotifyRejected(ctx context.Context, buyerID int64, orderID int64)
}

type OrderService interface {
	Create(ctx context.Context, buyer *usermodels.User, input models.OrderCreate) (*models.PaymentDescriptor, error)

	// ConfirmPayment marks a pending order paid. Unknown ids and orders
	// already past pending are silent no-ops.
	ConfirmPayment(ctx context.Context, orderID int64) error

	// Complete finishes an order and delivers the product payload to the
	// buyer. Admin only.
	Complete(ctx context.Context, requester *usermodels.User, orderID int64) error

	// Reject cancels a pending order and tells the buyer. Unknown ids are
	// silent no-ops (operator callbacks may race with other operators).
	Reject(ctx context.Context, orderID int64) error

	ListAll(ctx context.Context) ([]*models.Order, error)
}

type orderService struct {
	repo     repository.OrderRepository
	catalog  catalogservice.CatalogService
	payments *payments.Builder
	notifier Notifier
}

func NewOrderService(repo repository.OrderRepository, catalog catalogservice.CatalogService, paymentsBuilder *payments.Builder, notifier Notifier) OrderService {
	return &orderService{
		repo:     repo,
		catalog:  catalog,
		payments: paymentsBuilder,
		notifier: notifier,
	}
}

func (s *orderService) Create(ctx context.Context, buyer *usermodels.User, input models.OrderCreate) (*models.PaymentDescriptor, error) {
	if !models.ValidPaymentMethod(input.PaymentMethod) {
		return nil, apperrors.NewValidationError("payment_method", "must be one of ton, usdt, bank_transfer")
	}

	product, err := s.catalog.GetActiveProduct(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}

	order := &models.Order{
		UserID:        buyer.ID,
		ProductID:     product.ID,
		PaymentMethod: input.PaymentMethod,
		Amount:        product.Price,
		Status:        models.StatusPending,
	}

	if err := s.repo.Create(ctx, order); err != nil {
		return nil, apperrors.NewDatabaseError("create order", err)
	}

	logger.Info().
		Int64("order_id", order.ID).
		Int64("user_id", buyer.ID).
		Int64("product_id", product.ID).
		Str("payment_method", order.PaymentMethod).
		Float64("amount", order.Amount).
		Msg("Order created")

	// Best-effort operator notification; the order stands even if the
	// message never arrives.
	s.notifier.NotifyNewOrder(ctx, order, product, buyer)

	return s.payments.Descriptor(order), nil
}

func (s *orderService) ConfirmPayment(ctx context.Context, orderID int64) error {
	changed, err := s.repo.TransitionStatus(ctx, orderID, models.StatusPending, models.StatusPaid)
	if err != nil {
		return apperrors.NewDatabaseError("confirm payment", err)
	}

	if !changed {
		// Unknown order or already past pending; the webhook contract says
		// swallow both.
		logger.Debug().Int64("order_id", orderID).Msg("Payment confirmation had no effect")
		return nil
	}

	logger.Info().Int64("order_id", orderID).Msg("Order marked paid")
	return nil
}

func (s *orderService) Complete(ctx context.Context, requester *usermodels.User, orderID int64) error {
	if requester == nil || !requester.IsAdmin {
		return apperrors.NewForbiddenError("admin access required")
	}

	order, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		if err == repository.ErrOrderNotFound {
			return apperrors.NewOrderNotFoundError(orderID)
		}
		return apperrors.NewDatabaseError("get order", err)
	}

	changed, err := s.repo.Complete(ctx, orderID)
	if err != nil {
		return apperrors.NewDatabaseError("complete order", err)
	}
	if !changed {
		// Terminal already: completed orders stay completed, cancelled
		// orders are never resurrected.
		logger.Debug().Int64("order_id", orderID).Str("status", order.Status).Msg("Order completion had no effect")
		return nil
	}

	product, err := s.catalog.GetProduct(ctx, order.ProductID)
	if err != nil {
		logger.Error().Err(err).Int64("order_id", orderID).Msg("Completed order references missing product")
		return nil
	}

	s.notifier.DeliverPurchase(ctx, order.UserID, product.DeliveryData)

	logger.Info().Int64("order_id", orderID).Int64("user_id", order.UserID).Msg("Order completed")
	return nil
}

func (s *orderService) Reject(ctx context.Context, orderID int64) error {
	order, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		if err == repository.ErrOrderNotFound {
			logger.Debug().Int64("order_id", orderID).Msg("Rejection for unknown order ignored")
			return nil
		}
		return apperrors.NewDatabaseError("get order", err)
	}

	changed, err := s.repo.TransitionStatus(ctx, orderID, models.StatusPending, models.StatusCancelled)
	if err != nil {
		return apperrors.NewDatabaseError("reject order", err)
	}
	if !changed {
		logger.Debug().Int64("order_id", orderID).Str("status", order.Status).Msg("Order rejection had no effect")
		return nil
	}

	s.notifier.NotifyRejected(ctx, order.UserID, orderID)

	logger.Info().Int64("order_id", orderID).Msg("Order cancelled")
	return nil
}

func (s *orderService) ListAll(ctx context.Context) ([]*models.Order, error) {
	orders, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperrors.NewDatabaseError("list orders", err)
	}
	return orders, nil
}
