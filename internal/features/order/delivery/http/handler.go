package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"universal-shop-backend/internal/common/config"
	"universal-shop-backend/internal/common/errors"
	"universal-shop-backend/internal/common/logger"
	"universal-shop-backend/internal/common/middleware"
	"universal-shop-backend/internal/features/order/models"
	"universal-shop-backend/internal/features/order/service"
	"universal-shop-backend/internal/notifications"
)

type OrderHandler struct {
	service  service.OrderService
	notifier *notifications.Service
	cfg      *config.Config
}

func NewOrderHandler(orderService service.OrderService, notifier *notifications.Service, cfg *config.Config) *OrderHandler {
	return &OrderHandler{
		service:  orderService,
		notifier: notifier,
		cfg:      cfg,
	}
}

// RegisterRoutes attaches the authenticated order endpoints.
func (h *OrderHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/orders", h.createOrder)

	admin := router.Group("/admin")
	admin.Use(middleware.RequireAdmin(h.cfg))
	{
		admin.GET("/orders", h.listOrders)
		admin.PUT("/orders/:id/complete", h.completeOrder)
	}
}

// RegisterWebhooks attaches the unauthenticated payment and bot callbacks.
// Telegram webhook requests are verified by secret token instead of init data.
func (h *OrderHandler) RegisterWebhooks(router *gin.RouterGroup) {
	router.POST("/webhook/crypto", h.cryptoWebhook)
	router.POST("/webhook/telegram", h.telegramWebhook)
}

// @Summary Create order
// @Description Place an order for a product and receive payment instructions.
// @Tags orders
// @Accept json
// @Produce json
// @Security TelegramInitData
// @Success 201 {object} models.PaymentDescriptor
// @Router /orders [post]
func (h *OrderHandler) createOrder(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: Telegram Init Data required"})
		return
	}

	var input models.OrderCreate
	if err := c.ShouldBindJSON(&input); err != nil {
		middleware.AbortWithError(c, errors.Wrap(err, errors.ErrCodeValidation, "Invalid order payload"))
		return
	}

	descriptor, err := h.service.Create(c.Request.Context(), user, input)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, descriptor)
}

func (h *OrderHandler) listOrders(c *gin.Context) {
	orders, err := h.service.ListAll(c.Request.Context())
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// @Summary Complete order
// @Description Mark an order delivered and send the purchase to the buyer (admin only).
// @Tags admin
// @Produce json
// @Security TelegramInitData
// @Router /admin/orders/{id}/complete [put]
func (h *OrderHandler) completeOrder(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		middleware.AbortWithError(c, errors.NewValidationError("id", "invalid order id"))
		return
	}

	if err := h.service.Complete(c.Request.Context(), user, orderID); err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

type cryptoWebhookPayload struct {
	Status  string `json:"status"`
	OrderID int64  `json:"order_id"`
}

// cryptoWebhook acknowledges every delivery so the provider stops retrying;
// failures are logged and reconciled manually.
func (h *OrderHandler) cryptoWebhook(c *gin.Context) {
	var payload cryptoWebhookPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		logger.Warn().Err(err).Msg("crypto webhook: malformed payload")
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
		return
	}

	if payload.Status == "success" {
		if err := h.service.ConfirmPayment(c.Request.Context(), payload.OrderID); err != nil {
			logger.Error().Err(err).Int64("order_id", payload.OrderID).Msg("crypto webhook: confirm failed")
		}
	} else {
		logger.Info().
			Str("status", payload.Status).
			Int64("order_id", payload.OrderID).
			Msg("crypto webhook: ignoring non-success status")
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// telegramWebhook handles operator button presses from the order group chat.
func (h *OrderHandler) telegramWebhook(c *gin.Context) {
	if secret := h.cfg.Telegram.WebhookSecret; secret != "" {
		if c.GetHeader("X-Telegram-Bot-Api-Secret-Token") != secret {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}
	}

	var update tgbotapi.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		logger.Warn().Err(err).Msg("telegram webhook: malformed update")
		c.JSON(http.StatusOK, gin.H{"ok": true})
		return
	}

	if update.CallbackQuery != nil {
		h.handleCallback(c, update.CallbackQuery)
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *OrderHandler) handleCallback(c *gin.Context, query *tgbotapi.CallbackQuery) {
	ctx := c.Request.Context()

	action, orderID, ok := models.ParseCallbackData(query.Data)
	if !ok {
		logger.Warn().Str("data", query.Data).Msg("telegram webhook: unknown callback data")
		h.notifier.AnswerCallback(ctx, query.ID, "")
		return
	}

	// Same rule as the long-polling path: only configured admins may
	// confirm or reject payments.
	if query.From == nil || !h.cfg.IsAdmin(query.From.ID) {
		logger.Warn().Str("data", query.Data).Msg("telegram webhook: callback from non-admin ignored")
		h.notifier.AnswerCallback(ctx, query.ID, "Недостаточно прав")
		return
	}

	switch action {
	case models.CallbackConfirm:
		if err := h.service.ConfirmPayment(ctx, orderID); err != nil {
			logger.Error().Err(err).Int64("order_id", orderID).Msg("telegram webhook: confirm failed")
			h.notifier.AnswerCallback(ctx, query.ID, "Ошибка подтверждения")
			return
		}
		h.notifier.AnswerCallback(ctx, query.ID, "Оплата подтверждена ✅")
	case models.CallbackReject:
		if err := h.service.Reject(ctx, orderID); err != nil {
			logger.Error().Err(err).Int64("order_id", orderID).Msg("telegram webhook: reject failed")
			h.notifier.AnswerCallback(ctx, query.ID, "Ошибка отклонения")
			return
		}
		h.notifier.AnswerCallback(ctx, query.ID, "Заказ отклонён ❌")
	}
}
