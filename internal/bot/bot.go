package bot

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"universal-shop-backend/internal/common/config"
	"universal-shop-backend/internal/common/logger"
	ordermodels "universal-shop-backend/internal/features/order/models"
	orderservice "universal-shop-backend/internal/features/order/service"
	userservice "universal-shop-backend/internal/features/user/service"
	"universal-shop-backend/internal/notifications"
)

// Bot runs the long-polling loop that serves /start and the operator
// confirm/reject buttons. It is an alternative to the webhook endpoint for
// deployments without a public HTTPS ingress.
type Bot struct {
	api      *tgbotapi.BotAPI
	users    userservice.UserService
	orders   orderservice.OrderService
	notifier *notifications.Service
	cfg      *config.Config
}

func New(api *tgbotapi.BotAPI, users userservice.UserService, orders orderservice.OrderService, notifier *notifications.Service, cfg *config.Config) *Bot {
	return &Bot{
		api:      api,
		users:    users,
		orders:   orders,
		notifier: notifier,
		cfg:      cfg,
	}
}

// Run blocks until ctx is cancelled, processing updates via long polling.
func (b *Bot) Run(ctx context.Context) {
	logger.Info().Str("account", b.api.Self.UserName).Msg("bot authorized, starting long polling")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			logger.Info().Msg("bot polling stopped")
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.Message != nil && update.Message.IsCommand():
		b.handleCommand(ctx, update.Message)
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, update.CallbackQuery)
	}
}

func (b *Bot) handleCommand(ctx context.Context, message *tgbotapi.Message) {
	if message.Command() != "start" || message.From == nil {
		return
	}

	from := message.From
	if _, err := b.users.GetOrCreateUser(ctx, from.ID, from.UserName, from.FirstName, from.LastName); err != nil {
		logger.Error().Err(err).Int64("telegram_id", from.ID).Msg("failed to upsert user on /start")
	}

	msg := tgbotapi.NewMessage(message.Chat.ID, fmt.Sprintf("Привет, %s! Открывай магазин и выбирай товары 👇", from.FirstName))
	if b.cfg.Telegram.WebAppURL != "" {
		msg.ReplyMarkup = startKeyboard(b.cfg.Telegram.WebAppURL)
	}

	if _, err := b.api.Send(msg); err != nil {
		logger.Error().Err(err).Int64("chat_id", message.Chat.ID).Msg("failed to send /start reply")
	}
}

// startKeyboard links the /start reply to the Mini App. A t.me/<bot>/<app>
// link opens the Mini App from a plain URL button.
func startKeyboard(webAppURL string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL("🛍 Открыть магазин", webAppURL),
		),
	)
}

// handleCallback processes the operator keyboard from the order group.
// Only admins may confirm or reject payments.
func (b *Bot) handleCallback(ctx context.Context, query *tgbotapi.CallbackQuery) {
	action, orderID, ok := ordermodels.ParseCallbackData(query.Data)
	if !ok {
		logger.Warn().Str("data", query.Data).Msg("unknown callback data")
		b.notifier.AnswerCallback(ctx, query.ID, "")
		return
	}

	if query.From == nil || !b.cfg.IsAdmin(query.From.ID) {
		b.notifier.AnswerCallback(ctx, query.ID, "Недостаточно прав")
		return
	}

	switch action {
	case ordermodels.CallbackConfirm:
		if err := b.orders.ConfirmPayment(ctx, orderID); err != nil {
			logger.Error().Err(err).Int64("order_id", orderID).Msg("callback confirm failed")
			b.notifier.AnswerCallback(ctx, query.ID, "Ошибка подтверждения")
			return
		}
		b.notifier.AnswerCallback(ctx, query.ID, "Оплата подтверждена ✅")
	case ordermodels.CallbackReject:
		if err := b.orders.Reject(ctx, orderID); err != nil {
			logger.Error().Err(err).Int64("order_id", orderID).Msg("callback reject failed")
			b.notifier.AnswerCallback(ctx, query.ID, "Ошибка отклонения")
			return
		}
		b.notifier.AnswerCallback(ctx, query.ID, "Заказ отклонён ❌")
	}
}
