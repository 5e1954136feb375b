package notifications

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"universal-shop-backend/internal/common/logger"
	catalogmodels "universal-shop-backend/internal/features/catalog/models"
	ordermodels "universal-shop-backend/internal/features/order/models"
	usermodels "universal-shop-backend/internal/features/user/models"
)

var paymentMethodLabels = map[string]string{
	ordermodels.MethodTON:          "TON",
	ordermodels.MethodUSDT:         "USDT (TRC20)",
	ordermodels.MethodBankTransfer: "Перевод по реквизитам",
}

// Service delivers order notifications through the Telegram Bot API. Every
// send is best-effort: failures are logged and swallowed, so the order
// lifecycle never blocks on Telegram availability.
type Service struct {
	bot          *tgbotapi.BotAPI
	orderGroupID int64
}

func NewService(bot *tgbotapi.BotAPI, orderGroupID int64) *Service {
	return &Service{
		bot:          bot,
		orderGroupID: orderGroupID,
	}
}

// NotifyNewOrder posts an order summary to the operator group. Bank
// transfers get confirm/reject controls since they need manual review;
// crypto orders only get a contact button.
func (s *Service) NotifyNewOrder(ctx context.Context, order *ordermodels.Order, product *catalogmodels.Product, buyer *usermodels.User) {
	if s == nil || s.bot == nil || s.orderGroupID == 0 {
		return
	}

	text := buildOrderMessage(order, product, buyer)
	keyboard := buildOrderKeyboard(order, buyer)

	var err error
	if product.ImageURL != "" {
		photo := tgbotapi.NewPhoto(s.orderGroupID, tgbotapi.FileURL(product.ImageURL))
		photo.Caption = text
		photo.ParseMode = tgbotapi.ModeMarkdown
		photo.ReplyMarkup = keyboard
		_, err = s.bot.Send(photo)
	} else {
		msg := tgbotapi.NewMessage(s.orderGroupID, text)
		msg.ParseMode = tgbotapi.ModeMarkdown
		msg.ReplyMarkup = keyboard
		_, err = s.bot.Send(msg)
	}

	if err != nil {
		logger.Error().Err(err).Int64("order_id", order.ID).Msg("Failed to send order notification")
		return
	}

	logger.Info().Int64("order_id", order.ID).Msg("Order notification sent to operator group")
}

// DeliverPurchase sends the product's secret payload to the buyer after
// payment is confirmed and the order completed.
func (s *Service) DeliverPurchase(ctx context.Context, buyerID int64, deliveryData string) {
	if s == nil || s.bot == nil {
		return
	}

	text := fmt.Sprintf("🎉 Ваш товар успешно оплачен!\n\nДанные для получения:\n%s\n\nСпасибо за покупку!", deliveryData)
	msg := tgbotapi.NewMessage(buyerID, text)

	if _, err := s.bot.Send(msg); err != nil {
		logger.Error().Err(err).Int64("user_id", buyerID).Msg("Failed to deliver purchase to buyer")
		return
	}

	logger.Info().Int64("user_id", buyerID).Msg("Purchase delivered to buyer")
}

// NotifyRejected tells the buyer their order was declined.
func (s *Service) NotifyRejected(ctx context.Context, buyerID int64, orderID int64) {
	if s == nil || s.bot == nil {
		return
	}

	text := fmt.Sprintf("❌ Ваш заказ #%d был отклонён. Свяжитесь с поддержкой для уточнения деталей.", orderID)
	msg := tgbotapi.NewMessage(buyerID, text)

	if _, err := s.bot.Send(msg); err != nil {
		logger.Error().Err(err).Int64("user_id", buyerID).Int64("order_id", orderID).Msg("Failed to send rejection notice")
	}
}

// AnswerCallback acknowledges an operator's inline keyboard press.
func (s *Service) AnswerCallback(ctx context.Context, callbackID, text string) {
	if s == nil || s.bot == nil || callbackID == "" {
		return
	}

	if _, err := s.bot.Request(tgbotapi.NewCallback(callbackID, text)); err != nil {
		logger.Error().Err(err).Msg("Failed to answer callback query")
	}
}

func buildOrderMessage(order *ordermodels.Order, product *catalogmodels.Product, buyer *usermodels.User) string {
	label, ok := paymentMethodLabels[order.PaymentMethod]
	if !ok {
		label = order.PaymentMethod
	}

	username := buyer.Username
	if username == "" {
		username = "без username"
	}

	return fmt.Sprintf(`🛒 *НОВЫЙ ЗАКАЗ* #%d

👤 *Покупатель:* %s
📱 @%s

📦 *Товар:* %s
💰 *Сумма:* %.2f ₽
💳 *Способ оплаты:* %s
🕐 *Время:* %s

*Статус:* %s`,
		order.ID,
		buyer.DisplayName(),
		username,
		product.Name,
		order.Amount,
		label,
		order.CreatedAt.Format("02.01.2006 15:04"),
		order.Status,
	)
}

func buildOrderKeyboard(order *ordermodels.Order, buyer *usermodels.User) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton

	if order.PaymentMethod == ordermodels.MethodBankTransfer {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Подтвердить оплату", ordermodels.ConfirmCallbackData(order.ID)),
			tgbotapi.NewInlineKeyboardButtonData("❌ Отклонить", ordermodels.RejectCallbackData(order.ID)),
		))
	}

	contactURL := fmt.Sprintf("tg://user?id=%d", buyer.ID)
	if buyer.Username != "" {
		contactURL = fmt.Sprintf("https://t.me/%s", buyer.Username)
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonURL("💬 Написать покупателю", contactURL),
	))

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
