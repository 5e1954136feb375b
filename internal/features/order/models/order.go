package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Order status lifecycle: pending -> paid -> completed, or
// pending -> cancelled. completed and cancelled are terminal.
const (
	StatusPending   = "pending"
	StatusPaid      = "paid"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// Supported payment methods.
const (
	MethodTON          = "ton"
	MethodUSDT         = "usdt"
	MethodBankTransfer = "bank_transfer"
)

// ValidPaymentMethod reports whether the method is one of the supported
// values. Unknown methods are rejected instead of silently falling into the
// bank-transfer branch.
func ValidPaymentMethod(method string) bool {
	switch method {
	case MethodTON, MethodUSDT, MethodBankTransfer:
		return true
	}
	return false
}

// Order is a purchase of a single product. Amount is snapshotted from the
// product price at creation; later price edits do not affect existing
// orders. Status is the only field that changes after creation.
type Order struct {
	ID            int64      `json:"id"`
	UserID        int64      `json:"user_id"`
	ProductID     int64      `json:"product_id"`
	PaymentMethod string     `json:"payment_method"`
	Amount        float64    `json:"amount"`
	Status        string     `json:"status"`
	CreatedAt     time.Time  `json:"created_at"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
}

type OrderCreate struct {
	ProductID     int64  `json:"product_id" binding:"required"`
	PaymentMethod string `json:"payment_method" binding:"required"`
}

// BankDetails are the static transfer instructions shown for manual payment.
type BankDetails struct {
	BankName      string `json:"bank_name"`
	CardNumber    string `json:"card_number"`
	AccountHolder string `json:"account_holder"`
	Phone         string `json:"phone,omitempty"`
}

// PaymentDescriptor is the response to order creation. Crypto methods carry
// a payment URL; bank transfer carries the static details and requires
// manual operator confirmation.
type PaymentDescriptor struct {
	OrderID               int64        `json:"order_id"`
	PaymentURL            string       `json:"payment_url,omitempty"`
	CryptoCurrency        string       `json:"crypto_currency,omitempty"`
	BankDetails           *BankDetails `json:"bank_details,omitempty"`
	Comment               string       `json:"comment,omitempty"`
	RequiresManualPayment bool         `json:"requires_manual_payment"`
}

// Operator callback actions carried in inline keyboard data.
const (
	CallbackConfirm = "confirm"
	CallbackReject  = "reject"
)

// ConfirmCallbackData builds the callback payload for the operator keyboard.
func ConfirmCallbackData(orderID int64) string {
	return fmt.Sprintf("%s_%d", CallbackConfirm, orderID)
}

// RejectCallbackData builds the callback payload for the operator keyboard.
func RejectCallbackData(orderID int64) string {
	return fmt.Sprintf("%s_%d", CallbackReject, orderID)
}

// ParseCallbackData splits "confirm_<id>" / "reject_<id>" payloads. ok is
// false for anything else, including malformed order ids.
func ParseCallbackData(data string) (action string, orderID int64, ok bool) {
	action, rawID, found := strings.Cut(data, "_")
	if !found {
		return "", 0, false
	}
	if action != CallbackConfirm && action != CallbackReject {
		return "", 0, false
	}

	orderID, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return "", 0, false
	}

	return action, orderID, true
}
