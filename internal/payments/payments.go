package payments

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/xssnick/tonutils-go/address"
	"github.com/xssnick/tonutils-go/tlb"

	"universal-shop-backend/internal/common/config"
	"universal-shop-backend/internal/features/order/models"
)

// Builder turns a created order into the payment descriptor returned to the
// Mini App: a crypto payment link for ton/usdt, static bank details for
// manual transfers.
type Builder struct {
	tonWallet    *address.Address
	cryptoBotURL string
	bank         models.BankDetails
}

func NewBuilder(cfg *config.Config) (*Builder, error) {
	b := &Builder{
		cryptoBotURL: cfg.Payments.CryptoBotURL,
		bank: models.BankDetails{
			BankName:      cfg.Payments.BankName,
			CardNumber:    cfg.Payments.BankCard,
			AccountHolder: cfg.Payments.BankHolder,
			Phone:         cfg.Payments.BankPhone,
		},
	}

	if cfg.Payments.TONWallet != "" {
		addr, err := address.ParseAddr(cfg.Payments.TONWallet)
		if err != nil {
			return nil, fmt.Errorf("invalid TON wallet address: %w", err)
		}
		b.tonWallet = addr
	}

	return b, nil
}

// Descriptor builds the method-specific payment payload for an order. The
// payment method must already be validated.
func (b *Builder) Descriptor(order *models.Order) *models.PaymentDescriptor {
	switch order.PaymentMethod {
	case models.MethodTON:
		return &models.PaymentDescriptor{
			OrderID:               order.ID,
			PaymentURL:            b.tonTransferURL(order),
			CryptoCurrency:        "TON",
			RequiresManualPayment: false,
		}
	case models.MethodUSDT:
		return &models.PaymentDescriptor{
			OrderID:               order.ID,
			PaymentURL:            b.cryptoBotStartURL(order),
			CryptoCurrency:        "USDT",
			RequiresManualPayment: false,
		}
	default:
		bank := b.bank
		return &models.PaymentDescriptor{
			OrderID:               order.ID,
			BankDetails:           &bank,
			Comment:               fmt.Sprintf("Оплата заказа #%d", order.ID),
			RequiresManualPayment: true,
		}
	}
}

// tonTransferURL builds a ton://transfer deeplink with the amount in
// nanotons. Falls back to the crypto bot link when no shop wallet is
// configured.
func (b *Builder) tonTransferURL(order *models.Order) string {
	if b.tonWallet == nil {
		return b.cryptoBotStartURL(order)
	}

	coins, err := tlb.FromTON(strconv.FormatFloat(order.Amount, 'f', 2, 64))
	if err != nil {
		return b.cryptoBotStartURL(order)
	}

	return fmt.Sprintf("ton://transfer/%s?amount=%s&text=%s",
		b.tonWallet.String(), coins.Nano().String(), url.QueryEscape(fmt.Sprintf("order-%d", order.ID)))
}

func (b *Builder) cryptoBotStartURL(order *models.Order) string {
	return fmt.Sprintf("%s?start=payment_%d", b.cryptoBotURL, order.ID)
}
