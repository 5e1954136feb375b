package payments

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xssnick/tonutils-go/address"

	"universal-shop-backend/internal/common/config"
	"universal-shop-backend/internal/features/order/models"
)

const testWallet = "EQCD39VS5jcptHL8vMjEXrzGaRcCVYto7HUn4bpAOg8xqB2N"

func testConfig(tonWallet string) *config.Config {
	cfg := &config.Config{}
	cfg.Payments.TONWallet = tonWallet
	cfg.Payments.CryptoBotURL = "https://t.me/CryptoBot"
	cfg.Payments.BankName = "Test Bank"
	cfg.Payments.BankCard = "1234 5678 9012 3456"
	cfg.Payments.BankHolder = "Ivan Ivanov"
	cfg.Payments.BankPhone = "+70000000000"
	return cfg
}

func TestNewBuilderInvalidWallet(t *testing.T) {
	_, err := NewBuilder(testConfig("not-a-wallet"))
	require.Error(t, err)
}

func TestDescriptorTON(t *testing.T) {
	builder, err := NewBuilder(testConfig(testWallet))
	require.NoError(t, err)

	d := builder.Descriptor(&models.Order{ID: 42, PaymentMethod: models.MethodTON, Amount: 1.5})

	assert.Equal(t, int64(42), d.OrderID)
	assert.Equal(t, "TON", d.CryptoCurrency)
	assert.False(t, d.RequiresManualPayment)
	assert.Nil(t, d.BankDetails)

	wallet := address.MustParseAddr(testWallet).String()
	assert.Equal(t, fmt.Sprintf("ton://transfer/%s?amount=1500000000&text=order-42", wallet), d.PaymentURL)
}

func TestDescriptorTONWithoutWallet(t *testing.T) {
	builder, err := NewBuilder(testConfig(""))
	require.NoError(t, err)

	d := builder.Descriptor(&models.Order{ID: 7, PaymentMethod: models.MethodTON, Amount: 3})

	// No shop wallet configured, so the crypto bot link is the fallback.
	assert.Equal(t, "https://t.me/CryptoBot?start=payment_7", d.PaymentURL)
}

func TestDescriptorUSDT(t *testing.T) {
	builder, err := NewBuilder(testConfig(testWallet))
	require.NoError(t, err)

	d := builder.Descriptor(&models.Order{ID: 13, PaymentMethod: models.MethodUSDT, Amount: 25})

	assert.Equal(t, "USDT", d.CryptoCurrency)
	assert.Equal(t, "https://t.me/CryptoBot?start=payment_13", d.PaymentURL)
	assert.False(t, d.RequiresManualPayment)
}

func TestDescriptorBankTransfer(t *testing.T) {
	builder, err := NewBuilder(testConfig(testWallet))
	require.NoError(t, err)

	d := builder.Descriptor(&models.Order{ID: 99, PaymentMethod: models.MethodBankTransfer, Amount: 500})

	assert.True(t, d.RequiresManualPayment)
	assert.Empty(t, d.PaymentURL)
	require.NotNil(t, d.BankDetails)
	assert.Equal(t, "Test Bank", d.BankDetails.BankName)
	assert.Equal(t, "1234 5678 9012 3456", d.BankDetails.CardNumber)
	assert.Equal(t, "Ivan Ivanov", d.BankDetails.AccountHolder)
	assert.Contains(t, d.Comment, "#99")
}
