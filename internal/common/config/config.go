package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Debug bool `env:"DEBUG" envDefault:"false"`

	Server struct {
		Port   int    `env:"PORT" envDefault:"8080"`
		Origin string `env:"ORIGIN" envDefault:"http://localhost:3000"`
	}

	Postgres struct {
		Host            string        `env:"POSTGRES_HOST" envDefault:"localhost"`
		Port            int           `env:"POSTGRES_PORT" envDefault:"5432"`
		User            string        `env:"POSTGRES_USER" envDefault:"postgres"`
		Password        string        `env:"POSTGRES_PASSWORD" envDefault:""`
		Database        string        `env:"POSTGRES_DB" envDefault:"shop"`
		SSLMode         string        `env:"POSTGRES_SSLMODE" envDefault:"disable"`
		MaxOpenConns    int           `env:"POSTGRES_MAX_OPEN_CONNS" envDefault:"25"`
		MaxIdleConns    int           `env:"POSTGRES_MAX_IDLE_CONNS" envDefault:"5"`
		ConnMaxLifetime time.Duration `env:"POSTGRES_CONN_MAX_LIFETIME" envDefault:"30m"`
		AutoMigrate     bool          `env:"DB_AUTO_MIGRATE" envDefault:"true"`
	}

	Redis struct {
		Host     string `env:"REDIS_HOST" envDefault:"localhost"`
		Port     int    `env:"REDIS_PORT" envDefault:"6379"`
		Password string `env:"REDIS_PASSWORD" envDefault:""`
		DB       int    `env:"REDIS_DB" envDefault:"0"`
	}

	Telegram struct {
		BotToken string  `env:"BOT_TOKEN,required"`
		Debug    bool    `env:"TELEGRAM_DEBUG" envDefault:"false"`
		AdminIDs []int64 `env:"ADMIN_IDS" envSeparator:","`

		// Chat that receives new-order notifications for manual review.
		OrderGroupID int64 `env:"ORDER_GROUP_ID"`

		// Optional X-Telegram-Bot-Api-Secret-Token check on the bot webhook.
		WebhookSecret string `env:"TELEGRAM_WEBHOOK_SECRET" envDefault:""`

		// Mini App URL sent with the /start keyboard.
		WebAppURL string `env:"WEBAPP_URL" envDefault:""`
	}

	Payments struct {
		// Shop wallet that receives TON transfers.
		TONWallet string `env:"TON_WALLET" envDefault:""`

		// Bot handling USDT invoices, linked via a start parameter.
		CryptoBotURL string `env:"CRYPTO_BOT_URL" envDefault:"https://t.me/CryptoBot"`

		BankName   string `env:"BANK_NAME" envDefault:""`
		BankCard   string `env:"BANK_CARD_NUMBER" envDefault:""`
		BankHolder string `env:"BANK_ACCOUNT_HOLDER" envDefault:""`
		BankPhone  string `env:"BANK_PHONE" envDefault:""`
	}
}

// GetDSN builds the lib/pq connection string.
func (c *Config) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Postgres.Host, c.Postgres.Port, c.Postgres.User,
		c.Postgres.Password, c.Postgres.Database, c.Postgres.SSLMode)
}

func Load() *Config {
	// .env is optional; production sets variables directly.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		panic(err)
	}

	return cfg
}

// IsAdmin reports whether the given Telegram ID is a configured admin.
func (c *Config) IsAdmin(telegramID int64) bool {
	for _, id := range c.Telegram.AdminIDs {
		if id == telegramID {
			return true
		}
	}
	return false
}
